// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package varint

import "math/bits"

// Checked multi-value decoders. Each validates the lengths and
// terminal bytes the same way Decode does per value, and reports the
// total bytes consumed.

// DecodeTwo decodes two adjacent varints from buf. Returns both values
// and the total number of bytes read. Fails with ErrOverflow exactly
// when decoding the two values one at a time would, and with
// ErrNotEnoughBytes when buf ends before the second varint does.
//
// The combined maximum encoded length of A and B must fit a 16-byte
// block; pairing uint64 with uint64 panics. Use DecodeTwoWide for
// that.
func DecodeTwo[A, B Unsigned](buf []byte) (A, B, int, error) {
	if len(buf) == 0 {
		return 0, 0, 0, ErrNotEnoughBytes
	}
	var scratch [16]byte
	win := buf
	if len(buf) < 16 {
		copy(scratch[:], buf)
		win = scratch[:]
	}

	a, b, l1, l2 := BaseDecodeTwoUnsafe[A, B](win)

	if l1 > maxVarintBytes[A]() || l2 > maxVarintBytes[B]() {
		return 0, 0, 0, ErrOverflow
	}
	if l1 == maxVarintBytes[A]() && win[l1-1] > maxLastVarintByte[A]() {
		return 0, 0, 0, ErrOverflow
	}
	if l2 == maxVarintBytes[B]() && win[l1+l2-1] > maxLastVarintByte[B]() {
		return 0, 0, 0, ErrOverflow
	}
	if l1+l2 > len(buf) {
		return 0, 0, 0, ErrNotEnoughBytes
	}
	return a, b, l1 + l2, nil
}

// DecodeTwoWide decodes two adjacent varints from buf using a 32-byte
// window, admitting any pair of targets including uint64 with uint64.
// Returns both values and the total number of bytes read. For best
// performance provide at least 32 readable bytes; shorter inputs are
// padded internally.
func DecodeTwoWide[A, B Unsigned](buf []byte) (A, B, int, error) {
	if len(buf) == 0 {
		return 0, 0, 0, ErrNotEnoughBytes
	}
	var scratch [32]byte
	win := buf
	if len(buf) < 32 {
		copy(scratch[:], buf)
		win = scratch[:]
	}

	ends := FindVarintEnds(win[:32])
	l1 := bits.TrailingZeros32(ends) + 1
	l2 := bits.TrailingZeros32(ends>>uint(min(l1, 31))) + 1

	if l1 > maxVarintBytes[A]() || l2 > maxVarintBytes[B]() {
		return 0, 0, 0, ErrOverflow
	}
	if l1 == maxVarintBytes[A]() && win[l1-1] > maxLastVarintByte[A]() {
		return 0, 0, 0, ErrOverflow
	}
	if l2 == maxVarintBytes[B]() && win[l1+l2-1] > maxLastVarintByte[B]() {
		return 0, 0, 0, ErrOverflow
	}
	if l1+l2 > len(buf) {
		return 0, 0, 0, ErrNotEnoughBytes
	}

	var fa, fb [16]byte
	copy(fa[:], win[:l1])
	copy(fb[:], win[l1:l1+l2])
	return vectorToNum[A](&fa), vectorToNum[B](&fb), l1 + l2, nil
}

// DecodeFour decodes four adjacent varints from buf. Returns the
// values and the total number of bytes read. Fails with ErrOverflow
// exactly when decoding the four values one at a time would.
//
// The combined maximum encoded length of the four targets must fit a
// 16-byte block.
func DecodeFour[T, U, V, W Unsigned](buf []byte) (T, U, V, W, int, error) {
	if len(buf) == 0 {
		return 0, 0, 0, 0, 0, ErrNotEnoughBytes
	}
	var scratch [16]byte
	win := buf
	if len(buf) < 16 {
		copy(scratch[:], buf)
		win = scratch[:]
	}

	a, b, c, d, l1, l2, l3, l4, invalid := BaseDecodeFourUnsafe[T, U, V, W](win)
	if invalid {
		return 0, 0, 0, 0, 0, ErrOverflow
	}

	if err := checkLane[T](win, 0, l1); err != nil {
		return 0, 0, 0, 0, 0, err
	}
	if err := checkLane[U](win, l1, l2); err != nil {
		return 0, 0, 0, 0, 0, err
	}
	if err := checkLane[V](win, l1+l2, l3); err != nil {
		return 0, 0, 0, 0, 0, err
	}
	if err := checkLane[W](win, l1+l2+l3, l4); err != nil {
		return 0, 0, 0, 0, 0, err
	}

	total := l1 + l2 + l3 + l4
	if total > len(buf) {
		return 0, 0, 0, 0, 0, ErrNotEnoughBytes
	}
	return a, b, c, d, total, nil
}

// checkLane applies the per-value overflow rule to a varint of length
// l starting at offset within a padded block.
func checkLane[T Unsigned](win []byte, offset, l int) error {
	if l > maxVarintBytes[T]() {
		return ErrOverflow
	}
	if l == maxVarintBytes[T]() && win[offset+l-1] > maxLastVarintByte[T]() {
		return ErrOverflow
	}
	return nil
}

// DecodeEight decodes eight adjacent uint8 varints from buf. Returns
// the values and the total number of bytes read. Fails with
// ErrOverflow if any of the eight runs longer than two bytes or has a
// terminal byte above 0x01.
func DecodeEight(buf []byte) ([8]uint8, int, error) {
	if len(buf) == 0 {
		return [8]uint8{}, 0, ErrNotEnoughBytes
	}
	var scratch [16]byte
	win := buf
	if len(buf) < 16 {
		copy(scratch[:], buf)
		win = scratch[:]
	}

	vals, total := DecodeEightUnsafe(win)

	pos := 0
	for range 8 {
		if win[pos] < 0x80 {
			pos++
			continue
		}
		if win[pos+1] > 0x01 {
			return [8]uint8{}, 0, ErrOverflow
		}
		pos += 2
	}

	if total > len(buf) {
		return [8]uint8{}, 0, ErrNotEnoughBytes
	}
	return vals, total, nil
}
