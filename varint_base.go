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

import (
	"encoding/binary"
	"math/bits"

	"github.com/ajroetker/go-highway/hwy"
)

// Single-value fast paths.
//
// A varint never exceeds ten bytes, so the whole of one fits in a
// 16-byte block. Targets up to uint32 fit in one 64-bit word: one
// unaligned load, one mask to isolate the continuation bits, a
// trailing-zero count for the length, and a bit-group compaction for
// the value. uint64 runs the same sequence over two words.

// BaseDecodeUnsafe decodes a single varint from src without overflow
// or truncation checks. src must be at least 16 bytes; any data after
// the varint is ignored. Returns the decoded value and the number of
// bytes read. If the varint encodes a number too large for T, the
// result is truncated and the reported length may exceed
// the maximum for T.
func BaseDecodeUnsafe[T Unsigned](src []byte) (T, int) {
	if maxVarintBytes[T]() <= 5 {
		b := binary.LittleEndian.Uint64(src)

		// A clear high bit marks the end of the varint.
		msbs := ^b & continuationMask64
		length := (bits.TrailingZeros64(msbs) + 1) / 8

		// b & blsmsk(msbs): the varint's bytes, everything after zeroed.
		part := b & (msbs ^ (msbs - 1))

		return scalarToNum[T](part), length
	}

	b0 := binary.LittleEndian.Uint64(src)
	b1 := binary.LittleEndian.Uint64(src[8:16])

	msbs0 := ^b0 & continuationMask64
	msbs1 := ^b1 & continuationMask64

	len0 := bits.TrailingZeros64(msbs0) + 1
	len1 := bits.TrailingZeros64(msbs1) + 1

	part0 := b0 & (msbs0 ^ (msbs0 - 1))
	part1 := b1 & (msbs1 ^ (msbs1 - 1))
	if msbs0 != 0 {
		// The varint ends in the first word; the second contributes nothing.
		part1 = 0
	}

	num := T(vectorToNumU64(part0, part1))

	length := len0
	if msbs0 == 0 {
		length = len1 + 64
	}
	return num, length / 8
}

// BaseDecodeLenUnsafe returns the encoded length of the varint at the
// start of src without decoding its value. Same contract as
// BaseDecodeUnsafe.
func BaseDecodeLenUnsafe[T Unsigned](src []byte) int {
	if maxVarintBytes[T]() <= 5 {
		b := binary.LittleEndian.Uint64(src)
		msbs := ^b & continuationMask64
		return (bits.TrailingZeros64(msbs) + 1) / 8
	}

	b0 := binary.LittleEndian.Uint64(src)
	b1 := binary.LittleEndian.Uint64(src[8:16])

	msbs0 := ^b0 & continuationMask64
	msbs1 := ^b1 & continuationMask64

	length := bits.TrailingZeros64(msbs0) + 1
	if msbs0 == 0 {
		length = bits.TrailingZeros64(msbs1) + 1 + 64
	}
	return length / 8
}

// BaseEncode encodes v as a varint into a 16-byte block. Returns the
// block and the number of bytes used; positions at and after that
// length are zero. Never fails.
func BaseEncode[T Unsigned](v T) ([16]byte, int) {
	var out [16]byte

	if maxVarintBytes[T]() <= 5 {
		stage1 := numToScalarStage1(v)

		// stage1 == 0 still yields one byte: leading == 64 works out
		// to an all-zero continuation mask below.
		leading := bits.LeadingZeros64(stage1)
		unused := (leading - 1) / 8
		n := 8 - unused

		// Continuation bits on every byte but the last.
		msbMask := ^uint64(0) >> uint((8-n+1)*8-1)
		merged := stage1 | (continuationMask64 & msbMask)

		binary.LittleEndian.PutUint64(out[0:8], merged)
		return out, n
	}

	lo, hi := numToVectorU64(uint64(v))
	binary.LittleEndian.PutUint64(out[0:8], lo)
	binary.LittleEndian.PutUint64(out[8:16], hi)

	// Byte count from the occupancy bitmap; byte 0 always counts so
	// that zero encodes with length one.
	vec := hwy.Load[uint8](out[:])
	occupied := hwy.GreaterThan(vec, hwy.Set[uint8](0))
	bitmap := uint32(hwy.BitsFromMask(occupied)) | 1
	n := bits.Len32(bitmap)

	// 0xFF on the first n lanes, slid down one lane and reduced to the
	// high bit: the continuation mask for lanes 0..n-2.
	fill := hwy.IfThenElseZero(hwy.LessThan(vec16(iotaBytes), hwy.Set[uint8](uint8(n))), hwy.Set[uint8](0xFF))
	msb := hwy.And(hwy.Slide1Down(fill), hwy.Set[uint8](0x80))

	hwy.Store(hwy.Or(vec, msb), out[:])
	return out, n
}

// iotaBytes is the identity shuffle 0..15.
var iotaBytes = [16]uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

// vec16 loads a 16-byte array as a 16-lane vector.
func vec16(b [16]uint8) hwy.Vec[uint8] {
	return hwy.Load[uint8](b[:])
}

// continuationBits returns the per-byte continuation bitmap of a
// 16-byte block: bit i set means src[i] has its high bit set.
func continuationBits(v hwy.Vec[uint8]) uint32 {
	return uint32(hwy.BitsFromMask(hwy.GreaterEqual(v, hwy.Set[uint8](0x80))))
}

// BaseFindVarintEnds examines up to 32 bytes and returns a bitmask
// where bit i is set if src[i] is the last byte of a varint
// (src[i] < 0x80). The complement of the result over the window length
// is the continuation mask used throughout this package.
//
// Use bits.TrailingZeros32 on the result to find the first boundary,
// or bits.OnesCount32 to count complete varints in the window.
func BaseFindVarintEnds(src []byte) uint32 {
	if len(src) == 0 {
		return 0
	}

	n := min(len(src), 32)

	// Full windows take two 16-byte vector compares.
	if n == 32 {
		threshold := hwy.Set[uint8](0x80)

		v0 := hwy.Load[uint8](src[:16])
		mask0 := uint32(hwy.BitsFromMask(hwy.LessThan(v0, threshold)))

		v1 := hwy.Load[uint8](src[16:32])
		mask1 := uint32(hwy.BitsFromMask(hwy.LessThan(v1, threshold)))

		return mask0 | (mask1 << 16)
	}

	var mask uint32
	for i := range n {
		if src[i] < 0x80 {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// BaseDecodeEightUnsafe decodes eight adjacent uint8 varints from a
// 16-byte block without overflow checks. Each value occupies one or
// two bytes, so eight of them always fit. Returns the values and the
// total number of bytes read.
//
// If any varint runs longer than two bytes it is misread as several
// short ones and the reported length comes up short; the checked
// DecodeEight rejects such input.
func BaseDecodeEightUnsafe(src []byte) ([8]uint8, int) {
	var vals [8]uint8
	pos := 0
	for i := range vals {
		b0 := src[pos]
		if b0 < 0x80 {
			vals[i] = b0
			pos++
			continue
		}
		b1 := src[pos+1]
		vals[i] = (b0 & 0x7f) | (b1 << 7)
		pos += 2
	}
	return vals, pos
}
