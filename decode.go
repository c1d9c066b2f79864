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
	"errors"
	"unsafe"
)

var (
	// ErrOverflow reports a varint whose encoded length exceeds the
	// target width, or whose terminal byte carries payload bits above
	// the width.
	ErrOverflow = errors.New("varint: value overflows target type")

	// ErrNotEnoughBytes reports an input that ends before the varint
	// does.
	ErrNotEnoughBytes = errors.New("varint: input too short")
)

// Decode decodes a single varint from buf.
//
// Returns the decoded value and the number of bytes read. Inputs
// shorter than 16 bytes are padded into a scratch block internally, so
// any slice containing a complete varint is acceptable; for best
// performance provide at least 16 readable bytes.
//
// Returns ErrOverflow if the encoded length or the terminal byte's
// payload exceeds what T can hold, and ErrNotEnoughBytes if buf ends
// mid-varint.
func Decode[T Unsigned](buf []byte) (T, int, error) {
	var v T
	var n int

	if len(buf) >= 16 {
		v, n = BaseDecodeUnsafe[T](buf)
	} else if len(buf) > 0 {
		var scratch [16]byte
		copy(scratch[:], buf)
		v, n = BaseDecodeUnsafe[T](scratch[:])
	} else {
		return 0, 0, ErrNotEnoughBytes
	}

	maxLen := maxVarintBytes[T]()
	if len(buf) >= maxLen && buf[maxLen-1] > maxLastVarintByte[T]() && n == maxLen || n > maxLen {
		return 0, 0, ErrOverflow
	}
	if n > len(buf) {
		return 0, 0, ErrNotEnoughBytes
	}
	return v, n, nil
}

// DecodeUnsafe decodes a single varint from buf without overflow or
// truncation checks. buf must have at least 16 readable bytes; the
// caller is responsible for the well-formedness of the input. On
// malformed input the value is truncated or garbage, but no memory
// outside the 16-byte window is touched.
func DecodeUnsafe[T Unsigned](buf []byte) (T, int) {
	return BaseDecodeUnsafe[T](buf)
}

// DecodeLen returns the encoded length of the varint at the start of
// buf without decoding its value. Returns ErrOverflow if the length
// exceeds the maximum for T.
func DecodeLen[T Unsigned](buf []byte) (int, error) {
	var n int

	if len(buf) >= 16 {
		n = BaseDecodeLenUnsafe[T](buf)
	} else if len(buf) > 0 {
		var scratch [16]byte
		copy(scratch[:], buf)
		n = BaseDecodeLenUnsafe[T](scratch[:])
	} else {
		return 0, ErrNotEnoughBytes
	}

	if n > maxVarintBytes[T]() {
		return 0, ErrOverflow
	}
	if n > len(buf) {
		return 0, ErrNotEnoughBytes
	}
	return n, nil
}

// DecodeZigzag decodes a single ZigZag-encoded varint from buf.
func DecodeZigzag[S Signed](buf []byte) (S, int, error) {
	var zero S
	switch unsafe.Sizeof(zero) {
	case 1:
		u, n, err := Decode[uint8](buf)
		return S(int8(u>>1) ^ -int8(u&1)), n, err
	case 2:
		u, n, err := Decode[uint16](buf)
		return S(int16(u>>1) ^ -int16(u&1)), n, err
	case 4:
		u, n, err := Decode[uint32](buf)
		return S(int32(u>>1) ^ -int32(u&1)), n, err
	default:
		u, n, err := Decode[uint64](buf)
		return S(int64(u>>1) ^ -int64(u&1)), n, err
	}
}

// DecodeZigzagCompat16 decodes a ZigZag-encoded int16 from buf,
// additionally accepting the over-long three-byte form produced by
// encoders that widen 16-bit values to a larger signed type before
// zig-zag encoding. See Over16.
func DecodeZigzagCompat16(buf []byte) (int16, int, error) {
	u, n, err := Decode[Over16](buf)
	if err != nil {
		return 0, n, err
	}
	v := int32(u>>1) ^ -int32(u&1)
	return int16(v), n, nil
}

// DecodeBatch decodes consecutive varints from src into dst until dst
// is full or src is exhausted. Returns the number of values decoded
// and the number of bytes consumed. A truncated varint at the end of
// src stops decoding without error; an oversized varint returns
// ErrOverflow along with the progress made before it.
func DecodeBatch[T Unsigned](src []byte, dst []T) (decoded, consumed int, err error) {
	for decoded < len(dst) && consumed < len(src) {
		v, n, derr := Decode[T](src[consumed:])
		if derr != nil {
			if errors.Is(derr, ErrNotEnoughBytes) {
				break
			}
			return decoded, consumed, derr
		}
		dst[decoded] = v
		decoded++
		consumed += n
	}
	return decoded, consumed, nil
}
