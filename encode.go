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

import "unsafe"

// Encode encodes v as a varint into a 16-byte block. Returns the block
// and the number of bytes used; positions at and after that length are
// zero. Encoding never fails and never produces an over-long form.
//
//	buf, n := varint.Encode[uint32](300)
//	// buf[:n] == []byte{0xAC, 0x02}
func Encode[T Unsigned](v T) ([16]byte, int) {
	return BaseEncode(v)
}

// EncodeToSlice encodes v as a varint into dst and returns the number
// of bytes written (at most ten). Panics if dst is too small to hold
// the encoded form.
func EncodeToSlice[T Unsigned](v T, dst []byte) int {
	buf, n := BaseEncode(v)
	copy(dst[:n], buf[:n])
	return n
}

// Append appends the varint encoding of v to dst and returns the
// extended slice.
func Append[T Unsigned](dst []byte, v T) []byte {
	buf, n := BaseEncode(v)
	return append(dst, buf[:n]...)
}

// EncodeZigzag encodes a signed value as a ZigZag varint: the sign bit
// moves to bit zero so that small magnitudes of either sign encode
// short.
func EncodeZigzag[S Signed](v S) ([16]byte, int) {
	switch unsafe.Sizeof(v) {
	case 1:
		return BaseEncode(uint8((v << 1) ^ (v >> 7)))
	case 2:
		return BaseEncode(uint16((v << 1) ^ (v >> 15)))
	case 4:
		return BaseEncode(uint32((v << 1) ^ (v >> 31)))
	default:
		return BaseEncode(uint64((v << 1) ^ (v >> 63)))
	}
}

// AppendZigzag appends the ZigZag varint encoding of v to dst and
// returns the extended slice.
func AppendZigzag[S Signed](dst []byte, v S) []byte {
	buf, n := EncodeZigzag(v)
	return append(dst, buf[:n]...)
}
