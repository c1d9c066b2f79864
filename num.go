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
	"unsafe"
)

// Unsigned is the set of integer types a varint can decode into or
// encode from.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Signed is the set of integer types handled by the ZigZag adapters.
type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// Over16 is a 17-bit decode target: a uint16 whose encoded form may be
// one bit wider than the type itself. Encoders that widen 16-bit values
// to 32 or 64 bits before zig-zag encoding can produce three-byte
// varints whose terminal byte uses payload bits 0-2; decoding with
// Over16 accepts those, while plain uint16 rejects anything above
// payload bit 1 of a three-byte terminal.
type Over16 uint32

// maxVarintBytes returns the longest varint that can represent a value
// of type T: ceil((width+6)/7) bytes.
func maxVarintBytes[T Unsigned]() int {
	var zero T
	if _, ok := any(zero).(Over16); ok {
		return 3
	}
	switch unsafe.Sizeof(zero) {
	case 1:
		return 2
	case 2:
		return 3
	case 4:
		return 5
	default:
		return 10
	}
}

// maxLastVarintByte returns the largest value the terminal byte of a
// maximum-length varint may hold without overflowing T. The terminal
// byte carries the top (width mod 7) payload bits.
func maxLastVarintByte[T Unsigned]() byte {
	var zero T
	if _, ok := any(zero).(Over16); ok {
		return 0b111
	}
	switch unsafe.Sizeof(zero) {
	case 1:
		return 0b1
	case 2:
		return 0b11
	case 4:
		return 0b1111
	default:
		return 0b1
	}
}

// scalarToNum compacts the 7-bit payload groups of a varint held in a
// single 64-bit word (continuation bits still in place) into a value of
// type T. Only valid for targets whose varints fit in eight bytes.
func scalarToNum[T Unsigned](x uint64) T {
	var zero T
	if _, ok := any(zero).(Over16); ok {
		return T(scalarToNumOver16(x))
	}
	switch unsafe.Sizeof(zero) {
	case 1:
		return T(scalarToNumU8(x))
	case 2:
		return T(scalarToNumU16(x))
	case 4:
		return T(scalarToNumU32(x))
	default:
		return T(vectorToNumU64(x, 0))
	}
}

// vectorToNum compacts the payload groups of a varint spread across a
// 16-byte block. Bytes at positions past the varint must be zero;
// continuation bits within it are masked here.
func vectorToNum[T Unsigned](res *[16]byte) T {
	lo := binary.LittleEndian.Uint64(res[0:8])
	if maxVarintBytes[T]() > 5 {
		hi := binary.LittleEndian.Uint64(res[8:16])
		return T(vectorToNumU64(lo, hi))
	}
	return scalarToNum[T](lo)
}

// numToScalarStage1 spreads a value into 7-bit groups, one per byte of
// a 64-bit word, leaving the continuation bits clear. Only valid for
// targets whose varints fit in eight bytes.
func numToScalarStage1[T Unsigned](v T) uint64 {
	if o, ok := any(v).(Over16); ok {
		return numToScalarOver16(uint32(o))
	}
	switch unsafe.Sizeof(v) {
	case 1:
		return numToScalarU8(uint8(v))
	case 2:
		return numToScalarU16(uint16(v))
	default:
		return numToScalarU32(uint32(v))
	}
}
