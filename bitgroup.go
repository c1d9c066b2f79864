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

// Payload compaction and spreading between dense integers and the
// one-7-bit-group-per-byte layout of a varint.
//
// Two interchangeable realizations exist for every width. The base
// realization uses fixed mask-and-shift sequences (generated with
// calcperm); the other expresses the same permutation as a packed bit
// extract/deposit with a per-width mask, the shape a BMI2 PEXT/PDEP
// port emits as a single instruction. Dispatch between them lives in
// dispatch.go.

const (
	continuationMask64 = 0x8080808080808080
	payloadMask64      = 0x7f7f7f7f7f7f7f7f

	// Packed extract/deposit masks: one 7-bit group per byte, plus the
	// spill bits of the top group where the width is not a multiple
	// of 7.
	groupMaskU8     = 0x000000000000017f
	groupMaskU16    = 0x0000000000037f7f
	groupMaskOver16 = 0x0000000000077f7f
	groupMaskU32    = 0x0000000f7f7f7f7f
	groupMaskU64Hi  = 0x000000000000017f
)

// ---------------------------------------------------------------------------
// Base realization: mask-and-shift.

func baseScalarToNumU8(x uint64) uint8 {
	return uint8((x & 0x7f) | ((x & 0x0100) >> 1))
}

func baseScalarToNumU16(x uint64) uint16 {
	return uint16((x & 0x7f) |
		((x & 0x7f00) >> 1) |
		((x & 0x0003_0000) >> 2))
}

func baseScalarToNumOver16(x uint64) uint32 {
	return uint32((x & 0x7f) |
		((x & 0x7f00) >> 1) |
		((x & 0x0007_0000) >> 2))
}

func baseScalarToNumU32(x uint64) uint32 {
	return uint32((x & 0x7f) |
		((x & 0x7f00) >> 1) |
		((x & 0x7f_0000) >> 2) |
		((x & 0x7f00_0000) >> 3) |
		((x & 0x0f_0000_0000) >> 4))
}

func baseVectorToNumU64(lo, hi uint64) uint64 {
	return (lo & 0x7f) |
		((lo & 0x7f00) >> 1) |
		((lo & 0x7f_0000) >> 2) |
		((lo & 0x7f00_0000) >> 3) |
		((lo & 0x7f_0000_0000) >> 4) |
		((lo & 0x7f00_0000_0000) >> 5) |
		((lo & 0x7f_0000_0000_0000) >> 6) |
		((lo & 0x7f00_0000_0000_0000) >> 7) |
		((hi & 0x0100) << 55) |
		((hi & 0x7f) << 56)
}

func baseNumToScalarU8(v uint8) uint64 {
	x := uint64(v)
	return (x & 0x7f) | ((x & 0x80) << 1)
}

func baseNumToScalarU16(v uint16) uint64 {
	x := uint64(v)
	return (x & 0x7f) | ((x & 0x3f80) << 1) | ((x & 0xc000) << 2)
}

func baseNumToScalarOver16(v uint32) uint64 {
	x := uint64(v)
	return (x & 0x7f) | ((x & 0x3f80) << 1) | ((x & 0x0001_c000) << 2)
}

func baseNumToScalarU32(v uint32) uint64 {
	x := uint64(v)
	return (x & 0x7f) |
		((x & 0x3f80) << 1) |
		((x & 0x001f_c000) << 2) |
		((x & 0x0fe0_0000) << 3) |
		((x & 0xf000_0000) << 4)
}

func baseNumToVectorU64(v uint64) (lo, hi uint64) {
	lo = (v & 0x7f) |
		((v & 0x3f80) << 1) |
		((v & 0x001f_c000) << 2) |
		((v & 0x0fe0_0000) << 3) |
		((v & 0x0000_0007_f000_0000) << 4) |
		((v & 0x0000_03f8_0000_0000) << 5) |
		((v & 0x0001_fc00_0000_0000) << 6) |
		((v & 0x00fe_0000_0000_0000) << 7)
	hi = ((v & 0x7f00_0000_0000_0000) >> 56) | ((v & 0x8000_0000_0000_0000) >> 55)
	return lo, hi
}

// ---------------------------------------------------------------------------
// Packed bit extract/deposit realization.

// pext64 gathers the bits of x selected by mask into the low bits of
// the result, preserving order. Portable equivalent of the BMI2 PEXT
// instruction.
func pext64(x, mask uint64) uint64 {
	var out uint64
	bb := uint64(1)
	for mask != 0 {
		if x&mask&-mask != 0 {
			out |= bb
		}
		mask &= mask - 1
		bb <<= 1
	}
	return out
}

// pdep64 scatters the low bits of x into the positions selected by
// mask, preserving order. Portable equivalent of the BMI2 PDEP
// instruction.
func pdep64(x, mask uint64) uint64 {
	var out uint64
	bb := uint64(1)
	for mask != 0 {
		if x&bb != 0 {
			out |= mask & -mask
		}
		mask &= mask - 1
		bb <<= 1
	}
	return out
}

func pextScalarToNumU8(x uint64) uint8 {
	return uint8(pext64(x, groupMaskU8))
}

func pextScalarToNumU16(x uint64) uint16 {
	return uint16(pext64(x, groupMaskU16))
}

func pextScalarToNumOver16(x uint64) uint32 {
	return uint32(pext64(x, groupMaskOver16))
}

func pextScalarToNumU32(x uint64) uint32 {
	return uint32(pext64(x, groupMaskU32))
}

func pextVectorToNumU64(lo, hi uint64) uint64 {
	return pext64(lo, payloadMask64) | (pext64(hi, groupMaskU64Hi) << 56)
}

func pdepNumToScalarU8(v uint8) uint64 {
	return pdep64(uint64(v), groupMaskU8)
}

func pdepNumToScalarU16(v uint16) uint64 {
	return pdep64(uint64(v), groupMaskU16)
}

func pdepNumToScalarOver16(v uint32) uint64 {
	return pdep64(uint64(v), groupMaskOver16)
}

func pdepNumToScalarU32(v uint32) uint64 {
	return pdep64(uint64(v), groupMaskU32)
}

func pdepNumToVectorU64(v uint64) (lo, hi uint64) {
	return pdep64(v, payloadMask64), pdep64(v>>56, groupMaskU64Hi)
}
