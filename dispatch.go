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

// Dispatch function variables.
// These are initialized to the portable implementations and may be
// overridden by architecture-specific implementations in init()
// (z_*_<arch>.go files sort after this one and run later).

// Payload compaction (decode direction), one variable per width.
var (
	scalarToNumU8     func(x uint64) uint8
	scalarToNumU16    func(x uint64) uint16
	scalarToNumOver16 func(x uint64) uint32
	scalarToNumU32    func(x uint64) uint32
	vectorToNumU64    func(lo, hi uint64) uint64
)

// Payload spreading (encode direction), one variable per width.
var (
	numToScalarU8     func(v uint8) uint64
	numToScalarU16    func(v uint16) uint64
	numToScalarOver16 func(v uint32) uint64
	numToScalarU32    func(v uint32) uint64
	numToVectorU64    func(v uint64) (lo, hi uint64)
)

// Block-level operations.
var (
	// FindVarintEnds returns a bitmask where bit i is set if src[i]
	// terminates a varint (src[i] < 0x80).
	FindVarintEnds func(src []byte) uint32

	// DecodeEightUnsafe decodes eight adjacent uint8 varints from a
	// 16-byte block without overflow checks.
	DecodeEightUnsafe func(src []byte) ([8]uint8, int)
)

func init() {
	SetFastBitManip(false)

	FindVarintEnds = BaseFindVarintEnds
	DecodeEightUnsafe = BaseDecodeEightUnsafe
}

// SetFastBitManip selects the realization of payload compaction and
// spreading. When enabled, the packed bit extract/deposit form is used;
// otherwise the mask-and-shift form. The two are semantically
// identical, so this is a performance knob only: ports whose packed
// extract lowers to a fast instruction enable it, while hosts where it
// is microcoded (Zen, Zen+, Zen 2) leave it off regardless of what the
// CPU feature flags advertise.
//
// The default is off. On amd64, setting VARINT_FAST_BITMANIP=1 enables
// it at startup when the CPU reports BMI2.
func SetFastBitManip(enabled bool) {
	if enabled {
		scalarToNumU8 = pextScalarToNumU8
		scalarToNumU16 = pextScalarToNumU16
		scalarToNumOver16 = pextScalarToNumOver16
		scalarToNumU32 = pextScalarToNumU32
		vectorToNumU64 = pextVectorToNumU64

		numToScalarU8 = pdepNumToScalarU8
		numToScalarU16 = pdepNumToScalarU16
		numToScalarOver16 = pdepNumToScalarOver16
		numToScalarU32 = pdepNumToScalarU32
		numToVectorU64 = pdepNumToVectorU64
		return
	}

	scalarToNumU8 = baseScalarToNumU8
	scalarToNumU16 = baseScalarToNumU16
	scalarToNumOver16 = baseScalarToNumOver16
	scalarToNumU32 = baseScalarToNumU32
	vectorToNumU64 = baseVectorToNumU64

	numToScalarU8 = baseNumToScalarU8
	numToScalarU16 = baseNumToScalarU16
	numToScalarOver16 = baseNumToScalarOver16
	numToScalarU32 = baseNumToScalarU32
	numToVectorU64 = baseNumToVectorU64
}
