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

// Lookup tables for the multi-value decoders, built once at load time.
//
// The two-way decoder keys the low ten continuation bits (two varints
// of up to five bytes each). The four-way decoder keys the low twelve
// (four varints of up to three bytes each). Each mask resolves to a
// pair of lengths (or four of them) plus an index into a much smaller
// family of shuffle controls, so the hot path is two dependent table
// loads and one byte permute.

// doubleLookup resolves a 10-bit continuation mask for the two-way
// decoder.
type doubleLookup struct {
	// index selects the shuffle control in lookupDoubleVec.
	index uint8
	// len1, len2 are the exact encoded lengths derived from the mask,
	// unsaturated: values above ten mean the mask never terminates.
	len1, len2 uint8
}

var (
	// lookupDoubleVec holds one 16-byte shuffle control per length
	// pair (l1, l2) in 1..10 x 1..10. The low eight output bytes
	// gather varint one, the high eight varint two, each left
	// justified. Tail positions point at source byte zero and are
	// masked off after the permute.
	lookupDoubleVec [100][16]uint8

	// lookupDoubleStep1 maps a 10-bit continuation mask to its length
	// pair and shuffle control index.
	lookupDoubleStep1 [1024]doubleLookup

	// lookupQuadVec holds one 16-byte shuffle control per length
	// quadruple in 1..3 ^ 4. Each four-byte output group gathers one
	// varint, left justified, 0xFF (permute-to-zero) in the tail.
	lookupQuadVec [81][16]uint8

	// lookupQuadStep1 maps a 12-bit continuation mask to a packed
	// record: bits 0..7 shuffle control index, four 4-bit exact
	// lengths from bit 8, bit 31 set when any length runs past the
	// four-byte line and the record is unusable.
	lookupQuadStep1 [4096]uint32
)

const quadInvalid = uint32(1) << 31

func init() {
	buildDoubleTables()
	buildQuadTables()
}

func buildDoubleTables() {
	for l1 := 1; l1 <= 10; l1++ {
		for l2 := 1; l2 <= 10; l2++ {
			var ctrl [16]uint8
			k1 := min(l1, 8)
			k2 := min(l2, 8)
			for k := 0; k < k1; k++ {
				ctrl[k] = uint8(k)
			}
			for k := 0; k < k2; k++ {
				ctrl[8+k] = uint8(l1 + k)
			}
			lookupDoubleVec[(l1-1)*10+(l2-1)] = ctrl
		}
	}

	for m := 0; m < 1024; m++ {
		bmNot := ^uint32(m)
		l1 := bits.TrailingZeros32(bmNot) + 1
		l2 := bits.TrailingZeros32(bmNot>>uint(l1)) + 1
		index := (min(l1, 10)-1)*10 + (min(l2, 10) - 1)
		lookupDoubleStep1[m] = doubleLookup{
			index: uint8(index),
			len1:  uint8(l1),
			len2:  uint8(l2),
		}
	}
}

func buildQuadTables() {
	for l1 := 1; l1 <= 3; l1++ {
		for l2 := 1; l2 <= 3; l2++ {
			for l3 := 1; l3 <= 3; l3++ {
				for l4 := 1; l4 <= 3; l4++ {
					var ctrl [16]uint8
					for i := range ctrl {
						ctrl[i] = 0xFF
					}
					lens := [4]int{l1, l2, l3, l4}
					off := 0
					for g, l := range lens {
						for k := 0; k < l; k++ {
							ctrl[4*g+k] = uint8(off + k)
						}
						off += l
					}
					index := (l1-1)*27 + (l2-1)*9 + (l3-1)*3 + (l4 - 1)
					lookupQuadVec[index] = ctrl
				}
			}
		}
	}

	for m := 0; m < 4096; m++ {
		rem := ^uint32(m)
		var lens [4]int
		for i := range lens {
			l := bits.TrailingZeros32(rem) + 1
			lens[i] = l
			rem >>= uint(l)
		}

		// The shuffle index saturates each length to three so the
		// gather stays inside its four-byte group; the length fields
		// keep the exact values so the checked decoder can reject
		// anything past a width's ceiling.
		index := (min(lens[0], 3)-1)*27 +
			(min(lens[1], 3)-1)*9 +
			(min(lens[2], 3)-1)*3 +
			(min(lens[3], 3) - 1)

		rec := uint32(index) |
			uint32(lens[0])<<8 |
			uint32(lens[1])<<12 |
			uint32(lens[2])<<16 |
			uint32(lens[3])<<20
		if lens[0] > 4 || lens[1] > 4 || lens[2] > 4 || lens[3] > 4 {
			rec |= quadInvalid
		}
		lookupQuadStep1[m] = rec
	}
}
