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

// Multi-value decoders.
//
// One 16-byte load yields the continuation bitmap for every byte in
// the block. Where all the targets are narrow enough, the bitmap
// resolves through a precomputed table to the varint lengths and a
// single shuffle control that gathers every payload into its own lane;
// wider targets fall back to peeling one varint at a time off the
// block with a slide shuffle.

// BaseDecodeTwoUnsafe decodes two adjacent varints from a 16-byte
// block without overflow checks. Returns both values and their
// individual encoded lengths.
//
// The combined maximum encoded length of A and B must fit the block:
// pairing uint64 with uint64 panics. Use DecodeTwoWide for pairs of
// full-width targets.
func BaseDecodeTwoUnsafe[A, B Unsigned](src []byte) (A, B, int, int) {
	maxA, maxB := maxVarintBytes[A](), maxVarintBytes[B]()
	if maxA+maxB > 16 {
		panic("varint: two targets of this width cannot share a 16-byte block")
	}

	v := hwy.Load[uint8](src[:16])
	m := continuationBits(v)

	if maxA <= 5 && maxB <= 5 {
		// Both varints live inside the low ten bytes: one table hit
		// gives the lengths and the gather.
		step := lookupDoubleStep1[m&0x3ff]
		ctrl := lookupDoubleVec[step.index]
		comb := hwy.TableLookupBytes(v, vec16(ctrl))

		// The control's tail positions point at source byte zero;
		// clear everything at and past each length.
		var keep [16]uint8
		for i := 0; i < min(int(step.len1), 8); i++ {
			keep[i] = 0xFF
		}
		for i := 0; i < min(int(step.len2), 8); i++ {
			keep[8+i] = 0xFF
		}

		var out [16]byte
		hwy.Store(hwy.And(comb, vec16(keep)), out[:])

		a := scalarToNum[A](binary.LittleEndian.Uint64(out[0:8]))
		b := scalarToNum[B](binary.LittleEndian.Uint64(out[8:16]))
		return a, b, int(step.len1), int(step.len2)
	}

	// Wide pair: derive both lengths from the bitmap, take the first
	// varint in place and slide the block down to reach the second.
	bmNot := ^m
	l1 := bits.TrailingZeros32(bmNot) + 1
	l2 := bits.TrailingZeros32(bmNot>>uint(l1)) + 1

	first := hwy.And(v, vec16(prefixKeep(l1)))
	second := hwy.And(hwy.TableLookupBytes(v, vec16(slideCtrl(l1))), vec16(prefixKeep(l2)))

	var fa, fb [16]byte
	hwy.Store(first, fa[:])
	hwy.Store(second, fb[:])
	return vectorToNum[A](&fa), vectorToNum[B](&fb), l1, l2
}

// BaseDecodeFourUnsafe decodes four adjacent varints from a 16-byte
// block without overflow checks. Returns the values, the four encoded
// lengths, and an invalid flag: when set, some varint ran past the
// four-byte line the length table can resolve and every output is
// suspect.
//
// The combined maximum encoded length of the four targets must fit the
// block.
func BaseDecodeFourUnsafe[T, U, V, W Unsigned](src []byte) (T, U, V, W, int, int, int, int, bool) {
	maxT, maxU := maxVarintBytes[T](), maxVarintBytes[U]()
	maxV, maxW := maxVarintBytes[V](), maxVarintBytes[W]()
	if maxT+maxU+maxV+maxW > 16 {
		panic("varint: four targets of this width cannot share a 16-byte block")
	}

	vec := hwy.Load[uint8](src[:16])
	m := continuationBits(vec)

	if maxT <= 3 && maxU <= 3 && maxV <= 3 && maxW <= 3 {
		// All four varints live inside the low twelve bytes: one
		// record gives lengths, validity, and the gather; the control
		// zero-fills its tails, so lanes come out ready to compact.
		rec := lookupQuadStep1[m&0xfff]
		ctrl := lookupQuadVec[rec&0xff]

		var out [16]byte
		hwy.Store(hwy.TableLookupBytes(vec, vec16(ctrl)), out[:])

		a := scalarToNum[T](uint64(binary.LittleEndian.Uint32(out[0:4])))
		b := scalarToNum[U](uint64(binary.LittleEndian.Uint32(out[4:8])))
		c := scalarToNum[V](uint64(binary.LittleEndian.Uint32(out[8:12])))
		d := scalarToNum[W](uint64(binary.LittleEndian.Uint32(out[12:16])))

		return a, b, c, d,
			int(rec>>8) & 0xf, int(rec>>12) & 0xf, int(rec>>16) & 0xf, int(rec>>20) & 0xf,
			rec&quadInvalid != 0
	}

	// Wide mix: peel varints off the front one at a time.
	bmNot := ^m
	l1 := bits.TrailingZeros32(bmNot) + 1
	bmNot >>= uint(l1)
	l2 := bits.TrailingZeros32(bmNot) + 1
	bmNot >>= uint(l2)
	l3 := bits.TrailingZeros32(bmNot) + 1
	bmNot >>= uint(l3)
	l4 := bits.TrailingZeros32(bmNot) + 1

	var fa, fb, fc, fd [16]byte
	hwy.Store(hwy.And(vec, vec16(prefixKeep(l1))), fa[:])
	vec = hwy.TableLookupBytes(vec, vec16(slideCtrl(l1)))
	hwy.Store(hwy.And(vec, vec16(prefixKeep(l2))), fb[:])
	vec = hwy.TableLookupBytes(vec, vec16(slideCtrl(l2)))
	hwy.Store(hwy.And(vec, vec16(prefixKeep(l3))), fc[:])
	vec = hwy.TableLookupBytes(vec, vec16(slideCtrl(l3)))
	hwy.Store(hwy.And(vec, vec16(prefixKeep(l4))), fd[:])

	return vectorToNum[T](&fa), vectorToNum[U](&fb), vectorToNum[V](&fc), vectorToNum[W](&fd),
		l1, l2, l3, l4, false
}

// prefixKeep builds a byte mask keeping lanes 0..n-1.
func prefixKeep(n int) [16]uint8 {
	var keep [16]uint8
	for i := 0; i < min(n, 16); i++ {
		keep[i] = 0xFF
	}
	return keep
}

// slideCtrl builds a shuffle control moving lane i+n to lane i,
// zero-filling the tail.
func slideCtrl(n int) [16]uint8 {
	var ctrl [16]uint8
	for i := range ctrl {
		if j := i + n; j < 16 {
			ctrl[i] = uint8(j)
		} else {
			ctrl[i] = 0xFF
		}
	}
	return ctrl
}
