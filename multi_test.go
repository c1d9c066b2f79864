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
	"bytes"
	"errors"
	"math"
	"testing"
)

// pad16 copies b into a fresh 16-byte block.
func pad16(b []byte) []byte {
	out := make([]byte, 16)
	copy(out, b)
	return out
}

// pairs32 is a deterministic spread of uint32 pairs covering every
// length combination from (1,1) to (5,5).
func pairs32() [][2]uint32 {
	var out [][2]uint32
	lens := []uint32{0, 1, 127, 128, 16383, 16384, 2097151, 2097152, 268435455, 268435456, math.MaxUint32}
	for _, a := range lens {
		for _, b := range lens {
			out = append(out, [2]uint32{a, b})
		}
	}
	return out
}

// ============================================================================
// Two-way decoder
// ============================================================================

func TestDecodeTwoU32(t *testing.T) {
	for _, p := range pairs32() {
		buf := pad16(encodeMultipleUvarints(uint64(p[0]), uint64(p[1])))

		a, b, total, err := DecodeTwo[uint32, uint32](buf)
		if err != nil {
			t.Fatalf("DecodeTwo(%d, %d): %v", p[0], p[1], err)
		}

		wantA, n1, _ := Decode[uint32](buf)
		wantB, n2, _ := Decode[uint32](buf[n1:])
		if a != wantA || b != wantB || total != n1+n2 {
			t.Fatalf("DecodeTwo(%d, %d) = (%d, %d, %d), want (%d, %d, %d)",
				p[0], p[1], a, b, total, wantA, wantB, n1+n2)
		}
	}
}

func TestDecodeTwoMixedWidths(t *testing.T) {
	t.Run("u64 then u32", func(t *testing.T) {
		buf := pad16(encodeMultipleUvarints(math.MaxUint64, 300))
		a, b, total, err := DecodeTwo[uint64, uint32](buf)
		if err != nil {
			t.Fatalf("DecodeTwo: %v", err)
		}
		if a != math.MaxUint64 || b != 300 || total != 12 {
			t.Errorf("DecodeTwo = (%d, %d, %d), want (%d, 300, 12)", a, b, total, uint64(math.MaxUint64))
		}
	})

	t.Run("u8 then u16", func(t *testing.T) {
		buf := pad16(encodeMultipleUvarints(255, 65535))
		a, b, total, err := DecodeTwo[uint8, uint16](buf)
		if err != nil {
			t.Fatalf("DecodeTwo: %v", err)
		}
		if a != 255 || b != 65535 || total != 5 {
			t.Errorf("DecodeTwo = (%d, %d, %d), want (255, 65535, 5)", a, b, total)
		}
	})

	t.Run("u32 then u64 short second", func(t *testing.T) {
		buf := pad16(encodeMultipleUvarints(1, 1))
		a, b, total, err := DecodeTwo[uint32, uint64](buf)
		if err != nil {
			t.Fatalf("DecodeTwo: %v", err)
		}
		if a != 1 || b != 1 || total != 2 {
			t.Errorf("DecodeTwo = (%d, %d, %d), want (1, 1, 2)", a, b, total)
		}
	})
}

func TestDecodeTwoErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{"first overflows", pad16(append(bytes.Repeat([]byte{0x80}, 5), 0x01, 0x01)), ErrOverflow},
		{"second overflows", pad16(append(encodeUvarint(1), bytes.Repeat([]byte{0x80}, 6)...)), ErrOverflow},
		{"first terminal byte stray bits", pad16([]byte{0x80, 0x80, 0x80, 0x80, 0x10, 0x01}), ErrOverflow},
		{"second terminal byte stray bits", pad16([]byte{0x01, 0x80, 0x80, 0x80, 0x80, 0x10}), ErrOverflow},
		{"empty input", nil, ErrNotEnoughBytes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := DecodeTwo[uint32, uint32](tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeTwoTruncated(t *testing.T) {
	// Both varints are well formed, but the caller's slice stops short
	// of the second one.
	buf := encodeMultipleUvarints(300, 300)
	_, _, _, err := DecodeTwo[uint32, uint32](buf[:3])
	if !errors.Is(err, ErrNotEnoughBytes) {
		t.Errorf("error = %v, want ErrNotEnoughBytes", err)
	}
}

func TestDecodeTwoRejectsOversizedPair(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a u64/u64 pair in one block")
		}
	}()
	_, _, _, _ = DecodeTwo[uint64, uint64](make([]byte, 16))
}

// ============================================================================
// Wide two-way decoder
// ============================================================================

func TestDecodeTwoWideU64(t *testing.T) {
	vals := [][2]uint64{
		{0, 0},
		{math.MaxUint64, math.MaxUint64},
		{1 << 63, 300},
		{300, 1 << 63},
		{16384, 16384},
	}
	for _, p := range vals {
		buf := encodeMultipleUvarints(p[0], p[1])
		a, b, total, err := DecodeTwoWide[uint64, uint64](buf)
		if err != nil {
			t.Fatalf("DecodeTwoWide(%d, %d): %v", p[0], p[1], err)
		}
		if a != p[0] || b != p[1] || total != len(buf) {
			t.Errorf("DecodeTwoWide(%d, %d) = (%d, %d, %d), want (%d, %d, %d)",
				p[0], p[1], a, b, total, p[0], p[1], len(buf))
		}
	}
}

func TestDecodeTwoWideErrors(t *testing.T) {
	if _, _, _, err := DecodeTwoWide[uint64, uint64](bytes.Repeat([]byte{0xFF}, 32)); !errors.Is(err, ErrOverflow) {
		t.Errorf("endless continuation: error = %v, want ErrOverflow", err)
	}
	buf := encodeMultipleUvarints(math.MaxUint64, math.MaxUint64)
	if _, _, _, err := DecodeTwoWide[uint64, uint64](buf[:12]); !errors.Is(err, ErrNotEnoughBytes) {
		t.Errorf("truncated: error = %v, want ErrNotEnoughBytes", err)
	}
}

// ============================================================================
// Four-way decoder
// ============================================================================

func TestDecodeFourU16(t *testing.T) {
	quads := [][4]uint16{
		{0, 0, 0, 0},
		{1, 127, 128, 16383},
		{16384, 65535, 0, 300},
		{65535, 65535, 65535, 65535},
		{127, 16383, 65535, 1},
	}
	for _, q := range quads {
		buf := pad16(encodeMultipleUvarints(uint64(q[0]), uint64(q[1]), uint64(q[2]), uint64(q[3])))

		a, b, c, d, total, err := DecodeFour[uint16, uint16, uint16, uint16](buf)
		if err != nil {
			t.Fatalf("DecodeFour(%v): %v", q, err)
		}

		pos := 0
		want := [4]uint16{}
		for i := range want {
			v, n, derr := Decode[uint16](buf[pos:])
			if derr != nil {
				t.Fatalf("reference decode %d: %v", i, derr)
			}
			want[i] = v
			pos += n
		}
		if a != want[0] || b != want[1] || c != want[2] || d != want[3] || total != pos {
			t.Fatalf("DecodeFour(%v) = (%d, %d, %d, %d, %d), want (%v, %d)", q, a, b, c, d, total, want, pos)
		}
	}
}

func TestDecodeFourMixedWidths(t *testing.T) {
	// u16, u16, u16, u32 has a worst case of 14 bytes and takes the
	// peeling path.
	buf := pad16(encodeMultipleUvarints(65535, 1, 300, math.MaxUint32))
	a, b, c, d, total, err := DecodeFour[uint16, uint16, uint16, uint32](buf)
	if err != nil {
		t.Fatalf("DecodeFour: %v", err)
	}
	if a != 65535 || b != 1 || c != 300 || d != math.MaxUint32 || total != 11 {
		t.Errorf("DecodeFour = (%d, %d, %d, %d, %d)", a, b, c, d, total)
	}
}

func TestDecodeFourU8(t *testing.T) {
	buf := pad16(encodeMultipleUvarints(1, 128, 255, 127))
	a, b, c, d, total, err := DecodeFour[uint8, uint8, uint8, uint8](buf)
	if err != nil {
		t.Fatalf("DecodeFour: %v", err)
	}
	if a != 1 || b != 128 || c != 255 || d != 127 || total != 6 {
		t.Errorf("DecodeFour = (%d, %d, %d, %d, %d), want (1, 128, 255, 127, 6)", a, b, c, d, total)
	}
}

func TestDecodeFourErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"third varint four bytes", pad16([]byte{0x01, 0x01, 0x80, 0x80, 0x80, 0x01, 0x01})},
		{"endless continuation", bytes.Repeat([]byte{0x80}, 16)},
		{"u16 terminal byte stray bits", pad16([]byte{0x01, 0xFF, 0xFF, 0x04, 0x01, 0x01})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, _, _, err := DecodeFour[uint16, uint16, uint16, uint16](tt.input)
			if !errors.Is(err, ErrOverflow) {
				t.Errorf("error = %v, want ErrOverflow", err)
			}
		})
	}
}

func TestDecodeFourRejectsOversizedQuad(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for four u32 targets in one block")
		}
	}()
	_, _, _, _, _, _ = DecodeFour[uint32, uint32, uint32, uint32](make([]byte, 16))
}

// ============================================================================
// Eight-way decoder
// ============================================================================

func TestDecodeEight(t *testing.T) {
	tests := []struct {
		name   string
		values [8]uint8
	}{
		{"all short", [8]uint8{0, 1, 2, 3, 4, 5, 6, 127}},
		{"all long", [8]uint8{128, 129, 200, 255, 128, 255, 130, 254}},
		{"mixed", [8]uint8{0, 255, 1, 254, 127, 128, 7, 200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf []byte
			for _, v := range tt.values {
				buf = Append[uint8](buf, v)
			}
			want := len(buf)

			vals, total, err := DecodeEight(pad16(buf))
			if err != nil {
				t.Fatalf("DecodeEight: %v", err)
			}
			if vals != tt.values || total != want {
				t.Errorf("DecodeEight = (%v, %d), want (%v, %d)", vals, total, tt.values, want)
			}
		})
	}
}

func TestDecodeEightErrors(t *testing.T) {
	// A three-byte varint in the mix is an overflow for uint8.
	input := pad16([]byte{0x01, 0x80, 0x80, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01})
	if _, _, err := DecodeEight(input); !errors.Is(err, ErrOverflow) {
		t.Errorf("error = %v, want ErrOverflow", err)
	}

	// A two-byte varint whose terminal byte exceeds one payload bit.
	input = pad16([]byte{0x80, 0x02, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01})
	if _, _, err := DecodeEight(input); !errors.Is(err, ErrOverflow) {
		t.Errorf("error = %v, want ErrOverflow", err)
	}
}

// ============================================================================
// Lookup tables
// ============================================================================

func TestDoubleLookupTable(t *testing.T) {
	// Mask 0b0000000001: byte zero is a continuation byte, so the
	// first varint is two bytes and the second is one.
	step := lookupDoubleStep1[0b0000000001]
	if step.len1 != 2 || step.len2 != 1 {
		t.Errorf("lengths = (%d, %d), want (2, 1)", step.len1, step.len2)
	}
	ctrl := lookupDoubleVec[step.index]
	want := [16]uint8{0, 1, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0}
	if ctrl != want {
		t.Errorf("shuffle control = %v, want %v", ctrl, want)
	}
}

func TestQuadLookupTable(t *testing.T) {
	// Mask 0b000000001001: continuation bits at bytes zero and three
	// give lengths 2, 1, 2, 1.
	rec := lookupQuadStep1[0b000000001001]
	l1 := int(rec>>8) & 0xf
	l2 := int(rec>>12) & 0xf
	l3 := int(rec>>16) & 0xf
	l4 := int(rec>>20) & 0xf
	if l1 != 2 || l2 != 1 || l3 != 2 || l4 != 1 {
		t.Errorf("lengths = (%d, %d, %d, %d), want (2, 1, 2, 1)", l1, l2, l3, l4)
	}
	if rec&quadInvalid != 0 {
		t.Error("record unexpectedly invalid")
	}

	ctrl := lookupQuadVec[rec&0xff]
	want := [16]uint8{
		0, 1, 0xFF, 0xFF,
		2, 0xFF, 0xFF, 0xFF,
		3, 4, 0xFF, 0xFF,
		5, 0xFF, 0xFF, 0xFF,
	}
	if ctrl != want {
		t.Errorf("shuffle control = %v, want %v", ctrl, want)
	}

	// A mask that never terminates within the block is marked invalid.
	if lookupQuadStep1[0xFFF]&quadInvalid == 0 {
		t.Error("all-continuation mask should be invalid")
	}
}

// ============================================================================
// Benchmarks
// ============================================================================

func BenchmarkDecodeTwoU32(b *testing.B) {
	buf := pad16(encodeMultipleUvarints(268435455, 300))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _, _ = DecodeTwo[uint32, uint32](buf)
	}
}

func BenchmarkDecodeFourU16(b *testing.B) {
	buf := pad16(encodeMultipleUvarints(65535, 300, 1, 16384))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _, _, _, _ = DecodeFour[uint16, uint16, uint16, uint16](buf)
	}
}

func BenchmarkDecodeEight(b *testing.B) {
	buf := pad16(encodeMultipleUvarints(1, 200, 3, 255, 5, 128, 7, 254))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = DecodeEight(buf)
	}
}
