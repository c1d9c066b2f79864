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

// Package varint provides SIMD-accelerated encoding and decoding of
// LEB128 variable-length integers (the "varint" format used by Protocol
// Buffers, Apache Avro, and DWARF).
//
// A varint stores an unsigned integer as one to ten little-endian 7-bit
// groups, one group per byte. The high bit of each byte is a
// continuation flag: set on every byte except the last. Signed integers
// go through the ZigZag mapping first so that small magnitudes encode
// short.
//
// # Single values
//
// Encode and Decode work on one value at a time. Decoders consume a
// 16-byte window; shorter inputs are padded internally, so any slice
// holding a complete varint decodes correctly:
//
//	buf, n := varint.Encode[uint32](1337)
//	// buf[:n] == []byte{0xB9, 0x0A}
//
//	v, n, err := varint.Decode[uint32](buf[:])
//	// v == 1337, n == 2
//
// Decode validates that the encoded length and the terminal byte's
// payload fit the target width, returning ErrOverflow otherwise.
// DecodeUnsafe skips those checks for callers that already trust the
// input and can guarantee at least 16 readable bytes.
//
// # Multiple values
//
// DecodeTwo, DecodeFour, and DecodeEight consume several adjacent
// varints from a single 16-byte window. When every target is narrow
// enough, DecodeTwo and DecodeFour use precomputed shuffle tables,
// turning one boundary scan and one byte permute into as many decoded
// values as fit; wider mixes peel one varint at a time off the window.
// DecodeEight reads its eight uint8 values with a scalar loop.
// Decoding two uint32 values:
//
//	a, b, n, err := varint.DecodeTwo[uint32, uint32](data)
//
// DecodeBatch decodes an arbitrary run of varints into a slice, and
// FindVarintEnds exposes the raw boundary bitmap for callers that
// segment buffers themselves.
//
// # Signed values
//
// EncodeZigzag and DecodeZigzag handle int8 through int64.
// DecodeZigzagCompat16 additionally accepts the over-long three-byte
// form produced by encoders that widen 16-bit values before zig-zag
// encoding them.
//
// The codec functions hold no state, do no I/O, do not allocate on the
// scalar paths, and are safe for concurrent use. The only package state
// is the realization chosen by SetFastBitManip, which replaces
// package-level function variables without synchronization. Vectorized steps are expressed over
// the hwy capability surface and fall back to portable Go wherever no
// SIMD implementation is wired in.
package varint
