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

//go:build amd64

package varint

import (
	"os"

	"golang.org/x/sys/cpu"
)

// HasFastBitManip reports whether this CPU executes packed bit
// extract/deposit (BMI2 PEXT/PDEP) in hardware. The feature flag alone
// is not enough to decide the dispatch: Zen, Zen + and Zen 2 advertise
// BMI2 but microcode the instructions, which is why the packed path is
// opt-in rather than keyed to the flag.
func HasFastBitManip() bool {
	return cpu.X86.HasBMI2
}

func init() {
	// Opt-in only, and only where the instructions exist at all.
	if os.Getenv("VARINT_FAST_BITMANIP") != "" && cpu.X86.HasBMI2 {
		SetFastBitManip(true)
	}
}
