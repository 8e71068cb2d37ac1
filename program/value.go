//  Copyright (c) 2023 Uber Technologies, Inc.
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

package program

// ValueFlags is a bit set of markers attached to a value identity by the upstream
// value-numbering analysis.
type ValueFlags uint32

const (
	// FlagConstantClassObject marks values that are class-literal artifacts rather than real
	// runtime references. Candidates on such values are dropped during triage.
	FlagConstantClassObject ValueFlags = 1 << iota
)

// ValueID is the equivalence-class token assigned to a runtime value by the collaborating
// value-numbering analysis. Two locations referencing the same ValueID refer to provably the
// same value. The token is opaque outside comparison and flag queries.
type ValueID struct {
	Num   int
	Flags ValueFlags
}

// Has reports whether the value carries all of the given flags.
func (v ValueID) Has(flags ValueFlags) bool {
	return v.Flags&flags == flags
}
