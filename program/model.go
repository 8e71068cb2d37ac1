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

import "math"

// CatchFamily names an exception family guarding a catch region. Only the families consulted
// by the catch-null idiom heuristic are modeled.
type CatchFamily uint8

const (
	// CatchNullPointer is the NullPointerException-equivalent family.
	CatchNullPointer CatchFamily = iota
	// CatchException is the generic checked-exception root.
	CatchException
	// CatchRuntimeException is the unchecked-exception root.
	CatchRuntimeException
	// CatchThrowable is the root of the whole exception hierarchy.
	CatchThrowable
)

// NoCatch is the CatchSize result when no region of the requested family covers a location.
const NoCatch = math.MaxInt

// CatchRegion is one exception-handler-protected range of a method body. Start is inclusive,
// End exclusive, both in the same units as Location.PC.
type CatchRegion struct {
	Family CatchFamily
	Start  int
	End    int
}

// covers reports whether pc falls inside the protected range.
func (r CatchRegion) covers(pc int) bool {
	return pc >= r.Start && pc < r.End
}

// size is the byte length of the protected range.
func (r CatchRegion) size() int {
	return r.End - r.Start
}

// LineEntry maps one instruction position to its source line.
type LineEntry struct {
	PC   int
	Line int
}

// LineTable is a method's instruction-to-source-line mapping. A nil LineTable means line
// information is entirely absent for the method.
type LineTable struct {
	Entries []LineEntry
}

// SourceLine returns the source line for the instruction at pc: the line of the entry with
// the greatest position not greater than pc. ok is false when the table has no entry at or
// before pc.
func (t *LineTable) SourceLine(pc int) (line int, ok bool) {
	if t == nil {
		return 0, false
	}
	best := -1
	for _, e := range t.Entries {
		if e.PC <= pc && e.PC > best {
			best = e.PC
			line = e.Line
			ok = true
		}
	}
	return line, ok
}

// MultiplyMentioned returns the set of source lines produced by more than one entry in the
// table, which is consistent with compiler-driven code duplication (inlined finally and
// synchronized blocks, for example).
func (t *LineTable) MultiplyMentioned() map[int]bool {
	if t == nil {
		return nil
	}
	seen := make(map[int]int, len(t.Entries))
	for _, e := range t.Entries {
		seen[e.Line]++
	}
	multi := make(map[int]bool)
	for line, n := range seen {
		if n > 1 {
			multi[line] = true
		}
	}
	return multi
}

// MethodModel is the read-only structural view of one method body: identity, visibility, its
// catch regions, and its line table. It is constructed once per method by the upstream
// collector and shared read-only with the heuristics.
type MethodModel struct {
	Class  ClassRef
	Method MethodRef
	// Restricted is true when the method's declared visibility makes it not externally
	// callable (private for JVM-style collectors, unexported for the Go demo source).
	Restricted bool
	// CodeSize is the length of the method body in Location.PC units.
	CodeSize     int
	CatchRegions []CatchRegion
	Lines        *LineTable
}

// CatchSize returns the size of the smallest catch region of the given family covering pc, or
// NoCatch when the location is not covered by any region of that family.
func (m *MethodModel) CatchSize(family CatchFamily, pc int) int {
	size := NoCatch
	for _, r := range m.CatchRegions {
		if r.Family == family && r.covers(pc) && r.size() < size {
			size = r.size()
		}
	}
	return size
}
