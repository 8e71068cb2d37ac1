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

// Package program defines the data model shared by the triage pipeline: program locations,
// value identities, null states, and the per-method models (catch regions, line tables) that
// the suppression heuristics read. Everything here is a plain immutable value; the dataflow
// analyses that populate these facts live outside this module and are consumed through the
// interfaces in the fact package.
package program

import "fmt"

// ClassRef identifies a class (or, for the Go demo collector, a package) under analysis.
type ClassRef struct {
	Name string
}

// MethodRef identifies a single method within a class. Signature uses the descriptor form of
// the upstream collector, e.g. "()V" for a no-argument void method.
type MethodRef struct {
	Class     ClassRef
	Name      string
	Signature string
}

// String renders the method in "class.name(signature)" form for logs and diagnostics.
func (m MethodRef) String() string {
	return fmt.Sprintf("%s.%s%s", m.Class.Name, m.Name, m.Signature)
}

// FieldRef identifies a field accessed by a dereference site.
type FieldRef struct {
	Class ClassRef
	Name  string
}

// String renders the field in "class.name" form.
func (f FieldRef) String() string {
	return fmt.Sprintf("%s.%s", f.Class.Name, f.Name)
}

// BlockID labels a basic block within a method body.
type BlockID int

// Location identifies one instruction occurrence within a method body. Many locations may map
// to the same source line (compiler-duplicated code), and a location's line may be unknown
// (Line == 0) when the method carries no line table. Locations are comparable values and are
// used as map keys throughout the pipeline.
type Location struct {
	Method MethodRef
	Block  BlockID
	// Offset is the intra-block instruction index.
	Offset int
	// PC is the instruction position within the method body, in the upstream collector's
	// units (bytecode offset for JVM-style collectors, file offset for the Go demo source).
	PC int
	// Line is the source line if known, 0 otherwise.
	Line int
}

// String renders the location for logs.
func (l Location) String() string {
	return fmt.Sprintf("%s @ block %d+%d (pc %d, line %d)", l.Method, l.Block, l.Offset, l.PC, l.Line)
}
