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

// NullState classifies a value's nullability at a location, as computed by the collaborating
// null-state dataflow analysis. The variants are ordered by confidence: a value that is
// definitely null or null on a simple path is materially stronger evidence than one that is
// null only on a complicated or exception path.
type NullState uint8

const (
	// NullUnknown means the analysis has no evidence the value is null.
	NullUnknown NullState = iota
	// NullOnExceptionPath means the value is null only along a path that involves exception
	// control flow.
	NullOnExceptionPath
	// NullOnComplicatedPath means the value is null along some non-trivial path.
	NullOnComplicatedPath
	// NullOnSimplePath means the value is null along a simple path.
	NullOnSimplePath
	// DefinitelyNull means the value is null on every path reaching the location.
	DefinitelyNull
)

// MeetsReportingBar reports whether the state is at least "null on a complicated path", the
// minimum evidence required for a candidate to survive triage at all.
func (n NullState) MeetsReportingBar() bool {
	return n >= NullOnComplicatedPath || n == NullOnExceptionPath
}

// OnComplicatedPath reports whether only the lower-confidence complicated-path or
// exception-path evidence is available. Candidates in this band keep the normal priority;
// anything stronger is promoted one step.
func (n NullState) OnComplicatedPath() bool {
	return n == NullOnComplicatedPath || n == NullOnExceptionPath
}

// OnExceptionPath reports whether the null flow involves exception control flow.
func (n NullState) OnExceptionPath() bool {
	return n == NullOnExceptionPath
}

// String returns the upstream analysis's name for the state.
func (n NullState) String() string {
	switch n {
	case DefinitelyNull:
		return "DEFINITELY_NULL"
	case NullOnSimplePath:
		return "NULL_ON_SIMPLE_PATH"
	case NullOnComplicatedPath:
		return "NULL_ON_COMPLICATED_PATH"
	case NullOnExceptionPath:
		return "NULL_ON_EXCEPTION_PATH"
	default:
		return "UNKNOWN"
	}
}
