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

// Package property defines the warning properties accumulated during triage and the priority
// scale of emitted diagnostics. A property records one contributing signal about a candidate;
// the completed set is forwarded with every diagnostic so that downstream consumers (relaxed
// mode re-scoring, data mining) can adjust confidence without re-running the heuristics.
package property

// Property tags one contributing signal observed while triaging a candidate.
type Property string

const (
	// OnExceptionPath marks candidates whose null flow involves exception control flow.
	OnExceptionPath Property = "ON_EXCEPTION_PATH"
	// DoomedCode marks candidates inside code that cannot complete normally.
	DoomedCode Property = "DOOMED_CODE"
	// DerefsInCatchBlocks marks candidates whose dereferences all sit inside catch-null
	// idiom regions but are otherwise credible.
	DerefsInCatchBlocks Property = "DEREFS_IN_CATCH_BLOCKS"
	// DerefsAreCloned marks candidates whose source line is shared by unrelated
	// instructions, consistent with compiler-driven duplication.
	DerefsAreCloned Property = "DEREFS_ARE_CLONED"
	// InUncallableMethod marks candidates inside a method that is never invoked from any
	// reachable entry point and is not externally callable.
	InUncallableMethod Property = "IN_UNCALLABLE_METHOD"
	// FalsePositive marks candidates judged to be noise; it is recorded before the drop for
	// audit purposes.
	FalsePositive Property = "FALSE_POSITIVE"
	// ClosingNull marks invocations of close() on a possibly-null resource, a distinct
	// higher-signal sub-case of a generic invocation.
	ClosingNull Property = "CLOSING_NULL"
)

// Priority is the confidence level of an emitted diagnostic. Lower numbers are stronger.
type Priority int

const (
	// HighPriority is the strongest confidence level.
	HighPriority Priority = 1
	// NormalPriority is the base level assigned before any adjustment.
	NormalPriority Priority = 2
	// LowPriority is the weakest level still worth emitting.
	LowPriority Priority = 3
)

// Stronger returns the priority strengthened by one step, never going beyond HighPriority.
func (p Priority) Stronger() Priority {
	if p <= HighPriority {
		return HighPriority
	}
	return p - 1
}

// String renders the priority for reports and logs.
func (p Priority) String() string {
	switch p {
	case HighPriority:
		return "HIGH"
	case NormalPriority:
		return "NORMAL"
	case LowPriority:
		return "LOW"
	default:
		return "IGNORE"
	}
}
