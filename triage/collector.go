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

package triage

import "github.com/nilnoise/nilnoise/program"

// FindingKind distinguishes the inbound call paths from the upstream collector.
type FindingKind uint8

const (
	// NullDeref is a candidate possibly-null dereference; the only kind that can produce a
	// diagnostic.
	NullDeref FindingKind = iota
	// RedundantNullCheck is a comparison of a value against null whose outcome is already
	// known. Accepted and deliberately not diagnosed by this engine.
	RedundantNullCheck
	// GuaranteedNullDeref is a dereference guaranteed to fail on some path. Accepted and
	// deliberately not diagnosed by this engine.
	GuaranteedNullDeref
)

// Finding is one serializable unit reported by the upstream collector, as stored in
// snapshots and dispatched to the engine.
type Finding struct {
	Kind       FindingKind
	Locations  []program.Location
	Value      program.ValueID
	State      program.NullState
	Consistent bool
}

// Collector is the inbound contract of the triage engine: one call per discovered finding.
// Implementations must treat the redundant-check and guaranteed-deref paths producing no
// diagnostic as a valid, silent outcome, not an error.
type Collector interface {
	FoundNullDeref(locs []program.Location, value program.ValueID, state program.NullState, consistent bool) error
	FoundRedundantNullCheck(loc program.Location)
	FoundGuaranteedNullDeref(locs []program.Location, value program.ValueID)
}

var _ Collector = (*Engine)(nil)

// FoundRedundantNullCheck is a deliberate no-op: this engine triages possibly-null
// dereferences only and emits nothing for redundant comparisons.
func (e *Engine) FoundRedundantNullCheck(program.Location) {}

// FoundGuaranteedNullDeref is a deliberate no-op: guaranteed dereferences are the domain of
// a stricter detector, not this noise-oriented one.
func (e *Engine) FoundGuaranteedNullDeref([]program.Location, program.ValueID) {}

// Dispatch routes a serialized finding to the matching collector entry point.
func (e *Engine) Dispatch(f Finding) error {
	switch f.Kind {
	case NullDeref:
		return e.FoundNullDeref(f.Locations, f.Value, f.State, f.Consistent)
	case RedundantNullCheck:
		if len(f.Locations) > 0 {
			e.FoundRedundantNullCheck(f.Locations[0])
		}
		return nil
	case GuaranteedNullDeref:
		e.FoundGuaranteedNullDeref(f.Locations, f.Value)
		return nil
	default:
		return nil
	}
}
