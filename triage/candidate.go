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

import (
	"github.com/nilnoise/nilnoise/program"
	"github.com/nilnoise/nilnoise/property"
)

// State is the classification state of a candidate. Transitions are strictly forward:
// Raw -> Accumulated -> Prioritized -> (Emitted | Dropped), with drops possible from any
// pre-emission state.
type State uint8

const (
	// Raw is the state of a freshly received candidate.
	Raw State = iota
	// Accumulated means every heuristic has run and the property set is complete.
	Accumulated
	// Prioritized means a priority has been assigned; no heuristic may run after this.
	Prioritized
	// Emitted means the diagnostic was handed to the reporter.
	Emitted
	// Dropped means the candidate was judged noise and produced no diagnostic.
	Dropped
)

// String renders the state for logs.
func (s State) String() string {
	switch s {
	case Raw:
		return "raw"
	case Accumulated:
		return "accumulated"
	case Prioritized:
		return "prioritized"
	case Emitted:
		return "emitted"
	case Dropped:
		return "dropped"
	default:
		return "invalid"
	}
}

// candidate is the unit under triage: one dereference finding, alive only for the duration of
// one classification pass. Its property set is monotonically built; the final priority and
// emit decision are a pure function of the completed set plus the raw null state.
type candidate struct {
	locations  []program.Location
	value      program.ValueID
	state      program.NullState
	consistent bool
	usage      program.Usage
	props      *property.Set
	priority   property.Priority
	phase      State
}

func newCandidate(locs []program.Location, value program.ValueID, state program.NullState, consistent bool) *candidate {
	return &candidate{
		locations:  locs,
		value:      value,
		state:      state,
		consistent: consistent,
		props:      property.NewSet(),
		phase:      Raw,
	}
}

// primary returns the location used for the diagnostic annotations. Candidates always carry
// at least one location.
func (c *candidate) primary() program.Location {
	return c.locations[0]
}
