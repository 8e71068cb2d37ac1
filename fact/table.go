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

package fact

import "github.com/nilnoise/nilnoise/program"

// Table is a precomputed, gob-encodable implementation of every collaborator source, used by
// the snapshot pipeline: the collector materializes its facts into a Table so the triage
// phase can run in a separate process without re-running any analysis.
type Table struct {
	// Doomed holds locations after which no normal return is possible. Absent locations are
	// not doomed.
	Doomed map[program.Location]bool
	// Usages holds the required-usage descriptor per location.
	Usages map[program.Location]program.Usage
	// Variables maps locations to the resolved source variable name, when known.
	Variables map[program.Location]string
	// Called records whether the method is reachable from any entry point.
	Called bool
}

// NewTable returns an empty fact table for one method.
func NewTable() *Table {
	return &Table{
		Doomed:    make(map[program.Location]bool),
		Usages:    make(map[program.Location]program.Usage),
		Variables: make(map[program.Location]string),
		Called:    true,
	}
}

// Sources exposes the table through the collaborator source interfaces.
func (t *Table) Sources() Sources {
	return Sources{ReturnPath: t, Usages: t, Variables: t, Calls: t}
}

// CanReturnNormally implements ReturnPathSource.
func (t *Table) CanReturnNormally(loc program.Location) (bool, error) {
	return !t.Doomed[loc], nil
}

// UsageAt implements UsageSource.
func (t *Table) UsageAt(loc program.Location, _ program.ValueID) (program.Usage, error) {
	if u, ok := t.Usages[loc]; ok {
		return u, nil
	}
	return genericUsage(), nil
}

// VariableName implements VariableSource.
func (t *Table) VariableName(loc program.Location, _ program.ValueID) (string, bool) {
	name, ok := t.Variables[loc]
	return name, ok && name != ""
}

// CalledDirectlyOrIndirectly implements CallGraph.
func (t *Table) CalledDirectlyOrIndirectly(_ program.MethodRef) bool {
	return t.Called
}
