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

package heuristic

import (
	"testing"

	"github.com/nilnoise/nilnoise/program"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func model(regions []program.CatchRegion, lines *program.LineTable) *program.MethodModel {
	class := program.ClassRef{Name: "acme/Widget"}
	return &program.MethodModel{
		Class:        class,
		Method:       program.MethodRef{Class: class, Name: "render", Signature: "()V"},
		CatchRegions: regions,
		Lines:        lines,
	}
}

func at(pc int) program.Location {
	return program.Location{PC: pc}
}

func TestCatchNullIdiom(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name    string
		regions []program.CatchRegion
		pc      int
		want    bool
	}{
		{"npe catch of any size", []program.CatchRegion{{Family: program.CatchNullPointer, Start: 0, End: 500}}, 100, true},
		{"small runtime exception catch", []program.CatchRegion{{Family: program.CatchRuntimeException, Start: 10, End: 13}}, 11, true},
		{"small generic exception catch", []program.CatchRegion{{Family: program.CatchException, Start: 10, End: 14}}, 11, true},
		{"small throwable catch", []program.CatchRegion{{Family: program.CatchThrowable, Start: 10, End: 14}}, 11, true},
		{"broad runtime exception catch", []program.CatchRegion{{Family: program.CatchRuntimeException, Start: 0, End: 50}}, 11, false},
		{"exactly at the broad limit", []program.CatchRegion{{Family: program.CatchException, Start: 10, End: 15}}, 11, false},
		{"outside every region", []program.CatchRegion{{Family: program.CatchNullPointer, Start: 0, End: 10}}, 50, false},
		{"no regions", nil, 10, false},
	}
	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := model(tc.regions, nil)
			require.Equal(t, tc.want, InCatchNullBlock(m, at(tc.pc)))
		})
	}
}

func TestAllInCatchNull(t *testing.T) {
	t.Parallel()

	m := model([]program.CatchRegion{{Family: program.CatchNullPointer, Start: 0, End: 20}}, nil)
	require.True(t, AllInCatchNull(m, []program.Location{at(5), at(15)}))
	require.False(t, AllInCatchNull(m, []program.Location{at(5), at(25)}))
	require.False(t, AllInCatchNull(m, nil))
}

func TestUniqueLocationsAnyUniqueWins(t *testing.T) {
	t.Parallel()

	lines := &program.LineTable{Entries: []program.LineEntry{
		{PC: 10, Line: 7}, {PC: 20, Line: 7}, {PC: 30, Line: 9},
	}}
	m := model(nil, lines)

	// Both locations share the duplicated line 7.
	require.False(t, UniqueLocations(m, []program.Location{at(10), at(20)}))
	// One location on the unique line 9 is enough.
	require.True(t, UniqueLocations(m, []program.Location{at(10), at(30)}))
}

func TestUniqueLocationsWithoutLineTable(t *testing.T) {
	t.Parallel()

	// Absent line information cannot prove duplication.
	m := model(nil, nil)
	require.True(t, UniqueLocations(m, []program.Location{at(10), at(20)}))
}

type doomTable map[int]bool

func (d doomTable) Doomed(loc program.Location) bool {
	return d[loc.PC]
}

func TestDoomedKnob(t *testing.T) {
	t.Parallel()

	doom := doomTable{10: true, 20: false}
	locs := []program.Location{at(10), at(20)}

	require.True(t, Doomed(doom, locs, true))
	require.False(t, Doomed(doom, locs, false))

	allDoomed := []program.Location{at(10)}
	require.True(t, Doomed(doom, allDoomed, false))
	require.False(t, Doomed(doom, nil, true))
}

func TestUncallableMethod(t *testing.T) {
	t.Parallel()

	m := model(nil, nil)
	m.Restricted = true
	require.True(t, UncallableMethod(m, false))
	require.False(t, UncallableMethod(m, true))

	// A public method is externally callable even when the call graph never reaches it.
	m.Restricted = false
	require.False(t, UncallableMethod(m, false))
}

func TestTestCode(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		class  string
		method string
		want   bool
	}{
		{"acme/WidgetTest", "render", true},
		{"acme/Widget", "testRender", true},
		{"acme/Widget", "renderTest", true},
		{"acme/Widget", "render", false},
		// The class check is case sensitive, matching the reference behavior.
		{"acme/widgettest", "render", false},
	}
	for _, tc := range testcases {
		m := model(nil, nil)
		m.Class.Name = tc.class
		m.Method.Name = tc.method
		require.Equal(t, tc.want, TestCode(m), "class %s method %s", tc.class, tc.method)
	}
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
