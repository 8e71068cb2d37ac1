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

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestCatchSizePicksSmallestCoveringRegion(t *testing.T) {
	t.Parallel()

	m := &MethodModel{
		CatchRegions: []CatchRegion{
			{Family: CatchException, Start: 0, End: 100},
			{Family: CatchException, Start: 10, End: 14},
			{Family: CatchNullPointer, Start: 40, End: 60},
		},
	}

	require.Equal(t, 4, m.CatchSize(CatchException, 12))
	require.Equal(t, 100, m.CatchSize(CatchException, 30))
	require.Equal(t, 20, m.CatchSize(CatchNullPointer, 50))
	require.Equal(t, NoCatch, m.CatchSize(CatchNullPointer, 12))
	require.Equal(t, NoCatch, m.CatchSize(CatchThrowable, 12))
	// End is exclusive.
	require.Equal(t, 100, m.CatchSize(CatchException, 14))
}

func TestLineTableSourceLine(t *testing.T) {
	t.Parallel()

	table := &LineTable{Entries: []LineEntry{{PC: 0, Line: 10}, {PC: 8, Line: 11}, {PC: 20, Line: 12}}}

	line, ok := table.SourceLine(9)
	require.True(t, ok)
	require.Equal(t, 11, line)

	line, ok = table.SourceLine(100)
	require.True(t, ok)
	require.Equal(t, 12, line)

	_, ok = (*LineTable)(nil).SourceLine(5)
	require.False(t, ok)
}

func TestLineTableMultiplyMentioned(t *testing.T) {
	t.Parallel()

	table := &LineTable{Entries: []LineEntry{{PC: 0, Line: 10}, {PC: 8, Line: 11}, {PC: 20, Line: 10}}}
	multi := table.MultiplyMentioned()
	require.True(t, multi[10])
	require.False(t, multi[11])

	require.Empty(t, (*LineTable)(nil).MultiplyMentioned())
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
