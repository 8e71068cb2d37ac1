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
)

func TestNullStateClassification(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		state       NullState
		meetsBar    bool
		complicated bool
		exception   bool
	}{
		{DefinitelyNull, true, false, false},
		{NullOnSimplePath, true, false, false},
		{NullOnComplicatedPath, true, true, false},
		{NullOnExceptionPath, true, true, true},
		{NullUnknown, false, false, false},
	}
	for _, tc := range testcases {
		tc := tc
		t.Run(tc.state.String(), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.meetsBar, tc.state.MeetsReportingBar())
			require.Equal(t, tc.complicated, tc.state.OnComplicatedPath())
			require.Equal(t, tc.exception, tc.state.OnExceptionPath())
		})
	}
}
