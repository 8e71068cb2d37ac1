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

package property

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestSetAddIsIdempotent(t *testing.T) {
	t.Parallel()

	s := NewSet()
	s.Add(DoomedCode)
	s.Add(ClosingNull)
	s.Add(DoomedCode)

	require.Equal(t, 2, s.Len())
	require.True(t, s.Has(DoomedCode))
	require.True(t, s.Has(ClosingNull))
	require.False(t, s.Has(FalsePositive))
	require.Equal(t, []Property{DoomedCode, ClosingNull}, s.Properties())
}

func TestSetStringFollowsInsertionOrder(t *testing.T) {
	t.Parallel()

	s := NewSet()
	require.Equal(t, "[]", s.String())

	s.Add(OnExceptionPath)
	s.Add(DerefsAreCloned)
	require.Equal(t, "[ON_EXCEPTION_PATH, DEREFS_ARE_CLONED]", s.String())
}

func TestSetEqualIgnoresOrder(t *testing.T) {
	t.Parallel()

	a, b := NewSet(), NewSet()
	a.Add(DoomedCode)
	a.Add(ClosingNull)
	b.Add(ClosingNull)
	b.Add(DoomedCode)
	require.True(t, a.Equal(b))

	b.Add(FalsePositive)
	require.False(t, a.Equal(b))
}

func TestPropertiesReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewSet()
	s.Add(DoomedCode)
	got := s.Properties()
	got[0] = FalsePositive
	require.Equal(t, []Property{DoomedCode}, s.Properties())
}

func TestPriorityStronger(t *testing.T) {
	t.Parallel()

	require.Equal(t, HighPriority, NormalPriority.Stronger())
	require.Equal(t, NormalPriority, LowPriority.Stronger())
	// Strengthening never goes beyond the strongest level.
	require.Equal(t, HighPriority, HighPriority.Stronger())
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
