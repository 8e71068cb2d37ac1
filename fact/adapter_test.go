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

import (
	"errors"
	"testing"

	"github.com/nilnoise/nilnoise/program"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type failingReturnPath struct {
	calls int
}

func (f *failingReturnPath) CanReturnNormally(program.Location) (bool, error) {
	f.calls++
	return false, errors.New("return path dataflow unavailable")
}

type failingUsages struct{}

func (failingUsages) UsageAt(program.Location, program.ValueID) (program.Usage, error) {
	return program.Usage{}, errors.New("usage dataflow unavailable")
}

func testModel() *program.MethodModel {
	class := program.ClassRef{Name: "acme/Widget"}
	return &program.MethodModel{
		Class:  class,
		Method: program.MethodRef{Class: class, Name: "render", Signature: "()V"},
	}
}

func TestDoomFailureDegradesToNotDoomed(t *testing.T) {
	t.Parallel()

	source := &failingReturnPath{}
	a := NewAdapter(nil, testModel(), Sources{ReturnPath: source})
	loc := program.Location{PC: 10}

	require.False(t, a.Doomed(loc))
	require.Equal(t, 1, source.calls)

	// The answer is cached for the lifetime of the method pass.
	require.False(t, a.Doomed(loc))
	require.Equal(t, 1, source.calls)
}

func TestUsageFailureDegradesToGenericDereference(t *testing.T) {
	t.Parallel()

	a := NewAdapter(nil, testModel(), Sources{Usages: failingUsages{}})
	usage := a.UsageAt(program.Location{PC: 10}, program.ValueID{Num: 1})
	require.Equal(t, program.UsageOther, usage.Kind)
	require.Equal(t, "dereference", usage.Description)
}

func TestAbsentSourcesAnswerNeutrally(t *testing.T) {
	t.Parallel()

	a := NewAdapter(nil, testModel(), Sources{})
	loc := program.Location{PC: 10}

	require.False(t, a.Doomed(loc))
	require.Equal(t, program.UsageOther, a.UsageAt(loc, program.ValueID{}).Kind)
	_, ok := a.VariableName(loc, program.ValueID{})
	require.False(t, ok)
	require.True(t, a.MethodCalled())
}

func TestTableBacksEverySource(t *testing.T) {
	t.Parallel()

	loc := program.Location{PC: 10}
	table := NewTable()
	table.Doomed[loc] = true
	table.Usages[loc] = program.Usage{Kind: program.UsageArrayOp}
	table.Variables[loc] = "widget"
	table.Called = false

	a := NewAdapter(nil, testModel(), table.Sources())
	require.True(t, a.Doomed(loc))
	require.Equal(t, program.UsageArrayOp, a.UsageAt(loc, program.ValueID{}).Kind)
	name, ok := a.VariableName(loc, program.ValueID{})
	require.True(t, ok)
	require.Equal(t, "widget", name)
	require.False(t, a.MethodCalled())

	// Locations outside the table get the neutral answers.
	other := program.Location{PC: 99}
	require.False(t, a.Doomed(other))
	require.Equal(t, program.UsageOther, a.UsageAt(other, program.ValueID{}).Kind)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
