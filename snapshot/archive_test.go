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

package snapshot

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nilnoise/nilnoise/fact"
	"github.com/nilnoise/nilnoise/program"
	"github.com/nilnoise/nilnoise/triage"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func sampleArchive() *Archive {
	class := program.ClassRef{Name: "acme/Widget"}
	method := program.MethodRef{Class: class, Name: "render", Signature: "()V"}
	loc := program.Location{Method: method, Block: 1, Offset: 2, PC: 10, Line: 42}

	table := fact.NewTable()
	table.Doomed[loc] = true
	table.Usages[loc] = program.Usage{Kind: program.UsageFieldAccess, Field: program.FieldRef{Class: class, Name: "label"}}
	table.Variables[loc] = "label"

	return &Archive{Entries: []MethodEntry{{
		Model: &program.MethodModel{
			Class:        class,
			Method:       method,
			Restricted:   true,
			CodeSize:     100,
			CatchRegions: []program.CatchRegion{{Family: program.CatchNullPointer, Start: 0, End: 20}},
			Lines:        &program.LineTable{Entries: []program.LineEntry{{PC: 10, Line: 42}}},
		},
		Facts: table,
		Findings: []triage.Finding{{
			Kind:       triage.NullDeref,
			Locations:  []program.Location{loc},
			Value:      program.ValueID{Num: 1},
			State:      program.NullOnSimplePath,
			Consistent: true,
		}},
	}}}
}

func TestArchiveRoundTrip(t *testing.T) {
	t.Parallel()

	in := sampleArchive()
	var buf bytes.Buffer
	require.NoError(t, in.Write(&buf))

	out, err := Read(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("archive changed across round trip (-in +out):\n%s", diff)
	}
}

func TestReadRejectsForeignData(t *testing.T) {
	t.Parallel()

	_, err := Read(bytes.NewReader([]byte("definitely not a snapshot")))
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a nilnoise snapshot")

	_, err = Read(bytes.NewReader(nil))
	require.Error(t, err)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
