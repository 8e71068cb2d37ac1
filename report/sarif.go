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

package report

import (
	"io"

	"github.com/nilnoise/nilnoise/property"
	"github.com/owenrumney/go-sarif/v2/sarif"
)

const toolName = "nilnoise"
const toolURI = "https://github.com/nilnoise/nilnoise"

// SarifReporter accumulates diagnostics into a SARIF 2.1.0 run. Call Flush once at the end of
// the analysis to write the report.
type SarifReporter struct {
	doc *sarif.Report
	run *sarif.Run
}

// NewSarifReporter creates an empty SARIF reporter.
func NewSarifReporter() (*SarifReporter, error) {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, err
	}
	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	return &SarifReporter{doc: doc, run: run}, nil
}

// Report implements Reporter.
func (s *SarifReporter) Report(d Diagnostic) error {
	rule := s.run.AddRule(d.Category).
		WithDescription("Possible null pointer dereference")

	location := sarif.NewLocation().WithPhysicalLocation(
		sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().WithUri(d.Class.Name)).
			WithRegion(sarif.NewRegion().WithStartLine(d.SourceLine)),
	)

	pb := sarif.NewPropertyBag()
	pb.Add("method", d.Method.String())
	pb.Add("cause", d.Cause.Text)
	pb.Add("variable", d.Variable.Text)
	props := d.Properties.Properties()
	tags := make([]string, len(props))
	for i, p := range props {
		tags[i] = string(p)
	}
	pb.Add("warningProperties", tags)

	result := sarif.NewRuleResult(rule.ID).
		WithMessage(sarif.NewTextMessage(d.String())).
		WithLevel(sarifLevel(d.Priority)).
		WithLocations([]*sarif.Location{location})
	result.AttachPropertyBag(pb)
	s.run.AddResult(result)
	return nil
}

// Flush finalizes the run and writes the report.
func (s *SarifReporter) Flush(w io.Writer) error {
	s.doc.AddRun(s.run)
	return s.doc.PrettyWrite(w)
}

func sarifLevel(p property.Priority) string {
	switch p {
	case property.HighPriority:
		return "error"
	case property.NormalPriority:
		return "warning"
	default:
		return "note"
	}
}
