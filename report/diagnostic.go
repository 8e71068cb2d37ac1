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

// Package report assembles the final diagnostic record for a triaged candidate and forwards
// it to a Reporter. Assembly is a pure step: the engine hands over a prioritized candidate
// and the package builds the cause, variable, and source-line annotations exactly once.
package report

import (
	"fmt"

	"github.com/nilnoise/nilnoise/program"
	"github.com/nilnoise/nilnoise/property"
)

// CategoryNoiseNullDeref is the category tag of every diagnostic emitted by this engine.
const CategoryNoiseNullDeref = "NOISE_NULL_DEREFERENCE"

// UnknownVariable is the placeholder variable annotation used when the value identity cannot
// be mapped back to a source-level name.
const UnknownVariable = "?"

// Annotation is one descriptive element of a diagnostic: the cause of the dereference or the
// dereferenced variable.
type Annotation struct {
	// Role describes what the annotation denotes, e.g. "METHOD_CALLED" or "VALUE_OF".
	Role string
	Text string
}

// Diagnostic is the finalized record for one emitted candidate. It carries the completed
// warning property set so that downstream consumers can re-score confidence without
// re-running the heuristics.
type Diagnostic struct {
	Category   string
	Priority   property.Priority
	Class      program.ClassRef
	Method     program.MethodRef
	Location   program.Location
	Cause      Annotation
	Variable   Annotation
	SourceLine int
	Properties *property.Set
}

// String renders the diagnostic as a single log-friendly line.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s[%s] %s: %s on %s at line %d %s",
		d.Category, d.Priority, d.Method, d.Cause.Text, d.Variable.Text, d.SourceLine, d.Properties)
}

// CauseAnnotation builds the cause annotation from the required usage at the dereference
// site.
func CauseAnnotation(usage program.Usage) Annotation {
	switch usage.Kind {
	case program.UsageInvocation:
		return Annotation{Role: "METHOD_CALLED", Text: usage.Target.String()}
	case program.UsageFieldAccess:
		return Annotation{Role: "FIELD", Text: usage.Field.String()}
	case program.UsageArrayOp:
		return Annotation{Role: "OPERATION", Text: "array access"}
	default:
		text := usage.Description
		if text == "" {
			text = "dereference"
		}
		return Annotation{Role: "OPERATION", Text: text}
	}
}

// VariableAnnotation builds the variable annotation from a resolved name, or the placeholder
// when the mapping was not resolvable.
func VariableAnnotation(name string, ok bool) Annotation {
	if !ok || name == "" {
		return Annotation{Role: "VALUE_OF", Text: UnknownVariable}
	}
	return Annotation{Role: "VALUE_OF", Text: name}
}

// Build assembles the diagnostic for one emitted candidate. The source line comes from the
// method's line table when present, falling back to the line recorded on the location.
func Build(model *program.MethodModel, loc program.Location, usage program.Usage,
	variable Annotation, priority property.Priority, props *property.Set) Diagnostic {
	line := loc.Line
	if l, ok := model.Lines.SourceLine(loc.PC); ok {
		line = l
	}
	return Diagnostic{
		Category:   CategoryNoiseNullDeref,
		Priority:   priority,
		Class:      model.Class,
		Method:     model.Method,
		Location:   loc,
		Cause:      CauseAnnotation(usage),
		Variable:   variable,
		SourceLine: line,
		Properties: props,
	}
}
