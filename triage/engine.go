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

// Package triage hosts the classification engine: it receives candidate null-dereference
// findings from an upstream collector, runs every suppression heuristic over them, folds the
// outcomes into a warning property set and a priority, and decides per candidate whether a
// diagnostic is emitted or the finding is dropped as noise.
package triage

import (
	"github.com/hashicorp/go-hclog"
	"github.com/nilnoise/nilnoise/config"
	"github.com/nilnoise/nilnoise/fact"
	"github.com/nilnoise/nilnoise/heuristic"
	"github.com/nilnoise/nilnoise/program"
	"github.com/nilnoise/nilnoise/property"
	"github.com/nilnoise/nilnoise/report"
)

// Engine classifies candidates for one method. It holds no mutable state across candidates;
// the only per-method state is the read-only fact adapter, so candidates may be processed in
// any order. Construct one engine per (class, method) analysis pass.
type Engine struct {
	conf  config.Config
	log   hclog.Logger
	facts *fact.Adapter
	model *program.MethodModel
	rep   report.Reporter
}

// NewEngine creates an engine bound to one method's fact adapter and a reporter.
func NewEngine(conf config.Config, log hclog.Logger, facts *fact.Adapter, rep report.Reporter) *Engine {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Engine{
		conf:  conf,
		log:   log,
		facts: facts,
		model: facts.Model(),
		rep:   rep,
	}
}

// FoundNullDeref triages one candidate dereference finding. locs is the set of locations
// contributing to the finding (usually one). The returned error is non-nil only when the
// reporter itself fails; every analysis-side failure resolves to a drop or a logged neutral
// default.
func (e *Engine) FoundNullDeref(locs []program.Location, value program.ValueID, state program.NullState, consistent bool) error {
	cand := newCandidate(locs, value, state, consistent)
	if len(locs) == 0 {
		e.drop(cand, "no dereference locations")
		return nil
	}
	if !state.MeetsReportingBar() {
		e.drop(cand, "null state below reporting bar")
		return nil
	}
	if value.Has(program.FlagConstantClassObject) {
		e.drop(cand, "constant class object artifact")
		return nil
	}

	cand.usage = e.facts.UsageAt(cand.primary(), value)
	if cand.usage.Kind == program.UsageDynamicInvocation {
		e.drop(cand, "dynamically resolved invocation has no describable target")
		return nil
	}

	e.accumulate(cand)

	if cand.props.Has(property.FalsePositive) {
		// Recorded before the drop so the decision is auditable in debug logs.
		e.drop(cand, "all dereferences inside catch-null idiom")
		return nil
	}

	cand.priority = property.NormalPriority
	if !cand.state.OnComplicatedPath() {
		cand.priority = cand.priority.Stronger()
	}
	cand.phase = Prioritized

	variable := report.VariableAnnotation(e.facts.VariableName(cand.primary(), value))
	d := report.Build(e.model, cand.primary(), cand.usage, variable, cand.priority, cand.props)
	if err := e.rep.Report(d); err != nil {
		return err
	}
	cand.phase = Emitted
	return nil
}

// accumulate runs every suppression heuristic over the candidate's locations and unions the
// resulting properties. The step is idempotent and order independent: heuristics never read
// each other's output, only the shared facts.
func (e *Engine) accumulate(c *candidate) {
	if c.state.OnExceptionPath() {
		c.props.Add(property.OnExceptionPath)
	}
	if c.usage.IsCloseCall() {
		c.props.Add(property.ClosingNull)
	}
	if heuristic.Doomed(e.facts, c.locations, e.conf.DoomedAnySuffices) {
		c.props.Add(property.DoomedCode)
	}

	unique := heuristic.UniqueLocations(e.model, c.locations)
	if heuristic.AllInCatchNull(e.model, c.locations) {
		if !unique || heuristic.TestCode(e.model) {
			c.props.Add(property.FalsePositive)
		} else {
			c.props.Add(property.DerefsInCatchBlocks)
		}
	}
	if !unique {
		c.props.Add(property.DerefsAreCloned)
	}
	if heuristic.UncallableMethod(e.model, e.facts.MethodCalled()) {
		c.props.Add(property.InUncallableMethod)
	}
	c.phase = Accumulated
}

func (e *Engine) drop(c *candidate, reason string) {
	c.phase = Dropped
	e.log.Debug("candidate dropped",
		"method", e.model.Method.String(),
		"state", c.state.String(),
		"reason", reason,
		"properties", c.props.String())
}
