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

// Package fact provides the read-only view over collaborator-supplied per-location facts:
// return-path doom status, required-usage descriptors, variable names, and call-graph
// reachability. The Adapter performs no analysis of its own; it delegates to the collaborator
// sources and degrades to neutral defaults when a source fails, so that one missing fact
// never aborts the triage of a method.
package fact

import (
	"github.com/hashicorp/go-hclog"
	"github.com/nilnoise/nilnoise/program"
)

// ReturnPathSource answers whether execution can complete normally after a location. It is
// typically backed by a return-path dataflow analysis that may fail for a given method.
type ReturnPathSource interface {
	CanReturnNormally(loc program.Location) (bool, error)
}

// UsageSource describes the operation at a location that requires the tracked value to be
// non-null.
type UsageSource interface {
	UsageAt(loc program.Location, value program.ValueID) (program.Usage, error)
}

// VariableSource maps a value identity back to a source-level variable name when the mapping
// is resolvable.
type VariableSource interface {
	VariableName(loc program.Location, value program.ValueID) (string, bool)
}

// CallGraph answers whether a method is invoked, directly or transitively, from any reachable
// entry point.
type CallGraph interface {
	CalledDirectlyOrIndirectly(method program.MethodRef) bool
}

// Sources bundles the collaborator analyses backing one method's Adapter. Any member may be
// nil, in which case the adapter answers with the neutral default for that concern.
type Sources struct {
	ReturnPath ReturnPathSource
	Usages     UsageSource
	Variables  VariableSource
	Calls      CallGraph
}

// Adapter is the per-method fact view handed to the heuristics and the triage engine. It is
// bound to exactly one method's analysis pass and must not be shared across concurrent
// analyses of different methods; construct a fresh adapter per method instead. Doom status is
// computed lazily and cached for the lifetime of the pass.
type Adapter struct {
	log     hclog.Logger
	model   *program.MethodModel
	sources Sources
	doomed  map[program.Location]bool
}

// NewAdapter binds an adapter to one method model and its collaborator sources.
func NewAdapter(log hclog.Logger, model *program.MethodModel, sources Sources) *Adapter {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Adapter{
		log:     log,
		model:   model,
		sources: sources,
		doomed:  make(map[program.Location]bool),
	}
}

// Model returns the method model the adapter is bound to.
func (a *Adapter) Model() *program.MethodModel {
	return a.model
}

// Doomed reports whether no normal return is possible after the location. A failing or absent
// return-path source degrades to "not doomed": a triage subsystem must not lose the whole
// method because one auxiliary fact is unavailable.
func (a *Adapter) Doomed(loc program.Location) bool {
	if doomed, ok := a.doomed[loc]; ok {
		return doomed
	}
	doomed := false
	if a.sources.ReturnPath != nil {
		canReturn, err := a.sources.ReturnPath.CanReturnNormally(loc)
		if err != nil {
			a.log.Warn("return path analysis unavailable, assuming not doomed",
				"method", a.model.Method, "location", loc, "error", err)
		} else {
			doomed = !canReturn
		}
	}
	a.doomed[loc] = doomed
	return doomed
}

// UsageAt returns the operation at the location requiring the value to be non-null. A failing
// or absent usage source degrades to a generic dereference description.
func (a *Adapter) UsageAt(loc program.Location, value program.ValueID) program.Usage {
	if a.sources.Usages == nil {
		return genericUsage()
	}
	usage, err := a.sources.Usages.UsageAt(loc, value)
	if err != nil {
		a.log.Warn("usage analysis unavailable, using generic dereference",
			"method", a.model.Method, "location", loc, "error", err)
		return genericUsage()
	}
	return usage
}

// VariableName resolves the value identity to a source-level variable name. ok is false when
// the mapping cannot be resolved; callers substitute a placeholder annotation.
func (a *Adapter) VariableName(loc program.Location, value program.ValueID) (string, bool) {
	if a.sources.Variables == nil {
		return "", false
	}
	return a.sources.Variables.VariableName(loc, value)
}

// MethodCalled reports whether the adapter's method is invoked from any reachable entry
// point. An absent call graph conservatively answers true.
func (a *Adapter) MethodCalled() bool {
	if a.sources.Calls == nil {
		return true
	}
	return a.sources.Calls.CalledDirectlyOrIndirectly(a.model.Method)
}

func genericUsage() program.Usage {
	return program.Usage{Kind: program.UsageOther, Description: "dereference"}
}
