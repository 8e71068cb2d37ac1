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

// Package nilnoise implements the decision core of a null-dereference bug-finding pass: it
// takes candidate findings computed by upstream dataflow analyses and triages each one into
// an emitted diagnostic with a confidence priority and warning properties, or a silent drop.
// The hard part is not detecting "this value might be null" -- that is the collaborating
// analyses' job -- but deciding when a theoretically-true finding is practically noise.
package nilnoise

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/nilnoise/nilnoise/config"
	"github.com/nilnoise/nilnoise/fact"
	"github.com/nilnoise/nilnoise/report"
	"github.com/nilnoise/nilnoise/snapshot"
	"github.com/nilnoise/nilnoise/triage"
)

// Run triages every finding in the archive and forwards surviving diagnostics to the
// reporter. Methods are processed sequentially; within one method a fresh fact adapter and
// engine are constructed, so no state leaks across methods. Only reporter failures surface
// as errors; analysis-side failures degrade per the fail-open policy and never abort the run.
func Run(log hclog.Logger, conf config.Config, archive *snapshot.Archive, rep report.Reporter) error {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	var errs []error
	for _, entry := range archive.Entries {
		model := entry.Model
		if model == nil {
			continue
		}
		if !conf.WantsClass(model.Class.Name) || !conf.WantsMethod(model.Method.Name) {
			continue
		}
		log.Debug("triaging method", "method", model.Method.String(), "findings", len(entry.Findings))

		var sources fact.Sources
		if entry.Facts != nil {
			sources = entry.Facts.Sources()
		}
		engine := triage.NewEngine(conf, log, fact.NewAdapter(log, model, sources), rep)
		for _, f := range entry.Findings {
			if err := engine.Dispatch(f); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", model.Method, err))
			}
		}
	}
	return errors.Join(errs...)
}
