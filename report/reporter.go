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
	"fmt"
	"io"
)

// Reporter consumes finalized diagnostics. The engine invokes Report exactly once per
// non-dropped candidate and performs no retries; a failing reporter is the caller's concern.
type Reporter interface {
	Report(d Diagnostic) error
}

// Recorder is a Reporter that accumulates diagnostics in memory, for tests and for callers
// that post-process the stream themselves.
type Recorder struct {
	Diagnostics []Diagnostic
}

// Report implements Reporter.
func (r *Recorder) Report(d Diagnostic) error {
	r.Diagnostics = append(r.Diagnostics, d)
	return nil
}

// TextReporter writes one line per diagnostic to an io.Writer, for terminal use.
type TextReporter struct {
	W io.Writer
}

// Report implements Reporter.
func (t *TextReporter) Report(d Diagnostic) error {
	_, err := fmt.Fprintln(t.W, d.String())
	return err
}
