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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/nilnoise/nilnoise"
	"github.com/nilnoise/nilnoise/config"
	"github.com/nilnoise/nilnoise/report"
	"github.com/nilnoise/nilnoise/snapshot"
	"github.com/spf13/cobra"
)

func newTriageCmd() *cobra.Command {
	var (
		output string
		format string
	)
	cmd := &cobra.Command{
		Use:   "triage <snapshot>",
		Short: "Triage the findings of a previously written snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(conf)

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			archive, err := snapshot.Read(f)
			if err != nil {
				return err
			}
			return triageArchive(conf, log, archive, format, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "report file (stdout when empty)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "report format: 'text' or 'sarif'")
	return cmd
}

// triageArchive runs the engine over the archive and writes the report in the requested
// format. An empty format defaults to text.
func triageArchive(conf config.Config, log hclog.Logger, archive *snapshot.Archive, format, output string) (err error) {
	var w io.Writer = os.Stdout
	if output != "" {
		f, cerr := os.Create(output)
		if cerr != nil {
			return fmt.Errorf("create report: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}

	switch format {
	case "", "text":
		return nilnoise.Run(log, conf, archive, &report.TextReporter{W: w})
	case "sarif":
		rep, err := report.NewSarifReporter()
		if err != nil {
			return err
		}
		if err := nilnoise.Run(log, conf, archive, rep); err != nil {
			return err
		}
		return rep.Flush(w)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
