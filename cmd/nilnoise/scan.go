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
	"os"

	"github.com/nilnoise/nilnoise/collect/gosrc"
	"github.com/nilnoise/nilnoise/snapshot"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var (
		output string
		format string
	)
	cmd := &cobra.Command{
		Use:   "scan [dirs...]",
		Short: "Collect findings from Go source directories and triage them, or write a snapshot",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(conf)

			archive, err := gosrc.New(log).Dirs(args...)
			if err != nil {
				return err
			}
			log.Info("collection complete", "methods", len(archive.Entries))

			if output != "" && format == "" {
				return writeSnapshot(archive, output)
			}
			return triageArchive(conf, log, archive, format, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (snapshot when no --format, report otherwise)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "triage immediately and report as 'text' or 'sarif'")
	return cmd
}

func writeSnapshot(archive *snapshot.Archive, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return archive.Write(f)
}
