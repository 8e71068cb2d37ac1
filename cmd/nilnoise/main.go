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

// The nilnoise command collects candidate null-dereference findings from Go source and
// triages them into diagnostics. `nilnoise scan` runs the demo collector and either triages
// immediately or writes a snapshot; `nilnoise triage` replays a previously written snapshot.
package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/nilnoise/nilnoise/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	classFlag  string
	methodFlag string
	doomedAny  bool
	debugFlag  bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nilnoise",
		Short:         "Triage candidate null-dereference findings into low-noise diagnostics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&classFlag, "class", "", "restrict analysis to one class/package")
	root.PersistentFlags().StringVar(&methodFlag, "method", "", "restrict analysis to one method")
	root.PersistentFlags().BoolVar(&doomedAny, "doomed-any", true, "one doomed location marks the candidate set as doomed code")
	root.PersistentFlags().BoolVar(&debugFlag, "debug", false, "log per-candidate triage decisions")
	root.AddCommand(newScanCmd(), newTriageCmd())
	return root
}

// loadConfig merges the optional config file with flag overrides, highest priority last.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	conf := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return conf, err
		}
		conf = loaded
	}
	if cmd.Flags().Changed("class") {
		conf.ClassFilter = classFlag
	}
	if cmd.Flags().Changed("method") {
		conf.MethodFilter = methodFlag
	}
	if cmd.Flags().Changed("doomed-any") {
		conf.DoomedAnySuffices = doomedAny
	}
	if cmd.Flags().Changed("debug") {
		conf.Debug = debugFlag
	}
	return conf, nil
}

func newLogger(conf config.Config) hclog.Logger {
	level := hclog.Info
	if conf.Debug {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "nilnoise",
		Output: os.Stderr,
		Level:  level,
	})
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "nilnoise: %v\n", err)
		os.Exit(1)
	}
}
