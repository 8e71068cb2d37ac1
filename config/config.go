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

// Package config defines the process-wide configuration of the triage engine. It is read
// once at startup, validated, and passed by value into the engine at construction; the engine
// itself holds no ambient global state, which keeps it independently testable with different
// configurations in parallel.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the immutable triage configuration.
type Config struct {
	// ClassFilter restricts analysis to a single named class when non-empty (debugging aid).
	ClassFilter string `yaml:"class"`
	// MethodFilter restricts analysis to a single named method when non-empty.
	MethodFilter string `yaml:"method"`
	// DoomedAnySuffices controls the doomed-code heuristic: when true, one doomed
	// dereference location marks the whole candidate set as doomed code; when false, every
	// location must independently be doomed.
	DoomedAnySuffices bool `yaml:"doomed_any"`
	// Debug raises the log level to include per-candidate drop decisions.
	Debug bool `yaml:"debug"`
}

// Default returns the configuration used when no overrides are supplied.
func Default() Config {
	return Config{DoomedAnySuffices: true}
}

// Load reads a YAML configuration file over the defaults.
func Load(path string) (Config, error) {
	conf := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return conf, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &conf); err != nil {
		return conf, fmt.Errorf("parse config %q: %w", path, err)
	}
	return conf, nil
}

// WantsClass reports whether the class passes the class filter.
func (c Config) WantsClass(name string) bool {
	return c.ClassFilter == "" || c.ClassFilter == name
}

// WantsMethod reports whether the method passes the method filter.
func (c Config) WantsMethod(name string) bool {
	return c.MethodFilter == "" || c.MethodFilter == name
}
