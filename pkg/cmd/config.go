// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/walker"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds the settings which can be given in a configuration file.  Any
// setting given on the command line takes precedence.
type Config struct {
	Verbose bool `yaml:"verbose"`
	// Report warnings as errors
	Strict bool `yaml:"strict"`
	// Suggest similar names for unknown identifiers (default true)
	Hints *bool `yaml:"hints"`
	// Maximum number of errors reported per file, where 0 means no limit
	MaxErrors int `yaml:"max_errors"`
	// File to which metrics are written after each check, or empty for none
	Metrics string `yaml:"metrics"`
}

// LoadConfig loads settings from a YAML file, applying defaults for anything
// not given and then validating the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}
	//
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}
	//
	ApplyDefaults(&cfg)
	//
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration file %q: %w", path, err)
	}
	//
	return &cfg, nil
}

// DefaultConfig returns the settings used when no configuration file is given.
func DefaultConfig() *Config {
	var cfg Config
	//
	ApplyDefaults(&cfg)
	//
	return &cfg
}

// ApplyDefaults fills in any setting which was not given.
func ApplyDefaults(cfg *Config) {
	if cfg.Hints == nil {
		hints := true
		cfg.Hints = &hints
	}
}

// Validate checks the settings are sensible.
func (p *Config) Validate() error {
	if p.MaxErrors < 0 {
		return errors.New("max_errors cannot be negative")
	} else if p.Metrics != "" {
		if info, err := os.Stat(p.Metrics); err == nil && info.IsDir() {
			return fmt.Errorf("metrics file %q is a directory", p.Metrics)
		}
	}
	//
	return nil
}

// Checker returns the configuration of the checking pipeline.
func (p *Config) Checker() fzn.Config {
	return fzn.Config{Strict: p.Strict, Walker: walker.Config{Hints: *p.Hints}}
}

// Determine the settings for a given command, by reading the configuration file
// (if given) and then overriding with any flags set explicitly.
func getConfig(cmd *cobra.Command) *Config {
	var (
		cfg  = DefaultConfig()
		path = GetString(cmd, "config")
		err  error
	)
	//
	if path != "" {
		if cfg, err = LoadConfig(path); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	overrideConfig(cmd, cfg)
	//
	if err = cfg.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	//
	return cfg
}

func overrideConfig(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	//
	if flags.Changed("verbose") {
		cfg.Verbose = GetFlag(cmd, "verbose")
	}
	//
	if flags.Changed("strict") {
		cfg.Strict = GetFlag(cmd, "strict")
	}
	//
	if flags.Changed("hints") {
		hints := GetFlag(cmd, "hints")
		cfg.Hints = &hints
	}
	//
	if flags.Changed("max-errors") {
		cfg.MaxErrors = GetInt(cmd, "max-errors")
	}
	//
	if flags.Lookup("metrics") != nil && flags.Changed("metrics") {
		cfg.Metrics = GetString(cmd, "metrics")
	}
}
