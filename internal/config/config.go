// Copyright 2017-25 the original author or authors.
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

// Package config loads optional CLI defaults from a YAML file. Flags
// always win over file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the default config file location.
const EnvConfigPath = "COORDEX_CONFIG"

// Config holds the CLI defaults.
type Config struct {
	Format string `yaml:"format"`
	Indent int    `yaml:"indent"`
	Cpus   uint16 `yaml:"cpus"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Format: "json",
		Indent: 2,
	}
}

// Load reads the config file if one exists, layering its values over the
// defaults. A missing file is not an error; a malformed one is.
func Load() (Config, error) {
	cfg := Default()

	path := os.Getenv(EnvConfigPath)
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}

		path = filepath.Join(home, ".config", "coordex", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("error reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config %s: %w", path, err)
	}

	return cfg, nil
}
