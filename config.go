// Copyright 2025 Naren Yellavula
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
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = ".avlkit.yaml"

type OutputConfig struct {
	// Format is one of json, yaml or tree.
	Format string `yaml:"format"`
	Indent int    `yaml:"indent"`
	Color  bool   `yaml:"color"`
}

type RunConfig struct {
	CheckInvariants bool `yaml:"check_invariants"`
	StopOnError     bool `yaml:"stop_on_error"`
	ShowProgress    bool `yaml:"show_progress"`
}

type GenerateConfig struct {
	Operations  int     `yaml:"operations"`
	MaxKey      int     `yaml:"max_key"`
	InsertRatio float64 `yaml:"insert_ratio"`
	DeleteRatio float64 `yaml:"delete_ratio"`
	FindRatio   float64 `yaml:"find_ratio"`
	UniqueKeys  bool    `yaml:"unique_keys"`
}

type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Run      RunConfig      `yaml:"run"`
	Generate GenerateConfig `yaml:"generate"`
}

var defaultConfig = Config{
	Output: OutputConfig{
		Format: "json",
		Indent: 4,
		Color:  true,
	},
	Run: RunConfig{
		CheckInvariants: true,
		StopOnError:     true,
	},
	Generate: GenerateConfig{
		Operations:  100,
		MaxKey:      1000,
		InsertRatio: 0.6,
		DeleteRatio: 0.2,
		FindRatio:   0.1,
	},
}

// LoadConfig reads ~/.avlkit.yaml. A missing or unreadable file yields the
// defaults.
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaults(), nil
	}
	return loadConfigFrom(configPath)
}

func defaults() *Config {
	c := defaultConfig
	return &c
}

// loadConfigFrom overlays the file at path on top of the defaults, so a
// partial file only changes the keys it names.
func loadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaults(), nil
	}

	config := defaults()
	if err := yaml.Unmarshal(data, config); err != nil {
		return defaults(), fmt.Errorf("parse %s: %w", path, err)
	}
	return config, nil
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

func writeDefaultConfig(path string) error {
	data, err := yaml.Marshal(&defaultConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func displaySettings() {
	configPath, err := getConfigPath()
	if err != nil {
		fmt.Printf("❌ Failed to get config path: %v\n", err)
		return
	}

	configExists := true
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configExists = false
		fmt.Printf("📝 Configuration file not found. Creating default configuration...\n\n")

		if err := writeDefaultConfig(configPath); err != nil {
			fmt.Printf("❌ Failed to create default config file: %v\n", err)
			return
		}
		fmt.Printf("✅ Created default configuration at: %s\n\n", configPath)
	}

	config, err := loadConfigFrom(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		return
	}

	fmt.Printf("🔧 avlkit Configuration Settings\n")
	fmt.Printf("═══════════════════════════════\n\n")

	if configExists {
		fmt.Printf("📍 Config file: %s\n", configPath)
	} else {
		fmt.Printf("📍 Config file: %s (newly created)\n", configPath)
	}
	fmt.Printf("📊 Current settings:\n\n")

	fmt.Printf("🌳 %sOutput:%s\n", Green, Reset)
	fmt.Printf("  • %sformat%s: %s\n", Green, Reset, config.Output.Format)
	fmt.Printf("  • %sindent%s: %d\n", Green, Reset, config.Output.Indent)
	fmt.Printf("  • %scolor%s: %t\n\n", Green, Reset, config.Output.Color)

	fmt.Printf("▶️  %sRun:%s\n", Green, Reset)
	fmt.Printf("  • %scheck_invariants%s: %t\n", Green, Reset, config.Run.CheckInvariants)
	fmt.Printf("    Validate the whole tree after every operation\n")
	fmt.Printf("  • %sstop_on_error%s: %t\n", Green, Reset, config.Run.StopOnError)
	fmt.Printf("    Abort a script when DeleteMin hits an empty tree\n")
	fmt.Printf("  • %sshow_progress%s: %t\n\n", Green, Reset, config.Run.ShowProgress)

	fmt.Printf("🎲 %sGenerate:%s\n", Green, Reset)
	fmt.Printf("  • %soperations%s: %d\n", Green, Reset, config.Generate.Operations)
	fmt.Printf("  • %smax_key%s: %d\n", Green, Reset, config.Generate.MaxKey)
	fmt.Printf("  • %sratios%s: insert %.2f, delete %.2f, find %.2f\n",
		Green, Reset, config.Generate.InsertRatio, config.Generate.DeleteRatio, config.Generate.FindRatio)
	fmt.Printf("  • %sunique_keys%s: %t\n\n", Green, Reset, config.Generate.UniqueKeys)

	fmt.Printf("💡 Command line flags override these values. Edit %s to change the defaults.\n", configPath)
}
