// Copyright 2025 walteh LLC
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

package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/mioimport/pkg/media"
	"gitlab.com/tozd/go/errors"
)

const (
	DefaultCardDir      = "/Volumes/NO NAME"
	DefaultDeviceFile   = "Device.xml"
	DefaultTempSuffix   = "-temp"
	DefaultEjectCommand = "diskutil"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// ⏏️ EjectArgs configures the external eject command.
// The card directory is appended as the last argument.
type EjectArgs struct {
	Command  string   `json:"command" yaml:"command"`
	Args     []string `json:"args" yaml:"args"`
	Disabled bool     `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	CardDir        string    `json:"card_dir" yaml:"card_dir"`
	DeviceFile     string    `json:"device_file" yaml:"device_file"`
	Categories     []string  `json:"categories" yaml:"categories"`
	Extensions     []string  `json:"extensions" yaml:"extensions"`
	IgnorePatterns []string  `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"`
	TempSuffix     string    `json:"temp_suffix" yaml:"temp_suffix"`
	Eject          EjectArgs `json:"eject" yaml:"eject"`
}

// 🏭 Default returns the configuration matching a stock card layout
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every unset field
func (cfg *Config) ApplyDefaults() {
	if cfg.CardDir == "" {
		cfg.CardDir = DefaultCardDir
	}
	if cfg.DeviceFile == "" {
		cfg.DeviceFile = DefaultDeviceFile
	}
	if len(cfg.Categories) == 0 {
		for _, c := range media.DefaultCategories() {
			cfg.Categories = append(cfg.Categories, string(c))
		}
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{"LOG", "MP4", "JPG"}
	}
	if cfg.TempSuffix == "" {
		cfg.TempSuffix = DefaultTempSuffix
	}
	if cfg.Eject.Command == "" {
		cfg.Eject.Command = DefaultEjectCommand
		if len(cfg.Eject.Args) == 0 {
			cfg.Eject.Args = []string{"eject"}
		}
	}
}

// 🎯 Load reads the file at path from fsys, fills defaults and validates the
// result. An empty path or an empty file yields the defaults.
func Load(ctx context.Context, fsys afero.Fs, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	if path == "" {
		logger.Debug().Msg("no config file given, using defaults")
		return Default(), nil
	}

	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, media.NewError(media.KindConfig, path, errors.Errorf("reading config file: %w", err))
	}

	p := GetParser(path)
	if p == nil {
		return nil, media.NewError(media.KindConfig, path, errors.Errorf("no parser found for file"))
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, media.NewError(media.KindConfig, path, err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, media.NewError(media.KindConfig, path, errors.Errorf("validating config: %w", err))
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.CardDir == "" {
		return errors.Errorf("card_dir is required")
	}
	if cfg.DeviceFile == "" {
		return errors.Errorf("device_file is required")
	}
	if cfg.TempSuffix == "" {
		return errors.Errorf("temp_suffix is required")
	}

	if len(cfg.Categories) == 0 {
		return errors.Errorf("at least one category is required")
	}
	seen := make(map[string]bool, len(cfg.Categories))
	for _, c := range cfg.Categories {
		if c == "" || strings.ContainsAny(c, `/\`) || c == "." || c == ".." {
			return errors.Errorf("invalid category %q", c)
		}
		if seen[c] {
			return errors.Errorf("duplicate category %q", c)
		}
		seen[c] = true
	}

	if len(cfg.Extensions) == 0 {
		return errors.Errorf("at least one extension is required")
	}
	for _, ext := range cfg.Extensions {
		if ext == "" || strings.HasPrefix(ext, ".") {
			return errors.Errorf("invalid extension %q (give it without the dot)", ext)
		}
	}

	for _, pattern := range cfg.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	if !cfg.Eject.Disabled && cfg.Eject.Command == "" {
		return errors.Errorf("eject.command is required unless eject is disabled")
	}

	return nil
}

// MediaCategories returns the configured categories in enumeration order
func (cfg *Config) MediaCategories() []media.Category {
	out := make([]media.Category, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		out = append(out, media.Category(c))
	}
	return out
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s [%s] *.{%s}", cfg.CardDir, strings.Join(cfg.Categories, ","), strings.Join(cfg.Extensions, ","))
}
