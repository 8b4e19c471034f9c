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
	"bytes"
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&EnvParser{})
}

// 🔧 EnvParser implements the Parser interface for dotenv files.
//
//	CARD_DIR="/Volumes/NO NAME"
//	CATEGORIES=Event,Video
//	EJECT_ARGS=eject,-force
//
// List values are comma separated.
type EnvParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *EnvParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".env")
}

// 📝 Parse parses the config from dotenv key/value pairs
func (p *EnvParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	env, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Errorf("parsing env: %w", err)
	}

	cfg := &Config{}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := env[k]
		switch k {
		case "CARD_DIR":
			cfg.CardDir = v
		case "DEVICE_FILE":
			cfg.DeviceFile = v
		case "CATEGORIES":
			cfg.Categories = splitList(v)
		case "EXTENSIONS":
			cfg.Extensions = splitList(v)
		case "IGNORE_PATTERNS":
			cfg.IgnorePatterns = splitList(v)
		case "TEMP_SUFFIX":
			cfg.TempSuffix = v
		case "EJECT_COMMAND":
			cfg.Eject.Command = v
		case "EJECT_ARGS":
			cfg.Eject.Args = splitList(v)
		case "EJECT_DISABLED":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, errors.Errorf("parsing %s: %w", k, err)
			}
			cfg.Eject.Disabled = b
		default:
			return nil, errors.Errorf("unknown key %q", k)
		}
	}

	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
