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
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

var userHome = os.UserHomeDir

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "mioimport.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// card_dir may reference ${home}
	home, _ := userHome()
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"home": cty.StringVal(home),
		},
	}

	type hclConfig struct {
		CardDir        string   `hcl:"card_dir,optional"`
		DeviceFile     string   `hcl:"device_file,optional"`
		Categories     []string `hcl:"categories,optional"`
		Extensions     []string `hcl:"extensions,optional"`
		IgnorePatterns []string `hcl:"ignore_patterns,optional"`
		TempSuffix     string   `hcl:"temp_suffix,optional"`
		Eject          *struct {
			Command  string   `hcl:"command,optional"`
			Args     []string `hcl:"args,optional"`
			Disabled bool     `hcl:"disabled,optional"`
		} `hcl:"eject,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		CardDir:        hclCfg.CardDir,
		DeviceFile:     hclCfg.DeviceFile,
		Categories:     hclCfg.Categories,
		Extensions:     hclCfg.Extensions,
		IgnorePatterns: hclCfg.IgnorePatterns,
		TempSuffix:     hclCfg.TempSuffix,
	}
	if hclCfg.Eject != nil {
		cfg.Eject = EjectArgs{
			Command:  hclCfg.Eject.Command,
			Args:     hclCfg.Eject.Args,
			Disabled: hclCfg.Eject.Disabled,
		}
	}

	return cfg, nil
}
