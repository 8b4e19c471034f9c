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

package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/walteh/mioimport/pkg/status"
	"gitlab.com/tozd/go/errors"
)

func TestConsole(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	ctx := context.Background()
	logs := &bytes.Buffer{}
	user := &bytes.Buffer{}

	c := NewConsole(New(logs, zerolog.Nop()).WithTargetRoot("/target"), NewUserLogger(ctx).WithWriter(user))

	c.StageStarted(ctx, "building manifest")
	c.DeviceIdentified(ctx, "MiVue 798")
	c.PlanReady(ctx, *status.NewProgress(0, 0), 2)
	c.Ejected(ctx, "/Volumes/NO NAME", errors.New("resource busy"))

	assert.Contains(t, user.String(), "building manifest")
	assert.Contains(t, user.String(), "got device name: MiVue 798")
	assert.Contains(t, user.String(), "ejecting /Volumes/NO NAME failed")
	assert.Contains(t, logs.String(), "nothing to import (2 already imported)")
}
