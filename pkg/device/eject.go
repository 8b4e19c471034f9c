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

package device

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/mioimport/pkg/media"
	"gitlab.com/tozd/go/errors"
)

// ⏏️ Ejector releases the card once the import is complete
type Ejector interface {
	Eject(ctx context.Context, volume string) error
}

// CommandRunner runs an external command and returns its combined output
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// 🔧 CommandEjector ejects by running an external command with the volume
// path as its last argument, e.g. `diskutil eject /Volumes/NO NAME`
type CommandEjector struct {
	Command string
	Args    []string
	run     CommandRunner
}

// 🏭 NewCommandEjector creates an ejector running command args... volume
func NewCommandEjector(command string, args []string) *CommandEjector {
	return &CommandEjector{Command: command, Args: args, run: execRunner}
}

// WithRunner replaces how the command is executed
func (e *CommandEjector) WithRunner(run CommandRunner) *CommandEjector {
	e.run = run
	return e
}

// Eject runs the command once. A failure is a KindEject error carrying the command output.
func (e *CommandEjector) Eject(ctx context.Context, volume string) error {
	args := append(append([]string{}, e.Args...), volume)

	zerolog.Ctx(ctx).Debug().Str("command", e.Command).Strs("args", args).Msg("ejecting volume")

	out, err := e.run(ctx, e.Command, args...)
	if err != nil {
		msg := string(bytes.TrimSpace(out))
		if msg != "" {
			err = errors.Errorf("%s %s: %w: %s", e.Command, strings.Join(args, " "), err, msg)
		} else {
			err = errors.Errorf("%s %s: %w", e.Command, strings.Join(args, " "), err)
		}
		return media.NewError(media.KindEject, volume, err)
	}
	return nil
}

// NopEjector leaves the volume mounted
type NopEjector struct{}

func (NopEjector) Eject(ctx context.Context, volume string) error {
	zerolog.Ctx(ctx).Debug().Str("volume", volume).Msg("eject disabled")
	return nil
}
