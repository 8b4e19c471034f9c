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
	"context"

	"github.com/walteh/mioimport/pkg/status"
)

// 🖥️ Console routes the events of an import run to the file operation
// logger and the user status printer
type Console struct {
	*Logger
	User *UserLogger
}

// 🏭 NewConsole combines a Logger and a UserLogger
func NewConsole(l *Logger, u *UserLogger) *Console {
	return &Console{Logger: l, User: u}
}

// StageStarted prints the stage the run moved to
func (c *Console) StageStarted(ctx context.Context, stage string) {
	c.User.LogStateChange(stage)
}

// DeviceIdentified prints the product name read from the card
func (c *Console) DeviceIdentified(ctx context.Context, productName string) {
	c.User.LogDevice(productName)
}

// PlanReady prints the import summary
func (c *Console) PlanReady(ctx context.Context, progress status.Progress, skipped int) {
	c.Plan(progress, skipped)
}

// Ejected prints the eject outcome
func (c *Console) Ejected(ctx context.Context, volume string, err error) {
	c.User.LogEject(volume, err)
}
