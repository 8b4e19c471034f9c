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
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger prints the few terminal status lines of a run: which device
// was found, whether the card was ejected and how the run ended
type UserLogger struct {
	log    zerolog.Logger // for debug/error logging
	writer io.Writer
}

// 🎯 NewUserLogger creates a new user logger writing to stdout
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log:    *zerolog.Ctx(ctx),
		writer: os.Stdout,
	}
}

// WithWriter redirects the console output
func (u *UserLogger) WithWriter(w io.Writer) *UserLogger {
	u.writer = w
	return u
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style}).WithWriter(u.writer)
}

// 📊 LogStateChange logs a change to the overall state of the run
func (u *UserLogger) LogStateChange(description string) {
	u.printer(pterm.Info, "📦").Println(description)
	u.log.Info().Msg(description)
}

// 🪪 LogDevice logs the device found on the card
func (u *UserLogger) LogDevice(productName string) {
	u.printer(pterm.Info, "📷").Println("got device name: " + productName)
	u.log.Info().Str("device", productName).Msg("device identified")
}

// ⏏️ LogEject logs the eject attempt
func (u *UserLogger) LogEject(volume string, err error) {
	if err != nil {
		u.printer(pterm.Error, "⏏️").Println("ejecting " + volume + " failed")
		u.log.Error().Err(err).Str("volume", volume).Msg("eject failed")
		return
	}
	u.printer(pterm.Success, "⏏️").Println("ejected " + volume)
	u.log.Info().Str("volume", volume).Msg("volume ejected")
}

// 🔍 LogValidation logs the final result of a run that did not fail.
// A run that left work undone (a dry run) is reported as a warning.
func (u *UserLogger) LogValidation(complete bool, description string) {
	if complete {
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
		return
	}
	u.printer(pterm.Warning, "⚠️").Println(description)
	u.log.Warn().Msg(description)
}
