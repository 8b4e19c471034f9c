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

package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/mioimport/pkg/config"
	"github.com/walteh/mioimport/pkg/device"
	"github.com/walteh/mioimport/pkg/log"
	"github.com/walteh/mioimport/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

var errUsage = errors.Base("expected exactly one target directory")

// 🎮 Handler holds the flags of one invocation and runs the import
type Handler struct {
	configFile string
	debug      bool
	cardDir    string
	noEject    bool
	dryRun     bool

	fs      afero.Fs
	ejector device.Ejector
	stdout  io.Writer
	stderr  io.Writer
	logger  *zerolog.Logger
}

// 🏭 NewHandler creates a handler working on the real filesystem
func NewHandler() *Handler {
	return &Handler{
		fs:     afero.NewOsFs(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// NewCommand creates the root command bound to h
func NewCommand(h *Handler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mioimport <target_dir>",
		Short: "Import dashcam recordings from a memory card",
		Long: `mioimport copies the event, parking, photo and video recordings of a
dashcam memory card into <target_dir>/<YYYY-MM-DD>/<Category>/, skipping
files that were imported before, and ejects the card when done.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errUsage
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return h.Run(cmd.Context(), args[0])
		},
	}

	addRootFlags(cmd, h)
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// addRootFlags adds the import flags to the root command
func addRootFlags(cmd *cobra.Command, h *Handler) {
	cmd.Flags().StringVarP(&h.configFile, "config", "c", "", "config file path (.yaml, .json, .hcl or .env)")
	cmd.Flags().BoolVarP(&h.debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().StringVar(&h.cardDir, "card-dir", "", "override the card mount point")
	cmd.Flags().BoolVar(&h.noEject, "no-eject", false, "leave the card mounted")
	cmd.Flags().BoolVar(&h.dryRun, "dry-run", false, "print the plan without copying anything")
}

// setupLogging creates the structured logger written to stderr
func (h *Handler) setupLogging() zerolog.Logger {
	level := zerolog.WarnLevel
	if h.debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: h.stderr}).Level(level).With().Timestamp().Logger()
}

// ctx returns ctx carrying the handler's logger, creating it on first use
func (h *Handler) ctx(ctx context.Context) context.Context {
	if h.logger == nil {
		l := h.setupLogging()
		h.logger = &l
	}
	return h.logger.WithContext(ctx)
}

// 🏃 Run imports the configured card into target
func (h *Handler) Run(ctx context.Context, target string) error {
	ctx = h.ctx(ctx)

	cfg, err := config.Load(ctx, h.fs, h.configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	if h.cardDir != "" {
		cfg.CardDir = h.cardDir
	}
	if h.noEject {
		cfg.Eject.Disabled = true
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return errors.Errorf("resolving target %q: %w", target, err)
	}

	ejector := h.ejector
	if ejector == nil {
		if cfg.Eject.Disabled {
			ejector = device.NopEjector{}
		} else {
			ejector = device.NewCommandEjector(cfg.Eject.Command, cfg.Eject.Args)
		}
	}

	logger := log.New(h.stdout, *zerolog.Ctx(ctx)).WithTargetRoot(abs)
	user := log.NewUserLogger(ctx).WithWriter(h.stdout)
	console := log.NewConsole(logger, user)

	imp, err := operation.New(operation.Options{
		Fs:         h.fs,
		Config:     cfg,
		TargetRoot: abs,
		Ejector:    ejector,
		Observer:   console,
		DryRun:     h.dryRun,
	})
	if err != nil {
		return errors.Errorf("creating import: %w", err)
	}

	logger.Header("importing " + cfg.String() + " into " + abs)

	run, err := imp.Execute(ctx)
	if err != nil {
		return err
	}

	if h.dryRun {
		user.LogValidation(false, "dry run complete, nothing was copied")
		return nil
	}
	user.LogValidation(true, "imported "+run.Device.ProductName+" card")
	return nil
}
