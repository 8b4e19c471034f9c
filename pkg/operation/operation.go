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

package operation

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/mioimport/pkg/config"
	"github.com/walteh/mioimport/pkg/device"
	"github.com/walteh/mioimport/pkg/manifest"
	"github.com/walteh/mioimport/pkg/media"
	"github.com/walteh/mioimport/pkg/status"
	"github.com/walteh/mioimport/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// 👀 Observer receives the user-visible events of a run
type Observer interface {
	transfer.Observer
	StageStarted(ctx context.Context, stage string)
	DeviceIdentified(ctx context.Context, productName string)
	PlanReady(ctx context.Context, progress status.Progress, skipped int)
	Planned(ctx context.Context, rec media.FileRecord)
	Ejected(ctx context.Context, volume string, err error)
}

// 🗂️ Run is the state of one import run, passed from stage to stage
type Run struct {
	ID         string
	TargetRoot string
	Device     device.Identity
	Manifest   *manifest.Manifest
	Progress   *status.Progress
	Ejected    bool
}

// 🔧 Options contains configuration for an import
type Options struct {
	// Fs is used for every card and target operation
	Fs afero.Fs
	// Config describes the card layout
	Config *config.Config
	// TargetRoot is the absolute destination root
	TargetRoot string
	// Ejector releases the card at the end; nil leaves it mounted
	Ejector device.Ejector
	// Observer is told about progress; nil discards
	Observer Observer
	// DryRun stops after printing the plan
	DryRun bool
}

// 📥 Import runs the card import pipeline
type Import struct {
	fs       afero.Fs
	cfg      *config.Config
	target   string
	ejector  device.Ejector
	observer Observer
	dryRun   bool
	runner   *OperationRunner
}

// 🏭 New creates an import with the given options
func New(opts Options) (*Import, error) {
	if opts.Fs == nil {
		return nil, errors.Errorf("filesystem is required")
	}
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.TargetRoot == "" {
		return nil, errors.Errorf("target root is required")
	}
	if !filepath.IsAbs(opts.TargetRoot) {
		return nil, errors.Errorf("target root must be absolute, got %q", opts.TargetRoot)
	}

	i := &Import{
		fs:       opts.Fs,
		cfg:      opts.Config,
		target:   filepath.Clean(opts.TargetRoot),
		ejector:  opts.Ejector,
		observer: opts.Observer,
		dryRun:   opts.DryRun,
	}
	if i.ejector == nil {
		i.ejector = device.NopEjector{}
	}
	if i.observer == nil {
		i.observer = nopObserver{}
	}
	i.runner = NewRunner().WithStageHook(i.observer.StageStarted)
	return i, nil
}

// 🏃 Execute runs every stage in order. The returned Run reflects how far the
// import got, also on failure.
func (i *Import) Execute(ctx context.Context) (*Run, error) {
	run := &Run{
		ID:         uuid.NewString(),
		TargetRoot: i.target,
	}
	ctx = zerolog.Ctx(ctx).With().Str("run_id", run.ID).Logger().WithContext(ctx)

	if err := i.runner.Run(ctx, run, i.Operations()...); err != nil {
		return run, err
	}
	return run, nil
}

// Operations returns the stages of the run in execution order
func (i *Import) Operations() []Operation {
	ops := []Operation{
		stage{"preparing target", i.prepareTarget},
		stage{"reading device identity", i.readIdentity},
		stage{"building manifest", i.buildManifest},
		stage{"planning", i.plan},
	}
	if i.dryRun {
		return append(ops, stage{"listing plan", i.listPlan})
	}
	return append(ops,
		stage{"transferring", i.transfer},
		stage{"ejecting", i.eject},
	)
}

func (i *Import) prepareTarget(ctx context.Context, run *Run) error {
	info, err := i.fs.Stat(run.TargetRoot)
	if err == nil {
		if !info.IsDir() {
			return media.NewError(media.KindDirectoryCreate, run.TargetRoot, errors.New("exists and is not a directory"))
		}
		return nil
	}

	if i.dryRun {
		zerolog.Ctx(ctx).Debug().Str("target", run.TargetRoot).Msg("target missing, not creating it in a dry run")
		return nil
	}

	if err := i.fs.MkdirAll(run.TargetRoot, 0o755); err != nil {
		return media.NewError(media.KindDirectoryCreate, run.TargetRoot, err)
	}
	i.observer.DirectoryCreated(ctx, run.TargetRoot)
	return nil
}

func (i *Import) readIdentity(ctx context.Context, run *Run) error {
	id, err := device.ReadIdentity(i.fs, filepath.Join(i.cfg.CardDir, i.cfg.DeviceFile))
	if err != nil {
		return err
	}
	run.Device = id
	i.observer.DeviceIdentified(ctx, id.ProductName)
	return nil
}

func (i *Import) buildManifest(ctx context.Context, run *Run) error {
	m, err := manifest.NewBuilder(i.fs, manifest.Options{
		SourceRoot:     i.cfg.CardDir,
		TargetRoot:     run.TargetRoot,
		Categories:     i.cfg.MediaCategories(),
		Extensions:     i.cfg.Extensions,
		IgnorePatterns: i.cfg.IgnorePatterns,
	}).Build(ctx)
	if err != nil {
		return err
	}
	run.Manifest = m
	return nil
}

func (i *Import) plan(ctx context.Context, run *Run) error {
	run.Progress = status.NewProgress(run.Manifest.TotalSize(), run.Manifest.Len())

	zerolog.Ctx(ctx).Info().
		Int("files", run.Progress.TotalFiles).
		Int64("bytes", run.Progress.TotalSize).
		Int("skipped", run.Manifest.SkippedTotal()).
		Msg("manifest ready")

	i.observer.PlanReady(ctx, *run.Progress, run.Manifest.SkippedTotal())
	return nil
}

func (i *Import) listPlan(ctx context.Context, run *Run) error {
	for _, rec := range run.Manifest.Records() {
		i.observer.Planned(ctx, rec)
	}
	return nil
}

func (i *Import) transfer(ctx context.Context, run *Run) error {
	engine := transfer.New(i.fs, transfer.Options{
		TempSuffix: i.cfg.TempSuffix,
		Observer:   i.observer,
	})
	if err := engine.Run(ctx, run.Manifest, run.Progress); err != nil {
		return err
	}
	if !run.Progress.Done() {
		return errors.Errorf("transfer incomplete: %d of %d files left", run.Progress.FilesLeft, run.Progress.TotalFiles)
	}
	return nil
}

func (i *Import) eject(ctx context.Context, run *Run) error {
	err := i.ejector.Eject(ctx, i.cfg.CardDir)
	i.observer.Ejected(ctx, i.cfg.CardDir, err)
	if err != nil {
		return err
	}
	run.Ejected = true
	return nil
}

type nopObserver struct{}

func (nopObserver) DirectoryCreated(context.Context, string)                           {}
func (nopObserver) FileTransferred(context.Context, media.FileRecord, status.Progress) {}
func (nopObserver) StageStarted(context.Context, string)                               {}
func (nopObserver) DeviceIdentified(context.Context, string)                           {}
func (nopObserver) PlanReady(context.Context, status.Progress, int)                    {}
func (nopObserver) Planned(context.Context, media.FileRecord)                          {}
func (nopObserver) Ejected(context.Context, string, error)                             {}
