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

// Package transfer copies manifest records into the target tree.
package transfer

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/mioimport/pkg/manifest"
	"github.com/walteh/mioimport/pkg/media"
	"github.com/walteh/mioimport/pkg/status"
	"gitlab.com/tozd/go/errors"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// 👀 Observer is told about each visible step of a transfer
type Observer interface {
	DirectoryCreated(ctx context.Context, path string)
	FileTransferred(ctx context.Context, rec media.FileRecord, progress status.Progress)
}

type nopObserver struct{}

func (nopObserver) DirectoryCreated(context.Context, string)                           {}
func (nopObserver) FileTransferred(context.Context, media.FileRecord, status.Progress) {}

// 🔧 Options configures the engine
type Options struct {
	// TempSuffix is appended to the destination path for the in-flight copy
	TempSuffix string
	Observer   Observer
}

// 🚚 Engine copies planned files one at a time
type Engine struct {
	fs         afero.Fs
	tempSuffix string
	observer   Observer
}

// 🏭 New creates an engine that writes through fsys
func New(fsys afero.Fs, opts Options) *Engine {
	e := &Engine{
		fs:         fsys,
		tempSuffix: opts.TempSuffix,
		observer:   opts.Observer,
	}
	if e.tempSuffix == "" {
		e.tempSuffix = "-temp"
	}
	if e.observer == nil {
		e.observer = nopObserver{}
	}
	return e
}

// 🏃 Run transfers the manifest in order and advances progress after each
// file. The first failure stops the run; files already transferred stay.
func (e *Engine) Run(ctx context.Context, m *manifest.Manifest, progress *status.Progress) error {
	for _, rec := range m.Records() {
		if err := e.Transfer(ctx, rec); err != nil {
			return errors.Errorf("transferring %s: %w", rec.SourcePath, err)
		}
		progress.Advance(rec.Size)
		e.observer.FileTransferred(ctx, rec, *progress)
	}
	return nil
}

// 📦 Transfer places one record at its destination.
//
// The data is written to a sibling temp file and renamed into place, so
// DestPath either does not exist or holds the complete file. Timestamps are
// restored from the probe afterwards.
func (e *Engine) Transfer(ctx context.Context, rec media.FileRecord) error {
	logger := zerolog.Ctx(ctx).With().Str("source", rec.SourcePath).Str("dest", rec.DestPath).Logger()

	if err := e.ensureDir(ctx, rec.DestDir); err != nil {
		return err
	}
	if err := e.ensureDir(ctx, rec.DestCategoryDir); err != nil {
		return err
	}

	tmp := rec.DestPath + e.tempSuffix
	if err := e.copyFile(rec.SourcePath, tmp); err != nil {
		e.removeTemp(ctx, tmp)
		return err
	}
	logger.Debug().Str("temp", tmp).Msg("copied to temp file")

	if err := e.fs.Rename(tmp, rec.DestPath); err != nil {
		e.removeTemp(ctx, tmp)
		return media.NewError(media.KindRename, rec.DestPath, err)
	}

	if err := e.fs.Chtimes(rec.DestPath, rec.AccessTime, rec.ModTime); err != nil {
		return media.NewError(media.KindTimestamp, rec.DestPath, err)
	}

	logger.Debug().Int64("size", rec.Size).Msg("file transferred")
	return nil
}

// 📁 ensureDir creates dir if it is absent; an existing directory is fine
func (e *Engine) ensureDir(ctx context.Context, dir string) error {
	info, err := e.fs.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return media.NewError(media.KindDirectoryCreate, dir, errors.New("exists and is not a directory"))
		}
		return nil
	}

	if err := e.fs.MkdirAll(dir, dirPerm); err != nil {
		return media.NewError(media.KindDirectoryCreate, dir, err)
	}
	e.observer.DirectoryCreated(ctx, dir)
	return nil
}

// 📝 copyFile streams src into dst, truncating any leftover from an earlier run
func (e *Engine) copyFile(src, dst string) error {
	in, err := e.fs.Open(src)
	if err != nil {
		return media.NewError(media.KindCopy, src, err)
	}
	defer in.Close()

	out, err := e.fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePerm)
	if err != nil {
		return media.NewError(media.KindCopy, dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return media.NewError(media.KindCopy, dst, err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return media.NewError(media.KindCopy, dst, err)
	}
	if err := out.Close(); err != nil {
		return media.NewError(media.KindCopy, dst, err)
	}
	return nil
}

func (e *Engine) removeTemp(ctx context.Context, tmp string) {
	if err := e.fs.Remove(tmp); err != nil && !os.IsNotExist(err) {
		zerolog.Ctx(ctx).Warn().Err(err).Str("temp", tmp).Msg("could not remove temp file")
	}
}
