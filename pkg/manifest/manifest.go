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

// Package manifest decides what an import run will copy.
//
// Every configured category directory of the card is listed, each accepted
// file is probed and resolved to its destination, and files whose
// destination already exists are dropped. The survivors are ordered by
// modification time, oldest first; files with equal times keep category
// order and then name order.
package manifest

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/mioimport/pkg/media"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options describes where to look and what to accept
type Options struct {
	SourceRoot     string
	TargetRoot     string
	Categories     []media.Category
	Extensions     []string // without the dot, matched case-sensitively
	IgnorePatterns []string // doublestar globs matched against the base name
}

// 📋 Manifest is the ordered, deduplicated transfer plan of one run.
// It is immutable once built.
type Manifest struct {
	records []media.FileRecord
	skipped map[media.Category]int
}

// Len returns the number of files to transfer
func (m *Manifest) Len() int { return len(m.records) }

// Records returns a copy of the plan in transfer order
func (m *Manifest) Records() []media.FileRecord {
	out := make([]media.FileRecord, len(m.records))
	copy(out, m.records)
	return out
}

// TotalSize is the sum of the probed sizes of all planned files
func (m *Manifest) TotalSize() int64 {
	var total int64
	for _, r := range m.records {
		total += r.Size
	}
	return total
}

// Skipped returns how many already-imported files were left out, per category
func (m *Manifest) Skipped(c media.Category) int { return m.skipped[c] }

// SkippedTotal returns how many already-imported files were left out
func (m *Manifest) SkippedTotal() int {
	n := 0
	for _, v := range m.skipped {
		n += v
	}
	return n
}

// 🏗️ Builder enumerates the card and produces a Manifest
type Builder struct {
	fs   afero.Fs
	opts Options
}

// 🏭 NewBuilder creates a builder reading and checking through fsys
func NewBuilder(fsys afero.Fs, opts Options) *Builder {
	return &Builder{fs: fsys, opts: opts}
}

// 🏃 Build lists every category in order, probes, resolves and filters each
// file one at a time, then sorts the survivors by modification time. Equal
// times keep discovery order. Any listing or probe failure aborts the build.
func (b *Builder) Build(ctx context.Context) (*Manifest, error) {
	logger := zerolog.Ctx(ctx)

	m := &Manifest{skipped: make(map[media.Category]int)}
	seen := make(map[string]bool)

	for _, category := range b.opts.Categories {
		records, skipped, err := b.collect(ctx, category)
		if err != nil {
			return nil, errors.Errorf("collecting %s: %w", category, err)
		}
		m.skipped[category] = skipped

		for _, r := range records {
			if seen[r.DestPath] {
				logger.Debug().Str("dest", r.DestPath).Msg("duplicate destination, keeping first")
				continue
			}
			seen[r.DestPath] = true
			m.records = append(m.records, r)
		}

		logger.Debug().
			Str("category", string(category)).
			Int("new", len(records)).
			Int("skipped", skipped).
			Msg("category listed")
	}

	sort.SliceStable(m.records, func(i, j int) bool {
		return m.records[i].ModTime.Before(m.records[j].ModTime)
	})

	return m, nil
}

// 📂 collect returns the not-yet-imported records of one category in listing order
func (b *Builder) collect(ctx context.Context, category media.Category) ([]media.FileRecord, int, error) {
	logger := zerolog.Ctx(ctx)

	names, err := b.list(string(category))
	if err != nil {
		return nil, 0, err
	}

	var out []media.FileRecord
	skipped := 0
	for _, name := range names {
		if !b.Accepts(name) {
			continue
		}

		rec := media.NewFileRecord(b.opts.SourceRoot, category, name)
		p, err := rec.Probe(b.fs)
		if err != nil {
			return nil, 0, err
		}
		if !p.Mode.IsRegular() {
			logger.Debug().Str("path", rec.SourcePath).Msg("not a regular file, ignoring")
			continue
		}

		rec.Resolve(b.opts.TargetRoot)
		if rec.MarkImported(b.fs) {
			logger.Debug().Str("dest", rec.DestPath).Msg("already imported")
			skipped++
			continue
		}

		out = append(out, *rec)
	}

	return out, skipped, nil
}

// list returns the entry names of a category directory, sorted
func (b *Builder) list(category string) ([]string, error) {
	dir := filepath.Join(b.opts.SourceRoot, category)

	f, err := b.fs.Open(dir)
	if err != nil {
		return nil, media.NewError(media.KindEnumeration, dir, err)
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, media.NewError(media.KindEnumeration, dir, err)
	}
	sort.Strings(names)
	return names, nil
}

// 🔍 Accepts reports whether a file name passes the extension and ignore filters
func (b *Builder) Accepts(name string) bool {
	ok := false
	for _, ext := range b.opts.Extensions {
		if strings.HasSuffix(name, "."+ext) {
			ok = true
			break
		}
	}
	if !ok {
		return false
	}

	for _, pattern := range b.opts.IgnorePatterns {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return false
		}
	}
	return true
}
