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

// Package testutils holds fixtures shared by the package tests: an in-memory
// card, a failure-injecting filesystem and a test logger context.
package testutils

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// 🧪 Context returns a context carrying a logger that writes to the test log
func Context(t testing.TB) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}

// 💾 Card builds a fake card layout on an afero filesystem
type Card struct {
	t    testing.TB
	Fs   afero.Fs
	Root string
}

// 🏭 NewCard creates an empty card rooted at root on fsys
func NewCard(t testing.TB, fsys afero.Fs, root string) *Card {
	require.NoError(t, fsys.MkdirAll(root, 0o755), "creating card root")
	return &Card{t: t, Fs: fsys, Root: root}
}

// Identity writes the device identity file with the given product name
func (c *Card) Identity(name, productName string) *Card {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<Device>
  <ProductName>` + productName + `</ProductName>
  <FirmwareVersion>1.0.0</FirmwareVersion>
</Device>
`
	require.NoError(c.t, afero.WriteFile(c.Fs, filepath.Join(c.Root, name), []byte(body), 0o644), "writing identity file")
	return c
}

// Category creates an empty category directory
func (c *Card) Category(category string) *Card {
	require.NoError(c.t, c.Fs.MkdirAll(filepath.Join(c.Root, category), 0o755), "creating category dir")
	return c
}

// File writes category/name with size bytes and the given modification time.
// The access time is set one hour later so that tests can tell them apart.
func (c *Card) File(category, name string, size int, mtime time.Time) string {
	path := filepath.Join(c.Root, category, name)
	require.NoError(c.t, c.Fs.MkdirAll(filepath.Dir(path), 0o755), "creating category dir")
	require.NoError(c.t, afero.WriteFile(c.Fs, path, []byte(strings.Repeat("x", size)), 0o644), "writing card file")
	require.NoError(c.t, c.Fs.Chtimes(path, mtime.Add(time.Hour), mtime), "setting card file times")
	return path
}

// Op names a filesystem operation that FailingFs can fail
type Op string

const (
	OpOpen     Op = "open"
	OpOpenFile Op = "openfile"
	OpMkdir    Op = "mkdir"
	OpRename   Op = "rename"
	OpChtimes  Op = "chtimes"
	OpStat     Op = "stat"
)

// 💥 FailingFs wraps an afero.Fs and fails selected operations on paths
// matching a predicate. Operations that are not configured pass through.
type FailingFs struct {
	afero.Fs
	fail  map[Op]func(name string) bool
	Calls []string
}

// 🏭 NewFailingFs wraps fsys
func NewFailingFs(fsys afero.Fs) *FailingFs {
	return &FailingFs{Fs: fsys, fail: make(map[Op]func(string) bool)}
}

// FailOn makes op fail for every path for which match returns true
func (f *FailingFs) FailOn(op Op, match func(name string) bool) *FailingFs {
	f.fail[op] = match
	return f
}

func (f *FailingFs) check(op Op, name string) error {
	f.Calls = append(f.Calls, string(op)+" "+name)
	if match, ok := f.fail[op]; ok && match(name) {
		return &os.PathError{Op: string(op), Path: name, Err: os.ErrPermission}
	}
	return nil
}

func (f *FailingFs) Open(name string) (afero.File, error) {
	if err := f.check(OpOpen, name); err != nil {
		return nil, err
	}
	return f.Fs.Open(name)
}

func (f *FailingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if err := f.check(OpOpenFile, name); err != nil {
		return nil, err
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func (f *FailingFs) Mkdir(name string, perm os.FileMode) error {
	if err := f.check(OpMkdir, name); err != nil {
		return err
	}
	return f.Fs.Mkdir(name, perm)
}

func (f *FailingFs) MkdirAll(name string, perm os.FileMode) error {
	if err := f.check(OpMkdir, name); err != nil {
		return err
	}
	return f.Fs.MkdirAll(name, perm)
}

func (f *FailingFs) Rename(oldname, newname string) error {
	if err := f.check(OpRename, newname); err != nil {
		return err
	}
	return f.Fs.Rename(oldname, newname)
}

func (f *FailingFs) Chtimes(name string, atime, mtime time.Time) error {
	if err := f.check(OpChtimes, name); err != nil {
		return err
	}
	return f.Fs.Chtimes(name, atime, mtime)
}

func (f *FailingFs) Stat(name string) (os.FileInfo, error) {
	if err := f.check(OpStat, name); err != nil {
		return nil, err
	}
	return f.Fs.Stat(name)
}

// Path matches exactly one path
func Path(want string) func(string) bool {
	return func(name string) bool { return filepath.Clean(name) == filepath.Clean(want) }
}

// Suffix matches every path ending in suffix
func Suffix(suffix string) func(string) bool {
	return func(name string) bool { return strings.HasSuffix(name, suffix) }
}
