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
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/mioimport/pkg/media"
	"github.com/walteh/mioimport/pkg/status"
)

// 🎨 Display configuration
const (
	fileIndent     = 4  // spaces to indent file entries
	nameWidth      = 35 // Base width for destination path
	categoryWidth  = 10 // Width for category
	statusWidth    = 10 // Width for status text
	progressIndent = 6
)

// 🎯 FileOperation represents one planned or completed file for display
type FileOperation struct {
	Path     string // path relative to the target root
	Category string // source category
	Status   string // Operation status
	Size     int64  // bytes
	IsDone   bool   // Whether the file was transferred
	IsPlan   bool   // Whether the file is only planned (dry run)
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	formatter  status.Formatter
	targetRoot string
	mu         sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:      zlog,
		console:   console,
		formatter: status.NewDefaultFormatter(),
		mu:        sync.Mutex{},
	}
}

// WithTargetRoot makes file lines show paths relative to root
func (l *Logger) WithTargetRoot(root string) *Logger {
	l.targetRoot = root
	return l
}

func (l *Logger) relative(path string) string {
	if l.targetRoot == "" {
		return path
	}
	if rel, err := filepath.Rel(l.targetRoot, path); err == nil {
		return rel
	}
	return path
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsDone:
		symbol = '✓'
		symbolColor = color.FgGreen
	case op.IsPlan:
		symbol = '•'
		symbolColor = color.FgCyan
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	var categoryColor color.Attribute
	switch op.Category {
	case string(media.CategoryEvent):
		categoryColor = color.FgRed
	case string(media.CategoryParking):
		categoryColor = color.FgYellow
	case string(media.CategoryPhoto):
		categoryColor = color.FgMagenta
	default:
		categoryColor = color.FgBlue
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(categoryColor).Sprint(fmt.Sprintf("%-*s", categoryWidth, op.Category)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	l.zlog.Info().
		Str("file", op.Path).
		Str("category", op.Category).
		Str("status", op.Status).
		Int64("size", op.Size).
		Msg("file operation")
}

// 📂 DirectoryCreated logs a directory created on demand
func (l *Logger) DirectoryCreated(ctx context.Context, path string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s%s %s\n",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(color.Faint).Sprint("+"),
		color.New(color.Faint).Sprint("creating "+l.relative(path)))
	l.zlog.Info().Str("dir", path).Msg("creating directory")
}

// 📦 FileTransferred logs a completed transfer followed by the progress line
func (l *Logger) FileTransferred(ctx context.Context, rec media.FileRecord, progress status.Progress) {
	l.LogFileOperation(ctx, FileOperation{
		Path:     l.relative(rec.DestPath),
		Category: string(rec.Category),
		Status:   "imported",
		Size:     rec.Size,
		IsDone:   true,
	})
	l.Progress(progress)
}

// 📋 Planned logs a file that a dry run would transfer
func (l *Logger) Planned(ctx context.Context, rec media.FileRecord) {
	l.LogFileOperation(ctx, FileOperation{
		Path:     l.relative(rec.DestPath),
		Category: string(rec.Category),
		Status:   "planned",
		Size:     rec.Size,
		IsPlan:   true,
	})
}

// 📈 Progress logs the running totals
func (l *Logger) Progress(p status.Progress) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s%s\n",
		fmt.Sprintf("%*s", progressIndent, ""),
		color.New(color.Faint).Sprint(l.formatter.FormatProgress(p)))

	l.zlog.Info().
		Int("percent", p.Percent()).
		Int("files_left", p.FilesLeft).
		Int64("remaining_bytes", p.RemainingSize()).
		Msg("progress")
}

// 🗺️ Plan logs the summary of what is about to be imported
func (l *Logger) Plan(p status.Progress, skipped int) {
	l.Info(l.formatter.FormatPlan(p, skipped))
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("mioimport")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 💥 Failed logs the error that ended the run
func (l *Logger) Failed(err error) {
	l.Error(l.formatter.FormatError(err))
}
