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

package status

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Formatter defines how progress and plan summaries are rendered
type Formatter interface {
	// FormatProgress formats the line printed after every transferred file
	FormatProgress(p Progress) string

	// FormatPlan formats the summary printed before the first transfer
	FormatPlan(p Progress, skipped int) string

	// FormatError formats the error that ended the run
	FormatError(err error) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatProgress formats a progress message with percentage, files left and MiB left
func (f *DefaultFormatter) FormatProgress(p Progress) string {
	return fmt.Sprintf("progress: %d%% / files: %d / size: %d MiB", p.Percent(), p.FilesLeft, p.RemainingMiB())
}

// FormatPlan formats the import plan with human readable sizes
func (f *DefaultFormatter) FormatPlan(p Progress, skipped int) string {
	if p.TotalFiles == 0 {
		return fmt.Sprintf("nothing to import (%d already imported)", skipped)
	}
	return fmt.Sprintf("importing %d files (%s), %d already imported",
		p.TotalFiles, humanize.IBytes(uint64(p.TotalSize)), skipped)
}

// FormatError formats the error that ended the run
func (f *DefaultFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("import failed: %v", err)
}
