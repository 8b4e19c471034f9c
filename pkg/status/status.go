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

import "math"

const mebibyte = 1024 * 1024

// 📈 Progress is the accounting of one import run. It is owned by a single
// run and advanced once per completed transfer; nothing else mutates it.
type Progress struct {
	TotalSize     int64
	TotalFiles    int
	ProcessedSize int64
	FilesLeft     int
}

// 🏭 NewProgress starts accounting for a plan of files totalling size bytes
func NewProgress(size int64, files int) *Progress {
	return &Progress{
		TotalSize:  size,
		TotalFiles: files,
		FilesLeft:  files,
	}
}

// ✅ Advance records one completed file of the given size
func (p *Progress) Advance(size int64) {
	p.ProcessedSize += size
	if p.FilesLeft > 0 {
		p.FilesLeft--
	}
}

// Percent is the rounded share of bytes processed. An empty plan is complete.
func (p *Progress) Percent() int {
	if p.TotalSize <= 0 {
		return 100
	}
	return int(math.Round(float64(p.ProcessedSize) * 100 / float64(p.TotalSize)))
}

// RemainingSize is the number of bytes not yet transferred
func (p *Progress) RemainingSize() int64 {
	if rem := p.TotalSize - p.ProcessedSize; rem > 0 {
		return rem
	}
	return 0
}

// RemainingMiB is RemainingSize rounded to whole mebibytes
func (p *Progress) RemainingMiB() int64 {
	return int64(math.Round(float64(p.RemainingSize()) / mebibyte))
}

// Done reports whether every planned file was transferred
func (p *Progress) Done() bool {
	return p.FilesLeft == 0
}
