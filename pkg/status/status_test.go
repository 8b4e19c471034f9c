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
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

func TestProgress(t *testing.T) {
	t.Run("advances_to_completion", func(t *testing.T) {
		p := NewProgress(150, 2)
		assert.Equal(t, 0, p.Percent())
		assert.False(t, p.Done())

		p.Advance(50)
		assert.Equal(t, int64(50), p.ProcessedSize)
		assert.Equal(t, 1, p.FilesLeft)
		assert.Equal(t, 33, p.Percent())
		assert.Equal(t, int64(100), p.RemainingSize())

		p.Advance(100)
		assert.Equal(t, int64(150), p.ProcessedSize)
		assert.Equal(t, 0, p.FilesLeft)
		assert.Equal(t, 100, p.Percent())
		assert.True(t, p.Done())
	})

	t.Run("empty_plan_is_complete", func(t *testing.T) {
		p := NewProgress(0, 0)
		assert.Equal(t, 100, p.Percent())
		assert.True(t, p.Done())
		assert.Equal(t, int64(0), p.RemainingMiB())
	})

	t.Run("zero_byte_files_still_count", func(t *testing.T) {
		p := NewProgress(0, 2)
		p.Advance(0)
		assert.Equal(t, 1, p.FilesLeft)
		assert.False(t, p.Done())
	})

	t.Run("remaining_mib_rounds", func(t *testing.T) {
		p := NewProgress(3*mebibyte+mebibyte/2, 1)
		assert.Equal(t, int64(4), p.RemainingMiB())
		p.Advance(3 * mebibyte)
		assert.Equal(t, int64(1), p.RemainingMiB())
	})
}

func TestDefaultFormatter(t *testing.T) {
	f := NewDefaultFormatter()

	tests := []struct {
		name string
		got  func() string
		want string
	}{
		{
			name: "progress_midway",
			got: func() string {
				p := NewProgress(4*mebibyte, 4)
				p.Advance(mebibyte)
				return f.FormatProgress(*p)
			},
			want: "progress: 25% / files: 3 / size: 3 MiB",
		},
		{
			name: "plan_summary",
			got: func() string {
				return f.FormatPlan(*NewProgress(2*mebibyte, 3), 5)
			},
			want: "importing 3 files (2.0 MiB), 5 already imported",
		},
		{
			name: "plan_empty",
			got: func() string {
				return f.FormatPlan(*NewProgress(0, 0), 7)
			},
			want: "nothing to import (7 already imported)",
		},
		{
			name: "error",
			got: func() string {
				return f.FormatError(errors.New("card removed"))
			},
			want: "import failed: card removed",
		},
		{
			name: "nil_error",
			got:  func() string { return f.FormatError(nil) },
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got())
		})
	}
}
