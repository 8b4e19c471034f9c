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

package manifest_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/mioimport/pkg/manifest"
	"github.com/walteh/mioimport/pkg/media"
	"github.com/walteh/mioimport/pkg/testutils"
)

var base = time.Date(2024, time.April, 10, 9, 0, 0, 0, time.Local)

func defaultOptions() manifest.Options {
	return manifest.Options{
		SourceRoot: "/card",
		TargetRoot: "/target",
		Categories: media.DefaultCategories(),
		Extensions: []string{"LOG", "MP4", "JPG"},
	}
}

func newCard(t *testing.T) (*testutils.Card, afero.Fs) {
	fsys := afero.NewMemMapFs()
	card := testutils.NewCard(t, fsys, "/card")
	for _, c := range media.DefaultCategories() {
		card.Category(string(c))
	}
	return card, fsys
}

func names(m *manifest.Manifest) []string {
	var out []string
	for _, r := range m.Records() {
		out = append(out, string(r.Category)+"/"+r.FileName)
	}
	return out
}

func TestBuildOrdersByModTime(t *testing.T) {
	card, fsys := newCard(t)
	t1 := base
	t2 := base.Add(-48 * time.Hour)
	card.File("Event", "A.MP4", 100, t1)
	card.File("Video", "B.MP4", 50, t2)

	m, err := manifest.NewBuilder(fsys, defaultOptions()).Build(testutils.Context(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"Video/B.MP4", "Event/A.MP4"}, names(m))
	assert.Equal(t, int64(150), m.TotalSize())
	assert.Equal(t, 2, m.Len())

	recs := m.Records()
	assert.Equal(t, filepath.Join("/target", media.DateKey(t2), "Video", "B.MP4"), recs[0].DestPath)
	assert.Equal(t, filepath.Join("/target", media.DateKey(t1), "Event", "A.MP4"), recs[1].DestPath)
	assert.Equal(t, filepath.Join("/card", "Video", "B.MP4"), recs[0].SourcePath)
	assert.Equal(t, int64(50), recs[0].Size)
	assert.True(t, recs[0].ModTime.Equal(t2))
}

func TestBuildTieBreak(t *testing.T) {
	card, fsys := newCard(t)
	// equal mtimes keep category order, then listing order
	card.File("Video", "A.MP4", 1, base)
	card.File("Event", "Z.MP4", 1, base)
	card.File("Event", "M.MP4", 1, base)
	card.File("Photo", "P.JPG", 1, base.Add(-time.Minute))

	m, err := manifest.NewBuilder(fsys, defaultOptions()).Build(testutils.Context(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"Photo/P.JPG", "Event/M.MP4", "Event/Z.MP4", "Video/A.MP4"}, names(m))
}

func TestBuildFiltersExtensions(t *testing.T) {
	card, fsys := newCard(t)
	card.File("Video", "clip.AVI", 10, base)
	card.File("Video", "clip.MP4", 10, base)
	card.File("Video", "clip.mp4", 10, base)
	card.File("Event", "trip.LOG", 10, base)
	card.File("Photo", "shot.JPG", 10, base)
	card.File("Photo", "shot.JPG.bak", 10, base)

	m, err := manifest.NewBuilder(fsys, defaultOptions()).Build(testutils.Context(t))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Video/clip.MP4", "Event/trip.LOG", "Photo/shot.JPG"}, names(m))
}

func TestBuildIgnorePatterns(t *testing.T) {
	card, fsys := newCard(t)
	card.File("Video", "._A.MP4", 10, base)
	card.File("Video", "A.MP4", 10, base)

	opts := defaultOptions()
	opts.IgnorePatterns = []string{"._*"}

	m, err := manifest.NewBuilder(fsys, opts).Build(testutils.Context(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"Video/A.MP4"}, names(m))
}

func TestBuildSkipsDirectories(t *testing.T) {
	card, fsys := newCard(t)
	require.NoError(t, fsys.MkdirAll("/card/Video/NESTED.MP4", 0o755))
	card.File("Video", "A.MP4", 10, base)

	m, err := manifest.NewBuilder(fsys, defaultOptions()).Build(testutils.Context(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"Video/A.MP4"}, names(m))
}

func TestBuildExcludesAlreadyImported(t *testing.T) {
	card, fsys := newCard(t)
	t1 := base
	t2 := base.Add(-24 * time.Hour)
	card.File("Event", "A.MP4", 100, t1)
	card.File("Video", "B.MP4", 50, t2)

	existing := filepath.Join("/target", media.DateKey(t1), "Event", "A.MP4")
	require.NoError(t, afero.WriteFile(fsys, existing, []byte("different content"), 0o644))

	m, err := manifest.NewBuilder(fsys, defaultOptions()).Build(testutils.Context(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"Video/B.MP4"}, names(m))
	assert.Equal(t, 1, m.Skipped(media.CategoryEvent))
	assert.Equal(t, 0, m.Skipped(media.CategoryVideo))
	assert.Equal(t, 1, m.SkippedTotal())
}

func TestBuildUniqueDestinations(t *testing.T) {
	card, fsys := newCard(t)
	for i, name := range []string{"A.MP4", "B.MP4", "C.JPG", "D.LOG"} {
		card.File("Event", name, 1, base.Add(time.Duration(i)*time.Second))
		card.File("Video", name, 1, base)
	}

	m, err := manifest.NewBuilder(fsys, defaultOptions()).Build(testutils.Context(t))
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, r := range m.Records() {
		assert.False(t, seen[r.DestPath], "duplicate destination %s", r.DestPath)
		seen[r.DestPath] = true
	}
	assert.Equal(t, 8, m.Len())
}

func TestBuildErrors(t *testing.T) {
	t.Run("missing_category_is_enumeration_error", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		card := testutils.NewCard(t, fsys, "/card")
		card.File("Event", "A.MP4", 1, base)

		_, err := manifest.NewBuilder(fsys, defaultOptions()).Build(testutils.Context(t))
		require.Error(t, err)
		assert.True(t, media.IsKind(err, media.KindEnumeration), "got %v", err)
		assert.Contains(t, err.Error(), "Parking")
	})

	t.Run("unreadable_file_is_probe_error", func(t *testing.T) {
		card, mem := newCard(t)
		card.File("Event", "A.MP4", 1, base)
		bad := card.File("Video", "B.MP4", 1, base)

		fsys := testutils.NewFailingFs(mem).FailOn(testutils.OpStat, testutils.Path(bad))

		_, err := manifest.NewBuilder(fsys, defaultOptions()).Build(testutils.Context(t))
		require.Error(t, err)
		assert.True(t, media.IsKind(err, media.KindProbe), "got %v", err)
	})
}

func TestRecordsIsACopy(t *testing.T) {
	card, fsys := newCard(t)
	card.File("Event", "A.MP4", 1, base)

	m, err := manifest.NewBuilder(fsys, defaultOptions()).Build(testutils.Context(t))
	require.NoError(t, err)

	recs := m.Records()
	recs[0].DestPath = "/elsewhere"
	assert.NotEqual(t, "/elsewhere", m.Records()[0].DestPath)
}

func TestEmptyCard(t *testing.T) {
	_, fsys := newCard(t)
	m, err := manifest.NewBuilder(fsys, defaultOptions()).Build(testutils.Context(t))
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, int64(0), m.TotalSize())
}
