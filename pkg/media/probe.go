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

package media

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
)

// 🔬 Probe is the metadata captured from one stat of a source file
type Probe struct {
	Size       int64
	Mode       os.FileMode
	ModTime    time.Time
	AccessTime time.Time
	DateKey    string
}

// 📅 DateKey formats t as YYYY-MM-DD in the local calendar
func DateKey(t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// 🔬 ProbeFile stats path and derives its date key.
// A stat failure is a KindProbe error.
func ProbeFile(fsys afero.Fs, path string) (Probe, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return Probe{}, NewError(KindProbe, path, err)
	}

	return Probe{
		Size:       info.Size(),
		Mode:       info.Mode(),
		ModTime:    info.ModTime(),
		AccessTime: accessTime(fsys, path, info),
		DateKey:    DateKey(info.ModTime()),
	}, nil
}

// ApplyProbe freezes the probed metadata on the record
func (r *FileRecord) ApplyProbe(p Probe) {
	r.Size = p.Size
	r.ModTime = p.ModTime
	r.AccessTime = p.AccessTime
	r.DateKey = p.DateKey
}

// Probe stats the record's source file and stores the result
func (r *FileRecord) Probe(fsys afero.Fs) (Probe, error) {
	p, err := ProbeFile(fsys, r.SourcePath)
	if err != nil {
		return Probe{}, err
	}
	r.ApplyProbe(p)
	return p, nil
}
