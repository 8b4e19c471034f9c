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
	"os"
	"time"

	"github.com/mutagen-io/extstat"
	"github.com/spf13/afero"
)

// accessTime returns the last access time of path. Only the OS filesystem
// exposes one; for anything else the modification time stands in.
func accessTime(fsys afero.Fs, path string, info os.FileInfo) time.Time {
	if _, ok := fsys.(*afero.OsFs); !ok {
		return info.ModTime()
	}
	st, err := extstat.NewFromFileName(path)
	if err != nil {
		return info.ModTime()
	}
	return st.AccessTime
}
