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

import "github.com/spf13/afero"

// 🔍 Exists reports whether anything can be stat'd at path.
// Any stat failure counts as absent; content is never compared.
func Exists(fsys afero.Fs, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// MarkImported records whether the resolved destination is already present
func (r *FileRecord) MarkImported(fsys afero.Fs) bool {
	r.AlreadyImported = Exists(fsys, r.DestPath)
	return r.AlreadyImported
}
