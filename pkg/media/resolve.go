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

import "path/filepath"

// 🎯 Destination is the resolved placement of a file under the target root
type Destination struct {
	Dir         string // targetRoot/dateKey
	CategoryDir string // Dir/category
	Path        string // CategoryDir/fileName
}

// 🎯 Resolve computes where a file lands. It does no I/O and identical inputs
// always give identical paths, which is what makes the existence check a
// usable dedup.
func Resolve(targetRoot string, category Category, dateKey, fileName string) Destination {
	dir := filepath.Join(targetRoot, dateKey)
	categoryDir := filepath.Join(dir, string(category))
	return Destination{
		Dir:         dir,
		CategoryDir: categoryDir,
		Path:        filepath.Join(categoryDir, fileName),
	}
}

// Resolve sets the destination paths of the record. Probe must have run first.
func (r *FileRecord) Resolve(targetRoot string) Destination {
	d := Resolve(targetRoot, r.Category, r.DateKey, r.FileName)
	r.DestDir = d.Dir
	r.DestCategoryDir = d.CategoryDir
	r.DestPath = d.Path
	return d
}
