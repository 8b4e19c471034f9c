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

// Package media describes one card file and where it belongs in the target
// tree.
package media

import (
	"path/filepath"
	"time"
)

// 📂 Category is one of the fixed source subdirectories on the card
type Category string

const (
	CategoryEvent   Category = "Event"
	CategoryParking Category = "Parking"
	CategoryPhoto   Category = "Photo"
	CategoryVideo   Category = "Video"
)

// DefaultCategories is the enumeration order used when nothing else is configured.
// The order only matters as a tie-break for files with equal modification times.
func DefaultCategories() []Category {
	return []Category{CategoryEvent, CategoryParking, CategoryPhoto, CategoryVideo}
}

// 📄 FileRecord is one candidate file on the card.
//
// The record is filled in three passes: Probe, Resolve and MarkImported. Values
// captured by Probe are never re-read during the run.
type FileRecord struct {
	FileName   string
	Category   Category
	SourcePath string

	Size       int64
	ModTime    time.Time
	AccessTime time.Time
	DateKey    string

	DestDir         string
	DestCategoryDir string
	DestPath        string

	AlreadyImported bool
}

// 🏭 NewFileRecord creates a record for name inside the category directory of sourceRoot
func NewFileRecord(sourceRoot string, category Category, name string) *FileRecord {
	return &FileRecord{
		FileName:   name,
		Category:   category,
		SourcePath: filepath.Join(sourceRoot, string(category), name),
	}
}
