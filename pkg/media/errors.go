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

	"gitlab.com/tozd/go/errors"
)

// ⚠️ Kind classifies the stage at which an import failed
type Kind int

const (
	KindUnknown Kind = iota
	KindProbe
	KindEnumeration
	KindCopy
	KindRename
	KindTimestamp
	KindDirectoryCreate
	KindIdentityRead
	KindEject
	KindConfig
)

// String returns the error kind name
func (k Kind) String() string {
	switch k {
	case KindProbe:
		return "ProbeError"
	case KindEnumeration:
		return "EnumerationError"
	case KindCopy:
		return "CopyError"
	case KindRename:
		return "RenameError"
	case KindTimestamp:
		return "TimestampError"
	case KindDirectoryCreate:
		return "DirectoryCreateError"
	case KindIdentityRead:
		return "IdentityReadError"
	case KindEject:
		return "EjectError"
	case KindConfig:
		return "ConfigError"
	default:
		return "UnknownError"
	}
}

// 💥 Error is a failure tied to one pipeline stage and, usually, one path.
// Every Error aborts the run.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

// 🏭 NewError wraps err with a kind and the path it concerns
func NewError(kind Kind, path string, err error) error {
	return errors.WithStack(&Error{Kind: kind, Path: path, Err: err})
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Path != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// 🔍 KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// 🔍 IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
