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

// Package device reads the identity of the card and ejects it.
package device

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/walteh/mioimport/pkg/media"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/net/html/charset"
)

const productNameElement = "ProductName"

// 🪪 Identity is what the card says about the device that wrote it
type Identity struct {
	ProductName string
}

// 🔍 ParseIdentity scans an identity document for the first ProductName
// element. Malformed XML, a missing element or an empty value are errors.
func ParseIdentity(r io.Reader) (Identity, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return Identity{}, errors.Errorf("no <%s> element", productNameElement)
		}
		if err != nil {
			return Identity{}, errors.Errorf("decoding identity: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != productNameElement {
			continue
		}

		var value string
		if err := dec.DecodeElement(&value, &start); err != nil {
			return Identity{}, errors.Errorf("decoding <%s>: %w", productNameElement, err)
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return Identity{}, errors.Errorf("empty <%s> element", productNameElement)
		}
		return Identity{ProductName: value}, nil
	}
}

// 📖 ReadIdentity opens and parses the identity file at path.
// Every failure is a KindIdentityRead error.
func ReadIdentity(fsys afero.Fs, path string) (Identity, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return Identity{}, media.NewError(media.KindIdentityRead, path, err)
	}
	defer f.Close()

	id, err := ParseIdentity(f)
	if err != nil {
		return Identity{}, media.NewError(media.KindIdentityRead, path, err)
	}
	return id, nil
}
