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

package device

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/mioimport/pkg/media"
	"github.com/walteh/mioimport/pkg/testutils"
	"gitlab.com/tozd/go/errors"
)

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		want        string
		errContains string
	}{
		{
			name: "typical_device_file",
			doc: `<?xml version="1.0" encoding="UTF-8"?>
<Device><ProductName>MiVue 798</ProductName><Serial>123</Serial></Device>`,
			want: "MiVue 798",
		},
		{
			name: "nested_and_padded",
			doc:  "<Root><Info>\n  <ProductName>\n    MiVue C380\n  </ProductName>\n</Info></Root>",
			want: "MiVue C380",
		},
		{
			name: "first_element_wins",
			doc:  "<D><ProductName>One</ProductName><ProductName>Two</ProductName></D>",
			want: "One",
		},
		{
			name: "latin1_declared",
			doc:  `<?xml version="1.0" encoding="ISO-8859-1"?><D><ProductName>Caméra</ProductName></D>`,
			want: "CamÃ©ra",
		},
		{
			name:        "missing_element",
			doc:         "<Device><Model>X</Model></Device>",
			errContains: "no <ProductName> element",
		},
		{
			name:        "empty_element",
			doc:         "<Device><ProductName>  </ProductName></Device>",
			errContains: "empty <ProductName> element",
		},
		{
			name:        "malformed",
			doc:         "<Device><Other></Device>",
			errContains: "decoding identity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseIdentity(strings.NewReader(tt.doc))
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.ProductName)
		})
	}
}

func TestReadIdentity(t *testing.T) {
	t.Run("reads_card_file", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		testutils.NewCard(t, fsys, "/card").Identity("Device.xml", "MiVue 798")

		id, err := ReadIdentity(fsys, "/card/Device.xml")
		require.NoError(t, err)
		assert.Equal(t, "MiVue 798", id.ProductName)
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := ReadIdentity(afero.NewMemMapFs(), "/card/Device.xml")
		require.Error(t, err)
		assert.True(t, media.IsKind(err, media.KindIdentityRead))
	})

	t.Run("malformed_file", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/card/Device.xml", []byte("garbage"), 0o644))

		_, err := ReadIdentity(fsys, "/card/Device.xml")
		require.Error(t, err)
		assert.True(t, media.IsKind(err, media.KindIdentityRead))
	})
}

func TestCommandEjector(t *testing.T) {
	t.Run("appends_volume", func(t *testing.T) {
		var gotName string
		var gotArgs []string
		e := NewCommandEjector("diskutil", []string{"eject"}).WithRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
			gotName, gotArgs = name, args
			return []byte("Disk /Volumes/NO NAME ejected"), nil
		})

		require.NoError(t, e.Eject(testutils.Context(t), "/Volumes/NO NAME"))
		assert.Equal(t, "diskutil", gotName)
		assert.Equal(t, []string{"eject", "/Volumes/NO NAME"}, gotArgs)
		assert.Equal(t, []string{"eject"}, e.Args, "configured args should not be mutated")
	})

	t.Run("failure_is_eject_error", func(t *testing.T) {
		e := NewCommandEjector("diskutil", []string{"eject"}).WithRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return []byte("Volume is busy\n"), errors.New("exit status 1")
		})

		err := e.Eject(testutils.Context(t), "/Volumes/NO NAME")
		require.Error(t, err)
		assert.True(t, media.IsKind(err, media.KindEject))
		assert.Contains(t, err.Error(), "Volume is busy")
		assert.Contains(t, err.Error(), "exit status 1")
	})

	t.Run("real_command_missing", func(t *testing.T) {
		err := NewCommandEjector("mioimport-no-such-binary", nil).Eject(testutils.Context(t), "/nowhere")
		require.Error(t, err)
		assert.True(t, media.IsKind(err, media.KindEject))
	})
}

func TestNopEjector(t *testing.T) {
	assert.NoError(t, NopEjector{}.Eject(testutils.Context(t), "/Volumes/NO NAME"))
}
