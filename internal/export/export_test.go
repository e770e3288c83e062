// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	data := map[string]any{
		"collection": map[string]any{
			"info": map[string]any{"name": "My API"},
		},
	}

	err := WriteJSON(dir, "My API_2026-08-26.json", data)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "My API_2026-08-26.json"))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, data, got)

	// Files are written human-readable, with 4-space indentation.
	assert.True(t, strings.Contains(string(raw), "\n    \"info\""), "output is indented:\n%s", raw)
}

func TestWriteJSON_MissingDir(t *testing.T) {
	err := WriteJSON(filepath.Join(t.TempDir(), "nope"), "f.json", map[string]any{})
	require.Error(t, err)
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := Manifest{
		Date:  "2026-08-26",
		Names: []string{"name1", "name2"},
		Files: []ManifestFile{
			{UID: "uid1", File: "Collection uid1_2026-08-26.json"},
			{UID: "uid2", File: "Collection uid2_2026-08-26.json"},
		},
	}

	require.NoError(t, WriteManifest(dir, m))

	got, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestReadManifest_Missing(t *testing.T) {
	_, err := ReadManifest(t.TempDir())
	assert.True(t, os.IsNotExist(err))
}
