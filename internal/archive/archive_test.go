// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"archive/tar"
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCollectionsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"My API_2026-08-26.json":       `{"collection": {}}`,
		"Billing_2026-08-26.json":      `{"collection": {"info": {}}}`,
		"nested/Extra_2026-08-26.json": `{}`,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"zip", FormatZip, false},
		{"ZIP", FormatZip, false},
		{"tar", FormatTar, false},
		{"gztar", FormatGztar, false},
		{"bztar", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseFormat(%q)", tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestCreate_EmptyDirFails(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "collections_2026-08-26")

	_, err := Create(src, dest, FormatZip)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no collection files found")

	_, statErr := os.Stat(dest + ".zip")
	assert.True(t, os.IsNotExist(statErr), "no archive file is left behind")
}

func TestCreate_Zip(t *testing.T) {
	src := newCollectionsDir(t)
	dest := filepath.Join(t.TempDir(), "collections_2026-08-26")

	path, err := Create(src, dest, FormatZip)
	require.NoError(t, err)
	assert.Equal(t, dest+".zip", path)

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["My API_2026-08-26.json"])
	assert.True(t, names["Billing_2026-08-26.json"])
	assert.True(t, names["nested/Extra_2026-08-26.json"], "nested files keep relative paths")

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestCreate_Tar(t *testing.T) {
	src := newCollectionsDir(t)
	dest := filepath.Join(t.TempDir(), "collections_2026-08-26")

	path, err := Create(src, dest, FormatTar)
	require.NoError(t, err)
	assert.Equal(t, dest+".tar", path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, 3, countTarEntries(t, f))
}

func TestCreate_Gztar(t *testing.T) {
	src := newCollectionsDir(t)
	dest := filepath.Join(t.TempDir(), "collections_2026-08-26")

	path, err := Create(src, dest, FormatGztar)
	require.NoError(t, err)
	assert.Equal(t, dest+".tar.gz", path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gz.Close()

	assert.Equal(t, 3, countTarEntries(t, gz))
}

func countTarEntries(t *testing.T, r io.Reader) int {
	t.Helper()
	tr := tar.NewReader(r)
	count := 0
	for {
		_, err := tr.Next()
		if err == io.EOF {
			return count
		}
		require.NoError(t, err)
		count++
	}
}

func TestCreate_MissingSourceDir(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "missing"), filepath.Join(t.TempDir(), "out"), FormatZip)
	require.Error(t, err)
}
