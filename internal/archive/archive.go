// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive bundles a directory of exported collections into a
// compressed archive file.
package archive

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Format identifies the archive container and compression.
type Format string

const (
	FormatZip   Format = "zip"
	FormatTar   Format = "tar"
	FormatGztar Format = "gztar"
)

// ParseFormat converts a user-supplied format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatZip:
		return FormatZip, nil
	case FormatTar:
		return FormatTar, nil
	case FormatGztar:
		return FormatGztar, nil
	default:
		return "", fmt.Errorf("unsupported archive type %q (supported: zip, tar, gztar)", s)
	}
}

// Extension returns the filename extension for the format, dot included.
func (f Format) Extension() string {
	switch f {
	case FormatZip:
		return ".zip"
	case FormatTar:
		return ".tar"
	case FormatGztar:
		return ".tar.gz"
	default:
		return ""
	}
}

// Create archives the contents of srcDir into destStem plus the format's
// extension and returns the full path of the archive. An empty srcDir is an
// error; nothing is created. The archive is written to a temporary file and
// renamed into place so a failed run leaves no partial archive behind.
func Create(srcDir, destStem string, format Format) (string, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return "", fmt.Errorf("reading collections directory %s: %w", srcDir, err)
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("no collection files found in directory %q", srcDir)
	}

	destPath := destStem + format.Extension()

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".archive-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writeErr := writeArchive(tmpFile, srcDir, format)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to create archive: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing archive: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming archive: %w", err)
	}
	return destPath, nil
}

func writeArchive(w io.Writer, srcDir string, format Format) error {
	switch format {
	case FormatZip:
		return writeZip(w, srcDir)
	case FormatTar:
		return writeTar(w, srcDir)
	case FormatGztar:
		gz := gzip.NewWriter(w)
		if err := writeTar(gz, srcDir); err != nil {
			gz.Close()
			return err
		}
		return gz.Close()
	default:
		return fmt.Errorf("unsupported archive type %q", format)
	}
}

func writeZip(w io.Writer, srcDir string) error {
	zw := zip.NewWriter(w)
	err := walkFiles(srcDir, func(rel string, info fs.FileInfo, r io.Reader) error {
		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = rel
		hdr.Method = zip.Deflate
		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		_, err = io.Copy(fw, r)
		return err
	})
	if err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func writeTar(w io.Writer, srcDir string) error {
	tw := tar.NewWriter(w)
	err := walkFiles(srcDir, func(rel string, info fs.FileInfo, r io.Reader) error {
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = rel
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		_, err = io.Copy(tw, r)
		return err
	})
	if err != nil {
		tw.Close()
		return err
	}
	return tw.Close()
}

// walkFiles calls fn for every regular file under srcDir with its
// slash-separated path relative to srcDir.
func walkFiles(srcDir string, fn func(rel string, info fs.FileInfo, r io.Reader) error) error {
	return filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return fn(filepath.ToSlash(rel), info, f)
	})
}
