// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ManifestName is the filename of the per-run export record.
const ManifestName = "export-manifest.yaml"

// Manifest records one export run: the requested names, the date the
// filenames carry, and the file written for each resolved UID.
type Manifest struct {
	Date  string         `yaml:"date"`
	Names []string       `yaml:"names"`
	Files []ManifestFile `yaml:"files"`
}

// ManifestFile pairs a resolved collection UID with its exported file.
type ManifestFile struct {
	UID  string `yaml:"uid"`
	File string `yaml:"file"`
}

// WriteManifest writes the manifest into dir, replacing any manifest from a
// previous run.
func WriteManifest(dir string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// ReadManifest reads the manifest from dir.
func ReadManifest(dir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest: %w", err)
	}
	return m, nil
}
