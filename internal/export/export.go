// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes fetched collections to disk as JSON files and
// records each run in a YAML manifest next to the exports.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteJSON writes data to dir/filename as indented JSON.
func WriteJSON(dir, filename string, data any) error {
	out, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling collection: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}
