// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads the Postman API key from a directory of plain-text
// secret files. It is the lowest-priority credential source: the --api-key
// flag and the POSTMAN_API_KEY environment variable both take precedence.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// apiKeyFile is the secret file holding the Postman API key.
const apiKeyFile = "postman-api-key"

// APIKey returns the trimmed contents of dir/postman-api-key. A missing
// directory or file is not an error; APIKey returns "".
func APIKey(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, apiKeyFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading secret %s: %w", apiKeyFile, err)
	}
	return strings.TrimSpace(string(data)), nil
}
