// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schedule

import (
	"fmt"
	"os"
	"strings"
)

// ComposeCommand builds the shell command a crontab entry runs: the current
// executable followed by the subcommand name and its flags.
func ComposeCommand(commandName string, params []string) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	parts := append([]string{exe, commandName}, params...)
	return strings.Join(parts, " "), nil
}
