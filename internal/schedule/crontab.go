// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schedule installs crontab entries that run exporter commands
// periodically on Unix hosts.
package schedule

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/robfig/cron/v3"
)

// patternParser accepts standard five-field crontab patterns.
var patternParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

// Entry is one crontab line to install.
type Entry struct {
	Pattern string
	Command string
	Comment string
	User    string
}

// ScheduleExistsError reports that the user's crontab already holds an
// entry with the same pattern.
type ScheduleExistsError struct {
	Pattern string
	Comment string
	Command string
}

func (e *ScheduleExistsError) Error() string {
	return fmt.Sprintf(
		"crontab schedule already exists for command %q (comment: %q, pattern: %q); "+
			"remove it with 'crontab -e' before scheduling again",
		e.Command, e.Comment, e.Pattern)
}

// Crontab reads and writes a user's crontab. The production implementation
// shells out to the crontab command; tests substitute an in-memory fake.
type Crontab interface {
	Read(user string) (string, error)
	Write(user, content string) error
}

// SystemCrontab manages the host crontab via the crontab(1) command.
type SystemCrontab struct{}

// Read returns the user's current crontab, or "" when none is installed.
func (SystemCrontab) Read(user string) (string, error) {
	out, err := exec.Command("crontab", crontabArgs(user, "-l")...).Output()
	if err != nil {
		// crontab -l exits non-zero when the user has no crontab yet.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", nil
		}
		return "", fmt.Errorf("reading crontab: %w", err)
	}
	return string(out), nil
}

// Write replaces the user's crontab with content.
func (SystemCrontab) Write(user, content string) error {
	cmd := exec.Command("crontab", crontabArgs(user, "-")...)
	cmd.Stdin = strings.NewReader(content)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("writing crontab: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func crontabArgs(user string, rest ...string) []string {
	if user == "" {
		return rest
	}
	return append([]string{"-u", user}, rest...)
}

// ValidatePattern checks that pattern is a valid five-field crontab
// expression.
func ValidatePattern(pattern string) error {
	if _, err := patternParser.Parse(pattern); err != nil {
		return fmt.Errorf("cron pattern [%s] isn't valid: %w", pattern, err)
	}
	return nil
}

// Install validates the entry, refuses duplicates for the same pattern, and
// appends it to the user's crontab. It returns a human-readable summary of
// what was installed.
func Install(ct Crontab, e Entry) (string, error) {
	if runtime.GOOS == "windows" {
		return "", fmt.Errorf("cron scheduling isn't available on Windows; consider using Task Scheduler")
	}
	if err := ValidatePattern(e.Pattern); err != nil {
		return "", err
	}

	current, err := ct.Read(e.User)
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(current, "\n") {
		existing, ok := parseLine(line)
		if !ok {
			continue
		}
		if existing.Pattern == e.Pattern {
			return "", &ScheduleExistsError{
				Pattern: existing.Pattern,
				Comment: existing.Comment,
				Command: existing.Command,
			}
		}
	}

	updated := current
	if updated != "" && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += formatLine(e) + "\n"

	if err := ct.Write(e.User, updated); err != nil {
		return "", err
	}
	return Render(e), nil
}

// Render returns the summary shown for an installed or dry-run entry.
func Render(e Entry) string {
	user := e.User
	if user == "" {
		user = "current user"
	}
	return fmt.Sprintf(
		"\nCommand  ==> %s\nSchedule ==> %s\nComment  ==> %s\nUser     ==> %s\n",
		e.Command, e.Pattern, e.Comment, user)
}

// formatLine renders the crontab line for an entry. The comment rides on
// the same line so parseLine can recover it.
func formatLine(e Entry) string {
	line := e.Pattern + " " + e.Command
	if e.Comment != "" {
		line += " # " + e.Comment
	}
	return line
}

// parseLine splits a crontab line into pattern, command, and trailing
// comment. Blank lines, full-line comments, and environment assignments
// report ok=false.
func parseLine(line string) (Entry, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.Contains(strings.SplitN(trimmed, " ", 2)[0], "=") {
		return Entry{}, false
	}

	fields := strings.Fields(trimmed)
	if len(fields) < 6 {
		return Entry{}, false
	}

	pattern := strings.Join(fields[:5], " ")
	if _, err := patternParser.Parse(pattern); err != nil {
		return Entry{}, false
	}

	rest := strings.Join(fields[5:], " ")
	command, comment := rest, ""
	if idx := strings.Index(rest, " # "); idx >= 0 {
		command = rest[:idx]
		comment = rest[idx+len(" # "):]
	}
	return Entry{Pattern: pattern, Command: command, Comment: comment}, true
}
