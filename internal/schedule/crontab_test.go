// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schedule

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCrontab holds crontab content in memory.
type fakeCrontab struct {
	content  string
	readErr  error
	writeErr error
}

func (f *fakeCrontab) Read(string) (string, error) {
	return f.content, f.readErr
}

func (f *fakeCrontab) Write(_, content string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.content = content
	return nil
}

func TestValidatePattern(t *testing.T) {
	valid := []string{"* * * * *", "0 0 * * *", "*/15 2 * * 1-5", "30 4 1 1 0"}
	for _, p := range valid {
		assert.NoError(t, ValidatePattern(p), "pattern %q", p)
	}

	invalid := []string{"", "* * * *", "61 * * * *", "not a pattern", "* * * * * *"}
	for _, p := range invalid {
		assert.Error(t, ValidatePattern(p), "pattern %q", p)
	}
}

func TestInstall_AppendsEntry(t *testing.T) {
	ct := &fakeCrontab{content: "MAILTO=ops@example.com\n0 1 * * * /usr/bin/backup # nightly backup\n"}

	summary, err := Install(ct, Entry{
		Pattern: "0 0 * * *",
		Command: "/usr/local/bin/postman-exporter export --path=exports --collection-names=My API",
		Comment: "daily export",
	})
	require.NoError(t, err)

	assert.Contains(t, ct.content, "0 0 * * * /usr/local/bin/postman-exporter export --path=exports --collection-names=My API # daily export\n")
	assert.Contains(t, ct.content, "MAILTO=ops@example.com", "existing lines are preserved")
	assert.Contains(t, summary, "Schedule ==> 0 0 * * *")
	assert.Contains(t, summary, "Comment  ==> daily export")
}

func TestInstall_RejectsDuplicatePattern(t *testing.T) {
	ct := &fakeCrontab{content: "0 0 * * * /usr/bin/exporter export # old export\n"}

	_, err := Install(ct, Entry{
		Pattern: "0 0 * * *",
		Command: "/usr/bin/exporter archive",
		Comment: "new archive",
	})

	var exists *ScheduleExistsError
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "0 0 * * *", exists.Pattern)
	assert.Equal(t, "old export", exists.Comment)
	assert.Equal(t, "/usr/bin/exporter export", exists.Command)
	assert.NotContains(t, ct.content, "archive", "crontab is left untouched")
}

func TestInstall_InvalidPattern(t *testing.T) {
	ct := &fakeCrontab{}
	_, err := Install(ct, Entry{Pattern: "99 * * * *", Command: "cmd"})
	require.Error(t, err)
	assert.Empty(t, ct.content)
}

func TestInstall_EmptyCrontab(t *testing.T) {
	ct := &fakeCrontab{}
	_, err := Install(ct, Entry{Pattern: "*/5 * * * *", Command: "cmd", Comment: "c"})
	require.NoError(t, err)
	assert.Equal(t, "*/5 * * * * cmd # c\n", ct.content)
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Entry
		ok   bool
	}{
		{
			"entry with comment",
			"0 0 * * * /bin/cmd --flag # hello",
			Entry{Pattern: "0 0 * * *", Command: "/bin/cmd --flag", Comment: "hello"},
			true,
		},
		{
			"entry without comment",
			"*/10 * * * * /bin/cmd",
			Entry{Pattern: "*/10 * * * *", Command: "/bin/cmd"},
			true,
		},
		{"blank", "   ", Entry{}, false},
		{"comment line", "# just a note", Entry{}, false},
		{"env assignment", "PATH=/usr/bin", Entry{}, false},
		{"garbage", "one two three", Entry{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRender(t *testing.T) {
	out := Render(Entry{Pattern: "0 0 * * *", Command: "cmd", Comment: "c", User: "alice"})
	for _, want := range []string{"Command  ==> cmd", "Schedule ==> 0 0 * * *", "Comment  ==> c", "User     ==> alice"} {
		assert.Contains(t, out, want)
	}
}

func TestComposeCommand(t *testing.T) {
	cmd, err := ComposeCommand("export", []string{"--path=exports", "--collection-names=API"})
	require.NoError(t, err)

	parts := strings.Fields(cmd)
	require.GreaterOrEqual(t, len(parts), 4)
	assert.Contains(t, cmd, " export --path=exports --collection-names=API")
}
