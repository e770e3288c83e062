package main

import (
	"bufio"
	"fmt"
	"io"
	"os/user"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mlevkov/postman-exporter/internal/schedule"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Set a crontab schedule for the export or archive command",
	Long: `Schedule prompts for the parameters of the chosen command and installs a
crontab entry that runs it periodically. An existing entry with the same
pattern is refused. Use --dry-run to preview the entry without writing it.`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringP("action", "a", "", "action to schedule: export or archive")
	scheduleCmd.Flags().StringP("pattern", "p", "", `crontab pattern (e.g. "0 0 * * *" for daily at midnight); quote it`)
	scheduleCmd.Flags().StringP("comment", "c", "", "comment written next to the crontab entry")
	scheduleCmd.Flags().StringP("user", "u", currentUsername(), "username for the target crontab")
	scheduleCmd.Flags().Bool("dry-run", false, "show the crontab entry that would be created, without applying it")
	scheduleCmd.MarkFlagRequired("action")
	scheduleCmd.MarkFlagRequired("pattern")
	scheduleCmd.MarkFlagRequired("comment")

	rootCmd.AddCommand(scheduleCmd)
}

func currentUsername() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	return u.Username
}

func runSchedule(cmd *cobra.Command, args []string) error {
	action, _ := cmd.Flags().GetString("action")
	pattern, _ := cmd.Flags().GetString("pattern")
	comment, _ := cmd.Flags().GetString("comment")
	cronUser, _ := cmd.Flags().GetString("user")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	actionToCommand := map[string]*cobra.Command{
		"export":  exportCmd,
		"archive": archiveCmd,
	}
	target, ok := actionToCommand[strings.ToLower(action)]
	if !ok {
		return fail(fmt.Errorf("unknown action %q (choose export or archive)", action))
	}

	if err := schedule.ValidatePattern(pattern); err != nil {
		return fail(err)
	}

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	if !confirm(in, out, fmt.Sprintf("Please, fill out params to schedule for the <%s> command. Continue?", action)) {
		color.Yellow("Operation cancelled.")
		return nil
	}

	params := promptParams(target, in, out)

	command, err := schedule.ComposeCommand(target.Name(), params)
	if err != nil {
		return fail(err)
	}

	entry := schedule.Entry{
		Pattern: pattern,
		Command: command,
		Comment: comment,
		User:    cronUser,
	}

	if dryRun {
		color.Yellow("\nThis is a dry run operation. No actual changes have been made!")
		fmt.Fprint(out, schedule.Render(entry))
		return nil
	}

	summary, err := schedule.Install(schedule.SystemCrontab{}, entry)
	if err != nil {
		return fail(err)
	}
	color.Green("%s", summary)
	return nil
}

// promptParams asks for a value for each flag of the scheduled command.
// Repeatable flags prompt again until declined; empty answers omit the flag
// so the scheduled run falls back to its default.
func promptParams(target *cobra.Command, in *bufio.Reader, out io.Writer) []string {
	var params []string
	target.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "help" {
			return
		}
		if f.Value.Type() == "stringArray" {
			for {
				if v := promptValue(in, out, f); v != "" {
					params = append(params, fmt.Sprintf("--%s=%s", f.Name, v))
				}
				if !confirm(in, out, fmt.Sprintf("Any other value for '%s'?", f.Name)) {
					break
				}
			}
			return
		}
		if v := promptValue(in, out, f); v != "" {
			params = append(params, fmt.Sprintf("--%s=%s", f.Name, v))
		}
	})
	return params
}

func promptValue(in *bufio.Reader, out io.Writer, f *pflag.Flag) string {
	if isRequiredFlag(f) {
		fmt.Fprintf(out, "==> %s (required): ", f.Name)
	} else if f.DefValue != "" {
		fmt.Fprintf(out, "==> %s [%s]: ", f.Name, f.DefValue)
	} else {
		fmt.Fprintf(out, "==> %s: ", f.Name)
	}
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func isRequiredFlag(f *pflag.Flag) bool {
	return len(f.Annotations[cobra.BashCompOneRequiredFlag]) > 0
}

func confirm(in *bufio.Reader, out io.Writer, msg string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", msg)
	line, _ := in.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
