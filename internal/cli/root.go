// ABOUTME: Root command definition and CLI setup
// ABOUTME: Handles global flags, clock injection, and usage errors
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harper/punchclock/internal/config"
	"github.com/harper/punchclock/internal/logging"
	"github.com/harper/punchclock/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string

	// now is the clock used by every command; tests replace it.
	now = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "punchclock",
	Short: "Per-project time tracking clock",
	Long: `Punchclock starts and stops a clock per project, appending each session to a plain
text log, and summarizes time tracked today, over the last 7 days, and in total.

  punchclock <project> b   begin the clock
  punchclock <project> e   end the clock
  punchclock <project> s   summarize time`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return &usageError{cmd: cmd, msg: "incorrect arguments"}
	},
}

// usageError marks a bad invocation; the command's usage is printed with it.
type usageError struct {
	cmd *cobra.Command
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func Execute() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	rootCmd.SetArgs(injectClock(args))
	err := rootCmd.Execute()

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), uerr.cmd.UsageString())
	}
	return err
}

// injectClock routes "punchclock <project> <action>" to the clock command
// when the first argument is not a known command or flag. Exactly two
// arguments ending in an action always route to clock, so a project may
// share a name with a subcommand.
func injectClock(args []string) []string {
	if len(args) == 0 {
		return args
	}
	arg := args[0]
	if len(arg) == 0 || arg[0] == '-' || arg == cobra.ShellCompRequestCmd || arg == cobra.ShellCompNoDescRequestCmd {
		return args
	}
	if len(args) == 2 {
		if _, ok := parseAction(args[1]); ok {
			return append([]string{"clock"}, args...)
		}
	}

	rootCmd.InitDefaultHelpCmd()
	rootCmd.InitDefaultCompletionCmd()
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == arg || cmd.HasAlias(arg) {
			return args
		}
	}
	return append([]string{"clock"}, args...)
}

// newTracker loads config for the current directory and builds a tracker
// logging to the command's stderr.
func newTracker(cmd *cobra.Command) (*tracker.Tracker, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}

	cfg, err := config.Load(configPath, wd)
	if err != nil {
		return nil, err
	}
	if !cfg.Color {
		color.NoColor = true
	}

	logger := logging.New(cmd.ErrOrStderr(), verbose)
	logger.Debug("config loaded", "log_dir", cfg.LogDir, "prefix", cfg.FilePrefix, "timezone", cfg.Timezone)

	return tracker.New(cfg, tracker.WithLogger(logger), tracker.WithClock(now))
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{cmd: cmd, msg: err.Error()}
	})
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show diagnostic logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/punchclock/config.toml)")
}
