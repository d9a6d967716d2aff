package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cito/internal/observ"
	"cito/internal/prof"
	"cito/internal/trace"
	"cito/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cito",
	Short: "Ci type system and built-in environment tools",
	Long: `cito inspects the Ci built-in environment and checks assignments and
library calls against it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyConfig(cmd); err != nil {
			return err
		}
		if err := applyColor(cmd); err != nil {
			return err
		}
		if err := startProfiling(cmd); err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		finish(cmd)
	},
}

var (
	traceCleanup func()
	profSession  *prof.Session
)

// finish flushes tracing and profiles. It runs after the command, or from
// main when the command failed.
func finish(cmd *cobra.Command) {
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
	if err := profSession.Stop(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
	}
	profSession = nil
}

func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return err
	}
	if opts.Mem, err = flags.GetString("memprofile"); err != nil {
		return err
	}
	if opts.Trace, err = flags.GetString("exec-trace"); err != nil {
		return err
	}
	profSession, err = prof.Start(opts)
	return err
}

// newTimer returns a phase timer when --timings is set, traced under the
// command context, and nil otherwise.
func newTimer(cmd *cobra.Command) *observ.Timer {
	on, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil || !on {
		return nil
	}
	ctx := cmd.Context()
	return observ.NewTimer(trace.FromContext(ctx), trace.CurrentSpan(ctx).SpanID)
}

func printTimings(cmd *cobra.Command, timer *observ.Timer) {
	if timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to cito.toml (default: search upward from the working directory)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "events kept in ring mode")
	flags.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")
	flags.Bool("timings", false, "show timing information")
	flags.String("cpuprofile", "", "write a CPU profile to file")
	flags.String("memprofile", "", "write a heap profile to file")
	flags.String("exec-trace", "", "write a Go runtime execution trace to file")

	err := rootCmd.Execute()
	finish(rootCmd)
	if err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// applyColor sets the process-wide color mode used by diagnostics and the
// version banner.
func applyColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	on, err := colorEnabled(mode, isTerminal(os.Stdout))
	if err != nil {
		return err
	}
	color.NoColor = !on
	return nil
}

func colorEnabled(mode string, tty bool) (bool, error) {
	switch mode {
	case "", "auto":
		return tty, nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, &flagError{flag: "color", value: mode, want: "auto|on|off"}
	}
}

type flagError struct {
	flag, value, want string
}

func (e *flagError) Error() string {
	return "invalid --" + e.flag + " value \"" + e.value + "\" (expected " + e.want + ")"
}
