// Package main provides the CLI entrypoint for fieldmap.
//
// fieldmap generates by-type and by-index member access for Go struct
// types annotated with //fieldmap: directives:
//   - gen writes the generated file next to the sources
//   - check fails when the file on disk is stale
//   - inspect prints the member model as YAML
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrDiagnostics is returned after error diagnostics were printed.
var ErrDiagnostics = errors.New("generation reported errors")

var rootCmd = &cobra.Command{
	Use:   "fieldmap",
	Short: "Derive by-type and by-index member access for Go structs",
	Long: `fieldmap reads //fieldmap:derive and //fieldmap:fields directives on struct
types and generates methods that access members by type, by position and by
name, plus iterators over them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
}

func init() {
	rootCmd.Version = Version

	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log progress to stderr")
	rootCmd.PersistentFlags().Int("max-diagnostics", 50, "maximum number of diagnostics to show (0 = all)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		// Diagnostics were already printed.
		if !errors.Is(err, ErrDiagnostics) {
			fmt.Fprintln(os.Stderr, "fieldmap:", err)
		}

		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command) error {
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	return nil
}

// useColor resolves --color for output written to f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}

	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}

		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("unknown color mode %q (must be auto, on or off)", mode)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
