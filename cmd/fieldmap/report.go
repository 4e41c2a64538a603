package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fieldmap/internal/diagnostic"
)

// report prints the diagnostics of every outcome to stderr and returns
// ErrDiagnostics when any of them is an error.
func report(cmd *cobra.Command, outcomes []outcome) error {
	colored, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}

	maxDiags, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	var all diagnostic.Diagnostics
	for _, o := range outcomes {
		all.Merge(o.result.Diagnostics)
	}

	diagnostic.Pretty(cmd.ErrOrStderr(), &all, diagnostic.PrettyOpts{
		Color:  colored,
		Max:    maxDiags,
		Source: readSource,
	})

	if all.HasErrors() {
		return ErrDiagnostics
	}

	return nil
}

func readSource(file string) []byte {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil
	}

	return b
}
