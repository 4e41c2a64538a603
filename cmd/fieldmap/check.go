package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"fieldmap/internal/gen"
)

// ErrStale is returned when a generated file differs from what gen would
// write.
var ErrStale = errors.New("generated files are out of date; run fieldmap gen")

var checkOpts genOptions

var checkCmd = &cobra.Command{
	Use:   "check [flags] [packages]",
	Short: "Verify generated files are up to date",
	Long: `Check regenerates in memory and prints a unified diff for every generated file
that differs from the one on disk.`,
	RunE: runCheck,
}

func init() {
	checkOpts.register(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	outcomes, err := checkOpts.run(cmd.Context(), args)
	if err != nil {
		return err
	}

	stale := false

	for _, o := range outcomes {
		for _, f := range o.result.Files {
			path := filepath.Join(o.dir, f.Filename)

			current, err := gen.ReadExisting(o.dir, f.Filename)
			if err != nil {
				return err
			}

			if string(current) == string(f.Content) {
				continue
			}

			stale = true

			diff, err := unifiedDiff(path, current, f.Content)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), diff)
		}
	}

	if err := report(cmd, outcomes); err != nil {
		return err
	}

	if stale {
		return ErrStale
	}

	return nil
}

func unifiedDiff(path string, current, want []byte) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(want)),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diffing %s: %w", path, err)
	}

	return diff, nil
}
