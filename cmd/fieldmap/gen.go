package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"fieldmap/internal/gen"
)

var (
	genOpts   genOptions
	genDryRun bool
)

var genCmd = &cobra.Command{
	Use:   "gen [flags] [packages]",
	Short: "Generate member access for annotated types",
	Long: `Generate writes the by-type and by-index methods for every annotated type of
the given packages (default "."). Derivations that fail are reported and left
out; the others are still written.`,
	Example: `  //go:generate go run fieldmap/cmd/fieldmap gen --type=Example
  fieldmap gen ./...`,
	RunE: runGen,
}

func init() {
	genOpts.register(genCmd)
	genCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "print the generated code instead of writing it")
}

func runGen(cmd *cobra.Command, args []string) error {
	outcomes, err := genOpts.run(cmd.Context(), args)
	if err != nil {
		return err
	}

	var errs []error

	for _, o := range outcomes {
		if genDryRun {
			for _, f := range o.result.Files {
				fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s", filepath.Join(o.dir, f.Filename), f.Content)
			}

			continue
		}

		written, err := gen.WriteFiles(o.result.Files, o.dir)
		if err != nil {
			errs = append(errs, err)
		}

		for _, name := range written {
			slog.Info("wrote", "file", filepath.Join(o.dir, name))
		}

		slog.Debug("generated", "dir", o.dir, "derived", o.result.Derived, "cached", o.cached)
	}

	if err := report(cmd, outcomes); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
