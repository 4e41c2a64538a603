package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fieldmap/internal/analyze"
)

var (
	inspectTypes []string
	inspectTests bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] [packages]",
	Short: "Print the member model of annotated types as YAML",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringSliceVarP(&inspectTypes, "type", "t", nil, "type names to inspect")
	inspectCmd.Flags().BoolVar(&inspectTests, "tests", false, "include _test.go files")
}

// inspectedPackage is the YAML document for one package.
type inspectedPackage struct {
	Package string            `yaml:"package"`
	Path    string            `yaml:"path"`
	Records []*analyze.Record `yaml:"records"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	analyzer := analyze.NewAnalyzer(inspectTypes...)
	analyzer.Tests = inspectTests

	pkgs, err := analyzer.LoadPackages(cmd.Context(), args...)
	if err != nil {
		return err
	}

	docs := make([]inspectedPackage, 0, len(pkgs))
	for _, p := range pkgs {
		docs = append(docs, inspectedPackage{Package: p.Name, Path: p.Path, Records: p.Records})
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)

	if err := enc.Encode(docs); err != nil {
		return err
	}

	return enc.Close()
}
