package gen

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"runtime"
	"strings"
	"text/template"

	"golang.org/x/sync/errgroup"

	"fieldmap/internal/analyze"
	"fieldmap/internal/diagnostic"
	"fieldmap/internal/directive"
)

// Defaults for GeneratorConfig.
const (
	DefaultRuntimePath = "fieldmap"
	DefaultOutput      = "fieldmap_gen.go"
	outputSuffix       = "_fieldmap.go"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// RuntimePath is the import path of the runtime package.
	RuntimePath string
	// Output is the generated file name.
	Output string
	// OutputDir receives the .unformatted sidecar when formatting fails.
	// Empty means the package directory.
	OutputDir string
	// Header is an extra comment line written below the generated-code
	// marker.
	Header string
	// DefaultDerive applies to records selected by name that carry no
	// //fieldmap:derive directive.
	DefaultDerive directive.DeriveSet
	// Parallelism bounds concurrent record processing. Zero means
	// GOMAXPROCS.
	Parallelism int
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		RuntimePath:   DefaultRuntimePath,
		Output:        DefaultOutput,
		DefaultDerive: directive.DeriveAll,
	}
}

// DefaultFilename names the output for a single selected type.
func DefaultFilename(typeName string) string {
	return strings.ToLower(typeName) + outputSuffix
}

// Generator turns records into Go source implementing by-type and by-index
// access.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.RuntimePath == "" {
		config.RuntimePath = DefaultRuntimePath
	}

	if config.Output == "" {
		config.Output = DefaultOutput
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the base name of the file (e.g., "example_fieldmap.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Result is the outcome of one Generate call. Files is empty when no
// derivation succeeded.
type Result struct {
	Files       []GeneratedFile
	Diagnostics diagnostic.Diagnostics
	// Derived lists the successful derivations as Record/Derive.
	Derived []string
}

// Generate derives code for every record of pkg. Derivations fail
// independently: diagnostics are collected in the result and the output
// keeps every derivation that succeeded. The error is reserved for failures
// of the generator itself.
func (g *Generator) Generate(ctx context.Context, pkg *analyze.Package) (*Result, error) {
	jobs := make([]*job, len(pkg.Records))

	err := g.forEach(ctx, len(jobs), func(i int) error {
		jobs[i] = g.plan(pkg.Records[i])
		return nil
	})
	if err != nil {
		return nil, err
	}

	imports := g.resolveImports(jobs)

	err = g.forEach(ctx, len(jobs), func(i int) error {
		return jobs[i].render()
	})
	if err != nil {
		return nil, err
	}

	res := &Result{}

	var bodies [][]byte

	for _, j := range jobs {
		for _, d := range j.diags {
			res.Diagnostics.Add(d)
		}

		if j.derive.Has(directive.DeriveField) {
			res.Derived = append(res.Derived, j.rec.Name+"/"+directive.DeriveFieldName)
			if len(j.byType) > 0 {
				bodies = append(bodies, j.byType)
			}
		}

		if j.derive.Has(directive.DeriveFields) {
			res.Derived = append(res.Derived, j.rec.Name+"/"+directive.DeriveFieldsName)
			bodies = append(bodies, j.byIndex)
		}
	}

	if len(bodies) == 0 {
		return res, nil
	}

	file, err := g.assemble(pkg, imports, bodies)
	if err != nil {
		return res, err
	}

	res.Files = append(res.Files, *file)

	return res, nil
}

// forEach runs fn for 0..n-1 on a bounded errgroup.
func (g *Generator) forEach(ctx context.Context, n int, fn func(i int) error) error {
	eg, ctx := errgroup.WithContext(ctx)

	limit := g.config.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	eg.SetLimit(limit)

	for i := range n {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			return fn(i)
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("generating records: %w", err)
	}

	return nil
}

// fileData holds everything the file template needs.
type fileData struct {
	Header      string
	PackageName string
	Imports     []importSpec
	Bodies      []string
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by fieldmap. DO NOT EDIT.
{{- if .Header}}
// {{.Header}}
{{- end}}

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{range .Bodies}}
{{.}}
{{end}}`))

func (g *Generator) assemble(pkg *analyze.Package, imports *importSet, bodies [][]byte) (*GeneratedFile, error) {
	data := fileData{
		Header:      g.config.Header,
		PackageName: pkg.Name,
		Imports:     imports.sorted(),
	}

	for _, b := range bodies {
		data.Bodies = append(data.Bodies, string(b))
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		outDir := g.config.OutputDir
		if outDir == "" {
			outDir = pkg.Dir
		}

		// Best-effort: the sidecar helps debugging and must not mask err.
		_ = writeDebugUnformatted(outDir, g.config.Output, buf.Bytes())

		return &GeneratedFile{
			Filename: g.config.Output,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: g.config.Output,
		Content:  formatted,
	}, nil
}
