package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"fieldmap/internal/diagnostic"
	"fieldmap/internal/directive"
)

// LoadMode specifies what information to load from packages. Records are
// built from syntax alone; type checking is left to the compiler that builds
// the generated code.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedImports

// ErrTypeNotFound is returned when a type named with --type is not declared
// in the loaded packages.
var ErrTypeNotFound = errors.New("type not found")

// Analyzer loads Go packages and collects the records to derive for.
type Analyzer struct {
	// Dir is the working directory for package patterns.
	Dir string
	// Types restricts the result to these type names and selects them even
	// without a directive.
	Types []string
	// Tests includes _test.go files.
	Tests bool
}

// NewAnalyzer creates a new Analyzer selecting the given type names. With no
// names, every type carrying a //fieldmap: directive is collected.
func NewAnalyzer(typeNames ...string) *Analyzer {
	return &Analyzer{Types: typeNames}
}

// LoadPackages loads the packages matching patterns and returns one Package
// per loaded package that declares at least one record.
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) ([]*Package, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	fset := token.NewFileSet()
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     a.Dir,
		Fset:    fset,
		Tests:   a.Tests,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Parse errors matter; type errors are not checked at this mode.
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	var out []*Package

	for _, pkg := range pkgs {
		p := &Package{
			Name: pkg.Name,
			Path: pkg.PkgPath,
			Fset: fset,
		}

		if len(pkg.GoFiles) > 0 {
			p.Dir = filepath.Dir(pkg.GoFiles[0])
		}

		for _, f := range pkg.Syntax {
			imports := fileImports(f, pkg.Imports)
			p.Records = append(p.Records, a.collect(fset, f, imports)...)
		}

		if len(p.Records) > 0 {
			out = append(out, p)
		}
	}

	if err := a.checkSelected(out); err != nil {
		return nil, err
	}

	return out, nil
}

// ParseSource builds a Package from a single in-memory file. src may be
// nil, in which case the file is read from disk.
func (a *Analyzer) ParseSource(filename string, src any) (*Package, error) {
	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	p := &Package{
		Name:    f.Name.Name,
		Dir:     filepath.Dir(filename),
		Fset:    fset,
		Records: a.collect(fset, f, fileImports(f, nil)),
	}

	if err := a.checkSelected([]*Package{p}); err != nil {
		return nil, err
	}

	return p, nil
}

func (a *Analyzer) checkSelected(pkgs []*Package) error {
	var missing []string

	for _, name := range a.Types {
		found := slices.ContainsFunc(pkgs, func(p *Package) bool {
			return slices.ContainsFunc(p.Records, func(r *Record) bool { return r.Name == name })
		})

		if !found {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrTypeNotFound, strings.Join(missing, ", "))
	}

	return nil
}

// collect returns the records declared in f, in source order.
func (a *Analyzer) collect(fset *token.FileSet, f *ast.File, imports []ImportInfo) []*Record {
	var records []*Record

	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			docs := []*ast.CommentGroup{ts.Doc}
			if !gd.Lparen.IsValid() {
				docs = []*ast.CommentGroup{gd.Doc, ts.Doc}
			}

			dirs := directive.Collect(fset, docs...)
			selected := slices.Contains(a.Types, ts.Name.Name)

			if len(a.Types) > 0 && !selected {
				continue
			}

			if len(dirs) == 0 && !selected {
				continue
			}

			r := buildRecord(fset, ts, dirs)
			r.Selected = selected
			r.Imports = imports
			records = append(records, r)
		}
	}

	return records
}

func buildRecord(fset *token.FileSet, ts *ast.TypeSpec, dirs []directive.Directive) *Record {
	r := &Record{
		Name:       ts.Name.Name,
		Directives: dirs,
		Span:       diagnostic.SpanOf(fset, ts.Name.Pos(), ts.Name.End()),
		DeclSpan:   diagnostic.SpanOf(fset, ts.Pos(), ts.End()),
		Alias:      ts.Assign.IsValid(),
	}

	r.File = r.Span.File

	if ts.TypeParams != nil {
		for _, field := range ts.TypeParams.List {
			constraint := TypeString(field.Type)
			for _, id := range field.Names {
				r.TypeParams = append(r.TypeParams, TypeParam{Name: id.Name, Constraint: constraint})
			}
		}
	}

	st, ok := ts.Type.(*ast.StructType)
	if !ok || r.Alias {
		return r
	}

	r.Struct = true
	r.Shape, r.Members = Normalize(fset, st)

	return r
}

// fileImports lists the imports of f. Package names come from loaded
// imports when known.
func fileImports(f *ast.File, loaded map[string]*packages.Package) []ImportInfo {
	imports := make([]ImportInfo, 0, len(f.Imports))

	for _, spec := range f.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		info := ImportInfo{Path: path}
		if spec.Name != nil {
			info.Alias = spec.Name.Name
		}

		if p, ok := loaded[path]; ok && p != nil {
			info.PkgName = p.Name
		}

		imports = append(imports, info)
	}

	return imports
}
