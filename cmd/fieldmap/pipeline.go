package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"fieldmap/internal/analyze"
	"fieldmap/internal/cache"
	"fieldmap/internal/common"
	"fieldmap/internal/config"
	"fieldmap/internal/gen"
)

// genOptions are the flags shared by gen and check.
type genOptions struct {
	types      []string
	output     string
	derive     []string
	runtime    string
	header     string
	configPath string
	noCache    bool
	tests      bool
}

func (o *genOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceVarP(&o.types, "type", "t", nil, "type names to generate for (default: every type with a //fieldmap: directive)")
	f.StringVarP(&o.output, "output", "o", "", "generated file name (default fieldmap_gen.go, or <type>_fieldmap.go with a single --type)")
	f.StringSliceVar(&o.derive, "derive", nil, "derivations for --type selected types without a derive directive (Field,Fields)")
	f.StringVar(&o.runtime, "runtime", "", "import path of the runtime package")
	f.StringVar(&o.header, "header", "", "extra line for the generated header")
	f.StringVar(&o.configPath, "config", "", "configuration file (default: discovered fieldmap.yaml/.yml/.toml)")
	f.BoolVar(&o.noCache, "no-cache", false, "bypass the generation cache")
	f.BoolVar(&o.tests, "tests", false, "include _test.go files")
}

// outcome is the generation result for one package.
type outcome struct {
	dir    string
	name   string
	result *gen.Result
	cached bool
}

// settings merges the configuration file with the command line.
func (o *genOptions) settings(startDir string) (*config.Config, error) {
	cfg, used, err := config.Load(startDir, o.configPath)
	if err != nil {
		return nil, err
	}

	if used != "" {
		slog.Debug("loaded config", "path", used)
	}

	if o.runtime != "" {
		cfg.Runtime = o.runtime
	}

	if o.output != "" {
		cfg.Output = o.output
	}

	if len(o.derive) > 0 {
		cfg.Derive = o.derive
	}

	if o.header != "" {
		cfg.Header = o.header
	}

	if o.noCache {
		disabled := false
		cfg.Cache.Enabled = &disabled
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return cfg, nil
}

func (o *genOptions) generatorConfig(cfg *config.Config) (gen.GeneratorConfig, error) {
	set, err := cfg.DeriveSet()
	if err != nil {
		return gen.GeneratorConfig{}, err
	}

	gc := gen.DefaultGeneratorConfig()
	gc.RuntimePath = cfg.Runtime
	gc.Header = cfg.Header
	gc.DefaultDerive = set

	switch {
	case cfg.Output != "":
		gc.Output = cfg.Output
	case common.IsSingle(o.types):
		gc.Output = gen.DefaultFilename(o.types[0])
	}

	return gc, nil
}

// run loads and generates every package matched by patterns.
func (o *genOptions) run(ctx context.Context, patterns []string) ([]outcome, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	var outcomes []outcome

	for _, pattern := range patterns {
		out, err := o.runPattern(ctx, pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pattern, err)
		}

		outcomes = append(outcomes, out...)
	}

	return outcomes, nil
}

func (o *genOptions) runPattern(ctx context.Context, pattern string) ([]outcome, error) {
	dir, isDir := localDir(pattern)

	startDir := "."
	if isDir {
		startDir = dir
	}

	cfg, err := o.settings(startDir)
	if err != nil {
		return nil, err
	}

	gc, err := o.generatorConfig(cfg)
	if err != nil {
		return nil, err
	}

	// Only a plain directory can be hashed before loading.
	var (
		dc  *cache.Cache
		key cache.Key
	)

	if isDir && cfg.CacheEnabled() {
		dc, err = cache.Open(cfg.Cache.Dir)
		if err != nil {
			slog.Warn("cache disabled", "err", err)
		} else {
			key, err = o.cacheKey(dir, gc)
			if err != nil {
				return nil, err
			}

			entry, ok, err := dc.Get(key)
			if err != nil {
				slog.Debug("cache entry unusable", "key", key, "err", err)
			}

			if ok {
				slog.Debug("cache hit", "dir", dir, "key", key)
				return []outcome{fromEntry(dir, entry)}, nil
			}
		}
	}

	analyzer := analyze.NewAnalyzer(o.types...)
	analyzer.Tests = o.tests

	// Load from inside the directory so it resolves against its own module.
	if isDir {
		analyzer.Dir = dir
		pattern = "."
	}

	pkgs, err := analyzer.LoadPackages(ctx, pattern)
	if err != nil {
		return nil, err
	}

	if common.IsEmpty(pkgs) {
		slog.Info("no records found", "pattern", pattern)
	}

	g := gen.NewGenerator(gc)
	outcomes := make([]outcome, 0, len(pkgs))

	for _, pkg := range pkgs {
		slog.Debug("generating", "package", pkg.Path, "records", len(pkg.Records))

		res, err := g.Generate(ctx, pkg)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", pkg.Path, err)
		}

		outcomes = append(outcomes, outcome{dir: pkg.Dir, name: pkg.Name, result: res})
	}

	if dc != nil && common.IsSingle(outcomes) {
		if err := dc.Put(key, toEntry(outcomes[0])); err != nil {
			slog.Warn("cache write failed", "err", err)
		}
	}

	return outcomes, nil
}

// localDir reports whether pattern names a directory on disk.
func localDir(pattern string) (string, bool) {
	if strings.Contains(pattern, "...") {
		return "", false
	}

	abs, err := filepath.Abs(pattern)
	if err != nil {
		return "", false
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", false
	}

	return abs, true
}

// cacheKey hashes everything generation depends on: settings, the package's
// Go files except the output itself, and the enclosing go.mod.
func (o *genOptions) cacheKey(dir string, gc gen.GeneratorConfig) (cache.Key, error) {
	h := cache.NewHasher(Version).
		Text(dir).
		Text(gc.RuntimePath).
		Text(gc.Output).
		Text(gc.Header).
		Text(gc.DefaultDerive.String()).
		Text(strings.Join(o.types, ",")).
		Text(fmt.Sprint(o.tests))

	files, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return cache.Key{}, err
	}

	for _, f := range files {
		name := filepath.Base(f)
		if name == gc.Output || (!o.tests && strings.HasSuffix(name, "_test.go")) {
			continue
		}

		b, err := os.ReadFile(f)
		if err != nil {
			return cache.Key{}, fmt.Errorf("hashing inputs: %w", err)
		}

		h.File(name, b)
	}

	if mod, ok := findGoMod(dir); ok {
		b, err := os.ReadFile(mod)
		if err != nil {
			return cache.Key{}, fmt.Errorf("hashing inputs: %w", err)
		}

		h.File(mod, b)
	}

	return h.Sum(), nil
}

func findGoMod(dir string) (string, bool) {
	for {
		p := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(p); err == nil {
			return p, true
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}

		dir = parent
	}
}

func toEntry(o outcome) *cache.Entry {
	e := &cache.Entry{
		Package:     o.name,
		Derived:     slices.Clone(o.result.Derived),
		Diagnostics: o.result.Diagnostics,
	}

	for _, f := range o.result.Files {
		e.Files = append(e.Files, cache.File{Name: f.Filename, Content: f.Content})
	}

	return e
}

func fromEntry(dir string, e *cache.Entry) outcome {
	res := &gen.Result{
		Derived:     e.Derived,
		Diagnostics: e.Diagnostics,
	}

	for _, f := range e.Files {
		res.Files = append(res.Files, gen.GeneratedFile{Filename: f.Name, Content: f.Content})
	}

	return outcome{dir: dir, name: e.Package, result: res, cached: true}
}
