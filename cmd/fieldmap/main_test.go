package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldmap/internal/config"
	"fieldmap/internal/directive"
)

func TestLocalDir(t *testing.T) {
	dir := t.TempDir()

	got, ok := localDir(dir)
	assert.True(t, ok)
	assert.Equal(t, dir, got)

	_, ok = localDir("./...")
	assert.False(t, ok)

	file := filepath.Join(dir, "a.go")
	require.NoError(t, os.WriteFile(file, []byte("package a\n"), 0o644))

	_, ok = localDir(file)
	assert.False(t, ok)

	_, ok = localDir("example.com/not/a/dir")
	assert.False(t, ok)
}

func TestFindGoMod(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "x", "y")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module m\n"), 0o644))

	got, ok := findGoMod(nested)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "go.mod"), got)
}

func TestUnifiedDiff(t *testing.T) {
	diff, err := unifiedDiff("p/fieldmap_gen.go", []byte("a\nold\nc\n"), []byte("a\nnew\nc\n"))
	require.NoError(t, err)

	assert.Contains(t, diff, "--- p/fieldmap_gen.go\n")
	assert.Contains(t, diff, "+++ p/fieldmap_gen.go (generated)\n")
	assert.Contains(t, diff, "-old\n")
	assert.Contains(t, diff, "+new\n")
}

func TestGeneratorConfig(t *testing.T) {
	o := genOptions{types: []string{"Example"}}

	gc, err := o.generatorConfig(config.Default())
	require.NoError(t, err)
	assert.Equal(t, "example_fieldmap.go", gc.Output)
	assert.Equal(t, config.DefaultRuntime, gc.RuntimePath)
	assert.Equal(t, directive.DeriveAll, gc.DefaultDerive)

	cfg := config.Default()
	cfg.Output = "records.go"
	cfg.Derive = []string{"Field"}

	gc, err = o.generatorConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "records.go", gc.Output)
	assert.Equal(t, directive.DeriveField, gc.DefaultDerive)

	gc, err = (&genOptions{}).generatorConfig(config.Default())
	require.NoError(t, err)
	assert.Equal(t, "fieldmap_gen.go", gc.Output)
}

func TestSettings_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fieldmap.yaml"),
		[]byte("runtime: example.com/rt\nheader: from file\noutput: file.go\n"), 0o644))

	o := genOptions{output: "flag.go", derive: []string{"Fields"}, noCache: true}

	cfg, err := o.settings(dir)
	require.NoError(t, err)

	assert.Equal(t, "example.com/rt", cfg.Runtime)
	assert.Equal(t, "from file", cfg.Header)
	assert.Equal(t, "flag.go", cfg.Output)
	assert.Equal(t, []string{"Fields"}, cfg.Derive)
	assert.False(t, cfg.CacheEnabled())

	o = genOptions{derive: []string{"Debug"}}
	_, err = o.settings(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid settings")
}

const moduleSrc = `package sample

//fieldmap:derive Field, Fields
//fieldmap:fields item = any
type Example struct {
	a uint8
	b uint16
}
`

func TestRun_GeneratesAndCaches(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the go command")
	}

	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module sample\n\ngo 1.24\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample.go"), []byte(moduleSrc), 0o644))

	o := genOptions{}

	outcomes, err := o.run(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	first := outcomes[0]
	assert.False(t, first.cached)
	assert.Equal(t, dir, first.dir)
	assert.Equal(t, []string{"Example/Field", "Example/Fields"}, first.result.Derived)
	require.Len(t, first.result.Files, 1)
	assert.Contains(t, string(first.result.Files[0].Content), "func (r *Example) FieldPtr(target any) bool {")

	outcomes, err = o.run(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].cached)
	assert.Equal(t, first.result.Files[0].Content, outcomes[0].result.Files[0].Content)

	// Editing the source invalidates the entry.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample.go"), []byte(moduleSrc+"\nvar _ = 1\n"), 0o644))

	outcomes, err = o.run(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.False(t, outcomes[0].cached)
}
