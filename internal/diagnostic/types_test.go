package diagnostic

import (
	"bytes"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Basics(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddWarning("W1", Span{}, "careful")
	d.AddInfo("I1", Span{}, "fyi")
	assert.False(t, d.HasErrors())
	assert.Equal(t, 2, d.Len())

	d.AddError(CodeMissingFields, Span{File: "a.go", Line: 3, Column: 1}, "missing")
	assert.True(t, d.HasErrors())
	require.Error(t, d.Error())
	assert.Equal(t, "a.go:3:1: [FM002] missing", d.Error().Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics
	a.AddError("E1", Span{}, "one")
	b.AddError("E2", Span{}, "two")
	b.AddWarning("W1", Span{}, "three")

	a.Merge(b)
	assert.Len(t, a.Errors, 2)
	assert.Len(t, a.Warnings, 1)
}

func TestDiagnostics_AllSorted(t *testing.T) {
	var d Diagnostics
	d.AddError("E2", Span{File: "b.go", Start: 10}, "late")
	d.AddError("E1", Span{File: "a.go", Start: 50}, "other file")
	d.AddWarning("W1", Span{File: "b.go", Start: 1}, "early")

	all := d.All()
	require.Len(t, all, 3)
	assert.Equal(t, "E1", all[0].Code)
	assert.Equal(t, "W1", all[1].Code)
	assert.Equal(t, "E2", all[2].Code)
}

func TestDiagnostic_String(t *testing.T) {
	d := New(CodeUnsupportedShape, Span{File: "x.go", Line: 7, Column: 6}, "derivation supports only record types.")
	d = d.WithRecord("Color", "Fields")
	assert.Equal(t, "x.go:7:6: [Color/Fields] [FM001] derivation supports only record types.", d.String())

	plain := Diagnostic{Message: "bare"}
	assert.Equal(t, "bare", plain.String())

	formatted := New(CodeUnknownOption, Span{}, "unknown option %q", "name")
	assert.Equal(t, `unknown option "name"`, formatted.Message)
}

func TestDiagnostic_WithRecordKeepsExisting(t *testing.T) {
	d := Diagnostic{Record: "A", Derive: "Field"}.WithRecord("B", "Fields")
	assert.Equal(t, "A", d.Record)
	assert.Equal(t, "Field", d.Derive)
}

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}

func TestSpanOf(t *testing.T) {
	fset := token.NewFileSet()
	f := fset.AddFile("rec.go", -1, 100)
	f.SetLines([]int{0, 20, 40})

	sp := SpanOf(fset, f.Pos(25), f.Pos(30))
	assert.Equal(t, "rec.go", sp.File)
	assert.Equal(t, uint32(25), sp.Start)
	assert.Equal(t, uint32(30), sp.End)
	assert.Equal(t, 2, sp.Line)
	assert.Equal(t, 6, sp.Column)
	assert.Equal(t, "rec.go:2:6", sp.String())

	empty := SpanOf(fset, f.Pos(25), token.NoPos)
	assert.Equal(t, uint32(0), empty.Len())

	assert.True(t, SpanOf(nil, token.NoPos, token.NoPos).IsZero())
}

func TestSpan_ShiftSubCover(t *testing.T) {
	sp := Span{File: "a.go", Start: 10, End: 20, Line: 1, Column: 11}

	shifted := sp.Shift(3)
	assert.Equal(t, uint32(13), shifted.Start)
	assert.Equal(t, 14, shifted.Column)

	sub := sp.Sub(2, 4)
	assert.Equal(t, uint32(12), sub.Start)
	assert.Equal(t, uint32(16), sub.End)

	cov := sub.Cover(Span{File: "a.go", Start: 5, End: 8, Line: 1, Column: 6})
	assert.Equal(t, uint32(5), cov.Start)
	assert.Equal(t, uint32(16), cov.End)
	assert.Equal(t, 6, cov.Column)

	other := sp.Cover(Span{File: "b.go", Start: 0, End: 100})
	assert.Equal(t, sp, other)
}

func TestPretty(t *testing.T) {
	src := []byte("package p\n\ntype Color int\n")
	var d Diagnostics
	d.Add(New(CodeUnsupportedShape, Span{File: "p.go", Start: 16, End: 21, Line: 3, Column: 6}, "derivation supports only record types.").
		WithSuggestion("declare Color as a struct"))

	var buf bytes.Buffer
	Pretty(&buf, &d, PrettyOpts{Source: func(string) []byte { return src }})

	out := buf.String()
	assert.Contains(t, out, "p.go:3:6: error[FM001]: derivation supports only record types.")
	assert.Contains(t, out, "  type Color int\n")
	assert.Contains(t, out, "       ^~~~~\n")
	assert.Contains(t, out, "help: declare Color as a struct")
}

func TestPretty_Max(t *testing.T) {
	var d Diagnostics
	for range 3 {
		d.AddError("E", Span{}, "x")
	}

	var buf bytes.Buffer
	Pretty(&buf, &d, PrettyOpts{Max: 1})
	assert.Contains(t, buf.String(), "... and 2 more")
}
