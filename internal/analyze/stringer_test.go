package analyze

import (
	"go/ast"
	"go/parser"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripKeywordEscape(t *testing.T) {
	tests := map[string]string{
		"type_":   "type",
		"range_":  "range",
		"func_":   "func",
		"count_":  "count_",
		"type":    "type",
		"_":       "_",
		"type__":  "type__",
		"Type_":   "Type_",
		"plain":   "plain",
		"select_": "select",
	}

	for in, want := range tests {
		assert.Equal(t, want, StripKeywordEscape(in), in)
	}
}

func mustExpr(t *testing.T, src string) ast.Expr {
	t.Helper()

	e, err := parser.ParseExpr(src)
	require.NoError(t, err)

	return e
}

func TestEmbeddedName(t *testing.T) {
	tests := map[string]string{
		"uint8":           "uint8",
		"*Inner":          "Inner",
		"fmt.Stringer":    "Stringer",
		"*pkg.List[int]":  "List",
		"Pair[K, V]":      "Pair",
		"pkg.Map[K, V]":   "Map",
		"[]int":           "",
		"map[string]int":  "",
		"*sync.Mutex":     "Mutex",
		"io.ReadCloser":   "ReadCloser",
		"(Parenthesized)": "Parenthesized",
	}

	for in, want := range tests {
		assert.Equal(t, want, EmbeddedName(mustExpr(t, in)), in)
	}
}

func TestTypeString(t *testing.T) {
	for _, src := range []string{"uint8", "[2]T", "map[string][]*fmt.Stringer", "func(int) error", "chan<- int"} {
		assert.Equal(t, src, TypeString(mustExpr(t, src)))
	}
}

func TestQualifiers(t *testing.T) {
	assert.Empty(t, Qualifiers(mustExpr(t, "[]int")))
	assert.Equal(t, []string{"fmt"}, Qualifiers(mustExpr(t, "fmt.Stringer")))
	assert.Equal(t, []string{"fmt", "io"}, Qualifiers(mustExpr(t, "map[*fmt.State]func(io.Reader) fmt.Stringer")))
}

func TestShapeKind_String(t *testing.T) {
	assert.Equal(t, "Unit", ShapeUnit.String())
	assert.Equal(t, "Named", ShapeNamed.String())
	assert.Equal(t, "Positional", ShapePositional.String())
	assert.Equal(t, "ShapeKind(7)", ShapeKind(7).String())
}

func TestMemberKey_String(t *testing.T) {
	assert.Equal(t, "a", MemberKey{Name: "a"}.String())
	assert.Equal(t, "3", MemberKey{Index: 3, Positional: true}.String())
}

func TestImportInfo_LocalName(t *testing.T) {
	assert.Equal(t, "js", ImportInfo{Alias: "js", Path: "encoding/json"}.LocalName())
	assert.Equal(t, "json", ImportInfo{Path: "encoding/json"}.LocalName())
	assert.Equal(t, "yaml", ImportInfo{Path: "gopkg.in/yaml.v3"}.LocalName())
	assert.Equal(t, "real", ImportInfo{Path: "example.com/x", PkgName: "real"}.LocalName())
	assert.Empty(t, ImportInfo{Alias: "_", Path: "embed"}.LocalName())
	assert.Empty(t, ImportInfo{Alias: ".", Path: "strings"}.LocalName())
}

func TestTypeString_KeepsTags(t *testing.T) {
	assert.Equal(t, "struct{ ID int }", TypeString(mustExpr(t, "struct {\n\tID int\n}")))

	got := TypeString(mustExpr(t, "struct{ ID int `json:\"id\"`; Name string `json:\"name\"` }"))
	assert.Contains(t, got, "`json:\"id\"`")
	assert.Contains(t, got, "`json:\"name\"`")

	st, ok := mustExpr(t, got).(*ast.StructType)
	require.True(t, ok)
	require.Len(t, st.Fields.List, 2)
	assert.Equal(t, "`json:\"name\"`", st.Fields.List[1].Tag.Value)
}

func TestIdents(t *testing.T) {
	assert.Equal(t, []string{"int"}, Idents(mustExpr(t, "[]int")))
	assert.Equal(t, []string{"fmt"}, Idents(mustExpr(t, "fmt.Stringer")))
	assert.Equal(t, []string{"r", "target", "time"}, Idents(mustExpr(t, "map[target]func(r) time.Month")))
}
