package analyze

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"
	"go/types"
	"slices"
	"strings"
)

// StripKeywordEscape removes the trailing underscore Go code uses to name a
// field after a keyword: type_ becomes type. Other names are returned as is,
// including a bare "_" and names like count_.
func StripKeywordEscape(name string) string {
	base, ok := strings.CutSuffix(name, "_")
	if !ok || !token.IsKeyword(base) {
		return name
	}

	return base
}

// EmbeddedName returns the implicit field name of an embedded field: the
// type name without package qualifier, pointer or type arguments.
func EmbeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return EmbeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return EmbeddedName(e.X)
	case *ast.IndexListExpr:
		return EmbeddedName(e.X)
	case *ast.ParenExpr:
		return EmbeddedName(e.X)
	default:
		return ""
	}
}

// TypeString renders a type expression the way it was written, struct tags
// included.
func TypeString(expr ast.Expr) string {
	var buf bytes.Buffer

	// Without line information a struct or interface with a single short
	// member prints on one line.
	if err := printer.Fprint(&buf, token.NewFileSet(), expr); err != nil {
		return types.ExprString(expr)
	}

	return buf.String()
}

// Qualifiers lists the package names a type expression refers to, sorted
// and without duplicates.
func Qualifiers(expr ast.Expr) []string {
	var out []string

	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		if id, ok := sel.X.(*ast.Ident); ok {
			out = append(out, id.Name)
		}

		return false
	})

	slices.Sort(out)

	return slices.Compact(out)
}

// Idents lists the bare identifiers a type expression refers to, sorted and
// without duplicates. Selected names such as Month in time.Month are left out.
func Idents(expr ast.Expr) []string {
	var out []string

	ast.Inspect(expr, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.SelectorExpr:
			ast.Inspect(n.X, func(x ast.Node) bool {
				if id, ok := x.(*ast.Ident); ok {
					out = append(out, id.Name)
				}

				return true
			})

			return false
		case *ast.Ident:
			out = append(out, n.Name)
		}

		return true
	})

	slices.Sort(out)

	return slices.Compact(out)
}
