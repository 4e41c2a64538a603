package directive

import (
	"go/ast"
	"go/token"
	"strings"

	"fieldmap/internal/diagnostic"
)

// Prefix introduces every fieldmap directive comment.
const Prefix = "//fieldmap:"

// Directive names.
const (
	NameDerive = "derive"
	NameFields = "fields"
)

// Directive is one //fieldmap:<name> <body> comment line.
type Directive struct {
	// Name is the word after the prefix, e.g. "fields".
	Name string
	// Body is the remainder of the line with surrounding blanks removed.
	Body string
	// Span covers the whole comment.
	Span diagnostic.Span
	// BodySpan starts at the first byte of Body.
	BodySpan diagnostic.Span
}

// Collect returns the fieldmap directives found in the comment groups, in
// source order. Nil groups are skipped.
func Collect(fset *token.FileSet, groups ...*ast.CommentGroup) []Directive {
	var out []Directive

	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			d, ok := parseComment(fset, c)
			if ok {
				out = append(out, d)
			}
		}
	}

	return out
}

// FromText parses a single comment text positioned at span. Used when the
// comment did not come from go/parser.
func FromText(text string, span diagnostic.Span) (Directive, bool) {
	return split(text, span)
}

func parseComment(fset *token.FileSet, c *ast.Comment) (Directive, bool) {
	return split(c.Text, diagnostic.SpanOf(fset, c.Pos(), c.End()))
}

func split(text string, span diagnostic.Span) (Directive, bool) {
	if !strings.HasPrefix(text, Prefix) {
		return Directive{}, false
	}

	rest := text[len(Prefix):]
	nameEnd := strings.IndexAny(rest, " \t")

	if nameEnd < 0 {
		nameEnd = len(rest)
	}

	name := rest[:nameEnd]
	afterName := rest[nameEnd:]
	body := strings.TrimLeft(afterName, " \t")
	lead := len(Prefix) + nameEnd + (len(afterName) - len(body))
	body = strings.TrimRight(body, " \t\r")

	return Directive{
		Name:     name,
		Body:     body,
		Span:     span,
		BodySpan: span.Sub(lead, len(body)),
	}, true
}

// Filter returns the directives with the given name.
func Filter(dirs []Directive, name string) []Directive {
	var out []Directive

	for _, d := range dirs {
		if d.Name == name {
			out = append(out, d)
		}
	}

	return out
}

// Unknown returns the directives whose name is neither derive nor fields.
func Unknown(dirs []Directive) []Directive {
	var out []Directive

	for _, d := range dirs {
		if d.Name != NameDerive && d.Name != NameFields {
			out = append(out, d)
		}
	}

	return out
}
