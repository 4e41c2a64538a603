package directive

import (
	"go/token"
	"strconv"
	"strings"

	"golang.org/x/mod/module"

	"fieldmap/internal/common"
	"fieldmap/internal/diagnostic"
	"fieldmap/internal/match"
)

// OptionItem is the only option recognized by //fieldmap:fields.
const OptionItem = "item"

// MsgItemKind is reported when item is neither a path nor a string.
const MsgItemKind = "item parameter must specify string literal or path."

// MsgFieldsRequired is reported when Fields is derived without a fields
// directive.
const MsgFieldsRequired = "`//fieldmap:fields item = \"{TypeName}\"` required."

// Capability names the interface type every member is viewed through by
// the by-index accessors.
type Capability struct {
	// Qualifier is the package name written before the dot, empty for a
	// local or predeclared type (any, Stringer).
	Qualifier string
	// Name is the type name.
	Name string
	// ImportPath is set when the string form spelled the full import path.
	ImportPath string
	// Literal records whether the value was a string literal.
	Literal bool
	// Span covers the value as written.
	Span diagnostic.Span
}

// Expr renders the capability as a Go type expression.
func (c Capability) Expr() string {
	if c.Qualifier == "" {
		return c.Name
	}

	return c.Qualifier + "." + c.Name
}

// String renders the capability the way it would be written in a directive.
func (c Capability) String() string {
	if c.ImportPath != "" {
		return c.ImportPath + "." + c.Name
	}

	return c.Expr()
}

// ExtractElementCapability finds the //fieldmap:fields directive among dirs
// and returns its item. It returns nil and no diagnostics when the directive
// is absent.
//
// Only one fields directive is allowed, each option may appear once, and the
// only option is item.
func ExtractElementCapability(dirs []Directive) (*Capability, []diagnostic.Diagnostic) {
	fields := Filter(dirs, NameFields)

	d, ok := common.First(fields)
	if !ok {
		return nil, nil
	}

	var diags []diagnostic.Diagnostic
	for _, dup := range fields[1:] {
		diags = append(diags, diagnostic.New(diagnostic.CodeDuplicate, dup.Span,
			"duplicate //fieldmap:fields directive; first declared at %s", fields[0].Span))
	}

	list, err := optionParser.ParseString("", d.Body)
	if err != nil {
		return nil, append(diags, syntaxError(d, err))
	}

	var (
		capability *Capability
		seen       = map[string]diagnostic.Span{}
	)

	for _, opt := range list.Options {
		span := spanAt(d.BodySpan, opt.Pos, opt.EndPos)

		if first, dup := seen[opt.Key]; dup {
			diags = append(diags, diagnostic.New(diagnostic.CodeDuplicate, span,
				"duplicate option %q; first set at %s", opt.Key, first))
			continue
		}

		seen[opt.Key] = span

		if opt.Key != OptionItem {
			diags = append(diags, diagnostic.New(diagnostic.CodeUnknownOption, span,
				"unknown option %q; only %s is recognized", opt.Key, OptionItem).
				WithHint(match.Hint(opt.Key, []string{OptionItem})))
			continue
		}

		c, diag, ok := itemValue(d, opt.Value)
		if !ok {
			diags = append(diags, diag)
			continue
		}

		capability = c
	}

	if len(diags) > 0 {
		return nil, diags
	}

	if capability == nil {
		return nil, []diagnostic.Diagnostic{
			diagnostic.New(diagnostic.CodeMalformed, d.Span, "//fieldmap:fields directive has no item option"),
		}
	}

	return capability, nil
}

func itemValue(d Directive, v *value) (*Capability, diagnostic.Diagnostic, bool) {
	span := spanAt(d.BodySpan, v.Pos, v.EndPos)

	switch {
	case v.String != nil:
		c, msg := parseStringPath(*v.String)
		if msg != "" {
			return nil, diagnostic.New(diagnostic.CodeMalformed, span, "%s", msg), false
		}

		c.Span = span

		return c, diagnostic.Diagnostic{}, true

	case len(v.Path) > 0:
		c, msg := fromSegments(v.Path)
		if msg != "" {
			return nil, diagnostic.New(diagnostic.CodeMalformed, span, "%s", msg), false
		}

		c.Span = span

		return c, diagnostic.Diagnostic{}, true

	default:
		return nil, diagnostic.New(diagnostic.CodeMalformed, span, MsgItemKind), false
	}
}

// parseStringPath interprets the content of a string-form item. It accepts
// TypeName, pkg.TypeName and import/path.TypeName.
func parseStringPath(lit string) (*Capability, string) {
	s, err := strconv.Unquote(lit)
	if err != nil {
		return nil, "item string " + lit + " is not a valid Go string literal"
	}

	s = strings.TrimSpace(s)

	if strings.Contains(s, "/") {
		dot := strings.LastIndexByte(s, '.')
		if dot <= strings.LastIndexByte(s, '/') {
			return nil, strconv.Quote(s) + " must end in .TypeName after the import path"
		}

		importPath, name := s[:dot], s[dot+1:]
		if err := module.CheckImportPath(importPath); err != nil {
			return nil, "item import path: " + err.Error()
		}

		if !token.IsIdentifier(name) {
			return nil, strconv.Quote(name) + " is not a valid type name"
		}

		return &Capability{Name: name, ImportPath: importPath, Literal: true}, ""
	}

	tp, err := pathParser.ParseString("", s)
	if err != nil {
		return nil, "item string " + strconv.Quote(s) + " does not contain a path"
	}

	c, msg := fromSegments(tp.Segments)
	if msg != "" {
		return nil, msg
	}

	c.Literal = true

	return c, ""
}

func fromSegments(segs []string) (*Capability, string) {
	switch len(segs) {
	case 1:
		return &Capability{Name: segs[0]}, ""
	case 2:
		return &Capability{Qualifier: segs[0], Name: segs[1]}, ""
	default:
		return nil, "item path " + strconv.Quote(strings.Join(segs, ".")) +
			" must be TypeName or package.TypeName; use the string form for a full import path"
	}
}
