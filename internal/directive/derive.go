package directive

import (
	"fmt"
	"strings"

	"fieldmap/internal/diagnostic"
	"fieldmap/internal/match"
)

// DeriveSet is the set of derivations requested for a record.
type DeriveSet uint8

const (
	// DeriveField emits by-type access.
	DeriveField DeriveSet = 1 << iota
	// DeriveFields emits by-index access.
	DeriveFields

	DeriveNone DeriveSet = 0
	DeriveAll            = DeriveField | DeriveFields
)

// Derive names as written in directives and flags.
const (
	DeriveFieldName  = "Field"
	DeriveFieldsName = "Fields"
)

// Has reports whether every derivation in o is in s.
func (s DeriveSet) Has(o DeriveSet) bool {
	return o != 0 && s&o == o
}

// String lists the derivations, e.g. "Field,Fields".
func (s DeriveSet) String() string {
	var names []string
	if s.Has(DeriveField) {
		names = append(names, DeriveFieldName)
	}

	if s.Has(DeriveFields) {
		names = append(names, DeriveFieldsName)
	}

	return strings.Join(names, ",")
}

// LookupDerive maps a derive name to its set. Matching is exact.
func LookupDerive(name string) (DeriveSet, bool) {
	switch name {
	case DeriveFieldName:
		return DeriveField, true
	case DeriveFieldsName:
		return DeriveFields, true
	default:
		return DeriveNone, false
	}
}

// ParseDeriveNames parses a flag or config value such as "Field,Fields".
func ParseDeriveNames(names []string) (DeriveSet, error) {
	var set DeriveSet

	for _, raw := range names {
		for _, n := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' }) {
			d, ok := LookupDerive(n)
			if !ok {
				return DeriveNone, &UnknownDeriveError{Name: n}
			}

			set |= d
		}
	}

	return set, nil
}

// UnknownDeriveError reports a derive name other than Field or Fields.
type UnknownDeriveError struct {
	Name string
}

func (e *UnknownDeriveError) Error() string {
	return fmt.Sprintf("unknown derive %q; expected %s or %s", e.Name, DeriveFieldName, DeriveFieldsName)
}

// ParseDerive merges every //fieldmap:derive directive among dirs. found is
// false when there is none. Unknown and repeated names are reported and
// left out of the set; the valid names still apply.
func ParseDerive(dirs []Directive) (set DeriveSet, found bool, diags []diagnostic.Diagnostic) {
	seen := map[DeriveSet]diagnostic.Span{}

	for _, d := range Filter(dirs, NameDerive) {
		found = true

		list, err := deriveParser.ParseString("", d.Body)
		if err != nil {
			diags = append(diags, syntaxError(d, err))
			continue
		}

		if len(list.Names) == 0 {
			diags = append(diags, diagnostic.New(diagnostic.CodeMalformed, d.Span,
				"//fieldmap:derive needs at least one of %s, %s", DeriveFieldName, DeriveFieldsName))
			continue
		}

		for _, n := range list.Names {
			span := spanAt(d.BodySpan, n.Pos, n.EndPos)

			ds, ok := LookupDerive(n.Name)
			if !ok {
				diags = append(diags, diagnostic.New(diagnostic.CodeUnknownOption, span,
					"unknown derive %q; expected %s or %s", n.Name, DeriveFieldName, DeriveFieldsName).
					WithHint(match.Hint(n.Name, []string{DeriveFieldName, DeriveFieldsName})))
				continue
			}

			if first, dup := seen[ds]; dup {
				diags = append(diags, diagnostic.New(diagnostic.CodeDuplicate, span,
					"%s derived twice; first requested at %s", n.Name, first))
				continue
			}

			seen[ds] = span
			set |= ds
		}
	}

	return set, found, diags
}
