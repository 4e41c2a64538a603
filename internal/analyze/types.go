package analyze

import (
	"go/token"
	"strconv"
	"strings"

	"fieldmap/internal/common"
	"fieldmap/internal/diagnostic"
	"fieldmap/internal/directive"
)

//go:generate go tool stringer -type=ShapeKind -trimprefix=Shape

// ShapeKind is how a record declares its members.
type ShapeKind int

const (
	ShapeUnit       ShapeKind = iota // struct{}
	ShapeNamed                       // members have written names
	ShapePositional                  // every member is embedded: struct{ uint8; uint16 }
)

// MarshalYAML renders the shape by name.
func (k ShapeKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Package is a loaded package and the records found in it.
type Package struct {
	Name    string // package clause name
	Path    string // import path, empty for ParseSource
	Dir     string
	Fset    *token.FileSet
	Records []*Record
}

// Record is one type declaration the engine was asked to derive for.
type Record struct {
	Name       string      `yaml:"name"`
	File       string      `yaml:"file"`
	TypeParams []TypeParam `yaml:"type_params,omitempty"`
	Shape      ShapeKind   `yaml:"shape"`
	// Struct is false for declarations the engine rejects, e.g. type Color int.
	Struct bool `yaml:"struct"`
	// Alias is set for type A = B.
	Alias   bool     `yaml:"alias,omitempty"`
	Members []Member `yaml:"members"`
	// Selected is set when the record was named by --type rather than found
	// through a directive.
	Selected bool `yaml:"selected,omitempty"`

	Directives []directive.Directive `yaml:"-"`
	Imports    []ImportInfo          `yaml:"-"`
	// Span covers the type name; DeclSpan covers the whole type spec.
	Span     diagnostic.Span `yaml:"-"`
	DeclSpan diagnostic.Span `yaml:"-"`
}

// IsGeneric reports whether the record has type parameters.
func (r *Record) IsGeneric() bool {
	return len(r.TypeParams) > 0
}

// ReceiverType renders the record type as used in a method receiver, e.g.
// G[T] for a generic record.
func (r *Record) ReceiverType() string {
	if !r.IsGeneric() {
		return r.Name
	}

	names := make([]string, len(r.TypeParams))
	for i, tp := range r.TypeParams {
		names[i] = tp.ReceiverName(i)
	}

	return r.Name + "[" + strings.Join(names, ", ") + "]"
}

// TypeParam is one type parameter with its constraint text.
type TypeParam struct {
	Name       string `yaml:"name"`
	Constraint string `yaml:"constraint"`
}

// ReceiverName is the name used for the parameter in generated receivers.
// A blank parameter gets a name so the type can be spelled inside the
// method body.
func (tp TypeParam) ReceiverName(i int) string {
	if tp.Name == "_" {
		return "_T" + strconv.Itoa(i)
	}

	return tp.Name
}

// MemberKey identifies a member: by name for Named records, by position for
// Positional records.
type MemberKey struct {
	Name       string `yaml:"name,omitempty"`
	Index      int    `yaml:"index"`
	Positional bool   `yaml:"positional,omitempty"`
}

// String renders the key as exposed to users: the name, or the decimal
// position.
func (k MemberKey) String() string {
	if k.Positional {
		return strconv.Itoa(k.Index)
	}

	return k.Name
}

// Member is one addressable field of a record.
type Member struct {
	Key MemberKey `yaml:"key"`
	// Display is the name returned by FieldName. The keyword escape is
	// removed: type_ displays as "type".
	Display string `yaml:"display"`
	// Type is the type expression as written.
	Type string `yaml:"type"`
	// Position is the zero-based member index.
	Position int `yaml:"position"`
	// Access is the Go selector used to reach the field.
	Access   string `yaml:"access"`
	Embedded bool   `yaml:"embedded,omitempty"`
	// Qualifiers are the package names referenced by Type.
	Qualifiers []string `yaml:"qualifiers,omitempty"`
	// Idents are the bare identifiers referenced by Type.
	Idents []string `yaml:"-"`

	Span diagnostic.Span `yaml:"-"`
}

// ImportInfo is one import of the record's file.
type ImportInfo struct {
	// Alias is the name written before the path, if any.
	Alias string
	Path  string
	// PkgName is the package clause name when the loader knew it, otherwise
	// a guess from the path.
	PkgName string
}

// LocalName is the name the import is referred to by in the file. Blank and
// dot imports have none.
func (i ImportInfo) LocalName() string {
	switch i.Alias {
	case "_", ".":
		return ""
	case "":
		if i.PkgName != "" {
			return i.PkgName
		}

		return common.PkgAlias(i.Path)
	default:
		return i.Alias
	}
}

// LookupImport finds the import a qualifier refers to.
func (r *Record) LookupImport(qualifier string) (ImportInfo, bool) {
	for _, imp := range r.Imports {
		if imp.LocalName() == qualifier {
			return imp, true
		}
	}

	return ImportInfo{}, false
}
