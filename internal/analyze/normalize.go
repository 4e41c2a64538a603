package analyze

import (
	"go/ast"
	"go/token"
	"strconv"

	"fieldmap/internal/diagnostic"
)

// Normalize classifies a struct type and lists its members in declaration
// order. Blank fields are not addressable and are skipped without taking an
// index.
func Normalize(fset *token.FileSet, st *ast.StructType) (ShapeKind, []Member) {
	if st.Fields == nil || len(st.Fields.List) == 0 {
		return ShapeUnit, nil
	}

	if isPositional(st) {
		return ShapePositional, positionalMembers(fset, st)
	}

	return ShapeNamed, namedMembers(fset, st)
}

func isPositional(st *ast.StructType) bool {
	for _, f := range st.Fields.List {
		if len(f.Names) > 0 {
			return false
		}
	}

	return true
}

func positionalMembers(fset *token.FileSet, st *ast.StructType) []Member {
	members := make([]Member, 0, len(st.Fields.List))

	for _, f := range st.Fields.List {
		i := len(members)
		members = append(members, Member{
			Key:        MemberKey{Index: i, Positional: true},
			Display:    strconv.Itoa(i),
			Type:       TypeString(f.Type),
			Position:   i,
			Access:     EmbeddedName(f.Type),
			Embedded:   true,
			Qualifiers: Qualifiers(f.Type),
			Idents:     Idents(f.Type),
			Span:       diagnostic.SpanOf(fset, f.Type.Pos(), f.Type.End()),
		})
	}

	return members
}

func namedMembers(fset *token.FileSet, st *ast.StructType) []Member {
	var members []Member

	for _, f := range st.Fields.List {
		typ := TypeString(f.Type)
		quals := Qualifiers(f.Type)
		idents := Idents(f.Type)

		if len(f.Names) == 0 {
			name := EmbeddedName(f.Type)
			members = append(members, Member{
				Key:        MemberKey{Name: name, Index: len(members)},
				Display:    StripKeywordEscape(name),
				Type:       typ,
				Position:   len(members),
				Access:     name,
				Embedded:   true,
				Qualifiers: quals,
				Idents:     idents,
				Span:       diagnostic.SpanOf(fset, f.Type.Pos(), f.Type.End()),
			})

			continue
		}

		for _, id := range f.Names {
			if id.Name == "_" {
				continue
			}

			members = append(members, Member{
				Key:        MemberKey{Name: id.Name, Index: len(members)},
				Display:    StripKeywordEscape(id.Name),
				Type:       typ,
				Position:   len(members),
				Access:     id.Name,
				Qualifiers: quals,
				Idents:     idents,
				Span:       diagnostic.SpanOf(fset, id.Pos(), id.End()),
			})
		}
	}

	return members
}
