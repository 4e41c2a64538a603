package gen

import (
	"fmt"
	"go/build"
	"slices"

	"fieldmap/internal/analyze"
	"fieldmap/internal/diagnostic"
	"fieldmap/internal/directive"
	"fieldmap/internal/match"
)

// MsgUnsupportedShape is reported for declarations that are not structs.
const MsgUnsupportedShape = "derivation supports only record types."

// Methods written by each derivation. A member with one of these names would
// collide with the generated method.
var (
	byTypeMethods  = []string{"FieldPtr"}
	byIndexMethods = []string{
		"FieldsLen", "FieldName", "FieldIndex", "Field", "FieldMut",
		"Iter", "IterMut", "Values", "ValuesMut", "FieldNames", "All", "AllMut",
	}
)

// job carries one record through planning, import resolution and
// rendering.
type job struct {
	rec *analyze.Record
	// derive holds the derivations still viable. Failures clear their bit.
	derive directive.DeriveSet
	diags  []diagnostic.Diagnostic

	memberImports []analyze.ImportInfo // Alias holds the qualifier as written
	capability    *directive.Capability
	capPath       string

	data    recordData
	byType  []byte
	byIndex []byte
}

func (j *job) fail(which directive.DeriveSet, d diagnostic.Diagnostic) {
	j.derive &^= which
	j.diags = append(j.diags, d.WithRecord(j.rec.Name, which.String()))
}

func (j *job) failAll(which directive.DeriveSet, diags []diagnostic.Diagnostic) {
	for _, d := range diags {
		j.fail(which, d)
	}
}

// plan parses the record's directives and checks that each requested
// derivation can be emitted.
func (g *Generator) plan(rec *analyze.Record) *job {
	j := &job{rec: rec}

	for _, d := range directive.Unknown(rec.Directives) {
		j.diags = append(j.diags, diagnostic.New(diagnostic.CodeUnknownOption, d.Span,
			"unknown directive //fieldmap:%s", d.Name).AsWarning().WithRecord(rec.Name, "").
			WithHint(match.Hint(d.Name, []string{directive.NameDerive, directive.NameFields})))
	}

	set, found, diags := directive.ParseDerive(rec.Directives)
	for _, d := range diags {
		j.diags = append(j.diags, d.WithRecord(rec.Name, ""))
	}

	if !found {
		if !rec.Selected {
			j.diags = append(j.diags, diagnostic.New(diagnostic.CodeMalformed, rec.Span,
				"no //fieldmap:derive directive; nothing generated for %s", rec.Name).
				AsWarning().WithRecord(rec.Name, ""))

			return j
		}

		set = g.config.DefaultDerive
	}

	if set == directive.DeriveNone {
		return j
	}

	j.derive = set

	if !rec.Struct {
		j.fail(set, diagnostic.New(diagnostic.CodeUnsupportedShape, rec.Span, MsgUnsupportedShape).
			WithSuggestion("declare "+rec.Name+" as a struct type"))

		return j
	}

	if set.Has(directive.DeriveField) {
		j.planByType()
	}

	if set.Has(directive.DeriveFields) {
		j.planByIndex()
	}

	return j
}

func (j *job) planByType() {
	if !j.checkCollisions(directive.DeriveField, byTypeMethods) {
		return
	}

	seen := map[string]bool{}

	for _, m := range j.rec.Members {
		for _, q := range m.Qualifiers {
			if seen[q] {
				continue
			}

			imp, ok := j.rec.LookupImport(q)
			if !ok {
				j.fail(directive.DeriveField, diagnostic.New(diagnostic.CodeUnresolved, m.Span,
					"package %q used by member %s is not imported", q, m.Display))

				return
			}

			seen[q] = true
			j.memberImports = append(j.memberImports, analyze.ImportInfo{Alias: q, Path: imp.Path})
		}
	}
}

func (j *job) planByIndex() {
	if !j.checkCollisions(directive.DeriveFields, byIndexMethods) {
		return
	}

	c, diags := directive.ExtractElementCapability(j.rec.Directives)
	if len(diags) > 0 {
		j.failAll(directive.DeriveFields, diags)
		return
	}

	if c == nil {
		j.fail(directive.DeriveFields, diagnostic.New(diagnostic.CodeMissingFields, j.rec.Span, directive.MsgFieldsRequired).
			WithSuggestion(`add //fieldmap:fields item = "any" above the type`))

		return
	}

	switch {
	case c.ImportPath != "":
		j.capPath = c.ImportPath
	case c.Qualifier != "":
		if imp, ok := j.rec.LookupImport(c.Qualifier); ok {
			j.capPath = imp.Path
			break
		}

		if !isStdPackage(c.Qualifier) {
			j.fail(directive.DeriveFields, diagnostic.New(diagnostic.CodeUnresolved, c.Span,
				"cannot resolve package %q: not imported by %s and not in the standard library",
				c.Qualifier, j.rec.File).
				WithSuggestion("import the package or spell the full path: item = \"import/path." + c.Name + "\""))

			return
		}

		j.capPath = c.Qualifier
	}

	j.capability = c
}

// checkCollisions fails the derivation when a member is named like one of
// its generated methods.
func (j *job) checkCollisions(which directive.DeriveSet, methods []string) bool {
	for _, m := range j.rec.Members {
		if slices.Contains(methods, m.Access) {
			j.fail(which, diagnostic.New(diagnostic.CodeNameCollision, m.Span,
				"member %s collides with generated method %s.%s", m.Access, j.rec.Name, m.Access))

			return false
		}
	}

	return true
}

// isStdPackage reports whether path names a standard library package.
func isStdPackage(path string) bool {
	p, err := build.Default.Import(path, "", build.FindOnly)
	return err == nil && p.Goroot
}

// resolveImports builds the file's import set in declaration order. Member
// imports go first since their names cannot change.
func (g *Generator) resolveImports(jobs []*job) *importSet {
	set := newImportSet()

	for _, j := range jobs {
		if !j.derive.Has(directive.DeriveField) {
			continue
		}

		if err := j.checkImports(set); err != nil {
			j.fail(directive.DeriveField, diagnostic.New(diagnostic.CodeUnresolved, j.rec.Span,
				"%s; rename the import in one of the files", err))

			continue
		}

		for _, imp := range j.memberImports {
			_ = set.fixed(imp.Alias, imp.Path)
		}
	}

	var rt, it string

	for _, j := range jobs {
		byType := j.derive.Has(directive.DeriveField) && len(j.rec.Members) > 0
		byIndex := j.derive.Has(directive.DeriveFields)

		if (byType && !j.rec.IsGeneric()) || byIndex {
			if rt == "" {
				rt = set.flexible(g.config.RuntimePath)
			}
		}

		if byIndex && it == "" {
			it = set.flexible("iter")
		}

		j.data = recordData{
			Name:    j.rec.Name,
			Recv:    j.rec.ReceiverType(),
			Generic: j.rec.IsGeneric(),
			Members: j.rec.Members,
			RT:      rt,
			Iter:    it,
			ByType:  byType,
			ByIndex: byIndex,
		}

		if byIndex {
			j.data.Elem = j.capability.Name
			if j.capPath != "" {
				j.data.elemQual = set.flexible(j.capPath)
				j.data.Elem = j.data.elemQual + "." + j.capability.Name
			}
		}
	}

	return set
}

// checkImports verifies that every member import fits into set.
func (j *job) checkImports(set *importSet) error {
	for _, imp := range j.memberImports {
		if bound, ok := set.conflict(imp.Alias, imp.Path); ok {
			return fmt.Errorf("package name %q refers to both %s and %s", imp.Alias, bound, imp.Path)
		}
	}

	return nil
}
