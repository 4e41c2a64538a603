package gen

import "text/template"

// byIndexTemplate renders by-index access. Every lookup is a dense switch in
// declaration order; the iterator methods delegate to the runtime.
var byIndexTemplate = template.Must(template.New("byindex").Parse(`
// FieldsLen returns the number of members of {{.Name}}.
func ({{.Recv}}) FieldsLen() int {
	return {{len .Members}}
}

// FieldName returns the name of member i.
func ({{.Recv}}) FieldName(i int) (string, bool) {
	switch i {
{{- range .Members}}
	case {{.Position}}:
		return {{printf "%q" .Display}}, true
{{- end}}
	default:
		return "", false
	}
}

// FieldIndex returns the position of the member called name.
func ({{.Recv}}) FieldIndex(name string) (int, bool) {
	switch name {
{{- range .Members}}
	case {{printf "%q" .Display}}:
		return {{.Position}}, true
{{- end}}
	default:
		return -1, false
	}
}

// Field returns member i as {{.Elem}}.
func ({{.Var}} *{{.Recv}}) Field(i int) ({{.Elem}}, bool) {
	switch i {
{{- range .Members}}
	case {{.Position}}:
		return {{$.Var}}.{{.Access}}, true
{{- end}}
	default:
		return nil, false
	}
}

// FieldMut returns a pointer to member i as {{.Elem}}.
func ({{.Var}} *{{.Recv}}) FieldMut(i int) ({{.Elem}}, bool) {
	switch i {
{{- range .Members}}
	case {{.Position}}:
		return &{{$.Var}}.{{.Access}}, true
{{- end}}
	default:
		return nil, false
	}
}

// Iter returns an iterator over the members of {{.Var}}.
func ({{.Var}} *{{.Recv}}) Iter() *{{.RT}}.EntriesRef[{{.Elem}}] {
	return {{.RT}}.Iter[{{.Elem}}]({{.Var}})
}

// IterMut returns an iterator over pointers to the members of {{.Var}}.
func ({{.Var}} *{{.Recv}}) IterMut() *{{.RT}}.EntriesMut[{{.Elem}}] {
	return {{.RT}}.IterMut[{{.Elem}}]({{.Var}})
}

// Values returns an iterator over the member values of {{.Var}}.
func ({{.Var}} *{{.Recv}}) Values() *{{.RT}}.ValuesRef[{{.Elem}}] {
	return {{.RT}}.Values[{{.Elem}}]({{.Var}})
}

// ValuesMut returns an iterator over pointers to the member values of {{.Var}}.
func ({{.Var}} *{{.Recv}}) ValuesMut() *{{.RT}}.ValuesMut[{{.Elem}}] {
	return {{.RT}}.ValuesMutOf[{{.Elem}}]({{.Var}})
}

// FieldNames returns an iterator over the member names of {{.Name}}.
func ({{.Recv}}) FieldNames() *{{.RT}}.NameIter[{{.Recv}}] {
	return {{.RT}}.Names[{{.Recv}}]()
}

// All ranges over the members of {{.Var}} by name.
func ({{.Var}} *{{.Recv}}) All() {{.Iter}}.Seq2[string, {{.Elem}}] {
	return {{.RT}}.Iter[{{.Elem}}]({{.Var}}).All()
}

// AllMut ranges over pointers to the members of {{.Var}} by name.
func ({{.Var}} *{{.Recv}}) AllMut() {{.Iter}}.Seq2[string, {{.Elem}}] {
	return {{.RT}}.IterMut[{{.Elem}}]({{.Var}}).All()
}
{{- if not .Generic}}

var _ {{.RT}}.Fields[{{.Elem}}] = (*{{.Name}})(nil)
{{- end}}
`))
