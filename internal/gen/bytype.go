package gen

import "text/template"

// byTypeTemplate renders by-type access: one type switch arm per member.
// Two members of the same type make the switch a compile error, which is
// the intended outcome.
var byTypeTemplate = template.Must(template.New("bytype").Parse(`
// FieldPtr points {{.Target}} at the member of {{.Name}} whose type is T when
// {{.Target}} is a **T. It reports false when no member has that type.
func ({{.Var}} *{{.Recv}}) FieldPtr({{.Target}} any) bool {
	switch p := {{.Target}}.(type) {
{{- range .Members}}
	case **{{.Type}}:
		*p = &{{$.Var}}.{{.Access}}
{{- end}}
	default:
		return false
	}

	return true
}
{{- if not .Generic}}

var _ {{.RT}}.Typed = (*{{.Name}})(nil)
{{- end}}
`))
