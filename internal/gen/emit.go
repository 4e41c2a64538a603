package gen

import (
	"bytes"
	"fmt"

	"fieldmap/internal/analyze"
)

// recordData holds all data needed by the by-type and by-index templates.
type recordData struct {
	Name    string // type name
	Recv    string // receiver type: Name or Name[T, ...]
	Var     string // receiver variable
	Target  string // FieldPtr parameter
	Generic bool
	Members []analyze.Member

	// Package names as imported by the generated file.
	RT   string
	Iter string

	// Elem is the item type expression.
	Elem     string
	elemQual string

	ByType  bool
	ByIndex bool
}

// render executes the templates of every viable derivation of the job.
func (j *job) render() error {
	d := &j.data
	avoid := j.reservedNames()
	d.Var = freshName(avoid, "r", "rec", "self")
	d.Target = freshName(avoid, "target", "dst", "ptr")

	if d.ByType {
		var buf bytes.Buffer
		if err := byTypeTemplate.Execute(&buf, d); err != nil {
			return fmt.Errorf("executing by-type template for %s: %w", d.Name, err)
		}

		j.byType = buf.Bytes()
	}

	if d.ByIndex {
		var buf bytes.Buffer
		if err := byIndexTemplate.Execute(&buf, d); err != nil {
			return fmt.Errorf("executing by-index template for %s: %w", d.Name, err)
		}

		j.byIndex = buf.Bytes()
	}

	return nil
}

// reservedNames lists identifiers a method body may refer to, which local
// variables must not shadow.
func (j *job) reservedNames() map[string]bool {
	avoid := map[string]bool{}

	for _, m := range j.rec.Members {
		for _, q := range m.Qualifiers {
			avoid[q] = true
		}

		for _, id := range m.Idents {
			avoid[id] = true
		}
	}

	for i, tp := range j.rec.TypeParams {
		avoid[tp.ReceiverName(i)] = true
	}

	for _, n := range []string{j.data.RT, j.data.Iter, j.data.elemQual} {
		if n != "" {
			avoid[n] = true
		}
	}

	return avoid
}

// freshName returns the first candidate not in avoid.
func freshName(avoid map[string]bool, candidates ...string) string {
	for _, c := range candidates {
		if !avoid[c] {
			return c
		}
	}

	name := candidates[0]
	for avoid[name] {
		name += "_"
	}

	return name
}
