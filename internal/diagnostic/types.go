package diagnostic

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"fieldmap/internal/common"
)

// Diagnostic codes.
const (
	CodeUnsupportedShape = "FM001"
	CodeMissingFields    = "FM002"
	CodeMalformed        = "FM003"
	CodeDuplicate        = "FM004"
	CodeUnknownOption    = "FM005"
	CodeUnresolved       = "FM006"
	CodeNameCollision    = "FM007"
)

// Diagnostics holds all diagnostic information from one generator run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Span points at the offending source.
	Span Span
	// Record names the type declaration this relates to (if any).
	Record string
	// Derive names the derivation that failed (if any): "Field" or "Fields".
	Derive string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// New builds an error diagnostic.
func New(code string, span Span, format string, args ...any) Diagnostic {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	return Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  msg,
		Span:     span,
	}
}

// WithRecord returns a copy of d attributed to the named record and derivation.
func (d Diagnostic) WithRecord(record, derive string) Diagnostic {
	if d.Record == "" {
		d.Record = record
	}

	if d.Derive == "" {
		d.Derive = derive
	}

	return d
}

// AsWarning returns a copy of d downgraded to a warning.
func (d Diagnostic) AsWarning() Diagnostic {
	d.Severity = DiagnosticWarning
	return d
}

// WithSuggestion returns a copy of d with s appended to its suggestions.
func (d Diagnostic) WithSuggestion(s string) Diagnostic {
	d.Suggestions = append(slices.Clone(d.Suggestions), s)
	return d
}

// WithHint appends hint as a suggestion unless it is empty.
func (d Diagnostic) WithHint(hint string) Diagnostic {
	if hint == "" {
		return d
	}

	return d.WithSuggestion(hint)
}

// Add files d under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code string, span Span, message string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Span:     span,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code string, span Span, message string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Span:     span,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code string, span Span, message string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Span:     span,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Len returns the total number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// All returns every diagnostic ordered by file and offset, errors first on
// ties.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, d.Len())
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)
	all = append(all, d.Infos...)

	slices.SortStableFunc(all, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Span.File, b.Span.File),
			cmp.Compare(a.Span.Start, b.Span.Start),
			cmp.Compare(b.Severity, a.Severity),
		)
	})

	return all
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if !d.Span.IsZero() {
		prefix = append(prefix, d.Span.String()+":")
	}

	if d.Record != "" {
		label := d.Record
		if d.Derive != "" {
			label += "/" + d.Derive
		}

		prefix = append(prefix, "["+label+"]")
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + " " + msg
	}

	return msg
}
