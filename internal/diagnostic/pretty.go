package diagnostic

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// PrettyOpts controls Pretty output.
type PrettyOpts struct {
	// Color enables ANSI colors.
	Color bool
	// Max caps the number of diagnostics printed; 0 means no limit.
	Max int
	// Source returns the content of a file for the context line; may be nil.
	Source func(file string) []byte
}

// Pretty prints diagnostics as
//
//	<file>:<line>:<col>: <severity>[<code>]: <message>
//
// followed by the source line and a caret underline when Source is set.
func Pretty(w io.Writer, d *Diagnostics, opts PrettyOpts) {
	sevColor := map[DiagnosticSeverity]*color.Color{
		DiagnosticError:   color.New(color.FgRed, color.Bold),
		DiagnosticWarning: color.New(color.FgYellow, color.Bold),
		DiagnosticInfo:    color.New(color.FgCyan),
	}
	loc := color.New(color.Bold)
	hint := color.New(color.FgGreen)

	for _, c := range []*color.Color{loc, hint, sevColor[DiagnosticError], sevColor[DiagnosticWarning], sevColor[DiagnosticInfo]} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	all := d.All()
	for i, diag := range all {
		if opts.Max > 0 && i == opts.Max {
			fmt.Fprintf(w, "... and %d more\n", len(all)-i)
			return
		}

		head := diag.Severity.String()
		if diag.Code != "" {
			head += "[" + diag.Code + "]"
		}

		fmt.Fprintf(w, "%s: %s: %s\n", loc.Sprint(diag.Span.String()), sevColor[diag.Severity].Sprint(head), diag.Message)

		if opts.Source != nil && diag.Span.File != "" {
			printContext(w, diag.Span, opts.Source(diag.Span.File), sevColor[diag.Severity])
		}

		for _, s := range diag.Suggestions {
			fmt.Fprintf(w, "  %s %s\n", hint.Sprint("help:"), s)
		}
	}
}

func printContext(w io.Writer, sp Span, src []byte, c *color.Color) {
	if len(src) == 0 || int(sp.Start) > len(src) {
		return
	}

	lineStart := strings.LastIndexByte(string(src[:sp.Start]), '\n') + 1
	lineEnd := len(src)

	if i := strings.IndexByte(string(src[sp.Start:]), '\n'); i >= 0 {
		lineEnd = int(sp.Start) + i
	}

	line := string(src[lineStart:lineEnd])
	width := int(sp.Len())

	if width < 1 {
		width = 1
	}

	if rest := lineEnd - int(sp.Start); width > rest && rest > 0 {
		width = rest
	}

	pad := strings.Map(func(r rune) rune {
		if r == '\t' {
			return '\t'
		}

		return ' '
	}, string(src[lineStart:sp.Start]))

	fmt.Fprintf(w, "  %s\n", strings.ReplaceAll(line, "\n", ""))
	fmt.Fprintf(w, "  %s%s\n", pad, c.Sprint("^"+strings.Repeat("~", width-1)))
}
