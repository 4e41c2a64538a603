package diagnostic

import (
	"fmt"
	"go/token"

	"fortio.org/safecast"
)

// Span is a byte range in a source file, with the line and column of Start
// kept for rendering.
type Span struct {
	File   string
	Start  uint32 // inclusive byte offset
	End    uint32 // exclusive byte offset
	Line   int
	Column int
}

// SpanOf converts a go/token range into a Span. A missing end yields an
// empty span at start.
func SpanOf(fset *token.FileSet, start, end token.Pos) Span {
	if fset == nil || !start.IsValid() {
		return Span{}
	}

	p := fset.Position(start)
	sp := Span{
		File:   p.Filename,
		Line:   p.Line,
		Column: p.Column,
		Start:  offset(p.Offset),
	}

	sp.End = sp.Start
	if end.IsValid() && end > start {
		sp.End = offset(fset.Position(end).Offset)
	}

	return sp
}

// offset clamps rather than fails: files above 4GiB are not Go sources.
func offset(off int) uint32 {
	v, err := safecast.Conv[uint32](off)
	if err != nil {
		return 0
	}

	return v
}

// IsZero reports whether the span carries no position.
func (s Span) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Start == 0 && s.End == 0
}

// Len returns the number of bytes covered.
func (s Span) Len() uint32 {
	return s.End - s.Start
}

// Shift returns the span moved forward by n bytes and columns. Used to map
// positions inside a directive body back to the file.
func (s Span) Shift(n int) Span {
	d := offset(n)
	s.Start += d
	s.End += d
	s.Column += n

	return s
}

// Sub returns a span of length n starting col bytes after s.Start on the
// same line.
func (s Span) Sub(col, n int) Span {
	sub := s.Shift(col)
	sub.End = sub.Start + offset(n)

	return sub
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}

	if other.Start < s.Start {
		s.Start = other.Start
		s.Line = other.Line
		s.Column = other.Column
	}

	if other.End > s.End {
		s.End = other.End
	}

	return s
}

// String renders the span as file:line:col, the format go vet and the
// compiler use.
func (s Span) String() string {
	if s.IsZero() {
		return "-"
	}

	if s.File == "" {
		return fmt.Sprintf("%d:%d", s.Line, s.Column)
	}

	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}
