package directive

import (
	"errors"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"fieldmap/internal/diagnostic"
)

// --- Participle grammar structs ---

// optionList parses: key = value [, key = value]* [,]
type optionList struct {
	Options []*option `parser:"( @@ ( ',' @@? )* )?"`
}

// option parses: key = value
type option struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Key   string `parser:"@Ident"`
	Value *value `parser:"'=' @@"`
}

// value is a string literal, a dotted path, or anything else (kept so the
// caller can reject it with a precise message).
type value struct {
	Pos    lexer.Position
	EndPos lexer.Position

	String *string  `parser:"  @String"`
	Path   []string `parser:"| @Ident ( '.' @Ident )*"`
	Other  *string  `parser:"| @( Number | Punct )"`
}

// deriveList parses: Name [[,] Name]* [,]
type deriveList struct {
	Names []*deriveName `parser:"( @@ ( ',' @@? | @@ )* )?"`
}

type deriveName struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Name string `parser:"@Ident"`
}

// typePath parses the content of a string-form item: Ident [. Ident]*
type typePath struct {
	Segments []string `parser:"@Ident ( '.' @Ident )*"`
}

var directiveLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "String", Pattern: "\"(?:[^\"\\\\]|\\\\.)*\"|`[^`]*`"},
	{Name: "Number", Pattern: `[0-9][0-9a-zA-Z_.]*`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
	{Name: "Punct", Pattern: `[-+*/%&|^<>=!.,;:(){}\[\]~?@#$'\\]`},
})

var (
	optionParser = participle.MustBuild[optionList](
		participle.Lexer(directiveLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
	deriveParser = participle.MustBuild[deriveList](
		participle.Lexer(directiveLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
	pathParser = participle.MustBuild[typePath](
		participle.Lexer(directiveLexer),
		participle.Elide("Whitespace"),
	)
)

// spanAt maps a parser position inside a directive body onto the file.
func spanAt(body diagnostic.Span, start, end lexer.Position) diagnostic.Span {
	n := end.Offset - start.Offset
	if n < 0 {
		n = 0
	}

	return body.Sub(start.Offset, n)
}

// syntaxError converts a participle error into a malformed-directive
// diagnostic anchored at the failing token.
func syntaxError(d Directive, err error) diagnostic.Diagnostic {
	span := d.BodySpan
	msg := err.Error()

	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		span = d.BodySpan.Sub(pos.Offset, 1)
		msg = perr.Message()
	}

	return diagnostic.New(diagnostic.CodeMalformed, span,
		"malformed //fieldmap:%s directive: %s", d.Name, msg)
}
