package annotations

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// DeclarationParser parses "axon::" declaration lines using alecthomas/participle
type DeclarationParser struct {
	parser *participle.Parser[Declaration]
}

// ParsedDeclaration is a declaration together with where it came from
type ParsedDeclaration struct {
	*Declaration
	Raw      string
	Location SourceLocation
}

// NewDeclarationParser creates a new parser
func NewDeclarationParser() *DeclarationParser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//`},
		{Name: "Separator", Pattern: `::`},
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Path", Pattern: `/[^\s]*`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.\-]*`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[Declaration](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)

	return &DeclarationParser{parser: parser}
}

var defaultParser = NewDeclarationParser()

// Parse parses a single declaration with the shared parser
func Parse(line string) (*ParsedDeclaration, error) {
	return defaultParser.Parse(line, SourceLocation{Line: 1, Column: 1})
}

// Parse parses one declaration line. location is reported in errors and
// copied into the result.
func (p *DeclarationParser) Parse(line string, location SourceLocation) (*ParsedDeclaration, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, &SyntaxError{Raw: line, Loc: location, Message: "empty declaration"}
	}

	decl, err := p.parser.ParseString(location.File, trimmed)
	if err != nil {
		loc := location
		if perr, ok := err.(participle.Error); ok {
			loc.Column = location.Column + perr.Position().Column - 1
		}
		return nil, &SyntaxError{Raw: line, Loc: loc, Message: "invalid declaration", Cause: err}
	}

	if decl.Param != nil && len(decl.Param.Args) > 2 {
		return nil, &SyntaxError{
			Raw:     line,
			Loc:     location,
			Message: fmt.Sprintf("param takes at most a name and a type, got %d values", len(decl.Param.Args)),
		}
	}

	return &ParsedDeclaration{Declaration: decl, Raw: line, Location: location}, nil
}

// ParseAll parses every line and reports all syntax errors together
func (p *DeclarationParser) ParseAll(lines []string, location SourceLocation) ([]*ParsedDeclaration, error) {
	var result []*ParsedDeclaration
	var errs SyntaxErrors
	for i, line := range lines {
		loc := location
		loc.Line += i
		parsed, err := p.Parse(line, loc)
		if err != nil {
			if se, ok := err.(*SyntaxError); ok {
				errs = append(errs, se)
				continue
			}
			return nil, err
		}
		result = append(result, parsed)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return result, nil
}

// IsDeclaration reports whether text looks like an axon declaration, with or
// without a leading comment marker
func IsDeclaration(text string) bool {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "//")
	return strings.HasPrefix(strings.TrimSpace(text), "axon::")
}
