package annotations

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// DeclarationKind represents the kind of a declaration line
type DeclarationKind int

const (
	UnknownDeclaration DeclarationKind = iota
	RouteDeclarationKind
	ParamDeclarationKind
	FieldDeclarationKind
)

// String returns the string representation of the declaration kind
func (k DeclarationKind) String() string {
	switch k {
	case RouteDeclarationKind:
		return "route"
	case ParamDeclarationKind:
		return "param"
	case FieldDeclarationKind:
		return "field"
	default:
		return "unknown"
	}
}

// SourceLocation represents the location of a declaration in source code
type SourceLocation struct {
	File   string // File path
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// String returns a formatted string representation of the location
func (s SourceLocation) String() string {
	if s.File == "" {
		return fmt.Sprintf("%d:%d", s.Line, s.Column)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// Declaration is the root of one "axon::" line
type Declaration struct {
	Comment   bool              `parser:"@Comment?"`
	Namespace string            `parser:"@'axon' Separator"`
	Route     *RouteDeclaration `parser:"( 'route' @@"`
	Param     *ParamDeclaration `parser:"| 'param' @@"`
	Field     *FieldDeclaration `parser:"| 'field' @@ )"`

	Pos lexer.Position
}

// Kind returns which branch of the declaration is set
func (d *Declaration) Kind() DeclarationKind {
	switch {
	case d.Route != nil:
		return RouteDeclarationKind
	case d.Param != nil:
		return ParamDeclarationKind
	case d.Field != nil:
		return FieldDeclarationKind
	}
	return UnknownDeclaration
}

// RouteDeclaration binds the annotated method to a verb and path:
//
//	axon::route GET /users/:id
type RouteDeclaration struct {
	Verb string `parser:"@Ident"`
	Path string `parser:"@Path"`
}

// ParamDeclaration binds a method parameter to a request value:
//
//	axon::param 0 route id int
//	axon::param 1 body CreateUser
//
// Args holds the optional source name followed by the type name.
type ParamDeclaration struct {
	Index  int      `parser:"@Int"`
	Source string   `parser:"@Ident"`
	Args   []string `parser:"@(Ident | String)+"`
}

// Name returns the source name, or "" when only a type was given
func (p *ParamDeclaration) Name() string {
	if len(p.Args) < 2 {
		return ""
	}
	return p.Args[0]
}

// TypeName returns the declared type name
func (p *ParamDeclaration) TypeName() string {
	if len(p.Args) == 0 {
		return ""
	}
	return p.Args[len(p.Args)-1]
}

// FieldDeclaration maps an external body field onto a struct property:
//
//	axon::field user_name Name string
type FieldDeclaration struct {
	External string `parser:"@(Ident | String)"`
	Property string `parser:"@Ident"`
	Type     string `parser:"@Ident"`
}
