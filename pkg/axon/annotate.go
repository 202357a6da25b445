package axon

import (
	"errors"
	"reflect"
	"runtime"

	"github.com/toyz/axonbind/internal/annotations"
)

// Annotator records declarations for the struct type T. Declarations are
// plain appends to the store; nothing is validated until the controller is
// registered.
//
//	var _ = axon.Annotate[UserController]().
//		Method("Get").Get("/:id").RouteParam(0, "id", "int")
type Annotator[T any] struct {
	store *Store
	owner reflect.Type
}

// Annotate starts declarations for T on store, or on DefaultStore when no
// store is given
func Annotate[T any](store ...*Store) *Annotator[T] {
	s := DefaultStore
	if len(store) > 0 && store[0] != nil {
		s = store[0]
	}
	return &Annotator[T]{store: s, owner: TypeOf[T]()}
}

// Method selects the handler method declarations are attached to
func (a *Annotator[T]) Method(name string) *MethodAnnotator[T] {
	return &MethodAnnotator[T]{Annotator: a, method: name}
}

// Field maps the body field external onto the struct property; an empty
// external name uses the property name
func (a *Annotator[T]) Field(external, property string, typ TypeName) *Annotator[T] {
	if external == "" {
		external = property
	}
	a.store.AddField(a.owner, FormField{External: external, Property: property, Type: typ})
	return a
}

// Declare applies "axon::field" declaration lines. Route and param lines
// need a method; use Method(name).Declare for those.
func (a *Annotator[T]) Declare(lines ...string) error {
	return a.declare("", lines, 2)
}

// MustDeclare is Declare that panics on error
func (a *Annotator[T]) MustDeclare(lines ...string) *Annotator[T] {
	if err := a.declare("", lines, 2); err != nil {
		panic(err)
	}
	return a
}

// MethodAnnotator records handler and parameter declarations for one method
type MethodAnnotator[T any] struct {
	*Annotator[T]
	method string
}

// Handle binds the method to verb and path
func (m *MethodAnnotator[T]) Handle(verb Verb, path string) *MethodAnnotator[T] {
	m.store.AddHandler(m.owner, m.method, HandlerDescriptor{Verb: verb, Path: AxonPath(path)})
	return m
}

func (m *MethodAnnotator[T]) Get(path string) *MethodAnnotator[T]    { return m.Handle(GET, path) }
func (m *MethodAnnotator[T]) Post(path string) *MethodAnnotator[T]   { return m.Handle(POST, path) }
func (m *MethodAnnotator[T]) Put(path string) *MethodAnnotator[T]    { return m.Handle(PUT, path) }
func (m *MethodAnnotator[T]) Patch(path string) *MethodAnnotator[T]  { return m.Handle(PATCH, path) }
func (m *MethodAnnotator[T]) Delete(path string) *MethodAnnotator[T] { return m.Handle(DELETE, path) }

// Param binds the argument at index to a request value
func (m *MethodAnnotator[T]) Param(index int, source SourceKind, name string, typ TypeName) *MethodAnnotator[T] {
	m.store.AddParameter(m.owner, m.method, ParameterBinding{Index: index, Source: source, Name: name, Type: typ})
	return m
}

// RouteParam binds the argument at index to a path parameter
func (m *MethodAnnotator[T]) RouteParam(index int, name string, typ TypeName) *MethodAnnotator[T] {
	return m.Param(index, SourceRoute, name, typ)
}

// QueryParam binds the argument at index to a single-valued query parameter
func (m *MethodAnnotator[T]) QueryParam(index int, name string, typ TypeName) *MethodAnnotator[T] {
	return m.Param(index, SourceQuery, name, typ)
}

// HeaderParam binds the argument at index to a request header
func (m *MethodAnnotator[T]) HeaderParam(index int, name string, typ TypeName) *MethodAnnotator[T] {
	return m.Param(index, SourceHeader, name, typ)
}

// BodyParam binds the argument at index to a body field, or to the whole
// body when name is empty
func (m *MethodAnnotator[T]) BodyParam(index int, name string, typ TypeName) *MethodAnnotator[T] {
	return m.Param(index, SourceBody, name, typ)
}

// Body binds the argument at index to the whole body
func (m *MethodAnnotator[T]) Body(index int, typ TypeName) *MethodAnnotator[T] {
	return m.Param(index, SourceBody, "", typ)
}

// Declare applies declaration lines to the method:
//
//	axon::route GET /:id
//	axon::param 0 route id int
//	axon::param 1 body CreateUser
//
// Either every line is applied or, on any syntax error, none is.
func (m *MethodAnnotator[T]) Declare(lines ...string) error {
	return m.declare(m.method, lines, 2)
}

// MustDeclare is Declare that panics on error
func (m *MethodAnnotator[T]) MustDeclare(lines ...string) *MethodAnnotator[T] {
	if err := m.declare(m.method, lines, 2); err != nil {
		panic(err)
	}
	return m
}

var declarationParser = annotations.NewDeclarationParser()

// declare parses every line, then applies them. skip locates the caller so
// syntax errors point at the Declare call.
func (a *Annotator[T]) declare(method string, lines []string, skip int) error {
	location := annotations.SourceLocation{Line: 1, Column: 1}
	if _, file, line, ok := runtime.Caller(skip); ok {
		location = annotations.SourceLocation{File: file, Line: line, Column: 1}
	}

	decls, err := declarationParser.ParseAll(lines, location)
	if err != nil {
		return newConfigError(InvalidDeclarationCode, "invalid declarations for %s", a.owner).
			WithCause(err).
			WithHint("declarations look like 'axon::route GET /path', 'axon::param 0 route id int' or 'axon::field name Name string'")
	}

	type apply func()
	var actions []apply
	var errs []error
	for _, decl := range decls {
		switch decl.Kind() {
		case annotations.RouteDeclarationKind:
			verb, ok := ParseVerb(decl.Route.Verb)
			if !ok {
				errs = append(errs, declarationError(decl, "unsupported verb '%s'", decl.Route.Verb))
				continue
			}
			if method == "" {
				errs = append(errs, declarationError(decl, "route declarations need a method"))
				continue
			}
			path := AxonPath(decl.Route.Path)
			actions = append(actions, func() {
				a.store.AddHandler(a.owner, method, HandlerDescriptor{Verb: verb, Path: path})
			})
		case annotations.ParamDeclarationKind:
			source, ok := ParseSourceKind(decl.Param.Source)
			if !ok {
				errs = append(errs, declarationError(decl, "unknown source '%s'", decl.Param.Source))
				continue
			}
			if method == "" {
				errs = append(errs, declarationError(decl, "param declarations need a method"))
				continue
			}
			binding := ParameterBinding{
				Index:  decl.Param.Index,
				Source: source,
				Name:   decl.Param.Name(),
				Type:   TypeName(decl.Param.TypeName()),
			}
			actions = append(actions, func() {
				a.store.AddParameter(a.owner, method, binding)
			})
		case annotations.FieldDeclarationKind:
			field := decl.Field
			actions = append(actions, func() {
				a.Field(field.External, field.Property, TypeName(field.Type))
			})
		}
	}
	if len(errs) > 0 {
		return newConfigError(InvalidDeclarationCode, "invalid declarations for %s", a.owner).
			WithCause(errors.Join(errs...))
	}

	for _, act := range actions {
		act()
	}
	return nil
}

func declarationError(decl *annotations.ParsedDeclaration, format string, args ...interface{}) error {
	return newConfigError(InvalidDeclarationCode, format, args...).
		WithContext("declaration", decl.Raw).
		WithContext("location", decl.Location.String())
}
