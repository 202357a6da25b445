package axon

import (
	"reflect"
	"strings"
)

// Verb is an HTTP method a handler can be bound to
type Verb string

const (
	GET    Verb = "GET"
	POST   Verb = "POST"
	PUT    Verb = "PUT"
	PATCH  Verb = "PATCH"
	DELETE Verb = "DELETE"
)

// ParseVerb converts a case-insensitive method name to a Verb
func ParseVerb(s string) (Verb, bool) {
	v := Verb(strings.ToUpper(strings.TrimSpace(s)))
	return v, v.Valid()
}

// Valid reports whether v is one of the supported verbs
func (v Verb) Valid() bool {
	switch v {
	case GET, POST, PUT, PATCH, DELETE:
		return true
	}
	return false
}

// SourceKind is where a bound value is read from
type SourceKind int

const (
	SourceRoute SourceKind = iota
	SourceQuery
	SourceHeader
	SourceBody
)

// String returns the string representation of the source kind
func (s SourceKind) String() string {
	switch s {
	case SourceRoute:
		return "route"
	case SourceQuery:
		return "query"
	case SourceHeader:
		return "header"
	case SourceBody:
		return "body"
	default:
		return "unknown"
	}
}

// ParseSourceKind converts a source name to a SourceKind
func ParseSourceKind(s string) (SourceKind, bool) {
	switch strings.ToLower(s) {
	case "route", "path":
		return SourceRoute, true
	case "query":
		return SourceQuery, true
	case "header":
		return SourceHeader, true
	case "body":
		return SourceBody, true
	}
	return 0, false
}

// TypeName is the registry key a parameter's declared type resolves through
type TypeName string

// ControllerDescriptor records one registration of a controller type
type ControllerDescriptor struct {
	BasePath string
	Router   *Router
}

// HandlerDescriptor binds a handler method to one (verb, path) pair
type HandlerDescriptor struct {
	Verb Verb
	Path AxonPath
}

// ParameterBinding declares where the handler argument at Index comes from
// and which registered type it is converted to. An empty Name is only
// meaningful for SourceBody, where it selects the whole body.
type ParameterBinding struct {
	Index  int
	Source SourceKind
	Name   string
	Type   TypeName
}

// FormField maps an external body field onto a struct property
type FormField struct {
	External string
	Property string
	Type     TypeName
}

// TypeOf returns the key under which declarations for T are stored.
// Pointer types are normalised to their element type.
func TypeOf[T any]() reflect.Type {
	return keyType(reflect.TypeOf((*T)(nil)).Elem())
}

func keyType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
