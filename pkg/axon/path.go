package axon

import (
	"strconv"
	"strings"
)

// AxonPathPartType represents the type of path part
type AxonPathPartType int

const (
	StaticPart AxonPathPartType = iota
	ParameterPart
	WildcardPart
)

// AxonPathPart represents a single part of an Axon path
type AxonPathPart struct {
	Type      AxonPathPartType
	Value     string // For static parts: the literal text, for parameters: the parameter name
	ParamType string // For parameters: the type (e.g., "int", "string"), empty for untyped
}

// AxonPath is a route path. Parameters may be written as ":id", "{id}" or
// "{id:int}"; "*" and "{*}" are wildcards.
type AxonPath string

// Raw returns the original path
func (p AxonPath) Raw() string {
	return string(p)
}

// Parts parses the path and returns the individual parts
func (p AxonPath) Parts() []AxonPathPart {
	path := string(p)
	var parts []AxonPathPart

	i := 0
	for i < len(path) {
		switch {
		case path[i] == '{':
			j := i + 1
			for j < len(path) && path[j] != '}' {
				j++
			}
			if j >= len(path) {
				// Malformed, treat as static
				parts = append(parts, AxonPathPart{Type: StaticPart, Value: path[i:]})
				i = len(path)
				continue
			}
			paramContent := path[i+1 : j]
			if paramContent == "*" {
				parts = append(parts, AxonPathPart{Type: WildcardPart, Value: "*"})
			} else {
				paramName := paramContent
				paramType := ""
				if colonIndex := strings.Index(paramContent, ":"); colonIndex != -1 {
					paramName = paramContent[:colonIndex]
					paramType = paramContent[colonIndex+1:]
				}
				parts = append(parts, AxonPathPart{
					Type:      ParameterPart,
					Value:     paramName,
					ParamType: paramType,
				})
			}
			i = j + 1
		case path[i] == ':' && (i == 0 || path[i-1] == '/'):
			j := i + 1
			for j < len(path) && path[j] != '/' {
				j++
			}
			parts = append(parts, AxonPathPart{Type: ParameterPart, Value: path[i+1 : j]})
			i = j
		case path[i] == '*' && (i == 0 || path[i-1] == '/'):
			parts = append(parts, AxonPathPart{Type: WildcardPart, Value: "*"})
			i++
		default:
			// Static part - collect consecutive static characters
			start := i
			for i < len(path) && path[i] != '{' && !(path[i] == ':' && path[i-1] == '/') && !(path[i] == '*' && path[i-1] == '/') {
				i++
			}
			parts = append(parts, AxonPathPart{
				Type:  StaticPart,
				Value: path[start:i],
			})
		}
	}

	return parts
}

// Params returns the parameter names in order of appearance
func (p AxonPath) Params() []string {
	var names []string
	for _, part := range p.Parts() {
		if part.Type == ParameterPart {
			names = append(names, part.Value)
		}
	}
	return names
}

// HasParam reports whether the path defines a parameter called name
func (p AxonPath) HasParam(name string) bool {
	for _, param := range p.Params() {
		if param == name {
			return true
		}
	}
	return false
}

// ParamType returns the type written in "{name:type}", resolved through the
// builtin aliases; false when name is untyped or not defined by the path
func (p AxonPath) ParamType(name string) (TypeName, bool) {
	for _, part := range p.Parts() {
		if part.Type == ParameterPart && part.Value == name && part.ParamType != "" {
			return ResolveTypeAlias(TypeName(part.ParamType)), true
		}
	}
	return "", false
}

// Shape renders the path with parameters replaced by their position.
// Paths with the same shape match the same requests whatever their
// parameters are called.
func (p AxonPath) Shape() string {
	pos := 0
	return p.Format(func(string) string {
		s := ":" + strconv.Itoa(pos)
		pos++
		return s
	}, "*")
}

// Validate checks the path is absolute, has balanced braces and that every
// parameter has a unique, non-empty name
func (p AxonPath) Validate() error {
	path := string(p)
	if !strings.HasPrefix(path, "/") {
		return newConfigError(InvalidRoutePathCode, "route path '%s' must start with '/'", path)
	}
	if strings.Count(path, "{") != strings.Count(path, "}") {
		return newConfigError(InvalidRoutePathCode, "mismatched braces in path: %s", path)
	}

	seen := make(map[string]bool)
	for _, part := range p.Parts() {
		if part.Type != ParameterPart {
			continue
		}
		if part.Value == "" {
			return newConfigError(InvalidRoutePathCode, "empty parameter name in path: %s", path)
		}
		if seen[part.Value] {
			return newConfigError(InvalidRoutePathCode, "parameter '%s' appears twice in path: %s", part.Value, path)
		}
		seen[part.Value] = true
	}
	return nil
}

// Format renders the path with parameters written by param and wildcards by
// wildcard. Adapters use it to produce their framework's syntax.
func (p AxonPath) Format(param func(name string) string, wildcard string) string {
	var b strings.Builder
	for _, part := range p.Parts() {
		switch part.Type {
		case ParameterPart:
			b.WriteString(param(part.Value))
		case WildcardPart:
			b.WriteString(wildcard)
		default:
			b.WriteString(part.Value)
		}
	}
	return b.String()
}

// NewAxonPath creates a new AxonPath from a string
func NewAxonPath(path string) AxonPath {
	return AxonPath(path)
}
