package axon

import (
	"sort"
	"sync"
)

// TypeRegistry maps type names to converters. Built-in parsers are present
// from construction and cannot be replaced.
type TypeRegistry struct {
	converters map[TypeName]Converter
	mu         sync.RWMutex
}

// NewTypeRegistry creates a registry holding the built-in parsers
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		converters: builtinConverters(),
	}
}

// DefaultTypeRegistry is the process-wide registry used by DefaultRegistrar
var DefaultTypeRegistry = NewTypeRegistry()

// Register adds a converter for name. Reserved names and names that already
// have a converter are rejected.
func (r *TypeRegistry) Register(name TypeName, converter Converter) error {
	if IsReservedType(name) {
		return newConfigError(ReservedTypeCode, "type name '%s' is reserved for a built-in parser", name).
			WithHint("choose another type name, for example the Go type name of your form struct")
	}
	if converter == nil {
		return newConfigError(UnknownTypeCode, "nil converter registered for type '%s'", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.converters[name]; exists {
		return newConfigError(DuplicateTypeCode, "parser for type '%s' already registered", name).
			WithContext("existing", existing.Type().String())
	}
	r.converters[name] = converter
	return nil
}

// RegisterParser binds p to its default configuration and registers it
func RegisterParser[T any, C any](r *TypeRegistry, name TypeName, p Parser[T, C]) error {
	return r.Register(name, Bind(p))
}

// MustRegisterParser is RegisterParser that panics on error, for use in init
func MustRegisterParser[T any, C any](r *TypeRegistry, name TypeName, p Parser[T, C]) {
	if err := RegisterParser(r, name, p); err != nil {
		panic(err)
	}
}

// Lookup returns the converter for name, resolving aliases
func (r *TypeRegistry) Lookup(name TypeName) (Converter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, exists := r.converters[ResolveTypeAlias(name)]; exists {
		return c, nil
	}
	return nil, newConfigError(UnknownTypeCode, "no parser registered for type '%s'", name).
		WithHint("register one with RegisterParser before registering controllers that use it")
}

// Has reports whether a converter exists for name, resolving aliases
func (r *TypeRegistry) Has(name TypeName) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.converters[ResolveTypeAlias(name)]
	return exists
}

// Types returns all registered type names in sorted order
func (r *TypeRegistry) Types() []TypeName {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]TypeName, 0, len(r.converters))
	for name := range r.converters {
		types = append(types, name)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
