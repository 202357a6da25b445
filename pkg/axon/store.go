package axon

import (
	"reflect"
	"sync"
)

type methodKey struct {
	owner  reflect.Type
	method string
}

// Store is the side table declarations are written to. Records are keyed by
// the declaring struct type, and by method name for handler and parameter
// records. Lists are append-only and returned as copies.
type Store struct {
	controllers map[reflect.Type][]ControllerDescriptor
	handlers    map[methodKey][]HandlerDescriptor
	parameters  map[methodKey][]ParameterBinding
	fields      map[reflect.Type][]FormField
	// handler method names per type in first-declaration order
	methods map[reflect.Type][]string
	mu      sync.RWMutex
}

// NewStore creates an empty metadata store
func NewStore() *Store {
	return &Store{
		controllers: make(map[reflect.Type][]ControllerDescriptor),
		handlers:    make(map[methodKey][]HandlerDescriptor),
		parameters:  make(map[methodKey][]ParameterBinding),
		fields:      make(map[reflect.Type][]FormField),
		methods:     make(map[reflect.Type][]string),
	}
}

// DefaultStore is the process-wide store used by Annotate and DefaultRegistrar
var DefaultStore = NewStore()

// AddController appends a controller descriptor for owner
func (s *Store) AddController(owner reflect.Type, info ControllerDescriptor) {
	owner = keyType(owner)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controllers[owner] = append(s.controllers[owner], info)
}

// Controllers returns the controller descriptors of owner
func (s *Store) Controllers(owner reflect.Type) []ControllerDescriptor {
	owner = keyType(owner)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ControllerDescriptor(nil), s.controllers[owner]...)
}

// IsController reports whether owner has at least one controller descriptor
func (s *Store) IsController(owner reflect.Type) bool {
	owner = keyType(owner)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.controllers[owner]) > 0
}

// AddHandler appends a handler descriptor for a method of owner
func (s *Store) AddHandler(owner reflect.Type, method string, info HandlerDescriptor) {
	key := methodKey{owner: keyType(owner), method: method}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.handlers[key]) == 0 {
		s.methods[key.owner] = append(s.methods[key.owner], method)
	}
	s.handlers[key] = append(s.handlers[key], info)
}

// Handlers returns the handler descriptors of a method in declaration order
func (s *Store) Handlers(owner reflect.Type, method string) []HandlerDescriptor {
	key := methodKey{owner: keyType(owner), method: method}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]HandlerDescriptor(nil), s.handlers[key]...)
}

// HandlerMethods returns the names of owner's methods that have at least one
// handler descriptor, in the order they were first declared
func (s *Store) HandlerMethods(owner reflect.Type) []string {
	owner = keyType(owner)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.methods[owner]...)
}

// AddParameter appends a parameter binding for a method of owner. Bindings
// may be added in any index order; consistency is checked at registration.
func (s *Store) AddParameter(owner reflect.Type, method string, info ParameterBinding) {
	key := methodKey{owner: keyType(owner), method: method}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parameters[key] = append(s.parameters[key], info)
}

// Parameters returns the parameter bindings of a method
func (s *Store) Parameters(owner reflect.Type, method string) []ParameterBinding {
	key := methodKey{owner: keyType(owner), method: method}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ParameterBinding(nil), s.parameters[key]...)
}

// AddField appends a form field for owner
func (s *Store) AddField(owner reflect.Type, info FormField) {
	owner = keyType(owner)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[owner] = append(s.fields[owner], info)
}

// Fields returns the form fields of owner
func (s *Store) Fields(owner reflect.Type) []FormField {
	owner = keyType(owner)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]FormField(nil), s.fields[owner]...)
}
