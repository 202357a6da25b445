package axon

import "reflect"

// Result is the outcome of a parse or extraction step: either a value or
// nothing. It carries no error because failing to bind is not an error.
type Result[T any] struct {
	value T
	ok    bool
}

// Success wraps a successfully produced value
func Success[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Failure returns an empty result
func Failure[T any]() Result[T] {
	return Result[T]{}
}

// Get returns the value and whether it is present
func (r Result[T]) Get() (T, bool) {
	return r.value, r.ok
}

// Ok reports whether the result holds a value
func (r Result[T]) Ok() bool {
	return r.ok
}

// Value returns the held value, or the zero value on failure
func (r Result[T]) Value() T {
	return r.value
}

// Parser converts an untyped value into T using a configuration of type C.
// Implementations must be total: malformed input yields Failure, never a panic.
type Parser[T any, C any] interface {
	DefaultConfig() C
	Parse(value any, config C) Result[T]
}

// Converter is a parser with its configuration already bound and its result
// type erased, which is the form the TypeRegistry stores.
type Converter interface {
	Convert(value any) Result[any]
	// Type is the Go type of successfully converted values
	Type() reflect.Type
}

// Bind binds p to its default configuration
func Bind[T any, C any](p Parser[T, C]) Converter {
	return BindWithConfig(p, p.DefaultConfig())
}

// BindWithConfig binds p to an explicit configuration
func BindWithConfig[T any, C any](p Parser[T, C], config C) Converter {
	return &boundParser[T, C]{parser: p, config: config}
}

type boundParser[T any, C any] struct {
	parser Parser[T, C]
	config C
}

func (b *boundParser[T, C]) Convert(value any) (result Result[any]) {
	defer func() {
		if recover() != nil {
			result = Failure[any]()
		}
	}()
	v, ok := b.parser.Parse(value, b.config).Get()
	if !ok {
		return Failure[any]()
	}
	return Success[any](v)
}

func (b *boundParser[T, C]) Type() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// ConverterFunc adapts a plain function to a Converter producing values of
// type T. Useful for one-off types that need no configuration.
func ConverterFunc[T any](fn func(value any) (T, bool)) Converter {
	return Bind[T, struct{}](parserFunc[T](fn))
}

type parserFunc[T any] func(value any) (T, bool)

func (f parserFunc[T]) DefaultConfig() struct{} { return struct{}{} }

func (f parserFunc[T]) Parse(value any, _ struct{}) Result[T] {
	if v, ok := f(value); ok {
		return Success(v)
	}
	return Failure[T]()
}
