package axon

// Step is one stage of a binding chain
type Step[In any, Out any] func(In) Result[Out]

// Compose runs f then g; g is skipped when f fails
func Compose[A any, B any, C any](f Step[A, B], g Step[B, C]) Step[A, C] {
	return func(a A) Result[C] {
		b, ok := f(a).Get()
		if !ok {
			return Failure[C]()
		}
		return g(b)
	}
}

// Guard passes values matching pred through unchanged and fails the rest
func Guard[T any](pred func(T) bool) Step[T, T] {
	return func(v T) Result[T] {
		if !pred(v) {
			return Failure[T]()
		}
		return Success(v)
	}
}

// Lift turns an extractor into the first step of a chain
func Lift(e Extractor) Step[Request, any] {
	return func(req Request) Result[any] {
		v, ok := e(req)
		if !ok {
			return Failure[any]()
		}
		return Success(v)
	}
}

// Convert turns a converter into a chain step
func Convert(c Converter) Step[any, any] {
	return c.Convert
}

// notNil rejects values that are present but nil
func notNil(v any) bool {
	return v != nil
}
