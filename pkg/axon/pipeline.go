package axon

import (
	"reflect"
	"sort"
)

// Pipeline resolves the full argument list of one handler from a request.
// It is built once at registration and only reads immutable state, so it is
// safe for concurrent use.
type Pipeline struct {
	bindings []ParameterBinding
	steps    []Step[Request, any]
}

// BuildPipeline composes one extraction and conversion chain per binding.
// params are the handler's declared parameter types in order. It fails when
// the bindings do not cover every parameter exactly once, when a type has no
// parser, or when a parser's output cannot be passed as the parameter.
func BuildPipeline(registry *TypeRegistry, params []reflect.Type, bindings []ParameterBinding) (*Pipeline, error) {
	if len(params) != len(bindings) {
		return nil, newConfigError(UnboundParameterCode,
			"all parameters of a handler must be bound: expected %d bindings, got %d", len(params), len(bindings)).
			WithContext("parameters", len(params)).
			WithContext("bindings", len(bindings))
	}

	ordered := make([]ParameterBinding, len(bindings))
	copy(ordered, bindings)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	for i, b := range ordered {
		if b.Index != i {
			return nil, newConfigError(UnboundParameterCode,
				"parameter indices must be exactly 0..%d, found index %d at position %d", len(params)-1, b.Index, i).
				WithHint("every handler parameter needs exactly one binding")
		}
	}

	steps := make([]Step[Request, any], len(ordered))
	for i, b := range ordered {
		if b.Name == "" && b.Source != SourceBody {
			return nil, newConfigError(InvalidBindingCode,
				"parameter %d reads from %s but has no name", b.Index, b.Source)
		}
		if !registry.Has(b.Type) {
			return nil, newConfigError(UnknownTypeCode, "unknown type '%s' for parameter %d", b.Type, b.Index).
				WithHint("register a parser for the type before registering the controller")
		}
		converter, err := registry.Lookup(b.Type)
		if err != nil {
			return nil, err
		}
		if params[i] != nil && !converter.Type().AssignableTo(params[i]) {
			return nil, newConfigError(TypeMismatchCode,
				"parser for '%s' produces %s which cannot be used as parameter %d of type %s",
				b.Type, converter.Type(), b.Index, params[i])
		}

		steps[i] = Compose(
			Compose(Lift(ExtractorFor(b.Source, b.Name)), Guard(notNil)),
			Convert(converter),
		)
	}

	return &Pipeline{bindings: ordered, steps: steps}, nil
}

// Resolve runs every binding in ascending index order and stops at the first
// one that is absent or fails to parse. The result fails when the handler
// cannot be satisfied by req.
func (p *Pipeline) Resolve(req Request) Result[[]any] {
	args := make([]any, len(p.steps))
	for i, step := range p.steps {
		v, ok := step(req).Get()
		if !ok {
			return Failure[[]any]()
		}
		args[i] = v
	}
	return Success(args)
}

// Arity returns the number of arguments the pipeline produces
func (p *Pipeline) Arity() int {
	return len(p.steps)
}

// Bindings returns the bindings ordered by index
func (p *Pipeline) Bindings() []ParameterBinding {
	return append([]ParameterBinding(nil), p.bindings...)
}
