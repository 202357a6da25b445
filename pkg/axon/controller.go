package axon

import (
	"errors"
	"reflect"
	"time"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Registrar turns the declarations recorded for a controller type into a
// Router and records the result as a ControllerDescriptor.
type Registrar struct {
	store    *Store
	types    *TypeRegistry
	logger   Logger
	observer Observer
}

// RegistrarOption configures a Registrar
type RegistrarOption func(*Registrar)

// WithStore sets the metadata store declarations are read from
func WithStore(store *Store) RegistrarOption {
	return func(r *Registrar) { r.store = store }
}

// WithTypeRegistry sets the registry parameter types are resolved through
func WithTypeRegistry(types *TypeRegistry) RegistrarOption {
	return func(r *Registrar) { r.types = types }
}

// WithLogger sets the logger
func WithLogger(logger Logger) RegistrarOption {
	return func(r *Registrar) { r.logger = logger }
}

// WithObserver sets the observer notified after each dispatch attempt
func WithObserver(observer Observer) RegistrarOption {
	return func(r *Registrar) { r.observer = observer }
}

// NewRegistrar creates a registrar. Without options it reads DefaultStore and
// resolves types through DefaultTypeRegistry.
func NewRegistrar(opts ...RegistrarOption) *Registrar {
	r := &Registrar{
		store:    DefaultStore,
		types:    DefaultTypeRegistry,
		logger:   defaultLogger(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = NopLogger{}
	}
	if r.observer == nil {
		r.observer = nopObserver{}
	}
	return r
}

var defaultRegistrar = NewRegistrar()

// DefaultRegistrar returns the process-wide registrar
func DefaultRegistrar() *Registrar {
	return defaultRegistrar
}

// Store returns the metadata store the registrar reads
func (r *Registrar) Store() *Store {
	return r.store
}

// Types returns the type registry the registrar resolves through
func (r *Registrar) Types() *TypeRegistry {
	return r.types
}

// RegisterController creates one instance of T and registers it under
// basePath. The instance is shared by every request.
func RegisterController[T any](r *Registrar, basePath string) error {
	return RegisterControllerInstance(r, basePath, new(T))
}

// RegisterControllerInstance registers a caller-constructed instance of T
// under basePath
func RegisterControllerInstance[T any](r *Registrar, basePath string, instance *T) error {
	owner := TypeOf[T]()
	if instance == nil {
		return newConfigError(NotAControllerCode, "nil instance given for controller %s", owner)
	}
	return r.register(owner, reflect.ValueOf(instance), basePath)
}

// MustRegisterController is RegisterController that panics on error, for
// use from init or main
func MustRegisterController[T any](r *Registrar, basePath string) {
	if err := RegisterController[T](r, basePath); err != nil {
		panic(err)
	}
}

// handlerPlan is everything resolved for one handler method
type handlerPlan struct {
	controller string
	pkg        string
	name       string
	method     reflect.Value
	params     []reflect.Type
	pipeline   *Pipeline
	returnsErr bool
	returnsVal bool
	handlers   []HandlerDescriptor
}

func (r *Registrar) register(owner reflect.Type, receiver reflect.Value, basePath string) error {
	if err := AxonPath(basePath).Validate(); err != nil {
		return r.fail(withController(err, owner, ""))
	}

	methods := r.store.HandlerMethods(owner)
	if len(methods) == 0 {
		r.logger.Warn("Controller %s has no handlers", owner)
	}

	// Every handler is checked before anything is recorded, so a single bad
	// handler leaves no trace of the controller.
	plans := make([]*handlerPlan, 0, len(methods))
	for _, name := range methods {
		plan, err := r.plan(owner, receiver, name)
		if err != nil {
			return r.fail(withController(err, owner, name))
		}
		plans = append(plans, plan)
	}

	router := NewRouter()
	for _, plan := range plans {
		types := make(map[string]TypeName)
		for _, b := range plan.pipeline.Bindings() {
			key := b.Name
			if key == "" {
				key = b.Source.String()
			}
			types[key] = b.Type
		}
		for _, hd := range plan.handlers {
			r.logger.Debug("Registering handler '%s' on route '%s' with method '%s'", plan.name, hd.Path, hd.Verb)
			router.Add(RouteInfo{
				Method:         hd.Verb,
				Path:           hd.Path,
				HandlerName:    plan.name,
				ControllerName: plan.controller,
				PackageName:    plan.pkg,
				ParameterTypes: types,
				Handler:        r.dispatch(plan, hd),
			})
		}
	}

	r.store.AddController(owner, ControllerDescriptor{BasePath: basePath, Router: router})
	r.logger.Info("Registered controller %s at '%s' with %d routes", owner, basePath, len(router.Routes()))
	return nil
}

// checkPathTypes rejects route bindings whose type differs from the one
// written in the route pattern, as in "{id:int}"
func checkPathTypes(name string, handlers []HandlerDescriptor, bindings []ParameterBinding) error {
	for _, hd := range handlers {
		for _, b := range bindings {
			if b.Source != SourceRoute {
				continue
			}
			declared, ok := hd.Path.ParamType(b.Name)
			if !ok || declared == ResolveTypeAlias(b.Type) {
				continue
			}
			return newConfigError(TypeMismatchCode,
				"handler '%s' binds route parameter '%s' as '%s' but path %s declares '%s'",
				name, b.Name, b.Type, hd.Path, declared).
				WithContext("path", string(hd.Path))
		}
	}
	return nil
}

func (r *Registrar) plan(owner reflect.Type, receiver reflect.Value, name string) (*handlerPlan, error) {
	method := receiver.MethodByName(name)
	if !method.IsValid() {
		return nil, newConfigError(UnknownHandlerCode, "%s has no exported method '%s'", receiver.Type(), name).
			WithHint("handlers must be exported methods declared on the controller or its pointer")
	}

	mt := method.Type()
	if mt.IsVariadic() {
		return nil, newConfigError(InvalidHandlerSignatureCode, "handler '%s' must not be variadic", name)
	}
	returnsVal, returnsErr, ok := classifyResults(mt)
	if !ok {
		return nil, newConfigError(InvalidHandlerSignatureCode,
			"handler '%s' returns %s; allowed are (), (R), (error) and (R, error)", name, describeResults(mt))
	}

	handlers := r.store.Handlers(owner, name)
	for _, hd := range handlers {
		if !hd.Verb.Valid() {
			return nil, newConfigError(InvalidDeclarationCode, "handler '%s' declares unsupported verb '%s'", name, hd.Verb)
		}
		if err := hd.Path.Validate(); err != nil {
			return nil, err
		}
	}

	params := make([]reflect.Type, mt.NumIn())
	for i := range params {
		params[i] = mt.In(i)
	}
	pipeline, err := BuildPipeline(r.types, params, r.store.Parameters(owner, name))
	if err != nil {
		return nil, err
	}
	if err := checkPathTypes(name, handlers, pipeline.Bindings()); err != nil {
		return nil, err
	}

	return &handlerPlan{
		controller: owner.Name(),
		pkg:        owner.PkgPath(),
		name:       name,
		method:     method,
		params:     params,
		pipeline:   pipeline,
		returnsErr: returnsErr,
		returnsVal: returnsVal,
		handlers:   handlers,
	}, nil
}

func (r *Registrar) dispatch(plan *handlerPlan, hd HandlerDescriptor) HandlerFunc {
	return func(req Request, res Sender, next NextFunc) error {
		start := time.Now()
		event := DispatchEvent{
			Controller: plan.controller,
			Handler:    plan.name,
			Method:     hd.Verb,
			Path:       hd.Path,
		}

		args, ok := plan.pipeline.Resolve(req).Get()
		if !ok {
			event.Outcome = OutcomeUnsatisfied
			event.Duration = time.Since(start)
			r.observer.Observe(event)
			return next()
		}

		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			if arg == nil {
				in[i] = reflect.Zero(plan.params[i])
				continue
			}
			in[i] = reflect.ValueOf(arg)
		}

		value, err := splitResults(plan.method.Call(in), plan.returnsVal, plan.returnsErr)
		if err == nil {
			err = res.Send(value)
		}

		event.Outcome = OutcomeDispatched
		if err != nil {
			event.Outcome = OutcomeFailed
		}
		event.Duration = time.Since(start)
		r.observer.Observe(event)
		return err
	}
}

func (r *Registrar) fail(err error) error {
	r.logger.Error("%v", err)
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		for _, hint := range cfgErr.Suggestions() {
			r.logger.Error("  hint: %s", hint)
		}
	}
	return err
}

func withController(err error, owner reflect.Type, method string) error {
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		return err
	}
	cfgErr.WithContext("controller", owner.String())
	if method != "" {
		cfgErr.WithContext("method", method)
	}
	return cfgErr
}

// classifyResults accepts (), (R), (error) and (R, error)
func classifyResults(t reflect.Type) (returnsVal, returnsErr, ok bool) {
	switch t.NumOut() {
	case 0:
		return false, false, true
	case 1:
		if t.Out(0) == errorType {
			return false, true, true
		}
		return true, false, true
	case 2:
		if t.Out(1) == errorType && t.Out(0) != errorType {
			return true, true, true
		}
	}
	return false, false, false
}

func describeResults(t reflect.Type) string {
	s := "("
	for i := 0; i < t.NumOut(); i++ {
		if i > 0 {
			s += ", "
		}
		s += t.Out(i).String()
	}
	return s + ")"
}

func splitResults(out []reflect.Value, returnsVal, returnsErr bool) (any, error) {
	var value any
	var err error
	if returnsVal {
		value = interfaceOrNil(out[0])
	}
	if returnsErr {
		if e := interfaceOrNil(out[len(out)-1]); e != nil {
			err = e.(error)
		}
	}
	return value, err
}

// interfaceOrNil unwraps v, mapping typed nils to an untyped nil
func interfaceOrNil(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	}
	return v.Interface()
}
