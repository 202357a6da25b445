package axon

import "reflect"

type formFieldPlan struct {
	external  string
	index     []int
	converter Converter
}

// RegisterForm registers name as a type whose values are built as T from an
// object body. Each field recorded for T in store is read from the object,
// converted with its own type's parser and assigned to the struct property.
// The form fails to parse when the input is not an object or any field fails.
func RegisterForm[T any](registry *TypeRegistry, store *Store, name TypeName) error {
	owner := TypeOf[T]()
	if owner.Kind() != reflect.Struct {
		return newConfigError(InvalidBindingCode, "form type %s must be a struct", owner)
	}

	fields := store.Fields(owner)
	plans := make([]formFieldPlan, 0, len(fields))
	for _, f := range fields {
		sf, ok := owner.FieldByName(f.Property)
		if !ok || !sf.IsExported() {
			return newConfigError(InvalidBindingCode, "form %s has no exported field '%s'", owner, f.Property).
				WithContext("form", string(name))
		}
		converter, err := registry.Lookup(f.Type)
		if err != nil {
			return withContext(err, "form", string(name))
		}
		if !converter.Type().AssignableTo(sf.Type) {
			return newConfigError(TypeMismatchCode, "parser for '%s' produces %s which cannot be assigned to %s.%s of type %s",
				f.Type, converter.Type(), owner.Name(), f.Property, sf.Type)
		}
		external := f.External
		if external == "" {
			external = f.Property
		}
		plans = append(plans, formFieldPlan{external: external, index: sf.Index, converter: converter})
	}

	return registry.Register(name, ConverterFunc(func(value any) (T, bool) {
		var out T
		object, ok := value.(map[string]any)
		if !ok {
			return out, false
		}
		target := reflect.ValueOf(&out).Elem()
		for _, plan := range plans {
			v, ok := plan.converter.Convert(object[plan.external]).Get()
			if !ok {
				return out, false
			}
			if v != nil {
				target.FieldByIndex(plan.index).Set(reflect.ValueOf(v))
			}
		}
		return out, true
	}))
}

// MustRegisterForm is RegisterForm that panics on error
func MustRegisterForm[T any](registry *TypeRegistry, store *Store, name TypeName) {
	if err := RegisterForm[T](registry, store, name); err != nil {
		panic(err)
	}
}

func withContext(err error, key string, value interface{}) error {
	if cfgErr, ok := err.(*ConfigError); ok {
		return cfgErr.WithContext(key, value)
	}
	return err
}
