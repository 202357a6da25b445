package axon

import (
	"fmt"
	"reflect"
)

// Bootstrap validates that every type is a registered controller, then
// creates the application with newApp and mounts each controller
// registration on it in order. Nothing is created when validation fails.
func (r *Registrar) Bootstrap(newApp func() Application, controllers ...reflect.Type) (Application, error) {
	for _, t := range controllers {
		if t == nil || !r.store.IsController(t) {
			return nil, r.fail(newConfigError(NotAControllerCode, "%v is not a registered controller", t).
				WithContext("type", fmt.Sprint(t)).
				WithHint("call RegisterController for the type before bootstrapping"))
		}
	}

	app := newApp()
	for _, t := range controllers {
		for _, desc := range r.store.Controllers(t) {
			if err := app.Mount(desc.BasePath, desc.Router); err != nil {
				return nil, fmt.Errorf("failed to mount %s at '%s' on %s: %w", t, desc.BasePath, app.Name(), err)
			}
			r.logger.Debug("Mounted %s at '%s' on %s", t, desc.BasePath, app.Name())
		}
	}
	r.logger.Info("Bootstrapped %s with %d controllers", app.Name(), len(controllers))
	return app, nil
}

// Bootstrap bootstraps with the default registrar
func Bootstrap(newApp func() Application, controllers ...reflect.Type) (Application, error) {
	return defaultRegistrar.Bootstrap(newApp, controllers...)
}

// Routes lists the routes of every registration of the given controllers
// with their paths joined to the mount point
func (r *Registrar) Routes(controllers ...reflect.Type) []RouteInfo {
	var routes []RouteInfo
	for _, t := range controllers {
		for _, desc := range r.store.Controllers(t) {
			for _, route := range desc.Router.Routes() {
				route.Path = JoinPaths(desc.BasePath, route.Path)
				routes = append(routes, route)
			}
		}
	}
	return routes
}
