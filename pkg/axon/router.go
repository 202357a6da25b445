package axon

import (
	"strings"
	"sync"
)

// RouteInfo contains metadata about a route registered on a Router
type RouteInfo struct {
	// Method is the HTTP verb
	Method Verb

	// Path is the route path relative to the router's mount point
	Path AxonPath

	// HandlerName is the name of the controller method serving the route
	HandlerName string

	// ControllerName is the Go type name of the controller
	ControllerName string

	// PackageName is the import path of the controller's package
	PackageName string

	// ParameterTypes maps bound source names to their declared types
	ParameterTypes map[string]TypeName

	// Handler is the dispatch function
	Handler HandlerFunc
}

// Router is a sub-router produced for one controller registration. It only
// records routes; adapters turn it into framework routes when the router is
// mounted on an Application.
type Router struct {
	routes []RouteInfo
	mu     sync.RWMutex
}

// NewRouter creates an empty router
func NewRouter() *Router {
	return &Router{
		routes: make([]RouteInfo, 0),
	}
}

// Handle adds a route for verb and path
func (r *Router) Handle(verb Verb, path AxonPath, handler HandlerFunc) {
	r.Add(RouteInfo{Method: verb, Path: path, Handler: handler})
}

// Add adds a fully described route
func (r *Router) Add(route RouteInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

// Routes returns all routes in registration order
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]RouteInfo(nil), r.routes...) // Return a copy
}

// RoutesByMethod returns routes filtered by HTTP verb
func (r *Router) RoutesByMethod(verb Verb) []RouteInfo {
	var filtered []RouteInfo
	for _, route := range r.Routes() {
		if route.Method == verb {
			filtered = append(filtered, route)
		}
	}
	return filtered
}

// RoutesByHandler returns routes served by the named controller method
func (r *Router) RoutesByHandler(handlerName string) []RouteInfo {
	var filtered []RouteInfo
	for _, route := range r.Routes() {
		if route.HandlerName == handlerName {
			filtered = append(filtered, route)
		}
	}
	return filtered
}

// Chains groups the routes by (verb, path). Chains are ordered by the first
// route of each group and keep registration order within a group.
func (r *Router) Chains() []*RouteChain {
	var chains []*RouteChain
	index := make(map[string]*RouteChain)
	for _, route := range r.Routes() {
		key := string(route.Method) + " " + string(route.Path)
		chain, ok := index[key]
		if !ok {
			chain = &RouteChain{Method: route.Method, Path: route.Path}
			index[key] = chain
			chains = append(chains, chain)
		}
		chain.Handlers = append(chain.Handlers, route.Handler)
	}
	return chains
}

// RouteChain is the ordered list of handlers that compete for one
// (verb, path). A handler that cannot be satisfied calls next, which moves on
// to the following handler.
type RouteChain struct {
	Method   Verb
	Path     AxonPath
	Handlers []HandlerFunc
}

// Append adds handlers to the end of the chain
func (c *RouteChain) Append(handlers ...HandlerFunc) {
	c.Handlers = append(c.Handlers, handlers...)
}

// Serve runs the chain. notFound is called when every handler passed; a nil
// notFound ends the chain without writing anything.
func (c *RouteChain) Serve(req Request, res Sender, notFound NextFunc) error {
	var next func(i int) error
	next = func(i int) error {
		if i >= len(c.Handlers) {
			if notFound == nil {
				return nil
			}
			return notFound()
		}
		return c.Handlers[i](req, res, func() error { return next(i + 1) })
	}
	return next(0)
}

// JoinPaths joins a mount point and a route path into one absolute path.
// "/" on either side collapses, so ("/users", "/") is "/users".
func JoinPaths(basePath string, path AxonPath) AxonPath {
	base := strings.TrimRight(basePath, "/")
	rel := strings.TrimLeft(string(path), "/")
	switch {
	case base == "" && rel == "":
		return "/"
	case rel == "":
		return AxonPath(base)
	}
	return AxonPath(base + "/" + rel)
}
