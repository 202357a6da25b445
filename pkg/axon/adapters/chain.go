package adapters

import (
	"slices"

	"github.com/toyz/axonbind/pkg/axon"
)

// mountedChain is a framework route registered for one (verb, path shape).
// params are the parameter names the framework route was registered with.
type mountedChain struct {
	chain  *axon.RouteChain
	params []string
}

func chainKey(verb axon.Verb, path axon.AxonPath) string {
	return string(verb) + " " + path.Shape()
}

// appendChain adds handlers declared on path to a mounted chain of the same
// shape. When path names its parameters differently, the handlers read them
// through the names of the registered route.
func (m *mountedChain) appendChain(path axon.AxonPath, handlers []axon.HandlerFunc) {
	own := path.Params()
	if slices.Equal(own, m.params) {
		m.chain.Append(handlers...)
		return
	}

	names := make(map[string]string, len(own))
	for i, name := range own {
		names[name] = m.params[i]
	}
	for _, h := range handlers {
		m.chain.Append(func(req axon.Request, res axon.Sender, next axon.NextFunc) error {
			return h(&renamedRequest{Request: req, names: names}, res, next)
		})
	}
}

// renamedRequest exposes route parameters under a handler's own names
type renamedRequest struct {
	axon.Request
	names map[string]string
}

func (r *renamedRequest) RouteParam(name string) (string, bool) {
	if name == "*" {
		return r.Request.RouteParam(name)
	}
	registered, ok := r.names[name]
	if !ok {
		return "", false
	}
	return r.Request.RouteParam(registered)
}
