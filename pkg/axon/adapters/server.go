package adapters

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/toyz/axonbind/pkg/axon"
)

// Server is an Application that can also serve plain net/http handlers and
// run its own listener
type Server interface {
	axon.Application
	HandleHTTP(method, path string, handler http.Handler) error
	Start(addr string) error
	Stop(ctx context.Context) error
}

var (
	_ Server = (*GinApp)(nil)
	_ Server = (*EchoApp)(nil)
	_ Server = (*FiberApp)(nil)
)

// Frameworks lists the names New accepts
func Frameworks() []string {
	return []string{"gin", "echo", "fiber"}
}

// New creates a default server for the named framework
func New(framework string) (Server, error) {
	switch strings.ToLower(framework) {
	case "gin":
		return NewDefaultGinApp(), nil
	case "echo":
		return NewDefaultEchoApp(), nil
	case "fiber":
		return NewDefaultFiberApp(), nil
	}
	return nil, fmt.Errorf("unsupported framework '%s', expected one of %s", framework, strings.Join(Frameworks(), ", "))
}
