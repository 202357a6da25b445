package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/toyz/axonbind/pkg/axon"
)

// GinApp implements axon.Application for the Gin framework
type GinApp struct {
	engine *gin.Engine
	chains map[string]*mountedChain
	server *http.Server
	mu     sync.Mutex
}

// NewGinApp wraps an existing engine
func NewGinApp(engine *gin.Engine) *GinApp {
	return &GinApp{engine: engine, chains: make(map[string]*mountedChain)}
}

// NewDefaultGinApp creates an app on a new engine with panic recovery
func NewDefaultGinApp() *GinApp {
	engine := gin.New()
	engine.Use(gin.Recovery())
	return NewGinApp(engine)
}

// BootstrapGin bootstraps the controllers on a new Gin engine
func BootstrapGin(r *axon.Registrar, controllers ...reflect.Type) (*gin.Engine, error) {
	app, err := r.Bootstrap(func() axon.Application { return NewDefaultGinApp() }, controllers...)
	if err != nil {
		return nil, err
	}
	return app.(*GinApp).Engine(), nil
}

// ginPath converts an AxonPath to Gin's syntax; Gin names the wildcard "path"
func ginPath(path axon.AxonPath) string {
	return path.Format(func(name string) string { return ":" + name }, "*path")
}

// Mount registers every route chain of router under basePath. Chains whose
// (verb, path) match the same requests as one already mounted are appended
// to it, since Gin rejects a second route with other parameter names.
func (a *GinApp) Mount(basePath string, router *axon.Router) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, chain := range router.Chains() {
		full := axon.JoinPaths(basePath, chain.Path)
		key := chainKey(chain.Method, full)

		if existing, ok := a.chains[key]; ok {
			existing.appendChain(full, chain.Handlers)
			continue
		}

		merged := &axon.RouteChain{Method: chain.Method, Path: full}
		merged.Append(chain.Handlers...)
		if err := a.handle(string(chain.Method), ginPath(full), a.convertChain(merged)); err != nil {
			return err
		}
		a.chains[key] = &mountedChain{chain: merged, params: full.Params()}
	}
	return nil
}

// handle registers a route, turning Gin's registration panics into errors
func (a *GinApp) handle(method, path string, handler gin.HandlerFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gin rejected route %s %s: %v", method, path, r)
		}
	}()
	a.engine.Handle(method, path, handler)
	return nil
}

// HandleHTTP registers a plain net/http handler, such as a metrics endpoint
func (a *GinApp) HandleHTTP(method, path string, handler http.Handler) error {
	return a.handle(method, path, gin.WrapH(handler))
}

func (a *GinApp) convertChain(chain *axon.RouteChain) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := &ginRequest{ctx: c}
		res := &ginSender{ctx: c}

		err := chain.Serve(req, res, func() error {
			c.String(http.StatusNotFound, "404 page not found")
			return nil
		})
		if err == nil {
			return
		}

		_ = c.Error(err)
		if payload, ok := axon.ErrorPayload(err); ok {
			writeGin(c, payload)
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Start serves on addr until Stop is called
func (a *GinApp) Start(addr string) error {
	a.mu.Lock()
	a.server = &http.Server{Addr: addr, Handler: a.engine}
	server := a.server
	a.mu.Unlock()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down
func (a *GinApp) Stop(ctx context.Context) error {
	a.mu.Lock()
	server := a.server
	a.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

// Name returns the adapter name
func (a *GinApp) Name() string {
	return "Gin"
}

// Engine returns the underlying Gin engine
func (a *GinApp) Engine() *gin.Engine {
	return a.engine
}

// ginRequest implements axon.Request for Gin
type ginRequest struct {
	ctx     *gin.Context
	body    any
	decoded bool
}

// RouteParam reads Gin's catch-all without its leading slash, matching the
// other adapters
func (r *ginRequest) RouteParam(name string) (string, bool) {
	if name == "*" {
		v, ok := r.ctx.Params.Get("path")
		return strings.TrimPrefix(v, "/"), ok
	}
	return r.ctx.Params.Get(name)
}

func (r *ginRequest) QueryValues(name string) []string {
	return r.ctx.QueryArray(name)
}

func (r *ginRequest) Header(name string) (string, bool) {
	return headerValue(r.ctx.Request.Header, name)
}

func (r *ginRequest) Body() any {
	if !r.decoded {
		r.body = decodeHTTPBody(r.ctx.Request)
		r.decoded = true
	}
	return r.body
}

// ginSender implements axon.Sender for Gin
type ginSender struct {
	ctx *gin.Context
}

func (s *ginSender) Send(value any) error {
	writeGin(s.ctx, axon.PayloadFor(value))
	return nil
}

func writeGin(c *gin.Context, p axon.Payload) {
	switch p.Kind {
	case axon.PayloadText:
		c.Data(p.Status, "text/plain; charset=utf-8", []byte(p.Body.(string)))
	case axon.PayloadBytes:
		c.Data(p.Status, "application/octet-stream", p.Body.([]byte))
	case axon.PayloadJSON:
		c.JSON(p.Status, p.Body)
	default:
		c.Status(p.Status)
		c.Writer.WriteHeaderNow()
	}
}
