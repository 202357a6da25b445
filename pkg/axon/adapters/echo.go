package adapters

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/toyz/axonbind/pkg/axon"
)

// EchoApp implements axon.Application for Echo v4
type EchoApp struct {
	engine *echo.Echo
	chains map[string]*mountedChain
	mu     sync.Mutex
}

// NewEchoApp wraps an existing Echo instance
func NewEchoApp(e *echo.Echo) *EchoApp {
	return &EchoApp{engine: e, chains: make(map[string]*mountedChain)}
}

// NewDefaultEchoApp creates an app on a new Echo instance with panic recovery
func NewDefaultEchoApp() *EchoApp {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	return NewEchoApp(e)
}

// BootstrapEcho bootstraps the controllers on a new Echo instance
func BootstrapEcho(r *axon.Registrar, controllers ...reflect.Type) (*echo.Echo, error) {
	app, err := r.Bootstrap(func() axon.Application { return NewDefaultEchoApp() }, controllers...)
	if err != nil {
		return nil, err
	}
	return app.(*EchoApp).Engine(), nil
}

// echoPath converts an AxonPath to Echo's syntax
func echoPath(path axon.AxonPath) string {
	return path.Format(func(name string) string { return ":" + name }, "*")
}

// Mount registers every route chain of router under basePath. Echo keeps
// only the last handler added for a route and renames its parameters, so
// chains matching the same requests are merged into the first one.
func (a *EchoApp) Mount(basePath string, router *axon.Router) error {
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
		a.engine.Add(string(chain.Method), echoPath(full), a.convertChain(merged))
		a.chains[key] = &mountedChain{chain: merged, params: full.Params()}
	}
	return nil
}

// HandleHTTP registers a plain net/http handler, such as a metrics endpoint
func (a *EchoApp) HandleHTTP(method, path string, handler http.Handler) error {
	a.engine.Add(method, path, echo.WrapHandler(handler))
	return nil
}

func (a *EchoApp) convertChain(chain *axon.RouteChain) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := &echoRequest{ctx: c}
		res := &echoSender{ctx: c}

		err := chain.Serve(req, res, func() error { return echo.ErrNotFound })
		if err == nil {
			return nil
		}
		if payload, ok := axon.ErrorPayload(err); ok {
			return writeEcho(c, payload)
		}
		return err
	}
}

// Start starts the server
func (a *EchoApp) Start(addr string) error {
	if err := a.engine.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server
func (a *EchoApp) Stop(ctx context.Context) error {
	return a.engine.Shutdown(ctx)
}

// Name returns the adapter name
func (a *EchoApp) Name() string {
	return "Echo"
}

// Engine returns the underlying Echo instance
func (a *EchoApp) Engine() *echo.Echo {
	return a.engine
}

// echoRequest implements axon.Request for Echo
type echoRequest struct {
	ctx     echo.Context
	body    any
	decoded bool
}

func (r *echoRequest) RouteParam(name string) (string, bool) {
	for i, n := range r.ctx.ParamNames() {
		if n == name {
			values := r.ctx.ParamValues()
			if i < len(values) {
				return values[i], true
			}
			return "", true
		}
	}
	return "", false
}

func (r *echoRequest) QueryValues(name string) []string {
	return r.ctx.QueryParams()[name]
}

func (r *echoRequest) Header(name string) (string, bool) {
	return headerValue(r.ctx.Request().Header, name)
}

func (r *echoRequest) Body() any {
	if !r.decoded {
		r.body = decodeHTTPBody(r.ctx.Request())
		r.decoded = true
	}
	return r.body
}

// echoSender implements axon.Sender for Echo
type echoSender struct {
	ctx echo.Context
}

func (s *echoSender) Send(value any) error {
	return writeEcho(s.ctx, axon.PayloadFor(value))
}

func writeEcho(c echo.Context, p axon.Payload) error {
	switch p.Kind {
	case axon.PayloadText:
		return c.String(p.Status, p.Body.(string))
	case axon.PayloadBytes:
		return c.Blob(p.Status, echo.MIMEOctetStream, p.Body.([]byte))
	case axon.PayloadJSON:
		return c.JSON(p.Status, p.Body)
	default:
		return c.NoContent(p.Status)
	}
}
