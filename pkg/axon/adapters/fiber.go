package adapters

import (
	"context"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/toyz/axonbind/pkg/axon"
)

// bodyLocal is the Locals key the decoded body is cached under, so every
// route a request falls through to decodes it only once
const bodyLocal = "axon.body"

// FiberApp implements axon.Application for the Fiber framework. Fiber
// continues to the next matching route on c.Next, so chains end there.
type FiberApp struct {
	app *fiber.App
}

// NewFiberApp wraps an existing Fiber app
func NewFiberApp(app *fiber.App) *FiberApp {
	return &FiberApp{app: app}
}

// NewDefaultFiberApp creates an app on a new Fiber instance with panic recovery
func NewDefaultFiberApp() *FiberApp {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	return NewFiberApp(app)
}

// BootstrapFiber bootstraps the controllers on a new Fiber app
func BootstrapFiber(r *axon.Registrar, controllers ...reflect.Type) (*fiber.App, error) {
	app, err := r.Bootstrap(func() axon.Application { return NewDefaultFiberApp() }, controllers...)
	if err != nil {
		return nil, err
	}
	return app.(*FiberApp).App(), nil
}

// fiberPath converts an AxonPath to Fiber's syntax
func fiberPath(path axon.AxonPath) string {
	return path.Format(func(name string) string { return ":" + name }, "*")
}

// Mount registers every route chain of router under basePath
func (a *FiberApp) Mount(basePath string, router *axon.Router) error {
	for _, chain := range router.Chains() {
		path := fiberPath(axon.JoinPaths(basePath, chain.Path))
		a.app.Add(string(chain.Method), path, convertChain(chain))
	}
	return nil
}

// HandleHTTP registers a plain net/http handler, such as a metrics endpoint
func (a *FiberApp) HandleHTTP(method, path string, handler http.Handler) error {
	a.app.Add(method, path, adaptor.HTTPHandler(handler))
	return nil
}

func convertChain(chain *axon.RouteChain) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := &fiberRequest{ctx: c}
		res := &fiberSender{ctx: c}

		err := chain.Serve(req, res, c.Next)
		if err == nil {
			return nil
		}
		if payload, ok := axon.ErrorPayload(err); ok {
			return writeFiber(c, payload)
		}
		return err
	}
}

// Start starts the Fiber server
func (a *FiberApp) Start(addr string) error {
	return a.app.Listen(addr)
}

// Stop stops the Fiber server
func (a *FiberApp) Stop(ctx context.Context) error {
	return a.app.ShutdownWithContext(ctx)
}

// Name returns the adapter name
func (a *FiberApp) Name() string {
	return "Fiber"
}

// App returns the underlying Fiber app
func (a *FiberApp) App() *fiber.App {
	return a.app
}

// fiberRequest implements axon.Request for Fiber. Values are copied out of
// fasthttp's buffers because they may outlive the handler.
type fiberRequest struct {
	ctx *fiber.Ctx
}

func (r *fiberRequest) RouteParam(name string) (string, bool) {
	for _, p := range r.ctx.Route().Params {
		if p == name || (name == "*" && strings.HasPrefix(p, "*")) {
			return strings.Clone(r.ctx.Params(p)), true
		}
	}
	return "", false
}

func (r *fiberRequest) QueryValues(name string) []string {
	raw := r.ctx.Context().QueryArgs().PeekMulti(name)
	if len(raw) == 0 {
		return nil
	}
	values := make([]string, len(raw))
	for i, v := range raw {
		values[i] = string(v)
	}
	return values
}

func (r *fiberRequest) Header(name string) (string, bool) {
	vals, ok := r.ctx.GetReqHeaders()[http.CanonicalHeaderKey(name)]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return strings.Clone(vals[0]), true
}

func (r *fiberRequest) Body() any {
	if cached, ok := r.ctx.Locals(bodyLocal).(decodedBody); ok {
		return cached.value
	}
	body := r.decode()
	r.ctx.Locals(bodyLocal, decodedBody{value: body})
	return body
}

// decodedBody marks a cached body, including a nil one
type decodedBody struct {
	value any
}

func (r *fiberRequest) decode() any {
	switch mediaType(string(r.ctx.Request().Header.ContentType())) {
	case mimeJSON:
		return decodeJSON(r.ctx.Body())
	case mimeForm:
		values := url.Values{}
		r.ctx.Request().PostArgs().VisitAll(func(key, value []byte) {
			values.Add(string(key), string(value))
		})
		return flattenForm(values)
	case mimeMultipartForm:
		form, err := r.ctx.MultipartForm()
		if err != nil || form == nil {
			return nil
		}
		return flattenForm(form.Value)
	}
	return nil
}

// fiberSender implements axon.Sender for Fiber
type fiberSender struct {
	ctx *fiber.Ctx
}

func (s *fiberSender) Send(value any) error {
	return writeFiber(s.ctx, axon.PayloadFor(value))
}

func writeFiber(c *fiber.Ctx, p axon.Payload) error {
	c.Status(p.Status)
	switch p.Kind {
	case axon.PayloadText:
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(p.Body.(string))
	case axon.PayloadBytes:
		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
		return c.Send(p.Body.([]byte))
	case axon.PayloadJSON:
		return c.JSON(p.Body)
	}
	return nil
}
