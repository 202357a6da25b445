package axon

// Request is the read-only view of an incoming request that extractors use.
// Adapters implement it on top of their framework's context.
type Request interface {
	// RouteParam returns the matched path segment; false if the route
	// pattern does not define name
	RouteParam(name string) (string, bool)

	// QueryValues returns every value sent for a query key
	QueryValues(name string) []string

	// Header returns a header value; false if the header was not sent
	Header(name string) (string, bool)

	// Body returns the pre-parsed request body, nil when there is none
	Body() any
}

// Sender is the single write operation a dispatched handler performs
type Sender interface {
	// Send serialises value onto the response
	Send(value any) error
}

// NextFunc passes control to the next candidate handler, ultimately the
// router's not-found handling
type NextFunc func() error

// HandlerFunc handles a request on a Router, or defers to next
type HandlerFunc func(req Request, res Sender, next NextFunc) error

// Application is a root web application sub-routers can be mounted on
type Application interface {
	Mount(basePath string, router *Router) error

	// Name returns the adapter name
	Name() string
}
