package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/axonbind/pkg/axon"
)

func newCollector(t *testing.T) *Collector {
	t.Helper()
	c, err := New(Config{})
	require.NoError(t, err)
	return c
}

func event(handler string, outcome axon.Outcome) axon.DispatchEvent {
	return axon.DispatchEvent{
		Controller: "UserController",
		Handler:    handler,
		Method:     axon.GET,
		Path:       "/:id",
		Outcome:    outcome,
		Duration:   2 * time.Millisecond,
	}
}

func TestCollector_CountsPerOutcome(t *testing.T) {
	c := newCollector(t)

	c.Observe(event("Get", axon.OutcomeDispatched))
	c.Observe(event("Get", axon.OutcomeDispatched))
	c.Observe(event("Get", axon.OutcomeUnsatisfied))
	c.Observe(event("Slug", axon.OutcomeFailed))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.dispatches.WithLabelValues("UserController", "Get", "GET", "/:id", "dispatched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.dispatches.WithLabelValues("UserController", "Get", "GET", "/:id", "unsatisfied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.dispatches.WithLabelValues("UserController", "Slug", "GET", "/:id", "failed")))
	assert.Equal(t, 3, testutil.CollectAndCount(c.dispatches))
	assert.Equal(t, 3, testutil.CollectAndCount(c.duration))
}

func TestCollector_Histogram(t *testing.T) {
	c := newCollector(t)
	c.Observe(event("Get", axon.OutcomeDispatched))

	expected := `
# HELP axon_dispatch_total Total number of handler dispatch attempts by outcome
# TYPE axon_dispatch_total counter
axon_dispatch_total{controller="UserController",handler="Get",method="GET",outcome="dispatched",path="/:id"} 1
`
	require.NoError(t, testutil.CollectAndCompare(c.dispatches, strings.NewReader(expected)))

	count, err := testutil.GatherAndCount(c.Registry(), "axon_dispatch_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCollector_Handler(t *testing.T) {
	c := newCollector(t)
	c.Observe(event("Get", axon.OutcomeDispatched))

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `axon_dispatch_total{controller="UserController"`)
}

func TestNew_RuntimeCollectors(t *testing.T) {
	c, err := New(DefaultConfig())
	require.NoError(t, err)

	families, err := c.Registry().Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "go_goroutines")
}

func TestNew_SharedRegistryConflict(t *testing.T) {
	first := newCollector(t)
	_, err := New(Config{Registry: first.Registry()})
	assert.Error(t, err)
}

func TestCollector_ObservesRegistrarDispatch(t *testing.T) {
	c := newCollector(t)
	r := axon.NewRegistrar(
		axon.WithStore(axon.NewStore()),
		axon.WithTypeRegistry(axon.NewTypeRegistry()),
		axon.WithLogger(axon.NopLogger{}),
		axon.WithObserver(c),
	)
	axon.Annotate[pingController](r.Store()).Method("Ping").Get("/:n").RouteParam(0, "n", axon.TypeInteger)
	require.NoError(t, axon.RegisterController[pingController](r, "/ping"))

	chain := r.Store().Controllers(axon.TypeOf[pingController]())[0].Router.Chains()[0]
	require.NoError(t, chain.Serve(stubRequest{"n": "1"}, discard{}, nil))
	require.NoError(t, chain.Serve(stubRequest{"n": "x"}, discard{}, nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.dispatches.WithLabelValues("pingController", "Ping", "GET", "/:n", "dispatched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.dispatches.WithLabelValues("pingController", "Ping", "GET", "/:n", "unsatisfied")))
}

type pingController struct{}

func (pingController) Ping(n int) int { return n }

type stubRequest map[string]string

func (r stubRequest) RouteParam(name string) (string, bool) {
	v, ok := r[name]
	return v, ok
}
func (stubRequest) QueryValues(string) []string   { return nil }
func (stubRequest) Header(string) (string, bool) { return "", false }
func (stubRequest) Body() any                     { return nil }

type discard struct{}

func (discard) Send(any) error { return nil }
