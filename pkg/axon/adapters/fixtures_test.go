package adapters

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/axonbind/pkg/axon"
)

type createUser struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type userController struct{}

func (userController) Get(id int) map[string]any { return map[string]any{"id": id} }

func (userController) Slug(slug string) string { return "slug:" + slug }

func (userController) Strict(id int) int { return id * 2 }

func (userController) Create(user createUser) (*axon.Response, error) {
	return axon.Created(user), nil
}

func (userController) Fail(id int) error {
	return axon.ErrNotFound("no user")
}

func (userController) Remove(id int) {}

func (userController) Raw() []byte { return []byte{0x01, 0x02} }

type fallbackController struct{}

func (fallbackController) Strict(raw string) string { return "fallback:" + raw }

type probeController struct{}

func (probeController) Search(q string, limit int) []string {
	out := make([]string, limit)
	for i := range out {
		out[i] = q
	}
	return out
}

func (probeController) WhoAmI(token string) string { return token }

type lookupController struct{}

func (lookupController) ByID(id int) string { return "id:" + strconv.Itoa(id) }

func (lookupController) ByName(name string) string { return "name:" + name }

type fileController struct{}

func (fileController) Fetch(path string) string { return "file:" + path }

// newTestRegistrar declares and registers the fixture controllers on a
// private store and type registry
func newTestRegistrar(t *testing.T) (*axon.Registrar, []reflect.Type) {
	t.Helper()

	store := axon.NewStore()
	types := axon.NewTypeRegistry()

	require.NoError(t, axon.Annotate[createUser](store).Declare(
		"axon::field user_name Name string",
		"axon::field age Age int",
	))
	require.NoError(t, axon.RegisterForm[createUser](types, store, "CreateUser"))

	users := axon.Annotate[userController](store)
	users.Method("Get").Get("/:id").RouteParam(0, "id", axon.TypeInteger)
	users.Method("Slug").Get("/:id").RouteParam(0, "id", axon.TypeString)
	users.Method("Strict").Get("/:id/strict").RouteParam(0, "id", axon.TypeInteger)
	require.NoError(t, users.Method("Create").Declare(
		"//axon::route POST /",
		"//axon::param 0 body CreateUser",
	))
	users.Method("Fail").Get("/:id/fail").RouteParam(0, "id", axon.TypeInteger)
	users.Method("Remove").Delete("/:id").RouteParam(0, "id", axon.TypeInteger)
	users.Method("Raw").Get("/raw/bytes")

	axon.Annotate[fallbackController](store).
		Method("Strict").Get("/:id/strict").RouteParam(0, "id", axon.TypeString)

	probe := axon.Annotate[probeController](store)
	probe.Method("Search").Get("/query").
		QueryParam(0, "q", axon.TypeString).
		QueryParam(1, "limit", axon.TypeInteger)
	probe.Method("WhoAmI").Get("/header").HeaderParam(0, "X-Token", axon.TypeString)

	lookup := axon.Annotate[lookupController](store)
	lookup.Method("ByID").Get("/:id").RouteParam(0, "id", axon.TypeInteger)
	lookup.Method("ByName").Get("/{name}").RouteParam(0, "name", axon.TypeString)

	axon.Annotate[fileController](store).
		Method("Fetch").Get("/*").RouteParam(0, "*", axon.TypeString)

	r := axon.NewRegistrar(
		axon.WithStore(store),
		axon.WithTypeRegistry(types),
		axon.WithLogger(axon.NopLogger{}),
	)
	require.NoError(t, axon.RegisterController[userController](r, "/users"))
	require.NoError(t, axon.RegisterController[fallbackController](r, "/users"))
	require.NoError(t, axon.RegisterController[probeController](r, "/probe"))
	require.NoError(t, axon.RegisterController[lookupController](r, "/lookup"))
	require.NoError(t, axon.RegisterController[fileController](r, "/files"))

	return r, []reflect.Type{
		axon.TypeOf[userController](),
		axon.TypeOf[fallbackController](),
		axon.TypeOf[probeController](),
		axon.TypeOf[lookupController](),
		axon.TypeOf[fileController](),
	}
}

type adapterCase struct {
	name        string
	method      string
	target      string
	body        string
	contentType string
	headers     map[string]string
	status      int
	json        string
	text        string
}

func adapterCases() []adapterCase {
	return []adapterCase{
		{name: "integer route param", method: "GET", target: "/users/5", status: 200, json: `{"id":5}`},
		{name: "leading integer digits", method: "GET", target: "/users/0007", status: 200, json: `{"id":7}`},
		{name: "falls through to string handler", method: "GET", target: "/users/abc", status: 200, text: "slug:abc"},
		{name: "falls through across mounts", method: "GET", target: "/users/abc/strict", status: 200, text: "fallback:abc"},
		{name: "first satisfied handler wins", method: "GET", target: "/users/4/strict", status: 200, json: `8`},
		{
			name: "json form body", method: "POST", target: "/users",
			body: `{"user_name":" ann ","age":30}`, contentType: "application/json",
			status: 201, json: `{"name":"ann","age":30}`,
		},
		{
			name: "urlencoded form body", method: "POST", target: "/users",
			body: "user_name=bob&age=41", contentType: "application/x-www-form-urlencoded",
			status: 201, json: `{"name":"bob","age":41}`,
		},
		{
			name: "form with missing field is unsatisfied", method: "POST", target: "/users",
			body: `{"user_name":"ann"}`, contentType: "application/json",
			status: 404,
		},
		{
			name: "fractional age is unsatisfied", method: "POST", target: "/users",
			body: `{"user_name":"ann","age":30.5}`, contentType: "application/json",
			status: 404,
		},
		{name: "http error from handler", method: "GET", target: "/users/7/fail", status: 404, json: `{"status_code":404,"message":"no user"}`},
		{name: "empty result", method: "DELETE", target: "/users/3", status: 200, text: ""},
		{name: "byte result", method: "GET", target: "/users/raw/bytes", status: 200, text: "\x01\x02"},
		{name: "query params", method: "GET", target: "/probe/query?q=go&limit=2", status: 200, json: `["go","go"]`},
		{name: "repeated query key is absent", method: "GET", target: "/probe/query?q=a&q=b&limit=1", status: 404},
		{name: "header param", method: "GET", target: "/probe/header", headers: map[string]string{"X-Token": "abc"}, status: 200, text: "abc"},
		{name: "missing header", method: "GET", target: "/probe/header", status: 404},
		{name: "differently named params share a route", method: "GET", target: "/lookup/5", status: 200, text: "id:5"},
		{name: "renamed param falls through", method: "GET", target: "/lookup/abc", status: 200, text: "name:abc"},
		{name: "wildcard value", method: "GET", target: "/files/a/b", status: 200, text: "file:a/b"},
	}
}

func (c adapterCase) request() *http.Request {
	var req *http.Request
	if c.body != "" {
		req = httptest.NewRequest(c.method, c.target, strings.NewReader(c.body))
	} else {
		req = httptest.NewRequest(c.method, c.target, nil)
	}
	if c.contentType != "" {
		req.Header.Set("Content-Type", c.contentType)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	return req
}

func (c adapterCase) check(t *testing.T, status int, body string) {
	t.Helper()
	assert.Equal(t, c.status, status)
	if c.status >= 300 && c.json == "" {
		return
	}
	if c.json != "" {
		assert.JSONEq(t, c.json, body)
		return
	}
	assert.Equal(t, c.text, body)
}
