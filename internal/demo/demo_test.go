package demo

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/axonbind/pkg/axon"
	"github.com/toyz/axonbind/pkg/axon/adapters"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type serveFunc func(req *http.Request) (int, string)

func servers(t *testing.T) map[string]func() serveFunc {
	return map[string]func() serveFunc{
		"gin": func() serveFunc {
			app := setup(t)
			engine, err := adapters.BootstrapGin(app.Registrar, app.Controllers...)
			require.NoError(t, err)
			return func(req *http.Request) (int, string) {
				rec := httptest.NewRecorder()
				engine.ServeHTTP(rec, req)
				return rec.Code, rec.Body.String()
			}
		},
		"echo": func() serveFunc {
			app := setup(t)
			e, err := adapters.BootstrapEcho(app.Registrar, app.Controllers...)
			require.NoError(t, err)
			return func(req *http.Request) (int, string) {
				rec := httptest.NewRecorder()
				e.ServeHTTP(rec, req)
				return rec.Code, rec.Body.String()
			}
		},
		"fiber": func() serveFunc {
			app := setup(t)
			f, err := adapters.BootstrapFiber(app.Registrar, app.Controllers...)
			require.NoError(t, err)
			return func(req *http.Request) (int, string) {
				resp, err := f.Test(req, -1)
				require.NoError(t, err)
				defer resp.Body.Close()
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				return resp.StatusCode, string(body)
			}
		},
	}
}

func setup(t *testing.T) *App {
	t.Helper()
	app, err := Setup(axon.WithLogger(axon.NopLogger{}))
	require.NoError(t, err)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDemo_UserLifecycle(t *testing.T) {
	for name, newServer := range servers(t) {
		t.Run(name, func(t *testing.T) {
			serve := newServer()

			status, body := serve(jsonRequest(http.MethodPost, "/users", `{"name":"Ada","email":"ada@example.com","admin":"on"}`))
			require.Equal(t, http.StatusCreated, status, body)

			var created User
			require.NoError(t, json.Unmarshal([]byte(body), &created))
			assert.Equal(t, 1, created.ID)
			assert.True(t, created.Admin)

			status, body = serve(httptest.NewRequest(http.MethodGet, "/users/1", nil))
			assert.Equal(t, http.StatusOK, status)
			assert.Contains(t, body, `"name":"Ada"`)

			status, body = serve(httptest.NewRequest(http.MethodGet, "/users/ada", nil))
			assert.Equal(t, http.StatusOK, status)
			assert.Contains(t, body, `"id":1`)

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			req.Header.Set("X-Api-Token", created.Token.String())
			status, body = serve(req)
			assert.Equal(t, http.StatusOK, status)
			assert.Contains(t, body, `"email":"ada@example.com"`)

			status, body = serve(jsonRequest(http.MethodPatch, "/users/1", `{"name":"Grace"}`))
			assert.Equal(t, http.StatusOK, status)
			assert.Contains(t, body, `"name":"Grace"`)

			status, body = serve(httptest.NewRequest(http.MethodGet, "/users/search?q=gr&limit=5", nil))
			assert.Equal(t, http.StatusOK, status)
			assert.Contains(t, body, `"Grace"`)

			status, _ = serve(httptest.NewRequest(http.MethodDelete, "/users/1", nil))
			assert.Equal(t, http.StatusOK, status)

			status, body = serve(httptest.NewRequest(http.MethodGet, "/users/1", nil))
			assert.Equal(t, http.StatusNotFound, status)
			assert.JSONEq(t, `{"status_code":404,"message":"user not found"}`, body)
		})
	}
}

func TestDemo_Unsatisfied(t *testing.T) {
	for name, newServer := range servers(t) {
		t.Run(name, func(t *testing.T) {
			serve := newServer()

			status, _ := serve(jsonRequest(http.MethodPost, "/users", `{"name":"Ada"}`))
			assert.Equal(t, http.StatusNotFound, status)

			status, _ = serve(httptest.NewRequest(http.MethodGet, "/users/me", nil))
			assert.Equal(t, http.StatusNotFound, status)

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			req.Header.Set("X-Api-Token", "not-a-uuid")
			status, _ = serve(req)
			assert.Equal(t, http.StatusNotFound, status)

			status, _ = serve(httptest.NewRequest(http.MethodGet, "/users/search?q=a", nil))
			assert.Equal(t, http.StatusNotFound, status)

			status, _ = serve(httptest.NewRequest(http.MethodDelete, "/users/abc", nil))
			assert.Equal(t, http.StatusNotFound, status)
		})
	}
}

func TestDemo_Health(t *testing.T) {
	for name, newServer := range servers(t) {
		t.Run(name, func(t *testing.T) {
			serve := newServer()

			status, body := serve(httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, http.StatusOK, status)
			assert.Contains(t, body, `"status":"ok"`)

			status, body = serve(httptest.NewRequest(http.MethodGet, "/health/ping", nil))
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, "pong", body)
		})
	}
}

func TestSetup_Routes(t *testing.T) {
	app := setup(t)
	routes := app.Registrar.Routes(app.Controllers...)

	var listed []string
	for _, r := range routes {
		listed = append(listed, string(r.Method)+" "+string(r.Path)+" "+r.HandlerName)
	}
	assert.Equal(t, []string{
		"GET /users List",
		"GET /users/search Search",
		"GET /users/me ByToken",
		"GET /users/:id Get",
		"GET /users/:id FindByName",
		"POST /users Create",
		"PATCH /users/:id Rename",
		"DELETE /users/:id Delete",
		"GET /health Health",
		"GET /health/ping Ping",
	}, listed)
}

func TestSearch_RejectsNonPositiveLimit(t *testing.T) {
	_, err := NewUserController().Search("a", 0)
	var httpErr *axon.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
}

func TestNewUserController_Seed(t *testing.T) {
	c := NewUserController(User{ID: 4, Name: "Linus"})
	created := c.Create(CreateUser{Name: "Ken"})

	assert.Equal(t, http.StatusCreated, created.StatusCode)
	assert.Equal(t, 5, created.Body.(User).ID)
	assert.Len(t, c.List(), 2)
}
