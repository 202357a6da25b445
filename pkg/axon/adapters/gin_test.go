package adapters

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/axonbind/pkg/axon"
)

func init() {
	// Set Gin to test mode to reduce noise in test output
	gin.SetMode(gin.TestMode)
}

func TestGinApp_Dispatch(t *testing.T) {
	r, controllers := newTestRegistrar(t)
	engine, err := BootstrapGin(r, controllers...)
	require.NoError(t, err)

	for _, tc := range adapterCases() {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, tc.request())
			tc.check(t, rec.Code, rec.Body.String())
		})
	}
}

func TestGinApp_Name(t *testing.T) {
	assert.Equal(t, "Gin", NewDefaultGinApp().Name())
}

func TestGinApp_PathConversion(t *testing.T) {
	assert.Equal(t, "/users/:id", ginPath("/users/{id:int}"))
	assert.Equal(t, "/users/:id/posts/:post", ginPath("/users/:id/posts/{post}"))
	assert.Equal(t, "/files/*path", ginPath("/files/*"))
	assert.Equal(t, "/files/*path", ginPath("/files/{*}"))
}

func TestGinApp_RouteConflictIsAnError(t *testing.T) {
	app := NewDefaultGinApp()
	router := axon.NewRouter()
	noop := func(axon.Request, axon.Sender, axon.NextFunc) error { return nil }
	router.Handle(axon.GET, "/a/*", noop)
	router.Handle(axon.GET, "/a/*/b", noop)

	err := app.Mount("/", router)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gin rejected route")
}

func TestGinApp_UnhandledErrorIs500(t *testing.T) {
	app := NewDefaultGinApp()
	router := axon.NewRouter()
	router.Handle(axon.GET, "/boom", func(axon.Request, axon.Sender, axon.NextFunc) error {
		return assert.AnError
	})
	require.NoError(t, app.Mount("/", router))

	rec := httptest.NewRecorder()
	app.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), assert.AnError.Error())
}

func TestGinApp_HandleHTTP(t *testing.T) {
	app := NewDefaultGinApp()
	require.NoError(t, app.HandleHTTP(http.MethodGet, "/plain", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("plain"))
	})))

	rec := httptest.NewRecorder()
	app.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plain", nil))
	assert.Equal(t, "plain", rec.Body.String())
}
