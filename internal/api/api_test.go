package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tiffincrm/internal/logger"
	"github.com/mesh-intelligence/tiffincrm/internal/service"
	"github.com/mesh-intelligence/tiffincrm/internal/sqlite"
	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// envelope is the decoded response body.
type envelope struct {
	Success       bool            `json:"success"`
	Data          json.RawMessage `json:"data"`
	Message       string          `json:"message"`
	Error         string          `json:"error"`
	Count         *int            `json:"count"`
	RequestedPath string          `json:"requested_path"`
}

func (e envelope) decode(t *testing.T, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, dst))
}

type testAPI struct {
	backend *sqlite.Backend
	router  *gin.Engine
}

// setupAPI builds a router over a seeded SQLite backend in a temp dir.
func setupAPI(t *testing.T, mutate ...func(*Deps)) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })

	log := logger.Discard()
	d := Deps{
		Customers:   service.NewCustomerService(b, log),
		Menu:        service.NewMenuService(b, log),
		Orders:      service.NewOrderService(b, log),
		DB:          b,
		Logger:      log,
		CORSOrigins: []string{"http://localhost:3000"},
	}
	for _, m := range mutate {
		m(&d)
	}
	router, err := NewRouter(d)
	require.NoError(t, err)
	return &testAPI{backend: b, router: router}
}

// do sends a request with an optional JSON body and decodes the envelope.
func (a *testAPI) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

// createMenuItem posts a menu item and returns it.
func (a *testAPI) createMenuItem(t *testing.T, body gin.H) types.MenuItem {
	t.Helper()
	w, env := a.do(t, http.MethodPost, "/api/menu", body)
	require.Equal(t, http.StatusCreated, w.Code, env.Error)
	var m types.MenuItem
	env.decode(t, &m)
	return m
}

// createCustomer posts a customer and returns it.
func (a *testAPI) createCustomer(t *testing.T, body gin.H) types.Customer {
	t.Helper()
	w, env := a.do(t, http.MethodPost, "/api/customers", body)
	require.Equal(t, http.StatusCreated, w.Code, env.Error)
	var c types.Customer
	env.decode(t, &c)
	return c
}
