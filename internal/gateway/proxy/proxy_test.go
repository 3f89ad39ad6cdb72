package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProxy_Strip(t *testing.T) {
	var got struct {
		method, path, query, contentType, body string
	}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		got.method = r.Method
		got.path = r.URL.Path
		got.query = r.URL.RawQuery
		got.contentType = r.Header.Get("Content-Type")
		got.body = string(data)

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Upstream", "planner")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer upstream.Close()

	p := New(upstream.URL+"/", time.Second, zap.NewNop())
	app := fiber.New()
	app.All("/api/v1/sessions/*", p.Strip("/api/v1"))

	req := httptest.NewRequest("POST", "/api/v1/sessions/abc/room?debug=1", strings.NewReader(`{"width":10}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, `{"ok":true}`, string(body))
	assert.Equal(t, "planner", resp.Header.Get("X-Upstream"))

	assert.Equal(t, "POST", got.method)
	assert.Equal(t, "/sessions/abc/room", got.path)
	assert.Equal(t, "debug=1", got.query)
	assert.Equal(t, "application/json", got.contentType)
	assert.Equal(t, `{"width":10}`, got.body)
}

func TestProxy_UpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	p := New(url, time.Second, zap.NewNop())
	app := fiber.New()
	app.Get("/api/v1/catalog", p.Strip("/api/v1"))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/catalog", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	require.Error(t, p.Ping("/health/ready"))
}

func TestProxy_Ping(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health/ready" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	p := New(upstream.URL, time.Second, nil)
	require.NoError(t, p.Ping("/health/ready"))

	var statusErr *StatusError
	require.ErrorAs(t, p.Ping("/health/live"), &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
}
