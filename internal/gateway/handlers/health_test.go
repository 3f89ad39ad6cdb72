package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePinger struct {
	err  error
	path string
}

func (f *fakePinger) Ping(path string) error {
	f.path = path
	return f.err
}

func TestReadinessProbe(t *testing.T) {
	upstream := &fakePinger{}
	app := fiber.New()
	app.Get("/health/live", LivenessProbe)
	app.Get("/health/ready", ReadinessProbe(upstream, zap.NewNop()))

	resp, err := app.Test(httptest.NewRequest("GET", "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/health/ready", upstream.path)

	upstream.err = errors.New("connection refused")
	resp, err = app.Test(httptest.NewRequest("GET", "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
