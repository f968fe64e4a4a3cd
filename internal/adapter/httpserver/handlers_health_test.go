package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielsutton1/Jewelia-sub026/internal/notify"
)

func newHealthTestServer(t *testing.T, checks []HealthCheck) *httptest.Server {
	t.Helper()
	hub := notify.NewHub(clockwork.NewRealClock(), 10)
	t.Cleanup(func() { hub.Stop() })

	srv := NewServer(testConfig(), &stubApp{}, hub, checks)
	ts := httptest.NewServer(srv.echo)
	t.Cleanup(ts.Close)
	return ts
}

func TestLiveness(t *testing.T) {
	ts := newHealthTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/health/live")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReadiness_AllChecksPass(t *testing.T) {
	ts := newHealthTestServer(t, []HealthCheck{
		{Name: "postgres", Check: func(context.Context) error { return nil }},
	})

	resp, err := http.Get(ts.URL + "/health/ready")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReadiness_FailingCheck(t *testing.T) {
	ts := newHealthTestServer(t, []HealthCheck{
		{Name: "postgres", Check: func(context.Context) error { return errors.New("connection refused") }},
	})

	resp, err := http.Get(ts.URL + "/health/ready")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
