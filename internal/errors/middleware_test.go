package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielsutton1/Jewelia-sub026/internal/domain"
)

func runMiddleware(t *testing.T, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Use(Middleware())
	e.GET("/test", handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_NoError(t *testing.T) {
	rec := runMiddleware(t, func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMiddleware_StructuredError(t *testing.T) {
	rec := runMiddleware(t, func(echo.Context) error {
		return ValidationError("tenant identifier is required")
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, "tenant identifier is required", resp.Error)
}

func TestMiddleware_DomainError(t *testing.T) {
	rec := runMiddleware(t, func(echo.Context) error {
		return domain.ErrOrderNotFound
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMiddleware_UnknownErrorHidesDetail(t *testing.T) {
	rec := runMiddleware(t, func(echo.Context) error {
		return stderrors.New("pgx: password authentication failed")
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password", "internal detail must not leak")
}

func TestMiddleware_EchoHTTPErrorPassesThrough(t *testing.T) {
	rec := runMiddleware(t, func(echo.Context) error {
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
	})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
