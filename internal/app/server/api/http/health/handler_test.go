package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func ok(context.Context) error { return nil }

func TestHandler_healthCheck(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]Check
		wantCode   int
		wantStatus string
		wantChecks map[string]string
	}{
		{
			name:       "no dependencies configured",
			wantCode:   http.StatusOK,
			wantStatus: StatusOK,
		},
		{
			name:       "postgres and redis up",
			checks:     map[string]Check{"postgres": ok, "redis": ok},
			wantCode:   http.StatusOK,
			wantStatus: StatusOK,
			wantChecks: map[string]string{"postgres": "ok", "redis": "ok"},
		},
		{
			name: "redis down",
			checks: map[string]Check{
				"postgres": ok,
				"redis":    func(context.Context) error { return errors.New("ping redis: connection refused") },
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: StatusDegraded,
			wantChecks: map[string]string{"postgres": "ok", "redis": "unavailable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			handler := NewHandler(slog.Default(), huma.Middlewares{}, tt.checks)

			// Act
			output, err := handler.healthCheck(context.Background(), &Input{})

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, output.Status)
			assert.Equal(t, tt.wantStatus, output.Body.Status)
			assert.Equal(t, tt.wantChecks, output.Body.Checks)
		})
	}
}

func TestHandler_CheckGetsDeadline(t *testing.T) {
	var hasDeadline bool
	handler := NewHandler(slog.Default(), nil, map[string]Check{
		"postgres": func(ctx context.Context) error {
			_, hasDeadline = ctx.Deadline()
			return nil
		},
	})

	_, err := handler.healthCheck(context.Background(), &Input{})

	require.NoError(t, err)
	assert.True(t, hasDeadline)
}

func TestRoutes_Health(t *testing.T) {
	_, api := humatest.New(t)
	NewHandler(slog.Default(), huma.Middlewares{}, map[string]Check{
		"postgres": func(context.Context) error { return errors.New("pool closed") },
	}).SetupRoutes(api)

	resp := api.Get("/api/v1/health")

	require.Equal(t, http.StatusServiceUnavailable, resp.Code)
	var body Response
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, StatusDegraded, body.Status)
	assert.Equal(t, "unavailable", body.Checks["postgres"])
}
