package health

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const checkTimeout = 2 * time.Second

// Check пингует одну зависимость.
type Check func(ctx context.Context) error

type Handler struct {
	log        *slog.Logger
	middleware huma.Middlewares
	checks     map[string]Check
}

// NewHandler: checks - имя зависимости -> проверка. Пустой набор дает всегда OK.
func NewHandler(log *slog.Logger, middleware huma.Middlewares, checks map[string]Check) *Handler {
	return &Handler{
		log:        log.With("component", "health"),
		middleware: middleware,
		checks:     checks,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	out := &Output{
		Status: http.StatusOK,
		Body:   Response{Status: StatusOK},
	}
	if len(h.checks) == 0 {
		return out, nil
	}

	out.Body.Checks = make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := h.run(ctx, check); err != nil {
			h.log.Warn("dependency unavailable", "dependency", name, "error", err)
			out.Body.Checks[name] = checkUnavailable
			out.Body.Status = StatusDegraded
			out.Status = http.StatusServiceUnavailable
			continue
		}
		out.Body.Checks[name] = checkOK
	}

	return out, nil
}

func (h *Handler) run(ctx context.Context, check Check) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	return check(ctx)
}
