package redirect

import (
	"context"
	"errors"
	"net/http"

	"qrkeeper/internal/domain/qrcode"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    qrcode.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service qrcode.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.resolveOp(), h.resolve)
}

func (h *Handler) resolve(ctx context.Context, input *Input) (*Output, error) {
	dest, err := h.service.Resolve(ctx, input.ID)
	if err != nil {
		if errors.Is(err, qrcode.ErrNotFound) {
			return nil, huma.Error404NotFound("QR code not found")
		}
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	return &Output{
		Status:   http.StatusFound,
		Location: dest,
	}, nil
}
