package qrcode

import (
	"context"
	"errors"

	"qrkeeper/internal/app/server/api/http/middleware/auth"
	"qrkeeper/internal/domain/qrcode"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    qrcode.Servicer
	baseURL    string
	log        *slog.Logger
	middleware huma.Middlewares
	public     huma.Middlewares
}

// NewHandler: mws навешиваются на операции владельца, public на справочник типов.
func NewHandler(service qrcode.Servicer, baseURL string, log *slog.Logger, mws, public huma.Middlewares) *Handler {
	if baseURL == "" {
		baseURL = qrcode.DefaultHostingBaseURL
	}
	return &Handler{
		service:    service,
		baseURL:    baseURL,
		log:        log,
		middleware: mws,
		public:     public,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.generateOp(), h.generate)
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.updateDestinationOp(), h.updateDestination)
	huma.Register(api, h.contentTypesOp(), h.contentTypes)
}

func (h *Handler) generate(ctx context.Context, input *generateInput) (*generateOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	res, err := h.service.Generate(ctx, userID, input.Body)
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &generateOutput{
		Body: GenerateResponse{
			GenerateResult: res,
			Link:           qrcode.Link(h.baseURL, res.ID),
			Status:         "Ok",
		},
	}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	items, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, toHTTPError(err)
	}
	if items == nil {
		items = []qrcode.ListItem{}
	}

	return &listOutput{Body: ListResponse{Items: items}}, nil
}

func (h *Handler) get(ctx context.Context, input *getInput) (*itemOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	item, err := h.service.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &itemOutput{Body: item}, nil
}

func (h *Handler) updateDestination(ctx context.Context, input *updateDestinationInput) (*itemOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	item, err := h.service.UpdateDestination(ctx, userID, input.ID, input.Body.DestinationURL)
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &itemOutput{Body: item}, nil
}

func (h *Handler) contentTypes(_ context.Context, _ *struct{}) (*contentTypesOutput, error) {
	types := qrcode.ContentTypes()
	out := make([]ContentTypeInfo, 0, len(types))
	for _, c := range types {
		out = append(out, ContentTypeInfo{
			Value:       c,
			DisplayName: c.DisplayName(),
			Placeholder: c.Placeholder(),
		})
	}
	return &contentTypesOutput{Body: out}, nil
}

// toHTTPError переводит вид ошибки сервиса в HTTP-статус.
// Причину I/O-ошибок наружу не отдаем.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, qrcode.ErrEmptyInput), errors.Is(err, qrcode.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, qrcode.ErrUnauthenticated):
		return huma.Error401Unauthorized("Unauthorized")
	case errors.Is(err, qrcode.ErrNotFound):
		return huma.Error404NotFound("QR code not found")
	case errors.Is(err, qrcode.ErrNotDynamic):
		return huma.Error409Conflict("Only dynamic QR codes can change destination")
	case errors.Is(err, qrcode.ErrUpload):
		return huma.Error502BadGateway("Logo upload failed")
	default:
		return huma.Error500InternalServerError("Internal server error")
	}
}
