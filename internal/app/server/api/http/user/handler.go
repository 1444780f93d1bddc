package user

import (
	"context"
	"errors"

	"qrkeeper/internal/app/server/api/http/middleware/auth"
	"qrkeeper/internal/domain/session"
	"qrkeeper/internal/domain/user"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    user.Servicer
	session    session.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
	protected  huma.Middlewares
}

// NewHandler: middleware для публичных операций, protected для операций с токеном.
func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, middleware, protected huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		session:    session,
		log:        log,
		middleware: middleware,
		protected:  protected,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
	huma.Register(api, h.profileOp(), h.profile)
	huma.Register(api, h.saveNameOp(), h.saveName)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	userID, err := h.service.Register(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidInput):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		case errors.Is(err, user.ErrLoginTaken):
			return nil, huma.Error409Conflict("Login already taken")
		}
		h.log.Error("register failed", "login", input.Body.Login, "error", err)
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	return &registerOutput{
		Body: RegisterResponse{ID: userID, Status: "Ok"},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) || errors.Is(err, user.ErrInvalidAuth) {
			return nil, huma.Error401Unauthorized("Invalid credentials")
		}
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		h.log.Error("create session failed", "user_id", u.ID, "error", err)
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	return &loginOutput{
		Body: LoginResponse{Token: token, Status: "Ok"},
	}, nil
}

func (h *Handler) logout(ctx context.Context, _ *struct{}) (*logoutOutput, error) {
	token, ok := auth.GetToken(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.session.Revoke(ctx, token); err != nil {
		h.log.Error("revoke session failed", "error", err)
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	return &logoutOutput{Body: StatusResponse{Status: "Ok"}}, nil
}

func (h *Handler) profile(ctx context.Context, _ *struct{}) (*profileOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	p, err := h.service.Profile(ctx, userID)
	if err != nil {
		return nil, profileError(err)
	}
	return &profileOutput{Body: p}, nil
}

func (h *Handler) saveName(ctx context.Context, input *saveNameInput) (*profileOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	p, err := h.service.SaveName(ctx, userID, input.Body.Name)
	if err != nil {
		return nil, profileError(err)
	}
	return &profileOutput{Body: p}, nil
}

func profileError(err error) error {
	switch {
	case errors.Is(err, user.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, user.ErrNotFound):
		return huma.Error404NotFound("User not found")
	}
	return huma.Error500InternalServerError("Internal server error")
}
