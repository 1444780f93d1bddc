package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"qrkeeper/internal/app/server/api/http/middleware/auth"
	"qrkeeper/internal/domain/user"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, login, password string) (int, error) {
	args := m.Called(ctx, login, password)
	return args.Int(0), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, login, password string) (user.User, error) {
	args := m.Called(ctx, login, password)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) Profile(ctx context.Context, id int) (user.Profile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.Profile), args.Error(1)
}

func (m *MockUserService) SaveName(ctx context.Context, id int, name string) (user.Profile, error) {
	args := m.Called(ctx, id, name)
	return args.Get(0).(user.Profile), args.Error(1)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, userID int) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) Validate(ctx context.Context, token string) (int, error) {
	args := m.Called(ctx, token)
	return args.Int(0), args.Error(1)
}

func (m *MockSessionService) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.True(t, errors.As(err, &se), "expected huma status error, got %v", err)
	return se.GetStatus()
}

func newHandler() (*Handler, *MockUserService, *MockSessionService) {
	us := new(MockUserService)
	ss := new(MockSessionService)
	return NewHandler(us, ss, slog.Default(), nil, nil), us, ss
}

func TestHandler_Register(t *testing.T) {
	ctx := context.Background()
	req := user.BaseRequest{Login: "alice", Password: "Passw0rd!"}

	tests := []struct {
		name   string
		id     int
		err    error
		status int
	}{
		{name: "success", id: 5},
		{name: "invalid input", err: fmt.Errorf("%w: login too short", user.ErrInvalidInput), status: http.StatusUnprocessableEntity},
		{name: "login taken", err: user.ErrLoginTaken, status: http.StatusConflict},
		{name: "storage failure", err: errors.New("db down"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, us, _ := newHandler()
			us.On("Register", ctx, req.Login, req.Password).Return(tt.id, tt.err)

			out, err := h.register(ctx, &registerInput{Body: req})

			if tt.status != 0 {
				assert.Equal(t, tt.status, statusOf(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, out.Body.ID)
			assert.Equal(t, "Ok", out.Body.Status)
		})
	}
}

func TestHandler_Login(t *testing.T) {
	ctx := context.Background()
	req := user.BaseRequest{Login: "alice", Password: "Passw0rd!"}

	t.Run("success", func(t *testing.T) {
		h, us, ss := newHandler()
		us.On("Authenticate", ctx, "alice", "Passw0rd!").Return(user.User{ID: 5}, nil)
		ss.On("Create", ctx, 5).Return("tok", nil)

		out, err := h.login(ctx, &loginInput{Body: req})

		require.NoError(t, err)
		assert.Equal(t, "tok", out.Body.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		h, us, ss := newHandler()
		us.On("Authenticate", ctx, "alice", "Passw0rd!").Return(user.User{}, user.ErrInvalidAuth)

		_, err := h.login(ctx, &loginInput{Body: req})

		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
		ss.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("session failure", func(t *testing.T) {
		h, us, ss := newHandler()
		us.On("Authenticate", ctx, "alice", "Passw0rd!").Return(user.User{ID: 5}, nil)
		ss.On("Create", ctx, 5).Return("", errors.New("db down"))

		_, err := h.login(ctx, &loginInput{Body: req})

		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	})
}

func TestHandler_Logout(t *testing.T) {
	h, _, ss := newHandler()
	ctx := auth.WithToken(auth.WithUserID(context.Background(), 5), "tok")
	ss.On("Revoke", ctx, "tok").Return(nil)

	out, err := h.logout(ctx, nil)

	require.NoError(t, err)
	assert.Equal(t, "Ok", out.Body.Status)
	ss.AssertExpectations(t)
}

func TestHandler_Profile(t *testing.T) {
	ctx := auth.WithUserID(context.Background(), 5)
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("get", func(t *testing.T) {
		h, us, _ := newHandler()
		p := user.Profile{ID: 5, Login: "alice", Name: "Alice", CreatedAt: created}
		us.On("Profile", ctx, 5).Return(p, nil)

		out, err := h.profile(ctx, nil)

		require.NoError(t, err)
		assert.Equal(t, p, out.Body)
	})

	t.Run("save name", func(t *testing.T) {
		h, us, _ := newHandler()
		p := user.Profile{ID: 5, Login: "alice", Name: "Alice B", CreatedAt: created}
		us.On("SaveName", ctx, 5, "Alice B").Return(p, nil)

		out, err := h.saveName(ctx, &saveNameInput{Body: user.SaveNameRequest{Name: "Alice B"}})

		require.NoError(t, err)
		assert.Equal(t, "Alice B", out.Body.Name)
	})

	t.Run("blank name", func(t *testing.T) {
		h, us, _ := newHandler()
		us.On("SaveName", ctx, 5, " ").Return(user.Profile{}, fmt.Errorf("%w: name is empty", user.ErrInvalidInput))

		_, err := h.saveName(ctx, &saveNameInput{Body: user.SaveNameRequest{Name: " "}})

		assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
	})

	t.Run("no auth", func(t *testing.T) {
		h, _, _ := newHandler()

		_, err := h.profile(context.Background(), nil)

		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})
}
