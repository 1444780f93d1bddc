package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, login, passwordHash string) (int, error) {
	args := m.Called(ctx, login, passwordHash)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) FindByLogin(ctx context.Context, login string) (User, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) UpdateName(ctx context.Context, id int, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

const strongPassword = "P@ssw0rd123!"

func newService(repo *MockRepository) *Service {
	return NewService(repo, NewPasswordValidator(), slog.Default())
}

func TestService_Register(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo)

	login := "testuser"

	// хэш заранее неизвестен, проверяем что это bcrypt от нужного пароля
	mockRepo.On("Create", mock.Anything, login, mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(strongPassword)) == nil
	})).Return(123, nil)

	userID, err := service.Register(context.Background(), login, strongPassword)
	assert.NoError(t, err)
	assert.Equal(t, 123, userID)

	mockRepo.AssertExpectations(t)
}

func TestService_Register_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo)

	mockRepo.On("Create", mock.Anything, "testuser", mock.AnythingOfType("string")).Return(0, errors.New("database error"))

	_, err := service.Register(context.Background(), "testuser", strongPassword)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")

	mockRepo.AssertExpectations(t)
}

func TestService_Register_LoginTaken(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo)

	mockRepo.On("Create", mock.Anything, "testuser", mock.AnythingOfType("string")).Return(0, ErrLoginTaken)

	_, err := service.Register(context.Background(), "testuser", strongPassword)
	assert.ErrorIs(t, err, ErrLoginTaken)
}

func TestService_Register_EdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		login    string
		password string
	}{
		{name: "Empty login", login: "", password: strongPassword},
		{name: "Empty password", login: "testuser", password: ""},
		{name: "Short password", login: "testuser", password: "Ab1!"},
		{name: "Weak password", login: "testuser", password: "password123"},
		{name: "Too long password", login: "testuser", password: "Aa1!" + string(make([]byte, 80))},
		{name: "Bad login", login: "user name", password: strongPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := newService(mockRepo)

			_, err := service.Register(context.Background(), tt.login, tt.password)
			assert.ErrorIs(t, err, ErrInvalidInput)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte(strongPassword), bcrypt.MinCost)
	require.NoError(t, err)
	stored := User{ID: 123, Login: "testuser", Password: string(hash)}

	tests := []struct {
		name        string
		login       string
		password    string
		setupMock   func(*MockRepository)
		expectedErr error
	}{
		{
			name:     "success",
			login:    "testuser",
			password: strongPassword,
			setupMock: func(m *MockRepository) {
				m.On("FindByLogin", mock.Anything, "testuser").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			login:    "testuser",
			password: "Wr0ng!pass",
			setupMock: func(m *MockRepository) {
				m.On("FindByLogin", mock.Anything, "testuser").Return(stored, nil)
			},
			expectedErr: ErrInvalidAuth,
		},
		{
			name:     "unknown user",
			login:    "nobody",
			password: strongPassword,
			setupMock: func(m *MockRepository) {
				m.On("FindByLogin", mock.Anything, "nobody").Return(User{}, ErrNotFound)
			},
			expectedErr: ErrNotFound,
		},
		{
			name:     "invalid hash",
			login:    "testuser",
			password: strongPassword,
			setupMock: func(m *MockRepository) {
				m.On("FindByLogin", mock.Anything, "testuser").Return(User{ID: 1, Password: "invalidhash"}, nil)
			},
			expectedErr: ErrInvalidAuth,
		},
		{
			name:        "malformed login skips lookup",
			login:       "",
			password:    strongPassword,
			setupMock:   func(*MockRepository) {},
			expectedErr: ErrInvalidAuth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			tt.setupMock(mockRepo)
			service := newService(mockRepo)

			u, err := service.Authenticate(context.Background(), tt.login, tt.password)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, stored, u)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_SaveName(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("trims and saves", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newService(mockRepo)

		mockRepo.On("UpdateName", mock.Anything, 5, "Ana Souza").Return(nil)
		mockRepo.On("FindByID", mock.Anything, 5).Return(User{ID: 5, Login: "ana", Name: "Ana Souza", CreatedAt: created}, nil)

		p, err := service.SaveName(context.Background(), 5, "  Ana Souza ")
		require.NoError(t, err)
		assert.Equal(t, Profile{ID: 5, Login: "ana", Name: "Ana Souza", CreatedAt: created}, p)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty name", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newService(mockRepo)

		_, err := service.SaveName(context.Background(), 5, "   ")
		assert.ErrorIs(t, err, ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "UpdateName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing user", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := newService(mockRepo)
		mockRepo.On("UpdateName", mock.Anything, 9, "Bob").Return(ErrNotFound)

		_, err := service.SaveName(context.Background(), 9, "Bob")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_Profile(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo)
	mockRepo.On("FindByID", mock.Anything, 1).Return(User{ID: 1, Login: "ana", Password: "secret-hash"}, nil)

	p, err := service.Profile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "ana", p.Login)
}
