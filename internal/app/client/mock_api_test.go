package client

import (
	"context"

	"github.com/stretchr/testify/mock"

	"qrkeeper/internal/domain/qrcode"
	"qrkeeper/internal/domain/user"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAPI) Register(ctx context.Context, login, password string) error {
	return m.Called(ctx, login, password).Error(0)
}

func (m *MockAPI) Login(ctx context.Context, login, password string) (string, error) {
	args := m.Called(ctx, login, password)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAPI) Profile(ctx context.Context) (user.Profile, error) {
	args := m.Called(ctx)
	return args.Get(0).(user.Profile), args.Error(1)
}

func (m *MockAPI) SaveName(ctx context.Context, name string) (user.Profile, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(user.Profile), args.Error(1)
}

func (m *MockAPI) Generate(ctx context.Context, req qrcode.GenerateRequest) (GenerateResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(GenerateResponse), args.Error(1)
}

func (m *MockAPI) ListQRCodes(ctx context.Context) ([]qrcode.ListItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]qrcode.ListItem), args.Error(1)
}

func (m *MockAPI) GetQRCode(ctx context.Context, id string) (qrcode.ListItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(qrcode.ListItem), args.Error(1)
}

func (m *MockAPI) UpdateDestination(ctx context.Context, id, destination string) (qrcode.ListItem, error) {
	args := m.Called(ctx, id, destination)
	return args.Get(0).(qrcode.ListItem), args.Error(1)
}

func (m *MockAPI) ContentTypes(ctx context.Context) ([]ContentTypeInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).([]ContentTypeInfo), args.Error(1)
}

func (m *MockAPI) FetchImage(ctx context.Context, ref string) ([]byte, string, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockAPI) SetToken(token string) {
	m.Called(token)
}
