package qrcode

import (
	"context"
	"time"
)

// Repository - хранилище записей QR-кодов.
type Repository interface {
	// ReserveID выдает идентификатор до записи тела, dynamic-кодам он нужен заранее.
	ReserveID(ctx context.Context) (string, error)
	Create(ctx context.Context, rec *Record) error
	List(ctx context.Context, ownerID int) ([]Record, error)
	Get(ctx context.Context, id string) (*Record, error)
	// UpdateDestination меняет только destination_url и updated_at.
	UpdateDestination(ctx context.Context, id, destination string, updatedAt time.Time) error
}

// BlobStore хранит загруженные логотипы.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// DestinationCache кэширует адреса для публичного редиректа.
type DestinationCache interface {
	Get(ctx context.Context, id string) (string, bool, error)
	Set(ctx context.Context, id, destination string) error
	Delete(ctx context.Context, id string) error
}

// Recorder собирает метрики сервиса.
type Recorder interface {
	Generated(kind Kind)
	Updated()
	Redirected(result string)
}
