package qrcode

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"golang.org/x/exp/slog"
)

const (
	RedirectHit      = "hit"
	RedirectMiss     = "miss"
	RedirectNotFound = "not_found"
	RedirectError    = "error"
)

const discardTimeout = 5 * time.Second

type Servicer interface {
	Generate(ctx context.Context, ownerID int, req GenerateRequest) (GenerateResult, error)
	List(ctx context.Context, ownerID int) ([]ListItem, error)
	Get(ctx context.Context, ownerID int, id string) (ListItem, error)
	UpdateDestination(ctx context.Context, ownerID int, id, destination string) (ListItem, error)
	Resolve(ctx context.Context, id string) (string, error)
}

type Service struct {
	repo    Repository
	blobs   BlobStore
	cache   DestinationCache
	metrics Recorder
	baseURL string
	now     func() time.Time
	log     *slog.Logger
}

type Option func(*Service)

// WithCache включает кэш адресов для редиректа.
func WithCache(cache DestinationCache) Option {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.metrics = r
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, blobs BlobStore, baseURL string, log *slog.Logger, opts ...Option) *Service {
	if baseURL == "" {
		baseURL = DefaultHostingBaseURL
	}
	s := &Service{
		repo:    repo,
		blobs:   blobs,
		cache:   noopCache{},
		metrics: noopRecorder{},
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
		log:     log.With("component", "qrcode_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate проверяет ввод, при необходимости загружает логотип, резервирует id
// и записывает ровно одну запись.
func (s *Service) Generate(ctx context.Context, ownerID int, req GenerateRequest) (GenerateResult, error) {
	const op = "generate"

	raw := strings.TrimSpace(req.RawValue)
	if raw == "" {
		return GenerateResult{}, newError(op, ErrEmptyInput, nil)
	}
	if ownerID <= 0 {
		return GenerateResult{}, newError(op, ErrUnauthenticated, nil)
	}

	kind, contentType, style, logo, err := normalizeRequest(req)
	if err != nil {
		return GenerateResult{}, newError(op, ErrInvalidInput, err)
	}

	var logoKey string
	if req.LogoUpload != nil {
		ref, key, err := s.uploadLogo(ctx, ownerID, *req.LogoUpload)
		if err != nil {
			s.log.Error("failed to upload logo", "owner_id", ownerID, "file", req.LogoUpload.FileName, "error", err)
			return GenerateResult{}, newError(op, ErrUpload, err)
		}
		logo.ImageRef = ref
		logoKey = key
	}

	id, err := s.repo.ReserveID(ctx)
	if err != nil {
		s.log.Error("failed to reserve id", "owner_id", ownerID, "error", err)
		s.discardLogo(ctx, logoKey)
		return GenerateResult{}, newError(op, ErrPersistence, err)
	}

	rec := &Record{
		ID:          id,
		Kind:        kind,
		ContentType: contentType,
		RawValue:    raw,
		Style:       style,
		Logo:        logo,
		OwnerID:     ownerID,
		CreatedAt:   s.now().UTC(),
	}
	switch kind {
	case KindStatic:
		rec.EncodedValue = raw
	case KindDynamic:
		rec.EncodedValue = Link(s.baseURL, id)
		rec.DestinationURL = raw
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		s.log.Error("failed to create qr code", "id", id, "owner_id", ownerID, "kind", kind, "error", err)
		s.discardLogo(ctx, logoKey)
		return GenerateResult{}, newError(op, ErrPersistence, err)
	}

	s.metrics.Generated(kind)
	s.log.Info("qr code created", "id", id, "owner_id", ownerID, "kind", kind, "content_type", contentType)

	return GenerateResult{
		ID:           rec.ID,
		EncodedValue: rec.EncodedValue,
		Style:        rec.Style,
		Logo:         rec.Logo,
	}, nil
}

func normalizeRequest(req GenerateRequest) (Kind, ContentType, Style, *Logo, error) {
	kind := req.Kind
	if kind == "" {
		kind = KindStatic
	}
	if err := kind.Validate(); err != nil {
		return "", "", Style{}, nil, err
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = ContentText
	}
	if err := contentType.Validate(); err != nil {
		return "", "", Style{}, nil, err
	}

	style, err := req.Style.Normalize()
	if err != nil {
		return "", "", Style{}, nil, err
	}

	var logo *Logo
	if req.Logo != nil {
		l := *req.Logo
		logo = &l
	}
	if req.LogoUpload != nil {
		if err := req.LogoUpload.validate(); err != nil {
			return "", "", Style{}, nil, err
		}
		if logo == nil {
			logo = &Logo{}
		}
	}
	if logo != nil {
		if logo.SizePx == 0 {
			logo.SizePx = DefaultLogoSize
		}
		if logo.SizePx < MinLogoSize || logo.SizePx > MaxLogoSize {
			return "", "", Style{}, nil, fmt.Errorf("logo size must be in [%d, %d], got %d", MinLogoSize, MaxLogoSize, logo.SizePx)
		}
		if req.LogoUpload == nil && strings.TrimSpace(logo.ImageRef) == "" {
			return "", "", Style{}, nil, fmt.Errorf("logo image is missing")
		}
	}

	return kind, contentType, style, logo, nil
}

// uploadLogo кладет файл в images/{owner}/{millis}_{name} и возвращает адрес и ключ объекта.
func (s *Service) uploadLogo(ctx context.Context, ownerID int, u LogoUpload) (string, string, error) {
	ct := u.mediaType()
	name := slug.Make(strings.TrimSuffix(path.Base(u.FileName), path.Ext(u.FileName)))
	if name == "" {
		name = "logo"
	}
	key := fmt.Sprintf("images/%d/%d_%s.%s", ownerID, s.now().UnixMilli(), name, logoExtensions[ct])

	ref, err := s.blobs.Upload(ctx, key, u.Data, ct)
	if err != nil {
		return "", "", err
	}
	return ref, key, nil
}

// discardLogo удаляет логотип, на который так и не сослалась запись.
// Ошибка только логируется: запрос уже завершился отказом.
func (s *Service) discardLogo(ctx context.Context, key string) {
	if key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), discardTimeout)
	defer cancel()
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.log.Warn("orphaned logo left in blob store", "key", key, "error", err)
		return
	}
	s.log.Debug("orphaned logo removed", "key", key)
}

// List возвращает снимок записей владельца, новые первыми.
func (s *Service) List(ctx context.Context, ownerID int) ([]ListItem, error) {
	const op = "list"
	if ownerID <= 0 {
		return nil, newError(op, ErrUnauthenticated, nil)
	}

	records, err := s.repo.List(ctx, ownerID)
	if err != nil {
		s.log.Error("failed to list qr codes", "owner_id", ownerID, "error", err)
		return nil, newError(op, ErrPersistence, err)
	}

	items := make([]ListItem, len(records))
	for i, r := range records {
		items[i] = s.item(r)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, ownerID int, id string) (ListItem, error) {
	const op = "get"
	if ownerID <= 0 {
		return ListItem{}, newError(op, ErrUnauthenticated, nil)
	}

	rec, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return ListItem{}, lookupError(op, err)
	}
	return s.item(*rec), nil
}

// UpdateDestination меняет адрес dynamic-кода. Остальные поля не трогаются.
func (s *Service) UpdateDestination(ctx context.Context, ownerID int, id, destination string) (ListItem, error) {
	const op = "update destination"

	destination = strings.TrimSpace(destination)
	if destination == "" {
		return ListItem{}, newError(op, ErrEmptyInput, nil)
	}
	if ownerID <= 0 {
		return ListItem{}, newError(op, ErrUnauthenticated, nil)
	}

	rec, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return ListItem{}, lookupError(op, err)
	}
	if rec.Kind != KindDynamic {
		return ListItem{}, newError(op, ErrNotDynamic, nil)
	}

	updatedAt := s.now().UTC()
	if err := s.repo.UpdateDestination(ctx, id, destination, updatedAt); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ListItem{}, newError(op, ErrNotFound, nil)
		}
		s.log.Error("failed to update destination", "id", id, "owner_id", ownerID, "error", err)
		return ListItem{}, newError(op, ErrPersistence, err)
	}

	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.Warn("failed to invalidate destination cache", "id", id, "error", err)
	}

	rec.DestinationURL = destination
	rec.UpdatedAt = &updatedAt
	s.metrics.Updated()
	s.log.Info("destination updated", "id", id, "owner_id", ownerID)

	return s.item(*rec), nil
}

// Resolve возвращает адрес назначения для публичного редиректа.
func (s *Service) Resolve(ctx context.Context, id string) (string, error) {
	const op = "resolve"

	if dest, ok, err := s.cache.Get(ctx, id); err != nil {
		s.log.Warn("destination cache read failed", "id", id, "error", err)
	} else if ok {
		s.metrics.Redirected(RedirectHit)
		return dest, nil
	}

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.metrics.Redirected(RedirectNotFound)
			return "", newError(op, ErrNotFound, nil)
		}
		s.metrics.Redirected(RedirectError)
		s.log.Error("failed to resolve qr code", "id", id, "error", err)
		return "", newError(op, ErrPersistence, err)
	}
	if rec.Kind != KindDynamic {
		s.metrics.Redirected(RedirectNotFound)
		return "", newError(op, ErrNotFound, nil)
	}

	if err := s.cache.Set(ctx, id, rec.DestinationURL); err != nil {
		s.log.Warn("destination cache write failed", "id", id, "error", err)
	}
	s.metrics.Redirected(RedirectMiss)

	return rec.DestinationURL, nil
}

func (s *Service) owned(ctx context.Context, ownerID int, id string) (*Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to get qr code", "id", id, "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("get qr code: %w", err)
	}
	if rec.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *Service) item(r Record) ListItem {
	return ListItem{Record: r, Link: Link(s.baseURL, r.ID)}
}

func lookupError(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return newError(op, ErrNotFound, nil)
	}
	return newError(op, ErrPersistence, err)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (noopCache) Set(context.Context, string, string) error         { return nil }
func (noopCache) Delete(context.Context, string) error              { return nil }

type noopRecorder struct{}

func (noopRecorder) Generated(Kind)    {}
func (noopRecorder) Updated()          {}
func (noopRecorder) Redirected(string) {}
