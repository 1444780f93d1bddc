package client

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"
	gosync "sync"

	"golang.org/x/exp/slog"

	"qrkeeper/internal/app/client/config"
	"qrkeeper/internal/domain/qrcode"
	"qrkeeper/internal/domain/user"
)

var ErrNotAuthenticated = errors.New("вы не авторизованы. Выполните вход: qrkeeper auth login")

type App struct {
	config        *config.Config
	log           *slog.Logger
	api           API
	cache         RecordCache
	editor        *Editor
	authenticated bool
	mu            gosync.RWMutex
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	httpCl := NewHTTPClient(cfg, log)

	// Инициализируем локальный кэш (используем SQLite)
	var cache RecordCache
	sqliteStorage, err := NewSQLiteStorage(cfg.CachePath)
	if err != nil {
		log.Warn("Не удалось инициализировать SQLite, используем память", "error", err)
		cache = NewMemoryStorage()
	} else {
		cache = sqliteStorage
	}

	return newApp(cfg, log, httpCl, cache), nil
}

func newApp(cfg *config.Config, log *slog.Logger, api API, cache RecordCache) *App {
	app := &App{
		config: cfg,
		log:    log,
		api:    api,
		cache:  cache,
		editor: NewEditor(api, cache, log),
	}

	// Загружаем токен если он есть
	if token, err := app.GetToken(); err == nil && token != "" {
		api.SetToken(token)
		app.authenticated = true
		log.Debug("Токен загружен из файла")
	}

	return app
}

func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) Editor() *Editor {
	return a.editor
}

func (a *App) Close() error {
	return a.cache.Close()
}

func (a *App) CheckConnection(ctx context.Context) error {
	return a.api.HealthCheck(ctx)
}

// IsAuthenticated проверяет, аутентифицирован ли пользователь
func (a *App) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.authenticated
}

// GetToken возвращает сохраненный токен
func (a *App) GetToken() (string, error) {
	tokenBytes, err := os.ReadFile(a.config.TokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotAuthenticated
		}
		return "", fmt.Errorf("ошибка чтения токена: %w", err)
	}
	return strings.TrimSpace(string(tokenBytes)), nil
}

// SaveToken сохраняет токен аутентификации
func (a *App) SaveToken(token string) error {
	if err := os.WriteFile(a.config.TokenPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("ошибка сохранения токена: %w", err)
	}

	a.api.SetToken(token)

	a.mu.Lock()
	a.authenticated = true
	a.mu.Unlock()

	return nil
}

// ClearToken удаляет токен
func (a *App) ClearToken() error {
	a.mu.Lock()
	a.authenticated = false
	a.mu.Unlock()

	a.api.SetToken("")
	if err := os.Remove(a.config.TokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка удаления токена: %w", err)
	}
	return nil
}

// Register регистрирует нового пользователя
func (a *App) Register(ctx context.Context, req user.BaseRequest) error {
	if err := a.api.Register(ctx, req.Login, req.Password); err != nil {
		return err
	}

	a.log.Info("Пользователь успешно зарегистрирован", "login", req.Login)
	return nil
}

// Login выполняет вход пользователя
func (a *App) Login(ctx context.Context, req user.BaseRequest) (string, error) {
	token, err := a.api.Login(ctx, req.Login, req.Password)
	if err != nil {
		return "", err
	}

	if err = a.SaveToken(token); err != nil {
		return "", err
	}

	a.log.Info("Вход выполнен успешно", "login", req.Login)
	return token, nil
}

// Logout отзывает сессию на сервере и удаляет локальный токен.
// Токен удаляется даже если сервер недоступен.
func (a *App) Logout(ctx context.Context) error {
	if !a.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	apiErr := a.api.Logout(ctx)
	if apiErr != nil {
		a.log.Warn("Не удалось отозвать сессию на сервере", "error", apiErr)
	}
	if err := a.ClearToken(); err != nil {
		return err
	}
	return apiErr
}

func (a *App) Profile(ctx context.Context) (user.Profile, error) {
	if !a.IsAuthenticated() {
		return user.Profile{}, ErrNotAuthenticated
	}
	return a.api.Profile(ctx)
}

func (a *App) SaveName(ctx context.Context, name string) (user.Profile, error) {
	if !a.IsAuthenticated() {
		return user.Profile{}, ErrNotAuthenticated
	}
	return a.api.SaveName(ctx, name)
}

func (a *App) ContentTypes(ctx context.Context) ([]ContentTypeInfo, error) {
	return a.api.ContentTypes(ctx)
}

// Generate создает QR-код на сервере.
func (a *App) Generate(ctx context.Context, req qrcode.GenerateRequest) (GenerateResponse, error) {
	if !a.IsAuthenticated() {
		return GenerateResponse{}, ErrNotAuthenticated
	}
	return a.api.Generate(ctx, req)
}

// LoadLogoFile читает локальный файл логотипа для загрузки вместе с Generate.
func LoadLogoFile(path string) (*qrcode.LogoUpload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения логотипа: %w", err)
	}
	return &qrcode.LogoUpload{FileName: path, Data: data}, nil
}

// Records загружает список через редактор: сначала сервер, при ошибке сети локальный кэш.
func (a *App) Records(ctx context.Context) ([]qrcode.ListItem, error) {
	if !a.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	items, err := a.editor.Load(ctx)
	if err == nil {
		return items, nil
	}

	var qrErr *qrcode.Error
	if errors.As(err, &qrErr) {
		return nil, err
	}

	a.log.Warn("Сервер недоступен, показываем локальный кэш", "error", err)
	return a.editor.LoadCached()
}

// Export рендерит QR-код записи и сохраняет PNG в path.
func (a *App) Export(ctx context.Context, id, path string, sizePx int) error {
	if !a.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if sizePx <= 0 {
		sizePx = a.config.RenderSize
	}
	if path == "" {
		path = a.config.ExportFile
	}

	item, err := a.api.GetQRCode(ctx, id)
	if err != nil {
		return err
	}

	var (
		logo     image.Image
		logoSize int
	)
	if item.Logo != nil && item.Logo.ImageRef != "" {
		logoSize = item.Logo.SizePx
		logo, err = a.fetchLogo(ctx, item.Logo.ImageRef)
		if err != nil {
			return err
		}
	}

	img, err := Render(item.EncodedValue, sizePx, item.Style, logo, logoSize)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ошибка создания файла: %w", err)
	}
	defer f.Close()

	if err := ExportPNG(f, img); err != nil {
		return err
	}

	a.log.Info("QR-код экспортирован", "id", id, "path", path)
	return nil
}

func (a *App) fetchLogo(ctx context.Context, ref string) (image.Image, error) {
	data, contentType, err := a.api.FetchImage(ctx, ref)
	if err != nil {
		return nil, err
	}
	if contentType == "" && strings.HasSuffix(strings.ToLower(ref), ".svg") {
		contentType = "image/svg+xml"
	}
	// параметры вида "; charset=" нам не важны
	contentType, _, _ = strings.Cut(contentType, ";")

	logo, err := DecodeLogo(data, strings.TrimSpace(contentType))
	if err != nil {
		return nil, err
	}
	if logo == nil {
		a.log.Warn("Логотип не PNG, экспорт без логотипа", "ref", ref, "content_type", contentType)
	}
	return logo, nil
}
