// GET  /api/v1/health                      # Проверка (публичный)
// POST /api/v1/user/register               # Регистрация (публичный)
// POST /api/v1/user/login                  # Логин (публичный)
// POST /api/v1/user/logout                 # Выход (auth)
// GET  /api/v1/user/profile                # Профиль (auth)
// PUT  /api/v1/user/profile                # Сохранить имя (auth)
// POST /api/v1/qrcodes                     # Создать QR-код (auth)
// GET  /api/v1/qrcodes                     # Список QR-кодов (auth)
// GET  /api/v1/qrcodes/{id}                # Получить QR-код (auth)
// PATCH /api/v1/qrcodes/{id}/destination   # Изменить адрес dynamic-кода (auth)
// GET  /api/v1/content-types               # Справочник типов (публичный)
// GET  /r/{id}                             # Редирект dynamic-кода (публичный)
// GET  /metrics                            # Prometheus

package api

import (
	healthAPI "qrkeeper/internal/app/server/api/http/health"
	"qrkeeper/internal/app/server/api/http/middleware"
	"qrkeeper/internal/app/server/api/http/middleware/auth"
	"qrkeeper/internal/app/server/api/http/middleware/logger"
	qrcodeAPI "qrkeeper/internal/app/server/api/http/qrcode"
	redirectAPI "qrkeeper/internal/app/server/api/http/redirect"
	userAPI "qrkeeper/internal/app/server/api/http/user"
	"qrkeeper/internal/app/server/config"
	"qrkeeper/internal/domain/qrcode"
	"qrkeeper/internal/domain/session"
	"qrkeeper/internal/domain/user"
	"qrkeeper/internal/infrastructure/cache"
	"qrkeeper/internal/infrastructure/metrics"
	"qrkeeper/internal/infrastructure/storage/postgres"

	"github.com/bwmarrin/snowflake"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"
)

// Deps - внешние ресурсы, которые собирает main.
type Deps struct {
	Config   *config.Config
	Storage  *postgres.Storage
	Blobs    qrcode.BlobStore
	Cache    *cache.DestinationCache // nil, если Redis выключен
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Node     *snowflake.Node
}

type Handlers struct {
	Health   *healthAPI.Handler
	User     *userAPI.Handler
	QRCode   *qrcodeAPI.Handler
	Redirect *redirectAPI.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(deps Deps, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("QRKeeper API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(deps, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.QRCode.SetupRoutes(API)
	h.Redirect.SetupRoutes(API)

	if deps.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	return mux
}

func handlers(deps Deps, log *slog.Logger) *Handlers {
	pool := deps.Storage.Pool()

	sessionRepo := postgres.NewSessionRepository(pool, log)
	sessionService := session.NewService(sessionRepo, deps.Config.Session.TTL, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log, observer(deps.Metrics))
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear(), healthChecks(deps))

	userRepo := postgres.NewUserRepository(pool, log)
	userService := user.NewService(userRepo, user.NewPasswordValidator(), log)
	middlewares.Add(loggerMW.Middleware())
	public := middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log, public, middlewares.GetAllAndClear())

	qrRepo := postgres.NewQRCodeRepository(pool, deps.Node, log)
	opts := []qrcode.Option{}
	if deps.Cache != nil {
		opts = append(opts, qrcode.WithCache(deps.Cache))
	}
	if deps.Metrics != nil {
		opts = append(opts, qrcode.WithRecorder(deps.Metrics))
	}
	qrService := qrcode.NewService(qrRepo, deps.Blobs, deps.Config.Hosting.BaseURL, log, opts...)
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	protected := middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware())
	qrHandler := qrcodeAPI.NewHandler(qrService, deps.Config.Hosting.BaseURL, log, protected, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	redirectHandler := redirectAPI.NewHandler(qrService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:   healthHandler,
		User:     userHandler,
		QRCode:   qrHandler,
		Redirect: redirectHandler,
	}
}

func healthChecks(deps Deps) map[string]healthAPI.Check {
	checks := map[string]healthAPI.Check{
		"postgres": deps.Storage.Pool().Ping,
	}
	if deps.Cache != nil {
		checks["redis"] = deps.Cache.Ping
	}
	return checks
}

// observer не дает положить nil *Metrics в интерфейс.
func observer(m *metrics.Metrics) logger.Observer {
	if m == nil {
		return nil
	}
	return m
}
