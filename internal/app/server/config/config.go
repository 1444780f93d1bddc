package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultHostingBaseURL = "https://qrcode-7bd9a.web.app"
)

type Config struct {
	Env     string
	DB      DB
	Server  Server
	Logger  Logger
	Hosting Hosting
	Blob    Blob
	Redis   Redis
	Session Session
	NodeID  int64
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress      string `env:"RUN_ADDRESS"`
	ShutdownTimeout time.Duration
}

// Logger пустой LogLevel оставляет уровень окружения.
type Logger struct {
	LogLevel string `env:"LOG_LEVEL"`
}

// Hosting - адрес, под которым развернут редирект для dynamic-кодов.
type Hosting struct {
	BaseURL string `env:"HOSTING_BASE_URL"`
}

type Blob struct {
	Endpoint  string `env:"BLOB_ENDPOINT"`
	AccessKey string `env:"BLOB_ACCESS_KEY"`
	SecretKey string `env:"BLOB_SECRET_KEY"`
	Bucket    string `env:"BLOB_BUCKET"`
	UseSSL    bool   `env:"BLOB_USE_SSL"`
	PublicURL string `env:"BLOB_PUBLIC_URL"`
}

// Redis пустой Addr выключает кэш.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"`
	TTL      time.Duration
}

type Session struct {
	TTL time.Duration
}

func MustLoad() *Config {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Fatalf("load %s: %v", envPath, err)
		}
	} else {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", EnvLocal)
	viper.SetDefault("RUN_ADDRESS", ":8080")
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("HOSTING_BASE_URL", defaultHostingBaseURL)
	viper.SetDefault("BLOB_BUCKET", "qrkeeper")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL", "10m")
	viper.SetDefault("SESSION_TTL", "24h")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	viper.SetDefault("NODE_ID", 1)

	cfg := &Config{
		Env: viper.GetString("APP_ENV"),
		DB: DB{
			DatabaseURI: viper.GetString("DATABASE_URI"),
			Migrations:  viper.GetString("MIGRATIONS_PATH"),
		},
		Server: Server{
			RunAddress:      viper.GetString("RUN_ADDRESS"),
			ShutdownTimeout: viper.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Logger:  Logger{LogLevel: viper.GetString("LOG_LEVEL")},
		Hosting: Hosting{BaseURL: strings.TrimRight(viper.GetString("HOSTING_BASE_URL"), "/")},
		Blob: Blob{
			Endpoint:  viper.GetString("BLOB_ENDPOINT"),
			AccessKey: viper.GetString("BLOB_ACCESS_KEY"),
			SecretKey: viper.GetString("BLOB_SECRET_KEY"),
			Bucket:    viper.GetString("BLOB_BUCKET"),
			UseSSL:    viper.GetBool("BLOB_USE_SSL"),
			PublicURL: viper.GetString("BLOB_PUBLIC_URL"),
		},
		Redis: Redis{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			TTL:      viper.GetDuration("CACHE_TTL"),
		},
		Session: Session{TTL: viper.GetDuration("SESSION_TTL")},
		NodeID:  viper.GetInt64("NODE_ID"),
	}

	if cfg.DB.DatabaseURI == "" {
		log.Fatalln("DATABASE_URI is required")
	}

	return cfg
}
