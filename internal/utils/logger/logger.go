package logger

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"qrkeeper/internal/app/server/config"
)

// New собирает логгер под окружение:
// local - цветной вывод с debug, dev - JSON с debug, prod - JSON с info.
// Непустой level (LOG_LEVEL) заменяет уровень окружения.
func New(env, level string) *slog.Logger {
	switch env {
	case config.EnvLocal, "":
		return setupPrettySlog(ParseLevel(level, slog.LevelDebug))
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(level, slog.LevelDebug)}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(level, slog.LevelInfo)}))
	}
}

// ParseLevel понимает debug, info, warn/warning и error. Остальное дает def.
func ParseLevel(level string, def slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return def
	}
}

func setupPrettySlog(level slog.Level) *slog.Logger {
	opts := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: level,
		},
	}

	return slog.New(opts.NewPrettyHandler(os.Stdout))
}

// Err - атрибут ошибки в одну строку.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// NewCLI - логгер для консольного клиента: stderr, чтобы не мешать выводу команд.
// По умолчанию пишет только предупреждения и ошибки, --debug важнее LOG_LEVEL.
func NewCLI(debug bool, level string) *slog.Logger {
	lvl := ParseLevel(level, slog.LevelWarn)
	if debug {
		lvl = slog.LevelDebug
	}
	opts := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: lvl},
	}
	return slog.New(opts.NewPrettyHandler(os.Stderr))
}
