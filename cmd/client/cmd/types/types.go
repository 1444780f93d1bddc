package types

import (
	"context"
	"fmt"

	"qrkeeper/internal/app/client"
)

type contextKey string

// ClientAppKey - ключ, под которым root кладет *client.App в контекст команды.
const ClientAppKey contextKey = "app"

// App достает приложение из контекста команды.
func App(ctx context.Context) (*client.App, error) {
	app, ok := ctx.Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}
