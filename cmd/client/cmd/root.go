// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/exp/slog"

	"qrkeeper/cmd/client/cmd/auth"
	"qrkeeper/cmd/client/cmd/profile"
	"qrkeeper/cmd/client/cmd/qr"
	"qrkeeper/cmd/client/cmd/types"
	"qrkeeper/internal/app/client"
	"qrkeeper/internal/app/client/config"
	"qrkeeper/internal/utils/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	debug     bool
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "qrkeeper",
	Short: "QRKeeper - клиент для создания и редактирования QR-кодов",
	Long: `QRKeeper создает static и dynamic QR-коды, хранит их в профиле
и позволяет менять адрес назначения dynamic-кодов без перепечатки.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.MustLoad(cfgFile)

	// Переопределяем настройки из флагов командной строки
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	log = logger.NewCLI(debug, cfg.LogLevel)

	var err error
	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, types.ClientAppKey, app))
	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл (yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера QRKeeper (host:port)")

	auth.AuthCmd.AddCommand(auth.LoginCmd, auth.RegisterCmd, auth.LogoutCmd)
	rootCmd.AddCommand(auth.AuthCmd, qr.QRCmd, profile.ProfileCmd)
}
