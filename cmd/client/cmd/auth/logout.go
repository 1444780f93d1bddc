package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"qrkeeper/cmd/client/cmd/types"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из системы",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		if err := app.Logout(cmd.Context()); err != nil {
			color.Yellow("⚠️  Сессия на сервере не отозвана: %v", err)
		}

		fmt.Println("Локальный токен удален")
		return nil
	},
}
