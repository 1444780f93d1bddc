package profile

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"qrkeeper/cmd/client/cmd/types"
)

// ProfileCmd показывает профиль текущего пользователя
var ProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Профиль пользователя",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		p, err := app.Profile(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения профиля: %w", err)
		}

		name := p.Name
		if name == "" {
			name = color.HiBlackString("(не задано)")
		}
		fmt.Printf("Login:  %s\n", p.Login)
		fmt.Printf("Имя:    %s\n", name)
		fmt.Printf("С нами: %s\n", p.CreatedAt.Format("2006-01-02"))
		return nil
	},
}

var NameCmd = &cobra.Command{
	Use:   "name <имя>",
	Short: "Сохранить отображаемое имя",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		p, err := app.SaveName(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("ошибка сохранения имени: %w", err)
		}

		color.Green("✅ Имя сохранено: %s", p.Name)
		return nil
	},
}

func init() {
	ProfileCmd.AddCommand(NameCmd)
}
