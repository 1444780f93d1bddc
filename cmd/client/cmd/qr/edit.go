// cmd/client/cmd/qr/edit.go
package qr

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"qrkeeper/cmd/client/cmd/types"
	"qrkeeper/internal/domain/qrcode"
)

var editDestination string

var EditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Изменить адрес назначения dynamic-кода",
	Long: `Открывает запись в редакторе и сохраняет новый адрес назначения.

Без --destination новый адрес запрашивается интерактивно. Пустой ввод
не сохраняется, можно ввести адрес еще раз.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}
		id := args[0]

		if _, err := app.Records(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка получения списка: %w", err)
		}

		editor := app.Editor()
		rec, err := editor.Open(id)
		if err != nil {
			return fmt.Errorf("QR-код %s не найден", id)
		}
		defer editor.Cancel()

		if rec.Kind != qrcode.KindDynamic {
			color.Yellow("⚠️  %s - static-код, его содержимое нельзя изменить", id)
			return nil
		}

		if editDestination != "" {
			return save(cmd, id, editDestination)
		}

		_, _, draft := editor.State()
		fmt.Printf("Текущий адрес: %s\n", draft)

		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Print("Новый адрес (пусто - отмена): ")
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "" {
				fmt.Println("Изменение отменено")
				return nil
			}
			editor.SetDraft(line)

			err = save(cmd, id, line)
			if err == nil || !errors.Is(err, qrcode.ErrInvalidInput) {
				return err
			}
			color.Red("%v", err)
		}
	},
}

func save(cmd *cobra.Command, id, destination string) error {
	app, err := types.App(cmd.Context())
	if err != nil {
		return err
	}

	item, err := app.Editor().Update(cmd.Context(), id, destination)
	if err != nil {
		return fmt.Errorf("ошибка сохранения: %w", err)
	}

	color.Green("✅ Адрес обновлен")
	fmt.Printf("%s -> %s\n", item.Link, item.DestinationURL)
	return nil
}

func init() {
	EditCmd.Flags().StringVarP(&editDestination, "destination", "d", "", "новый адрес назначения")
}
