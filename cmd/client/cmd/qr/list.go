// cmd/client/cmd/qr/list.go
package qr

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"qrkeeper/cmd/client/cmd/types"
	"qrkeeper/internal/domain/qrcode"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список QR-кодов",
	Long: `Показывает все QR-коды профиля, новые первыми.

Если сервер недоступен, выводится последний сохраненный список.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		items, err := app.Records(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения списка: %w", err)
		}

		switch listFormat {
		case "json":
			return printJSON(items)
		case "table":
			return printTable(items)
		default:
			return printSimple(items)
		}
	},
}

func printSimple(items []qrcode.ListItem) error {
	if len(items) == 0 {
		fmt.Println("QR-коды не найдены")
		return nil
	}

	fmt.Printf("Найдено QR-кодов: %d\n\n", len(items))

	for i, it := range items {
		kind := color.CyanString(it.Kind.DisplayName())
		fmt.Printf("%d. [%s] %s (%s)\n", i+1, kind, truncate(it.Destination(), 60), it.ContentType.DisplayName())
		fmt.Printf("   ID: %s | Ссылка: %s | Создан: %s\n", it.ID, it.Link, it.CreatedAt.Format("2006-01-02"))
		fmt.Println()
	}

	return nil
}

func printTable(items []qrcode.ListItem) error {
	if len(items) == 0 {
		fmt.Println("QR-коды не найдены")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tТип\tСодержимое\tЗначение\tСоздан\tИзменен\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t---\t---\t\n")

	for _, it := range items {
		updated := "-"
		if it.UpdatedAt != nil {
			updated = it.UpdatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			it.ID,
			it.Kind,
			it.ContentType,
			truncate(it.Destination(), 40),
			it.CreatedAt.Format("2006-01-02"),
			updated,
		)
	}

	w.Flush()
	fmt.Printf("\nВсего: %d\n", len(items))
	return nil
}

func printJSON(items []qrcode.ListItem) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(items)
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "simple", "формат вывода (simple, table, json)")
}
