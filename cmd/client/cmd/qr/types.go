package qr

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"qrkeeper/cmd/client/cmd/types"
)

var TypesCmd = &cobra.Command{
	Use:   "types",
	Short: "Типы содержимого",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		list, err := app.ContentTypes(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения типов: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Тип\tНазвание\tПодсказка\t\n")
		for _, t := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t\n", t.Value, t.DisplayName, t.Placeholder)
		}
		return w.Flush()
	},
}
