// cmd/client/cmd/qr/export.go
package qr

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"qrkeeper/cmd/client/cmd/types"
)

var (
	exportOutput string
	exportSize   int
)

var ExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Сохранить QR-код в PNG",
	Long: `Рендерит QR-код записи с ее цветами и логотипом и сохраняет PNG.

SVG-логотипы при экспорте пропускаются.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.Export(ctx, args[0], exportOutput, exportSize); err != nil {
			return fmt.Errorf("ошибка экспорта: %w", err)
		}

		out := exportOutput
		if out == "" {
			out = app.Config().ExportFile
		}
		color.Green("✅ Сохранено в %s", out)
		return nil
	},
}

func init() {
	ExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "файл (по умолчанию EXPORT_FILE)")
	ExportCmd.Flags().IntVarP(&exportSize, "size", "s", 0, "размер в пикселях (по умолчанию RENDER_SIZE)")
}
