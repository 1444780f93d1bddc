// cmd/client/cmd/qr/generate.go
package qr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"qrkeeper/cmd/client/cmd/types"
	"qrkeeper/internal/app/client"
	"qrkeeper/internal/domain/qrcode"
)

var (
	genKind        string
	genContentType string
	genForeground  string
	genBackground  string
	genLogoFile    string
	genLogoRef     string
	genLogoSize    int
	genExport      bool
	genOutput      string
)

var GenerateCmd = &cobra.Command{
	Use:   "generate <значение>",
	Short: "Создать QR-код",
	Long: `Создает QR-код и сохраняет его в профиле.

static кодирует значение как есть. dynamic кодирует короткую ссылку,
адрес назначения которой можно потом поменять командой qr edit.`,
	Example: `  qrkeeper qr generate "https://example.com" --kind dynamic --type link
  qrkeeper qr generate "Привет" --fg "#1a73e8" --logo ./logo.png --export`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		req := qrcode.GenerateRequest{
			RawValue:    strings.Join(args, " "),
			Kind:        qrcode.Kind(genKind),
			ContentType: qrcode.ContentType(genContentType),
			Style: qrcode.Style{
				ForegroundColor: genForeground,
				BackgroundColor: genBackground,
			},
		}
		if genLogoRef != "" {
			req.Logo = &qrcode.Logo{ImageRef: genLogoRef, SizePx: genLogoSize}
		}
		if genLogoFile != "" {
			upload, err := client.LoadLogoFile(genLogoFile)
			if err != nil {
				return err
			}
			req.LogoUpload = upload
			req.Logo = &qrcode.Logo{SizePx: genLogoSize}
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		res, err := app.Generate(ctx, req)
		if err != nil {
			return fmt.Errorf("ошибка создания QR-кода: %w", err)
		}

		color.Green("✅ QR-код создан")
		fmt.Printf("ID:        %s\n", res.ID)
		fmt.Printf("Значение:  %s\n", res.EncodedValue)
		if req.Kind == qrcode.KindDynamic {
			fmt.Printf("Ссылка:    %s\n", res.Link)
		}
		if res.Logo != nil && res.Logo.ImageRef != "" {
			fmt.Printf("Логотип:   %s (%dpx)\n", res.Logo.ImageRef, res.Logo.SizePx)
		}

		if genExport {
			if err := app.Export(ctx, res.ID, genOutput, 0); err != nil {
				return fmt.Errorf("ошибка экспорта: %w", err)
			}
			out := genOutput
			if out == "" {
				out = app.Config().ExportFile
			}
			fmt.Printf("Файл:      %s\n", out)
		}

		return nil
	},
}

func init() {
	GenerateCmd.Flags().StringVarP(&genKind, "kind", "k", string(qrcode.KindStatic), "static или dynamic")
	GenerateCmd.Flags().StringVarP(&genContentType, "type", "t", string(qrcode.ContentText), "тип содержимого (см. qr types)")
	GenerateCmd.Flags().StringVar(&genForeground, "fg", qrcode.DefaultForeground, "цвет модулей")
	GenerateCmd.Flags().StringVar(&genBackground, "bg", qrcode.DefaultBackground, "цвет фона")
	GenerateCmd.Flags().StringVar(&genLogoFile, "logo", "", "локальный PNG или SVG файл логотипа")
	GenerateCmd.Flags().StringVar(&genLogoRef, "logo-url", "", "ссылка на уже загруженный логотип")
	GenerateCmd.Flags().IntVar(&genLogoSize, "logo-size", qrcode.DefaultLogoSize, "размер логотипа в пикселях (20-100)")
	GenerateCmd.Flags().BoolVar(&genExport, "export", false, "сразу сохранить PNG")
	GenerateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "файл для --export")
	GenerateCmd.MarkFlagsMutuallyExclusive("logo", "logo-url")
}
