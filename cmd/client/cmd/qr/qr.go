package qr

import (
	"github.com/spf13/cobra"
)

// QRCmd - родительская команда для операций с QR-кодами
var QRCmd = &cobra.Command{
	Use:   "qr",
	Short: "Управление QR-кодами",
	Long:  `Создание, просмотр, редактирование и экспорт QR-кодов.`,
}

func init() {
	QRCmd.AddCommand(GenerateCmd, ListCmd, EditCmd, ExportCmd, TypesCmd)
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}
