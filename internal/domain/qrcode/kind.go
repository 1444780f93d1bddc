package qrcode

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

// Kind определяет, что кодируется в символ: само содержимое или ссылка-редирект.
type Kind string

const (
	KindStatic  Kind = "static"
	KindDynamic Kind = "dynamic"
)

func (Kind) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type: "string",
		Enum: []any{
			string(KindStatic),
			string(KindDynamic),
		},
		Description: "Вид QR-кода: static кодирует содержимое, dynamic кодирует ссылку-редирект",
		Examples:    []any{KindStatic},
	}
}

// Validate проверяет, что значение из списка допустимых.
func (k Kind) Validate() error {
	switch k {
	case KindStatic, KindDynamic:
		return nil
	}
	return fmt.Errorf("неверный вид QR-кода: %s", k)
}

// String возвращает строковое представление вида.
func (k Kind) String() string {
	return string(k)
}

// DisplayName возвращает человекочитаемое название вида.
func (k Kind) DisplayName() string {
	switch k {
	case KindStatic:
		return "Estático"
	case KindDynamic:
		return "Dinâmico"
	default:
		return "Desconhecido"
	}
}
