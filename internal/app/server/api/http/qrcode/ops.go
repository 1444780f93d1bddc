package qrcode

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"qrkeeper/internal/domain/qrcode"
)

// generateBodyLimit вмещает логотип MaxLogoBytes в base64 и остальные поля запроса.
const generateBodyLimit = int64(qrcode.MaxLogoBytes)*4/3 + 64<<10

func (h *Handler) generateOp() huma.Operation {
	return huma.Operation{
		OperationID:   "qrcodes-generate",
		Method:        http.MethodPost,
		Path:          "/api/v1/qrcodes",
		Summary:       "Создать QR-код",
		Description:   "Создает static или dynamic QR-код. Логотип можно передать ссылкой или файлом (base64).",
		Tags:          []string{"qrcodes"},
		DefaultStatus: http.StatusCreated,
		MaxBodyBytes:  generateBodyLimit,
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "qrcodes-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/qrcodes",
		Summary:     "Список QR-кодов пользователя",
		Tags:        []string{"qrcodes"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "qrcodes-get",
		Method:      http.MethodGet,
		Path:        "/api/v1/qrcodes/{id}",
		Summary:     "Получить QR-код",
		Tags:        []string{"qrcodes"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateDestinationOp() huma.Operation {
	return huma.Operation{
		OperationID: "qrcodes-update-destination",
		Method:      http.MethodPatch,
		Path:        "/api/v1/qrcodes/{id}/destination",
		Summary:     "Изменить адрес dynamic-кода",
		Tags:        []string{"qrcodes"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) contentTypesOp() huma.Operation {
	return huma.Operation{
		OperationID: "content-types",
		Method:      http.MethodGet,
		Path:        "/api/v1/content-types",
		Summary:     "Типы содержимого",
		Tags:        []string{"qrcodes"},
		Middlewares: h.public,
	}
}
