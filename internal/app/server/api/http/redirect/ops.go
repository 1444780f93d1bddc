package redirect

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) resolveOp() huma.Operation {
	return huma.Operation{
		OperationID:   "redirect",
		Method:        http.MethodGet,
		Path:          "/r/{id}",
		Summary:       "Переход по dynamic QR-коду",
		Description:   "Отвечает 302 на текущий адрес назначения",
		Tags:          []string{"redirect"},
		DefaultStatus: http.StatusFound,
		Middlewares:   h.middleware,
	}
}
