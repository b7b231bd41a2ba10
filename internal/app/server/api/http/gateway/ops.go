package gateway

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) execOp() huma.Operation {
	return huma.Operation{
		OperationID: "gateway-exec",
		Method:      http.MethodPost,
		Path:        h.path,
		Summary:     "Execute a table action",
		Description: "Runs CREATE, READ, UPDATE, DELETE or LOGIN and always answers with an envelope.",
		Tags:        []string{"gateway"},
		Middlewares: h.middleware,
	}
}
