package gateway

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"telemim/internal/domain/gateway"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, body []byte) gateway.Envelope
}

type Handler struct {
	dispatcher Dispatcher
	path       string
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(dispatcher Dispatcher, path string, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		path:       path,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.execOp(), h.exec)
}

func (h *Handler) exec(ctx context.Context, input *execInput) (*execOutput, error) {
	env := h.dispatcher.Dispatch(ctx, input.RawBody)
	if !env.Success {
		h.log.Debug("gateway request failed", "kind", env.Kind, "message", env.Message)
	}
	return &execOutput{Body: env}, nil
}
