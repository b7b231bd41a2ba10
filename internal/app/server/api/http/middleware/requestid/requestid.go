package requestid

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
)

const HeaderCorrelationID = "X-Correlation-ID"

type contextKey struct{}

// Middleware propagates the caller's correlation id or generates one.
func Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		id := ctx.Header(HeaderCorrelationID)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.SetHeader(HeaderCorrelationID, id)

		next(huma.WithValue(ctx, contextKey{}, id))
	}
}

func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
