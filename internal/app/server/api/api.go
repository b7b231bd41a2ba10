// POST {GATEWAY_PATH}    # единая точка входа: CREATE | READ | UPDATE | DELETE | LOGIN
// GET  /api/v1/health    # состояние сервиса и хранилища

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"

	gatewayAPI "telemim/internal/app/server/api/http/gateway"
	healthAPI "telemim/internal/app/server/api/http/health"
	"telemim/internal/app/server/api/http/middleware"
	"telemim/internal/app/server/api/http/middleware/logger"
	"telemim/internal/app/server/api/http/middleware/requestid"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Storage     healthAPI.Pinger
	Dispatcher  gatewayAPI.Dispatcher
	GatewayPath string
}

type Handlers struct {
	Health  *healthAPI.Handler
	Gateway *gatewayAPI.Handler
}

// New создает *chi.Mux со всеми операциями, зарегистрированными через huma.Register
func New(deps Deps, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimw.RealIP)
	mux.Use(chimw.Recoverer)

	config := huma.DefaultConfig("Telemim API", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(deps, log)
	h.Health.SetupRoutes(API)
	h.Gateway.SetupRoutes(API)

	return mux
}

func handlers(deps Deps, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(requestid.Middleware())
	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(deps.Storage, log.With("component", "health_handler"), middlewares.GetAllAndClear())

	middlewares.Add(requestid.Middleware())
	middlewares.Add(loggerMW.Middleware())
	gatewayHandler := gatewayAPI.NewHandler(deps.Dispatcher, deps.GatewayPath, log.With("component", "gateway_handler"), middlewares.GetAllAndClear())

	return &Handlers{
		Health:  healthHandler,
		Gateway: gatewayHandler,
	}
}
