package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"

	"telemim/internal/app/server/api"
	"telemim/internal/app/server/config"
	"telemim/internal/domain/gateway"
	"telemim/internal/domain/sheet"
	"telemim/internal/domain/user"
	"telemim/internal/infrastructure/lock"
	"telemim/internal/infrastructure/storage"
)

// Server owns the HTTP server and every resource it was built from.
type Server struct {
	cfg     *config.Config
	base    *slog.Logger
	log     *slog.Logger
	store   storage.Store
	redis   *redis.Client
	httpSrv *http.Server
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Server, error) {
	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	s := &Server{cfg: cfg, base: log, log: log.With("component", "server"), store: store}

	locker, err := s.locker(ctx)
	if err != nil {
		store.Close()
		return nil, err
	}

	sheets := sheet.NewService(store, locker, sheet.NewClockIDGenerator(time.Now), log)
	users := user.NewService(sheets, store, user.Options{
		Table:           cfg.Login.Table,
		HiddenFields:    cfg.Login.HiddenFields,
		HashedPasswords: cfg.Login.PasswordHashing,
	}, log)
	dispatcher := gateway.NewDispatcher(sheets, users, gateway.NewFormatter(time.Now), log)

	mux := api.New(api.Deps{
		Storage:     store,
		Dispatcher:  dispatcher,
		GatewayPath: cfg.Server.GatewayPath,
	}, log)

	s.httpSrv = &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) locker(ctx context.Context) (sheet.Locker, error) {
	if s.cfg.Lock.Driver != config.LockRedis {
		return lock.NewLocal(), nil
	}

	s.redis = redis.NewClient(&redis.Options{
		Addr:     s.cfg.Lock.RedisAddr,
		Password: s.cfg.Lock.RedisPassword,
		DB:       s.cfg.Lock.RedisDB,
	})
	if err := s.redis.Ping(ctx).Err(); err != nil {
		s.redis.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", s.cfg.Lock.RedisAddr, err)
	}
	return lock.NewRedis(s.redis, s.cfg.Lock.TTL, s.base), nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Run serves until ctx is cancelled, then shuts down within the configured
// timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server started", "address", s.cfg.Server.RunAddress, "gateway", s.cfg.Server.GatewayPath)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	errs = append(errs, s.store.Close())
	return errors.Join(errs...)
}
