package client

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"telemim/internal/app/client/config"
	"telemim/internal/domain/gateway"
	"telemim/internal/domain/sheet"
)

// EnvelopeError is returned when the server answers with success=false.
type EnvelopeError struct {
	Kind    string
	Message string
}

func (e *EnvelopeError) Error() string {
	if e.Kind == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

type App struct {
	config *config.Config
	log    *slog.Logger
	http   *httpClient
}

func New(cfg *config.Config, log *slog.Logger) *App {
	return &App{
		config: cfg,
		log:    log,
		http:   NewHTTPClient(cfg, log),
	}
}

// CheckConnection проверяет соединение с сервером
func (a *App) CheckConnection(ctx context.Context) error {
	return a.http.HealthCheck(ctx)
}

// Create добавляет запись в таблицу и возвращает ее идентификатор
func (a *App) Create(ctx context.Context, table string, data map[string]any) (int64, error) {
	env, err := a.exec(ctx, gateway.Request{Action: gateway.ActionCreate, Table: table, Data: data})
	if err != nil {
		return 0, err
	}
	var created gateway.CreatedData
	if err := env.DecodeData(&created); err != nil {
		return 0, fmt.Errorf("ошибка разбора ответа: %w", err)
	}
	return created.ID, nil
}

// List возвращает все записи таблицы
func (a *App) List(ctx context.Context, table string) ([]sheet.Record, error) {
	env, err := a.exec(ctx, gateway.Request{Action: gateway.ActionRead, Table: table})
	if err != nil {
		return nil, err
	}
	var records []sheet.Record
	if err := env.DecodeData(&records); err != nil {
		return nil, fmt.Errorf("ошибка разбора ответа: %w", err)
	}
	return records, nil
}

func (a *App) Update(ctx context.Context, table, id string, data map[string]any) error {
	_, err := a.exec(ctx, gateway.Request{Action: gateway.ActionUpdate, Table: table, ID: id, Data: data})
	return err
}

func (a *App) Delete(ctx context.Context, table, id string) error {
	_, err := a.exec(ctx, gateway.Request{Action: gateway.ActionDelete, Table: table, ID: id})
	return err
}

// Login проверяет учетные данные и возвращает запись сотрудника
func (a *App) Login(ctx context.Context, email, password string) (sheet.Record, error) {
	env, err := a.exec(ctx, gateway.Request{Action: gateway.ActionLogin, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	var rec sheet.Record
	if err := env.DecodeData(&rec); err != nil {
		return nil, fmt.Errorf("ошибка разбора ответа: %w", err)
	}
	return rec, nil
}

func (a *App) exec(ctx context.Context, req gateway.Request) (*gateway.Envelope, error) {
	ctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	env, err := a.http.Exec(ctx, req)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &EnvelopeError{Kind: env.Kind, Message: env.Message}
	}
	return env, nil
}
