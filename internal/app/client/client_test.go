package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"telemim/internal/app/client/config"
	"telemim/internal/app/server/api"
	"telemim/internal/domain/gateway"
	"telemim/internal/domain/sheet"
	"telemim/internal/domain/user"
	"telemim/internal/infrastructure/lock"
	"telemim/internal/infrastructure/storage/memory"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newServer поднимает настоящий HTTP слой поверх хранилища в памяти.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	log := discard()

	store := memory.New()
	require.NoError(t, store.CreateTable(ctx, "Moradores", sheet.Schema{{Name: "id"}, {Name: "name"}, {Name: "unit"}}))
	require.NoError(t, store.CreateTable(ctx, "Funcionarios", sheet.Schema{{Name: "id"}, {Name: "email"}, {Name: "password"}}))
	require.NoError(t, store.AppendRow(ctx, "Funcionarios", []any{int64(1), "ana@telemim.com", "123"}))

	sheets := sheet.NewService(store, lock.NewLocal(), sheet.NewClockIDGenerator(nil), log)
	users := user.NewService(sheets, store, user.Options{HiddenFields: []string{"password"}}, log)
	dispatcher := gateway.NewDispatcher(sheets, users, gateway.NewFormatter(time.Now), log)

	mux := api.New(api.Deps{Storage: store, Dispatcher: dispatcher, GatewayPath: "/exec"}, log)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newApp(t *testing.T, srv *httptest.Server) *App {
	t.Helper()
	cfg := &config.Config{
		Env:            "local",
		ServerAddress:  strings.TrimPrefix(srv.URL, "http://"),
		GatewayPath:    "/exec",
		RequestTimeout: 5 * time.Second,
	}
	return New(cfg, discard())
}

func TestApp_RecordLifecycle(t *testing.T) {
	// Arrange
	ctx := context.Background()
	app := newApp(t, newServer(t))
	require.NoError(t, app.CheckConnection(ctx))

	// Act
	id, err := app.Create(ctx, "Moradores", map[string]any{"name": "Ana", "unit": "12B"})
	require.NoError(t, err)
	require.NoError(t, app.Update(ctx, "Moradores", sheet.CellString(id), map[string]any{"unit": "14C"}))
	records, err := app.List(ctx, "Moradores")

	// Assert
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, sheet.CellString(id), sheet.CellString(records[0]["id"]))
	assert.Equal(t, "Ana", records[0]["name"])
	assert.Equal(t, "14C", records[0]["unit"])

	require.NoError(t, app.Delete(ctx, "Moradores", sheet.CellString(id)))
	records, err = app.List(ctx, "Moradores")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestApp_Failures(t *testing.T) {
	ctx := context.Background()
	app := newApp(t, newServer(t))

	tests := []struct {
		name     string
		call     func() error
		kind     string
		contains string
	}{
		{
			name:     "unknown table",
			call:     func() error { _, err := app.List(ctx, "OS"); return err },
			kind:     "NotFound",
			contains: "table not found: OS",
		},
		{
			name:     "unknown id",
			call:     func() error { return app.Delete(ctx, "Moradores", "42") },
			kind:     "NotFound",
			contains: "record not found with ID: 42",
		},
		{
			name:     "wrong password",
			call:     func() error { _, err := app.Login(ctx, "ana@telemim.com", "nope"); return err },
			kind:     "NotFound",
			contains: "incorrect email or password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()

			var envErr *EnvelopeError
			require.True(t, errors.As(err, &envErr))
			assert.Equal(t, tt.kind, envErr.Kind)
			assert.Contains(t, envErr.Message, tt.contains)
		})
	}
}

func TestApp_Login(t *testing.T) {
	app := newApp(t, newServer(t))

	rec, err := app.Login(context.Background(), "ana@telemim.com", "123")

	require.NoError(t, err)
	assert.Equal(t, "ana@telemim.com", rec["email"])
	assert.NotContains(t, rec, "password")
}

func TestHTTPClient_Exec_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	app := newApp(t, srv)

	_, err := app.http.Exec(context.Background(), gateway.Request{Action: gateway.ActionRead, Table: "Moradores"})

	assert.ErrorContains(t, err, "статус 502")
}

func TestHTTPClient_Exec_MalformedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{"))
	}))
	defer srv.Close()
	app := newApp(t, srv)

	_, err := app.http.Exec(context.Background(), gateway.Request{Action: gateway.ActionRead})

	assert.ErrorContains(t, err, "ошибка парсинга ответа")
}
