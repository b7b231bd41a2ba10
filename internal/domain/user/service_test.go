package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"telemim/internal/domain/apperr"
	"telemim/internal/domain/sheet"
	"telemim/internal/domain/user"
	"telemim/internal/infrastructure/lock"
	"telemim/internal/infrastructure/storage/memory"
)

var funcionarios = sheet.Schema{
	{Name: "id"},
	{Name: "name", Type: sheet.TypeString},
	{Name: "email", Type: sheet.TypeString},
	{Name: "password"},
	{Name: "role", Type: sheet.TypeString},
}

func newLoginService(t *testing.T, schema sheet.Schema, opts user.Options, rows ...[]any) *user.Service {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.CreateTable(ctx, user.DefaultTable, schema))
	for _, row := range rows {
		require.NoError(t, store.AppendRow(ctx, user.DefaultTable, row))
	}

	sheets := sheet.NewService(store, lock.NewLocal(), sheet.NewClockIDGenerator(time.Now), slog.Default())
	return user.NewService(sheets, store, opts, slog.Default())
}

func TestService_Login(t *testing.T) {
	rows := [][]any{
		{int64(1), "Admin Geral", "admin@telemim.com", float64(123), "ADMIN"},
		{int64(2), "Ana Secretaria", "ana@telemim.com", "s3cret", "SECRETARY"},
		{int64(3), "Caixa", "caixa@telemim.com", "123", "CASHIER"},
	}

	tests := []struct {
		name     string
		creds    user.Credentials
		wantName string
		wantErr  bool
	}{
		{name: "exact match", creds: user.Credentials{Email: "ana@telemim.com", Password: "s3cret"}, wantName: "Ana Secretaria"},
		{name: "numeric password cell is not a string match", creds: user.Credentials{Email: "admin@telemim.com", Password: "123"}, wantErr: true},
		{name: "digits stored as text", creds: user.Credentials{Email: "caixa@telemim.com", Password: "123"}, wantName: "Caixa"},
		{name: "wrong password", creds: user.Credentials{Email: "ana@telemim.com", Password: "S3cret"}, wantErr: true},
		{name: "wrong email", creds: user.Credentials{Email: "ANA@telemim.com", Password: "s3cret"}, wantErr: true},
		{name: "empty password", creds: user.Credentials{Email: "ana@telemim.com"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			svc := newLoginService(t, funcionarios, user.Options{HiddenFields: []string{"password"}}, rows...)

			// Act
			rec, err := svc.Login(context.Background(), tt.creds)

			// Assert
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "incorrect email or password", err.Error())
				assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
				assert.Nil(t, rec)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, rec["name"])
			assert.Equal(t, tt.creds.Email, rec["email"])
			assert.NotContains(t, rec, "password")
		})
	}
}

func TestService_LoginReturnsFullRecordWithoutHiddenFields(t *testing.T) {
	svc := newLoginService(t, funcionarios, user.Options{},
		[]any{int64(1), "Admin Geral", "admin@telemim.com", "123", "ADMIN"})

	rec, err := svc.Login(context.Background(), user.Credentials{Email: "admin@telemim.com", Password: "123"})

	require.NoError(t, err)
	assert.Equal(t, sheet.Record{
		"id": int64(1), "name": "Admin Geral", "email": "admin@telemim.com", "password": "123", "role": "ADMIN",
	}, rec)
}

func TestService_LoginMissingCredentialColumns(t *testing.T) {
	schema := sheet.Schema{{Name: "id"}, {Name: "email"}}
	svc := newLoginService(t, schema, user.Options{}, []any{int64(1), "a@b.c"})

	_, err := svc.Login(context.Background(), user.Credentials{Email: "a@b.c", Password: "x"})

	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestService_LoginMissingTable(t *testing.T) {
	store := memory.New()
	sheets := sheet.NewService(store, lock.NewLocal(), sheet.NewClockIDGenerator(time.Now), slog.Default())
	svc := user.NewService(sheets, store, user.Options{}, slog.Default())

	_, err := svc.Login(context.Background(), user.Credentials{Email: "a@b.c", Password: "x"})

	require.Error(t, err)
	assert.Equal(t, "table not found: Funcionarios", err.Error())
}

func TestService_LoginHashedPasswords(t *testing.T) {
	hash, err := user.HashPassword("s3cret")
	require.NoError(t, err)
	svc := newLoginService(t, funcionarios, user.Options{HashedPasswords: true, HiddenFields: []string{"password"}},
		[]any{int64(2), "Ana", "ana@telemim.com", hash, "SECRETARY"})

	rec, err := svc.Login(context.Background(), user.Credentials{Email: "ana@telemim.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", rec["name"])

	_, err = svc.Login(context.Background(), user.Credentials{Email: "ana@telemim.com", Password: hash})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}
