package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, ":8080", cfg.Server.RunAddress)
	assert.Equal(t, "/exec", cfg.Server.GatewayPath)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, LockLocal, cfg.Lock.Driver)
	assert.Equal(t, "Funcionarios", cfg.Login.Table)
	assert.Equal(t, []string{"password"}, cfg.Login.HiddenFields)
	assert.False(t, cfg.Login.PasswordHashing)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("RUN_ADDRESS", ":9090")
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/t.db")
	t.Setenv("LOCK_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("LOCK_TTL", "3s")
	t.Setenv("LOGIN_HIDDEN_FIELDS", "password, cpf ,")
	t.Setenv("PASSWORD_HASHING", "true")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, ":9090", cfg.Server.RunAddress)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/t.db", cfg.Storage.SQLitePath)
	assert.Equal(t, LockRedis, cfg.Lock.Driver)
	assert.Equal(t, 3*time.Second, cfg.Lock.TTL)
	assert.Equal(t, []string{"password", "cpf"}, cfg.Login.HiddenFields)
	assert.True(t, cfg.Login.PasswordHashing)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gateway_path: /api/v1/exec\nlogin_table: Staff\n"), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/api/v1/exec", cfg.Server.GatewayPath)
	assert.Equal(t, "Staff", cfg.Login.Table)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown env", env: map[string]string{"APP_ENV": "staging"}},
		{name: "unknown driver", env: map[string]string{"STORAGE_DRIVER": "sheets"}},
		{name: "relative gateway path", env: map[string]string{"GATEWAY_PATH": "exec"}},
		{name: "redis without address", env: map[string]string{"LOCK_DRIVER": "redis"}},
		{name: "postgres without uri", env: map[string]string{"STORAGE_DRIVER": "postgres"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")

			assert.Error(t, err)
		})
	}
}
