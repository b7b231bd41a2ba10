package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath = ".env"

	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	LockLocal = "local"
	LockRedis = "redis"
)

type Config struct {
	Env     string `validate:"oneof=local dev prod"`
	Server  Server
	Storage Storage
	DB      DB
	Lock    Lock
	Login   Login
}

type Server struct {
	RunAddress      string        `env:"RUN_ADDRESS" validate:"required"`
	GatewayPath     string        `env:"GATEWAY_PATH" validate:"required,startswith=/"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

type Storage struct {
	Driver     string `env:"STORAGE_DRIVER" validate:"oneof=memory sqlite postgres"`
	SQLitePath string `env:"SQLITE_PATH" validate:"required_if=Driver sqlite"`
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Lock struct {
	Driver        string        `env:"LOCK_DRIVER" validate:"oneof=local redis"`
	RedisAddr     string        `env:"REDIS_ADDR" validate:"required_if=Driver redis"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" validate:"gte=0"`
	TTL           time.Duration `env:"LOCK_TTL" validate:"gt=0"`
}

type Login struct {
	Table           string   `env:"LOGIN_TABLE" validate:"required"`
	HiddenFields    []string `env:"LOGIN_HIDDEN_FIELDS"`
	PasswordHashing bool     `env:"PASSWORD_HASHING"`
}

var ErrDatabaseURIRequired = errors.New("DATABASE_URI is required for the postgres driver")

// Load читает конфигурацию из .env, переменных окружения и (опционально) файла.
func Load(configFile string) (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Printf("failed to load %s: %v", envPath, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Env: v.GetString("app_env"),
		Server: Server{
			RunAddress:      v.GetString("run_address"),
			GatewayPath:     v.GetString("gateway_path"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Storage: Storage{
			Driver:     strings.ToLower(v.GetString("storage_driver")),
			SQLitePath: v.GetString("sqlite_path"),
		},
		DB: DB{
			DatabaseURI: v.GetString("database_uri"),
			Migrations:  v.GetString("migrations_path"),
		},
		Lock: Lock{
			Driver:        strings.ToLower(v.GetString("lock_driver")),
			RedisAddr:     v.GetString("redis_addr"),
			RedisPassword: v.GetString("redis_password"),
			RedisDB:       v.GetInt("redis_db"),
			TTL:           v.GetDuration("lock_ttl"),
		},
		Login: Login{
			Table:           v.GetString("login_table"),
			HiddenFields:    splitList(v.GetString("login_hidden_fields")),
			PasswordHashing: v.GetBool("password_hashing"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad завершает процесс, если конфигурация некорректна.
func MustLoad(configFile string) *Config {
	cfg, err := Load(configFile)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return cfg
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if c.Storage.Driver == DriverPostgres && c.DB.DatabaseURI == "" {
		return ErrDatabaseURIRequired
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", ":8080")
	v.SetDefault("gateway_path", "/exec")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("storage_driver", DriverMemory)
	v.SetDefault("sqlite_path", "telemim.db")
	v.SetDefault("migrations_path", "migrations")
	v.SetDefault("lock_driver", LockLocal)
	v.SetDefault("lock_ttl", 10*time.Second)
	v.SetDefault("login_table", "Funcionarios")
	v.SetDefault("login_hidden_fields", "password")
	v.SetDefault("password_hashing", false)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
