package user

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"telemim/internal/domain/apperr"
	"telemim/internal/domain/sheet"
)

type Servicer interface {
	Login(ctx context.Context, creds Credentials) (sheet.Record, error)
}

// SchemaReader gives read access to validated table headers.
type SchemaReader interface {
	Schema(ctx context.Context, table string) (sheet.Schema, error)
}

type Service struct {
	schemas   SchemaReader
	repo      sheet.Repository
	validator *validator.Validate
	opts      Options
	log       *slog.Logger
}

func NewService(schemas SchemaReader, repo sheet.Repository, opts Options, log *slog.Logger) *Service {
	if opts.Table == "" {
		opts.Table = DefaultTable
	}
	return &Service{
		schemas:   schemas,
		repo:      repo,
		validator: validator.New(),
		opts:      opts,
		log:       log.With("component", "user_service"),
	}
}

// Login returns the first employee whose email and password cells are strings
// equal to the supplied ones. Wrong email and wrong password yield the same
// error.
func (s *Service) Login(ctx context.Context, creds Credentials) (sheet.Record, error) {
	schema, err := s.schemas.Schema(ctx, s.opts.Table)
	if err != nil {
		return nil, err
	}

	if err := s.validator.StructCtx(ctx, creds); err != nil {
		s.log.Debug("rejected empty credentials", "error", err)
		return nil, invalidCredentials()
	}

	emailCol := schema.Index(EmailColumn)
	passCol := schema.Index(PasswordColumn)
	if emailCol < 0 || passCol < 0 {
		s.log.Warn("login table lacks credential columns", "table", s.opts.Table)
		return nil, invalidCredentials()
	}

	rows, err := s.repo.ReadAllRows(ctx, s.opts.Table)
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", s.opts.Table, err)
	}

	for _, row := range rows {
		if emailCol >= len(row) || passCol >= len(row) {
			continue
		}
		if email, ok := row[emailCol].(string); !ok || email != creds.Email {
			continue
		}
		stored, ok := row[passCol].(string)
		if !ok || !s.passwordMatches(stored, creds.Password) {
			continue
		}

		rec := schema.ToRecord(row)
		for _, field := range s.opts.HiddenFields {
			delete(rec, field)
		}
		s.log.Info("login succeeded", "email", creds.Email)
		return rec, nil
	}

	s.log.Info("login failed", "email", creds.Email)
	return nil, invalidCredentials()
}

func (s *Service) passwordMatches(stored, supplied string) bool {
	if s.opts.HashedPasswords {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return stored == supplied
}

// HashPassword produces the value to store in the password column when
// hashed passwords are enabled.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func invalidCredentials() error {
	return apperr.NotFound(ErrInvalidCredentials, ErrInvalidCredentials.Error())
}
