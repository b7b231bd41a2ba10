package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"telemim/internal/domain/sheet"
	"telemim/internal/infrastructure/storage/rowcodec"
)

// Migrator applies the schema before the pool is handed out.
type Migrator interface {
	Up() error
}

// Storage keeps tables in PostgreSQL. Headers live in sheets, data rows in
// sheet_rows ordered by their serial id.
type Storage struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func New(ctx context.Context, databaseURI string, mg Migrator, log *slog.Logger) (*Storage, error) {
	pool, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if mg != nil {
		if err := mg.Up(); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}
	return &Storage{pool: pool, log: log.With("component", "postgres_storage")}, nil
}

func (s *Storage) TableExists(ctx context.Context, table string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM sheets WHERE name = $1)`, table).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check sheet: %w", err)
	}
	return exists, nil
}

func (s *Storage) Header(ctx context.Context, table string) (sheet.Schema, error) {
	var raw string
	err := s.pool.QueryRow(ctx, `SELECT columns::text FROM sheets WHERE name = $1`, table).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", sheet.ErrTableNotFound, table)
	}
	if err != nil {
		return nil, fmt.Errorf("select header: %w", err)
	}
	return rowcodec.DecodeSchema(raw)
}

func (s *Storage) AppendRow(ctx context.Context, table string, values []any) error {
	cells, err := rowcodec.EncodeRow(values)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO sheet_rows (sheet, cells) VALUES ($1, $2::jsonb)`, table, cells)
	if err != nil {
		return fmt.Errorf("insert row: %w", err)
	}
	return nil
}

func (s *Storage) ReadAllRows(ctx context.Context, table string) ([][]any, error) {
	rows, err := s.pool.Query(ctx, `SELECT cells::text FROM sheet_rows WHERE sheet = $1 ORDER BY id`, table)
	if err != nil {
		return nil, fmt.Errorf("select rows: %w", err)
	}
	defer rows.Close()

	var result [][]any
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		values, err := rowcodec.DecodeRow(raw)
		if err != nil {
			return nil, err
		}
		result = append(result, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return result, nil
}

func (s *Storage) WriteCell(ctx context.Context, table string, row, col int, value any) error {
	return s.WriteCells(ctx, table, row, map[int]any{col: value})
}

// WriteCells rewrites the row inside one transaction holding a row lock.
func (s *Storage) WriteCells(ctx context.Context, table string, row int, cells map[int]any) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		id, raw, err := rowAt(ctx, tx, table, row)
		if err != nil {
			return err
		}
		values, err := rowcodec.DecodeRow(raw)
		if err != nil {
			return err
		}
		encoded, err := rowcodec.EncodeRow(rowcodec.SetCells(values, cells))
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE sheet_rows SET cells = $1::jsonb WHERE id = $2`, encoded, id); err != nil {
			return fmt.Errorf("update row: %w", err)
		}
		return nil
	})
}

func (s *Storage) DeleteRow(ctx context.Context, table string, row int) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		id, _, err := rowAt(ctx, tx, table, row)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM sheet_rows WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete row: %w", err)
		}
		return nil
	})
}

func (s *Storage) CreateTable(ctx context.Context, table string, schema sheet.Schema) error {
	columns, err := rowcodec.EncodeSchema(schema)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO sheets (name, columns) VALUES ($1, $2::jsonb) ON CONFLICT (name) DO NOTHING`,
		table, columns)
	if err != nil {
		return fmt.Errorf("insert sheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", sheet.ErrTableExists, table)
	}
	s.log.Debug("sheet created", "table", table)
	return nil
}

func (s *Storage) ListTables(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT name FROM sheets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select sheets: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect sheets: %w", err)
	}
	return names, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.pool
}

func rowAt(ctx context.Context, tx pgx.Tx, table string, row int) (int64, string, error) {
	if row < 0 {
		return 0, "", fmt.Errorf("%w: %d", sheet.ErrRowOutOfRange, row)
	}
	var (
		id  int64
		raw string
	)
	err := tx.QueryRow(ctx,
		`SELECT id, cells::text FROM sheet_rows WHERE sheet = $1 ORDER BY id LIMIT 1 OFFSET $2 FOR UPDATE`,
		table, row).Scan(&id, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, "", fmt.Errorf("%w: %d", sheet.ErrRowOutOfRange, row)
	}
	if err != nil {
		return 0, "", fmt.Errorf("select row %d: %w", row, err)
	}
	return id, raw, nil
}
