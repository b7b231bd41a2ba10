package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"telemim/internal/domain/sheet"
	"telemim/internal/infrastructure/storage/rowcodec"
)

// Storage keeps tables in a single SQLite file: one row per table header in
// sheets and one JSON-encoded row per data row in sheet_rows. Row order is
// insertion order.
type Storage struct {
	db  *sql.DB
	log *slog.Logger
}

func New(path string, log *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// одна запись за раз, иначе SQLITE_BUSY под нагрузкой
	db.SetMaxOpenConns(1)

	s := &Storage{db: db, log: log.With("component", "sqlite_storage")}
	if err := s.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite tables: %w", err)
	}
	return s, nil
}

func (s *Storage) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS sheets (
			name TEXT PRIMARY KEY,
			columns TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS sheet_rows (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sheet TEXT NOT NULL REFERENCES sheets(name) ON DELETE CASCADE,
			cells TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_sheet_rows_sheet ON sheet_rows(sheet, id);
	`)
	return err
}

func (s *Storage) TableExists(ctx context.Context, table string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM sheets WHERE name = ?)`, table).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check sheet: %w", err)
	}
	return exists, nil
}

func (s *Storage) Header(ctx context.Context, table string) (sheet.Schema, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT columns FROM sheets WHERE name = ?`, table).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
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
	if _, err := s.db.ExecContext(ctx, `INSERT INTO sheet_rows (sheet, cells) VALUES (?, ?)`, table, cells); err != nil {
		return fmt.Errorf("insert row: %w", err)
	}
	return nil
}

func (s *Storage) ReadAllRows(ctx context.Context, table string) ([][]any, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT cells FROM sheet_rows WHERE sheet = ? ORDER BY id`, table)
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

// WriteCells rewrites the row in one transaction.
func (s *Storage) WriteCells(ctx context.Context, table string, row int, cells map[int]any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

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
	if _, err := tx.ExecContext(ctx, `UPDATE sheet_rows SET cells = ? WHERE id = ?`, encoded, id); err != nil {
		return fmt.Errorf("update row: %w", err)
	}
	return tx.Commit()
}

func (s *Storage) DeleteRow(ctx context.Context, table string, row int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, _, err := rowAt(ctx, tx, table, row)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sheet_rows WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete row: %w", err)
	}
	return tx.Commit()
}

func (s *Storage) CreateTable(ctx context.Context, table string, schema sheet.Schema) error {
	columns, err := rowcodec.EncodeSchema(schema)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sheets (name, columns, created_at) VALUES (?, ?, ?) ON CONFLICT(name) DO NOTHING`,
		table, columns, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert sheet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", sheet.ErrTableExists, table)
	}
	s.log.Debug("sheet created", "table", table)
	return nil
}

func (s *Storage) ListTables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM sheets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select sheets: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan sheet: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func rowAt(ctx context.Context, tx *sql.Tx, table string, row int) (int64, string, error) {
	if row < 0 {
		return 0, "", fmt.Errorf("%w: %d", sheet.ErrRowOutOfRange, row)
	}
	var (
		id  int64
		raw string
	)
	err := tx.QueryRowContext(ctx,
		`SELECT id, cells FROM sheet_rows WHERE sheet = ? ORDER BY id LIMIT 1 OFFSET ?`, table, row).
		Scan(&id, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", fmt.Errorf("%w: %d", sheet.ErrRowOutOfRange, row)
	}
	if err != nil {
		return 0, "", fmt.Errorf("select row %d: %w", row, err)
	}
	return id, raw, nil
}
