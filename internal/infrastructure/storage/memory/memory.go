package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"telemim/internal/domain/sheet"
)

type table struct {
	schema sheet.Schema
	rows   [][]any
}

// Storage keeps tables in process memory. It is safe for concurrent use.
type Storage struct {
	mu     sync.RWMutex
	tables map[string]*table
}

func New() *Storage {
	return &Storage{tables: make(map[string]*table)}
}

func (s *Storage) TableExists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.tables[name]
	return ok, nil
}

func (s *Storage) Header(_ context.Context, name string) (sheet.Schema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", sheet.ErrTableNotFound, name)
	}
	return append(sheet.Schema(nil), t.schema...), nil
}

func (s *Storage) AppendRow(_ context.Context, name string, values []any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[name]
	if !ok {
		return fmt.Errorf("%w: %s", sheet.ErrTableNotFound, name)
	}
	t.rows = append(t.rows, append([]any(nil), values...))
	return nil
}

func (s *Storage) ReadAllRows(_ context.Context, name string) ([][]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", sheet.ErrTableNotFound, name)
	}
	rows := make([][]any, len(t.rows))
	for i, row := range t.rows {
		rows[i] = append([]any(nil), row...)
	}
	return rows, nil
}

func (s *Storage) WriteCell(_ context.Context, name string, row, col int, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.rowOf(name, row)
	if err != nil {
		return err
	}
	t.rows[row] = setCell(t.rows[row], col, value)
	return nil
}

// WriteCells applies all cells of a row under a single lock.
func (s *Storage) WriteCells(_ context.Context, name string, row int, cells map[int]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.rowOf(name, row)
	if err != nil {
		return err
	}
	for col, value := range cells {
		t.rows[row] = setCell(t.rows[row], col, value)
	}
	return nil
}

func (s *Storage) DeleteRow(_ context.Context, name string, row int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.rowOf(name, row)
	if err != nil {
		return err
	}
	t.rows = append(t.rows[:row], t.rows[row+1:]...)
	return nil
}

func (s *Storage) CreateTable(_ context.Context, name string, schema sheet.Schema) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[name]; ok {
		return fmt.Errorf("%w: %s", sheet.ErrTableExists, name)
	}
	s.tables[name] = &table{schema: append(sheet.Schema(nil), schema...)}
	return nil
}

func (s *Storage) ListTables(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Storage) Ping(_ context.Context) error {
	return nil
}

func (s *Storage) Close() error {
	return nil
}

func (s *Storage) rowOf(name string, row int) (*table, error) {
	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", sheet.ErrTableNotFound, name)
	}
	if row < 0 || row >= len(t.rows) {
		return nil, fmt.Errorf("%w: %d", sheet.ErrRowOutOfRange, row)
	}
	return t, nil
}

func setCell(row []any, col int, value any) []any {
	for len(row) <= col {
		row = append(row, "")
	}
	row[col] = value
	return row
}
