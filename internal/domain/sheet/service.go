package sheet

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"telemim/internal/domain/apperr"
)

type Servicer interface {
	Create(ctx context.Context, table string, data map[string]any) (int64, error)
	Read(ctx context.Context, table string) ([]Record, error)
	Update(ctx context.Context, table string, id any, data map[string]any) error
	Delete(ctx context.Context, table string, id any) error
	CreateTable(ctx context.Context, table string, schema Schema) error
	ListTables(ctx context.Context) ([]string, error)
}

// Service implements record operations over a Repository.
type Service struct {
	repo   Repository
	locker Locker
	ids    IDGenerator
	log    *slog.Logger
}

func NewService(repo Repository, locker Locker, ids IDGenerator, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		locker: locker,
		ids:    ids,
		log:    log.With("component", "sheet_service"),
	}
}

// Schema returns the validated header of an existing table.
func (s *Service) Schema(ctx context.Context, table string) (Schema, error) {
	exists, err := s.repo.TableExists(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("check table %q: %w", table, err)
	}
	if !exists {
		return nil, tableNotFound(table)
	}

	schema, err := s.repo.Header(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("read header of %q: %w", table, err)
	}
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("table %q: %w", table, err)
	}
	return schema, nil
}

// Create appends a new row and returns its identifier.
func (s *Service) Create(ctx context.Context, table string, data map[string]any) (int64, error) {
	schema, err := s.Schema(ctx, table)
	if err != nil {
		return 0, err
	}
	if err := schema.CheckValues(data); err != nil {
		return 0, apperr.Validation(err, err.Error())
	}

	unlock, err := s.locker.Lock(ctx, table)
	if err != nil {
		return 0, fmt.Errorf("lock table %q: %w", table, err)
	}
	defer unlock()

	rows, err := s.repo.ReadAllRows(ctx, table)
	if err != nil {
		return 0, fmt.Errorf("read rows of %q: %w", table, err)
	}
	taken := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if len(row) > 0 {
			taken[CellString(row[0])] = struct{}{}
		}
	}

	id := s.ids.Next()
	for {
		if _, ok := taken[CellString(id)]; !ok {
			break
		}
		id = s.ids.Next()
	}

	values := make([]any, len(schema))
	values[0] = id
	for i, col := range schema[1:] {
		v, ok := data[col.Name]
		if !ok || v == nil {
			v = ""
		}
		values[i+1] = v
	}

	if err := s.repo.AppendRow(ctx, table, values); err != nil {
		s.log.Error("failed to append row", "table", table, "error", err)
		return 0, fmt.Errorf("append row to %q: %w", table, err)
	}

	s.log.Info("record created", "table", table, "id", id)
	return id, nil
}

// Read returns every data row of the table as a record.
func (s *Service) Read(ctx context.Context, table string) ([]Record, error) {
	schema, err := s.Schema(ctx, table)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ReadAllRows(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", table, err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, schema.ToRecord(row))
	}
	return records, nil
}

// Update overwrites the supplied columns of the first row whose identifier
// matches id. Columns absent from data are left untouched.
func (s *Service) Update(ctx context.Context, table string, id any, data map[string]any) error {
	schema, err := s.Schema(ctx, table)
	if err != nil {
		return err
	}
	if err := schema.CheckValues(data); err != nil {
		return apperr.Validation(err, err.Error())
	}

	unlock, err := s.locker.Lock(ctx, table)
	if err != nil {
		return fmt.Errorf("lock table %q: %w", table, err)
	}
	defer unlock()

	idx, err := s.find(ctx, table, id)
	if err != nil {
		return err
	}

	cells := make(map[int]any)
	for i, col := range schema {
		if i == 0 {
			continue
		}
		if v, ok := data[col.Name]; ok {
			cells[i] = v
		}
	}
	if len(cells) == 0 {
		return nil
	}

	if bw, ok := s.repo.(CellBatchWriter); ok {
		if err := bw.WriteCells(ctx, table, idx, cells); err != nil {
			s.log.Error("failed to write cells", "table", table, "row", idx, "error", err)
			return fmt.Errorf("update row of %q: %w", table, err)
		}
	} else {
		for i := 1; i < len(schema); i++ {
			v, ok := cells[i]
			if !ok {
				continue
			}
			if err := s.repo.WriteCell(ctx, table, idx, i, v); err != nil {
				s.log.Error("failed to write cell", "table", table, "row", idx, "col", i, "error", err)
				return fmt.Errorf("update cell %d of %q: %w", i, table, err)
			}
		}
	}

	s.log.Info("record updated", "table", table, "id", CellString(id), "fields", len(cells))
	return nil
}

// Delete removes the first row whose identifier matches id.
func (s *Service) Delete(ctx context.Context, table string, id any) error {
	if _, err := s.Schema(ctx, table); err != nil {
		return err
	}

	unlock, err := s.locker.Lock(ctx, table)
	if err != nil {
		return fmt.Errorf("lock table %q: %w", table, err)
	}
	defer unlock()

	idx, err := s.find(ctx, table, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteRow(ctx, table, idx); err != nil {
		s.log.Error("failed to delete row", "table", table, "row", idx, "error", err)
		return fmt.Errorf("delete row of %q: %w", table, err)
	}

	s.log.Info("record deleted", "table", table, "id", CellString(id))
	return nil
}

// CreateTable registers a new table with the given header.
func (s *Service) CreateTable(ctx context.Context, table string, schema Schema) error {
	if table == "" {
		return apperr.Validation(ErrInvalidSchema, "table name is required")
	}
	if err := schema.Validate(); err != nil {
		return apperr.Validation(err, err.Error())
	}

	exists, err := s.repo.TableExists(ctx, table)
	if err != nil {
		return fmt.Errorf("check table %q: %w", table, err)
	}
	if exists {
		return apperr.Validation(ErrTableExists, fmt.Sprintf("table already exists: %s", table))
	}

	if err := s.repo.CreateTable(ctx, table, schema); err != nil {
		return fmt.Errorf("create table %q: %w", table, err)
	}

	s.log.Info("table created", "table", table, "columns", schema.Names())
	return nil
}

func (s *Service) ListTables(ctx context.Context) ([]string, error) {
	tables, err := s.repo.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

// find returns the index of the first data row whose identifier equals id
// once both are rendered as strings.
func (s *Service) find(ctx context.Context, table string, id any) (int, error) {
	rows, err := s.repo.ReadAllRows(ctx, table)
	if err != nil {
		return -1, fmt.Errorf("read rows of %q: %w", table, err)
	}

	want := CellString(id)
	for i, row := range rows {
		if len(row) > 0 && CellString(row[0]) == want {
			return i, nil
		}
	}
	return -1, recordNotFound(id)
}
