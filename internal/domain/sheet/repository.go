package sheet

import (
	"context"
)

// Repository is the tabular storage collaborator. Row indexes are 0-based
// positions among data rows; the header is not a row.
type Repository interface {
	TableExists(ctx context.Context, table string) (bool, error)
	Header(ctx context.Context, table string) (Schema, error)
	AppendRow(ctx context.Context, table string, values []any) error
	ReadAllRows(ctx context.Context, table string) ([][]any, error)
	WriteCell(ctx context.Context, table string, row, col int, value any) error
	DeleteRow(ctx context.Context, table string, row int) error
	CreateTable(ctx context.Context, table string, schema Schema) error
	ListTables(ctx context.Context) ([]string, error)
}

// CellBatchWriter is implemented by stores able to write several cells of a
// row in one atomic step.
type CellBatchWriter interface {
	WriteCells(ctx context.Context, table string, row int, cells map[int]any) error
}

// Locker serializes mutations of a table.
type Locker interface {
	Lock(ctx context.Context, table string) (unlock func(), err error)
}
