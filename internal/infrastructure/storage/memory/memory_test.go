package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telemim/internal/domain/sheet"
)

func newTable(t *testing.T) *Storage {
	t.Helper()
	s := New()
	err := s.CreateTable(context.Background(), "Moradores", sheet.Schema{
		{Name: "id", Type: sheet.TypeAny},
		{Name: "name", Type: sheet.TypeString},
		{Name: "unit", Type: sheet.TypeString},
	})
	require.NoError(t, err)
	return s
}

func TestStorage_AppendAndRead(t *testing.T) {
	ctx := context.Background()
	s := newTable(t)

	require.NoError(t, s.AppendRow(ctx, "Moradores", []any{int64(1), "Ana", "12B"}))
	require.NoError(t, s.AppendRow(ctx, "Moradores", []any{int64(2), "Bruno", "3A"}))

	rows, err := s.ReadAllRows(ctx, "Moradores")
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(1), "Ana", "12B"}, {int64(2), "Bruno", "3A"}}, rows)

	// returned rows are copies
	rows[0][1] = "changed"
	again, err := s.ReadAllRows(ctx, "Moradores")
	require.NoError(t, err)
	assert.Equal(t, "Ana", again[0][1])
}

func TestStorage_WriteCells(t *testing.T) {
	ctx := context.Background()
	s := newTable(t)
	require.NoError(t, s.AppendRow(ctx, "Moradores", []any{int64(1), "Ana"}))

	require.NoError(t, s.WriteCell(ctx, "Moradores", 0, 1, "Ana Maria"))
	require.NoError(t, s.WriteCells(ctx, "Moradores", 0, map[int]any{2: "14C"}))

	rows, err := s.ReadAllRows(ctx, "Moradores")
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), "Ana Maria", "14C"}, rows[0])

	assert.ErrorIs(t, s.WriteCell(ctx, "Moradores", 5, 1, "x"), sheet.ErrRowOutOfRange)
}

func TestStorage_DeleteRowShiftsLaterRows(t *testing.T) {
	ctx := context.Background()
	s := newTable(t)
	for i := int64(1); i <= 3; i++ {
		require.NoError(t, s.AppendRow(ctx, "Moradores", []any{i, "n", "u"}))
	}

	require.NoError(t, s.DeleteRow(ctx, "Moradores", 0))

	rows, err := s.ReadAllRows(ctx, "Moradores")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0][0])
	assert.Equal(t, int64(3), rows[1][0])
}

func TestStorage_Tables(t *testing.T) {
	ctx := context.Background()
	s := newTable(t)

	exists, err := s.TableExists(ctx, "Moradores")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.TableExists(ctx, "OS")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, s.CreateTable(ctx, "Moradores", sheet.Schema{{Name: "id"}}), sheet.ErrTableExists)
	require.NoError(t, s.CreateTable(ctx, "Bases", sheet.Schema{{Name: "id"}}))

	names, err := s.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bases", "Moradores"}, names)

	_, err = s.Header(ctx, "OS")
	assert.ErrorIs(t, err, sheet.ErrTableNotFound)
}
