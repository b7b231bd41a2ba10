package sheet

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ColumnType restricts the values a column accepts.
type ColumnType string

const (
	TypeAny     ColumnType = "any"
	TypeString  ColumnType = "string"
	TypeNumber  ColumnType = "number"
	TypeBoolean ColumnType = "boolean"
)

// Column is one entry of a table header.
type Column struct {
	Name string     `json:"name" validate:"required"`
	Type ColumnType `json:"type,omitempty" validate:"omitempty,oneof=any string number boolean"`
}

// Schema is the ordered header of a table. The first column always holds
// the record identifier.
type Schema []Column

// Record is one data row keyed by column name.
type Record map[string]any

var validate = validator.New()

// ParseColumn parses "name" or "name:type".
func ParseColumn(spec string) (Column, error) {
	name, typ, _ := strings.Cut(spec, ":")
	col := Column{Name: strings.TrimSpace(name), Type: ColumnType(strings.TrimSpace(typ))}
	if col.Type == "" {
		col.Type = TypeAny
	}
	if err := validate.Struct(col); err != nil {
		return Column{}, fmt.Errorf("%w: column %q: %v", ErrInvalidSchema, spec, err)
	}
	return col, nil
}

// Validate checks that the schema has at least the identifier column and
// that column names are non-empty and unique.
func (s Schema) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty header", ErrInvalidSchema)
	}
	seen := make(map[string]struct{}, len(s))
	for i, col := range s {
		if err := validate.Struct(col); err != nil {
			return fmt.Errorf("%w: column %d: %v", ErrInvalidSchema, i+1, err)
		}
		if _, ok := seen[col.Name]; ok {
			return fmt.Errorf("%w: duplicate column %q", ErrInvalidSchema, col.Name)
		}
		seen[col.Name] = struct{}{}
	}
	return nil
}

// Index returns the position of the named column or -1.
func (s Schema) Index(name string) int {
	for i, col := range s {
		if col.Name == name {
			return i
		}
	}
	return -1
}

func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, col := range s {
		names[i] = col.Name
	}
	return names
}

// ToRecord zips the header with a row. Missing cells read as "".
func (s Schema) ToRecord(row []any) Record {
	rec := make(Record, len(s))
	for i, col := range s {
		if i < len(row) {
			rec[col.Name] = row[i]
		} else {
			rec[col.Name] = ""
		}
	}
	return rec
}

// CheckValues validates the supplied values against the typed columns of
// the schema. Keys that are not columns are ignored.
func (s Schema) CheckValues(data map[string]any) error {
	for _, col := range s[1:] {
		v, ok := data[col.Name]
		if !ok {
			continue
		}
		if !col.Accepts(v) {
			return fmt.Errorf("%w: column %q expects %s", ErrInvalidValue, col.Name, col.Type)
		}
	}
	return nil
}
