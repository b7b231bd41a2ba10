// Package rowcodec encodes table headers and rows for stores that persist
// them as JSON documents.
package rowcodec

import (
	"encoding/json"
	"fmt"
	"strings"

	"telemim/internal/domain/sheet"
)

func EncodeSchema(schema sheet.Schema) (string, error) {
	b, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("encode schema: %w", err)
	}
	return string(b), nil
}

func DecodeSchema(raw string) (sheet.Schema, error) {
	var schema sheet.Schema
	if err := json.Unmarshal([]byte(raw), &schema); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return schema, nil
}

func EncodeRow(values []any) (string, error) {
	if values == nil {
		values = []any{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode row: %w", err)
	}
	return string(b), nil
}

// DecodeRow keeps numbers as json.Number so large identifiers survive
// the round trip without float rounding.
func DecodeRow(raw string) ([]any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var values []any
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("decode row: %w", err)
	}
	return values, nil
}

// SetCells returns a copy of row with cells applied, padding with "" when
// a column lies past the end of the stored row.
func SetCells(row []any, cells map[int]any) []any {
	out := append([]any(nil), row...)
	for col, value := range cells {
		for len(out) <= col {
			out = append(out, "")
		}
		out[col] = value
	}
	return out
}
