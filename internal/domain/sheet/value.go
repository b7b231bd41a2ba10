package sheet

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// CellString renders a cell or identifier the way identifiers are compared.
// Numbers never use exponent notation, so 1760000000000 stays intact.
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return strconv.FormatInt(n, 10)
		}
		if f, err := x.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// Accepts reports whether v may be stored in the column. nil is accepted by
// every column.
func (c Column) Accepts(v any) bool {
	if v == nil {
		return true
	}
	switch c.Type {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeNumber:
		switch x := v.(type) {
		case json.Number:
			_, err := x.Float64()
			return err == nil
		case float64, float32, int, int32, int64:
			return true
		}
		return false
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	default:
		return true
	}
}
