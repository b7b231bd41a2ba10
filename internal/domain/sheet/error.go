package sheet

import (
	"errors"
	"fmt"

	"telemim/internal/domain/apperr"
)

var (
	ErrTableNotFound  = errors.New("table not found")
	ErrRecordNotFound = errors.New("record not found")
	ErrTableExists    = errors.New("table already exists")
	ErrInvalidSchema  = errors.New("invalid table schema")
	ErrInvalidValue   = errors.New("invalid value")
	ErrRowOutOfRange  = errors.New("row index out of range")
)

func tableNotFound(table string) error {
	return apperr.NotFound(ErrTableNotFound, fmt.Sprintf("table not found: %s", table))
}

func recordNotFound(id any) error {
	return apperr.NotFound(ErrRecordNotFound, fmt.Sprintf("record not found with ID: %s", CellString(id)))
}
