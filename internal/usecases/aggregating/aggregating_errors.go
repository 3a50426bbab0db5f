package aggregating

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTable    = errors.New("invalid table")
	ErrMissingColumn   = errors.New("column not found in table")
	ErrNonNumericValue = errors.New("non numeric value")
	ErrInvalidMonth    = errors.New("month must be between 1 and 12")
)

// CellError indica a linha e a coluna de um valor que não pôde ser convertido
type CellError struct {
	Err    error
	Row    int
	Column string
	Value  string
}

func (e *CellError) Error() string {
	return fmt.Sprintf("linha %d, coluna %s, valor '%s': %s", e.Row, e.Column, e.Value, e.Err.Error())
}

func (e *CellError) Unwrap() error {
	return e.Err
}
