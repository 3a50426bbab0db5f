package dating

import (
	"errors"
	"fmt"
)

// Erros de validação de datas
var (
	ErrDateTooShort    = errors.New("date too short")
	ErrYearOutOfRange  = errors.New("year out of range")
	ErrMonthOutOfRange = errors.New("month out of range")
	ErrAfterCoverage   = errors.New("date after dataset coverage")
	ErrEndBeforeStart  = errors.New("end date before start date")
)

// Side identifica qual das duas datas falhou
type Side string

const (
	SideStart Side = "primeira"
	SideEnd   Side = "segunda"
	SideRange Side = "intervalo"
)

// DateError é um erro de validação com a data envolvida
type DateError struct {
	Err   error  // Erro base
	Side  Side   // Qual data falhou
	Value string // Valor recebido
}

// Error implementa a interface error
func (e *DateError) Error() string {
	return fmt.Sprintf("%s data '%s': %s", e.Side, e.Value, e.Err.Error())
}

// Unwrap retorna o erro subjacente
func (e *DateError) Unwrap() error {
	return e.Err
}

func newDateError(err error, side Side, value string) *DateError {
	return &DateError{Err: err, Side: side, Value: value}
}
