package filtering

import "errors"

// Erros do filtro de linhas. Em todos os casos nenhuma tabela é devolvida.
var (
	ErrInvalidTable      = errors.New("invalid table")
	ErrInvalidColumn     = errors.New("invalid column name")
	ErrUnknownColumn     = errors.New("column not found in table")
	ErrInvalidExpression = errors.New("invalid filter expression")
	ErrInvalidTargets    = errors.New("targets must hold at least one value")
)
