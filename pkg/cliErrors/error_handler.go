package cliErrors

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

// Códigos de erro da linha de comando
const (
	// Erros de entrada (USR)
	ErrInvalidDate    = "USR_001" // Data ou intervalo inválido
	ErrInvalidColumn  = "USR_002" // Coluna ou filtro inválido
	ErrInvalidRequest = "USR_003" // Argumentos inválidos
	ErrInvalidOutput  = "USR_004" // Caminho de saída inválido

	// Erros de dados (DAT)
	ErrNoData        = "DAT_001" // Nenhum arquivo mensal carregado
	ErrMissingColumn = "DAT_002" // Coluna ausente na base
	ErrInvalidValue  = "DAT_003" // Valor não numérico

	// Erros de execução (SRV)
	ErrInternal        = "SRV_001" // Erro interno
	ErrExternalService = "SRV_003" // Falha no portal de dados abertos
	ErrWriteOutput     = "SRV_005" // Falha ao gravar arquivo
)

// Mapeamento de códigos de erro para o status de saída do processo
var exitStatusMap = map[string]int{
	ErrInvalidDate:     2,
	ErrInvalidColumn:   2,
	ErrInvalidRequest:  2,
	ErrInvalidOutput:   2,
	ErrNoData:          3,
	ErrMissingColumn:   3,
	ErrInvalidValue:    3,
	ErrInternal:        1,
	ErrExternalService: 4,
	ErrWriteOutput:     5,
}

// CLIError representa um erro padronizado da linha de comando
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// ExitStatus retorna o status de saída associado ao código
func ExitStatus(code string) int {
	status, exists := exitStatusMap[code]
	if !exists {
		return 1
	}
	return status
}

// WriteError escreve o erro em JSON e retorna o status de saída correspondente
func WriteError(w io.Writer, code string, message string, details any) int {
	cliErr := CLIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w).Encode(cliErr)
	return ExitStatus(code)
}

// FromError cria um erro padronizado a partir de um erro Go
func FromError(err error, code string) CLIError {
	if err == nil {
		return CLIError{
			Code:    ErrInternal,
			Message: "Erro desconhecido",
		}
	}

	return CLIError{
		Code:    code,
		Message: err.Error(),
	}
}
