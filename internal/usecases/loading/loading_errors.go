package loading

import (
	"errors"
	"fmt"

	"github.com/vfg2006/manipulados-eda/internal/domain"
)

// Erros específicos da concatenação de arquivos mensais
var (
	// Fatais: nenhuma tabela é devolvida
	ErrInvalidRange  = errors.New("invalid date range")
	ErrNoMonthLoaded = errors.New("no monthly file could be loaded")

	// Recuperáveis: o mês é pulado e a carga continua
	ErrUnreadableMonth = errors.New("monthly file could not be read")
	ErrSchemaMismatch  = errors.New("monthly file lacks accumulated columns")

	// Filtro de colunas inválido: a tabela completa é mantida
	ErrInvalidColumnFilter = errors.New("invalid column filter")
)

// MonthFailure é um mês pulado durante a carga
type MonthFailure struct {
	Err   error            // Erro base (ErrUnreadableMonth ou ErrSchemaMismatch)
	Month domain.YearMonth // Mês envolvido
	Path  string           // Arquivo que não pôde ser usado
	Cause error            // Causa original
}

// Error implementa a interface error
func (f *MonthFailure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", f.Err.Error(), f.Path, f.Cause.Error())
	}
	return fmt.Sprintf("%s: %s", f.Err.Error(), f.Path)
}

// Unwrap retorna o erro subjacente
func (f *MonthFailure) Unwrap() error {
	return f.Err
}

// LoadResult é a tabela concatenada com o registro dos meses carregados e pulados
type LoadResult struct {
	Table        *domain.Table
	Loaded       []domain.YearMonth
	Skipped      []*MonthFailure
	ColumnFilter error // não nulo quando o filtro de colunas foi descartado
}
