package filtering

import (
	"strings"

	"github.com/hashicorp/go-bexpr"
	"github.com/pkg/errors"
	"github.com/vfg2006/manipulados-eda/internal/domain"
	"github.com/vfg2006/manipulados-eda/pkg/log"
)

// RowFilter seleciona as linhas cuja coluna corresponde aos valores procurados
type RowFilter interface {
	Filter(table *domain.Table, column string, targets domain.Targets) (*domain.Table, error)
	FilterExpression(table *domain.Table, expr string) (*domain.Table, error)
}

type Service struct{}

func NewService() RowFilter {
	return &Service{}
}

// Filter devolve uma nova tabela com as linhas em que column é igual ao alvo (Scalar)
// ou pertence ao conjunto (Set). A ordem das linhas é preservada e a entrada não é alterada.
func (s *Service) Filter(table *domain.Table, column string, targets domain.Targets) (*domain.Table, error) {
	if err := checkColumn(table, column); err != nil {
		return nil, err
	}

	if !targets.Valid() {
		log.L.Warn("Valores procurados inválidos, tente inserir um valor ou uma lista de valores não vazia.")
		return nil, ErrInvalidTargets
	}

	match := targets.Matcher()
	filtered := table.Where(func(row domain.Row) bool {
		v, _ := row.Get(column)
		return match(v)
	})

	log.L.WithFields(log.Fields{
		"column":  column,
		"targets": targets.Values(),
		"rows":    filtered.Len(),
	}).Debug("Filtro de linhas aplicado")

	return filtered, nil
}

// FilterExpression filtra com uma expressão booleana sobre as colunas da linha,
// por exemplo `UF_VENDA == "SP" and SEXO == "1"`
func (s *Service) FilterExpression(table *domain.Table, expr string) (*domain.Table, error) {
	if table == nil {
		log.L.Warn("DataFrame inválido, tente inserir outro DataFrame.")
		return nil, ErrInvalidTable
	}

	evaluator, err := bexpr.CreateEvaluator(expr)
	if err != nil {
		log.L.WithError(err).Warnf("Expressão de filtro inválida: '%s'", expr)
		return nil, errors.Wrapf(ErrInvalidExpression, "'%s': %s", expr, err.Error())
	}

	var evalErr error
	filtered := table.Where(func(row domain.Row) bool {
		if evalErr != nil {
			return false
		}
		ok, err := evaluator.Evaluate(row.Map())
		if err != nil {
			evalErr = errors.Wrapf(ErrInvalidExpression, "erro ao avaliar '%s': %s", expr, err.Error())
			return false
		}
		return ok
	})
	if evalErr != nil {
		log.L.WithError(evalErr).Warn("Não foi possível avaliar a expressão de filtro")
		return nil, evalErr
	}

	return filtered, nil
}

func checkColumn(table *domain.Table, column string) error {
	if table == nil {
		log.L.Warn("DataFrame inválido, tente inserir outro DataFrame.")
		return ErrInvalidTable
	}

	if strings.TrimSpace(column) == "" {
		log.L.Warn("Tente inserir um nome de coluna válido como string.")
		return ErrInvalidColumn
	}

	if !table.HasColumn(column) {
		log.L.WithField("column", column).Warn("Coluna selecionada inválida, tente inserir o nome de uma coluna do DataFrame.")
		return errors.Wrapf(ErrUnknownColumn, "'%s'", column)
	}

	return nil
}
