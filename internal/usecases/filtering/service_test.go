package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/manipulados-eda/internal/domain"
	"github.com/vfg2006/manipulados-eda/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

func newPrincipleTable(t *testing.T) *domain.Table {
	t.Helper()
	return domain.MustTable(
		[]string{"PRINCIPLE", "QTY"},
		[]string{"A", "1"},
		[]string{"B", "2"},
		[]string{"A", "3"},
	)
}

func TestFilter_Scalar(t *testing.T) {
	table := newPrincipleTable(t)

	filtered, err := NewService().Filter(table, "PRINCIPLE", domain.Scalar("A"))
	require.NoError(t, err)

	qty, err := filtered.Column("QTY")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, qty)
}

func TestFilter_ConjuntoUnitarioIgualAoEscalar(t *testing.T) {
	table := newPrincipleTable(t)
	svc := NewService()

	scalar, err := svc.Filter(table, "PRINCIPLE", domain.Scalar("A"))
	require.NoError(t, err)
	set, err := svc.Filter(table, "PRINCIPLE", domain.Set("A"))
	require.NoError(t, err)

	assert.Equal(t, scalar.Columns(), set.Columns())
	for i := 0; i < scalar.Len(); i++ {
		assert.Equal(t, scalar.Row(i).Values(), set.Row(i).Values())
	}
	assert.Equal(t, scalar.Len(), set.Len())
}

func TestFilter_Conjunto(t *testing.T) {
	table := domain.MustTable(
		[]string{domain.ColumnActiveIngr, domain.ColumnSaleState},
		[]string{"CLOROQUINA", "SP"},
		[]string{"ZOLPIDEM", "RJ"},
		[]string{"HIDROXICLOROQUINA", "MG"},
		[]string{"TESTOSTERONA", "BA"},
	)

	filtered, err := NewService().Filter(table, domain.ColumnActiveIngr, domain.Set(domain.ChloroquineIngredients...))
	require.NoError(t, err)

	states, _ := filtered.Column(domain.ColumnSaleState)
	assert.Equal(t, []string{"SP", "MG"}, states)
}

func TestFilter_IgualdadeTextual(t *testing.T) {
	table := domain.MustTable(
		[]string{"MES_VENDA"},
		[]string{"1"},
		[]string{"01"},
		[]string{"1.0"},
	)

	filtered, err := NewService().Filter(table, "MES_VENDA", domain.Scalar("1"))
	require.NoError(t, err)
	assert.Equal(t, 1, filtered.Len())
}

func TestFilter_Erros(t *testing.T) {
	tests := []struct {
		name     string
		table    *domain.Table
		column   string
		expected error
	}{
		{
			name:     "Tabela nula",
			table:    nil,
			column:   "PRINCIPLE",
			expected: ErrInvalidTable,
		},
		{
			name:     "Coluna em branco",
			table:    newPrincipleTable(t),
			column:   "  ",
			expected: ErrInvalidColumn,
		},
		{
			name:     "Coluna inexistente",
			table:    newPrincipleTable(t),
			column:   "NAO_EXISTE",
			expected: ErrUnknownColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered, err := NewService().Filter(tt.table, tt.column, domain.Scalar("A"))
			assert.Nil(t, filtered)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestFilter_AlvosInvalidos(t *testing.T) {
	tests := []struct {
		name    string
		targets domain.Targets
	}{
		{name: "Alvo não inicializado", targets: domain.Targets{}},
		{name: "Conjunto vazio", targets: domain.Set()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := newPrincipleTable(t)

			filtered, err := NewService().Filter(table, "PRINCIPLE", tt.targets)
			assert.Nil(t, filtered)
			assert.ErrorIs(t, err, ErrInvalidTargets)
			assert.Equal(t, 3, table.Len())
		})
	}
}

func TestFilter_NaoAlteraEntrada(t *testing.T) {
	table := newPrincipleTable(t)
	before := [][]string{table.Row(0).Values(), table.Row(1).Values(), table.Row(2).Values()}

	_, err := NewService().Filter(table, "NAO_EXISTE", domain.Scalar("A"))
	require.Error(t, err)
	_, err = NewService().Filter(table, "PRINCIPLE", domain.Scalar("B"))
	require.NoError(t, err)

	assert.Equal(t, []string{"PRINCIPLE", "QTY"}, table.Columns())
	require.Equal(t, 3, table.Len())
	for i, values := range before {
		assert.Equal(t, values, table.Row(i).Values())
	}
}

func TestFilterExpression(t *testing.T) {
	table := domain.MustTable(
		[]string{domain.ColumnSaleState, domain.ColumnPatientSex},
		[]string{"SP", "1"},
		[]string{"SP", "2"},
		[]string{"RJ", "1"},
	)

	tests := []struct {
		name     string
		expr     string
		expected []string
		err      error
	}{
		{
			name:     "Conjunção de igualdades",
			expr:     `UF_VENDA == "SP" and SEXO == "1"`,
			expected: []string{"SP"},
		},
		{
			name:     "Disjunção",
			expr:     `UF_VENDA == "RJ" or SEXO == "2"`,
			expected: []string{"SP", "RJ"},
		},
		{
			name:     "Expressão regular",
			expr:     `UF_VENDA matches "^(RJ|MG)$"`,
			expected: []string{"RJ"},
		},
		{
			name: "Expressão inválida",
			expr: `UF_VENDA ==`,
			err:  ErrInvalidExpression,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered, err := NewService().FilterExpression(table, tt.expr)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Nil(t, filtered)
				return
			}
			require.NoError(t, err)
			states, _ := filtered.Column(domain.ColumnSaleState)
			assert.Equal(t, tt.expected, states)
		})
	}

	_, err := NewService().FilterExpression(nil, `UF_VENDA == "SP"`)
	assert.ErrorIs(t, err, ErrInvalidTable)
}
