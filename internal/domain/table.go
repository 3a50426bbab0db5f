package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Colunas da base de Manipulados usadas nas análises
const (
	ColumnSaleYear       = "ANO_VENDA"
	ColumnSaleMonth      = "MES_VENDA"
	ColumnSaleState      = "UF_VENDA"
	ColumnSaleCity       = "MUNICIPIO_VENDA"
	ColumnActiveIngr     = "PRINCIPIO_ATIVO"
	ColumnUnitQuantity   = "QTD_UNIDADE_FARMACOTECNICA"
	ColumnPrescriberUF   = "UF_CONSELHO_PRESCRITOR"
	ColumnPatientSex     = "SEXO"
	ColumnPatientAge     = "IDADE"
	ColumnPatientAgeUnit = "UNIDADE_IDADE"
)

// Table é uma coleção ordenada de linhas com colunas nomeadas.
// As células guardam o texto original do CSV, sem inferência de tipo.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// Row é uma visão somente leitura de uma linha da tabela
type Row struct {
	table  *Table
	values []string
}

// NewTable cria uma tabela vazia com as colunas dadas.
// Colunas repetidas ou vazias são rejeitadas.
func NewTable(columns []string) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if strings.TrimSpace(c) == "" {
			return nil, fmt.Errorf("coluna %d sem nome", i)
		}
		if _, exists := index[c]; exists {
			return nil, fmt.Errorf("coluna '%s' repetida", c)
		}
		index[c] = i
	}

	cols := make([]string, len(columns))
	copy(cols, columns)

	return &Table{
		columns: cols,
		index:   index,
	}, nil
}

// MustTable é usado em testes e constantes conhecidas
func MustTable(columns []string, rows ...[]string) *Table {
	t, err := NewTable(columns)
	if err != nil {
		panic(err)
	}
	for _, r := range rows {
		if err := t.AppendRow(r); err != nil {
			panic(err)
		}
	}
	return t
}

// Columns retorna uma cópia da lista de colunas
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// HasColumn indica se a coluna existe
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len retorna o número de linhas
func (t *Table) Len() int {
	return len(t.rows)
}

// AppendRow adiciona uma linha; o número de valores deve bater com as colunas
func (t *Table) AppendRow(values []string) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("linha com %d valores para %d colunas", len(values), len(t.columns))
	}
	row := make([]string, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// Row retorna a i-ésima linha
func (t *Table) Row(i int) Row {
	return Row{table: t, values: t.rows[i]}
}

// Rows percorre as linhas em ordem
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	for i := range t.rows {
		out[i] = Row{table: t, values: t.rows[i]}
	}
	return out
}

// Column retorna os valores de uma coluna em ordem
func (t *Table) Column(name string) ([]string, error) {
	idx, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("coluna '%s' não existe na tabela", name)
	}
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[idx]
	}
	return out, nil
}

// MissingColumns lista as colunas pedidas que não existem na tabela
func (t *Table) MissingColumns(names []string) []string {
	var missing []string
	for _, n := range names {
		if !t.HasColumn(n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// Select projeta a tabela nas colunas pedidas, na ordem pedida
func (t *Table) Select(names []string) (*Table, error) {
	if missing := t.MissingColumns(names); len(missing) > 0 {
		return nil, fmt.Errorf("colunas ausentes: %s", strings.Join(missing, ", "))
	}

	out, err := NewTable(names)
	if err != nil {
		return nil, err
	}

	positions := make([]int, len(names))
	for i, n := range names {
		positions[i] = t.index[n]
	}

	out.rows = make([][]string, len(t.rows))
	for i, r := range t.rows {
		projected := make([]string, len(positions))
		for j, p := range positions {
			projected[j] = r[p]
		}
		out.rows[i] = projected
	}

	return out, nil
}

// Append anexa as linhas de other, que precisa ter exatamente as mesmas colunas na mesma ordem
func (t *Table) Append(other *Table) error {
	if len(other.columns) != len(t.columns) {
		return fmt.Errorf("esquemas incompatíveis: %d colunas contra %d", len(other.columns), len(t.columns))
	}
	for i, c := range t.columns {
		if other.columns[i] != c {
			return fmt.Errorf("esquemas incompatíveis na coluna %d: '%s' contra '%s'", i, other.columns[i], c)
		}
	}
	t.rows = append(t.rows, other.rows...)
	return nil
}

// Where retorna uma nova tabela com as linhas que satisfazem keep, preservando a ordem
func (t *Table) Where(keep func(Row) bool) *Table {
	out := &Table{
		columns: t.Columns(),
		index:   t.index,
	}
	for _, r := range t.rows {
		if keep(Row{table: t, values: r}) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// Get retorna o valor da coluna nesta linha
func (r Row) Get(column string) (string, bool) {
	idx, ok := r.table.index[column]
	if !ok {
		return "", false
	}
	return r.values[idx], true
}

// Int converte o valor da coluna em inteiro
func (r Row) Int(column string) (int, error) {
	v, ok := r.Get(column)
	if !ok {
		return 0, fmt.Errorf("coluna '%s' não existe", column)
	}
	return strconv.Atoi(strings.TrimSpace(v))
}

// Float converte o valor da coluna em float, aceitando vírgula decimal
func (r Row) Float(column string) (float64, error) {
	v, ok := r.Get(column)
	if !ok {
		return 0, fmt.Errorf("coluna '%s' não existe", column)
	}
	return strconv.ParseFloat(strings.Replace(strings.TrimSpace(v), ",", ".", 1), 64)
}

// Values retorna uma cópia dos valores da linha
func (r Row) Values() []string {
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

// Map converte a linha em mapa coluna → valor
func (r Row) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for i, c := range r.table.columns {
		out[c] = r.values[i]
	}
	return out
}

// Count é o número de vendas (linhas) de um valor categórico
type Count struct {
	Value string `json:"value"`
	Sales int    `json:"sales"`
}
