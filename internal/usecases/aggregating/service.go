package aggregating

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/manipulados-eda/internal/domain"
	"github.com/vfg2006/manipulados-eda/pkg/log"
	"github.com/vfg2006/manipulados-eda/pkg/utils"
)

type Count = domain.Count

// Sum é o total de uma coluna numérica para um valor
type Sum struct {
	Value string  `json:"value"`
	Total float64 `json:"total"`
}

// MonthlyCount são as vendas de janeiro até um mês de um ano, com a média do período
type MonthlyCount struct {
	Year   int       `json:"year"`
	Months []int     `json:"months"`
	Sales  []float64 `json:"sales"`
	Mean   float64   `json:"mean"`
}

// Point é um ponto de uma série temporal mensal
type Point struct {
	Month domain.YearMonth `json:"month"`
	Sales int              `json:"sales"`
}

// RegionalSeries alinha uma série por região no mesmo eixo de meses
type RegionalSeries struct {
	Months []domain.YearMonth   `json:"months"`
	Sales  map[string][]float64 `json:"sales"`
}

// CountBy conta as linhas por valor da coluna, da maior para a menor contagem.
// Empates são ordenados pelo valor.
func CountBy(table *domain.Table, column string) ([]Count, error) {
	values, err := columnValues(table, column)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}

	return sortedCounts(counts), nil
}

// SumBy soma valueColumn agrupado por groupColumn, do maior para o menor total
func SumBy(table *domain.Table, groupColumn, valueColumn string) ([]Sum, error) {
	if err := requireColumns(table, groupColumn, valueColumn); err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	for i, row := range table.Rows() {
		v, err := row.Float(valueColumn)
		if err != nil {
			raw, _ := row.Get(valueColumn)
			return nil, &CellError{Err: ErrNonNumericValue, Row: i, Column: valueColumn, Value: raw}
		}
		group, _ := row.Get(groupColumn)
		totals[group] += v
	}

	sums := make([]Sum, 0, len(totals))
	for value, total := range totals {
		sums = append(sums, Sum{Value: value, Total: utils.RoundWithTwoDecimalPlace(total)})
	}
	sort.Slice(sums, func(i, j int) bool {
		if sums[i].Total != sums[j].Total {
			return sums[i].Total > sums[j].Total
		}
		return sums[i].Value < sums[j].Value
	})

	return sums, nil
}

// RegionOf devolve a região da UF; siglas desconhecidas retornam false
func RegionOf(uf string) (string, bool) {
	region, ok := domain.StateRegions[strings.ToUpper(strings.TrimSpace(uf))]
	return region, ok
}

// CountByRegion conta as vendas por região. UFs desconhecidas são ignoradas.
func CountByRegion(table *domain.Table, ufColumn string) ([]Count, error) {
	values, err := columnValues(table, ufColumn)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(domain.Regions))
	var unknown int
	for _, uf := range values {
		region, ok := RegionOf(uf)
		if !ok {
			unknown++
			continue
		}
		counts[region]++
	}

	if unknown > 0 {
		log.L.WithField("rows", unknown).Debug("Linhas com UF desconhecida ignoradas na contagem por região")
	}

	return sortedCounts(counts), nil
}

// YearlyCount conta as vendas por ano, do ano com mais vendas para o com menos
func YearlyCount(table *domain.Table, yearColumn string) ([]Count, error) {
	return CountBy(table, yearColumn)
}

// MonthlyCounts conta as vendas de cada mês de 1 até upToMonth do ano pedido.
// Meses sem vendas entram com zero.
func MonthlyCounts(table *domain.Table, year, upToMonth int) (*MonthlyCount, error) {
	if upToMonth < 1 || upToMonth > 12 {
		return nil, errors.Wrapf(ErrInvalidMonth, "%d", upToMonth)
	}
	if err := requireColumns(table, domain.ColumnSaleYear, domain.ColumnSaleMonth); err != nil {
		return nil, err
	}

	sales := make([]float64, upToMonth)
	for i, row := range table.Rows() {
		ym, err := saleMonth(row, i)
		if err != nil {
			return nil, err
		}
		if ym.Year != year || ym.Month < 1 || ym.Month > upToMonth {
			continue
		}
		sales[ym.Month-1]++
	}

	months := make([]int, upToMonth)
	for i := range months {
		months[i] = i + 1
	}

	return &MonthlyCount{
		Year:   year,
		Months: months,
		Sales:  sales,
		Mean:   utils.Mean(sales),
	}, nil
}

// MonthlySeries conta as vendas por mês em ordem cronológica, a partir de ANO_VENDA e MES_VENDA
func MonthlySeries(table *domain.Table) ([]Point, error) {
	if err := requireColumns(table, domain.ColumnSaleYear, domain.ColumnSaleMonth); err != nil {
		return nil, err
	}

	counts := make(map[domain.YearMonth]int)
	for i, row := range table.Rows() {
		ym, err := saleMonth(row, i)
		if err != nil {
			return nil, err
		}
		counts[ym]++
	}

	series := make([]Point, 0, len(counts))
	for ym, n := range counts {
		series = append(series, Point{Month: ym, Sales: n})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Month.Before(series[j].Month)
	})

	return series, nil
}

// BuildRegionalSeries monta uma série mensal por região, com todos os meses da tabela
// presentes em todas as séries
func BuildRegionalSeries(table *domain.Table, ufColumn string) (*RegionalSeries, error) {
	if err := requireColumns(table, domain.ColumnSaleYear, domain.ColumnSaleMonth, ufColumn); err != nil {
		return nil, err
	}

	perRegion := make(map[string]map[domain.YearMonth]int, len(domain.Regions))
	seen := make(map[domain.YearMonth]struct{})
	for i, row := range table.Rows() {
		ym, err := saleMonth(row, i)
		if err != nil {
			return nil, err
		}
		seen[ym] = struct{}{}

		uf, _ := row.Get(ufColumn)
		region, ok := RegionOf(uf)
		if !ok {
			continue
		}
		if perRegion[region] == nil {
			perRegion[region] = make(map[domain.YearMonth]int)
		}
		perRegion[region][ym]++
	}

	months := make([]domain.YearMonth, 0, len(seen))
	for ym := range seen {
		months = append(months, ym)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	result := &RegionalSeries{
		Months: months,
		Sales:  make(map[string][]float64, len(domain.Regions)),
	}
	for _, region := range domain.Regions {
		values := make([]float64, len(months))
		for i, ym := range months {
			values[i] = float64(perRegion[region][ym])
		}
		result.Sales[region] = values
	}

	return result, nil
}

func saleMonth(row domain.Row, i int) (domain.YearMonth, error) {
	year, err := row.Int(domain.ColumnSaleYear)
	if err != nil {
		raw, _ := row.Get(domain.ColumnSaleYear)
		return domain.YearMonth{}, &CellError{Err: ErrNonNumericValue, Row: i, Column: domain.ColumnSaleYear, Value: raw}
	}
	month, err := row.Int(domain.ColumnSaleMonth)
	if err != nil {
		raw, _ := row.Get(domain.ColumnSaleMonth)
		return domain.YearMonth{}, &CellError{Err: ErrNonNumericValue, Row: i, Column: domain.ColumnSaleMonth, Value: raw}
	}
	return domain.YearMonth{Year: year, Month: month}, nil
}

func columnValues(table *domain.Table, column string) ([]string, error) {
	if err := requireColumns(table, column); err != nil {
		return nil, err
	}
	return table.Column(column)
}

func requireColumns(table *domain.Table, columns ...string) error {
	if table == nil {
		log.L.Warn("Dataframe ou atributo inválido, tente inserir outro dataframe ou um atributo como string.")
		return ErrInvalidTable
	}
	if missing := table.MissingColumns(columns); len(missing) > 0 {
		log.L.WithField("columns", missing).Warn("Atributo inválido, insira uma coluna da base de dados.")
		return errors.Wrapf(ErrMissingColumn, "%s", strings.Join(missing, ", "))
	}
	return nil
}

func sortedCounts(counts map[string]int) []Count {
	out := make([]Count, 0, len(counts))
	for value, n := range counts {
		out = append(out, Count{Value: value, Sales: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sales != out[j].Sales {
			return out[i].Sales > out[j].Sales
		}
		return lessValue(out[i].Value, out[j].Value)
	})
	return out
}

// lessValue ordena numericamente quando os dois valores são inteiros ("2" antes de "10")
func lessValue(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return ai < bi
	}
	return a < b
}
