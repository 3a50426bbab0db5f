package domain

import (
	"fmt"
)

// YearMonth representa um mês do calendário, serializado como "YYYYMM"
type YearMonth struct {
	Year  int
	Month int
}

// Janela de cobertura publicada da base de Manipulados
var (
	FirstAvailableMonth = YearMonth{Year: 2014, Month: 1}
	LastAvailableMonth  = YearMonth{Year: 2021, Month: 11}
)

// String retorna o token "YYYYMM"
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d%02d", ym.Year, ym.Month)
}

// YearString retorna o ano com quatro dígitos
func (ym YearMonth) YearString() string {
	return fmt.Sprintf("%04d", ym.Year)
}

// MonthString retorna o mês com dois dígitos
func (ym YearMonth) MonthString() string {
	return fmt.Sprintf("%02d", ym.Month)
}

// Before compara por ano e depois por mês
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// Next avança um mês, virando o ano em dezembro
func (ym YearMonth) Next() YearMonth {
	if ym.Month == 12 {
		return YearMonth{Year: ym.Year + 1, Month: 1}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// MonthsUntil conta os meses de ym até end, inclusive. Retorna 0 se end < ym.
func (ym YearMonth) MonthsUntil(end YearMonth) int {
	n := (end.Year-ym.Year)*12 + (end.Month - ym.Month) + 1
	if n < 0 {
		return 0
	}
	return n
}

// InCoverage indica se o mês está dentro da janela publicada
func (ym YearMonth) InCoverage() bool {
	return !ym.Before(FirstAvailableMonth) && !LastAvailableMonth.Before(ym)
}

// SplitYearMonth extrai o ano (4 primeiros caracteres) e o mês (2 últimos caracteres).
// Separadores entre ano e mês são ignorados: "2015/05" e "201505" são equivalentes.
func SplitYearMonth(value string) (year string, month string, ok bool) {
	if len(value) < 6 {
		return "", "", false
	}
	return value[:4], value[len(value)-2:], true
}

// DateRange é um intervalo inclusivo e ordenado de meses
type DateRange struct {
	Start YearMonth
	End   YearMonth
}

// Months materializa o intervalo em ordem cronológica
func (r DateRange) Months() []YearMonth {
	months := make([]YearMonth, 0, r.Start.MonthsUntil(r.End))
	for current := r.Start; !r.End.Before(current); current = current.Next() {
		months = append(months, current)
	}
	return months
}

// MonthNames mapeia o número do mês para o nome em português
var MonthNames = map[int]string{
	1:  "Janeiro",
	2:  "Fevereiro",
	3:  "Março",
	4:  "Abril",
	5:  "Maio",
	6:  "Junho",
	7:  "Julho",
	8:  "Agosto",
	9:  "Setembro",
	10: "Outubro",
	11: "Novembro",
	12: "Dezembro",
}

// YearMonthStrings converte uma sequência de meses em tokens "YYYYMM"
func YearMonthStrings(months []YearMonth) []string {
	out := make([]string, len(months))
	for i, m := range months {
		out[i] = m.String()
	}
	return out
}
