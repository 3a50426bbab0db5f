package dating

import (
	"strconv"

	"github.com/vfg2006/manipulados-eda/internal/domain"
	"github.com/vfg2006/manipulados-eda/pkg/log"
)

const (
	minYear = 2014
	maxYear = 2021
)

const formatHint = "Formato da data está incorreto ou ela não está entre Janeiro de 2014 e Novembro de 2021, tente inserir como ANO/mês, ex: '2015/05'."

// Validate confere se as duas datas formam um intervalo dentro da cobertura da base.
// Em caso de falha registra o diagnóstico e devolve um *DateError.
func Validate(start, end string) error {
	_, err := validate(start, end)
	return err
}

// Enumerate devolve todos os meses entre start e end, inclusive.
// Um intervalo inválido devolve uma sequência vazia junto com o erro.
func Enumerate(start, end string) ([]domain.YearMonth, error) {
	r, err := validate(start, end)
	if err != nil {
		return nil, err
	}
	return r.Months(), nil
}

// Range valida e devolve o intervalo tipado
func Range(start, end string) (domain.DateRange, error) {
	return validate(start, end)
}

func validate(start, end string) (domain.DateRange, error) {
	first, err := parseBounded(start, SideStart)
	if err != nil {
		report(err)
		return domain.DateRange{}, err
	}

	last, err := parseBounded(end, SideEnd)
	if err != nil {
		report(err)
		return domain.DateRange{}, err
	}

	if last.Before(first) {
		err := newDateError(ErrEndBeforeStart, SideRange, start+" > "+end)
		log.L.WithFields(log.Fields{
			"start": start,
			"end":   end,
		}).Warn("A data final é anterior à data inicial, tente inverter as datas.")
		return domain.DateRange{}, err
	}

	return domain.DateRange{Start: first, End: last}, nil
}

// parseBounded extrai ano e mês por posição e confere a janela [2014-01, 2021-11]
func parseBounded(value string, side Side) (domain.YearMonth, *DateError) {
	yearStr, monthStr, ok := domain.SplitYearMonth(value)
	if !ok {
		return domain.YearMonth{}, newDateError(ErrDateTooShort, side, value)
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || !isDigits(yearStr) || year < minYear || year > maxYear {
		return domain.YearMonth{}, newDateError(ErrYearOutOfRange, side, value)
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || !isDigits(monthStr) || month < 1 || month > 12 {
		return domain.YearMonth{}, newDateError(ErrMonthOutOfRange, side, value)
	}

	ym := domain.YearMonth{Year: year, Month: month}
	if !ym.InCoverage() {
		return domain.YearMonth{}, newDateError(ErrAfterCoverage, side, value)
	}

	return ym, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func report(err *DateError) {
	log.L.WithFields(log.Fields{
		"date":   err.Value,
		"reason": err.Err.Error(),
	}).Warnf("Problemas com a %s data inserida: %s. %s", err.Side, err.Value, formatHint)
}
