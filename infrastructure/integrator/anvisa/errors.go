package anvisa

import (
	"errors"
	"fmt"

	"github.com/vfg2006/manipulados-eda/internal/domain"
)

var (
	ErrInvalidRange      = errors.New("invalid date range")
	ErrInvalidOutputFile = errors.New("output file must end with .csv")
	ErrNothingDownloaded = errors.New("no month could be downloaded")
)

// MonthError é um mês que não pôde ser baixado
type MonthError struct {
	Month domain.YearMonth
	Err   error
}

func (e *MonthError) Error() string {
	return fmt.Sprintf("mês %s: %s", e.Month.String(), e.Err.Error())
}

func (e *MonthError) Unwrap() error {
	return e.Err
}

// DownloadReport resume os meses baixados e os que falharam
type DownloadReport struct {
	Downloaded []domain.YearMonth `json:"downloaded"`
	Failed     []*MonthError      `json:"-"`
	Bytes      int64              `json:"bytes"`
	Output     string             `json:"output,omitempty"`
}
