package anvisa

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/manipulados-eda/infrastructure/export"
	"github.com/vfg2006/manipulados-eda/infrastructure/integrator/anvisa/anvisaclient"
	"github.com/vfg2006/manipulados-eda/infrastructure/source"
	"github.com/vfg2006/manipulados-eda/internal/config"
	"github.com/vfg2006/manipulados-eda/internal/domain"
	"github.com/vfg2006/manipulados-eda/internal/usecases/dating"
	"github.com/vfg2006/manipulados-eda/pkg/log"
	"github.com/vfg2006/manipulados-eda/pkg/utils"
)

type AnvisaIntegrator interface {
	DownloadMonths(ctx context.Context, start, end, dir string) (*DownloadReport, error)
	DownloadRange(ctx context.Context, start, end, outputFile string) (*DownloadReport, error)
	MissingMonths(dir string) []domain.YearMonth
	DownloadMissing(ctx context.Context, dir string) (*DownloadReport, error)
}

type AnvisaService struct {
	prefix string
	Client anvisaclient.Client
}

func New(cfg *config.Config, client anvisaclient.Client) AnvisaIntegrator {
	return &AnvisaService{
		prefix: cfg.Dataset.FilePrefix,
		Client: client,
	}
}

// DownloadMonths baixa um arquivo local por mês, com o nome usado pelo carregador.
// Meses que falham são registrados e pulados; não há nova tentativa.
func (s *AnvisaService) DownloadMonths(ctx context.Context, start, end, dir string) (*DownloadReport, error) {
	months, err := dating.Enumerate(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}

	return s.downloadEach(ctx, months, dir)
}

// DownloadMissing baixa os meses da cobertura que ainda não existem em dir
func (s *AnvisaService) DownloadMissing(ctx context.Context, dir string) (*DownloadReport, error) {
	missing := s.MissingMonths(dir)
	if len(missing) == 0 {
		return &DownloadReport{}, nil
	}
	return s.downloadEach(ctx, missing, dir)
}

// MissingMonths lista os meses da cobertura sem arquivo local
func (s *AnvisaService) MissingMonths(dir string) []domain.YearMonth {
	coverage := domain.DateRange{Start: domain.FirstAvailableMonth, End: domain.LastAvailableMonth}

	var missing []domain.YearMonth
	for _, month := range coverage.Months() {
		if _, err := os.Stat(source.FilePath(dir, s.prefix, month)); err != nil {
			missing = append(missing, month)
		}
	}
	return missing
}

func (s *AnvisaService) downloadEach(ctx context.Context, months []domain.YearMonth, dir string) (*DownloadReport, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "erro ao criar a pasta %s", dir)
	}

	report := &DownloadReport{}
	logger := log.ForContext(ctx)

	for _, month := range months {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		path := source.FilePath(dir, s.prefix, month)
		n, err := s.downloadTo(ctx, month, path)
		if err != nil {
			report.Failed = append(report.Failed, &MonthError{Month: month, Err: err})
			logger.WithError(err).WithField("month", month.String()).Warnf("Não foi possível baixar %s", filepath.Base(path))
			continue
		}

		report.Downloaded = append(report.Downloaded, month)
		report.Bytes += n
		logger.WithFields(log.Fields{
			"month": month.String(),
			"bytes": n,
		}).Infof("%s adicionado com sucesso!", filepath.Base(path))
	}

	if len(report.Downloaded) == 0 && len(report.Failed) > 0 {
		return report, errors.Wrapf(ErrNothingDownloaded, "%d meses falharam", len(report.Failed))
	}

	return report, nil
}

// downloadTo grava o mês em um temporário ao lado do destino e renomeia quando completo
func (s *AnvisaService) downloadTo(ctx context.Context, month domain.YearMonth, path string) (int64, error) {
	name, err := utils.TempName(filepath.Base(path))
	if err != nil {
		return 0, err
	}
	tmp := filepath.Join(filepath.Dir(path), name)

	f, err := os.Create(tmp)
	if err != nil {
		return 0, err
	}

	n, err := s.Client.FetchMonth(ctx, month, f)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return n, err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return n, err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return n, err
	}
	return n, nil
}

// DownloadRange baixa os meses do intervalo e grava um único CSV concatenado em outputFile.
// Meses que falham ou que não têm as colunas do primeiro mês são pulados.
func (s *AnvisaService) DownloadRange(ctx context.Context, start, end, outputFile string) (*DownloadReport, error) {
	if !strings.HasSuffix(strings.ToLower(outputFile), ".csv") {
		return nil, errors.Wrapf(ErrInvalidOutputFile, "'%s'", outputFile)
	}

	months, err := dating.Enumerate(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}

	report := &DownloadReport{Output: outputFile}
	logger := log.ForContext(ctx)
	var combined *domain.Table

	for _, month := range months {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		table, n, err := s.fetchTable(ctx, month)
		if err == nil && combined != nil {
			var projected *domain.Table
			if projected, err = table.Select(combined.Columns()); err == nil {
				err = combined.Append(projected)
			}
		}
		if err != nil {
			report.Failed = append(report.Failed, &MonthError{Month: month, Err: err})
			logger.WithError(err).WithField("month", month.String()).Warn("Não foi possível adicionar o mês ao arquivo concatenado")
			continue
		}

		if combined == nil {
			combined = table
		}
		report.Downloaded = append(report.Downloaded, month)
		report.Bytes += n
	}

	if combined == nil {
		return report, errors.Wrapf(ErrNothingDownloaded, "%d meses falharam", len(report.Failed))
	}

	if err := export.WriteCSV(combined, outputFile); err != nil {
		return report, err
	}

	logger.WithFields(log.Fields{
		"output": outputFile,
		"months": len(report.Downloaded),
		"rows":   combined.Len(),
	}).Info("Arquivo concatenado gravado")

	return report, nil
}

func (s *AnvisaService) fetchTable(ctx context.Context, month domain.YearMonth) (*domain.Table, int64, error) {
	var buf bytes.Buffer
	n, err := s.Client.FetchMonth(ctx, month, &buf)
	if err != nil {
		return nil, n, err
	}

	table, err := source.Decode(&buf)
	if err != nil {
		return nil, n, errors.Wrapf(err, "erro ao converter o mês %s em tabela", month.String())
	}
	return table, n, nil
}
