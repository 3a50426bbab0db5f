package loading

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/manipulados-eda/infrastructure/source"
	"github.com/vfg2006/manipulados-eda/internal/config"
	"github.com/vfg2006/manipulados-eda/internal/domain"
	"github.com/vfg2006/manipulados-eda/internal/usecases/dating"
	"github.com/vfg2006/manipulados-eda/pkg/log"
)

// DatasetLoader concatena arquivos mensais em uma única tabela
type DatasetLoader interface {
	Load(start, end string, columns []string) (*LoadResult, error)
}

// Service implementa DatasetLoader sobre um diretório local
type Service struct {
	reader source.Reader
	dir    string
	prefix string
}

// NewService cria o carregador a partir da configuração da base
func NewService(cfg *config.Config, reader source.Reader) *Service {
	return New(reader, cfg.Dataset.Dir, cfg.Dataset.FilePrefix)
}

// New cria o carregador para um diretório e prefixo explícitos
func New(reader source.Reader, dir, prefix string) *Service {
	return &Service{
		reader: reader,
		dir:    dir,
		prefix: prefix,
	}
}

// Load lê os meses entre start e end e concatena as linhas em ordem cronológica.
//
// columns nil significa sem filtro. Um filtro inválido é descartado e a tabela completa é
// devolvida. Meses ilegíveis ou sem as colunas acumuladas são pulados; a carga só falha
// quando o intervalo é inválido ou nenhum mês pôde ser lido.
func (s *Service) Load(start, end string, columns []string) (*LoadResult, error) {
	months, err := dating.Enumerate(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}

	result := &LoadResult{}
	logger := log.L.WithFields(log.Fields{
		"start":  start,
		"end":    end,
		"months": len(months),
	})

	for _, month := range months {
		path := source.FilePath(s.dir, s.prefix, month)

		table, err := s.reader.Read(path)
		if err != nil {
			s.skip(result, &MonthFailure{Err: ErrUnreadableMonth, Month: month, Path: path, Cause: err})
			continue
		}

		if result.Table == nil {
			result.Table = s.applyColumnFilter(result, table, columns)
			result.Loaded = append(result.Loaded, month)
			continue
		}

		projected, err := table.Select(result.Table.Columns())
		if err != nil {
			s.skip(result, &MonthFailure{Err: ErrSchemaMismatch, Month: month, Path: path, Cause: err})
			continue
		}

		if err := result.Table.Append(projected); err != nil {
			s.skip(result, &MonthFailure{Err: ErrSchemaMismatch, Month: month, Path: path, Cause: err})
			continue
		}
		result.Loaded = append(result.Loaded, month)
	}

	if result.Table == nil {
		logger.Error("Nenhum arquivo mensal pôde ser convertido em tabela")
		return nil, errors.Wrapf(ErrNoMonthLoaded, "%d meses tentados em '%s'", len(months), s.dir)
	}

	logger.WithFields(log.Fields{
		"loaded":  len(result.Loaded),
		"skipped": len(result.Skipped),
		"rows":    result.Table.Len(),
	}).Debug("Concatenação de arquivos mensais concluída")

	return result, nil
}

// applyColumnFilter projeta a primeira tabela nas colunas pedidas ou mantém a tabela inteira
func (s *Service) applyColumnFilter(result *LoadResult, table *domain.Table, columns []string) *domain.Table {
	if columns == nil {
		return table
	}

	if err := validateColumns(columns); err != nil {
		log.L.WithError(err).Warn("As colunas filtradas devem ser uma lista de strings das colunas do dataframe, tente inserir novamente.")
		result.ColumnFilter = err
		return table
	}

	if missing := table.MissingColumns(columns); len(missing) > 0 {
		err := errors.Wrapf(ErrInvalidColumnFilter, "colunas ausentes: %s", strings.Join(missing, ", "))
		log.L.WithError(err).Warn("Uma ou mais colunas do filtro não estão nas colunas do dataframe, tente verificar as colunas do filtro.")
		result.ColumnFilter = err
		return table
	}

	projected, err := table.Select(columns)
	if err != nil {
		result.ColumnFilter = errors.Wrap(ErrInvalidColumnFilter, err.Error())
		return table
	}
	return projected
}

func validateColumns(columns []string) error {
	if len(columns) == 0 {
		return errors.Wrap(ErrInvalidColumnFilter, "lista de colunas vazia")
	}

	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if strings.TrimSpace(c) == "" {
			return errors.Wrap(ErrInvalidColumnFilter, "nome de coluna vazio")
		}
		if _, dup := seen[c]; dup {
			return errors.Wrapf(ErrInvalidColumnFilter, "coluna '%s' repetida", c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

func (s *Service) skip(result *LoadResult, failure *MonthFailure) {
	result.Skipped = append(result.Skipped, failure)

	msg := "Não foi possível converter '%s' em dataframe"
	if errors.Is(failure.Err, ErrSchemaMismatch) {
		msg = "O arquivo '%s' não possui as colunas acumuladas, mês ignorado"
	}

	log.L.WithError(failure.Cause).WithFields(log.Fields{
		"month": failure.Month.String(),
		"path":  failure.Path,
	}).Warnf(msg, failure.Path)
}
