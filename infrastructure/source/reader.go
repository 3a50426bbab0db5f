package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/vfg2006/manipulados-eda/internal/domain"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Separator é o separador de campos dos CSVs da ANVISA
const Separator = ';'

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader lê um arquivo mensal e devolve a tabela correspondente
type Reader interface {
	Read(path string) (*domain.Table, error)
}

// FileName monta o nome do arquivo mensal: {prefixo}_{YYYY}_{MM}.csv
func FileName(prefix string, ym domain.YearMonth) string {
	return fmt.Sprintf("%s_%s_%s.csv", prefix, ym.YearString(), ym.MonthString())
}

// FilePath monta o caminho do arquivo mensal dentro do diretório
func FilePath(dir, prefix string, ym domain.YearMonth) string {
	return filepath.Join(dir, FileName(prefix, ym))
}

// CSVReader lê arquivos separados por ';' com decodificação tolerante
type CSVReader struct{}

// NewCSVReader cria um leitor de CSV mensal
func NewCSVReader() Reader {
	return &CSVReader{}
}

// Read abre o arquivo, decodifica e monta a tabela
func (r *CSVReader) Read(path string) (*domain.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir '%s'", path)
	}

	table, err := decodeBytes(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao converter '%s' em tabela", path)
	}

	return table, nil
}

// Decode lê um CSV da ANVISA já em memória.
// Conteúdo UTF-8 válido é usado como está; o restante é tratado como ISO-8859-1.
func Decode(in io.Reader) (*domain.Table, error) {
	raw, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	return decodeBytes(raw)
}

// decodeBytes monta a tabela a partir do conteúdo bruto, sem copiá-lo
func decodeBytes(raw []byte) (*domain.Table, error) {
	text, err := toUTF8(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(text))
	reader.Comma = Separator
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("arquivo vazio, sem cabeçalho")
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler cabeçalho")
	}

	table, err := domain.NewTable(header)
	if err != nil {
		return nil, errors.Wrap(err, "cabeçalho inválido")
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "linha malformada")
		}
		if err := table.AppendRow(record); err != nil {
			return nil, err
		}
	}

	return table, nil
}

func toUTF8(raw []byte) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return raw, nil
	}

	decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar ISO-8859-1")
	}
	return decoded, nil
}
