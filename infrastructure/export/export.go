package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/vfg2006/manipulados-eda/infrastructure/source"
	"github.com/vfg2006/manipulados-eda/internal/domain"
	"github.com/vfg2006/manipulados-eda/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// Limite de linhas de uma planilha, contando o cabeçalho
const maxSheetRows = 1048576

var (
	ErrInvalidPath  = errors.New("invalid output path")
	ErrTooManyRows  = errors.New("table exceeds spreadsheet row limit")
	ErrInvalidTable = errors.New("invalid table")
)

// WriteCSV grava a tabela em CSV separado por ';' e UTF-8.
// O arquivo final só aparece quando a escrita termina.
func WriteCSV(table *domain.Table, path string) error {
	if table == nil {
		return ErrInvalidTable
	}
	if !strings.HasSuffix(strings.ToLower(path), ".csv") {
		return pkgerrors.Wrapf(ErrInvalidPath, "'%s' deve terminar com .csv", path)
	}

	return writeAtomic(path, func(f *os.File) error {
		return source.Encode(f, table)
	})
}

// WriteXLSX grava a tabela em uma planilha
func WriteXLSX(table *domain.Table, path, sheet string) error {
	if table == nil {
		return ErrInvalidTable
	}
	if table.Len()+1 > maxSheetRows {
		return pkgerrors.Wrapf(ErrTooManyRows, "%d linhas", table.Len())
	}

	header := make([]interface{}, 0, len(table.Columns()))
	for _, c := range table.Columns() {
		header = append(header, c)
	}

	rows := make([][]interface{}, table.Len())
	for i, row := range table.Rows() {
		values := row.Values()
		cells := make([]interface{}, len(values))
		for j, v := range values {
			cells[j] = v
		}
		rows[i] = cells
	}

	return writeSheet(path, sheet, header, rows)
}

// WriteCountsXLSX grava contagens por valor em duas colunas: o atributo e "vendas"
func WriteCountsXLSX(counts []domain.Count, attribute, path, sheet string) error {
	header := []interface{}{attribute, "vendas"}

	rows := make([][]interface{}, len(counts))
	for i, c := range counts {
		rows[i] = []interface{}{c.Value, c.Sales}
	}

	return writeSheet(path, sheet, header, rows)
}

func writeSheet(path, sheet string, header []interface{}, rows [][]interface{}) error {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return pkgerrors.Wrapf(ErrInvalidPath, "'%s' deve terminar com .xlsx", path)
	}
	if strings.TrimSpace(sheet) == "" {
		sheet = "Sheet1"
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return pkgerrors.Wrapf(err, "nome de planilha '%s' inválido", sheet)
		}
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	return writeAtomic(path, func(out *os.File) error {
		_, err := f.WriteTo(out)
		return err
	})
}

// writeAtomic escreve em um arquivo temporário no mesmo diretório e renomeia ao final
func writeAtomic(path string, write func(*os.File) error) error {
	name, err := utils.TempName(filepath.Base(path))
	if err != nil {
		return err
	}
	tmp := filepath.Join(filepath.Dir(path), name)

	f, err := os.Create(tmp)
	if err != nil {
		return pkgerrors.Wrapf(ErrInvalidPath, "%s: %s", path, err.Error())
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return pkgerrors.Wrapf(err, "erro ao escrever %s", path)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return pkgerrors.Wrapf(err, "erro ao mover %s", path)
	}
	return nil
}
