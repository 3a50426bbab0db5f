package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/manipulados-eda/infrastructure/source"
	"github.com/vfg2006/manipulados-eda/internal/domain"
	"github.com/xuri/excelize/v2"
)

func newSalesTable(t *testing.T) *domain.Table {
	t.Helper()
	return domain.MustTable(
		[]string{domain.ColumnSaleYear, domain.ColumnSaleState, domain.ColumnSaleCity},
		[]string{"2020", "SP", "SÃO PAULO"},
		[]string{"2020", "PA", "BELÉM"},
	)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloroquina.csv")
	require.NoError(t, WriteCSV(newSalesTable(t), path))

	table, err := source.NewCSVReader().Read(path)
	require.NoError(t, err)
	assert.Equal(t, newSalesTable(t).Columns(), table.Columns())
	cities, _ := table.Column(domain.ColumnSaleCity)
	assert.Equal(t, []string{"SÃO PAULO", "BELÉM"}, cities)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "arquivo temporário removido")
}

func TestWriteCSV_Erros(t *testing.T) {
	assert.ErrorIs(t, WriteCSV(nil, filepath.Join(t.TempDir(), "x.csv")), ErrInvalidTable)
	assert.ErrorIs(t, WriteCSV(newSalesTable(t), filepath.Join(t.TempDir(), "x.txt")), ErrInvalidPath)
	assert.ErrorIs(t, WriteCSV(newSalesTable(t), filepath.Join(t.TempDir(), "nao_existe", "x.csv")), ErrInvalidPath)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendas.xlsx")
	require.NoError(t, WriteXLSX(newSalesTable(t), path, "Vendas"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows("Vendas")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"ANO_VENDA", "UF_VENDA", "MUNICIPIO_VENDA"},
		{"2020", "SP", "SÃO PAULO"},
		{"2020", "PA", "BELÉM"},
	}, rows)
}

func TestWriteCountsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contagem.xlsx")
	counts := []domain.Count{{Value: "RJ", Sales: 2}, {Value: "SP", Sales: 1}}

	require.NoError(t, WriteCountsXLSX(counts, domain.ColumnSaleState, path, ""))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"UF_VENDA", "vendas"},
		{"RJ", "2"},
		{"SP", "1"},
	}, rows)

	assert.ErrorIs(t, WriteCountsXLSX(counts, "UF", filepath.Join(t.TempDir(), "x.csv"), ""), ErrInvalidPath)
}
