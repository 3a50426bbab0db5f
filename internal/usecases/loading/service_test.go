package loading

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/manipulados-eda/infrastructure/source"
	"github.com/vfg2006/manipulados-eda/infrastructure/source/mocks"
	"github.com/vfg2006/manipulados-eda/internal/domain"
	"github.com/vfg2006/manipulados-eda/internal/usecases/dating"
	"github.com/vfg2006/manipulados-eda/pkg/log"
	"go.uber.org/mock/gomock"
)

func init() {
	log.SetupTestLogger()
}

const (
	testDir    = "dados"
	testPrefix = "Manipulados"
)

var salesColumns = []string{domain.ColumnSaleYear, domain.ColumnSaleMonth, domain.ColumnSaleState, domain.ColumnActiveIngr}

func monthTable(year, month string, rows ...[]string) *domain.Table {
	t := domain.MustTable(salesColumns)
	for _, r := range rows {
		_ = t.AppendRow(append([]string{year, month}, r...))
	}
	return t
}

func pathFor(year, month int) string {
	return source.FilePath(testDir, testPrefix, domain.YearMonth{Year: year, Month: month})
}

func TestLoad_ConcatenaMesesEmOrdem(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockReader(ctrl)

	gomock.InOrder(
		reader.EXPECT().Read(pathFor(2015, 12)).Return(monthTable("2015", "12", []string{"SP", "HIDROXICLOROQUINA"}), nil),
		reader.EXPECT().Read(pathFor(2016, 1)).Return(monthTable("2016", "1", []string{"RJ", "ZOLPIDEM"}, []string{"MG", "TESTOSTERONA"}), nil),
	)

	result, err := New(reader, testDir, testPrefix).Load("201512", "201601", nil)
	require.NoError(t, err)

	assert.Equal(t, salesColumns, result.Table.Columns())
	assert.Equal(t, 3, result.Table.Len())
	states, _ := result.Table.Column(domain.ColumnSaleState)
	assert.Equal(t, []string{"SP", "RJ", "MG"}, states)
	assert.Equal(t, []domain.YearMonth{{Year: 2015, Month: 12}, {Year: 2016, Month: 1}}, result.Loaded)
	assert.Empty(t, result.Skipped)
	assert.NoError(t, result.ColumnFilter)
}

func TestLoad_MesIntermediarioAusente(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockReader(ctrl)

	reader.EXPECT().Read(pathFor(2017, 1)).Return(monthTable("2017", "1", []string{"SP", "A"}), nil)
	reader.EXPECT().Read(pathFor(2017, 2)).Return(nil, os.ErrNotExist)
	reader.EXPECT().Read(pathFor(2017, 3)).Return(monthTable("2017", "3", []string{"BA", "B"}), nil)

	result, err := New(reader, testDir, testPrefix).Load("201701", "201703", nil)
	require.NoError(t, err)

	months, _ := result.Table.Column(domain.ColumnSaleMonth)
	assert.Equal(t, []string{"1", "3"}, months)

	require.Len(t, result.Skipped, 1)
	assert.ErrorIs(t, result.Skipped[0], ErrUnreadableMonth)
	assert.Equal(t, domain.YearMonth{Year: 2017, Month: 2}, result.Skipped[0].Month)
	assert.Equal(t, pathFor(2017, 2), result.Skipped[0].Path)
	assert.True(t, errors.Is(result.Skipped[0].Cause, os.ErrNotExist))
}

func TestLoad_PrimeiroMesAusente(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockReader(ctrl)

	reader.EXPECT().Read(pathFor(2018, 5)).Return(nil, os.ErrNotExist)
	reader.EXPECT().Read(pathFor(2018, 6)).Return(monthTable("2018", "6", []string{"PR", "A"}), nil)

	result, err := New(reader, testDir, testPrefix).Load("201805", "201806", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Table.Len())
	assert.Equal(t, []domain.YearMonth{{Year: 2018, Month: 6}}, result.Loaded)
	require.Len(t, result.Skipped, 1)
}

func TestLoad_NenhumMesCarregado(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockReader(ctrl)

	reader.EXPECT().Read(gomock.Any()).Return(nil, os.ErrNotExist).Times(3)

	result, err := New(reader, testDir, testPrefix).Load("201910", "201912", nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoMonthLoaded)
}

func TestLoad_IntervaloInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockReader(ctrl)

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{name: "Data final anterior", start: "2017/01", end: "2014/05"},
		{name: "Ano fora da cobertura", start: "2014/01", end: "2022/01"},
		{name: "Data curta", start: "2014", end: "201405"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := New(reader, testDir, testPrefix).Load(tt.start, tt.end, nil)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}

func TestLoad_FiltroDeColunas(t *testing.T) {
	tests := []struct {
		name        string
		columns     []string
		expected    []string
		filterError bool
	}{
		{
			name:     "Projeção na ordem pedida",
			columns:  []string{domain.ColumnActiveIngr, domain.ColumnSaleState},
			expected: []string{domain.ColumnActiveIngr, domain.ColumnSaleState},
		},
		{
			name:        "Lista vazia mantém a tabela inteira",
			columns:     []string{},
			expected:    salesColumns,
			filterError: true,
		},
		{
			name:        "Nome em branco mantém a tabela inteira",
			columns:     []string{domain.ColumnSaleState, " "},
			expected:    salesColumns,
			filterError: true,
		},
		{
			name:        "Coluna repetida mantém a tabela inteira",
			columns:     []string{domain.ColumnSaleState, domain.ColumnSaleState},
			expected:    salesColumns,
			filterError: true,
		},
		{
			name:        "Coluna inexistente mantém a tabela inteira",
			columns:     []string{domain.ColumnSaleState, "NAO_EXISTE"},
			expected:    salesColumns,
			filterError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reader := mocks.NewMockReader(ctrl)

			reader.EXPECT().Read(pathFor(2020, 1)).Return(monthTable("2020", "1", []string{"SP", "A"}), nil)
			reader.EXPECT().Read(pathFor(2020, 2)).Return(monthTable("2020", "2", []string{"RS", "B"}), nil)

			result, err := New(reader, testDir, testPrefix).Load("202001", "202002", tt.columns)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, result.Table.Columns())
			assert.Equal(t, 2, result.Table.Len())
			if tt.filterError {
				assert.ErrorIs(t, result.ColumnFilter, ErrInvalidColumnFilter)
			} else {
				assert.NoError(t, result.ColumnFilter)
			}
		})
	}
}

func TestLoad_EsquemaDivergente(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockReader(ctrl)

	extra := domain.MustTable(
		append([]string{"EXTRA"}, salesColumns...),
		[]string{"x", "2016", "2", "AM", "B"},
	)
	short := domain.MustTable(
		[]string{domain.ColumnSaleYear, domain.ColumnSaleMonth},
		[]string{"2016", "3"},
	)

	reader.EXPECT().Read(pathFor(2016, 1)).Return(monthTable("2016", "1", []string{"SP", "A"}), nil)
	reader.EXPECT().Read(pathFor(2016, 2)).Return(extra, nil)
	reader.EXPECT().Read(pathFor(2016, 3)).Return(short, nil)

	result, err := New(reader, testDir, testPrefix).Load("201601", "201603", nil)
	require.NoError(t, err)

	assert.Equal(t, salesColumns, result.Table.Columns())
	states, _ := result.Table.Column(domain.ColumnSaleState)
	assert.Equal(t, []string{"SP", "AM"}, states)

	require.Len(t, result.Skipped, 1)
	assert.ErrorIs(t, result.Skipped[0], ErrSchemaMismatch)
	assert.Equal(t, domain.YearMonth{Year: 2016, Month: 3}, result.Skipped[0].Month)
}

func TestLoad_ArquivosReais(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"Manipulados_2019_01.csv": "ANO_VENDA;MES_VENDA;UF_VENDA\n2019;1;SP\n2019;1;RJ\n",
		"Manipulados_2019_03.csv": "ANO_VENDA;MES_VENDA;UF_VENDA\n2019;3;BA\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	result, err := New(source.NewCSVReader(), dir, testPrefix).Load("201901", "201903", nil)
	require.NoError(t, err)

	states, _ := result.Table.Column(domain.ColumnSaleState)
	assert.Equal(t, []string{"SP", "RJ", "BA"}, states)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, domain.YearMonth{Year: 2019, Month: 2}, result.Skipped[0].Month)
}

func TestLoad_IntervaloInvalidoPreservaDateError(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockReader(ctrl)

	_, err := New(reader, testDir, testPrefix).Load("2014/01", "2022/01", nil)

	var dateErr *dating.DateError
	require.True(t, errors.As(err, &dateErr))
	assert.Equal(t, dating.SideEnd, dateErr.Side)
}
