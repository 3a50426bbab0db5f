package source

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/manipulados-eda/internal/domain"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "Manipulados_2014_01.csv", FileName("Manipulados", domain.YearMonth{Year: 2014, Month: 1}))
	assert.Equal(t, filepath.Join("dados", "Manipulados_2021_11.csv"), FilePath("dados", "Manipulados", domain.YearMonth{Year: 2021, Month: 11}))
}

func TestDecode_UTF8(t *testing.T) {
	in := "ANO_VENDA;UF_VENDA;PRINCIPIO_ATIVO\n2014;SP;CLOROQUINA\n2014;RJ;ÁCIDO ACETILSALICÍLICO\n"

	table, err := Decode(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"ANO_VENDA", "UF_VENDA", "PRINCIPIO_ATIVO"}, table.Columns())
	require.Equal(t, 2, table.Len())
	v, _ := table.Row(1).Get("PRINCIPIO_ATIVO")
	assert.Equal(t, "ÁCIDO ACETILSALICÍLICO", v)
}

func TestDecode_Latin1(t *testing.T) {
	// Ã = 0xC3 e É = 0xC9 em ISO-8859-1
	in := []byte("UF_VENDA;MUNICIPIO_VENDA\nSP;S\xc3O PAULO\nPA;BEL\xc9M\n")

	table, err := Decode(bytes.NewReader(in))
	require.NoError(t, err)

	cities, err := table.Column("MUNICIPIO_VENDA")
	require.NoError(t, err)
	assert.Equal(t, []string{"SÃO PAULO", "BELÉM"}, cities)
}

func TestDecode_RemoveBOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("ANO_VENDA;MES_VENDA\n2014;1\n")...)

	table, err := Decode(bytes.NewReader(in))
	require.NoError(t, err)
	assert.True(t, table.HasColumn("ANO_VENDA"))
}

func TestDecode_Erros(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "Arquivo vazio", in: ""},
		{name: "Linha com campos a mais", in: "A;B\n1;2;3\n"},
		{name: "Cabeçalho repetido", in: "A;A\n1;2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Decode(strings.NewReader(tt.in))
			assert.Error(t, err)
			assert.Nil(t, table)
		})
	}
}

func TestCSVReader_Read(t *testing.T) {
	dir := t.TempDir()
	path := FilePath(dir, "Manipulados", domain.YearMonth{Year: 2020, Month: 3})
	require.NoError(t, os.WriteFile(path, []byte("ANO_VENDA;MES_VENDA\n2020;3\n"), 0o644))

	table, err := NewCSVReader().Read(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	_, err = NewCSVReader().Read(filepath.Join(dir, "inexistente.csv"))
	assert.Error(t, err)
}

func TestCSVReader_ReadLatin1(t *testing.T) {
	dir := t.TempDir()
	path := FilePath(dir, "Manipulados", domain.YearMonth{Year: 2019, Month: 7})
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("UF_VENDA;MUNICIPIO_VENDA\nPA;BEL\xc9M\n")...)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	table, err := NewCSVReader().Read(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"UF_VENDA", "MUNICIPIO_VENDA"}, table.Columns())
	cities, err := table.Column("MUNICIPIO_VENDA")
	require.NoError(t, err)
	assert.Equal(t, []string{"BELÉM"}, cities)
}

func TestEncode_RoundTrip(t *testing.T) {
	table := domain.MustTable([]string{"UF_VENDA", "PRINCIPIO_ATIVO"},
		[]string{"SP", "CLOROQUINA"},
		[]string{"RJ", "DIFOSFATO; DE CLOROQUINA"},
	)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, table))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, table.Columns(), decoded.Columns())
	assert.Equal(t, table.Row(1).Values(), decoded.Row(1).Values())
}
