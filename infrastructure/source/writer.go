package source

import (
	"encoding/csv"
	"io"

	"github.com/vfg2006/manipulados-eda/internal/domain"
)

// Encode escreve a tabela no formato dos arquivos mensais (UTF-8, separador ';')
func Encode(w io.Writer, table *domain.Table) error {
	writer := csv.NewWriter(w)
	writer.Comma = Separator

	if err := writer.Write(table.Columns()); err != nil {
		return err
	}
	for _, row := range table.Rows() {
		if err := writer.Write(row.Values()); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
