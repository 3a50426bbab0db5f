package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vfg2006/manipulados-eda/infrastructure/export"
	"github.com/vfg2006/manipulados-eda/internal/domain"
	"github.com/vfg2006/manipulados-eda/internal/usecases/aggregating"
	"github.com/vfg2006/manipulados-eda/internal/usecases/dating"
	"github.com/vfg2006/manipulados-eda/internal/usecases/loading"
	"github.com/vfg2006/manipulados-eda/pkg/log"
	"github.com/vfg2006/manipulados-eda/pkg/utils"
)

var errInvalidArgument = errors.New("invalid argument")

// loadSummary é o resumo impresso após uma carga
type loadSummary struct {
	Loaded       []string `json:"loaded"`
	Skipped      []string `json:"skipped,omitempty"`
	Columns      []string `json:"columns"`
	Rows         int      `json:"rows"`
	ColumnFilter string   `json:"column_filter,omitempty"`
	Output       string   `json:"output,omitempty"`
}

func (a *application) printJSON(v any) {
	fmt.Fprintln(a.stdout, utils.PrettyJson(v))
}

func summarize(result *loading.LoadResult, table *domain.Table) loadSummary {
	summary := loadSummary{
		Loaded:  domain.YearMonthStrings(result.Loaded),
		Columns: table.Columns(),
		Rows:    table.Len(),
	}
	for _, failure := range result.Skipped {
		summary.Skipped = append(summary.Skipped, failure.Month.String())
	}
	if result.ColumnFilter != nil {
		summary.ColumnFilter = result.ColumnFilter.Error()
	}
	return summary
}

// writeTable exporta a tabela conforme a extensão do caminho
func writeTable(table *domain.Table, path, sheet string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return export.WriteCSV(table, path)
	case ".xlsx":
		return export.WriteXLSX(table, path, sheet)
	default:
		return errors.Wrapf(export.ErrInvalidPath, "extensão não suportada: %s", path)
	}
}

func (a *application) monthsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "months INICIO FIM",
		Short: "Lista os meses YYYYMM entre duas datas ANO/mês",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			months, err := dating.Enumerate(args[0], args[1])
			if err != nil {
				return err
			}
			for _, m := range months {
				fmt.Fprintln(a.stdout, m.String())
			}
			return nil
		},
	}
}

func (a *application) loadCommand() *cobra.Command {
	var columns []string
	var output, sheet string

	cmd := &cobra.Command{
		Use:   "load INICIO FIM",
		Short: "Carrega e concatena os arquivos mensais do intervalo",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter []string
			if cmd.Flags().Changed("columns") {
				filter = columns
			}

			result, err := a.loader.Load(args[0], args[1], filter)
			if err != nil {
				return err
			}

			summary := summarize(result, result.Table)
			if output != "" {
				if err := writeTable(result.Table, output, sheet); err != nil {
					return err
				}
				summary.Output = output
			}

			a.printJSON(summary)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", nil, "colunas mantidas, na ordem")
	cmd.Flags().StringVarP(&output, "output", "o", "", "exporta a tabela para .csv ou .xlsx")
	cmd.Flags().StringVar(&sheet, "sheet", "Manipulados", "nome da planilha no .xlsx")
	return cmd
}

func (a *application) filterCommand() *cobra.Command {
	var column, expr, output, sheet string
	var values []string

	cmd := &cobra.Command{
		Use:   "filter INICIO FIM",
		Short: "Filtra as linhas por valor de coluna ou por expressão",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (expr == "") == (column == "") {
				return errors.Wrap(errInvalidArgument, "informe --column ou --expr")
			}
			if column != "" && len(values) == 0 {
				return errors.Wrap(errInvalidArgument, "informe ao menos um --value")
			}

			result, err := a.loader.Load(args[0], args[1], nil)
			if err != nil {
				return err
			}

			var filtered *domain.Table
			if expr != "" {
				filtered, err = a.filter.FilterExpression(result.Table, expr)
			} else {
				targets := domain.Set(values...)
				if len(values) == 1 {
					targets = domain.Scalar(values[0])
				}
				filtered, err = a.filter.Filter(result.Table, column, targets)
			}
			if err != nil {
				return err
			}

			summary := summarize(result, filtered)
			if output != "" {
				if err := writeTable(filtered, output, sheet); err != nil {
					return err
				}
				summary.Output = output
			}

			a.printJSON(summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "coluna comparada")
	cmd.Flags().StringArrayVar(&values, "value", nil, "valor procurado; repita para um conjunto")
	cmd.Flags().StringVar(&expr, "expr", "", "expressão booleana sobre as colunas, ex: UF_VENDA == \"RJ\"")
	cmd.Flags().StringVarP(&output, "output", "o", "", "exporta o resultado para .csv ou .xlsx")
	cmd.Flags().StringVar(&sheet, "sheet", "Manipulados", "nome da planilha no .xlsx")
	return cmd
}

func (a *application) countCommand() *cobra.Command {
	var column, sum, output string
	var byRegion bool

	cmd := &cobra.Command{
		Use:   "count INICIO FIM",
		Short: "Conta as vendas por valor de uma coluna",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if column == "" {
				return errors.Wrap(errInvalidArgument, "informe --column")
			}

			columns := []string{column}
			if sum != "" {
				columns = append(columns, sum)
			}

			result, err := a.loader.Load(args[0], args[1], columns)
			if err != nil {
				return err
			}

			if sum != "" {
				sums, err := aggregating.SumBy(result.Table, column, sum)
				if err != nil {
					return err
				}
				a.printJSON(sums)
				return nil
			}

			var counts []domain.Count
			if byRegion {
				counts, err = aggregating.CountByRegion(result.Table, column)
			} else {
				counts, err = aggregating.CountBy(result.Table, column)
			}
			if err != nil {
				return err
			}

			if output != "" {
				attribute := column
				if byRegion {
					attribute = "REGIAO"
				}
				if err := export.WriteCountsXLSX(counts, attribute, output, attribute); err != nil {
					return err
				}
			}

			a.printJSON(counts)
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "coluna agrupada")
	cmd.Flags().StringVar(&sum, "sum", "", "soma esta coluna numérica em vez de contar linhas")
	cmd.Flags().BoolVar(&byRegion, "region", false, "agrupa as UFs por região")
	cmd.Flags().StringVarP(&output, "output", "o", "", "exporta a contagem para .xlsx")
	return cmd
}

func (a *application) downloadCommand() *cobra.Command {
	var dir, output string

	cmd := &cobra.Command{
		Use:   "download INICIO FIM",
		Short: "Baixa os arquivos mensais do portal de dados abertos da ANVISA",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = a.cfg.Dataset.Dir
			}

			var report any
			var err error
			if output != "" {
				report, err = a.integrator.DownloadRange(cmd.Context(), args[0], args[1], output)
			} else {
				report, err = a.integrator.DownloadMonths(cmd.Context(), args[0], args[1], dir)
			}
			if err != nil {
				return err
			}

			a.printJSON(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "pasta de destino dos arquivos mensais")
	cmd.Flags().StringVarP(&output, "output", "o", "", "concatena o intervalo em um único .csv")
	return cmd
}

func (a *application) mirrorCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Baixa os meses da cobertura que faltam na pasta de dados",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !watch {
				report, err := a.mirror.Sync(cmd.Context())
				if err != nil {
					return err
				}
				a.printJSON(report)
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := a.mirror.Start(ctx); err != nil {
				return err
			}
			a.mirror.TriggerManualSync(ctx)

			<-ctx.Done()
			a.printJSON(a.mirror.GetStatus())
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "mantém o agendamento ativo até receber um sinal")
	return cmd
}

func (a *application) renderCommand() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Gera as visualizações da análise",
	}
	cmd.PersistentFlags().StringVar(&outDir, "out", "", "pasta das imagens geradas")

	dirOrDefault := func() string {
		if outDir == "" {
			return a.cfg.Output.Dir
		}
		return outDir
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "cloroquina INICIO FIM",
			Short: "Um mapa por mês com as vendas de cloroquina por UF",
			Args:  exactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				report, err := a.visualizer.Chloroquine(cmd.Context(), args[0], args[1], dirOrDefault())
				if err != nil {
					return err
				}
				a.printJSON(report)
				return nil
			},
		},
		&cobra.Command{
			Use:   "anabolizantes ANO_INICIAL ANO_FINAL",
			Short: "Painéis mensais de vendas de anabolizantes",
			Args:  exactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				startYear, endYear, err := parseYears(args)
				if err != nil {
					return err
				}
				report, err := a.visualizer.Anabolics(cmd.Context(), startYear, endYear, dirOrDefault())
				if err != nil {
					return err
				}
				a.printJSON(report)
				return nil
			},
		},
		&cobra.Command{
			Use:   "zolpidem INICIO FIM",
			Short: "Vendas anuais de zolpidem",
			Args:  exactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := a.visualizer.Zolpidem(cmd.Context(), args[0], args[1], dirOrDefault())
				if err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "metilfenidato INICIO FIM",
			Short: "Vendas mensais de metilfenidato por região",
			Args:  exactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := a.visualizer.Methylphenidate(cmd.Context(), args[0], args[1], dirOrDefault())
				if err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, path)
				return nil
			},
		},
	)

	return cmd
}

func (a *application) gifCommand() *cobra.Command {
	var dir, name string

	cmd := &cobra.Command{
		Use:   "gif ANO_INICIAL ANO_FINAL",
		Short: "Junta os frames frame_{ano}_{mês}.png em um gif",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			startYear, endYear, err := parseYears(args)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = a.cfg.Output.Dir
			}

			path, err := a.visualizer.Animate(cmd.Context(), dir, startYear, endYear, name)
			if err != nil {
				return err
			}

			log.ForContext(cmd.Context()).WithField("path", path).Debug("Animação gravada")
			fmt.Fprintln(a.stdout, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "pasta com os frames")
	cmd.Flags().StringVar(&name, "name", "animacao", "nome do gif, sem extensão")
	return cmd
}

func parseYears(args []string) (int, int, error) {
	startYear, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, errors.Wrapf(errInvalidArgument, "ano '%s'", args[0])
	}
	endYear, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, errors.Wrapf(errInvalidArgument, "ano '%s'", args[1])
	}
	return startYear, endYear, nil
}
