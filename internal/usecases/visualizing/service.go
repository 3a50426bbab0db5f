package visualizing

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/vfg2006/manipulados-eda/internal/config"
	"github.com/vfg2006/manipulados-eda/internal/domain"
	"github.com/vfg2006/manipulados-eda/internal/usecases/aggregating"
	"github.com/vfg2006/manipulados-eda/internal/usecases/animating"
	"github.com/vfg2006/manipulados-eda/internal/usecases/dating"
	"github.com/vfg2006/manipulados-eda/internal/usecases/filtering"
	"github.com/vfg2006/manipulados-eda/internal/usecases/loading"
	"github.com/vfg2006/manipulados-eda/internal/usecases/rendering"
	"github.com/vfg2006/manipulados-eda/pkg/log"
)

var ErrNoFrameSaved = errors.New("no frame could be saved")

// FrameReport lista os frames gravados e os meses pulados
type FrameReport struct {
	Saved   []string           `json:"saved"`
	Skipped []domain.YearMonth `json:"skipped"`
}

type Service struct {
	loader loading.DatasetLoader
	filter filtering.RowFilter
	vmax   float64
	gifFPS int
	alpha  float64
}

func NewService(cfg *config.Config, loader loading.DatasetLoader, filter filtering.RowFilter) *Service {
	return &Service{
		loader: loader,
		filter: filter,
		vmax:   cfg.Output.ChloroquineVMax,
		gifFPS: cfg.Output.GifFPS,
		alpha:  0.8,
	}
}

// Chloroquine gera um mapa por mês com as vendas de cloroquina e derivados por UF
func (s *Service) Chloroquine(ctx context.Context, start, end, outDir string) (*FrameReport, error) {
	months, err := dating.Enumerate(start, end)
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx)
	report := &FrameReport{}
	columns := []string{domain.ColumnSaleState, domain.ColumnActiveIngr}

	for _, month := range months {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		path, err := s.chloroquineFrame(month, columns, outDir)
		if err != nil {
			logger.WithError(err).WithField("month", month.String()).Warn("Frame do mês não gerado")
			report.Skipped = append(report.Skipped, month)
			continue
		}
		report.Saved = append(report.Saved, path)
	}

	if len(report.Saved) == 0 {
		return report, ErrNoFrameSaved
	}
	return report, nil
}

func (s *Service) chloroquineFrame(month domain.YearMonth, columns []string, outDir string) (string, error) {
	result, err := s.loader.Load(month.String(), month.String(), columns)
	if err != nil {
		return "", err
	}

	filtered, err := s.filter.Filter(result.Table, domain.ColumnActiveIngr, domain.Set(domain.ChloroquineIngredients...))
	if err != nil {
		return "", err
	}

	counts, err := aggregating.CountBy(filtered, domain.ColumnSaleState)
	if err != nil {
		return "", err
	}

	img, err := rendering.StateMap(ChloroquineTitle(month), rendering.StateSales(countMap(counts)), s.vmax)
	if err != nil {
		return "", err
	}

	return rendering.SaveFrame(img, outDir, month.Year, month.Month)
}

// ChloroquineTitle é o título do mapa mensal
func ChloroquineTitle(month domain.YearMonth) string {
	return fmt.Sprintf("Venda de Cloroquina (e derivados) em\n%s de %d", domain.MonthNames[month.Month], month.Year)
}

// Anabolics gera, para cada mês de cada ano, os três painéis de vendas de anabolizantes
// acumulando de janeiro até o mês
func (s *Service) Anabolics(ctx context.Context, startYear, endYear int, outDir string) (*FrameReport, error) {
	if endYear < startYear {
		return nil, errors.Wrapf(animating.ErrInvalidYears, "%d > %d", startYear, endYear)
	}

	logger := log.ForContext(ctx)
	report := &FrameReport{}

	for year := startYear; year <= endYear; year++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		table, err := s.anabolicTable(year)
		if err != nil {
			logger.WithError(err).WithField("year", year).Warn("Ano sem dados de anabolizantes")
			for month := 1; month <= 12; month++ {
				report.Skipped = append(report.Skipped, domain.YearMonth{Year: year, Month: month})
			}
			continue
		}

		for month := 1; month <= 12; month++ {
			path, err := s.anabolicFrame(table, year, month, outDir)
			if err != nil {
				logger.WithError(err).WithFields(log.Fields{"year": year, "month": month}).Warn("Frame do mês não gerado")
				report.Skipped = append(report.Skipped, domain.YearMonth{Year: year, Month: month})
				continue
			}
			report.Saved = append(report.Saved, path)
		}
	}

	if len(report.Saved) == 0 {
		return report, ErrNoFrameSaved
	}
	return report, nil
}

func (s *Service) anabolicTable(year int) (*domain.Table, error) {
	first := domain.YearMonth{Year: year, Month: 1}
	last := domain.YearMonth{Year: year, Month: 12}
	if domain.LastAvailableMonth.Before(last) {
		last = domain.LastAvailableMonth
	}

	columns := []string{domain.ColumnSaleYear, domain.ColumnSaleMonth, domain.ColumnActiveIngr}
	result, err := s.loader.Load(first.String(), last.String(), columns)
	if err != nil {
		return nil, err
	}

	return s.filter.Filter(result.Table, domain.ColumnActiveIngr, domain.Set(domain.AnabolicIngredients...))
}

func (s *Service) anabolicFrame(table *domain.Table, year, month int, outDir string) (string, error) {
	panels := make([]rendering.Panel, 0, len(domain.AnabolicPanels))
	for i, anabolic := range domain.AnabolicPanels {
		ingredient, err := s.filter.Filter(table, domain.ColumnActiveIngr, domain.Scalar(anabolic.Ingredient))
		if err != nil {
			return "", err
		}

		monthly, err := aggregating.MonthlyCounts(ingredient, year, month)
		if err != nil {
			return "", err
		}

		xs := make([]float64, len(monthly.Months))
		for j, m := range monthly.Months {
			xs[j] = float64(m)
		}

		panel := rendering.Panel{
			Title: anabolic.Title,
			X:     xs,
			Y:     monthly.Sales,
			Mean:  monthly.Mean,
			YMax:  anabolic.YMax,
		}
		switch i {
		case 0:
			panel.YLabel = "Nº de Vendas"
		case 1:
			panel.XLabel = "Meses do Ano"
		}
		panels = append(panels, panel)
	}

	img, err := rendering.PanelFrame(fmt.Sprintf("Venda de Anabolizantes Por Ano (%d)", year), panels)
	if err != nil {
		return "", err
	}

	return rendering.SaveFrame(img, outDir, year, month)
}

// Zolpidem grava zolpidem.png com as vendas anuais de zolpidem e hemitartarato de zolpidem
func (s *Service) Zolpidem(ctx context.Context, start, end, outDir string) (string, error) {
	result, err := s.loader.Load(start, end, []string{domain.ColumnSaleYear, domain.ColumnActiveIngr})
	if err != nil {
		return "", err
	}

	filtered, err := s.filter.Filter(result.Table, domain.ColumnActiveIngr, domain.Set(domain.ZolpidemIngredients...))
	if err != nil {
		return "", err
	}

	yearly, err := aggregating.YearlyCount(filtered, domain.ColumnSaleYear)
	if err != nil {
		return "", err
	}
	if len(yearly) == 0 {
		return "", errors.Wrap(rendering.ErrEmptySeries, "nenhuma venda de zolpidem no intervalo")
	}

	xs, ys, err := byYear(yearly)
	if err != nil {
		return "", err
	}

	img, err := rendering.LineChart{
		Title:  "Venda de Zolpidem ao Longo dos Anos",
		XLabel: "Anos",
		YLabel: "Vendas",
		X:      xs,
		Y:      ys,
	}.Render()
	if err != nil {
		return "", err
	}

	path := filepath.Join(outDir, "zolpidem.png")
	if err := rendering.SavePNG(img, path); err != nil {
		return "", err
	}

	log.ForContext(ctx).WithField("path", path).Info("Visualização finalizada!")
	return path, nil
}

// Methylphenidate grava metilfenidato.png com uma linha de vendas mensais por região
func (s *Service) Methylphenidate(ctx context.Context, start, end, outDir string) (string, error) {
	columns := []string{domain.ColumnSaleYear, domain.ColumnSaleMonth, domain.ColumnSaleState, domain.ColumnActiveIngr}
	result, err := s.loader.Load(start, end, columns)
	if err != nil {
		return "", err
	}

	filtered, err := s.filter.Filter(result.Table, domain.ColumnActiveIngr, domain.Set(domain.MethylphenidateIngredients...))
	if err != nil {
		return "", err
	}

	regional, err := aggregating.BuildRegionalSeries(filtered, domain.ColumnSaleState)
	if err != nil {
		return "", err
	}

	values := make([][]float64, len(domain.Regions))
	for i, region := range domain.Regions {
		values[i] = regional.Sales[region]
	}

	img, err := rendering.MultiLine("Venda de Metilfenidato por Região", regional.Months, values, domain.Regions, s.alpha)
	if err != nil {
		return "", err
	}

	path := filepath.Join(outDir, "metilfenidato.png")
	if err := rendering.SavePNG(img, path); err != nil {
		return "", err
	}

	log.ForContext(ctx).WithField("path", path).Info("Visualização finalizada!")
	return path, nil
}

// Animate junta os frames de startYear a endYear em {dir}/{name}.gif
func (s *Service) Animate(ctx context.Context, dir string, startYear, endYear int, name string) (string, error) {
	frames, err := animating.SelectFrames(dir, startYear, endYear)
	if err != nil {
		return "", err
	}

	log.ForContext(ctx).WithField("frames", len(frames)).Debug("Frames selecionados")
	return animating.EncodeGIF(frames, dir, name, s.gifFPS)
}

func countMap(counts []domain.Count) map[string]int {
	out := make(map[string]int, len(counts))
	for _, c := range counts {
		out[c.Value] = c.Sales
	}
	return out
}

// byYear ordena as contagens anuais pelo ano para o eixo x
func byYear(counts []domain.Count) ([]float64, []float64, error) {
	type point struct{ year, sales float64 }
	points := make([]point, len(counts))
	for i, c := range counts {
		year, err := strconv.Atoi(c.Value)
		if err != nil {
			return nil, nil, errors.Wrapf(aggregating.ErrNonNumericValue, "ano '%s'", c.Value)
		}
		points[i] = point{year: float64(year), sales: float64(c.Sales)}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].year < points[j].year })

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.year, p.sales
	}
	return xs, ys, nil
}
