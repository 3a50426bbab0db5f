package rendering

import (
	"image/color"
	"math"

	"github.com/pkg/errors"
	"github.com/vfg2006/manipulados-eda/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	beige        = color.RGBA{R: 245, G: 245, B: 220, A: 255}
	gray         = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	midnightBlue = color.RGBA{R: 25, G: 25, B: 112, A: 255}
	red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// LineChart descreve um gráfico de pontos ligados por uma linha
type LineChart struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Y      []float64
}

// Panel é um dos gráficos lado a lado de um frame mensal
type Panel struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Y      []float64
	Mean   float64 // NaN omite a linha de média
	YMax   float64
}

// Render desenha o gráfico de linha com fundo bege e pontos em destaque
func (c LineChart) Render() (*vgimg.Canvas, error) {
	if len(c.X) == 0 {
		return nil, ErrEmptySeries
	}
	if len(c.X) != len(c.Y) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d valores de x e %d de y", len(c.X), len(c.Y))
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.BackgroundColor = beige

	points := toXYs(c.X, c.Y)

	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, err
	}
	line.Color = gray
	line.Width = vg.Points(1.5)

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = color.Black
	scatter.GlyphStyle.Shape = draw.PlusGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(5)

	p.Add(plotter.NewGrid(), line, scatter)

	return drawPlot(p, 8*vg.Inch, 6*vg.Inch), nil
}

// MultiLine desenha uma linha por série sobre o mesmo eixo de meses.
// values e labels precisam ter o mesmo tamanho e cada série o tamanho de dates.
func MultiLine(title string, dates []domain.YearMonth, values [][]float64, labels []string, alpha float64) (*vgimg.Canvas, error) {
	if alpha < 0 || alpha > 1 || math.IsNaN(alpha) {
		return nil, errors.Wrapf(ErrInvalidAlpha, "%v", alpha)
	}
	if len(values) != len(labels) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d séries e %d rótulos", len(values), len(labels))
	}
	if len(dates) == 0 || len(values) == 0 {
		return nil, ErrEmptySeries
	}

	xs := make([]float64, len(dates))
	for i, d := range dates {
		xs[i] = float64(d.Year) + float64(d.Month-1)/12
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Data"
	p.Y.Label.Text = "Vendas"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, series := range values {
		if len(series) != len(dates) {
			return nil, errors.Wrapf(ErrLengthMismatch, "série '%s' com %d valores para %d datas", labels[i], len(series), len(dates))
		}

		line, err := plotter.NewLine(toXYs(xs, series))
		if err != nil {
			return nil, err
		}
		line.Color = withAlpha(plotutil.Color(i), alpha)
		line.Width = vg.Points(2)

		p.Add(line)
		p.Legend.Add(labels[i], line)
	}

	return drawPlot(p, 12*vg.Inch, 6*vg.Inch), nil
}

// PanelFrame desenha os painéis lado a lado, cada um com linha, pontos e média tracejada,
// sob um título geral
func PanelFrame(suptitle string, panels []Panel) (*vgimg.Canvas, error) {
	if len(panels) == 0 {
		return nil, ErrEmptySeries
	}

	row := make([]*plot.Plot, len(panels))
	for i, panel := range panels {
		p, err := panelPlot(panel)
		if err != nil {
			return nil, errors.Wrapf(err, "painel '%s'", panel.Title)
		}
		row[i] = p
	}

	img := vgimg.New(20*vg.Inch, 5*vg.Inch)
	dc := draw.New(img)
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())

	titleHeight := vg.Points(36)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(panels),
		PadX:      vg.Millimeter * 6,
		PadY:      vg.Millimeter * 4,
		PadTop:    titleHeight,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 4,
	}

	canvases := plot.Align([][]*plot.Plot{row}, tiles, dc)
	for i, p := range row {
		p.Draw(canvases[0][i])
	}

	style := text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, vg.Points(18)),
		XAlign:  text.XCenter,
		YAlign:  text.YTop,
		Handler: plot.DefaultTextHandler,
	}
	center := vg.Point{
		X: (dc.Min.X + dc.Max.X) / 2,
		Y: dc.Max.Y - vg.Points(6),
	}
	dc.FillText(style, center, suptitle)

	return img, nil
}

func panelPlot(panel Panel) (*plot.Plot, error) {
	if len(panel.X) != len(panel.Y) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d valores de x e %d de y", len(panel.X), len(panel.Y))
	}

	p := plot.New()
	p.Title.Text = panel.Title
	p.X.Label.Text = panel.XLabel
	p.Y.Label.Text = panel.YLabel

	if len(panel.X) > 0 {
		points := toXYs(panel.X, panel.Y)

		line, err := plotter.NewLine(points)
		if err != nil {
			return nil, err
		}
		line.Color = midnightBlue

		scatter, err := plotter.NewScatter(points)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Color = midnightBlue
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}

		p.Add(line, scatter)
	}

	if !math.IsNaN(panel.Mean) {
		mean := plotter.NewFunction(func(float64) float64 { return panel.Mean })
		mean.Color = red
		mean.Width = vg.Points(1.5)
		mean.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(mean)
		p.Legend.Add("Média", mean)
		p.Legend.Top = true
	}

	// Add expande os eixos, então os limites fixos vêm por último
	p.X.Min, p.X.Max = 0, 13
	p.Y.Min = 0
	if panel.YMax > 0 {
		p.Y.Max = panel.YMax
	}

	return p, nil
}

func drawPlot(p *plot.Plot, width, height vg.Length) *vgimg.Canvas {
	img := vgimg.New(width, height)
	p.Draw(draw.New(img))
	return img
}

func toXYs(xs, ys []float64) plotter.XYs {
	points := make(plotter.XYs, len(xs))
	for i := range xs {
		points[i].X = xs[i]
		points[i].Y = ys[i]
	}
	return points
}

func withAlpha(c color.Color, alpha float64) color.Color {
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	nrgba.A = uint8(math.Round(alpha * 255))
	return nrgba
}
