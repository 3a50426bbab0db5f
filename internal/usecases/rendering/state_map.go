package rendering

import (
	"image/color"
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/vfg2006/manipulados-eda/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	gridCols = 7
	gridRows = 8
)

type tile struct {
	col, row int
}

// stateTiles posiciona cada UF em uma célula de um mapa em grade do Brasil
var stateTiles = map[string]tile{
	"RR": {2, 7}, "AP": {4, 7},
	"AM": {1, 6}, "PA": {3, 6}, "MA": {4, 6}, "CE": {5, 6}, "RN": {6, 6},
	"AC": {0, 5}, "RO": {1, 5}, "TO": {3, 5}, "PI": {4, 5}, "PE": {5, 5}, "PB": {6, 5},
	"MT": {2, 4}, "GO": {3, 4}, "BA": {4, 4}, "SE": {5, 4}, "AL": {6, 4},
	"MS": {2, 3}, "DF": {3, 3}, "MG": {4, 3}, "ES": {5, 3},
	"PR": {2, 2}, "SP": {3, 2}, "RJ": {4, 2},
	"SC": {2, 1},
	"RS": {2, 0},
}

// stateGrid implementa plotter.GridXYZ; células sem UF são NaN
type stateGrid struct {
	cells [gridCols][gridRows]float64
}

func newStateGrid(sales map[string]float64, vmax float64) *stateGrid {
	g := &stateGrid{}
	for c := 0; c < gridCols; c++ {
		for r := 0; r < gridRows; r++ {
			g.cells[c][r] = math.NaN()
		}
	}
	for uf, t := range stateTiles {
		g.cells[t.col][t.row] = math.Min(sales[uf], vmax)
	}
	return g
}

func (g *stateGrid) Dims() (c, r int)   { return gridCols, gridRows }
func (g *stateGrid) Z(c, r int) float64 { return g.cells[c][r] }
func (g *stateGrid) X(c int) float64    { return float64(c) }
func (g *stateGrid) Y(r int) float64    { return float64(r) }

// StateMap desenha as vendas por UF como um mapa de calor em grade.
// Estados ausentes entram com zero e valores acima de vmax saturam a escala.
func StateMap(title string, sales map[string]float64, vmax float64) (*vgimg.Canvas, error) {
	if vmax <= 0 || math.IsNaN(vmax) {
		return nil, errors.Wrapf(ErrInvalidVMax, "%v", vmax)
	}

	colors := moreland.ExtendedBlackBody()
	colors.SetMin(0)
	colors.SetMax(vmax)

	grid := newStateGrid(sales, vmax)
	heat := plotter.NewHeatMap(grid, colors.Palette(255))
	heat.Min = 0
	heat.Max = vmax
	heat.NaN = color.White

	xys := make(plotter.XYs, 0, len(stateTiles))
	names := make([]string, 0, len(stateTiles))
	for _, uf := range sortedStates() {
		t := stateTiles[uf]
		xys = append(xys, plotter.XY{X: float64(t.col), Y: float64(t.row)})
		names = append(names, uf)
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
	if err != nil {
		return nil, err
	}
	for i, uf := range names {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
		labels.TextStyle[i].Font.Size = vg.Points(9)
		labels.TextStyle[i].Color = color.White
		if math.Min(sales[uf], vmax) > vmax/2 {
			labels.TextStyle[i].Color = color.Black
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Title.TextStyle.XAlign = text.XRight
	p.Add(heat, labels)
	p.HideAxes()

	bar := plot.New()
	bar.HideX()
	bar.Y.Padding = 0
	bar.Add(&plotter.ColorBar{ColorMap: colors, Vertical: true})

	img := vgimg.New(8*vg.Inch, 5.5*vg.Inch)
	dc := draw.New(img)
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())

	barWidth := 1.2 * vg.Inch
	width := dc.Max.X - dc.Min.X
	p.Draw(draw.Crop(dc, 0, -barWidth, 0, 0))
	bar.Draw(draw.Crop(dc, width-barWidth, 0, vg.Inch/2, -vg.Inch/2))

	return img, nil
}

// StateSales converte contagens por UF em valores do mapa; valores que não são UF são ignorados
func StateSales(values map[string]int) map[string]float64 {
	out := make(map[string]float64, len(domain.StateRegions))
	for uf, n := range values {
		if _, ok := stateTiles[uf]; ok {
			out[uf] = float64(n)
		}
	}
	return out
}

func sortedStates() []string {
	out := make([]string, 0, len(stateTiles))
	for uf := range stateTiles {
		out = append(out, uf)
	}
	sort.Strings(out)
	return out
}
