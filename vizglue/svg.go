package vizglue

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/threedepict/tomo/fstream"
)

// figureWidth and figureHeight match the teacher's obscompare figures,
// a reasonable default for a one-off exported plot.
const (
	figureWidth  = 6 * vg.Inch
	figureHeight = 4 * vg.Inch
)

// ExportPlot1D writes p as an SVG line, bar or scatter figure to path,
// picking the plotter per p.Style (spec §4.5's mass spectrum and
// proxigram distance profiles are both Plot1D streams). Range overlays
// (p.Regions) are drawn as coloured vertical lines spanning the data's
// y extent.
func ExportPlot1D(path string, p *fstream.Plot1D) error {
	plt, err := plot.New()
	if err != nil {
		return fmt.Errorf("vizglue.ExportPlot1D: %w", err)
	}
	plt.Title.Text = p.Title
	plt.X.Label.Text = p.XLabel
	plt.Y.Label.Text = p.YLabel
	if p.LogY {
		plt.Y.Scale = plot.LogScale{}
	}

	xys := make(plotter.XYs, len(p.X))
	for i := range p.X {
		xys[i].X = p.X[i]
		if i < len(p.Y) {
			xys[i].Y = p.Y[i]
		}
	}

	switch p.Style {
	case fstream.PlotScatter:
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("vizglue.ExportPlot1D: %w", err)
		}
		plt.Add(s)
	case fstream.PlotBars:
		b, err := plotter.NewBarChart(plotter.Values(p.Y), vg.Points(4))
		if err != nil {
			return fmt.Errorf("vizglue.ExportPlot1D: %w", err)
		}
		plt.Add(b)
	default:
		l, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("vizglue.ExportPlot1D: %w", err)
		}
		plt.Add(l)
	}

	if len(p.Y2) == len(p.X) {
		xys2 := make(plotter.XYs, len(p.X))
		for i := range p.X {
			xys2[i].X, xys2[i].Y = p.X[i], p.Y2[i]
		}
		l2, err := plotter.NewLine(xys2)
		if err != nil {
			return fmt.Errorf("vizglue.ExportPlot1D: %w", err)
		}
		l2.Color = color.NRGBA{R: 127, G: 127, B: 127, A: 255}
		plt.Add(l2)
	}

	yLo, yHi := regionYExtent(p.Y)
	for _, r := range p.Regions {
		for _, x := range []float64{r.Lo, r.Hi} {
			edge, err := plotter.NewLine(plotter.XYs{{X: x, Y: yLo}, {X: x, Y: yHi}})
			if err != nil {
				continue
			}
			edge.Color = color.NRGBA{
				R: uint8(r.Colour.R * 255), G: uint8(r.Colour.G * 255),
				B: uint8(r.Colour.B * 255), A: 255,
			}
			edge.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
			plt.Add(edge)
		}
	}

	if err := plt.Save(figureWidth, figureHeight, path); err != nil {
		return fmt.Errorf("vizglue.ExportPlot1D: %w", err)
	}
	return nil
}

func regionYExtent(y []float64) (lo, hi float64) {
	if len(y) == 0 {
		return 0, 1
	}
	lo, hi = y[0], y[0]
	for _, v := range y {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// ExportPlot2D writes p as an SVG figure to path: a heatmap for a dense
// representation, a scatter for a scatter representation.
func ExportPlot2D(path string, p *fstream.Plot2D) error {
	plt, err := plot.New()
	if err != nil {
		return fmt.Errorf("vizglue.ExportPlot2D: %w", err)
	}

	switch {
	case len(p.Dense) > 0:
		hm := plotter.NewHeatMap(plot2DGrid{p: p}, palette.Heat(12, 1))
		plt.Add(hm)
	case len(p.ScatterX) > 0:
		xys := make(plotter.XYs, len(p.ScatterX))
		for i := range p.ScatterX {
			xys[i].X, xys[i].Y = p.ScatterX[i], p.ScatterY[i]
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("vizglue.ExportPlot2D: %w", err)
		}
		plt.Add(s)
	default:
		return fmt.Errorf("vizglue.ExportPlot2D: empty Plot2D has nothing to draw")
	}

	if err := plt.Save(figureWidth, figureHeight, path); err != nil {
		return fmt.Errorf("vizglue.ExportPlot2D: %w", err)
	}
	return nil
}

// plot2DGrid adapts a dense Plot2D to plotter.GridXYZ.
type plot2DGrid struct{ p *fstream.Plot2D }

func (g plot2DGrid) Dims() (c, r int) { return g.p.DenseNX, g.p.DenseNY }

func (g plot2DGrid) Z(c, r int) float64 { return g.p.Dense[r*g.p.DenseNX+c] }

func (g plot2DGrid) X(c int) float64 {
	if g.p.DenseNX <= 1 {
		return g.p.RectMinX
	}
	frac := float64(c) / float64(g.p.DenseNX-1)
	return g.p.RectMinX + frac*(g.p.RectMaxX-g.p.RectMinX)
}

func (g plot2DGrid) Y(r int) float64 {
	if g.p.DenseNY <= 1 {
		return g.p.RectMinY
	}
	frac := float64(r) / float64(g.p.DenseNY-1)
	return g.p.RectMinY + frac*(g.p.RectMaxY-g.p.RectMinY)
}
