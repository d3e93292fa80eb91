package fstream

// PlotStyle selects how a Plot1D series is rendered.
type PlotStyle int

// Plot styles.
const (
	PlotLine PlotStyle = iota
	PlotBars
	PlotScatter
)

// PlotRegion is an interactive, coloured interval overlaid on a plot,
// e.g. the ranges drawn over a mass spectrum.
type PlotRegion struct {
	ID       int
	Lo, Hi   float64
	Colour   RGBA
	Producer ParentRef
}

// ErrorData describes per-point error bars for a Plot1D series.
type ErrorData struct {
	Lo, Hi []float64 // same length as the series; per-point +/- bounds
}

// Plot1D is an ordered (x,y) series plus presentation metadata.
type Plot1D struct {
	base
	X, Y          []float64
	Y2            []float64 // optional second series, e.g. proxigram atom counts
	Title         string
	XLabel, YLabel string
	Style         PlotStyle
	LogY          bool
	HardMin, HardMax float64
	HasHardBounds bool
	Errors        *ErrorData
	Regions       []PlotRegion
}

// NewPlot1D creates a Plot1D stream owned by parent.
func NewPlot1D(parent ParentRef, x, y []float64) *Plot1D {
	return &Plot1D{base: newBase(KindPlot1D, parent), X: x, Y: y}
}

// Release is a no-op: Plot1D holds no external resources.
func (p *Plot1D) Release() {}

// Plot2DKind distinguishes a Plot2D's two mutually-exclusive
// representations.
type Plot2DKind int

// Plot2D representations.
const (
	Plot2DEmpty Plot2DKind = iota
	Plot2DDense
	Plot2DScatter
)

// Plot2D is either a dense 2D array over a rectangle (heatmap) XOR a
// scatter point list with optional per-point intensity.
type Plot2D struct {
	base
	RectMinX, RectMinY, RectMaxX, RectMaxY float64
	DenseNX, DenseNY                       int
	Dense                                  []float64

	ScatterX, ScatterY, ScatterIntensity []float64
}

// NewDensePlot2D creates a dense Plot2D over the given rectangle.
func NewDensePlot2D(parent ParentRef, minX, minY, maxX, maxY float64, nx, ny int, dense []float64) *Plot2D {
	return &Plot2D{
		base: newBase(KindPlot2D, parent),
		RectMinX: minX, RectMinY: minY, RectMaxX: maxX, RectMaxY: maxY,
		DenseNX: nx, DenseNY: ny, Dense: dense,
	}
}

// NewScatterPlot2D creates a scatter Plot2D.
func NewScatterPlot2D(parent ParentRef, x, y, intensity []float64) *Plot2D {
	return &Plot2D{base: newBase(KindPlot2D, parent), ScatterX: x, ScatterY: y, ScatterIntensity: intensity}
}

// representation reports which representation is populated.
func (p *Plot2D) representation() Plot2DKind {
	dense := len(p.Dense) > 0
	scatter := len(p.ScatterX) > 0
	switch {
	case dense && !scatter:
		return Plot2DDense
	case scatter && !dense:
		return Plot2DScatter
	default:
		return Plot2DEmpty
	}
}

// BoundingBox returns the bounding rectangle of whichever representation
// is populated, as (minX,minY,maxX,maxY). Spec §9's Open Questions notes
// that the original asserts exactly one representation is non-empty but
// its accessor can still be reached with both empty after the assertion
// is compiled out; the specified behavior here is to return all-zero
// bounds in that case rather than panic.
func (p *Plot2D) BoundingBox() (minX, minY, maxX, maxY float64) {
	switch p.representation() {
	case Plot2DDense:
		return p.RectMinX, p.RectMinY, p.RectMaxX, p.RectMaxY
	case Plot2DScatter:
		if len(p.ScatterX) == 0 {
			return 0, 0, 0, 0
		}
		minX, maxX = p.ScatterX[0], p.ScatterX[0]
		minY, maxY = p.ScatterY[0], p.ScatterY[0]
		for i := range p.ScatterX {
			minX, maxX = fmin(minX, p.ScatterX[i]), fmax(maxX, p.ScatterX[i])
			minY, maxY = fmin(minY, p.ScatterY[i]), fmax(maxY, p.ScatterY[i])
		}
		return
	default:
		return 0, 0, 0, 0
	}
}

func fmin(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func fmax(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Release is a no-op: Plot2D holds no external resources.
func (p *Plot2D) Release() {}
