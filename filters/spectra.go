package filters

import (
	"gonum.org/v1/gonum/floats"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
)

// Spectrum bins ion values into a 1D histogram (spec §2's "mass
// spectrum"), emitted as a Plot1D.
type Spectrum struct {
	filter.Base
	numBins int
	logY    bool
}

// NewSpectrum returns a Spectrum filter with 512 bins.
func NewSpectrum() *Spectrum {
	return &Spectrum{Base: filter.NewBase(), numBins: 512, logY: true}
}

func (f *Spectrum) TypeID() filter.TypeID { return filter.TypeSpectrum }
func (f *Spectrum) TypeString() string    { return "Spectrum" }

func (f *Spectrum) CloneUncached() filter.Filter {
	return &Spectrum{Base: filter.NewBase(), numBins: f.numBins, logY: f.logY}
}

func (f *Spectrum) Properties() filter.PropGroups {
	return filter.PropGroups{{
		Title: "Spectrum",
		Props: []filter.Property{
			{Key: "bins", Name: "Bins", Type: filter.PropInt, Value: i64s(f.numBins),
				Help: "Number of histogram bins across the observed value range."},
			{Key: "log-y", Name: "Log scale", Type: filter.PropBool, Value: boolStr(f.logY), Cosmetic: true,
				Help: "Display the count axis on a logarithmic scale."},
		},
	}}
}

func (f *Spectrum) SetProperty(key, value string) (ok, needsUpdate bool) {
	switch key {
	case "bins":
		v, err := parseInt(value)
		if err != nil || v < 1 {
			return false, false
		}
		if v == f.numBins {
			return true, false
		}
		f.numBins = v
		f.ClearCache()
		return true, true
	case "log-y":
		v, err := parseBool(value)
		if err != nil {
			return false, false
		}
		if v == f.logY {
			return true, false
		}
		f.logY = v
		return true, true
	}
	return false, false
}

func (f *Spectrum) UseMask() fstream.Mask   { return fstream.MaskOf(fstream.KindIons) }
func (f *Spectrum) BlockMask() fstream.Mask { return fstream.NoKinds }
func (f *Spectrum) EmitMask() fstream.Mask  { return fstream.MaskOf(fstream.KindPlot1D) }

func (f *Spectrum) Refresh(inputs []fstream.Stream, progress *filter.Progress, abort *filter.AbortFlag) ([]fstream.Stream, filter.ErrCode) {
	in, ok := firstIons(inputs)
	if !ok || len(in.Hits) == 0 {
		return nil, filter.OK
	}
	values := make([]float64, len(in.Hits))
	for i, h := range in.Hits {
		values[i] = h.Value
	}
	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		hi = lo + 1
	}
	counts := make([]float64, f.numBins)
	width := (hi - lo) / float64(f.numBins)
	for i, v := range values {
		if abort.IsSet() {
			return nil, filter.Aborted
		}
		if i%filter.CheckInterval == 0 {
			progress.Step(i, len(values), "binning spectrum")
		}
		bin := int((v - lo) / width)
		if bin < 0 {
			bin = 0
		}
		if bin >= f.numBins {
			bin = f.numBins - 1
		}
		counts[bin]++
	}
	x := make([]float64, f.numBins)
	for i := range x {
		x[i] = lo + (float64(i)+0.5)*width
	}
	out := fstream.NewPlot1D(fstream.NoParent, x, counts)
	out.Title, out.XLabel, out.YLabel = in.ValueName+" spectrum", in.ValueName, "count"
	out.Style, out.LogY = fstream.PlotBars, f.logY
	outputs := []fstream.Stream{out}
	if f.CachingEnabled() {
		f.StoreCache(inputs, outputs)
	}
	return outputs, filter.OK
}
