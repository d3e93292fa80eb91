package filters

import (
	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/geom"
	"github.com/threedepict/tomo/ion"
)

// downsampleMode selects between a fixed output count and a retained
// fraction (spec §2/§8: "downsample fixed-count/fraction").
type downsampleMode int

const (
	downsampleFraction downsampleMode = iota
	downsampleFixedCount
)

// Downsample randomly thins an ion stream. Per spec §5 it owns its own
// RNG and reseeds only when the user explicitly asks for a new draw, so
// that repeated refreshes with unchanged parameters are deterministic.
type Downsample struct {
	filter.Base
	mode     downsampleMode
	fraction float64
	count    int
	seed     int64
}

// NewDownsample returns a Downsample filter retaining a random 10% of
// its input by default.
func NewDownsample() *Downsample {
	return &Downsample{Base: filter.NewBase(), mode: downsampleFraction, fraction: 0.1, seed: 1}
}

func (f *Downsample) TypeID() filter.TypeID { return filter.TypeDownsample }
func (f *Downsample) TypeString() string    { return "Downsample" }

func (f *Downsample) CloneUncached() filter.Filter {
	return &Downsample{Base: filter.NewBase(), mode: f.mode, fraction: f.fraction, count: f.count, seed: f.seed}
}

func (f *Downsample) Properties() filter.PropGroups {
	modeChoice := "fraction"
	if f.mode == downsampleFixedCount {
		modeChoice = "count"
	}
	return filter.PropGroups{{
		Title: "Downsample",
		Props: []filter.Property{
			{Key: "mode", Name: "Mode", Type: filter.PropChoice, Value: modeChoice, Secondary: "fraction|count",
				Help: "Whether to retain a fraction of ions or an exact count."},
			{Key: "fraction", Name: "Fraction", Type: filter.PropReal, Value: f64s(f.fraction),
				Help: "Fraction of ions to retain, in [0,1], used when mode=fraction."},
			{Key: "count", Name: "Count", Type: filter.PropInt, Value: i64s(f.count),
				Help: "Exact number of ions to retain, used when mode=count."},
			{Key: "seed", Name: "Seed", Type: filter.PropInt, Value: i64s(int(f.seed)),
				Help: "Random seed; change to redraw a different random subset."},
		},
	}}
}

func (f *Downsample) SetProperty(key, value string) (ok, needsUpdate bool) {
	switch key {
	case "mode":
		newMode := f.mode
		switch value {
		case "fraction":
			newMode = downsampleFraction
		case "count":
			newMode = downsampleFixedCount
		default:
			return false, false
		}
		if newMode == f.mode {
			return true, false
		}
		f.mode = newMode
		f.ClearCache()
		return true, true
	case "fraction":
		v, err := parseFloat(value)
		if err != nil || v < 0 || v > 1 {
			return false, false
		}
		if v == f.fraction {
			return true, false
		}
		f.fraction = v
		f.ClearCache()
		return true, true
	case "count":
		v, err := parseInt(value)
		if err != nil || v < 0 {
			return false, false
		}
		if v == f.count {
			return true, false
		}
		f.count = v
		f.ClearCache()
		return true, true
	case "seed":
		v, err := parseInt(value)
		if err != nil {
			return false, false
		}
		if int64(v) == f.seed {
			return true, false
		}
		f.seed = int64(v)
		f.ClearCache()
		return true, true
	}
	return false, false
}

func (f *Downsample) UseMask() fstream.Mask   { return fstream.MaskOf(fstream.KindIons) }
func (f *Downsample) BlockMask() fstream.Mask { return fstream.NoKinds }
func (f *Downsample) EmitMask() fstream.Mask  { return fstream.MaskOf(fstream.KindIons) }

func (f *Downsample) Refresh(inputs []fstream.Stream, progress *filter.Progress, abort *filter.AbortFlag) ([]fstream.Stream, filter.ErrCode) {
	in, ok := firstIons(inputs)
	if !ok {
		return nil, filter.OK
	}
	rng := geom.NewRNG(f.seed)
	var kept []ion.Hit
	switch f.mode {
	case downsampleFixedCount:
		n := f.count
		if n > len(in.Hits) {
			n = len(in.Hits)
		}
		kept = sampleFixedCount(in.Hits, n, rng)
	default:
		kept = make([]ion.Hit, 0, int(float64(len(in.Hits))*f.fraction))
		for i, h := range in.Hits {
			if abort.IsSet() {
				return nil, filter.Aborted
			}
			if i%filter.CheckInterval == 0 {
				progress.Step(i, len(in.Hits), "downsampling")
			}
			if rng.Keep(f.fraction) {
				kept = append(kept, h)
			}
		}
	}
	out := fstream.NewIons(fstream.NoParent, kept)
	out.Colour, out.PointSize, out.ValueName = in.Colour, in.PointSize, in.ValueName
	outputs := []fstream.Stream{out}
	if f.CachingEnabled() {
		f.StoreCache(inputs, outputs)
	}
	return outputs, filter.OK
}

// sampleFixedCount implements reservoir sampling to select exactly n
// items from hits (or all of them if fewer than n exist), in O(len) time
// and O(n) space, matching the uniform-sample contract spec §8 tests.
func sampleFixedCount(hits []ion.Hit, n int, rng *geom.RNG) []ion.Hit {
	if n >= len(hits) {
		out := make([]ion.Hit, len(hits))
		copy(out, hits)
		return out
	}
	out := make([]ion.Hit, n)
	copy(out, hits[:n])
	for i := n; i < len(hits); i++ {
		j := rng.Intn(i + 1)
		if j < n {
			out[j] = hits[i]
		}
	}
	return out
}
