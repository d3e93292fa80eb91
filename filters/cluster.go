package filters

import (
	"fmt"

	gostats "github.com/GaryBoone/GoStats/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/ion"
)

// Cluster performs a single-linkage nearest-neighbour clustering pass
// over an ion stream (spec §2's "cluster analysis" stock filter) and
// emits one descriptive-stats Plot1D summarizing the resulting cluster
// size distribution. A full multi-pass clustering algorithm is out of
// scope for a single filter invocation (spec §1 keeps the clustering
// model is a single-pass spatial grouping, not an iterative solver); the
// maxNeighbourDist property controls the grouping radius.
type Cluster struct {
	filter.Base
	maxNeighbourDist float64
	minClusterSize   int
}

// NewCluster returns a Cluster filter with a 1.0 nm grouping radius.
func NewCluster() *Cluster {
	return &Cluster{Base: filter.NewBase(), maxNeighbourDist: 1.0, minClusterSize: 3}
}

func (f *Cluster) TypeID() filter.TypeID { return filter.TypeCluster }
func (f *Cluster) TypeString() string    { return "Cluster" }

func (f *Cluster) CloneUncached() filter.Filter {
	return &Cluster{Base: filter.NewBase(), maxNeighbourDist: f.maxNeighbourDist, minClusterSize: f.minClusterSize}
}

func (f *Cluster) Properties() filter.PropGroups {
	return filter.PropGroups{{
		Title: "Cluster analysis",
		Props: []filter.Property{
			{Key: "max-dist", Name: "Max neighbour distance", Type: filter.PropReal, Value: f64s(f.maxNeighbourDist),
				Help: "Two ions closer than this (in nanometres) are grouped into the same cluster."},
			{Key: "min-size", Name: "Minimum cluster size", Type: filter.PropInt, Value: i64s(f.minClusterSize),
				Help: "Clusters smaller than this are excluded from the size histogram."},
		},
	}}
}

func (f *Cluster) SetProperty(key, value string) (ok, needsUpdate bool) {
	switch key {
	case "max-dist":
		v, err := parseFloat(value)
		if err != nil || v <= 0 {
			return false, false
		}
		if v == f.maxNeighbourDist {
			return true, false
		}
		f.maxNeighbourDist = v
		f.ClearCache()
		return true, true
	case "min-size":
		v, err := parseInt(value)
		if err != nil || v < 1 {
			return false, false
		}
		if v == f.minClusterSize {
			return true, false
		}
		f.minClusterSize = v
		f.ClearCache()
		return true, true
	}
	return false, false
}

func (f *Cluster) UseMask() fstream.Mask   { return fstream.MaskOf(fstream.KindIons) }
func (f *Cluster) BlockMask() fstream.Mask { return fstream.NoKinds }
func (f *Cluster) EmitMask() fstream.Mask  { return fstream.MaskOf(fstream.KindPlot1D) }

func (f *Cluster) Refresh(inputs []fstream.Stream, progress *filter.Progress, abort *filter.AbortFlag) ([]fstream.Stream, filter.ErrCode) {
	in, ok := firstIons(inputs)
	if !ok || len(in.Hits) == 0 {
		return nil, filter.OK
	}

	assign := make([]int, len(in.Hits))
	for i := range assign {
		assign[i] = -1
	}
	nextID := 0
	d2 := f.maxNeighbourDist * f.maxNeighbourDist
	for i := range in.Hits {
		if abort.IsSet() {
			return nil, filter.Aborted
		}
		if i%filter.CheckInterval == 0 {
			progress.Step(i, len(in.Hits), "clustering")
		}
		if assign[i] != -1 {
			continue
		}
		assign[i] = nextID
		growCluster(in.Hits, assign, i, nextID, d2)
		nextID++
	}

	sizes := make([]int, nextID)
	for _, c := range assign {
		sizes[c]++
	}
	var filtered []float64
	for _, n := range sizes {
		if n >= f.minClusterSize {
			filtered = append(filtered, float64(n))
		}
	}
	if len(filtered) == 0 {
		return nil, filter.OK
	}

	hist := buildSizeHistogram(filtered)
	mean, stdev := stat.MeanStdDev(filtered, nil)
	var st gostats.Stats
	for _, s := range filtered {
		st.Update(s)
	}
	skew := st.SampleSkew()

	out := fstream.NewPlot1D(fstream.NoParent, hist.x, hist.y)
	out.Title = fmt.Sprintf("cluster size distribution (mean=%.2f stdev=%.2f skew=%.2f)", mean, stdev, skew)
	out.XLabel, out.YLabel = "cluster size", "count"
	out.Style = fstream.PlotBars
	outputs := []fstream.Stream{out}
	if f.CachingEnabled() {
		f.StoreCache(inputs, outputs)
	}
	return outputs, filter.OK
}

// growCluster flood-fills every hit within sqrt(d2) of any already
// assigned member of cluster id, starting from seed. O(n^2) in the
// worst case, acceptable for the moderate point counts this stock
// filter targets.
func growCluster(hits []ion.Hit, assign []int, seed, id int, d2 float64) {
	queue := []int{seed}
	for len(queue) > 0 {
		cur := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for j, h := range hits {
			if assign[j] != -1 {
				continue
			}
			if hits[cur].Pos.SqDist(h.Pos) <= d2 {
				assign[j] = id
				queue = append(queue, j)
			}
		}
	}
}

// buildSizeHistogram bins cluster sizes into integer-width bars.
type sizeHistogram struct{ x, y []float64 }

func buildSizeHistogram(sizes []float64) sizeHistogram {
	maxSize := sizes[0]
	for _, s := range sizes {
		if s > maxSize {
			maxSize = s
		}
	}
	n := int(maxSize) + 1
	y := make([]float64, n)
	for _, s := range sizes {
		y[int(s)]++
	}
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	return sizeHistogram{x: x, y: y}
}
