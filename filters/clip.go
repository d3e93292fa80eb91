package filters

import (
	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/geom"
	"github.com/threedepict/tomo/ion"
)

// Clip discards ions outside an axis-aligned box (or, if Invert is set,
// outside it is kept and inside discarded).
type Clip struct {
	filter.Base
	box    geom.BoundCube
	invert bool
}

// NewClip returns a Clip filter with an unset (empty) box, which passes
// no ions through until configured.
func NewClip() *Clip {
	return &Clip{Base: filter.NewBase(), box: geom.EmptyBoundCube()}
}

func (f *Clip) TypeID() filter.TypeID { return filter.TypeClip }
func (f *Clip) TypeString() string    { return "Clip" }

func (f *Clip) CloneUncached() filter.Filter {
	return &Clip{Base: filter.NewBase(), box: f.box, invert: f.invert}
}

func (f *Clip) Properties() filter.PropGroups {
	return filter.PropGroups{{
		Title: "Clip",
		Props: []filter.Property{
			{Key: "min", Name: "Min corner", Type: filter.PropPoint3D, Value: f.box.Min.String(),
				Help: "Minimum corner of the clip box."},
			{Key: "max", Name: "Max corner", Type: filter.PropPoint3D, Value: f.box.Max.String(),
				Help: "Maximum corner of the clip box."},
			{Key: "invert", Name: "Invert", Type: filter.PropBool, Value: boolStr(f.invert),
				Help: "Keep ions outside the box instead of inside it."},
		},
	}}
}

func (f *Clip) SetProperty(key, value string) (ok, needsUpdate bool) {
	switch key {
	case "min":
		p, err := geom.ParsePoint3D(value)
		if err != nil {
			return false, false
		}
		if p == f.box.Min {
			return true, false
		}
		f.box.Min = p
		f.ClearCache()
		return true, true
	case "max":
		p, err := geom.ParsePoint3D(value)
		if err != nil {
			return false, false
		}
		if p == f.box.Max {
			return true, false
		}
		f.box.Max = p
		f.ClearCache()
		return true, true
	case "invert":
		v, err := parseBool(value)
		if err != nil {
			return false, false
		}
		if v == f.invert {
			return true, false
		}
		f.invert = v
		f.ClearCache()
		return true, true
	}
	return false, false
}

func (f *Clip) UseMask() fstream.Mask   { return fstream.MaskOf(fstream.KindIons) }
func (f *Clip) BlockMask() fstream.Mask { return fstream.NoKinds }
func (f *Clip) EmitMask() fstream.Mask  { return fstream.MaskOf(fstream.KindIons) }

func (f *Clip) Refresh(inputs []fstream.Stream, progress *filter.Progress, abort *filter.AbortFlag) ([]fstream.Stream, filter.ErrCode) {
	in, ok := firstIons(inputs)
	if !ok {
		return nil, filter.OK
	}
	box := geom.BoundCube{Min: f.box.Min, Max: f.box.Max}
	valid := box.Valid()
	kept := make([]ion.Hit, 0, len(in.Hits))
	for i, h := range in.Hits {
		if abort.IsSet() {
			return nil, filter.Aborted
		}
		if i%filter.CheckInterval == 0 {
			progress.Step(i, len(in.Hits), "clipping")
		}
		inside := valid && box.ContainsPt(h.Pos)
		if inside != f.invert {
			kept = append(kept, h)
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
