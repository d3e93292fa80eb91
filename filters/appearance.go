package filters

import (
	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
)

// Appearance passes its input Ions through unchanged except for
// presentation attributes (point size, colour), which are declared
// cosmetic (spec §4.1) so the engine can mutate a live cache in place
// instead of re-running Refresh.
type Appearance struct {
	filter.Base
	colour    fstream.RGBA
	pointSize float64
}

// NewAppearance returns an Appearance filter with opaque white, size 1.
func NewAppearance() *Appearance {
	return &Appearance{Base: filter.NewBase(), colour: fstream.RGBA{R: 1, G: 1, B: 1, A: 1}, pointSize: 1}
}

func (f *Appearance) TypeID() filter.TypeID { return filter.TypeAppearance }
func (f *Appearance) TypeString() string    { return "Appearance" }

func (f *Appearance) CloneUncached() filter.Filter {
	return &Appearance{Base: filter.NewBase(), colour: f.colour, pointSize: f.pointSize}
}

func (f *Appearance) Properties() filter.PropGroups {
	return filter.PropGroups{{
		Title: "Appearance",
		Props: []filter.Property{
			{Key: "colour", Name: "Colour", Type: filter.PropColour, Value: rgbaStr(f.colour), Cosmetic: true,
				Help: "Display colour, RGBA components in [0,1]."},
			{Key: "point-size", Name: "Point size", Type: filter.PropReal, Value: f64s(f.pointSize), Cosmetic: true,
				Help: "Rendered point size in pixels."},
		},
	}}
}

func (f *Appearance) SetProperty(key, value string) (ok, needsUpdate bool) {
	switch key {
	case "colour":
		c, err := parseRGBA(value)
		if err != nil {
			return false, false
		}
		if c == f.colour {
			return true, false
		}
		f.colour = c
		return true, true
	case "point-size":
		v, err := parseFloat(value)
		if err != nil || v <= 0 {
			return false, false
		}
		if v == f.pointSize {
			return true, false
		}
		f.pointSize = v
		return true, true
	}
	return false, false
}

// ApplyCosmetic implements filter.CosmeticSetter: it mutates every
// cached Ions stream's presentation fields in place, without clearing
// or repopulating the cache.
func (f *Appearance) ApplyCosmetic(key, value string) bool {
	switch key {
	case "colour":
		c, err := parseRGBA(value)
		if err != nil {
			return false
		}
		f.colour = c
	case "point-size":
		v, err := parseFloat(value)
		if err != nil || v <= 0 {
			return false
		}
		f.pointSize = v
	default:
		return false
	}
	for _, s := range f.CachedOutputs() {
		if ions, ok := s.(*fstream.Ions); ok {
			ions.Colour = f.colour
			ions.PointSize = f.pointSize
		}
	}
	return true
}

func (f *Appearance) UseMask() fstream.Mask   { return fstream.MaskOf(fstream.KindIons) }
func (f *Appearance) BlockMask() fstream.Mask { return fstream.NoKinds }
func (f *Appearance) EmitMask() fstream.Mask  { return fstream.MaskOf(fstream.KindIons) }

func (f *Appearance) Refresh(inputs []fstream.Stream, progress *filter.Progress, abort *filter.AbortFlag) ([]fstream.Stream, filter.ErrCode) {
	in, ok := firstIons(inputs)
	if !ok {
		return nil, filter.OK
	}
	out := fstream.NewIons(fstream.NoParent, in.Hits)
	out.Colour, out.PointSize, out.ValueName = f.colour, f.pointSize, in.ValueName
	outputs := []fstream.Stream{out}
	if f.CachingEnabled() {
		f.StoreCache(inputs, outputs)
	}
	return outputs, filter.OK
}
