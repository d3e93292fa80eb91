package filters

import (
	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/ion"
)

// RangeApply labels each ion by looking its value up in the incoming
// Range stream, optionally dropping ions that fall in no range. It
// emits one Ions stream per enabled ion species, each coloured by that
// species' range-file colour, plus the Range stream it consumed
// forwarded unchanged so downstream filters can still inspect the
// table (spec §2's "apply a range table").
type RangeApply struct {
	filter.Base
	dropUnranged bool
}

// NewRangeApply returns a RangeApply filter that drops unranged ions by
// default.
func NewRangeApply() *RangeApply {
	return &RangeApply{Base: filter.NewBase(), dropUnranged: true}
}

func (f *RangeApply) TypeID() filter.TypeID { return filter.TypeRangeApply }
func (f *RangeApply) TypeString() string    { return "RangeApply" }

func (f *RangeApply) CloneUncached() filter.Filter {
	return &RangeApply{Base: filter.NewBase(), dropUnranged: f.dropUnranged}
}

func (f *RangeApply) Properties() filter.PropGroups {
	return filter.PropGroups{{
		Title: "Range",
		Props: []filter.Property{
			{Key: "drop-unranged", Name: "Drop unranged", Type: filter.PropBool, Value: boolStr(f.dropUnranged),
				Help: "Discard ions whose value falls in no range, instead of passing them through uncoloured."},
		},
	}}
}

func (f *RangeApply) SetProperty(key, value string) (ok, needsUpdate bool) {
	if key != "drop-unranged" {
		return false, false
	}
	v, err := parseBool(value)
	if err != nil {
		return false, false
	}
	if v == f.dropUnranged {
		return true, false
	}
	f.dropUnranged = v
	f.ClearCache()
	return true, true
}

func (f *RangeApply) UseMask() fstream.Mask {
	return fstream.MaskOf(fstream.KindIons, fstream.KindRange)
}
func (f *RangeApply) BlockMask() fstream.Mask { return fstream.MaskOf(fstream.KindRange) }
func (f *RangeApply) EmitMask() fstream.Mask {
	return fstream.MaskOf(fstream.KindIons, fstream.KindRange)
}

func (f *RangeApply) Refresh(inputs []fstream.Stream, progress *filter.Progress, abort *filter.AbortFlag) ([]fstream.Stream, filter.ErrCode) {
	in, ok := firstIons(inputs)
	if !ok {
		return nil, filter.OK
	}
	rf, ok := firstRange(inputs)
	if !ok {
		// No range table: pass ions through unranged.
		out := fstream.NewIons(fstream.NoParent, in.Hits)
		outputs := []fstream.Stream{out}
		if f.CachingEnabled() {
			f.StoreCache(inputs, outputs)
		}
		return outputs, filter.OK
	}

	perIon := make(map[int][]ion.Hit)
	var unranged []ion.Hit
	for i, h := range in.Hits {
		if abort.IsSet() {
			return nil, filter.Aborted
		}
		if i%filter.CheckInterval == 0 {
			progress.Step(i, len(in.Hits), "applying ranges")
		}
		idx := rf.File.Lookup(h.Value)
		if idx == -1 || !ionEnabled(rf, idx) {
			unranged = append(unranged, h)
			continue
		}
		perIon[idx] = append(perIon[idx], h)
	}

	var outputs []fstream.Stream
	for idx, ions := range rf.File.Ions() {
		hits, has := perIon[idx]
		if !has {
			continue
		}
		out := fstream.NewIons(fstream.NoParent, hits)
		out.Colour = fstream.RGBA{R: ions.Colour.R, G: ions.Colour.G, B: ions.Colour.B, A: 1}
		out.ValueName = ions.Name
		outputs = append(outputs, out)
	}
	if !f.dropUnranged && len(unranged) > 0 {
		out := fstream.NewIons(fstream.NoParent, unranged)
		out.ValueName = "unranged"
		outputs = append(outputs, out)
	}
	outputs = append(outputs, passthroughRange(rf))

	if f.CachingEnabled() {
		f.StoreCache(inputs, outputs)
	}
	return outputs, filter.OK
}

func ionEnabled(r *fstream.Range, idx int) bool {
	if idx < 0 || idx >= len(r.IonEnabled) {
		return true
	}
	return r.IonEnabled[idx]
}
