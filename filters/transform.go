package filters

import (
	"math"

	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/geom"
	"github.com/threedepict/tomo/ion"
)

// Transform applies a translation and a quaternion rotation (about the
// point cloud's centroid) to every ion position.
type Transform struct {
	filter.Base
	translate geom.Point3D
	axis      geom.Point3D
	angle     float64 // radians
}

// NewTransform returns an identity Transform filter.
func NewTransform() *Transform {
	return &Transform{Base: filter.NewBase(), axis: geom.Pt(0, 0, 1)}
}

func (f *Transform) TypeID() filter.TypeID { return filter.TypeTransform }
func (f *Transform) TypeString() string    { return "Transform" }

func (f *Transform) CloneUncached() filter.Filter {
	return &Transform{Base: filter.NewBase(), translate: f.translate, axis: f.axis, angle: f.angle}
}

func (f *Transform) Properties() filter.PropGroups {
	return filter.PropGroups{{
		Title: "Transform",
		Props: []filter.Property{
			{Key: "translate", Name: "Translation", Type: filter.PropPoint3D, Value: f.translate.String(),
				Help: "Translation applied after rotation, in nanometres."},
			{Key: "axis", Name: "Rotation axis", Type: filter.PropPoint3D, Value: f.axis.String(),
				Help: "Axis of rotation about the point cloud centroid."},
			{Key: "angle", Name: "Rotation angle (deg)", Type: filter.PropReal, Value: f64s(f.angle * 180 / math.Pi),
				Help: "Rotation angle in degrees, about axis, applied before translation."},
		},
	}}
}

func (f *Transform) SetProperty(key, value string) (ok, needsUpdate bool) {
	switch key {
	case "translate":
		p, err := geom.ParsePoint3D(value)
		if err != nil {
			return false, false
		}
		if p == f.translate {
			return true, false
		}
		f.translate = p
		f.ClearCache()
		return true, true
	case "axis":
		p, err := geom.ParsePoint3D(value)
		if err != nil {
			return false, false
		}
		if p == f.axis {
			return true, false
		}
		f.axis = p
		f.ClearCache()
		return true, true
	case "angle":
		v, err := parseFloat(value)
		if err != nil {
			return false, false
		}
		rad := v * math.Pi / 180
		if rad == f.angle {
			return true, false
		}
		f.angle = rad
		f.ClearCache()
		return true, true
	}
	return false, false
}

func (f *Transform) UseMask() fstream.Mask   { return fstream.MaskOf(fstream.KindIons) }
func (f *Transform) BlockMask() fstream.Mask { return fstream.NoKinds }
func (f *Transform) EmitMask() fstream.Mask  { return fstream.MaskOf(fstream.KindIons) }

func (f *Transform) Refresh(inputs []fstream.Stream, progress *filter.Progress, abort *filter.AbortFlag) ([]fstream.Stream, filter.ErrCode) {
	in, ok := firstIons(inputs)
	if !ok {
		return nil, filter.OK
	}
	box := ion.BoundingCube(in.Hits)
	centroid := box.Centroid()
	q := geom.QuaternionFromAxisAngle(f.axis, f.angle)

	out := make([]ion.Hit, len(in.Hits))
	for i, h := range in.Hits {
		if abort.IsSet() {
			return nil, filter.Aborted
		}
		if i%filter.CheckInterval == 0 {
			progress.Step(i, len(in.Hits), "transforming")
		}
		rel := h.Pos.Sub(centroid)
		rotated := rel.Rotate(q).Add(centroid).Add(f.translate)
		out[i] = ion.Hit{Pos: rotated, Value: h.Value}
	}
	result := fstream.NewIons(fstream.NoParent, out)
	result.Colour, result.PointSize, result.ValueName = in.Colour, in.PointSize, in.ValueName
	outputs := []fstream.Stream{result}
	if f.CachingEnabled() {
		f.StoreCache(inputs, outputs)
	}
	return outputs, filter.OK
}
