package fstream

import "github.com/threedepict/tomo/ion"

// RGBA is a colour with an alpha channel, all components in [0,1].
type RGBA struct{ R, G, B, A float64 }

// Ions carries a contiguous run of ion hits plus how they should be
// presented.
type Ions struct {
	base
	Hits      []ion.Hit
	Colour    RGBA
	PointSize float64
	ValueName string // name of the scalar carried in Hit.Value, e.g. "mass-to-charge"
}

// NewIons creates an Ions stream owned by parent.
func NewIons(parent ParentRef, hits []ion.Hit) *Ions {
	return &Ions{
		base:      newBase(KindIons, parent),
		Hits:      hits,
		Colour:    RGBA{1, 1, 1, 1},
		PointSize: 1,
		ValueName: "mass-to-charge",
	}
}

// Release is a no-op: Ions holds no external resources.
func (i *Ions) Release() {}
