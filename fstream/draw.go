package fstream

import "github.com/threedepict/tomo/drawable"

// Draw carries a list of owned Drawable objects. Spec §4.2: on cache
// emit the producer retains ownership of the slice; on non-cache emit
// the pointers are moved to the renderer and the producer's slice is
// emptied. Callers should use TakeObjects rather than reading Objects
// directly once a non-cached Draw stream has been handed off, to make
// that move explicit.
type Draw struct {
	base
	Objects []drawable.Drawable
}

// NewDraw creates a Draw stream owned by parent.
func NewDraw(parent ParentRef, objects []drawable.Drawable) *Draw {
	return &Draw{base: newBase(KindDraw, parent), Objects: objects}
}

// TakeObjects returns d's objects and clears d's internal slice,
// implementing the non-cached emit's move semantics from spec §4.2.
func (d *Draw) TakeObjects() []drawable.Drawable {
	objs := d.Objects
	d.Objects = nil
	return objs
}

// Release releases every held drawable.
func (d *Draw) Release() {
	for _, o := range d.Objects {
		o.Release()
	}
	d.Objects = nil
}
