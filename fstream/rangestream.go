package fstream

import "github.com/threedepict/tomo/rangefile"

// Range is a non-owning reference to a RangeFile plus per-ion and
// per-range enable vectors of matching length (spec §4.2). Because it
// is non-owning, Ownership is always Owned regardless of how it was
// produced — there is nothing for a consumer to destroy.
type Range struct {
	base
	File         *rangefile.RangeFile
	IonEnabled   []bool
	RangeEnabled []bool
}

// NewRange creates a Range stream referencing file, with every ion and
// range enabled by default.
func NewRange(parent ParentRef, file *rangefile.RangeFile) *Range {
	r := &Range{base: newBase(KindRange, parent), File: file}
	r.ownership = Owned
	r.IonEnabled = make([]bool, len(file.Ions()))
	r.RangeEnabled = make([]bool, len(file.Ranges()))
	for i := range r.IonEnabled {
		r.IonEnabled[i] = true
	}
	for i := range r.RangeEnabled {
		r.RangeEnabled[i] = true
	}
	return r
}

// Release is a no-op: Range never owns the RangeFile it references.
func (r *Range) Release() {}
