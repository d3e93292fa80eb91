package fstream

// Stream is the common interface implemented by every filter stream
// variant (spec §4.2). Ownership is transferred on uncached emit: when
// a filter emits with Ownership()==Transferred, the receiver owns the
// stream and must call Release when done; when Ownership()==Owned, the
// stream belongs to the producing filter's cache and must be treated as
// borrowed.
type Stream interface {
	Kind() Kind
	Parent() ParentRef
	Ownership() Ownership
	SetOwnership(Ownership)

	// Release destroys any external resources (texture handles,
	// selection devices) the stream holds. It is idempotent.
	Release()
}

// base is embedded by every concrete stream type to supply the common
// Stream bookkeeping fields.
type base struct {
	kind      Kind
	parent    ParentRef
	ownership Ownership
}

func newBase(k Kind, parent ParentRef) base {
	return base{kind: k, parent: parent, ownership: Transferred}
}

func (b *base) Kind() Kind             { return b.kind }
func (b *base) Parent() ParentRef      { return b.parent }
func (b *base) Ownership() Ownership   { return b.ownership }
func (b *base) SetOwnership(o Ownership) { b.ownership = o }
