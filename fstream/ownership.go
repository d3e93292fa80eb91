package fstream

// Ownership records whether a Stream is still owned by its producing
// filter's cache, or whether ownership has been transferred to the
// consumer that must eventually destroy it.
//
// Spec §9's Open Questions flags the original's overloaded
// "cached: unsigned int used as boolean, with a -1 sentinel" as a design
// smell; this tri-state enum is the clean replacement it asks for.
type Ownership int

const (
	// Unset is the zero value and is never valid on a Stream returned
	// from Filter.refresh; its presence indicates a bug in the
	// producing filter.
	Unset Ownership = iota
	// Owned means the stream is held in the producing filter's cache
	// list; consumers must treat the pointer as borrowed.
	Owned
	// Transferred means ownership has passed to the consumer (ultimately
	// the refresh engine), which must release it once done.
	Transferred
)

// ParentRef is a weak, identity-only reference to the filter that
// produced a stream. It is never used for ownership or traversal — per
// the design note in spec §9, the only legitimate use of a stream's
// parent back-reference is identity comparison, so this is a plain
// integer handle into a stable table rather than a pointer that could
// create a reference cycle with the filter tree.
type ParentRef uint64

// NoParent is the zero ParentRef, used for streams with no producer
// (e.g. ones built directly by tests).
const NoParent ParentRef = 0
