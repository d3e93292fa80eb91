// Package drawable specifies the renderer-agnostic contract a 3D scene
// object must satisfy (spec §4.7). Actual rendering (OpenGL/WX, a scene
// graph, a camera) is out of scope per spec §1; only the interface the
// engine hands to such a renderer is specified here.
package drawable

import "github.com/threedepict/tomo/geom"

// TexturePool hands out reference-counted texture IDs shared across the
// whole process (spec §5's "Texture pool: process-wide, reference
// counted by ID").
type TexturePool interface {
	Acquire(key string) (id int, err error)
	Release(id int)
}

// Drawable is the contract a filter's emitted Draw stream objects must
// satisfy so that any retained-mode 3D renderer can display them.
type Drawable interface {
	// BoundingBox returns the object's axis-aligned bounding box in
	// world space.
	BoundingBox() geom.BoundCube

	// WantsLighting reports whether the renderer should apply scene
	// lighting when drawing this object.
	WantsLighting() bool

	// NeedsDepthSort reports whether this object must be drawn in
	// back-to-front order relative to other transparent objects.
	NeedsDepthSort() bool

	// Selectable reports whether this object can receive mouse/key
	// interaction through a SelectionBinding.
	Selectable() bool

	// IsOverlay reports whether this object is drawn in screen space
	// rather than world space (e.g. a legend or colour bar).
	IsOverlay() bool

	// Release frees any resources (texture pool handles) the object
	// holds. Idempotent.
	Release()
}

// Recomputer is implemented by Drawables that can translate a
// SelectionBinding's interaction delta into parameter changes on the
// filter that produced them.
type Recomputer interface {
	// RecomputeParams converts mouseDelta (screen-space) into updated
	// binding-specific parameter values, returned as a set of
	// (key,value) pairs ready for Filter.SetProperty.
	RecomputeParams(b Binding, mouseDelta [2]float64) map[string]string
}
