package drawable

import "math/bits"

// InteractionMode identifies how a 2D drag is interpreted.
type InteractionMode int

// The interaction modes a SelectionBinding may use.
const (
	ModeFloatScale InteractionMode = iota
	ModeFloatTranslate
	ModePointTranslate
	ModePointScale
	ModePointRotate
	ModePointRotateLockedMagnitude
)

// MouseButton is a bitmask of mouse buttons.
type MouseButton uint8

// Mouse button bits.
const (
	MouseLeft MouseButton = 1 << iota
	MouseMiddle
	MouseRight
)

// ModifierKey is a bitmask of modifier keys.
type ModifierKey uint8

// Modifier key bits.
const (
	ModShift ModifierKey = 1 << iota
	ModCtrl
	ModAlt
)

// BindingTarget is the minimal surface a Filter must expose so a
// Binding can apply itself without the drawable package depending on
// the filter package (spec §4.8's "target filter pointer" and "action
// ID understood by Filter.set_prop_from_binding").
type BindingTarget interface {
	SetPropFromBinding(actionID int, delta [3]float64, transient bool) error
}

// Binding couples a drawable to a particular parameter of the filter
// that produced it (spec §4.8).
type Binding struct {
	Buttons   MouseButton
	Modifiers ModifierKey
	Mode      InteractionMode
	Lo, Hi    float64 // scalar bounds, meaningful for the Float* modes
	Target    BindingTarget
	ActionID  int
}

// Project converts a 2D drag vector into a 3D delta using the supplied
// camera basis vectors (inPlaneU, inPlaneV, forward), selecting
// coefficients according to which modifier keys are held: Shift
// restricts to the "across" (inPlaneV) axis, Ctrl restricts to
// "forward", and no modifier moves freely in the in-plane (inPlaneU)
// direction. This is the renderer-agnostic half of the original's
// camera-basis projection in gl/select.cpp.
func (b Binding) Project(drag [2]float64, inPlaneU, inPlaneV, forward [3]float64) [3]float64 {
	var coeff [3]float64
	switch {
	case b.Modifiers&ModShift != 0:
		coeff = inPlaneV
	case b.Modifiers&ModCtrl != 0:
		coeff = forward
	default:
		coeff = inPlaneU
	}
	mag := drag[0] + drag[1]
	return [3]float64{coeff[0] * mag, coeff[1] * mag, coeff[2] * mag}
}

// Apply runs the binding's target hook with the given delta.
// transient is true while the drag is in progress (the change should
// not be considered final) and false on mouse release.
func (b Binding) Apply(delta [3]float64, transient bool) error {
	return b.Target.SetPropFromBinding(b.ActionID, delta, transient)
}

// Specificity returns the number of modifier bits set. Spec §4.8:
// "Bindings with longer modifier masks outrank shorter ones when
// multiple match."
func (b Binding) Specificity() int { return bits.OnesCount8(uint8(b.Modifiers)) }

// SelectMostSpecific returns the index of the candidate with the
// highest Specificity, breaking ties by keeping the first match (a
// stable sort), matching the original's linear scan that keeps the
// first most-specific binding it finds.
func SelectMostSpecific(candidates []Binding) (int, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Specificity() > candidates[best].Specificity() {
			best = i
		}
	}
	return best, true
}
