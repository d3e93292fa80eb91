package analysis

import (
	"sort"

	"github.com/threedepict/tomo/treestate"
)

// PropertyPath identifies one filter property within the tree, the
// addressable unit an AnimationTrack drives over time.
type PropertyPath struct {
	Filter treestate.Handle
	Key    string
}

// Keyframe is a single (time, value) sample on an AnimationTrack.
type Keyframe struct {
	TimeSeconds float64
	Value       string
}

// AnimationTrack is the time-keyed record of one property's values
// (spec §3: "an animation record (time-keyed property paths)").
type AnimationTrack struct {
	Path      PropertyPath
	Keyframes []Keyframe
}

// SetKeyframe inserts or replaces the keyframe at t, keeping
// Keyframes sorted by time.
func (tr *AnimationTrack) SetKeyframe(t float64, value string) {
	for i := range tr.Keyframes {
		if tr.Keyframes[i].TimeSeconds == t {
			tr.Keyframes[i].Value = value
			return
		}
	}
	tr.Keyframes = append(tr.Keyframes, Keyframe{TimeSeconds: t, Value: value})
	sort.Slice(tr.Keyframes, func(i, j int) bool {
		return tr.Keyframes[i].TimeSeconds < tr.Keyframes[j].TimeSeconds
	})
}

// ValueAt returns the value in effect at time t: the value of the last
// keyframe at or before t, held constant until the next keyframe
// (step interpolation, matching how a discrete string-valued Property
// has no natural interpolation between keyframes).
func (tr *AnimationTrack) ValueAt(t float64) (string, bool) {
	var v string
	found := false
	for _, k := range tr.Keyframes {
		if k.TimeSeconds > t {
			break
		}
		v = k.Value
		found = true
	}
	return v, found
}
