package filters

import (
	"testing"

	"github.com/threedepict/tomo/filter"
)

// allValues flattens a filter's properties into key->value for comparison.
func allValues(pg filter.PropGroups) map[string]string {
	out := map[string]string{}
	for _, g := range pg {
		for _, p := range g.Props {
			out[p.Key] = p.Value
		}
	}
	return out
}

// assertClonePreservesProperties checks spec §8's round-trip invariant:
// CloneUncached followed by a property readback equals the source's
// property readback, for every key the source exposes.
func assertClonePreservesProperties(t *testing.T, f filter.Filter) {
	t.Helper()
	clone := f.CloneUncached()
	want := allValues(f.Properties())
	got := allValues(clone.Properties())
	for k, v := range want {
		if got[k] != v {
			t.Errorf("clone property %q = %q, want %q", k, got[k], v)
		}
	}
	if clone.TypeID() != f.TypeID() {
		t.Errorf("clone TypeID() = %v, want %v", clone.TypeID(), f.TypeID())
	}
}

func TestCloneUncachedPreservesProperties(t *testing.T) {
	clip := NewClip()
	clip.SetProperty("invert", "true")
	assertClonePreservesProperties(t, clip)

	down := NewDownsample()
	down.SetProperty("fraction", "0.25")
	assertClonePreservesProperties(t, down)

	tr := NewTransform()
	tr.SetProperty("translate", "1 2 3")
	assertClonePreservesProperties(t, tr)

	ann := NewAnnotation()
	ann.SetProperty("expr", "sqrt(x*x+y*y)")
	assertClonePreservesProperties(t, ann)
}
