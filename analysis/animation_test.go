package analysis

import "testing"

func TestAnimationTrackValueAtHoldsLastKeyframe(t *testing.T) {
	tr := &AnimationTrack{Path: PropertyPath{Filter: 1, Key: "angle"}}
	tr.SetKeyframe(5, "10")
	tr.SetKeyframe(1, "0")
	tr.SetKeyframe(10, "20")

	if _, ok := tr.ValueAt(0.5); ok {
		t.Fatal("ValueAt before the first keyframe reported a value")
	}
	v, ok := tr.ValueAt(3)
	if !ok || v != "0" {
		t.Fatalf("ValueAt(3) = (%q,%v), want (\"0\",true)", v, ok)
	}
	v, ok = tr.ValueAt(7)
	if !ok || v != "10" {
		t.Fatalf("ValueAt(7) = (%q,%v), want (\"10\",true)", v, ok)
	}
	v, ok = tr.ValueAt(100)
	if !ok || v != "20" {
		t.Fatalf("ValueAt(100) = (%q,%v), want (\"20\",true)", v, ok)
	}
}

func TestAnimationTrackSetKeyframeReplacesSameTime(t *testing.T) {
	tr := &AnimationTrack{}
	tr.SetKeyframe(1, "a")
	tr.SetKeyframe(1, "b")
	if len(tr.Keyframes) != 1 {
		t.Fatalf("len(Keyframes) = %d, want 1 (replace, not append)", len(tr.Keyframes))
	}
	if tr.Keyframes[0].Value != "b" {
		t.Fatalf("Keyframes[0].Value = %q, want \"b\"", tr.Keyframes[0].Value)
	}
}
