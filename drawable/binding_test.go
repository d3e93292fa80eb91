package drawable

import "testing"

type fakeTarget struct {
	actionID  int
	delta     [3]float64
	transient bool
}

func (f *fakeTarget) SetPropFromBinding(actionID int, delta [3]float64, transient bool) error {
	f.actionID, f.delta, f.transient = actionID, delta, transient
	return nil
}

func TestProjectSelectsAxisByModifier(t *testing.T) {
	u, v, fwd := [3]float64{1, 0, 0}, [3]float64{0, 1, 0}, [3]float64{0, 0, 1}

	none := Binding{}
	if got := none.Project([2]float64{1, 0}, u, v, fwd); got != [3]float64{1, 0, 0} {
		t.Fatalf("no-modifier Project = %v, want in-plane-U", got)
	}

	shift := Binding{Modifiers: ModShift}
	if got := shift.Project([2]float64{1, 0}, u, v, fwd); got != [3]float64{0, 1, 0} {
		t.Fatalf("shift Project = %v, want in-plane-V", got)
	}

	ctrl := Binding{Modifiers: ModCtrl}
	if got := ctrl.Project([2]float64{1, 0}, u, v, fwd); got != [3]float64{0, 0, 1} {
		t.Fatalf("ctrl Project = %v, want forward", got)
	}
}

func TestApplyInvokesTargetWithDeltaAndTransience(t *testing.T) {
	target := &fakeTarget{}
	b := Binding{Target: target, ActionID: 7}
	if err := b.Apply([3]float64{1, 2, 3}, true); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if target.actionID != 7 || target.delta != [3]float64{1, 2, 3} || !target.transient {
		t.Fatalf("target received (%d,%v,%v), want (7,[1 2 3],true)", target.actionID, target.delta, target.transient)
	}
}

func TestSelectMostSpecificPrefersMoreModifiersAndKeepsFirstTie(t *testing.T) {
	candidates := []Binding{
		{Modifiers: 0},
		{Modifiers: ModShift | ModCtrl},
		{Modifiers: ModShift | ModAlt},
	}
	i, ok := SelectMostSpecific(candidates)
	if !ok || i != 1 {
		t.Fatalf("SelectMostSpecific = (%d,%v), want (1,true)", i, ok)
	}
}

func TestSelectMostSpecificEmptyReturnsFalse(t *testing.T) {
	if _, ok := SelectMostSpecific(nil); ok {
		t.Fatal("SelectMostSpecific on empty slice reported a match")
	}
}
