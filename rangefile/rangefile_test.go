package rangefile

import "testing"

func TestAddRangeRejectsOverlapAndInvalidIon(t *testing.T) {
	rf := New()
	ionIdx, err := rf.AddIon("Fe", Colour{R: 1})
	if err != nil {
		t.Fatalf("AddIon: %v", err)
	}
	if err := rf.AddRange(0, 1, ionIdx); err != nil {
		t.Fatalf("AddRange: %v", err)
	}
	if err := rf.AddRange(0.5, 1.5, ionIdx); err == nil {
		t.Fatal("AddRange accepted an overlapping range")
	}
	if err := rf.AddRange(2, 3, 99); err == nil {
		t.Fatal("AddRange accepted an invalid ion index")
	}
}

func TestLookupFindsOwningRangeAndUnrangedOtherwise(t *testing.T) {
	rf := New()
	fe, _ := rf.AddIon("Fe", Colour{})
	o, _ := rf.AddIon("O", Colour{})
	if err := rf.AddRange(1, 2, fe); err != nil {
		t.Fatalf("AddRange: %v", err)
	}
	if err := rf.AddRange(5, 6, o); err != nil {
		t.Fatalf("AddRange: %v", err)
	}

	if got := rf.Lookup(1.5); got != fe {
		t.Fatalf("Lookup(1.5) = %d, want %d (Fe)", got, fe)
	}
	if got := rf.Lookup(5.9); got != o {
		t.Fatalf("Lookup(5.9) = %d, want %d (O)", got, o)
	}
	if got := rf.Lookup(3); got != Unranged {
		t.Fatalf("Lookup(3) = %d, want Unranged", got)
	}
}

func TestWidthIsHiMinusLo(t *testing.T) {
	r := Range{Lo: 1, Hi: 2.5}
	if got := r.Width(); got != 1.5 {
		t.Fatalf("Width() = %v, want 1.5", got)
	}
}

func TestValidateCatchesOverlapBypassingAddRange(t *testing.T) {
	rf := New()
	fe, _ := rf.AddIon("Fe", Colour{})
	rf.ranges = append(rf.ranges, Range{Lo: 0, Hi: 2, IonIdx: fe}, Range{Lo: 1, Hi: 3, IonIdx: fe})
	if err := rf.Validate(); err == nil {
		t.Fatal("Validate accepted overlapping ranges constructed outside AddRange")
	}
}

func TestValidateCatchesInvalidIonIndex(t *testing.T) {
	rf := New()
	rf.ranges = append(rf.ranges, Range{Lo: 0, Hi: 1, IonIdx: 0})
	if err := rf.Validate(); err == nil {
		t.Fatal("Validate accepted a range with no matching ion")
	}
}
