package slot

import "testing"

func TestFreshSlotsAreDistinct(t *testing.T) {
	a := Fresh()
	b := Fresh()
	if a.Equal(b) {
		t.Fatal("two calls to Fresh() produced equal slots")
	}
	if !a.Equal(a) {
		t.Fatal("a slot must equal itself")
	}
}

func TestNumericSlotEquality(t *testing.T) {
	if !Numeric(0).Equal(Numeric(0)) {
		t.Error("Numeric(0) should equal Numeric(0)")
	}
	if Numeric(0).Equal(Numeric(1)) {
		t.Error("Numeric(0) should not equal Numeric(1)")
	}
	if Numeric(0).Equal(Fresh()) {
		t.Error("a numeric slot should never equal a fresh slot")
	}
}

func TestSlotLessIsATotalOrder(t *testing.T) {
	n0, n1 := Numeric(0), Numeric(1)
	f := Fresh()
	if !n0.Less(n1) {
		t.Error("Numeric(0) should sort before Numeric(1)")
	}
	if !n1.Less(f) {
		t.Error("every numeric slot should sort before every fresh slot")
	}
	if f.Less(f) {
		t.Error("Less must be irreflexive")
	}
}

func TestIndexPanicsOnFreshSlot(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Index on a fresh slot should panic")
		}
	}()
	Fresh().Index()
}
