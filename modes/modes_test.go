package modes

import "testing"

func TestDefaults(t *testing.T) {
	s := New()
	if !s.Get(Autowrap) {
		t.Fatalf("Autowrap should default on")
	}
	if !s.Get(CursorVisible) {
		t.Fatalf("CursorVisible should default on")
	}
	if s.Get(Origin) {
		t.Fatalf("Origin should default off")
	}
}

func TestSetGet(t *testing.T) {
	s := New()
	s.Set(Origin, true)
	if !s.Get(Origin) {
		t.Fatalf("Origin should be on after Set(true)")
	}
	s.Set(Origin, false)
	if s.Get(Origin) {
		t.Fatalf("Origin should be off after Set(false)")
	}
}

func TestSaveRestore(t *testing.T) {
	s := New()
	s.Set(Insert, true)
	s.Save(Insert)
	s.Set(Insert, false)
	if s.Get(Insert) {
		t.Fatalf("Insert should be off before restore")
	}
	s.Restore(Insert)
	if !s.Get(Insert) {
		t.Fatalf("Insert should be restored to true")
	}
}

func TestResetToDefaults(t *testing.T) {
	s := New()
	s.Set(Origin, true)
	s.Set(Autowrap, false)
	s.ResetToDefaults()
	if s.Get(Origin) {
		t.Fatalf("Origin should reset to off")
	}
	if !s.Get(Autowrap) {
		t.Fatalf("Autowrap should reset to on")
	}
}

func TestFromWireDECOrigin(t *testing.T) {
	m, ok := FromWire(true, 6)
	if !ok || m != Origin {
		t.Fatalf("FromWire(dec,6) = (%v,%v), want (Origin,true)", m, ok)
	}
}

func TestFromWireANSIInsert(t *testing.T) {
	m, ok := FromWire(false, 4)
	if !ok || m != Insert {
		t.Fatalf("FromWire(ansi,4) = (%v,%v), want (Insert,true)", m, ok)
	}
}

func TestFromWireUnknown(t *testing.T) {
	if _, ok := FromWire(true, 99999); ok {
		t.Fatalf("expected unknown mode number to miss")
	}
}
