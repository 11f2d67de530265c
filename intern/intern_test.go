package intern

import "testing"

func TestAddDedup(t *testing.T) {
	s := New[string](nil)
	id1, err := s.Add("bold")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	id2, err := s.Add("bold")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("expected same id for equal items, got %d and %d", id1, id2)
	}
	if rc := s.RefCount(id1); rc != 2 {
		t.Fatalf("RefCount = %d, want 2", rc)
	}
}

func TestReleaseToZeroInvokesOnFree(t *testing.T) {
	var freed string
	s := New[string](func(item string) { freed = item })

	id, _ := s.Add("italic")
	s.Add("italic") // refcount 2

	s.Release(id)
	if freed != "" {
		t.Fatalf("onFree called too early")
	}
	if _, ok := s.Get(id); !ok {
		t.Fatalf("Get should still resolve while refcount > 0")
	}

	s.Release(id)
	if freed != "italic" {
		t.Fatalf("onFree not invoked at refcount 0, got %q", freed)
	}
	if _, ok := s.Get(id); ok {
		t.Fatalf("Get should fail after release to zero")
	}
	if rc := s.RefCount(id); rc != 0 {
		t.Fatalf("RefCount after release = %d, want 0", rc)
	}
}

func TestIDRecycled(t *testing.T) {
	s := New[int](nil)
	id1, _ := s.Add(1)
	s.Release(id1)

	id2, _ := s.Add(2)
	if id2 != id1 {
		t.Fatalf("expected recycled id %d, got %d", id1, id2)
	}
	item, ok := s.Get(id2)
	if !ok || item != 2 {
		t.Fatalf("Get(id2) = (%v, %v), want (2, true)", item, ok)
	}
}

func TestZeroIDNeverIssued(t *testing.T) {
	s := New[int](nil)
	for i := 0; i < 10; i++ {
		id, err := s.Add(i)
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if id == 0 {
			t.Fatalf("id 0 must never be issued (reserved as the no-value sentinel)")
		}
	}
}

func TestRefIncrementsWithoutReinterning(t *testing.T) {
	s := New[string](nil)
	id, _ := s.Add("x")
	s.Ref(id)
	if rc := s.RefCount(id); rc != 2 {
		t.Fatalf("RefCount after Ref = %d, want 2", rc)
	}
}
