package hyperlink

import "testing"

func TestOpenAndGet(t *testing.T) {
	s := New()
	id, err := s.Open("abc", "", "https://example.com")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	link, ok := s.Get(id)
	if !ok {
		t.Fatalf("Get(%v) not found", id)
	}
	if link.URI != "https://example.com" || link.ExplicitID != "abc" {
		t.Fatalf("got %#v", link)
	}
}

func TestOpenDedupesByExplicitID(t *testing.T) {
	s := New()
	a, _ := s.Open("id1", "", "https://a")
	b, _ := s.Open("id1", "", "https://a")
	if a != b {
		t.Fatalf("same explicit id + uri should intern to the same id, got %v and %v", a, b)
	}
}

func TestOpenWithoutExplicitIDNeverCollapsesAcrossSpans(t *testing.T) {
	s := New()
	a, _ := s.Open("", "1", "https://same-uri.example")
	b, _ := s.Open("", "2", "https://same-uri.example")
	if a == b {
		t.Fatalf("two unlabeled spans with different implicit ids should not collapse to one id")
	}
}

// TestOpenWithoutExplicitIDCollapsesWithinSpan mirrors the call pattern
// Terminal.Print actually uses: every cell of one unlabeled OSC 8 span
// passes the same caller-minted implicit id, and all of them must intern
// to a single Link, not one per cell.
func TestOpenWithoutExplicitIDCollapsesWithinSpan(t *testing.T) {
	s := New()
	var ids []ID
	for i := 0; i < 5; i++ {
		id, err := s.Open("", "1", "https://same-uri.example")
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		ids = append(ids, id)
	}
	for i, id := range ids {
		if id != ids[0] {
			t.Fatalf("cell %d got a different id (%v) than the span's first cell (%v)", i, id, ids[0])
		}
	}
	if got := s.RefCount(ids[0]); got != 5 {
		t.Fatalf("expected refcount 5 after 5 cells of the same span, got %d", got)
	}
	if got := s.Len(); got != 1 {
		t.Fatalf("expected exactly one interned link for the whole span, got %d", got)
	}
}

func TestReleaseFreesEntry(t *testing.T) {
	s := New()
	id, _ := s.Open("x", "", "https://example.com")
	s.Release(id)
	if _, ok := s.Get(id); ok {
		t.Fatalf("entry should be gone after release to zero refcount")
	}
}

func TestRefKeepsEntryAlive(t *testing.T) {
	s := New()
	id, _ := s.Open("x", "", "https://example.com")
	s.Ref(id)
	s.Release(id)
	if _, ok := s.Get(id); !ok {
		t.Fatalf("entry should survive one release after an extra Ref")
	}
	s.Release(id)
	if _, ok := s.Get(id); ok {
		t.Fatalf("entry should be gone after matching releases")
	}
}
