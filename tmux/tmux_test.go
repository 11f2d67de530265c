package tmux

import "testing"

func TestOutputNotification(t *testing.T) {
	c := New(4096)
	notes := c.Feed([]byte("%output %1 hello world\n"))

	if len(notes) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notes))
	}
	n := notes[0]
	if n.Kind != KindOutput || n.ID != "1" || string(n.Data) != "hello world" {
		t.Errorf("unexpected notification: %+v", n)
	}
	if c.State() != StateIdle {
		t.Errorf("expected idle after output, got %v", c.State())
	}
}

// TestOutputNotificationStripsSigil matches spec §8 scenario 6's literal
// example: "%output %42 foo bar baz\n" resolves to pane_id 42, no sigil.
func TestOutputNotificationStripsSigil(t *testing.T) {
	c := New(4096)
	notes := c.Feed([]byte("%output %42 foo bar baz\n"))
	if len(notes) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notes))
	}
	n := notes[0]
	if n.Kind != KindOutput || n.ID != "42" || string(n.Data) != "foo bar baz" {
		t.Errorf("unexpected notification: %+v", n)
	}
}

func TestSessionChanged(t *testing.T) {
	c := New(4096)
	notes := c.Feed([]byte("%session-changed $1 mysession\n"))
	if len(notes) != 1 || notes[0].Kind != KindSessionChanged || notes[0].ID != "1" || string(notes[0].Name) != "mysession" {
		t.Fatalf("unexpected: %+v", notes)
	}
}

func TestBlockEndAccumulates(t *testing.T) {
	c := New(4096)
	notes := c.Feed([]byte("%begin 123 0\nline one\nline two\n%end 123 0\n"))
	if len(notes) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notes))
	}
	if notes[0].Kind != KindBlockEnd {
		t.Fatalf("expected block end, got %v", notes[0].Kind)
	}
	want := "line one\nline two\n%end 123 0\n"
	if string(notes[0].Data) != want {
		t.Errorf("expected accumulated block %q, got %q", want, notes[0].Data)
	}
}

func TestBlockError(t *testing.T) {
	c := New(4096)
	notes := c.Feed([]byte("%begin 1 0\n%error\n"))
	if len(notes) != 1 || notes[0].Kind != KindBlockErr {
		t.Fatalf("expected block error, got %+v", notes)
	}
}

func TestUnknownCommandLogsAndReturnsIdle(t *testing.T) {
	c := New(4096)
	notes := c.Feed([]byte("%something-new foo\n"))
	if len(notes) != 1 || notes[0].Kind != KindUnknown {
		t.Fatalf("expected unknown notification, got %+v", notes)
	}
	if c.State() != StateIdle {
		t.Errorf("expected idle, got %v", c.State())
	}
}

func TestIdlePlusNonPercentBreaks(t *testing.T) {
	c := New(4096)
	notes := c.Feed([]byte("x"))
	if len(notes) != 1 || notes[0].Kind != KindExit {
		t.Fatalf("expected exit notification, got %+v", notes)
	}
	if c.State() != StateBroken {
		t.Errorf("expected broken state, got %v", c.State())
	}

	more := c.Feed([]byte("more bytes after broken"))
	if len(more) != 0 {
		t.Errorf("expected no further notifications once broken, got %d", len(more))
	}
}

func TestOverflowBreaksClient(t *testing.T) {
	c := New(8)
	notes := c.Feed([]byte("%output %1 this line is definitely too long\n"))
	if len(notes) == 0 || notes[len(notes)-1].Kind != KindExit {
		t.Fatalf("expected overflow to end in an exit notification, got %+v", notes)
	}
	if c.State() != StateBroken {
		t.Errorf("expected broken state after overflow, got %v", c.State())
	}
}
