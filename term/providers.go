package term

import "io"

// ResponseWriter receives terminal responses (cursor position reports,
// device attributes, clipboard query replies) destined back to the PTY.
// Grounded on the teacher's ResponseProvider, which is the same io.Writer
// alias for the same reason: the terminal only ever needs to append bytes,
// never read them back.
type ResponseWriter = io.Writer

// NoopResponse discards every response.
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (int, error) { return len(p), nil }

// BellProvider handles BEL (0x07).
type BellProvider interface {
	Ring()
}

// NoopBell ignores the bell.
type NoopBell struct{}

func (NoopBell) Ring() {}

// ClipboardProvider backs OSC 52 clipboard set/request.
type ClipboardProvider interface {
	Read(selection byte) []byte
	Write(selection byte, data []byte)
}

// NoopClipboard discards writes and reports every clipboard empty.
type NoopClipboard struct{}

func (NoopClipboard) Read(selection byte) []byte     { return nil }
func (NoopClipboard) Write(selection byte, data []byte) {}

var (
	_ ResponseWriter    = NoopResponse{}
	_ BellProvider      = NoopBell{}
	_ ClipboardProvider = NoopClipboard{}
)
