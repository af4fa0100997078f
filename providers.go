package vtcore

import "io"

// OutputSink receives response bytes the interpreter writes back toward
// the pseudoterminal: device-attribute replies, cursor-position reports,
// the VT52 identify string, and the answerback (spec.md §4.3 "Output
// sink", §6 "Interpreter output"). Typically an io.Writer connected to the
// PTY's input side; the pty plumbing itself is outside the core's scope.
type OutputSink = io.Writer

// NoopOutputSink discards every response.
type NoopOutputSink struct{}

func (NoopOutputSink) Write(p []byte) (int, error) { return len(p), nil }

// BellProvider handles BEL (0x07).
type BellProvider interface {
	Ring()
}

// NoopBell ignores bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// WindowProvider is the abstract window-layer collaborator named in
// spec.md §6 ("Screen/Interpreter -> window layer interface: set_title,
// set_icon_name, bell, resize"). Bell is split out as BellProvider since
// spec.md treats it as its own execute() action; the remaining three live
// here.
type WindowProvider interface {
	SetTitle(title string)
	SetIconName(name string)
	Resize(width, height int)
}

// NoopWindow ignores all window-layer notifications.
type NoopWindow struct{}

func (NoopWindow) SetTitle(string)    {}
func (NoopWindow) SetIconName(string) {}
func (NoopWindow) Resize(int, int)    {}

var (
	_ BellProvider   = NoopBell{}
	_ WindowProvider = NoopWindow{}
)
