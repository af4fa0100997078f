// Command vtrun drives vtcore against a real shell: it spawns $SHELL on a
// pseudoterminal, feeds everything the shell writes through an
// Interpreter, and renders the resulting screen to stdout on every
// update. It exists to exercise the core's PTY-facing boundary named in
// spec.md §1/§6; the PTY and raw-mode plumbing live entirely here, never
// inside the core package.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/emuterm/vtcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "vtrun:", err)
		os.Exit(1)
	}
}

func run() error {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	cmd := exec.Command(shell)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("starting pty: %w", err)
	}
	defer ptmx.Close()

	cols, rows := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cols, rows = w, h
	}
	_ = pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	it := vtcore.New(
		vtcore.WithSize(cols, rows),
		vtcore.WithOutput(ptmx),
		vtcore.WithWindow(ptyWindow{ptmx: ptmx}),
		vtcore.WithLogger(logger),
		vtcore.WithAnswerback("vtrun"),
	)

	// mu serializes the resize goroutine with the read loop's Write/render.
	var mu sync.Mutex
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	go func() {
		for range sigCh {
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				mu.Lock()
				it.Resize(w, h)
				mu.Unlock()
			}
		}
	}()

	go io.Copy(ptmx, os.Stdin)

	buf := make([]byte, 4096)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			mu.Lock()
			it.Write(buf[:n])
			render(it.Screen)
			mu.Unlock()
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("reading pty: %w", err)
		}
	}
}

// ptyWindow is the WindowProvider that keeps the pseudoterminal's winsize
// in step with vtcore's screen dimensions, including DECCOLM 80/132
// switches. Title/icon-name changes have no window to forward to in this
// terminal-less demo and are ignored.
type ptyWindow struct {
	ptmx *os.File
}

func (w ptyWindow) SetTitle(string)    {}
func (w ptyWindow) SetIconName(string) {}

func (w ptyWindow) Resize(width, height int) {
	pty.Setsize(w.ptmx, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
}

// render draws the screen's dirty cells to stdout using cursor-addressing
// escapes, then clears the dirty set. It is deliberately minimal: vtcore
// owns terminal emulation, not rendering policy.
func render(s *vtcore.Screen) {
	if !s.HasDirty() {
		return
	}
	var out []byte
	out = append(out, "\x1b[s"...) // save cursor
	for _, pos := range s.DirtyCells() {
		cell := s.Cell(pos.X, pos.Y)
		if cell == nil || cell.WideSpacer {
			continue
		}
		out = append(out, "\x1b["...)
		out = append(out, []byte(strconv.Itoa(pos.Y+1))...)
		out = append(out, ';')
		out = append(out, []byte(strconv.Itoa(pos.X+1))...)
		out = append(out, 'H')
		r := cell.CodePoint
		if r == 0 {
			r = ' '
		}
		out = append(out, []byte(string(r))...)
	}
	out = append(out, "\x1b[u"...) // restore cursor
	os.Stdout.Write(out)
	s.ClearDirty()
}
