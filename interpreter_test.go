package vtcore

import (
	"bytes"
	"testing"
)

func TestInterpreterPlainText(t *testing.T) {
	it := New(WithSize(10, 3))
	it.WriteString("hi")
	if got := it.Screen.Cell(0, 0).CodePoint; got != 'h' {
		t.Fatalf("cell(0,0) = %q, want 'h'", got)
	}
	if got := it.Screen.Cell(1, 0).CodePoint; got != 'i' {
		t.Fatalf("cell(1,0) = %q, want 'i'", got)
	}
	if it.Screen.Cursor.X != 2 {
		t.Fatalf("cursor.X = %d, want 2", it.Screen.Cursor.X)
	}
}

func TestInterpreterCRLF(t *testing.T) {
	it := New(WithSize(10, 3))
	it.WriteString("ab\r\ncd")
	if it.Screen.Cursor.Y != 1 || it.Screen.Cursor.X != 2 {
		t.Fatalf("cursor = (%d,%d), want (2,1)", it.Screen.Cursor.X, it.Screen.Cursor.Y)
	}
	if it.Screen.Cell(0, 1).CodePoint != 'c' {
		t.Fatalf("cell(0,1) = %q, want 'c'", it.Screen.Cell(0, 1).CodePoint)
	}
}

func TestInterpreterCUP(t *testing.T) {
	it := New(WithSize(10, 5))
	it.WriteString("\x1b[3;4Hx")
	if it.Screen.Cursor.Y != 2 || it.Screen.Cursor.X != 4 {
		t.Fatalf("cursor after write = (%d,%d), want (4,2)", it.Screen.Cursor.X, it.Screen.Cursor.Y)
	}
	if it.Screen.Cell(3, 2).CodePoint != 'x' {
		t.Fatalf("cell(3,2) = %q, want 'x'", it.Screen.Cell(3, 2).CodePoint)
	}
}

func TestInterpreterAutowrap(t *testing.T) {
	it := New(WithSize(5, 3))
	it.WriteString("\x1b[?7h") // DECAWM on (off by default)
	it.WriteString("abcde")
	if !it.Screen.Cursor.LastColumn {
		t.Fatal("expected LastColumn latch after filling the row")
	}
	it.WriteString("f")
	if it.Screen.Cursor.Y != 1 || it.Screen.Cursor.X != 1 {
		t.Fatalf("cursor after wrap = (%d,%d), want (1,1)", it.Screen.Cursor.X, it.Screen.Cursor.Y)
	}
	if it.Screen.Cell(0, 1).CodePoint != 'f' {
		t.Fatalf("cell(0,1) = %q, want 'f'", it.Screen.Cell(0, 1).CodePoint)
	}
}

func TestInterpreterScrollAtBottom(t *testing.T) {
	it := New(WithSize(5, 2))
	it.WriteString("11\r\n22\r\n33")
	if it.Screen.Cell(0, 0).CodePoint != '2' {
		t.Fatalf("cell(0,0) = %q, want '2'", it.Screen.Cell(0, 0).CodePoint)
	}
	if it.Screen.Cell(0, 1).CodePoint != '3' {
		t.Fatalf("cell(0,1) = %q, want '3'", it.Screen.Cell(0, 1).CodePoint)
	}
}

func TestInterpreterSGRBold(t *testing.T) {
	it := New(WithSize(10, 2))
	it.WriteString("\x1b[1mx\x1b[0my")
	if it.Screen.Cell(0, 0).Intensity != IntensityBold {
		t.Fatalf("cell(0,0).Intensity = %v, want bold", it.Screen.Cell(0, 0).Intensity)
	}
	if it.Screen.Cell(1, 0).Intensity != IntensityNormal {
		t.Fatalf("cell(1,0).Intensity = %v, want normal", it.Screen.Cell(1, 0).Intensity)
	}
}

func TestInterpreterCursorPositionReport(t *testing.T) {
	var out bytes.Buffer
	it := New(WithSize(10, 5), WithOutput(&out))
	it.WriteString("\x1b[3;4H\x1b[6n")
	if got := out.String(); got != "\x1b[3;4R" {
		t.Fatalf("DSR response = %q, want %q", got, "\x1b[3;4R")
	}
}

func TestInterpreterDeviceAttributes(t *testing.T) {
	var out bytes.Buffer
	it := New(WithOutput(&out))
	it.WriteString("\x1b[c")
	if got := out.String(); got != "\x1b[?1;7c" {
		t.Fatalf("DA response = %q, want %q", got, "\x1b[?1;7c")
	}
}

func TestInterpreterAnswerback(t *testing.T) {
	var out bytes.Buffer
	it := New(WithOutput(&out), WithAnswerback("vtcore"))
	it.WriteString("\x05")
	if out.String() != "vtcore" {
		t.Fatalf("answerback = %q, want %q", out.String(), "vtcore")
	}
}

type countingBell struct{ n int }

func (b *countingBell) Ring() { b.n++ }

func TestInterpreterBell(t *testing.T) {
	bell := &countingBell{}
	it := New(WithBell(bell))
	it.WriteString("\x07\x07")
	if bell.n != 2 {
		t.Fatalf("bell rang %d times, want 2", bell.n)
	}
}

type recordingWindow struct{ title, icon string }

func (w *recordingWindow) SetTitle(s string)    { w.title = s }
func (w *recordingWindow) SetIconName(s string) { w.icon = s }
func (w *recordingWindow) Resize(int, int)      {}

func TestInterpreterOSCTitle(t *testing.T) {
	win := &recordingWindow{}
	it := New(WithWindow(win))
	it.WriteString("\x1b]2;hello\x07")
	if win.title != "hello" {
		t.Fatalf("window title = %q, want %q", win.title, "hello")
	}
}

func TestInterpreterDECAWMOff(t *testing.T) {
	it := New(WithSize(5, 3))
	it.WriteString("\x1b[?7l")
	it.WriteString("abcde")
	if it.Screen.Cursor.LastColumn {
		t.Fatal("LastColumn should not latch with DECAWM off")
	}
	it.WriteString("f")
	if it.Screen.Cell(4, 0).CodePoint != 'f' {
		t.Fatalf("cell(4,0) = %q, want 'f' (overwrite, no wrap)", it.Screen.Cell(4, 0).CodePoint)
	}
}

func TestInterpreterDECOMClampsCUP(t *testing.T) {
	it := New(WithSize(10, 10))
	it.WriteString("\x1b[3;8r")   // scroll region rows 3-8 (1-based)
	it.WriteString("\x1b[?6h")    // DECOM on
	it.WriteString("\x1b[1;1H")   // CUP to (1,1), relative to region top
	if it.Screen.Cursor.Y != 2 {
		t.Fatalf("cursor.Y = %d, want 2 (region top)", it.Screen.Cursor.Y)
	}
}

func TestInterpreterSO_SI(t *testing.T) {
	it := New(WithSize(10, 2))
	it.WriteString("\x1b(0") // designate DEC special graphics into G0
	it.WriteString("\x0e")   // SO: GL -> G1 (still ASCII, since only G0 was designated)
	it.WriteString("a")
	if it.Screen.Cell(0, 0).CodePoint != 'a' {
		t.Fatalf("cell(0,0) = %q, want 'a' (G1 still ASCII)", it.Screen.Cell(0, 0).CodePoint)
	}
	it.WriteString("\x0f") // SI: GL -> G0 (DEC special graphics)
	it.WriteString("a")    // 0x61 maps to '▒' in DEC special graphics
	if it.Screen.Cell(1, 0).CodePoint != '▒' {
		t.Fatalf("cell(1,0) = %q, want '▒'", it.Screen.Cell(1, 0).CodePoint)
	}
}

func TestInterpreterVT52Mode(t *testing.T) {
	it := New(WithSize(10, 5))
	it.WriteString("\x1b[?2l") // DECANM off: enter VT52 grammar
	it.WriteString("\x1bH")    // VT52 home
	it.WriteString("\x1bY" + string(rune(0x20+2)) + string(rune(0x20+3)))
	if it.Screen.Cursor.Y != 2 || it.Screen.Cursor.X != 3 {
		t.Fatalf("cursor after VT52 direct address = (%d,%d), want (3,2)", it.Screen.Cursor.X, it.Screen.Cursor.Y)
	}
}

func TestInterpreterVT52PrintAndExecute(t *testing.T) {
	it := New(WithSize(10, 5))
	it.WriteString("\x1b[?2l") // DECANM off: enter VT52 grammar
	it.WriteString("hi\r\nbye")
	if it.Screen.Cell(0, 0).CodePoint != 'h' || it.Screen.Cell(1, 0).CodePoint != 'i' {
		t.Fatalf("plain text not printed in VT52 mode: cell(0,0)=%q cell(1,0)=%q", it.Screen.Cell(0, 0).CodePoint, it.Screen.Cell(1, 0).CodePoint)
	}
	if it.Screen.Cursor.Y != 1 || it.Screen.Cursor.X != 3 {
		t.Fatalf("CR/LF not executed in VT52 mode: cursor = (%d,%d), want (3,1)", it.Screen.Cursor.X, it.Screen.Cursor.Y)
	}
	if it.Screen.Cell(0, 1).CodePoint != 'b' {
		t.Fatalf("cell(0,1) = %q, want 'b'", it.Screen.Cell(0, 1).CodePoint)
	}
}

func TestInterpreterOSC8Hyperlink(t *testing.T) {
	it := New(WithSize(20, 2))
	it.WriteString("\x1b]8;id=abc;https://example.com\x07link\x1b]8;;\x07plain")
	linked := it.Screen.Cell(0, 0)
	if linked.Hyperlink == nil || linked.Hyperlink.URI != "https://example.com" || linked.Hyperlink.ID != "abc" {
		t.Fatalf("cell(0,0).Hyperlink = %+v, want URI https://example.com, ID abc", linked.Hyperlink)
	}
	if it.Screen.Cell(3, 0).Hyperlink == nil {
		t.Fatal("expected hyperlink to cover every cell of \"link\"")
	}
	plain := it.Screen.Cell(4, 0)
	if plain.Hyperlink != nil {
		t.Fatalf("cell(4,0).Hyperlink = %+v, want nil after clearing OSC 8", plain.Hyperlink)
	}
}

type recordingWindowResize struct {
	recordingWindow
	width, height int
}

func (w *recordingWindowResize) Resize(width, height int) {
	w.width, w.height = width, height
}

func TestInterpreterDECCOLMNotifiesWindow(t *testing.T) {
	win := &recordingWindowResize{}
	it := New(WithSize(80, 24), WithWindow(win))
	it.WriteString("\x1b[?3h")
	if win.width != 132 || win.height != 24 {
		t.Fatalf("window.Resize got (%d,%d), want (132,24)", win.width, win.height)
	}
	if it.Screen.Width() != 132 {
		t.Fatalf("screen width = %d, want 132", it.Screen.Width())
	}
}

func TestInterpreterUnknownCSIIgnored(t *testing.T) {
	it := New(WithSize(10, 2))
	it.WriteString("\x1b[99zx")
	if it.Screen.Cell(0, 0).CodePoint != 'x' {
		t.Fatalf("cell(0,0) = %q, want 'x' (sequence ignored, print resumes)", it.Screen.Cell(0, 0).CodePoint)
	}
}

func TestInterpreterInvalidUTF8Replacement(t *testing.T) {
	it := New(WithSize(10, 2))
	it.Write([]byte{0xC3, 0x28})
	if it.Screen.Cell(0, 0).CodePoint != ReplacementChar {
		t.Fatalf("cell(0,0) = %q, want replacement char", it.Screen.Cell(0, 0).CodePoint)
	}
	if it.Screen.Cell(1, 0).CodePoint != '(' {
		t.Fatalf("cell(1,0) = %q, want '(' (reconsumed byte)", it.Screen.Cell(1, 0).CodePoint)
	}
}
