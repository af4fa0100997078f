package vtcore

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Interpreter receives Parser actions and translates them into Screen
// operations; it also decodes UTF-8, runs the VT52 sub-grammar, and
// produces host responses through an OutputSink (spec.md §4.3). It is the
// sink of the parser's DFA and, together with the Screen it drives, forms
// the single-threaded core described in spec.md §5: Write never blocks
// and never performs I/O except through the providers below.
type Interpreter struct {
	Screen *Screen

	parser     *Parser
	actionBuf  []Action
	utf8       UTF8Decoder
	vt52       VT52Parser

	Output     OutputSink
	Bell       BellProvider
	Window     WindowProvider
	Logger     *slog.Logger
	Answerback string

	oscBuf []byte
}

// Option configures an Interpreter during construction.
type Option func(*Interpreter)

// WithSize sets the initial screen dimensions. Values <= 0 fall back to
// the VT100 default of 80x24.
func WithSize(cols, rows int) Option {
	return func(it *Interpreter) {
		if cols <= 0 {
			cols = 80
		}
		if rows <= 0 {
			rows = 24
		}
		it.Screen.Reset(cols, rows)
	}
}

// WithOutput sets the sink for response bytes (device attributes, cursor
// position reports, answerback, VT52 identify). Defaults to discarding
// responses.
func WithOutput(sink OutputSink) Option {
	return func(it *Interpreter) { it.Output = sink }
}

// WithBell sets the bell provider. Defaults to a no-op.
func WithBell(p BellProvider) Option {
	return func(it *Interpreter) { it.Bell = p }
}

// WithWindow sets the window-layer provider (title/icon-name). Defaults to
// a no-op.
func WithWindow(p WindowProvider) Option {
	return func(it *Interpreter) { it.Window = p }
}

// WithLogger sets the structured logger used for the recoverable-error
// diagnostics named in spec.md §7. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(it *Interpreter) { it.Logger = l }
}

// WithAnswerback sets the string sent in response to ENQ. Defaults to
// empty, per spec.md §6.
func WithAnswerback(s string) Option {
	return func(it *Interpreter) { it.Answerback = s }
}

// New builds an Interpreter with a fresh 80x24 Screen and the given
// options applied.
func New(opts ...Option) *Interpreter {
	it := &Interpreter{
		Screen: NewScreen(80, 24),
		parser: NewParser(),
		Output: NoopOutputSink{},
		Bell:   NoopBell{},
		Window: NoopWindow{},
		Logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Write feeds raw bytes from the pseudoterminal through the parser (or the
// VT52 sub-grammar, per DECANM) and applies every resulting action to the
// screen. It implements io.Writer and never blocks or returns an error:
// malformed input is recovered from locally (spec.md §7).
func (it *Interpreter) Write(p []byte) (int, error) {
	for _, b := range p {
		if it.Screen.Modes.Has(DECANM) {
			it.actionBuf = it.parser.Feed(b, it.actionBuf[:0])
			for _, a := range it.actionBuf {
				it.handle(a)
			}
		} else {
			it.feedVT52(b)
		}
	}
	return len(p), nil
}

// WriteString is a convenience wrapper around Write.
func (it *Interpreter) WriteString(s string) (int, error) {
	return it.Write([]byte(s))
}

// Resize reallocates the screen at cols x rows and notifies the window
// layer, per spec.md §6's "resize(width, height)" window-layer call.
// Used both for host-driven resizes (a PTY winsize change) and for the
// DECCOLM 80/132 switch.
func (it *Interpreter) Resize(cols, rows int) {
	it.Screen.Resize(cols, rows)
	it.Window.Resize(cols, rows)
}

func (it *Interpreter) handle(a Action) {
	switch a.Kind {
	case ActionExecute:
		it.execute(a.Byte)
	case ActionPrint:
		for _, r := range it.utf8.Feed(a.Byte) {
			it.putRune(r)
		}
	case ActionReplacement:
		it.utf8 = UTF8Decoder{}
		it.putRune(ReplacementChar)
	case ActionEscDispatch:
		it.escDispatch(a)
	case ActionCSIDispatch:
		it.csiDispatch(a)
	case ActionOSCStart:
		it.oscBuf = it.oscBuf[:0]
	case ActionOSCPut:
		it.oscBuf = append(it.oscBuf, a.Byte)
	case ActionOSCEnd:
		it.dispatchOSC(string(it.oscBuf))
		it.oscBuf = it.oscBuf[:0]
	}
}

// putRune applies the cursor's active character-set translation and
// writes the resulting code point to the screen.
func (it *Interpreter) putRune(r rune) {
	cs := it.Screen.Cursor.activeCharset()
	it.Screen.PutCh(cs.translate(r))
}

func (it *Interpreter) writeResponse(b []byte) {
	it.Output.Write(b)
}

// execute implements the ANSI control-code table in spec.md §4.3.
func (it *Interpreter) execute(b byte) {
	switch b {
	case 0x05: // ENQ
		it.writeResponse([]byte(it.Answerback))
	case 0x07: // BEL
		it.Bell.Ring()
	case 0x08: // BS
		it.Screen.MoveCursor(Left, 1)
	case 0x09: // HT
		it.Screen.Tab()
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		it.Screen.Newline()
		if it.Screen.Modes.Has(LNM) {
			it.Screen.Cursor.X = 0
		}
	case 0x0D: // CR
		it.Screen.Cursor.X = 0
		it.Screen.Cursor.LastColumn = false
	case 0x0E: // SO
		it.Screen.Cursor.GL = G1
		it.Screen.Modes.Set(ShiftOut, true)
	case 0x0F: // SI
		it.Screen.Cursor.GL = G0
		it.Screen.Modes.Set(ShiftOut, false)
	case 0x11: // DC1/XON
		it.Screen.Modes.Set(TransmitDisabled, false)
	case 0x13: // DC3/XOFF
		it.Screen.Modes.Set(TransmitDisabled, true)
	default:
		// other C0 controls (NUL, ENQ's neighbors, ...) are silently
		// ignored, per spec.md §7. DEL never reaches execute: the parser
		// classifies it as a print byte.
	}
}

// escDispatch implements the no-intermediate, '#'-intermediate and
// charset-designator branches of spec.md §4.3 "esc_dispatch".
func (it *Interpreter) escDispatch(a Action) {
	if a.Overflowed {
		it.Logger.Debug("escape sequence dropped: too many intermediates", "final", string(a.Final))
		return
	}

	if len(a.Intermediates) == 0 {
		it.escDispatchPlain(a.Final)
		return
	}

	switch a.Intermediates[0] {
	case '#':
		it.escDispatchHash(a.Final)
	case '(':
		it.designate(G0, a.Final)
	case ')':
		it.designate(G1, a.Final)
	case '*':
		it.designate(G2, a.Final)
	case '+':
		it.designate(G3, a.Final)
	case '-':
		it.designate(G1, a.Final)
	case '.':
		it.designate(G2, a.Final)
	case '/':
		it.designate(G3, a.Final)
	default:
		it.Logger.Debug("unknown escape intermediate", "intermediate", string(a.Intermediates), "final", string(a.Final))
	}
}

func (it *Interpreter) designate(slot GSlot, final byte) {
	cs, _ := designatorCharset(final)
	it.Screen.Cursor.Charsets[slot] = cs
}

func (it *Interpreter) escDispatchPlain(final byte) {
	s := it.Screen
	switch final {
	case '7': // DECSC
		s.saved = s.Cursor.save()
	case '8': // DECRC
		s.Cursor = s.saved
	case '=': // DECKPAM
		s.Modes.Set(DECKPAM, true)
	case '>': // DECKPNM
		s.Modes.Set(DECKPAM, false)
	case 'D': // IND
		s.Newline()
	case 'E': // NEL
		s.Cursor.X = 0
		s.Newline()
	case 'M': // RI
		s.RevLine()
	case 'H': // HTS
		s.SetTab()
	case 'F': // hpLowerleftBugCompat
		_, bottom := s.ScrollRegion()
		s.WarpTo(0, bottom)
	case 'Z': // DECID
		it.writeResponse([]byte("\x1b[?1;7c"))
	case 'c': // RIS
		s.Reset(s.Width(), s.Height())
	case '\\': // ST
		// nothing to do
	default:
		it.Logger.Debug("unknown escape sequence", "final", string(final))
	}
}

func (it *Interpreter) escDispatchHash(final byte) {
	switch final {
	case '3':
		it.Screen.SetLineDimension(DoubleHeightTop)
	case '4':
		it.Screen.SetLineDimension(DoubleHeightBottom)
	case '5':
		it.Screen.SetLineDimension(SingleWidth)
	case '6':
		it.Screen.SetLineDimension(DoubleWidth)
	case '8': // DECALN
		it.Screen.Align()
	default:
		it.Logger.Debug("unknown ESC # sequence", "final", string(final))
	}
}

// csiDispatch implements spec.md §4.3 "csi_dispatch".
func (it *Interpreter) csiDispatch(a Action) {
	if a.Overflowed {
		it.Logger.Debug("CSI sequence dropped: too many intermediates", "final", string(a.Final))
		return
	}
	if a.Private == '?' {
		it.csiDispatchDEC(a)
		return
	}
	if a.Private != 0 {
		it.Logger.Debug("unknown CSI private marker", "marker", string(a.Private), "final", string(a.Final))
		return
	}

	s := it.Screen
	p0 := paramOr(a.Params, 0, 1)

	switch a.Final {
	case 'A':
		s.MoveCursor(Up, p0)
	case 'B':
		s.MoveCursor(Down, p0)
	case 'C':
		s.MoveCursor(Right, p0)
	case 'D':
		s.MoveCursor(Left, p0)
	case 'H', 'f':
		row := paramOr(a.Params, 0, 1) - 1
		col := paramOr(a.Params, 1, 1) - 1
		if s.Modes.Has(DECOM) {
			top, _ := s.ScrollRegion()
			row += top
		}
		s.WarpTo(col, row)
	case 'J':
		if mode, ok := eraseModeParam(a.Params); ok {
			s.EraseDisplay(mode)
		}
	case 'K':
		if mode, ok := eraseModeParam(a.Params); ok {
			s.EraseLine(mode)
		}
	case 'P':
		s.DeleteCharacter(p0)
	case 'c':
		if paramOr(a.Params, 0, 0) == 0 {
			it.writeResponse([]byte("\x1b[?1;7c"))
		}
	case 'g':
		switch paramOr(a.Params, 0, 0) {
		case 0:
			s.ClearTab()
		case 3:
			s.ClearAllTabs()
		}
	case 'h', 'l':
		it.setModes(a.Params, a.Final == 'h')
	case 'm':
		applySGR(&s.Cursor, a.Params)
	case 'n':
		it.deviceStatusReport(paramOr(a.Params, 0, 0))
	case 'q':
		// DECLL: recognized, no-op.
	case 'r':
		it.decstbm(a.Params)
	default:
		it.Logger.Debug("unknown CSI sequence", "final", string(a.Final), "params", a.Params)
	}
}

func (it *Interpreter) decstbm(params []int) {
	top := paramOr(params, 0, 1)
	bottom := paramOr(params, 1, it.Screen.Height())
	if top == 0 {
		top = 1
	}
	if bottom == 0 {
		bottom = it.Screen.Height()
	}
	if top >= bottom {
		return
	}
	it.Screen.SetScrollRegion(top-1, bottom-1)
}

func (it *Interpreter) deviceStatusReport(n int) {
	switch n {
	case 5:
		it.writeResponse([]byte("\x1b[0n"))
	case 6:
		row := it.Screen.Cursor.Y + 1
		col := it.Screen.Cursor.X + 1
		if it.Screen.Modes.Has(DECOM) {
			top, _ := it.Screen.ScrollRegion()
			row -= top
		}
		it.writeResponse([]byte(fmt.Sprintf("\x1b[%d;%dR", row, col)))
	default:
		it.Logger.Debug("unknown DSR parameter", "n", n)
	}
}

// csiDispatchDEC implements spec.md §4.3's private-marker '?' h/l table.
func (it *Interpreter) csiDispatchDEC(a Action) {
	on := a.Final == 'h'
	if a.Final != 'h' && a.Final != 'l' {
		it.Logger.Debug("unknown private CSI final", "final", string(a.Final))
		return
	}

	s := it.Screen
	for _, p := range a.Params {
		switch p {
		case 1:
			s.Modes.Set(DECCKM, on)
		case 2:
			s.Modes.Set(DECANM, on)
		case 3:
			if on {
				it.Resize(132, s.Height())
			} else {
				it.Resize(80, s.Height())
			}
		case 5:
			s.Modes.Set(DECSCNM, on)
		case 6:
			s.Modes.Set(DECOM, on)
			top, _ := s.ScrollRegion()
			if on {
				s.WarpTo(0, top)
			} else {
				s.WarpTo(0, 0)
			}
		case 7:
			s.Modes.Set(DECAWM, on)
		case 8:
			s.Modes.Set(DECARM, on)
		case 25:
			s.Modes.Set(DECTCEM, on)
		default:
			it.Logger.Debug("unknown DEC private mode", "mode", p)
		}
	}
}

// setModes applies the ANSI (non-private) SM/RM sequence. The only
// standard mode spec.md's mode set covers is LNM, conventionally set via
// parameter 20.
func (it *Interpreter) setModes(params []int, on bool) {
	for _, p := range params {
		switch p {
		case 20:
			it.Screen.Modes.Set(LNM, on)
		default:
			it.Logger.Debug("unknown ANSI mode", "mode", p)
		}
	}
}

// dispatchOSC implements spec.md §4.3 "OSC".
func (it *Interpreter) dispatchOSC(raw string) {
	parts := strings.SplitN(raw, ";", 2)
	cmd := parts[0]
	data := ""
	if len(parts) > 1 {
		data = parts[1]
	}

	switch cmd {
	case "0":
		it.Window.SetTitle(data)
		it.Window.SetIconName(data)
	case "1", "2L":
		it.Window.SetIconName(data)
	case "2", "21":
		it.Window.SetTitle(data)
	case "4":
		it.dispatchOSCPalette(data)
	case "8":
		it.dispatchOSCHyperlink(data)
	default:
		it.Logger.Debug("unknown OSC command", "cmd", cmd)
	}
}

// dispatchOSCHyperlink implements OSC 8 (spec.md §12 supplemented
// feature): "params;URI" attaches a link to subsequently written cells;
// an empty URI clears it.
func (it *Interpreter) dispatchOSCHyperlink(data string) {
	parts := strings.SplitN(data, ";", 2)
	params := parts[0]
	uri := ""
	if len(parts) > 1 {
		uri = parts[1]
	}
	if uri == "" {
		it.Screen.Cursor.Hyperlink = nil
		return
	}
	it.Screen.Cursor.Hyperlink = &Hyperlink{ID: parseHyperlinkParams(params), URI: uri}
}

func (it *Interpreter) dispatchOSCPalette(data string) {
	fields := strings.Split(data, ";")
	for i := 0; i+1 < len(fields); i += 2 {
		idx, err := strconv.Atoi(fields[i])
		if err != nil || idx < 0 || idx > 255 {
			it.Logger.Debug("invalid OSC 4 palette index", "value", fields[i])
			continue
		}
		col, ok := parseColorSpec(fields[i+1])
		if !ok {
			it.Logger.Debug("invalid OSC 4 color spec", "value", fields[i+1])
			continue
		}
		it.Screen.Palette.Set(uint8(idx), col)
	}
}

// feedVT52 drives the VT52 sub-grammar, active while DECANM is off
// (spec.md §4.3 "VT52 grammar").
func (it *Interpreter) feedVT52(b byte) {
	a, ok := it.vt52.Feed(b)
	if !ok {
		return
	}
	s := it.Screen
	switch a.Kind {
	case VT52Print:
		it.putRune(rune(a.Cmd))
	case VT52Execute:
		it.execute(a.Cmd)
	case VT52DirectAddress:
		s.WarpTo(a.Col, a.Row)
	case VT52Command:
		switch a.Cmd {
		case 'A':
			s.MoveCursor(Up, 1)
		case 'B':
			s.MoveCursor(Down, 1)
		case 'C':
			s.MoveCursor(Right, 1)
		case 'D':
			s.MoveCursor(Left, 1)
		case 'F', 'G':
			// enter/exit special graphics charset: stubbed, recognized.
		case 'H':
			s.WarpTo(0, 0)
		case 'I':
			s.RevLine()
		case 'J':
			s.EraseDisplay(EraseToEnd)
		case 'K':
			s.EraseLine(EraseToEnd)
		case 'Z':
			it.writeResponse([]byte("\x1b/Z"))
		case '=':
			s.Modes.Set(DECKPAM, true)
		case '>':
			s.Modes.Set(DECKPAM, false)
		case '<':
			s.Modes.Set(DECANM, true)
		default:
			it.Logger.Debug("unknown VT52 escape", "cmd", string(a.Cmd))
		}
	}
}

// paramOr returns params[i] if present and non-zero, else def — the
// parameter-default substitution rule of spec.md §4.2 ("A missing
// parameter reads as 0; callers substitute the documented default when
// the parameter is 0").
func paramOr(params []int, i, def int) int {
	if i < len(params) && params[i] != 0 {
		return params[i]
	}
	return def
}

// eraseModeParam validates an ED/EL parameter against the defined
// {0,1,2} set (spec.md §4.1); out-of-range values leave the screen
// unchanged.
func eraseModeParam(params []int) (EraseMode, bool) {
	v := 0
	if len(params) > 0 {
		v = params[0]
	}
	switch v {
	case 0:
		return EraseToEnd, true
	case 1:
		return EraseToStart, true
	case 2:
		return EraseAll, true
	default:
		return 0, false
	}
}
