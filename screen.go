package vtcore

import "github.com/unilibs/uniwidth"

// runeWidth returns the display width of r: 2 for wide characters (CJK,
// emoji, fullwidth forms), 1 for normal, 0 for zero-width (combining
// marks, control characters). Consulted by PutCh for cursor advance and
// wide-cell spacer placement (spec.md §4.1 "glyph width w ∈ {1,2}").
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// Direction selects which way MoveCursor moves the cursor.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// EraseMode selects the region an erase operation covers (spec.md §4.1).
type EraseMode int

const (
	EraseToEnd EraseMode = iota
	EraseToStart
	EraseAll
)

// Screen owns the character-cell grid, cursor, scroll region, tab stops,
// mode flags and palette, and exposes the mutation primitives the
// interpreter drives (spec.md §4.1). It has no knowledge of the byte
// stream or parser state; every method here is a pure, synchronous
// operation on in-memory state.
type Screen struct {
	width, height int

	lines    []Line
	tabStops []bool

	scrollTop    int
	scrollBottom int // inclusive, like scrollTop

	Modes   ModeSet
	Palette *Palette

	Cursor Cursor
	saved  Cursor

	dirty map[int]map[int]bool
}

// NewScreen builds a screen at the given size, reset to its power-on
// defaults.
func NewScreen(width, height int) *Screen {
	s := &Screen{Palette: NewPalette()}
	s.Reset(width, height)
	return s
}

func (s *Screen) Width() int  { return s.width }
func (s *Screen) Height() int { return s.height }

// Line returns the line at row y, or nil if y is out of bounds.
func (s *Screen) Line(y int) *Line {
	if y < 0 || y >= len(s.lines) {
		return nil
	}
	return &s.lines[y]
}

// Cell returns the cell at (x, y), or nil if out of bounds.
func (s *Screen) Cell(x, y int) *Cell {
	l := s.Line(y)
	if l == nil || x < 0 || x >= len(l.Cells) {
		return nil
	}
	return &l.Cells[x]
}

// ScrollRegion returns the current inclusive scroll bounds.
func (s *Screen) ScrollRegion() (top, bottom int) {
	return s.scrollTop, s.scrollBottom
}

// markDirty records that (x,y) changed since the last ClearDirty call.
func (s *Screen) markDirty(x, y int) {
	if s.dirty == nil {
		s.dirty = make(map[int]map[int]bool)
	}
	row := s.dirty[y]
	if row == nil {
		row = make(map[int]bool)
		s.dirty[y] = row
	}
	row[x] = true
}

// ClearDirty discards all recorded dirty positions.
func (s *Screen) ClearDirty() { s.dirty = nil }

// HasDirty reports whether any cell changed since the last ClearDirty.
func (s *Screen) HasDirty() bool { return len(s.dirty) > 0 }

// DirtyCells returns every (x,y) changed since the last ClearDirty call.
func (s *Screen) DirtyCells() []Position {
	var out []Position
	for y, row := range s.dirty {
		for x := range row {
			out = append(out, Position{X: x, Y: y})
		}
	}
	return out
}

// Position is a zero-based (column, row) screen coordinate.
type Position struct{ X, Y int }

// Resize allocates a fresh grid at w x h, discarding the previous content
// (every cell at its default state, every line single-width): tab stops
// every 8th column starting at column 8, scroll region set to the full
// height, cursor placed at (0,0), last_column cleared (spec.md §4.1 resize).
func (s *Screen) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	lines := make([]Line, h)
	for y := range lines {
		lines[y] = newLine(w)
	}
	s.lines = lines
	s.width, s.height = w, h

	s.tabStops = make([]bool, w)
	for x := 8; x < w; x += 8 {
		s.tabStops[x] = true
	}

	s.scrollTop = 0
	s.scrollBottom = h - 1

	s.Cursor.X, s.Cursor.Y = 0, 0
	s.Cursor.LastColumn = false
}

// Reset reinitializes the screen to freshly-constructed state at w x h:
// grid, tab stops and modes to their defaults, the palette restored to its
// factory table, and the saved cursor set equal to the live one (spec.md
// §3 Lifecycle, §4.1 reset).
func (s *Screen) Reset(w, h int) {
	s.Resize(w, h)
	s.Modes.reset()
	s.Palette.Reset()
	s.Cursor = newCursor()
	s.saved = s.Cursor
	s.dirty = nil
}

// WarpTo moves the cursor directly to (x, y), clamping x into [0,
// width-1] and y into the scroll region when DECOM is set, else [0,
// height-1] (spec.md §4.1 warpto).
func (s *Screen) WarpTo(x, y int) {
	x = clampInt(x, 0, s.width-1)
	if s.Modes.Has(DECOM) {
		y = clampInt(y, s.scrollTop, s.scrollBottom)
	} else {
		y = clampInt(y, 0, s.height-1)
	}
	s.Cursor.X, s.Cursor.Y = x, y
	s.Cursor.LastColumn = false
}

// MoveCursor moves the cursor n cells in the given direction, clamped via
// WarpTo (spec.md §4.1 move_cursor).
func (s *Screen) MoveCursor(dir Direction, n int) {
	x, y := s.Cursor.X, s.Cursor.Y
	switch dir {
	case Up:
		y -= n
	case Down:
		y += n
	case Left:
		x -= n
	case Right:
		x += n
	}
	s.WarpTo(x, y)
}

// Newline advances the cursor to the next row, scrolling the scroll region
// up by one when already at scrollBottom (spec.md §4.1 newline). Carriage
// return is the caller's responsibility.
func (s *Screen) Newline() {
	if s.Cursor.Y < s.scrollBottom {
		s.Cursor.Y++
	} else {
		s.ScrollUp(1)
	}
	s.Cursor.LastColumn = false
}

// RevLine moves the cursor up one row, scrolling the region down by one
// when already at scrollTop (spec.md §4.1 revline).
func (s *Screen) RevLine() {
	if s.Cursor.Y > s.scrollTop {
		s.Cursor.Y--
	} else {
		s.ScrollDown(1)
	}
	s.Cursor.LastColumn = false
}

// ScrollUp scrolls the scroll region up by n lines: the top n lines of the
// region are discarded and n blank rows (at the cursor's current
// attributes) appear at the bottom of the region.
func (s *Screen) ScrollUp(n int) {
	s.scrollRegionLines(n, true)
}

// ScrollDown scrolls the scroll region down by n lines.
func (s *Screen) ScrollDown(n int) {
	s.scrollRegionLines(n, false)
}

func (s *Screen) scrollRegionLines(n int, up bool) {
	top, bottom := s.scrollTop, s.scrollBottom
	if n <= 0 || top >= bottom {
		return
	}
	span := bottom - top + 1
	if n > span {
		n = span
	}

	region := s.lines[top : bottom+1]
	if up {
		copy(region, region[n:])
		for i := span - n; i < span; i++ {
			region[i] = blankLineFrom(s.Cursor.Attrs, s.width)
		}
	} else {
		copy(region[n:], region[:span-n])
		for i := 0; i < n; i++ {
			region[i] = blankLineFrom(s.Cursor.Attrs, s.width)
		}
	}
	for y := top; y <= bottom; y++ {
		for x := 0; x < s.width; x++ {
			s.markDirty(x, y)
		}
	}
}

func blankLineFrom(attrs Cell, cols int) Line {
	l := newLine(cols)
	fill := clearedCellFrom(attrs)
	for i := range l.Cells {
		l.Cells[i] = fill
	}
	return l
}

// PutCh writes code point cp at the cursor, applying the deferred-wrap
// latch, current rendering attributes and glyph-width cursor advance
// (spec.md §4.1 putch).
func (s *Screen) PutCh(cp rune) {
	if s.Cursor.LastColumn {
		wrappedY := s.Cursor.Y
		s.Cursor.X = 0
		s.Newline()
		if line := s.Line(wrappedY); line != nil {
			line.Wrapped = true
		}
	}

	x, y := s.Cursor.X, s.Cursor.Y
	cell := s.Cursor.Attrs
	if s.Cursor.Conceal {
		cell.CodePoint = 0
	} else {
		cell.CodePoint = cp
	}
	cell.WideSpacer = false
	cell.Hyperlink = s.Cursor.Hyperlink
	if c := s.Cell(x, y); c != nil {
		*c = cell
		s.markDirty(x, y)
	}

	w := runeWidth(cp)
	if w < 1 {
		w = 1
	}
	line := s.Line(y)
	if line != nil && line.Dimensions >= DoubleWidth {
		w *= 2
	}

	if w == 2 {
		if sp := s.Cell(x+1, y); sp != nil && x+1 < s.width {
			sp.WideSpacer = true
			s.markDirty(x+1, y)
		}
	}

	if x+w >= s.width {
		s.Cursor.LastColumn = s.Modes.Has(DECAWM)
	} else {
		s.Cursor.X = x + w
		s.Cursor.LastColumn = false
	}
}

// EraseDisplay clears cells across the whole screen per mode (spec.md
// §4.1 erase_display).
func (s *Screen) EraseDisplay(mode EraseMode) {
	x, y := s.Cursor.X, s.Cursor.Y
	attrs := s.Cursor.Attrs

	switch mode {
	case EraseToEnd:
		s.lines[y].clear(x, s.width, attrs)
		for r := y + 1; r < s.height; r++ {
			s.lines[r].clear(0, s.width, attrs)
		}
	case EraseToStart:
		for r := 0; r < y; r++ {
			s.lines[r].clear(0, s.width, attrs)
		}
		s.lines[y].clear(0, x+1, attrs)
	case EraseAll:
		for r := 0; r < s.height; r++ {
			s.lines[r].clear(0, s.width, attrs)
		}
	}
	for yy := 0; yy < s.height; yy++ {
		for xx := 0; xx < s.width; xx++ {
			s.markDirty(xx, yy)
		}
	}
}

// EraseLine clears cells within the current row per mode (spec.md §4.1
// erase_line).
func (s *Screen) EraseLine(mode EraseMode) {
	x, y := s.Cursor.X, s.Cursor.Y
	attrs := s.Cursor.Attrs

	switch mode {
	case EraseToEnd:
		s.lines[y].clear(x, s.width, attrs)
	case EraseToStart:
		s.lines[y].clear(0, x+1, attrs)
	case EraseAll:
		s.lines[y].clear(0, s.width, attrs)
	}
	for xx := 0; xx < s.width; xx++ {
		s.markDirty(xx, y)
	}
}

// DeleteCharacter removes n cells at the cursor, shifting the remainder of
// the row left and filling the vacated cells at the right with blanks
// (spec.md §4.1 delete_character).
func (s *Screen) DeleteCharacter(n int) {
	y := s.Cursor.Y
	x := s.Cursor.X
	line := &s.lines[y]

	if n > s.width-x {
		n = s.width - x
	}
	if n < 0 {
		n = 0
	}

	copy(line.Cells[x:], line.Cells[x+n:])
	fill := clearedCellFrom(s.Cursor.Attrs)
	for i := s.width - n; i < s.width; i++ {
		line.Cells[i] = fill
	}
	for xx := x; xx < s.width; xx++ {
		s.markDirty(xx, y)
	}
	s.Cursor.LastColumn = false
}

// Tab advances the cursor to the next set tab stop, clamping to width-1
// (spec.md §4.1 tab).
func (s *Screen) Tab() {
	for x := s.Cursor.X + 1; x < s.width; x++ {
		if s.tabStops[x] {
			s.Cursor.X = x
			return
		}
	}
	s.Cursor.X = s.width - 1
}

// SetTab sets a tab stop at the cursor's column (DECST).
func (s *Screen) SetTab() {
	if s.Cursor.X >= 0 && s.Cursor.X < s.width {
		s.tabStops[s.Cursor.X] = true
	}
}

// ClearTab clears the tab stop at the cursor's column (TBC with p=0).
func (s *Screen) ClearTab() {
	if s.Cursor.X >= 0 && s.Cursor.X < s.width {
		s.tabStops[s.Cursor.X] = false
	}
}

// ClearAllTabs clears every tab stop (TBC with p=3).
func (s *Screen) ClearAllTabs() {
	for i := range s.tabStops {
		s.tabStops[i] = false
	}
}

// SetScrollRegion sets the inclusive scroll bounds if top < bottom,
// clamping bottom to height-1, then warps to (0, scrollTop if DECOM else
// 0) (spec.md §4.1 scroll_region).
func (s *Screen) SetScrollRegion(top, bottom int) {
	if bottom > s.height-1 {
		bottom = s.height - 1
	}
	if top < 0 {
		top = 0
	}
	if top >= bottom {
		return
	}
	s.scrollTop, s.scrollBottom = top, bottom

	if s.Modes.Has(DECOM) {
		s.WarpTo(0, s.scrollTop)
	} else {
		s.WarpTo(0, 0)
	}
}

// SetLineDimension sets the dimension attribute of the cursor's current
// line (DECDHL/DECDWL/DECSWL).
func (s *Screen) SetLineDimension(d LineDimension) {
	s.lines[s.Cursor.Y].Dimensions = d
}

// Align fills the entire grid with 'E' at default attributes (DECALN).
func (s *Screen) Align() {
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			s.lines[y].Cells[x] = Cell{CodePoint: 'E', Background: DefaultBackground(), Foreground: DefaultForeground()}
			s.markDirty(x, y)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
