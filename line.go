package vtcore

// LineDimension is the per-line rendering dimension (DECDWL/DECDHL). The
// enumerator order is load-bearing: spec.md §6 requires
// SingleWidth < DoubleWidth < DoubleHeightTop < DoubleHeightBottom so that
// downstream code can test dim > DoubleWidth for "is double-height",
// without reordering these constants.
type LineDimension uint8

const (
	SingleWidth LineDimension = iota
	DoubleWidth
	DoubleHeightTop
	DoubleHeightBottom
)

// Line is one row of the screen grid: a dimension attribute plus its cells.
// Dimension values propagate only through DECDHL/DECDWL/DECSWL or full-line
// erases (spec.md §3 invariants); per-cell writes never touch it.
type Line struct {
	Dimensions LineDimension
	Cells      []Cell
	// Wrapped records whether this line's content continued onto the next
	// row because of DECAWM autowrap, as opposed to an explicit newline.
	// Set by Screen.PutCh when the deferred-wrap latch fires; cleared when
	// the line is erased end-to-end. Not part of spec.md's core
	// invariants; a renderer convenience kept from the teacher's
	// wrapped-line tracking.
	Wrapped bool
}

// newLine allocates a row of width cols, all cells at their default state.
func newLine(cols int) Line {
	cells := make([]Cell, cols)
	for i := range cells {
		cells[i] = defaultCell()
	}
	return Line{Cells: cells}
}

// resize grows or shrinks the line to the given width, preserving existing
// cell content and padding new cells with defaults.
func (l *Line) resize(cols int) {
	if cols == len(l.Cells) {
		return
	}
	cells := make([]Cell, cols)
	for i := range cells {
		if i < len(l.Cells) {
			cells[i] = l.Cells[i]
		} else {
			cells[i] = defaultCell()
		}
	}
	l.Cells = cells
}

// clear resets every cell in [start, end) to its default state and resets
// the line's dimension to single-width when the full line is touched
// end-to-end (spec.md §4.1 erase_display/erase_line).
func (l *Line) clear(start, end int, attrs Cell) {
	if start < 0 {
		start = 0
	}
	if end > len(l.Cells) {
		end = len(l.Cells)
	}
	for i := start; i < end; i++ {
		l.Cells[i] = clearedCellFrom(attrs)
	}
	if start == 0 && end == len(l.Cells) {
		l.Dimensions = SingleWidth
		l.Wrapped = false
	}
}

// clearedCellFrom builds the blank cell used to fill erased regions: empty
// code point, but background/foreground carried from the current cursor
// attributes (spec.md §4.1).
func clearedCellFrom(attrs Cell) Cell {
	c := attrs
	c.CodePoint = 0
	c.WideSpacer = false
	return c
}
