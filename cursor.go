package vtcore

// Cursor is the screen's active write position plus the rendering and
// character-set state that travels with it (spec.md §3).
type Cursor struct {
	X, Y int

	// Attrs holds the rendering attributes copied into cells on writes;
	// mutated by SGR.
	Attrs Cell

	// Conceal is SGR 8: when set, PutCh advances the cursor but leaves the
	// cell's code point at 0.
	Conceal bool

	// Hyperlink is the OSC 8 link attached to subsequently written cells,
	// or nil. Set and cleared by OSC 8, independent of SGR.
	Hyperlink *Hyperlink

	// LastColumn is the deferred-wrap latch (spec.md §4.1): true only
	// while DECAWM is on and the most recent writable character landed in
	// the last column without a subsequent cursor motion.
	LastColumn bool

	// Charsets holds the four designation slots G0-G3.
	Charsets [4]Charset
	// GL and GR select which slot is mapped to the left/right halves of
	// the code table currently in use.
	GL, GR GSlot
}

// newCursor returns a cursor at (0,0) with default attributes, ASCII in
// every slot, and G0 mapped to GL/GR.
func newCursor() Cursor {
	return Cursor{Attrs: defaultCell()}
}

// activeCharset returns the Charset currently mapped to GL, the slot
// consulted for the 0x20-0x7E graphic range (spec.md glossary "GL/GR").
// SO/SI (spec.md §4.3 execute table) move the GL mapping between G1 and G0
// directly rather than toggling a separate GR lookup.
func (c *Cursor) activeCharset() Charset {
	return c.Charsets[c.GL]
}

// save returns a deep copy suitable for storing as the saved cursor
// (DECSC). Charset designations are included per the Open Question
// decision recorded in SPEC_FULL.md.
func (c Cursor) save() Cursor {
	return c
}
