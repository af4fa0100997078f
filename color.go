package vtcore

// Color is an 8-bit-per-channel RGB triple, the wire-level representation
// used throughout the screen model and its SGR/OSC handling.
type Color struct {
	R, G, B uint8
}

// ColorRef is a per-cell color reference: either an index into the active
// Palette or a direct RGB triple (set via SGR 38/48;2;r;g;b). Direct holds
// which form is stored, matching the spec's "per-cell boolean per channel
// records which form is stored" (a single bool suffices: a cell's fg and
// bg each carry their own ColorRef).
type ColorRef struct {
	Index  uint8
	RGB    Color
	Direct bool
}

// IndexRef builds a palette-indexed color reference.
func IndexRef(index uint8) ColorRef {
	return ColorRef{Index: index}
}

// RGBRef builds a direct RGB color reference.
func RGBRef(r, g, b uint8) ColorRef {
	return ColorRef{RGB: Color{R: r, G: g, B: b}, Direct: true}
}

// DefaultForegroundIndex and DefaultBackgroundIndex are the palette slots
// new cells are initialized with (spec.md §3 "Default cell attributes").
const (
	DefaultForegroundIndex uint8 = 7
	DefaultBackgroundIndex uint8 = 0
)

// DefaultForeground and DefaultBackground are the default cell colors.
func DefaultForeground() ColorRef { return IndexRef(DefaultForegroundIndex) }
func DefaultBackground() ColorRef { return IndexRef(DefaultBackgroundIndex) }

// cubeSteps are the six intensity levels of the 6x6x6 color cube occupying
// palette entries 16-231.
var cubeSteps = [6]uint8{0x00, 0x5F, 0x87, 0xAF, 0xD7, 0xFF}

// Palette is the fixed 256-entry color table: 0-15 standard/bright ANSI
// colors, 16-231 a 6x6x6 cube, 232-255 a grayscale ramp. It is mutable at
// runtime via OSC 4.
type Palette struct {
	entries [256]Color
}

// NewPalette builds the factory-default 256-color table.
func NewPalette() *Palette {
	p := &Palette{}
	p.Reset()
	return p
}

// Reset restores every entry to the factory default table.
func (p *Palette) Reset() {
	copy(p.entries[:16], defaultANSI16[:])

	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p.entries[i] = Color{R: cubeSteps[r], G: cubeSteps[g], B: cubeSteps[b]}
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(0x08 + j*0x0A)
		p.entries[232+j] = Color{R: gray, G: gray, B: gray}
	}
}

// Get returns the color stored at index. The index is a uint8, so every
// value addresses one of the 256 entries and the lookup cannot panic.
func (p *Palette) Get(index uint8) Color {
	return p.entries[index]
}

// Set redefines palette entry index (OSC 4).
func (p *Palette) Set(index uint8, c Color) {
	p.entries[index] = c
}

// Resolve returns the concrete Color a ColorRef denotes under this palette.
func (p *Palette) Resolve(ref ColorRef) Color {
	if ref.Direct {
		return ref.RGB
	}
	return p.Get(ref.Index)
}

// defaultANSI16 are the standard (0-7) and bright (8-15) ANSI colors.
var defaultANSI16 = [16]Color{
	{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
	{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
	{102, 102, 102}, {241, 76, 76}, {35, 209, 139}, {245, 245, 67},
	{59, 142, 234}, {214, 112, 214}, {41, 184, 219}, {255, 255, 255},
}
