package vtcore

// applySGR iterates SGR (Select Graphic Rendition) parameters, mutating
// cursor's rendering attribute block (spec.md §4.3 "SGR"). A bare "CSI m"
// arrives from the parser as params==[0]; an empty parameter vector is
// treated the same way.
func applySGR(cursor *Cursor, params []int) {
	if len(params) == 0 {
		params = []int{0}
	}

	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			cursor.Attrs = defaultCell()
			cursor.Conceal = false
		case p == 1:
			cursor.Attrs.Intensity = IntensityBold
		case p == 2:
			cursor.Attrs.Intensity = IntensityFaint
		case p == 22:
			cursor.Attrs.Intensity = IntensityNormal
		case p == 3:
			cursor.Attrs.Italic = true
		case p == 23:
			cursor.Attrs.Italic = false
			cursor.Attrs.Fraktur = false
		case p == 4:
			cursor.Attrs.Underline = UnderlineSingle
		case p == 21:
			cursor.Attrs.Underline = UnderlineDouble
		case p == 24:
			cursor.Attrs.Underline = UnderlineNone
		case p == 5:
			cursor.Attrs.Blink = BlinkSlow
		case p == 6:
			cursor.Attrs.Blink = BlinkFast
		case p == 25:
			cursor.Attrs.Blink = BlinkNone
		case p == 7:
			cursor.Attrs.Negative = true
		case p == 27:
			cursor.Attrs.Negative = false
		case p == 8:
			cursor.Conceal = true
		case p == 28:
			cursor.Conceal = false
		case p == 9:
			cursor.Attrs.CrossedOut = true
		case p == 29:
			cursor.Attrs.CrossedOut = false
		case p == 20:
			cursor.Attrs.Fraktur = true
		case p >= 30 && p <= 37:
			cursor.Attrs.Foreground = IndexRef(uint8(p - 30))
		case p == 38:
			ref, consumed, ok := parseSGRColor(params[i+1:])
			if !ok {
				return
			}
			cursor.Attrs.Foreground = ref
			i += consumed
		case p == 39:
			cursor.Attrs.Foreground = DefaultForeground()
		case p >= 40 && p <= 47:
			cursor.Attrs.Background = IndexRef(uint8(p - 40))
		case p == 48:
			ref, consumed, ok := parseSGRColor(params[i+1:])
			if !ok {
				return
			}
			cursor.Attrs.Background = ref
			i += consumed
		case p == 49:
			cursor.Attrs.Background = DefaultBackground()
		case p >= 90 && p <= 97:
			cursor.Attrs.Foreground = IndexRef(uint8(p-90) + 8)
		case p >= 100 && p <= 107:
			cursor.Attrs.Background = IndexRef(uint8(p-100) + 8)
		case p == 51:
			cursor.Attrs.Frame = FrameFramed
		case p == 52:
			cursor.Attrs.Frame = FrameEncircled
		case p == 54:
			cursor.Attrs.Frame = FrameNone
		case p == 53:
			cursor.Attrs.Overline = true
		case p == 55:
			cursor.Attrs.Overline = false
		case p >= 10 && p <= 19:
			cursor.Attrs.Font = uint8(p - 10)
		default:
			// unknown SGR parameter: recognized and ignored (spec.md §7).
		}
	}
}

// parseSGRColor parses the tail of an SGR 38/48 sequence: either
// "2;R;G;B" (direct RGB) or "5;N" (palette index). It returns the number
// of extra parameters consumed beyond the leading 38/48 itself, or ok=false
// if there are too few parameters to complete the form (spec.md §4.3:
// "SGR 38/48 with insufficient parameters -> the SGR iteration returns
// immediately with no further attribute changes").
func parseSGRColor(rest []int) (ref ColorRef, consumed int, ok bool) {
	if len(rest) < 1 {
		return ColorRef{}, 0, false
	}
	switch rest[0] {
	case 2:
		if len(rest) < 4 {
			return ColorRef{}, 0, false
		}
		return RGBRef(uint8(rest[1]), uint8(rest[2]), uint8(rest[3])), 4, true
	case 5:
		if len(rest) < 2 {
			return ColorRef{}, 0, false
		}
		return IndexRef(uint8(rest[1])), 2, true
	default:
		return ColorRef{}, 0, false
	}
}
