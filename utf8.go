package vtcore

// ReplacementChar is the Unicode replacement character substituted for any
// code point the decoder cannot assemble.
const ReplacementChar = '�'

// UTF8Decoder assembles UTF-8 byte sequences into Unicode scalar values
// for the interpreter's print action (spec.md §4.3 "a UTF-8 decoder (size
// 2/3/4 sequence being assembled; illegal leading byte -> print U+FFFD)").
//
// Continuation bytes ARE bounds-checked here (must be 10xxxxxx): this
// answers the first Open Question in spec.md §9. An invalid continuation
// byte aborts the in-progress sequence, emits U+FFFD, resets decoder
// state, and re-consumes the offending byte as the possible start of a new
// sequence.
type UTF8Decoder struct {
	need int // remaining continuation bytes expected
	cp   rune
}

// Feed adds one byte to the decoder, returning zero or more completed
// scalar values. Zero is returned while a multi-byte sequence is still
// being assembled; two may be returned when an invalid continuation byte
// both aborts the prior sequence (emitting U+FFFD) and starts a new,
// immediately-ASCII ready byte.
func (d *UTF8Decoder) Feed(b byte) []rune {
	var out []rune
	for {
		r, produced, reconsume := d.step(b)
		if produced {
			out = append(out, r)
		}
		if !reconsume {
			return out
		}
	}
}

func (d *UTF8Decoder) step(b byte) (r rune, produced bool, reconsume bool) {
	if d.need == 0 {
		switch {
		case b < 0x80:
			return rune(b), true, false
		case b&0xE0 == 0xC0:
			d.need, d.cp = 1, rune(b&0x1F)
			return 0, false, false
		case b&0xF0 == 0xE0:
			d.need, d.cp = 2, rune(b&0x0F)
			return 0, false, false
		case b&0xF8 == 0xF0:
			d.need, d.cp = 3, rune(b&0x07)
			return 0, false, false
		default:
			// Illegal leading byte: a stray continuation byte (0x80-0xBF)
			// or a byte outside any valid UTF-8 leading-byte range.
			return ReplacementChar, true, false
		}
	}

	if b&0xC0 == 0x80 {
		d.cp = d.cp<<6 | rune(b&0x3F)
		d.need--
		if d.need == 0 {
			cp := d.cp
			d.cp = 0
			return cp, true, false
		}
		return 0, false, false
	}

	// Invalid continuation byte: abort, emit U+FFFD, reset, and let the
	// caller reprocess b from a clean state.
	d.need, d.cp = 0, 0
	return ReplacementChar, true, true
}
