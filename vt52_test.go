package vtcore

import "testing"

func TestVT52SimpleCommand(t *testing.T) {
	var p VT52Parser
	var got VT52Action
	var ok bool
	for _, b := range []byte{0x1B, 'A'} {
		got, ok = p.Feed(b)
	}
	if !ok || got.Kind != VT52Command || got.Cmd != 'A' {
		t.Fatalf("unexpected result %+v ok=%v", got, ok)
	}
}

func TestVT52DirectAddress(t *testing.T) {
	var p VT52Parser
	var got VT52Action
	var ok bool
	// row 4, col 9 (0x20+4, 0x20+9)
	for _, b := range []byte{0x1B, 'Y', 0x24, 0x29} {
		got, ok = p.Feed(b)
	}
	if !ok || got.Kind != VT52DirectAddress || got.Row != 4 || got.Col != 9 {
		t.Fatalf("unexpected result %+v ok=%v", got, ok)
	}
}
