package vtcore

import "testing"

func TestParseColorSpecHashForms(t *testing.T) {
	cases := []struct {
		in   string
		want Color
	}{
		{"#fff", Color{255, 255, 255}},
		{"#ff0000", Color{255, 0, 0}},
		{"#000000", Color{0, 0, 0}},
	}
	for _, c := range cases {
		got, ok := parseColorSpec(c.in)
		if !ok {
			t.Fatalf("parseColorSpec(%q) failed", c.in)
		}
		if got != c.want {
			t.Errorf("parseColorSpec(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestParseColorSpecRGBForm(t *testing.T) {
	got, ok := parseColorSpec("rgb:ff/00/80")
	if !ok {
		t.Fatal("expected success")
	}
	if got.R != 255 || got.G != 0 {
		t.Errorf("got %+v", got)
	}
}

func TestParseColorSpecRGBIForm(t *testing.T) {
	got, ok := parseColorSpec("rgbi:1.0/0.0/0.5")
	if !ok {
		t.Fatal("expected success")
	}
	if got.R != 255 || got.G != 0 {
		t.Errorf("got %+v", got)
	}
}

func TestParseColorSpecUnknown(t *testing.T) {
	if _, ok := parseColorSpec("bogus"); ok {
		t.Fatal("expected failure for unknown format")
	}
}
