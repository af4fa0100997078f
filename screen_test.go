package vtcore

import "testing"

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r        rune
		expected int
	}{
		{'A', 1},
		{'a', 1},
		{'1', 1},
		{' ', 1},
		{'中', 2},
		{'日', 2},
		{'本', 2},
		{'한', 2},
		{'글', 2},
		{'가', 2},
		{'Ａ', 2}, // Fullwidth A
		{0, 0},
	}

	for _, tt := range tests {
		got := runeWidth(tt.r)
		if got != tt.expected {
			t.Errorf("runeWidth(%q) = %d, want %d", tt.r, got, tt.expected)
		}
	}
}

func TestScreenPutChWideRune(t *testing.T) {
	s := NewScreen(10, 3)
	s.PutCh('中')
	if s.Cursor.X != 2 {
		t.Fatalf("cursor.X after wide rune = %d, want 2", s.Cursor.X)
	}
	if !s.Cell(1, 0).WideSpacer {
		t.Fatal("expected spacer cell after a wide rune")
	}
}

func TestScreenPutChMarksLineWrapped(t *testing.T) {
	s := NewScreen(3, 2)
	s.Modes.Set(DECAWM, true)
	s.PutCh('a')
	s.PutCh('b')
	s.PutCh('c') // fills the row, latches LastColumn
	if s.Line(0).Wrapped {
		t.Fatal("Wrapped should not be set until the latch actually forces a newline")
	}
	s.PutCh('d') // forces the deferred wrap
	if !s.Line(0).Wrapped {
		t.Fatal("expected row 0 to be marked Wrapped after autowrap")
	}
}

func TestScreenEraseLineClearsWrapped(t *testing.T) {
	s := NewScreen(3, 2)
	s.Modes.Set(DECAWM, true)
	s.PutCh('a')
	s.PutCh('b')
	s.PutCh('c')
	s.PutCh('d')
	if !s.Line(0).Wrapped {
		t.Fatal("setup: expected row 0 to be wrapped")
	}
	s.Cursor.Y = 0
	s.EraseLine(EraseAll)
	if s.Line(0).Wrapped {
		t.Fatal("expected full-line erase to clear Wrapped")
	}
}
