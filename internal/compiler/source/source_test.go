package source

import "testing"

func TestLocationLinesAndColumns(t *testing.T) {
	src := "first\nsecond line\r\nthird"

	tests := []struct {
		name            string
		loc             Location
		firstLine, last int
		startCol, end   int
	}{
		{"start of source", Span(0, 5), 1, 1, 1, 6},
		{"second line word", Span(13, 17), 2, 2, 8, 12},
		{"after crlf", Span(19, 24), 3, 3, 1, 6},
		{"spanning lines", Span(3, 9), 1, 2, 4, 5},
		{"empty at end", At(24), 3, 3, 6, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := tt.loc.Lines(src)
			if first != tt.firstLine || last != tt.last {
				t.Errorf("Lines = (%d, %d), want (%d, %d)", first, last, tt.firstLine, tt.last)
			}
			start, end := tt.loc.Columns(src)
			if start != tt.startCol || end != tt.end {
				t.Errorf("Columns = (%d, %d), want (%d, %d)", start, end, tt.startCol, tt.end)
			}
		})
	}
}

func TestLocationColumnsCountRunes(t *testing.T) {
	src := "“x” + y"
	loc := Span(len("“x” "), len("“x” +"))
	start, end := loc.Columns(src)
	if start != 5 || end != 6 {
		t.Errorf("Columns = (%d, %d), want (5, 6)", start, end)
	}
}

func TestLocationSnippet(t *testing.T) {
	src := "1 + 2"
	tests := []struct {
		loc      Location
		expected string
	}{
		{Span(2, 3), "+"},
		{At(3), "+"},
		{At(0), "1"},
		{At(5), "2"},
		{Span(4, 99), "2"},
	}
	for _, tt := range tests {
		if got := tt.loc.Snippet(src); got != tt.expected {
			t.Errorf("%v.Snippet() = %q, want %q", tt.loc, got, tt.expected)
		}
	}
	if got := At(0).Snippet(""); got != "" {
		t.Errorf("expected empty snippet of empty source, got %q", got)
	}
}

func TestLocationOverlaps(t *testing.T) {
	tests := []struct {
		a, b     Location
		expected bool
	}{
		{Span(0, 3), Span(2, 5), true},
		{Span(0, 3), Span(3, 5), false},
		{Span(2, 5), Span(0, 3), true},
		{Span(0, 5), Span(1, 2), true},
		{At(2), Span(0, 5), false},
		{Span(0, 5), At(2), false},
	}
	for _, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.expected {
			t.Errorf("%v.Overlaps(%v) = %t, want %t", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestLocationWordsAndPosition(t *testing.T) {
	src := "set  x\tto 1"
	if got := Span(0, 9).Words(src); got != "set x to" {
		t.Errorf("Words = %q, want %q", got, "set x to")
	}

	pos := Span(7, 9).Position("a\n"+src, "demo.bushel")
	if pos.String() != "demo.bushel:2:6" {
		t.Errorf("Position = %q, want %q", pos.String(), "demo.bushel:2:6")
	}
}

func TestPositionString(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected string
	}{
		{"with file", Position{File: "test.bushel", Line: 10, Column: 5}, "test.bushel:10:5"},
		{"without file", Position{Line: 10, Column: 5}, "10:5"},
		{"line 1 column 1", Position{Line: 1, Column: 1}, "1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.expected {
				t.Errorf("Position.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSetInsertIsIdempotent(t *testing.T) {
	s := NewSet()
	e := Terminal("x", Span(0, 1), StylingVariable, SpacingNone)

	if !s.Insert(e) {
		t.Fatal("expected first insert to add")
	}
	if s.Insert(e) {
		t.Error("expected second insert to be a no-op")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 element, got %d", s.Len())
	}
}

func TestSetRollback(t *testing.T) {
	s := NewSet()
	kept := Terminal("a", Span(0, 1), StylingVariable, SpacingNone)
	marker := Indentation(0, At(0))
	s.Insert(kept)
	s.Insert(marker)

	mark := s.Mark()
	s.Insert(Terminal("b", Span(2, 3), StylingNumber, SpacingNone))
	s.Remove(marker)
	s.Insert(Indentation(1, At(0)))
	s.Insert(kept)

	s.Rollback(mark)

	if s.Len() != 2 {
		t.Fatalf("expected 2 elements after rollback, got %d: %v", s.Len(), s.Elements())
	}
	if !s.Contains(kept) || !s.Contains(marker) {
		t.Error("expected original elements restored")
	}
	if s.Mark() != mark {
		t.Errorf("expected journal truncated to %d, got %d", mark, s.Mark())
	}
}

func TestSetOrdering(t *testing.T) {
	s := NewSet()
	s.Insert(Terminal("2", Span(4, 5), StylingNumber, SpacingNone))
	s.Insert(Terminal("1", Span(0, 1), StylingNumber, SpacingNone))
	s.Insert(Indentation(0, At(0)))
	s.Insert(Terminal("+", Span(2, 3), StylingOperator, SpacingLeftRight))

	elements := s.Elements()
	if elements[0].Kind != KindIndentation {
		t.Errorf("expected indentation first, got %v", elements[0])
	}
	terminals := s.Terminals()
	want := []string{"1", "+", "2"}
	if len(terminals) != len(want) {
		t.Fatalf("expected %d terminals, got %d", len(want), len(terminals))
	}
	for i, w := range want {
		if terminals[i].Text != w {
			t.Errorf("terminal[%d] = %q, want %q", i, terminals[i].Text, w)
		}
	}
	if len(s.Indentations()) != 1 {
		t.Errorf("expected 1 indentation, got %d", len(s.Indentations()))
	}
}
