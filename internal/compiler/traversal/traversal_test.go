package traversal

import (
	"strings"
	"testing"

	"github.com/btouchard/bushel/internal/compiler/term"
)

func TestFindLongestMatch(t *testing.T) {
	table := Build(term.Names("a", "a b", "one two three", "one"))

	tests := []struct {
		input    string
		expected string
		matched  string
		ok       bool
	}{
		{"a b c", "a b", "a b", true},
		{"a c", "a", "a", true},
		{"a", "a", "a", true},
		{"a   b", "a b", "a   b", true},
		{"one two three a b c", "one two three", "one two three", true},
		{"one two", "one", "one", true},
		{"ab", "", "", false},
		{"b", "", "", false},
		{" a", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			matched, name, ok := table.Find(tt.input, nil)
			if ok != tt.ok {
				t.Fatalf("expected ok=%t, got %t", tt.ok, ok)
			}
			if name.Normalized() != tt.expected {
				t.Errorf("expected name %q, got %q", tt.expected, name.Normalized())
			}
			if matched != tt.matched {
				t.Errorf("expected matched %q, got %q", tt.matched, matched)
			}
		})
	}
}

func TestFindWordBoundary(t *testing.T) {
	table := Build(term.Names("is", "is a", "+", "-", "(", "--("))

	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"is it", "is", true},
		{"isn't", "", false},
		{"is another", "is", true},
		{"is a thing", "is a", true},
		{"+2", "+", true},
		{"-1", "", false},
		{"- 1", "-", true},
		{"(x)", "(", true},
		{"--( comment", "--(", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, name, ok := table.Find(tt.input, nil)
			if ok != tt.ok || name.Normalized() != tt.expected {
				t.Errorf("Find(%q) = (%q, %t), want (%q, %t)", tt.input, name.Normalized(), ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestFindPriorityOnDuplicates(t *testing.T) {
	first := term.Name{Scopes: []string{"first"}, Words: []string{"x"}}
	second := term.Name{Scopes: []string{"second"}, Words: []string{"x"}}
	table := Build([]term.Name{first, second})

	_, name, ok := table.Find("x", nil)
	if !ok {
		t.Fatal("expected match")
	}
	if !name.Equal(first) {
		t.Errorf("expected first inserted name to win, got %v", name)
	}
	if table.Len() != 1 {
		t.Errorf("expected 1 distinct name, got %d", table.Len())
	}
}

func TestFindCustomSkip(t *testing.T) {
	table := Build(term.Names("is not"))
	skipComments := func(s string) int {
		trimmed := strings.TrimLeft(s, " ")
		if strings.HasPrefix(trimmed, "(*") {
			if end := strings.Index(trimmed, "*)"); end >= 0 {
				trimmed = strings.TrimLeft(trimmed[end+2:], " ")
			}
		}
		return len(s) - len(trimmed)
	}

	matched, _, ok := table.Find("is (* really *) not here", skipComments)
	if !ok {
		t.Fatal("expected match across comment")
	}
	if matched != "is (* really *) not" {
		t.Errorf("expected %q, got %q", "is (* really *) not", matched)
	}

	if _, _, ok := table.Find("is\nnot", nil); ok {
		t.Error("expected default skip to stop at line breaks")
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		input string
		name  string
		n     int
		ok    bool
	}{
		{"end if", "end", 3, true},
		{"ending", "end", 0, false},
		{"starts  with x", "starts with", 12, true},
		{"->x", "->", 2, true},
		{"-x", "->", 0, false},
		{"anything", "", 0, false},
	}
	for _, tt := range tests {
		n, ok := Match(tt.input, term.NewName(tt.name), nil)
		if n != tt.n || ok != tt.ok {
			t.Errorf("Match(%q, %q) = (%d, %t), want (%d, %t)", tt.input, tt.name, n, ok, tt.n, tt.ok)
		}
	}
}

func TestWordLen(t *testing.T) {
	tests := []struct {
		input string
		n     int
	}{
		{"hello world", 5},
		{"“x", len("“")},
		{",b", 1},
		{"x-ray,", 5},
		{" x", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := WordLen(tt.input); got != tt.n {
			t.Errorf("WordLen(%q) = %d, want %d", tt.input, got, tt.n)
		}
	}
}
