package term

import (
	"strings"
	"testing"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single word", "hello", []string{"hello"}},
		{"multiple spaces", "  one   two\tthree ", []string{"one", "two", "three"}},
		{"newlines", "one\ntwo\r\nthree", []string{"one", "two", "three"}},
		{"punctuation splits", "a,b", []string{"a", ",", "b"}},
		{"punctuation run", "a,,b", []string{"a", ",", ",", "b"}},
		{"apostrophe is word-internal", "it's", []string{"it's"}},
		{"curly apostrophe is word-internal", "isn’t", []string{"isn’t"}},
		{"hyphen is word-internal", "x-ray", []string{"x-ray"}},
		{"underscore is word-internal", "debug_inspect_term", []string{"debug_inspect_term"}},
		{"dot is word-internal", "3.14", []string{"3.14"}},
		{"question mark is word-internal", "exists?", []string{"exists?"}},
		{"slash splits", "6/2", []string{"6", "/", "2"}},
		{"arrow", "->", []string{"-", ">"}},
		{"block comment opener", "--(", []string{"--", "("}},
		{"symbols", "1+2", []string{"1", "+", "2"}},
		{"curly quotes", "“hi”", []string{"“", "hi", "”"}},
		{"scope separator", "Math : pi", []string{"Math", ":", "pi"}},
		{"empty", "", nil},
		{"only whitespace", " \t\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Words(tt.input)
			if strings.Join(got, "|") != strings.Join(tt.expected, "|") || len(got) != len(tt.expected) {
				t.Errorf("Words(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWordsIdempotentOverNormalized(t *testing.T) {
	samples := [][]string{
		{"one"},
		{"is", "not", "equal", "to"},
		{"a", ",", "b"},
		{"it's", "x-ray"},
		{"-", ">"},
		{"“", "quoted", "”"},
		{"(", ")", "{", "}"},
	}

	for _, words := range samples {
		name := NameOf(words...)
		got := Words(NewName(name.Normalized()).Normalized())
		if strings.Join(got, "|") != strings.Join(words, "|") {
			t.Errorf("expected %q, got %q", words, got)
		}
	}
}

func TestNewNameScopes(t *testing.T) {
	tests := []struct {
		input  string
		scopes []string
		words  []string
	}{
		{"Math : pi", []string{"Math"}, []string{"pi"}},
		{"a:b:c", []string{"a", "b"}, []string{"c"}},
		{"Finder : front window", []string{"Finder"}, []string{"front", "window"}},
		{":", nil, []string{":"}},
		{"a :", nil, []string{"a", ":"}},
		{"plain name", nil, []string{"plain", "name"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n := NewName(tt.input)
			if strings.Join(n.Scopes, "|") != strings.Join(tt.scopes, "|") {
				t.Errorf("expected scopes %q, got %q", tt.scopes, n.Scopes)
			}
			if strings.Join(n.Words, "|") != strings.Join(tt.words, "|") {
				t.Errorf("expected words %q, got %q", tt.words, n.Words)
			}
		})
	}
}

func TestNameStringAndKey(t *testing.T) {
	n := NewName("Math : pi")
	if n.String() != "Math : pi" {
		t.Errorf("expected %q, got %q", "Math : pi", n.String())
	}
	if n.Normalized() != "pi" {
		t.Errorf("expected normalized %q, got %q", "pi", n.Normalized())
	}
	if n.Key() == NewName("pi").Key() {
		t.Error("expected scoped and unscoped names to have different keys")
	}
	if NewName("is  equal\tto").Key() != NewName("is equal to").Key() {
		t.Error("expected whitespace-insensitive keys")
	}
}

func TestNameEqualAndLess(t *testing.T) {
	if !NewName("a b").Equal(NameOf("a", "b")) {
		t.Error("expected equal names")
	}
	if NewName("x : a").Equal(NewName("a")) {
		t.Error("expected scope to participate in equality")
	}

	tests := []struct {
		lhs, rhs string
		less     bool
	}{
		{"a", "b", true},
		{"b", "a", false},
		{"a", "a b", true},
		{"a b", "a", false},
		{"a", "x : a", true},
		{"x : b", "y : a", true},
		{"same", "same", false},
	}
	for _, tt := range tests {
		if got := NewName(tt.lhs).Less(NewName(tt.rhs)); got != tt.less {
			t.Errorf("%q < %q: expected %t, got %t", tt.lhs, tt.rhs, tt.less, got)
		}
	}
}

func TestNextWord(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"  hello world", "hello", true},
		{"(x", "(", true},
		{"named \"x\"", "named", true},
		{"", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		got, ok := NextWord(tt.input)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("NextWord(%q) = (%q, %t), want (%q, %t)", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}
