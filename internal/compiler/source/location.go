package source

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/btouchard/bushel/internal/compiler/lexer"
	"github.com/btouchard/bushel/internal/compiler/term"
)

// Location is a half-open byte range [Lo, Hi) into a source text.
type Location struct {
	Lo, Hi int
}

// Span builds a location, swapping reversed bounds.
func Span(lo, hi int) Location {
	if hi < lo {
		lo, hi = hi, lo
	}
	return Location{Lo: lo, Hi: hi}
}

// At is the empty location at offset.
func At(offset int) Location { return Location{Lo: offset, Hi: offset} }

// Between is the gap from the end of a to the start of b.
func Between(a, b Location) Location { return Span(a.Hi, b.Lo) }

// Start is the empty location at l's lower bound.
func (l Location) Start() Location { return At(l.Lo) }

// End is the empty location at l's upper bound.
func (l Location) End() Location { return At(l.Hi) }

// Len returns the length in bytes.
func (l Location) Len() int { return l.Hi - l.Lo }

// IsEmpty reports whether the range is empty.
func (l Location) IsEmpty() bool { return l.Hi <= l.Lo }

// Contains reports whether offset lies inside the range.
func (l Location) Contains(offset int) bool { return l.Lo <= offset && offset < l.Hi }

// Overlaps reports whether two non-empty ranges share a byte.
func (l Location) Overlaps(other Location) bool {
	if l.IsEmpty() || other.IsEmpty() {
		return false
	}
	return l.Lo < other.Hi && other.Lo < l.Hi
}

// Clamp limits the range to a source of length n.
func (l Location) Clamp(n int) Location {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > n {
			return n
		}
		return v
	}
	return Span(clamp(l.Lo), clamp(l.Hi))
}

func (l Location) String() string {
	return fmt.Sprintf("[%d, %d)", l.Lo, l.Hi)
}

// Text returns the covered text.
func (l Location) Text(src string) string {
	l = l.Clamp(len(src))
	return src[l.Lo:l.Hi]
}

// Lines returns the 1-based first and last line the range touches.
func (l Location) Lines(src string) (first, last int) {
	l = l.Clamp(len(src))
	first = countNewlines(src[:l.Lo]) + 1
	return first, first + countNewlines(src[l.Lo:l.Hi])
}

// Columns returns the 1-based start and end column on the first line. A
// range spanning several lines marks only its first column.
func (l Location) Columns(src string) (start, end int) {
	l = l.Clamp(len(src))
	lineStart := 0
	if i := strings.LastIndexFunc(src[:l.Lo], lexer.IsNewline); i >= 0 {
		_, size := utf8.DecodeRuneInString(src[i:])
		lineStart = i + size
	}
	start = utf8.RuneCountInString(src[lineStart:l.Lo]) + 1
	if first, last := l.Lines(src); first != last {
		return start, start + 1
	}
	return start, start + utf8.RuneCountInString(src[l.Lo:l.Hi])
}

// Snippet returns the covered text. An empty range yields the character
// before it, or the one after it at the start of the source.
func (l Location) Snippet(src string) string {
	l = l.Clamp(len(src))
	if !l.IsEmpty() {
		return src[l.Lo:l.Hi]
	}
	if l.Lo > 0 {
		_, size := utf8.DecodeLastRuneInString(src[:l.Lo])
		return src[l.Lo-size : l.Lo]
	}
	if l.Lo < len(src) {
		_, size := utf8.DecodeRuneInString(src[l.Lo:])
		return src[l.Lo : l.Lo+size]
	}
	return ""
}

// Words returns the normalized words of the covered text.
func (l Location) Words(src string) string {
	return strings.Join(term.Words(l.Text(src)), " ")
}

// Position resolves the start of the range to a line and column.
func (l Location) Position(src, file string) Position {
	line, _ := l.Lines(src)
	col, _ := l.Columns(src)
	return Position{File: file, Line: line, Column: col}
}

func countNewlines(s string) int {
	n := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == '\r' && strings.HasPrefix(s[i:], "\r\n") {
			size = 2
		}
		if lexer.IsNewline(r) {
			n++
		}
		i += size
	}
	return n
}

// Position represents a location in source code
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
