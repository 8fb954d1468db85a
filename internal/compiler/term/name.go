package term

import (
	"strings"
	"unicode"
)

// ScopeSeparator separates scope qualifiers from the main name in "Math : pi".
const ScopeSeparator = ":"

// Name is the normalized, word-segmented surface name of a term.
type Name struct {
	Scopes []string // outermost first, each normalized
	Words  []string
}

// NewName word-splits s. When s contains the scope separator and every part
// around it is non-empty, the leading parts become scopes.
func NewName(s string) Name {
	if strings.Contains(s, ScopeSeparator) {
		parts := strings.Split(s, ScopeSeparator)
		ok := true
		for _, part := range parts {
			if len(Words(part)) == 0 {
				ok = false
				break
			}
		}
		if ok {
			scopes := make([]string, 0, len(parts)-1)
			for _, part := range parts[:len(parts)-1] {
				scopes = append(scopes, strings.Join(Words(part), " "))
			}
			return Name{Scopes: scopes, Words: Words(parts[len(parts)-1])}
		}
	}
	return Name{Words: Words(s)}
}

// NameOf builds a name from already-segmented words.
func NameOf(words ...string) Name {
	return Name{Words: append([]string(nil), words...)}
}

// Names is a convenience for building config tables.
func Names(ss ...string) []Name {
	names := make([]Name, len(ss))
	for i, s := range ss {
		names[i] = NewName(s)
	}
	return names
}

// IsWordBreakingPunctuation reports whether r is a punctuation or symbol rune
// that forms a word on its own. ’ counts as an apostrophe.
func IsWordBreakingPunctuation(r rune) bool {
	switch r {
	case '_', '.', '-', '\'', '’', '?':
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// IsWordBreaking reports whether r ends a word.
func IsWordBreaking(r rune) bool {
	return unicode.IsSpace(r) || IsWordBreakingPunctuation(r)
}

// Words segments s into normalized words.
func Words(s string) []string {
	var words []string
	start := -1
	for i, r := range s {
		breaking := IsWordBreaking(r)
		if breaking && start >= 0 {
			words = append(words, s[start:i])
			start = -1
		}
		if unicode.IsSpace(r) {
			continue
		}
		if breaking {
			words = append(words, string(r))
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}

// NextWord returns the first word of s.
func NextWord(s string) (string, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	for i, r := range s {
		if IsWordBreaking(r) {
			if i == 0 {
				return string(r), true
			}
			return s[:i], true
		}
	}
	if s == "" {
		return "", false
	}
	return s, true
}

// Normalized joins the words with a single space.
func (n Name) Normalized() string {
	return strings.Join(n.Words, " ")
}

func (n Name) String() string {
	if len(n.Scopes) == 0 {
		return n.Normalized()
	}
	return strings.Join(n.Scopes, " "+ScopeSeparator+" ") + " " + ScopeSeparator + " " + n.Normalized()
}

// Key is a comparable representation usable as a map key.
func (n Name) Key() string {
	if len(n.Scopes) == 0 {
		return n.Normalized()
	}
	return strings.Join(n.Scopes, "\x1f") + "\x1e" + n.Normalized()
}

// IsEmpty reports whether the name has no words.
func (n Name) IsEmpty() bool {
	return len(n.Words) == 0
}

// Equal compares scopes and words.
func (n Name) Equal(other Name) bool {
	return equalStrings(n.Scopes, other.Scopes) && equalStrings(n.Words, other.Words)
}

// Less orders by scopes, then by words.
func (n Name) Less(other Name) bool {
	if c := compareStrings(n.Scopes, other.Scopes); c != 0 {
		return c < 0
	}
	return compareStrings(n.Words, other.Words) < 0
}

// Last returns the last word, or "" for an empty name.
func (n Name) Last() string {
	if len(n.Words) == 0 {
		return ""
	}
	return n.Words[len(n.Words)-1]
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func compareStrings(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}
