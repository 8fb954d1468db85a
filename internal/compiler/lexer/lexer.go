package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Cursor is the remaining-source read head of a parse. The full input is
// kept so locations stay absolute offsets into it.
type Cursor struct {
	input    string
	position int // current offset in input (bytes)
}

func New(input string) *Cursor {
	return &Cursor{input: input}
}

// Source returns the entire input.
func (c *Cursor) Source() string { return c.input }

// Offset returns the current byte offset.
func (c *Cursor) Offset() int { return c.position }

// Rest returns the unread input.
func (c *Cursor) Rest() string { return c.input[c.position:] }

// AtEnd reports whether the whole input has been read.
func (c *Cursor) AtEnd() bool { return c.position >= len(c.input) }

// Seek moves the cursor to an absolute offset.
func (c *Cursor) Seek(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(c.input) {
		offset = len(c.input)
	}
	c.position = offset
}

// Advance moves the cursor n bytes forward.
func (c *Cursor) Advance(n int) { c.Seek(c.position + n) }

// Append extends the input. The cursor does not move.
func (c *Cursor) Append(text string) { c.input += text }

// Current returns the rune under the cursor, 0 at end of input.
func (c *Cursor) Current() rune {
	if c.AtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.input[c.position:])
	return r
}

// readChar consumes one rune.
func (c *Cursor) readChar() {
	if c.AtEnd() {
		return
	}
	_, size := utf8.DecodeRuneInString(c.input[c.position:])
	c.position += size
}

// HasPrefix reports whether the unread input starts with s.
func (c *Cursor) HasPrefix(s string) bool { return strings.HasPrefix(c.Rest(), s) }

// SkipWhitespace consumes whitespace, line breaks included only when
// newlines is set. It returns the number of bytes consumed.
func (c *Cursor) SkipWhitespace(newlines bool) int {
	start := c.position
	for !c.AtEnd() {
		ch := c.Current()
		if !unicode.IsSpace(ch) || (!newlines && IsNewline(ch)) {
			break
		}
		c.readChar()
	}
	return c.position - start
}

// EatLineBreak consumes one "\r\n", "\n" or "\r".
func (c *Cursor) EatLineBreak() bool {
	n := LineBreakLen(c.Rest())
	c.Advance(n)
	return n > 0
}

// RestOfLine returns the unread input up to the next line break.
func (c *Cursor) RestOfLine() string {
	rest := c.Rest()
	return rest[:LineEnd(rest)]
}

// IsNewline reports whether r is a line separator.
func IsNewline(r rune) bool {
	switch r {
	case '\n', '\v', '\f', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// LineBreakLen returns the length of the line break starting s, or 0.
func LineBreakLen(s string) int {
	switch {
	case strings.HasPrefix(s, "\r\n"):
		return 2
	case strings.HasPrefix(s, "\n"), strings.HasPrefix(s, "\r"):
		return 1
	}
	return 0
}

// LineEnd returns the offset of the first line separator in s, or len(s).
func LineEnd(s string) int {
	if i := strings.IndexFunc(s, IsNewline); i >= 0 {
		return i
	}
	return len(s)
}

// ScanInteger returns the length of a signed decimal integer at the start of
// s. A literal followed by '.' is not an integer.
func ScanInteger(s string) int {
	i := scanSign(s)
	digits := scanDigits(s[i:])
	if digits == 0 {
		return 0
	}
	i += digits
	if i < len(s) && s[i] == '.' {
		return 0
	}
	return i
}

// ScanReal returns the length of a decimal real number at the start of s:
// optional sign, digits, optional fraction with optional exponent. The
// result may be just a sign; callers validate with strconv.
func ScanReal(s string) int {
	i := scanSign(s)
	i += scanDigits(s[i:])
	if i < len(s) && s[i] == '.' {
		frac := scanDigits(s[i+1:])
		if frac > 0 {
			i += 1 + frac
			if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
				j := i + 1
				j += scanSign(s[j:])
				if exp := scanDigits(s[j:]); exp > 0 {
					i = j + exp
				}
			}
		}
	}
	return i
}

func scanSign(s string) int {
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		return 1
	}
	return 0
}

func scanDigits(s string) int {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// ScanString finds the end marker of a string literal body. The body ends
// at the first end marker that is not escaped by a single backslash. n
// counts the body and the end marker.
func ScanString(s, end string) (body string, n int, ok bool) {
	if end == "" {
		return "", 0, false
	}
	for i := 0; i <= len(s)-len(end); i++ {
		if !strings.HasPrefix(s[i:], end) {
			continue
		}
		if i == 0 || s[i-1] != '\\' || (i >= 2 && s[i-2:i] == `\\`) {
			return s[:i], i + len(end), true
		}
	}
	return "", 0, false
}

// EscapeError reports an invalid escape sequence at Offset bytes into a
// string body. Trailing is set for a lone backslash at the end of the body.
type EscapeError struct {
	Offset   int
	Trailing bool
}

func (e *EscapeError) Error() string {
	if e.Trailing {
		return "unterminated escape sequence"
	}
	return fmt.Sprintf("invalid escape sequence at offset %d", e.Offset)
}

// Unescape decodes the escapes \\ \t \n \r and a backslash followed by the
// first character of end.
func Unescape(body, end string) (string, error) {
	quote, _ := utf8.DecodeRuneInString(end)
	var sb strings.Builder
	for i := 0; i < len(body); {
		r, size := utf8.DecodeRuneInString(body[i:])
		if r != '\\' {
			sb.WriteRune(r)
			i += size
			continue
		}
		if i+1 >= len(body) {
			return "", &EscapeError{Offset: i, Trailing: true}
		}
		next, nsize := utf8.DecodeRuneInString(body[i+1:])
		switch next {
		case '\\':
			sb.WriteByte('\\')
		case 't':
			sb.WriteByte('\t')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		default:
			if next != quote {
				return "", &EscapeError{Offset: i}
			}
			sb.WriteRune(quote)
		}
		i += 1 + nsize
	}
	return sb.String(), nil
}
