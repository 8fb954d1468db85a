package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/btouchard/bushel/internal/compiler/errors"
	"github.com/btouchard/bushel/internal/compiler/lexer"
	"github.com/btouchard/bushel/internal/compiler/source"
	"github.com/btouchard/bushel/internal/compiler/term"
	"github.com/btouchard/bushel/internal/compiler/traversal"
)

// addElement annotates [start, current) unless nothing was consumed.
func (st *State) addElement(start int, styling source.Styling, spacing source.Spacing) {
	end := st.Offset()
	if start == end {
		return
	}
	st.elements.Insert(source.Terminal(st.Source()[start:end], source.Span(start, end), styling, spacing))
}

// AddingElement runs fn and annotates whatever it consumed.
func (st *State) AddingElement(styling source.Styling, spacing source.Spacing, fn func()) {
	start := st.Offset()
	fn()
	st.addElement(start, styling, spacing)
}

func isBlank(r rune) bool { return unicode.IsSpace(r) && !lexer.IsNewline(r) }

func trimBlanks(s string) string { return strings.TrimLeftFunc(s, isBlank) }

// isNextIn reports whether s starts with prefix on a word boundary.
func isNextIn(s, prefix string) bool {
	if prefix == "" || !strings.HasPrefix(s, prefix) {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(prefix)
	if term.IsWordBreaking(last) {
		return true
	}
	after := s[len(prefix):]
	if after == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(after)
	return term.IsWordBreaking(r)
}

// IsNext reports whether the unread source starts with prefix as a whole
// word.
func (st *State) IsNext(prefix string) bool { return isNextIn(st.Rest(), prefix) }

// IsNextName reports whether the words of n come next, separated by
// horizontal whitespace.
func (st *State) IsNextName(n term.Name) bool {
	if n.IsEmpty() {
		return false
	}
	rest := st.Rest()
	for _, w := range n.Words {
		rest = trimBlanks(rest)
		if !isNextIn(rest, w) {
			return false
		}
		rest = rest[len(w):]
	}
	return true
}

// removePrefix eats prefix after blanks, and with withComments after
// comments too. Skipped comments are not annotated: they lie inside the
// span the caller annotates.
func (st *State) removePrefix(prefix string, withComments bool) bool {
	if withComments {
		st.skipTrivia()
	} else {
		st.cur.SkipWhitespace(false)
	}
	if !st.IsNext(prefix) {
		return false
	}
	st.cur.Advance(len(prefix))
	return true
}

func (st *State) removeName(n term.Name, withComments bool) bool {
	if n.IsEmpty() {
		return false
	}
	start, mark := st.Offset(), st.elements.Mark()
	for _, w := range n.Words {
		if !st.removePrefix(w, withComments) {
			st.cur.Seek(start)
			st.elements.Rollback(mark)
			return false
		}
	}
	return true
}

// TryEating eats n as a keyword.
func (st *State) TryEating(n term.Name) bool {
	return st.TryEatingStyled(n, source.StylingKeyword, source.SpacingLeftRight)
}

// TryEatingStyled eats n after any comments and whitespace, annotating it
// with styling.
func (st *State) TryEatingStyled(n term.Name, styling source.Styling, spacing source.Spacing) bool {
	st.EatCommentsAndWhitespace()
	start := st.Offset()
	if !st.removeName(n, true) {
		return false
	}
	st.addElement(start, styling, spacing)
	return true
}

// TryEatingOneOf eats the first of names that comes next.
func (st *State) TryEatingOneOf(names []term.Name, spacing source.Spacing) (term.Name, bool) {
	for _, n := range names {
		if st.TryEatingStyled(n, source.StylingKeyword, spacing) {
			return n, true
		}
	}
	return term.Name{}, false
}

// TryEatingPrefix eats a literal keyword.
func (st *State) TryEatingPrefix(prefix string) bool {
	return st.TryEatingPrefixStyled(prefix, source.StylingKeyword, source.SpacingLeftRight)
}

func (st *State) TryEatingPrefixStyled(prefix string, styling source.Styling, spacing source.Spacing) bool {
	st.EatCommentsAndWhitespace()
	start := st.Offset()
	if !st.removePrefix(prefix, true) {
		return false
	}
	st.addElement(start, styling, spacing)
	return true
}

// EatOrThrow eats a literal keyword or fails with a missing-keyword error.
func (st *State) EatOrThrow(prefix string) error {
	return st.eatOrThrowStyled(prefix, source.SpacingLeftRight)
}

func (st *State) eatOrThrowStyled(prefix string, spacing source.Spacing) error {
	if !st.TryEatingPrefixStyled(prefix, source.StylingKeyword, spacing) {
		return errors.Missing([]errors.Expected{errors.Keyword(term.NewName(prefix))}, errors.NoContext, st.CurrentLocation())
	}
	return nil
}

// TryEatingLineBreak eats trailing trivia and one line break.
func (st *State) TryEatingLineBreak() bool {
	st.EatCommentsAndWhitespace()
	return st.cur.EatLineBreak()
}

// EatLineBreakOrThrow eats one line break or fails with a missing-line-break
// error in ctx.
func (st *State) EatLineBreakOrThrow(ctx errors.Context) error {
	if !st.TryEatingLineBreak() {
		return errors.Missing([]errors.Expected{errors.LineBreak}, ctx, st.CurrentLocation())
	}
	return nil
}

// EatCommentsAndWhitespace skips comments and horizontal whitespace.
func (st *State) EatCommentsAndWhitespace() { st.eatTrivia(false, false) }

// EatCommentsAndNewlines also skips line breaks.
func (st *State) EatCommentsAndNewlines() { st.eatTrivia(true, false) }

// EatSignificantNewlines skips comments and line breaks, annotating the
// line breaks for indentation-aware formatting.
func (st *State) EatSignificantNewlines() { st.eatTrivia(true, true) }

// skipTrivia eats comments and horizontal whitespace without annotating
// them.
func (st *State) skipTrivia() {
	mark := st.elements.Mark()
	st.EatCommentsAndWhitespace()
	st.elements.Rollback(mark)
}

// EatCommentsAndWhitespaceToEndOfLine reports whether only trivia remained
// on the line.
func (st *State) EatCommentsAndWhitespaceToEndOfLine() bool {
	st.EatCommentsAndWhitespace()
	return st.AtEndOfLine()
}

// eatTrivia skips whitespace and comments. Comments are always annotated;
// significant whitespace is annotated when it spans a line break.
func (st *State) eatTrivia(newlines, significant bool) {
	start := st.Offset()
	st.cur.SkipWhitespace(newlines)
	if significant {
		st.addWhitespace(start)
	}
	for {
		start := st.Offset()
		if !st.eatBlockComment() && !st.eatLineComment() {
			return
		}
		st.addElement(start, source.StylingComment, source.SpacingNone)

		start = st.Offset()
		st.cur.SkipWhitespace(newlines)
		if significant {
			st.addWhitespace(start)
		}
	}
}

func (st *State) addWhitespace(start int) {
	if strings.IndexFunc(st.Source()[start:st.Offset()], lexer.IsNewline) >= 0 {
		st.addElement(start, source.StylingComment, source.SpacingNone)
	}
}

func (st *State) eatLineComment() bool {
	for _, marker := range st.cfg.Delimiters.LineComment {
		if st.removeName(marker, false) {
			st.cur.Advance(len(st.RestOfLine()))
			return true
		}
	}
	return false
}

func (st *State) eatBlockComment() bool {
	if !st.eatBlockCommentMarker(true) {
		return false
	}
	st.awaitBlockCommentEnd()
	return true
}

// awaitBlockCommentEnd skips to the end marker matching an eaten begin
// marker. Block comments nest.
func (st *State) awaitBlockCommentEnd() {
	for !st.AtEnd() {
		if st.eatBlockCommentMarker(false) {
			return
		}
		if st.eatBlockCommentMarker(true) {
			st.awaitBlockCommentEnd()
			continue
		}
		_, size := utf8.DecodeRuneInString(st.Rest())
		st.cur.Advance(size)
	}
}

func (st *State) eatBlockCommentMarker(begin bool) bool {
	for _, pair := range st.cfg.Delimiters.BlockComment {
		marker := pair.End
		if begin {
			marker = pair.Begin
		}
		if st.removeName(marker, false) {
			return true
		}
	}
	return false
}

// findIn returns the spelling of the longest table entry at the cursor.
func (st *State) findIn(find func(string) (string, term.Name, bool), byKey map[string]string) (matched, spelling string, ok bool) {
	matched, name, ok := find(st.Rest())
	if !ok {
		return "", "", false
	}
	return matched, byKey[name.Key()], true
}

func (st *State) eatKeyword() (string, bool) {
	matched, spelling, ok := st.findIn(st.keywordTable, st.keywordByKey)
	if !ok {
		return "", false
	}
	spacing := source.SpacingLeftRight
	if last, _ := utf8.DecodeLastRuneInString(matched); term.IsWordBreaking(last) {
		spacing = source.SpacingLeft
	}
	st.AddingElement(source.StylingKeyword, spacing, func() { st.cur.Advance(len(matched)) })
	return spelling, true
}

func (st *State) keywordTable(s string) (string, term.Name, bool) {
	return st.keywords.Find(s, st.triviaLen)
}
func (st *State) prefixTable(s string) (string, term.Name, bool) {
	return st.prefixOps.Find(s, st.triviaLen)
}
func (st *State) postfixTable(s string) (string, term.Name, bool) {
	return st.postfixOps.Find(s, st.triviaLen)
}
func (st *State) infixTable(s string) (string, term.Name, bool) {
	return st.infixOps.Find(s, st.triviaLen)
}

// triviaLen measures the blanks and comments at the start of s. Table
// lookups skip them between the words of a name.
func (st *State) triviaLen(s string) int {
	pos := 0
	for {
		pos += traversal.SkipBlanks(s[pos:])
		n := st.commentLen(s[pos:])
		if n == 0 {
			return pos
		}
		pos += n
	}
}

// commentLen measures the comment at the start of s, or returns 0.
func (st *State) commentLen(s string) int {
	if n, ok := st.matchBlockCommentMarker(s, true); ok {
		return n + st.blockCommentRestLen(s[n:])
	}
	for _, marker := range st.cfg.Delimiters.LineComment {
		if _, ok := traversal.Match(s, marker, traversal.SkipBlanks); ok {
			if i := strings.IndexFunc(s, lexer.IsNewline); i >= 0 {
				return i
			}
			return len(s)
		}
	}
	return 0
}

// blockCommentRestLen measures s up to and including the end marker that
// closes an already matched begin marker. Block comments nest.
func (st *State) blockCommentRestLen(s string) int {
	pos := 0
	for pos < len(s) {
		if n, ok := st.matchBlockCommentMarker(s[pos:], false); ok {
			return pos + n
		}
		if n, ok := st.matchBlockCommentMarker(s[pos:], true); ok {
			pos += n
			pos += st.blockCommentRestLen(s[pos:])
			continue
		}
		_, size := utf8.DecodeRuneInString(s[pos:])
		pos += size
	}
	return pos
}

func (st *State) matchBlockCommentMarker(s string, begin bool) (int, bool) {
	for _, pair := range st.cfg.Delimiters.BlockComment {
		marker := pair.End
		if begin {
			marker = pair.Begin
		}
		if n, ok := traversal.Match(s, marker, traversal.SkipBlanks); ok {
			return n, true
		}
	}
	return 0, false
}

func (st *State) eatOperator(matched string) {
	st.AddingElement(source.StylingOperator, source.SpacingLeftRight, func() { st.cur.Advance(len(matched)) })
}

// EatSuffixSpecifierMarker eats a suffix specifier marker such as "->".
func (st *State) EatSuffixSpecifierMarker() (term.Name, bool) {
	for _, marker := range st.cfg.Delimiters.SuffixSpecifier {
		if st.TryEating(marker) {
			return marker, true
		}
	}
	return term.Name{}, false
}

func (st *State) isSuffixSpecifierMarkerNext() bool {
	for _, marker := range st.cfg.Delimiters.SuffixSpecifier {
		if st.IsNextName(marker) {
			return true
		}
	}
	return false
}
