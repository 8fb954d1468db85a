package english

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/btouchard/bushel/internal/compiler/errors"
	"github.com/btouchard/bushel/internal/compiler/lexer"
)

// MessageFormatter words parse errors in English.
type MessageFormatter struct{}

func (MessageFormatter) Message(e *errors.ParseError) string {
	switch e.Kind {
	case errors.KindMissing:
		parts := make([]string, len(e.Expected))
		for i, x := range e.Expected {
			parts[i] = expected(x)
		}
		msg := "Expected " + strings.Join(parts, " or ")
		if ctx := context(e.Context); ctx != "" {
			msg += " " + ctx
		}
		return msg
	case errors.KindInvalidResourceType:
		names := make([]string, len(e.ValidTypes))
		for i, n := range e.ValidTypes {
			names[i] = n.Normalized()
		}
		return "Invalid resource type; valid types are: " + strings.Join(names, ", ")
	case errors.KindTerminologyImportFailure:
		var nf *errors.ResourceNotFound
		if stderrors.As(e.Cause, &nf) {
			return notFound(nf)
		}
		return fmt.Sprintf("Failed to import terminology: %v", e.Cause)
	case errors.KindQuotedResourceTerm:
		return "This expression binds a resource term, remove the quotation marks"
	case errors.KindInvalidString:
		return "Failed to parse string"
	case errors.KindInvalidNumber:
		return "Failed to parse number"
	case errors.KindUndefinedTerm:
		return "No such term is defined"
	case errors.KindMismatchedPipe:
		return "Mismatched | character"
	case errors.KindInvalidTermRole:
		return "Invalid term role"
	case errors.KindWrongTermRoleForContext:
		return "Term role is unsuitable for this context"
	}
	return errors.DefaultFormatter{}.Message(e)
}

func notFound(nf *errors.ResourceNotFound) string {
	switch nf.Kind {
	case ResourceApp:
		return "Can't find required app " + nf.Name
	case ResourceAppByID:
		return "Can't find required app with ID " + nf.Name
	case ResourceLibrary:
		return "Can't find required library " + nf.Name
	case ResourceSystem:
		return "Can't find the system vocabulary"
	}
	return fmt.Sprintf("Can't find required %s %s", nf.Kind, nf.Name)
}

func expected(x errors.Expected) string {
	switch x.Kind {
	case errors.ExpectedKeyword:
		return "‘" + x.Keyword.String() + "’"
	case errors.ExpectedRecordKeyBeforeKeyValueSeparatorOrEndMarkerAfter:
		return fmt.Sprintf("key expression before ‘%s’, or ‘%s’ after for an empty record", x.KeyValueSeparator, x.EndMarker)
	case errors.ExpectedListItemSeparatorOrEndMarker:
		return fmt.Sprintf("‘%s’ to end list or ‘%s’ to separate additional items", x.EndMarker, x.ItemSeparator)
	case errors.ExpectedRecordKeyValueSeparatorAfterKey:
		return fmt.Sprintf("‘%s’ after key in record", x.KeyValueSeparator)
	case errors.ExpectedListAndRecordItemSeparatorOrKeyValueSeparatorOrEndMarker:
		return fmt.Sprintf("‘%s’ to end list, ‘%s’ to separate additional items or ‘%s’ to make a record", x.EndMarker, x.ItemSeparator, x.KeyValueSeparator)
	case errors.ExpectedRecordItemSeparatorOrEndMarker:
		return fmt.Sprintf("‘%s’ to end record or ‘%s’ to separate additional items", x.EndMarker, x.ItemSeparator)
	case errors.ExpectedTermURIAndRawFormEndMarker:
		return "term URI followed by ‘]’"
	case errors.ExpectedWeaveDelimiterEndMarker:
		return "‘)’ to end weave delimiter"
	case errors.ExpectedBlockBody:
		return "block body (‘do’)"
	}
	return x.String()
}

func context(c errors.Context) string {
	if c.Kind == errors.ContextAfterKeyword {
		return "after ‘" + c.Keyword.String() + "’"
	}
	return c.String()
}

// Render formats err against src in the style of a compiler diagnostic: the
// position and message, the offending line between its neighbours, a caret
// under the error and one line per suggested fix. Errors without a source
// location are returned as their message.
func Render(src, file string, err error) string {
	var located errors.Located
	if !stderrors.As(err, &located) {
		return err.Error()
	}
	loc := located.SourceLocation().Clamp(len(src))
	pos := loc.Position(src, file)
	start, end := loc.Columns(src)

	lines := splitLines(src)

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", pos, err.Error())
	if pos.Line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", pos.Line-1, lines[pos.Line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", pos.Line, lines[pos.Line-1])
	fmt.Fprintf(&b, "     | %s%s\n", caretPadding(lines[pos.Line-1], start-1), strings.Repeat("^", max(end-start, 1)))
	if pos.Line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", pos.Line+1, lines[pos.Line])
	}
	for _, f := range located.SourceFixes() {
		fmt.Fprintf(&b, "  fix: %s\n", f.DescribeInContext(src))
	}
	return b.String()
}

func splitLines(src string) []string {
	var lines []string
	for {
		n := lexer.LineEnd(src)
		lines = append(lines, src[:n])
		if n == len(src) {
			return lines
		}
		src = src[n+lexer.LineBreakLen(src[n:]):]
	}
}

// caretPadding keeps tabs so the caret lines up under the first n runes of
// line.
func caretPadding(line string, n int) string {
	var b strings.Builder
	for _, r := range line {
		if n == 0 {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteByte(' ')
		}
		n--
	}
	return b.String()
}
