package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/btouchard/bushel/internal/compiler/source"
	"github.com/btouchard/bushel/internal/compiler/term"
)

// Kind is the closed set of predefined parse failures.
type Kind int

const (
	KindMissing Kind = iota
	KindInvalidResourceType
	KindTerminologyImportFailure
	KindQuotedResourceTerm
	KindInvalidString
	KindInvalidNumber
	KindUndefinedTerm
	KindMismatchedPipe
	KindInvalidTermRole
	KindWrongTermRoleForContext
)

var kindNames = [...]string{
	KindMissing:                  "missing",
	KindInvalidResourceType:      "invalid resource type",
	KindTerminologyImportFailure: "terminology import failure",
	KindQuotedResourceTerm:       "quoted resource term",
	KindInvalidString:            "invalid string",
	KindInvalidNumber:            "invalid number",
	KindUndefinedTerm:            "undefined term",
	KindMismatchedPipe:           "mismatched pipe",
	KindInvalidTermRole:          "invalid term role",
	KindWrongTermRoleForContext:  "wrong term role for context",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ExpectedKind names a source element the parser wanted but did not find.
type ExpectedKind int

const (
	ExpectedKeyword ExpectedKind = iota
	ExpectedTermName
	ExpectedResourceName
	ExpectedVariableName
	ExpectedFunctionName
	ExpectedExpression
	ExpectedLineBreak
	ExpectedRecordKeyBeforeKeyValueSeparatorOrEndMarkerAfter
	ExpectedListItemSeparatorOrEndMarker
	ExpectedRecordKeyValueSeparatorAfterKey
	ExpectedListAndRecordItemSeparatorOrKeyValueSeparatorOrEndMarker
	ExpectedRecordItemSeparatorOrEndMarker
	ExpectedTerm
	ExpectedListItem
	ExpectedRecordItem
	ExpectedRecordKey
	ExpectedTermRole
	ExpectedTermURIAndRawFormEndMarker
	ExpectedTermURI
	ExpectedWeaveDelimiter
	ExpectedWeaveDelimiterEndMarker
	ExpectedBlockBody
	ExpectedSpecifier
)

// Expected is one element of a "missing" error. Only the fields relevant
// to Kind are set.
type Expected struct {
	Kind              ExpectedKind
	Keyword           term.Name
	ItemSeparator     term.Name
	KeyValueSeparator term.Name
	EndMarker         term.Name
	Role              *term.Role
}

func Keyword(name term.Name) Expected { return Expected{Kind: ExpectedKeyword, Keyword: name} }

// TermOfRole expects a term with role; a nil role expects any term.
func TermOfRole(role *term.Role) Expected { return Expected{Kind: ExpectedTerm, Role: role} }

func RecordKeyBeforeKeyValueSeparatorOrEndMarkerAfter(keyValueSeparator, endMarker term.Name) Expected {
	return Expected{Kind: ExpectedRecordKeyBeforeKeyValueSeparatorOrEndMarkerAfter, KeyValueSeparator: keyValueSeparator, EndMarker: endMarker}
}

func ListItemSeparatorOrEndMarker(itemSeparator, endMarker term.Name) Expected {
	return Expected{Kind: ExpectedListItemSeparatorOrEndMarker, ItemSeparator: itemSeparator, EndMarker: endMarker}
}

func RecordKeyValueSeparatorAfterKey(keyValueSeparator term.Name) Expected {
	return Expected{Kind: ExpectedRecordKeyValueSeparatorAfterKey, KeyValueSeparator: keyValueSeparator}
}

func ListAndRecordItemSeparatorOrKeyValueSeparatorOrEndMarker(itemSeparator, keyValueSeparator, endMarker term.Name) Expected {
	return Expected{
		Kind:              ExpectedListAndRecordItemSeparatorOrKeyValueSeparatorOrEndMarker,
		ItemSeparator:     itemSeparator,
		KeyValueSeparator: keyValueSeparator,
		EndMarker:         endMarker,
	}
}

func RecordItemSeparatorOrEndMarker(itemSeparator, endMarker term.Name) Expected {
	return Expected{Kind: ExpectedRecordItemSeparatorOrEndMarker, ItemSeparator: itemSeparator, EndMarker: endMarker}
}

// Plain expected elements without parameters.
var (
	TermName                   = Expected{Kind: ExpectedTermName}
	ResourceName               = Expected{Kind: ExpectedResourceName}
	VariableName               = Expected{Kind: ExpectedVariableName}
	FunctionName               = Expected{Kind: ExpectedFunctionName}
	Expression                 = Expected{Kind: ExpectedExpression}
	LineBreak                  = Expected{Kind: ExpectedLineBreak}
	ListItem                   = Expected{Kind: ExpectedListItem}
	RecordItem                 = Expected{Kind: ExpectedRecordItem}
	RecordKey                  = Expected{Kind: ExpectedRecordKey}
	TermRole                   = Expected{Kind: ExpectedTermRole}
	TermURIAndRawFormEndMarker = Expected{Kind: ExpectedTermURIAndRawFormEndMarker}
	TermURI                    = Expected{Kind: ExpectedTermURI}
	WeaveDelimiter             = Expected{Kind: ExpectedWeaveDelimiter}
	WeaveDelimiterEndMarker    = Expected{Kind: ExpectedWeaveDelimiterEndMarker}
	BlockBody                  = Expected{Kind: ExpectedBlockBody}
	Specifier                  = Expected{Kind: ExpectedSpecifier}
)

// ContextKind qualifies where an expected element was missing.
type ContextKind int

const (
	ContextNone ContextKind = iota
	ContextAdHoc
	ContextAfterKeyword
	ContextAfterInfixOperator
	ContextAfterPrefixOperator
	ContextAfterPostfixOperator
	ContextAfterSequencedExpression
	ContextToBeginBlock
)

// Context is an optional qualifier of a missing-element error. The zero
// value means no context.
type Context struct {
	Kind    ContextKind
	Keyword term.Name
	Text    string
}

func AdHoc(text string) Context           { return Context{Kind: ContextAdHoc, Text: text} }
func AfterKeyword(name term.Name) Context { return Context{Kind: ContextAfterKeyword, Keyword: name} }
func ToBeginBlock(block string) Context   { return Context{Kind: ContextToBeginBlock, Text: block} }

var (
	NoContext                = Context{}
	AfterInfixOperator       = Context{Kind: ContextAfterInfixOperator}
	AfterPrefixOperator      = Context{Kind: ContextAfterPrefixOperator}
	AfterPostfixOperator     = Context{Kind: ContextAfterPostfixOperator}
	AfterSequencedExpression = Context{Kind: ContextAfterSequencedExpression}
)

// Located is implemented by every error a parse can end with.
type Located interface {
	error
	SourceLocation() source.Location
	SetSourceLocation(source.Location)
	SourceFixes() []Fix
}

// ParseError is a predefined parse failure.
type ParseError struct {
	Kind     Kind
	Expected []Expected
	Context  Context
	// ValidTypes is set for KindInvalidResourceType.
	ValidTypes []term.Name
	// Cause is set for KindTerminologyImportFailure.
	Cause    error
	Location source.Location
	Fixes    []Fix
}

// New creates a parse error of a parameterless kind.
func New(kind Kind, loc source.Location, fixes ...Fix) *ParseError {
	return &ParseError{Kind: kind, Location: loc, Fixes: fixes}
}

// Missing creates a missing-element error.
func Missing(expected []Expected, ctx Context, loc source.Location, fixes ...Fix) *ParseError {
	return &ParseError{Kind: KindMissing, Expected: expected, Context: ctx, Location: loc, Fixes: fixes}
}

// InvalidResourceType lists the resource types that would have been valid.
func InvalidResourceType(validTypes []term.Name, loc source.Location) *ParseError {
	return &ParseError{Kind: KindInvalidResourceType, ValidTypes: validTypes, Location: loc}
}

// ImportFailure wraps a resource resolution error.
func ImportFailure(cause error, loc source.Location) *ParseError {
	return &ParseError{Kind: KindTerminologyImportFailure, Cause: cause, Location: loc}
}

// ResourceNotFound is the usual cause of an import failure: nothing
// answered a require of Kind and Name.
type ResourceNotFound struct {
	Kind string
	Name string
}

func (e *ResourceNotFound) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *ParseError) Error() string {
	return DefaultFormatter{}.Message(e)
}

func (e *ParseError) Unwrap() error { return e.Cause }

func (e *ParseError) SourceLocation() source.Location       { return e.Location }
func (e *ParseError) SetSourceLocation(loc source.Location) { e.Location = loc }
func (e *ParseError) SourceFixes() []Fix                    { return e.Fixes }

// AdHocParseError is a one-off failure raised by a language module with its
// message already formatted.
type AdHocParseError struct {
	Message  string
	Location source.Location
	Fixes    []Fix
}

func NewAdHoc(message string, loc source.Location, fixes ...Fix) *AdHocParseError {
	return &AdHocParseError{Message: message, Location: loc, Fixes: fixes}
}

func (e *AdHocParseError) Error() string                         { return e.Message }
func (e *AdHocParseError) SourceLocation() source.Location       { return e.Location }
func (e *AdHocParseError) SetSourceLocation(loc source.Location) { e.Location = loc }
func (e *AdHocParseError) SourceFixes() []Fix                    { return e.Fixes }

// FormattedParseError is a parse error passed through a MessageFormatter.
type FormattedParseError struct {
	Err     Located
	Message string
}

func (e *FormattedParseError) Error() string                         { return e.Message }
func (e *FormattedParseError) Unwrap() error                         { return e.Err }
func (e *FormattedParseError) SourceLocation() source.Location       { return e.Err.SourceLocation() }
func (e *FormattedParseError) SetSourceLocation(loc source.Location) { e.Err.SetSourceLocation(loc) }
func (e *FormattedParseError) SourceFixes() []Fix                    { return e.Err.SourceFixes() }

// MessageFormatter turns predefined parse errors into user-facing text.
type MessageFormatter interface {
	Message(err *ParseError) string
}

// Format attaches a message to err. Ad hoc and already formatted errors
// keep their message.
func Format(f MessageFormatter, err Located) *FormattedParseError {
	var formatted *FormattedParseError
	if stderrors.As(err, &formatted) {
		return formatted
	}
	if pe, ok := err.(*ParseError); ok {
		if f == nil {
			f = DefaultFormatter{}
		}
		return &FormattedParseError{Err: pe, Message: f.Message(pe)}
	}
	return &FormattedParseError{Err: err, Message: err.Error()}
}

// DefaultFormatter produces terse, language-neutral messages.
type DefaultFormatter struct{}

func (DefaultFormatter) Message(e *ParseError) string {
	switch e.Kind {
	case KindMissing:
		parts := make([]string, len(e.Expected))
		for i, x := range e.Expected {
			parts[i] = x.String()
		}
		msg := "missing " + strings.Join(parts, " or ")
		if ctx := e.Context.String(); ctx != "" {
			msg += " " + ctx
		}
		return msg
	case KindInvalidResourceType:
		names := make([]string, len(e.ValidTypes))
		for i, n := range e.ValidTypes {
			names[i] = n.Normalized()
		}
		return "invalid resource type (valid: " + strings.Join(names, ", ") + ")"
	case KindTerminologyImportFailure:
		return fmt.Sprintf("terminology import failure: %v", e.Cause)
	}
	return e.Kind.String()
}

func (x Expected) String() string {
	switch x.Kind {
	case ExpectedKeyword:
		return "‘" + x.Keyword.String() + "’"
	case ExpectedTermName:
		return "term name"
	case ExpectedResourceName:
		return "resource name"
	case ExpectedVariableName:
		return "variable name"
	case ExpectedFunctionName:
		return "function name"
	case ExpectedExpression:
		return "expression"
	case ExpectedLineBreak:
		return "line break"
	case ExpectedRecordKeyBeforeKeyValueSeparatorOrEndMarkerAfter:
		return fmt.Sprintf("record key before ‘%s’ or ‘%s’ after", x.KeyValueSeparator, x.EndMarker)
	case ExpectedListItemSeparatorOrEndMarker:
		return fmt.Sprintf("‘%s’ or ‘%s’", x.ItemSeparator, x.EndMarker)
	case ExpectedRecordKeyValueSeparatorAfterKey:
		return fmt.Sprintf("‘%s’ after record key", x.KeyValueSeparator)
	case ExpectedListAndRecordItemSeparatorOrKeyValueSeparatorOrEndMarker:
		return fmt.Sprintf("‘%s’, ‘%s’ or ‘%s’", x.ItemSeparator, x.KeyValueSeparator, x.EndMarker)
	case ExpectedRecordItemSeparatorOrEndMarker:
		return fmt.Sprintf("‘%s’ or ‘%s’", x.ItemSeparator, x.EndMarker)
	case ExpectedTerm:
		if x.Role != nil {
			return x.Role.String()
		}
		return "term"
	case ExpectedListItem:
		return "list item"
	case ExpectedRecordItem:
		return "record item"
	case ExpectedRecordKey:
		return "record key"
	case ExpectedTermRole:
		return "term role"
	case ExpectedTermURIAndRawFormEndMarker:
		return "term URI and raw form end marker"
	case ExpectedTermURI:
		return "term URI"
	case ExpectedWeaveDelimiter:
		return "weave delimiter"
	case ExpectedWeaveDelimiterEndMarker:
		return "weave delimiter end marker"
	case ExpectedBlockBody:
		return "block body"
	case ExpectedSpecifier:
		return "specifier"
	}
	return fmt.Sprintf("element(%d)", int(x.Kind))
}

func (c Context) String() string {
	switch c.Kind {
	case ContextAdHoc:
		return c.Text
	case ContextAfterKeyword:
		return "after ‘" + c.Keyword.String() + "’"
	case ContextAfterInfixOperator:
		return "after infix operator"
	case ContextAfterPrefixOperator:
		return "after prefix operator"
	case ContextAfterPostfixOperator:
		return "after postfix operator"
	case ContextAfterSequencedExpression:
		return "after sequenced expression"
	case ContextToBeginBlock:
		return "to begin " + c.Text
	}
	return ""
}
