package parser

import (
	"log/slog"
	"sort"

	"github.com/btouchard/bushel/internal/compiler/ast"
	"github.com/btouchard/bushel/internal/compiler/errors"
	"github.com/btouchard/bushel/internal/compiler/source"
	"github.com/btouchard/bushel/internal/compiler/term"
)

// KeywordHandler parses the construct introduced by a keyword. The keyword
// itself has already been eaten. A nil kind produces no expression.
type KeywordHandler func(st *State) (ast.Kind, error)

// TermHandler parses the construct introduced by a type or command term.
type TermHandler func(st *State, t *term.Term) (ast.Kind, error)

// PostprocessFunc may rewrite a freshly parsed primary, as in "x of y". It
// is called repeatedly until it returns a nil kind.
type PostprocessFunc func(st *State, primary *ast.Expression) (ast.Kind, error)

// ResourceType is one resource type accepted after the require keyword.
type ResourceType struct {
	Name term.Name
	// HasName is false for types like "system" that name themselves.
	HasName    bool
	StoppingAt []string
	Kind       string
}

// Pair is a begin/end delimiter pair.
type Pair struct {
	Begin, End term.Name
}

// ListDelimiter describes list literals.
type ListDelimiter struct {
	Begin, End     term.Name
	ItemSeparators []term.Name
}

// RecordDelimiter describes record literals, or literals that may be
// either a list or a record.
type RecordDelimiter struct {
	Begin, End         term.Name
	ItemSeparators     []term.Name
	KeyValueSeparators []term.Name
}

type Delimiters struct {
	SuffixSpecifier []term.Name
	String          []Pair
	Grouping        []Pair
	List            []ListDelimiter
	Record          []RecordDelimiter
	ListAndRecord   []RecordDelimiter
	LineComment     []term.Name
	BlockComment    []Pair
}

// Operators map operator spellings to operations.
type Operators struct {
	Prefix  map[string]ast.UnaryOperation
	Postfix map[string]ast.UnaryOperation
	Infix   map[string]ast.BinaryOperator
}

// ResourceRequest is what a require expression asks the resolver for.
type ResourceRequest struct {
	Type ResourceType
	Name term.Name
	// Ignoring holds the canonical paths of libraries already being
	// imported by this parse.
	Ignoring map[string]bool
	Location source.Location
}

// Resolver loads the term of a required resource.
type Resolver interface {
	Resolve(req ResourceRequest) (*term.Term, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(req ResourceRequest) (*term.Term, error)

func (f ResolverFunc) Resolve(req ResourceRequest) (*term.Term, error) { return f(req) }

// Config is everything a language module provides to the parser.
type Config struct {
	DefaultEndKeyword term.Name
	Keywords          map[string]KeywordHandler
	ResourceTypes     []ResourceType
	Operators         Operators
	Delimiters        Delimiters

	TypeHandler    TermHandler
	CommandHandler TermHandler
	Postprocess    PostprocessFunc

	// Core holds built-in vocabulary. It is added to the root frame and
	// resolved through its exported dictionary.
	Core      *term.Term
	Resolver  Resolver
	Formatter errors.MessageFormatter
	Logger    *slog.Logger
}

func (c *Config) withDefaults() {
	if c.DefaultEndKeyword.IsEmpty() {
		c.DefaultEndKeyword = term.NewName("end")
	}
	if c.TypeHandler == nil {
		c.TypeHandler = func(_ *State, t *term.Term) (ast.Kind, error) { return &ast.Type{Term: t}, nil }
	}
	if c.CommandHandler == nil {
		c.CommandHandler = func(_ *State, t *term.Term) (ast.Kind, error) { return &ast.Command{Term: t}, nil }
	}
	if c.Postprocess == nil {
		c.Postprocess = func(*State, *ast.Expression) (ast.Kind, error) { return nil, nil }
	}
	if c.Resolver == nil {
		c.Resolver = ResolverFunc(bareResource)
	}
	if c.Formatter == nil {
		c.Formatter = errors.DefaultFormatter{}
	}
}

// bareResource creates a resource term without vocabulary.
func bareResource(req ResourceRequest) (*term.Term, error) {
	t := term.New(term.RoleResource, term.ResURI(req.Type.Kind+":"+req.Name.Normalized()), req.Name)
	t.Resource = &term.Resource{Kind: req.Type.Kind, Name: req.Name.Normalized()}
	return t, nil
}

// sortedNames returns the names of a spelling-keyed table in a stable order.
func sortedNames[V any](m map[string]V) ([]term.Name, map[string]string) {
	spellings := make([]string, 0, len(m))
	for s := range m {
		spellings = append(spellings, s)
	}
	sort.Strings(spellings)
	names := make([]term.Name, 0, len(spellings))
	byKey := make(map[string]string, len(spellings))
	for _, s := range spellings {
		n := term.NameOf(term.Words(s)...)
		if _, dup := byKey[n.Key()]; dup {
			continue
		}
		byKey[n.Key()] = s
		names = append(names, n)
	}
	return names, byKey
}
