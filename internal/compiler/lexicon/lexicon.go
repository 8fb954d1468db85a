package lexicon

import (
	"fmt"
	"strings"

	"github.com/btouchard/bushel/internal/compiler/term"
	"github.com/google/uuid"
)

// RootURI is the URI of the default root term.
var RootURI = term.IDURI("Script")

// DefaultRoot creates the bottom frame used by a fresh parse.
func DefaultRoot() *term.Term {
	return term.NewWithID(term.ID{Role: term.RoleVariable, URI: RootURI}, term.NewName("Script"), false)
}

// Lexicon is a stack of term dictionaries resolving names innermost first.
// The bottom frame is never popped.
type Lexicon struct {
	stack []*term.Term
	pool  *term.Pool
}

// New creates a lexicon with root as its bottom frame. A nil root uses
// DefaultRoot, a nil pool uses term.DefaultPool.
func New(root *term.Term, pool *term.Pool) *Lexicon {
	if root == nil {
		root = DefaultRoot()
	}
	if pool == nil {
		pool = term.DefaultPool
	}
	pool.Add(root)
	return &Lexicon{stack: []*term.Term{root}, pool: pool}
}

// Pool returns the term pool new terms are registered in.
func (l *Lexicon) Pool() *term.Pool { return l.pool }

// Depth returns the number of frames, root included.
func (l *Lexicon) Depth() int { return len(l.stack) }

// Top returns the innermost frame.
func (l *Lexicon) Top() *term.Term { return l.stack[len(l.stack)-1] }

// Bottom returns the root frame.
func (l *Lexicon) Bottom() *term.Term { return l.stack[0] }

// Term looks up a term by name.
func (l *Lexicon) Term(name term.Name) *term.Term {
	return l.find(func(d *term.Dictionary) *term.Term { return d.TermNamed(name) })
}

// TermWithRole looks up a term by name, requiring a role.
func (l *Lexicon) TermWithRole(name term.Name, role term.Role) *term.Term {
	return l.find(func(d *term.Dictionary) *term.Term { return d.TermNamedRole(name, role) })
}

// TermByID looks up a term by identity.
func (l *Lexicon) TermByID(id term.ID) *term.Term {
	return l.find(func(d *term.Dictionary) *term.Term { return d.TermByID(id) })
}

func (l *Lexicon) find(extract func(*term.Dictionary) *term.Term) *term.Term {
	for i := len(l.stack) - 1; i >= 0; i-- {
		if t := lookIn(l.stack[i], extract); t != nil {
			return t
		}
	}
	exporting := l.exporting()
	for i := len(exporting) - 1; i >= 0; i-- {
		if t := lookIn(exporting[i], extract); t != nil {
			return t
		}
	}
	return nil
}

func lookIn(container *term.Term, extract func(*term.Dictionary) *term.Term) *term.Term {
	if !container.HasDictionary() {
		return nil
	}
	return extract(container.Dictionary())
}

func (l *Lexicon) exporting() []*term.Term {
	var terms []*term.Term
	for _, frame := range l.stack {
		if frame.HasDictionary() {
			terms = append(terms, frame.Dictionary().Exporting()...)
		}
	}
	return terms
}

// Terms returns every term reachable by name, innermost frame first.
// Shadowed terms are included.
func (l *Lexicon) Terms() []*term.Term {
	var out []*term.Term
	for i := len(l.stack) - 1; i >= 0; i-- {
		if l.stack[i].HasDictionary() {
			out = append(out, l.stack[i].Dictionary().Terms()...)
		}
	}
	for _, t := range l.exporting() {
		if t.HasDictionary() {
			out = append(out, t.Dictionary().Terms()...)
		}
	}
	return out
}

// Add inserts terms into the top frame and registers them in the pool.
func (l *Lexicon) Add(terms ...*term.Term) {
	l.Top().Dictionary().Add(terms...)
	l.pool.Add(terms...)
}

// Push makes t's dictionary the innermost frame.
func (l *Lexicon) Push(t *term.Term) {
	l.stack = append(l.stack, t)
}

// AddPush adds t to the top frame, then pushes it.
func (l *Lexicon) AddPush(t *term.Term) {
	l.Add(t)
	l.Push(t)
}

// PushUnnamedDictionary pushes an anonymous, non-exporting scope.
func (l *Lexicon) PushUnnamedDictionary() {
	t := term.New(term.RoleDictionary, l.MakeUniqueURI(), term.Name{})
	t.Exports = false
	l.AddPush(t)
}

// PushDictionaryTerm pushes the dictionary term with uri, defining it in the
// top frame when it does not exist yet.
func (l *Lexicon) PushDictionaryTerm(uri term.URI) {
	id := term.ID{Role: term.RoleDictionary, URI: uri}
	t := l.TermByID(id)
	if t == nil {
		t = term.NewWithID(id, term.Name{}, false)
	}
	l.AddPush(t)
}

// Pop removes the innermost frame. The root frame stays.
func (l *Lexicon) Pop() {
	if len(l.stack) > 1 {
		l.stack = l.stack[:len(l.stack)-1]
	}
}

// LookUpOrDefine returns the reachable term with name and role, merging dict
// into it, or defines a new one in the top frame.
func (l *Lexicon) LookUpOrDefine(role term.Role, name term.Name, dict *term.Dictionary) *term.Term {
	if existing := l.TermWithRole(name, role); existing != nil {
		if dict != nil && dict.Len() > 0 {
			existing.Dictionary().Merge(dict)
		}
		return existing
	}
	t := term.New(role, l.MakeIDURI(name), name)
	if dict != nil {
		t.SetDictionary(dict)
	}
	l.Add(t)
	return t
}

// MakeIDURI builds an id URI for a term named name residing in the top frame.
func (l *Lexicon) MakeIDURI(name term.Name) term.URI {
	top := l.Top().URI()
	var components []string
	if c := top.Components(); c != nil {
		components = append(components, c...)
	} else {
		components = append(components, top.String())
	}
	return term.IDURI(append(components, name.Normalized())...)
}

// MakeUniqueURI builds an id URI that no other term shares.
func (l *Lexicon) MakeUniqueURI() term.URI {
	return l.MakeIDURI(term.NewName(uuid.NewString()))
}

// Describe lists the frames innermost first.
func (l *Lexicon) Describe() string {
	var sb strings.Builder
	for i := len(l.stack) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%d: %s\n", len(l.stack)-i, l.stack[i].Describe())
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
