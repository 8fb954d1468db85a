package source

import (
	"fmt"
	"sort"
)

// Styling is the highlighting category of a terminal.
type Styling int

const (
	StylingKeyword Styling = iota
	StylingOperator
	StylingDictionary
	StylingType
	StylingProperty
	StylingConstant
	StylingCommand
	StylingParameter
	StylingVariable
	StylingResource
	StylingComment
	StylingString
	StylingNumber
	StylingWeave
)

var stylingNames = [...]string{
	StylingKeyword:    "keyword",
	StylingOperator:   "operator",
	StylingDictionary: "dictionary",
	StylingType:       "type",
	StylingProperty:   "property",
	StylingConstant:   "constant",
	StylingCommand:    "command",
	StylingParameter:  "parameter",
	StylingVariable:   "variable",
	StylingResource:   "resource",
	StylingComment:    "comment",
	StylingString:     "string",
	StylingNumber:     "number",
	StylingWeave:      "weave",
}

func (s Styling) String() string {
	if int(s) >= 0 && int(s) < len(stylingNames) {
		return stylingNames[s]
	}
	return fmt.Sprintf("styling(%d)", int(s))
}

// Spacing tells a formatter where a terminal wants surrounding whitespace.
type Spacing int

const (
	SpacingNone Spacing = iota
	SpacingLeft
	SpacingRight
	SpacingLeftRight
)

func (s Spacing) String() string {
	switch s {
	case SpacingLeft:
		return "left"
	case SpacingRight:
		return "right"
	case SpacingLeftRight:
		return "left-right"
	}
	return "none"
}

// ElementKind distinguishes terminals from indentation markers.
type ElementKind int

const (
	KindTerminal ElementKind = iota
	KindIndentation
)

// Element is one source annotation. Elements are comparable so identical
// annotations collapse in a Set.
type Element struct {
	Kind     ElementKind
	Location Location
	Text     string
	Styling  Styling
	Spacing  Spacing
	Level    int
}

// Terminal annotates a consumed span.
func Terminal(text string, loc Location, styling Styling, spacing Spacing) Element {
	return Element{Kind: KindTerminal, Location: loc, Text: text, Styling: styling, Spacing: spacing}
}

// Indentation marks the start of a statement at a nesting level.
func Indentation(level int, loc Location) Element {
	return Element{Kind: KindIndentation, Location: loc, Level: level}
}

func (e Element) String() string {
	if e.Kind == KindIndentation {
		return fmt.Sprintf("%s indentation %d", e.Location, e.Level)
	}
	return fmt.Sprintf("%s %s %q", e.Location, e.Styling, e.Text)
}

type change struct {
	element Element
	added   bool
}

// Set is the annotation collector. Every change is journaled so a
// speculative branch can be undone with Rollback.
type Set struct {
	members map[Element]struct{}
	journal []change
}

func NewSet() *Set {
	return &Set{members: make(map[Element]struct{})}
}

// Insert adds e. Re-inserting an existing element is a no-op.
func (s *Set) Insert(e Element) bool {
	if _, ok := s.members[e]; ok {
		return false
	}
	s.members[e] = struct{}{}
	s.journal = append(s.journal, change{element: e, added: true})
	return true
}

// Remove deletes e if present.
func (s *Set) Remove(e Element) bool {
	if _, ok := s.members[e]; !ok {
		return false
	}
	delete(s.members, e)
	s.journal = append(s.journal, change{element: e})
	return true
}

// Contains reports whether e is in the set.
func (s *Set) Contains(e Element) bool {
	_, ok := s.members[e]
	return ok
}

// Len returns the number of elements.
func (s *Set) Len() int { return len(s.members) }

// Mark returns a checkpoint for Rollback.
func (s *Set) Mark() int { return len(s.journal) }

// Rollback undoes every change made since mark.
func (s *Set) Rollback(mark int) {
	for i := len(s.journal) - 1; i >= mark; i-- {
		c := s.journal[i]
		if c.added {
			delete(s.members, c.element)
		} else {
			s.members[c.element] = struct{}{}
		}
	}
	if mark < len(s.journal) {
		s.journal = s.journal[:mark]
	}
}

// Reset empties the set and its journal.
func (s *Set) Reset() {
	s.members = make(map[Element]struct{})
	s.journal = nil
}

// Elements returns every element ordered by location; at equal locations
// indentation comes before terminals.
func (s *Set) Elements() []Element {
	out := make([]Element, 0, len(s.members))
	for e := range s.members {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Location.Lo != b.Location.Lo {
			return a.Location.Lo < b.Location.Lo
		}
		if a.Kind != b.Kind {
			return a.Kind == KindIndentation
		}
		if a.Location.Hi != b.Location.Hi {
			return a.Location.Hi < b.Location.Hi
		}
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		return a.Text < b.Text
	})
	return out
}

// Terminals returns the terminal elements in source order.
func (s *Set) Terminals() []Element {
	var out []Element
	for _, e := range s.Elements() {
		if e.Kind == KindTerminal {
			out = append(out, e)
		}
	}
	return out
}

// Indentations returns the indentation markers in source order.
func (s *Set) Indentations() []Element {
	var out []Element
	for _, e := range s.Elements() {
		if e.Kind == KindIndentation {
			out = append(out, e)
		}
	}
	return out
}
