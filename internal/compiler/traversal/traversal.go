// Package traversal finds the longest vocabulary name at the start of a
// source text. Tables are word tries built once per parse.
package traversal

import (
	"unicode"
	"unicode/utf8"

	"github.com/btouchard/bushel/internal/compiler/term"
)

// SkipFunc returns how many leading bytes of s may be skipped between two
// words of a name.
type SkipFunc func(s string) int

type node struct {
	children map[string]*node
	name     *term.Name
}

// Table is a word trie over a list of names.
type Table struct {
	root  *node
	names []term.Name
}

// Build creates a table. Earlier names win over later identical ones.
func Build(names []term.Name) *Table {
	t := &Table{root: &node{}}
	for _, n := range names {
		t.insert(n)
	}
	return t
}

func (t *Table) insert(n term.Name) {
	if n.IsEmpty() {
		return
	}
	cur := t.root
	for _, w := range n.Words {
		if cur.children == nil {
			cur.children = make(map[string]*node)
		}
		next, ok := cur.children[w]
		if !ok {
			next = &node{}
			cur.children[w] = next
		}
		cur = next
	}
	if cur.name == nil {
		name := n
		cur.name = &name
		t.names = append(t.names, n)
	}
}

// Len returns the number of distinct names.
func (t *Table) Len() int { return len(t.names) }

// Names returns the distinct names in priority order.
func (t *Table) Names() []term.Name { return t.names }

// Find returns the longest name whose words begin src. The match must start
// at the first byte of src; between words skip decides what is ignored.
// A nil skip ignores horizontal whitespace.
func (t *Table) Find(src string, skip SkipFunc) (matched string, name term.Name, ok bool) {
	if skip == nil {
		skip = SkipBlanks
	}
	cur := t.root
	pos, end := 0, 0
	var best *term.Name
	for first := true; ; first = false {
		at := pos
		if !first {
			at += skip(src[pos:])
		}
		n := WordLen(src[at:])
		if n == 0 {
			break
		}
		next := cur.children[src[at:at+n]]
		if next == nil {
			break
		}
		cur = next
		pos = at + n
		if cur.name != nil {
			best, end = cur.name, pos
		}
	}
	if best == nil {
		return "", term.Name{}, false
	}
	return src[:end], *best, true
}

// Match reports how many bytes of src the words of name occupy, if src
// begins with them.
func Match(src string, name term.Name, skip SkipFunc) (int, bool) {
	if name.IsEmpty() {
		return 0, false
	}
	if skip == nil {
		skip = SkipBlanks
	}
	pos := 0
	for i, w := range name.Words {
		at := pos
		if i > 0 {
			at += skip(src[pos:])
		}
		n := WordLen(src[at:])
		if n == 0 || src[at:at+n] != w {
			return 0, false
		}
		pos = at + n
	}
	return pos, true
}

// WordLen returns the byte length of the word at the start of s, or 0 when
// s is empty or starts with whitespace.
func WordLen(s string) int {
	for i, r := range s {
		if unicode.IsSpace(r) {
			return i
		}
		if term.IsWordBreakingPunctuation(r) {
			if i == 0 {
				return utf8.RuneLen(r)
			}
			return i
		}
	}
	return len(s)
}

// SkipBlanks skips spaces and tabs.
func SkipBlanks(s string) int {
	for i, r := range s {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return len(s)
}
