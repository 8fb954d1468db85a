package term

import (
	"sort"
	"strings"
)

// Dictionary is a collection of terms addressable by identity or by name.
// On a name collision the last writer wins, subject to role precedence.
type Dictionary struct {
	contents  []*Term
	position  map[ID]int
	byID      map[ID]*Term
	byName    map[string]*Term
	exporting []*Term // sorted by ID
}

// NewDictionary creates a dictionary holding terms.
func NewDictionary(terms ...*Term) *Dictionary {
	d := &Dictionary{
		position: make(map[ID]int),
		byID:     make(map[ID]*Term),
		byName:   make(map[string]*Term),
	}
	d.Add(terms...)
	return d
}

// Len returns the number of distinct terms.
func (d *Dictionary) Len() int {
	return len(d.contents)
}

// Terms returns the terms in insertion order.
func (d *Dictionary) Terms() []*Term {
	return append([]*Term(nil), d.contents...)
}

// Exporting returns the exporting terms sorted by ID.
func (d *Dictionary) Exporting() []*Term {
	return d.exporting
}

// TermByID looks a term up by identity.
func (d *Dictionary) TermByID(id ID) *Term {
	return d.byID[id]
}

// TermNamed looks a term up by name.
func (d *Dictionary) TermNamed(name Name) *Term {
	return d.byName[name.Key()]
}

// TermNamedRole looks a term up by name, requiring a role.
func (d *Dictionary) TermNamedRole(name Name, role Role) *Term {
	t := d.byName[name.Key()]
	if t == nil || t.Role() != role {
		return nil
	}
	return t
}

// Add inserts terms, resolving conflicts with existing entries.
func (d *Dictionary) Add(terms ...*Term) {
	for _, t := range terms {
		if old, ok := d.byID[t.ID]; ok && old != t {
			winner := resolveConflict(old, t)
			d.byID[t.ID] = winner
			d.contents[d.position[t.ID]] = winner
			if winner != old && !old.Name.IsEmpty() {
				if key := old.Name.Key(); d.byName[key] == old {
					delete(d.byName, key)
				}
			}
		} else if !ok {
			d.byID[t.ID] = t
			d.position[t.ID] = len(d.contents)
			d.contents = append(d.contents, t)
		}
		winner := d.byID[t.ID]
		if !t.Name.IsEmpty() {
			key := t.Name.Key()
			if old, ok := d.byName[key]; ok && old != winner {
				d.byName[key] = resolveConflict(old, winner)
			} else {
				d.byName[key] = winner
			}
		}
		d.addExporting(winner)
	}
}

// Merge adds every term of other; other's entries win conflicts.
func (d *Dictionary) Merge(other *Dictionary) {
	if other == nil || other == d {
		return
	}
	d.Add(other.contents...)
}

func (d *Dictionary) addExporting(t *Term) {
	if !t.Exports {
		return
	}
	i := sort.Search(len(d.exporting), func(i int) bool {
		return !d.exporting[i].ID.Less(t.ID)
	})
	if i < len(d.exporting) && d.exporting[i].ID == t.ID {
		d.exporting[i] = t
		return
	}
	d.exporting = append(d.exporting, nil)
	copy(d.exporting[i+1:], d.exporting[i:])
	d.exporting[i] = t
}

// resolveConflict merges the sub-dictionaries of two colliding terms and
// picks the survivor: types beat properties and constants, properties beat
// constants, otherwise the new term wins.
func resolveConflict(old, new *Term) *Term {
	if old.dict != nil || new.dict != nil {
		merged := old.Dictionary()
		if new.dict != nil && new.dict != merged {
			merged.Merge(new.dict)
		}
		new.dict = merged
	}
	switch old.Role() {
	case RoleType:
		if new.Role() == RoleProperty || new.Role() == RoleConstant {
			return old
		}
	case RoleProperty:
		if new.Role() == RoleConstant {
			return old
		}
	}
	return new
}

func (d *Dictionary) String() string {
	parts := make([]string, 0, len(d.contents))
	for _, t := range d.contents {
		parts = append(parts, t.ID.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
