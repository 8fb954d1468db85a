package term

import (
	"fmt"
	"strings"
)

// Role is the syntactic role of a term.
type Role int

const (
	RoleDictionary Role = iota
	RoleType
	RoleProperty
	RoleConstant
	RoleCommand
	RoleParameter
	RoleVariable
	RoleResource
)

var roleNames = map[Role]string{
	RoleDictionary: "dictionary",
	RoleType:       "type",
	RoleProperty:   "property",
	RoleConstant:   "constant",
	RoleCommand:    "command",
	RoleParameter:  "parameter",
	RoleVariable:   "variable",
	RoleResource:   "resource",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// ParseRole maps a role name as written in raw-form terms to its Role.
func ParseRole(s string) (Role, bool) {
	for r, name := range roleNames {
		if name == s {
			return r, true
		}
	}
	return 0, false
}

// URI schemes.
const (
	SchemeID   = "id"
	SchemeRes  = "res"
	SchemeAE4  = "ae4"
	SchemeAE8  = "ae8"
	SchemeAE12 = "ae12"
	SchemeASID = "asid"
)

// URI is the semantic identity of a term, independent of its display name.
type URI struct {
	Scheme string
	Name   string
}

// IDURI builds an id-scheme URI from pathname components.
func IDURI(components ...string) URI {
	return URI{Scheme: SchemeID, Name: strings.Join(components, "/")}
}

// ResURI builds a res-scheme URI.
func ResURI(name string) URI {
	return URI{Scheme: SchemeRes, Name: name}
}

// ParseURI parses "scheme:name". A string without a known scheme is
// treated as an id pathname.
func ParseURI(s string) (URI, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return URI{}, false
	}
	scheme, name, found := strings.Cut(s, ":")
	if !found {
		return IDURI(s), true
	}
	switch scheme {
	case SchemeID, SchemeRes, SchemeAE4, SchemeAE8, SchemeAE12, SchemeASID:
	default:
		return URI{}, false
	}
	if scheme != SchemeRes && name == "" {
		return URI{}, false
	}
	return URI{Scheme: scheme, Name: name}, true
}

// Components returns the pathname components of an id URI.
func (u URI) Components() []string {
	if u.Scheme != SchemeID || u.Name == "" {
		return nil
	}
	return strings.Split(u.Name, "/")
}

func (u URI) String() string {
	return u.Scheme + ":" + u.Name
}

// ID identifies a term: its role plus its URI.
type ID struct {
	Role Role
	URI  URI
}

func (id ID) String() string {
	return id.Role.String() + " " + id.URI.String()
}

// Less orders IDs by their normalized string form.
func (id ID) Less(other ID) bool {
	return id.String() < other.String()
}

// Resource describes the external entity a resource term was loaded from.
type Resource struct {
	Kind string // "system", "app", "app id", "library", ...
	Name string
	Path string
}

// Term is one vocabulary entry.
type Term struct {
	ID       ID
	Name     Name
	Exports  bool
	Resource *Resource
	// Supertype links type terms into a single-rooted lattice.
	Supertype *Term

	dict *Dictionary
}

// New creates an exporting term. Commands never export.
func New(role Role, uri URI, name Name) *Term {
	return &Term{
		ID:      ID{Role: role, URI: uri},
		Name:    name,
		Exports: role != RoleCommand,
	}
}

// NewWithID creates a term from an existing ID.
func NewWithID(id ID, name Name, exports bool) *Term {
	t := New(id.Role, id.URI, name)
	t.Exports = exports && id.Role != RoleCommand
	return t
}

// Role returns the term's syntactic role.
func (t *Term) Role() Role { return t.ID.Role }

// URI returns the term's semantic URI.
func (t *Term) URI() URI { return t.ID.URI }

// Dictionary returns the term's sub-dictionary, creating it on first use.
func (t *Term) Dictionary() *Dictionary {
	if t.dict == nil {
		t.dict = NewDictionary()
	}
	return t.dict
}

// HasDictionary reports whether the sub-dictionary has been created.
func (t *Term) HasDictionary() bool {
	return t.dict != nil
}

// SetDictionary replaces the sub-dictionary.
func (t *Term) SetDictionary(d *Dictionary) {
	t.dict = d
}

// Lookup searches the sub-dictionary by name without creating it.
func (t *Term) Lookup(name Name) *Term {
	if t.dict == nil {
		return nil
	}
	return t.dict.TermNamed(name)
}

// Equal compares identities only.
func (t *Term) Equal(other *Term) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.ID == other.ID
}

func (t *Term) String() string {
	if !t.Name.IsEmpty() {
		return t.Name.String()
	}
	return fmt.Sprintf("#%s [%s]", t.Role(), t.URI())
}

// Describe returns a single-line debugging description.
func (t *Term) Describe() string {
	name := "no name"
	if !t.Name.IsEmpty() {
		name = "name: " + t.Name.String()
	}
	res := "no resource"
	if t.Resource != nil {
		res = fmt.Sprintf("resource: %s %s", t.Resource.Kind, t.Resource.Name)
	}
	count := 0
	if t.dict != nil {
		count = t.dict.Len()
	}
	return fmt.Sprintf("%s, role/uri: %s, exports: %t, %s, dictionary: %d element(s)", name, t.ID, t.Exports, res, count)
}
