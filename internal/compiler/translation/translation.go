// Package translation reads vocabulary files: YAML documents that name the
// terms of a language core, a system or an application.
package translation

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/btouchard/bushel/internal/compiler/term"
)

// Format is the only vocabulary file format understood.
const Format = "0.1"

// File is one vocabulary document.
//
//	format: "0.1"
//	language: en
//	resource: app
//	name: Finder
//	id: com.apple.Finder
//	terms:
//	  - {role: type, name: window}
//	  - role: command
//	    name: open
//	    parameters:
//	      - {name: using}
type File struct {
	Format   string `yaml:"format"`
	Language string `yaml:"language"`
	// Resource is the resource kind the vocabulary belongs to, such as
	// "app" or "system". It is empty for a language core.
	Resource string  `yaml:"resource,omitempty"`
	Name     string  `yaml:"name"`
	ID       string  `yaml:"id,omitempty"`
	Terms    []Entry `yaml:"terms"`
}

// Entry is one term. Parameters only apply to commands and Terms to
// dictionaries and types.
type Entry struct {
	Role       string  `yaml:"role"`
	Name       string  `yaml:"name,omitempty"`
	URI        string  `yaml:"uri,omitempty"`
	Parameters []Entry `yaml:"parameters,omitempty"`
	Terms      []Entry `yaml:"terms,omitempty"`
}

// Decode reads and validates one document from r.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Parse is Decode over a byte slice.
func Parse(data []byte) (*File, error) {
	return Decode(bytes.NewReader(data))
}

// Validate checks the format version and every entry.
func (f *File) Validate() error {
	if strings.TrimPrefix(f.Format, "v") != Format {
		return fmt.Errorf("vocabulary %q: unsupported format %q", f.Name, f.Format)
	}
	if f.Name == "" {
		return fmt.Errorf("vocabulary: missing name")
	}
	return validate(f.Name, f.Terms)
}

func validate(path string, entries []Entry) error {
	for _, e := range entries {
		role, ok := term.ParseRole(e.Role)
		if !ok {
			return fmt.Errorf("vocabulary %s: term %q: unknown role %q", path, e.Name, e.Role)
		}
		if e.Name == "" && e.URI == "" {
			return fmt.Errorf("vocabulary %s: %s term without name or uri", path, role)
		}
		if e.URI != "" {
			if _, ok := term.ParseURI(e.URI); !ok {
				return fmt.Errorf("vocabulary %s: term %q: invalid uri %q", path, e.Name, e.URI)
			}
		}
		if len(e.Parameters) > 0 && role != term.RoleCommand {
			return fmt.Errorf("vocabulary %s: %s %q cannot take parameters", path, role, e.Name)
		}
		for _, p := range e.Parameters {
			if p.Role != "" && p.Role != term.RoleParameter.String() {
				return fmt.Errorf("vocabulary %s: parameter %q of %q has role %q", path, p.Name, e.Name, p.Role)
			}
			if p.Name == "" && p.URI == "" {
				return fmt.Errorf("vocabulary %s: parameter of %q without name or uri", path, e.Name)
			}
		}
		if err := validate(path+"/"+e.Name, e.Terms); err != nil {
			return err
		}
	}
	return nil
}

// Term builds the dictionary term named by the file. Term URIs that are not
// given explicitly are derived from the dictionary path, as in
// id:Math/pi.
func (f *File) Term() *term.Term {
	root := term.New(term.RoleDictionary, term.IDURI(f.Name), term.NewName(f.Name))
	root.SetDictionary(term.NewDictionary(build([]string{f.Name}, f.Terms)...))
	return root
}

func build(path []string, entries []Entry) []*term.Term {
	terms := make([]*term.Term, 0, len(entries))
	for _, e := range entries {
		role, _ := term.ParseRole(e.Role)
		name := term.NewName(e.Name)
		components := append(append([]string(nil), path...), name.Normalized())
		t := term.New(role, uriOf(e.URI, components), name)

		if len(e.Parameters) > 0 {
			params := make([]*term.Term, len(e.Parameters))
			for i, p := range e.Parameters {
				pname := term.NewName(p.Name)
				pc := append(append([]string(nil), components...), pname.Normalized())
				params[i] = term.New(term.RoleParameter, uriOf(p.URI, pc), pname)
			}
			t.SetDictionary(term.NewDictionary(params...))
		}
		if len(e.Terms) > 0 {
			t.Dictionary().Add(build(components, e.Terms)...)
		}
		terms = append(terms, t)
	}
	return terms
}

func uriOf(explicit string, components []string) term.URI {
	if u, ok := term.ParseURI(explicit); ok {
		return u
	}
	return term.IDURI(components...)
}

// Flatten walks the vocabulary depth first, calling fn with each entry and
// the URI of the term that contains it. Top-level entries have the file's
// own dictionary as parent.
func (f *File) Flatten(fn func(parent term.URI, t *term.Term)) {
	var walk func(parent *term.Term)
	walk = func(parent *term.Term) {
		if !parent.HasDictionary() {
			return
		}
		for _, t := range parent.Dictionary().Terms() {
			fn(parent.URI(), t)
			walk(t)
		}
	}
	walk(f.Term())
}
