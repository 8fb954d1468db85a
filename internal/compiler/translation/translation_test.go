package translation

import (
	"strings"
	"testing"

	"github.com/btouchard/bushel/internal/compiler/term"
)

const finder = `
format: "0.1"
language: en
resource: app
name: Finder
id: com.apple.Finder
terms:
  - {role: type, name: window}
  - {role: property, name: name}
  - role: command
    name: open
    parameters:
      - {uri: "id:.direct"}
      - {name: using}
  - role: dictionary
    name: Finder Window
    terms:
      - {role: constant, name: icon view}
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(finder))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Resource != "app" || f.ID != "com.apple.Finder" {
		t.Errorf("expected app com.apple.Finder, got %s %s", f.Resource, f.ID)
	}

	root := f.Term()
	if root.Role() != term.RoleDictionary || root.URI().String() != "id:Finder" {
		t.Fatalf("expected dictionary id:Finder, got %s", root.ID)
	}

	tests := []struct {
		name string
		role term.Role
		uri  string
	}{
		{"window", term.RoleType, "id:Finder/window"},
		{"name", term.RoleProperty, "id:Finder/name"},
		{"open", term.RoleCommand, "id:Finder/open"},
		{"Finder Window", term.RoleDictionary, "id:Finder/Finder Window"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := root.Lookup(term.NewName(tt.name))
			if got == nil {
				t.Fatalf("expected %q to be defined", tt.name)
			}
			if got.Role() != tt.role || got.URI().String() != tt.uri {
				t.Errorf("expected %s %s, got %s", tt.role, tt.uri, got.ID)
			}
		})
	}

	open := root.Lookup(term.NewName("open"))
	direct := open.Dictionary().TermByID(term.ID{Role: term.RoleParameter, URI: term.IDURI(".direct")})
	if direct == nil {
		t.Errorf("expected open to take a direct parameter")
	}
	if using := open.Lookup(term.NewName("using")); using == nil || using.URI().String() != "id:Finder/open/using" {
		t.Errorf("expected parameter id:Finder/open/using, got %v", using)
	}

	nested := root.Lookup(term.NewName("Finder Window")).Lookup(term.NewName("icon view"))
	if nested == nil || nested.Role() != term.RoleConstant {
		t.Errorf("expected nested constant icon view, got %v", nested)
	}
}

func TestFlatten(t *testing.T) {
	f, err := Parse([]byte(finder))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var got []string
	f.Flatten(func(parent term.URI, tm *term.Term) {
		got = append(got, parent.String()+" > "+tm.URI().String())
	})
	want := []string{
		"id:Finder > id:Finder/window",
		"id:Finder > id:Finder/name",
		"id:Finder > id:Finder/open",
		"id:Finder/open > id:.direct",
		"id:Finder/open > id:Finder/open/using",
		"id:Finder > id:Finder/Finder Window",
		"id:Finder/Finder Window > id:Finder/Finder Window/icon view",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("expected\n%s\ngot\n%s", strings.Join(want, "\n"), strings.Join(got, "\n"))
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"format", "format: \"2\"\nname: x\n", "unsupported format"},
		{"name", "format: \"0.1\"\n", "missing name"},
		{"role", "format: \"0.1\"\nname: x\nterms:\n  - {role: verb, name: go}\n", "unknown role"},
		{"params", "format: \"0.1\"\nname: x\nterms:\n  - role: type\n    name: t\n    parameters: [{name: p}]\n", "cannot take parameters"},
		{"unknown field", "format: \"0.1\"\nname: x\ncolour: red\n", "field colour not found"},
		{"nameless", "format: \"0.1\"\nname: x\nterms:\n  - {role: type}\n", "without name or uri"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
