package resolver

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/btouchard/bushel/internal/compiler/ast"
	"github.com/btouchard/bushel/internal/compiler/catalog"
	"github.com/btouchard/bushel/internal/compiler/english"
	"github.com/btouchard/bushel/internal/compiler/errors"
	"github.com/btouchard/bushel/internal/compiler/parser"
	"github.com/btouchard/bushel/internal/compiler/term"
)

func englishParser(r parser.Resolver) *parser.Parser {
	return english.New(r, parser.WithPool(term.NewPool()))
}

// writeLibraries creates one .bushel file per entry in a temp dir.
func writeLibraries(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name+LibraryExtension), []byte(src), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func parse(t *testing.T, r *Resolver, src string) (*parser.Program, error) {
	t.Helper()
	return englishParser(r).Parse(src)
}

func statements(t *testing.T, prog *parser.Program) []*ast.Expression {
	t.Helper()
	seq, ok := prog.AST.Kind.(*ast.Sequence)
	if !ok {
		t.Fatalf("expected a sequence, got %s", ast.Sexp(prog.AST))
	}
	return seq.Expressions
}

func TestLibrary(t *testing.T) {
	dir := writeLibraries(t, map[string]string{
		"greeting": "to greet\n  who\ndo\n  log who\nend\n",
	})
	r := New(englishParser, nil, WithSearchPath(dir))

	prog, err := parse(t, r, "require library greeting\ngreet who \"Ann\"")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	stmts := statements(t, prog)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}

	req, ok := stmts[0].Kind.(*ast.Require)
	if !ok {
		t.Fatalf("expected a require, got %T", stmts[0].Kind)
	}
	res := req.Resource.Resource
	if res == nil || res.Kind != KindLibrary || res.Name != "greeting" {
		t.Fatalf("expected library greeting, got %+v", res)
	}
	wantPath, _ := filepath.Abs(filepath.Join(dir, "greeting.bushel"))
	if res.Path != wantPath {
		t.Errorf("expected path %s, got %s", wantPath, res.Path)
	}

	if got, want := ast.Sexp(stmts[1]), `(greet [who] "Ann")`; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestLibrarySearchOrder(t *testing.T) {
	first := writeLibraries(t, map[string]string{"util": "to from_first\ndo\nend\n"})
	second := writeLibraries(t, map[string]string{
		"util":  "to from_second\ndo\nend\n",
		"other": "to from_other\ndo\nend\n",
	})
	r := New(englishParser, nil, WithSearchPath(first, second))

	prog, err := parse(t, r, "require library util\nrequire library other")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	stmts := statements(t, prog)
	util := stmts[0].Kind.(*ast.Require).Resource
	if util.Lookup(term.NewName("from_first")) == nil {
		t.Errorf("expected util from the first directory")
	}
	if util.Lookup(term.NewName("from_second")) != nil {
		t.Errorf("expected the second directory's util to be shadowed")
	}
	other := stmts[1].Kind.(*ast.Require).Resource
	if other.Lookup(term.NewName("from_other")) == nil {
		t.Errorf("expected other from the second directory")
	}
}

func TestLibraryCache(t *testing.T) {
	dir := writeLibraries(t, map[string]string{"shared": "to ping\ndo\nend\n"})
	r := New(englishParser, nil, WithSearchPath(dir))

	var dicts []*term.Dictionary
	for i := 0; i < 2; i++ {
		prog, err := parse(t, r, "require library shared")
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		dicts = append(dicts, statements(t, prog)[0].Kind.(*ast.Require).Resource.Dictionary())
	}
	if len(r.parsed) != 1 {
		t.Errorf("expected 1 cached library, got %d", len(r.parsed))
	}
	if dicts[0] != dicts[1] {
		t.Errorf("expected both requires to share the cached dictionary")
	}
}

func TestLibraryNotFound(t *testing.T) {
	r := New(englishParser, nil, WithSearchPath(t.TempDir()))

	_, err := parse(t, r, "require library missing_lib")
	if err == nil {
		t.Fatalf("expected an error")
	}
	var nf *errors.ResourceNotFound
	if !stderrors.As(err, &nf) {
		t.Fatalf("expected a ResourceNotFound cause, got %v", err)
	}
	if nf.Kind != KindLibrary || nf.Name != "missing_lib" {
		t.Errorf("expected library missing_lib, got %s %s", nf.Kind, nf.Name)
	}
	if err.Error() != "Can't find required library missing_lib" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestLibraryParseError(t *testing.T) {
	dir := writeLibraries(t, map[string]string{"broken": "tell\n"})
	r := New(englishParser, nil, WithSearchPath(dir))

	_, err := parse(t, r, "require library broken")
	if err == nil {
		t.Fatalf("expected an error")
	}
	var pe *errors.ParseError
	if !stderrors.As(err, &pe) || pe.Kind != errors.KindTerminologyImportFailure {
		t.Fatalf("expected an import failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "broken.bushel") {
		t.Errorf("expected the library path in %q", err.Error())
	}
	if len(r.parsed) != 0 {
		t.Errorf("expected failed parses not to be cached")
	}
}

func TestLibraryCycle(t *testing.T) {
	dir := writeLibraries(t, map[string]string{
		"a": "require library b\n",
		"b": "require library a\n",
	})
	r := New(englishParser, nil, WithSearchPath(dir))

	_, err := parse(t, r, "require library a")
	if err == nil {
		t.Fatalf("expected an error for the import cycle")
	}
	var nf *errors.ResourceNotFound
	if !stderrors.As(err, &nf) {
		t.Fatalf("expected a ResourceNotFound cause, got %v", err)
	}
	if nf.Name != "a" {
		t.Errorf("expected the cycle to stop at a, got %s", nf.Name)
	}
	if len(r.loading) != 0 {
		t.Errorf("expected the loading set to be empty, got %v", r.loading)
	}
}

func TestLoadingDetectsCycle(t *testing.T) {
	dir := writeLibraries(t, map[string]string{"self": "to noop\ndo\nend\n"})
	r := New(englishParser, nil)
	path := filepath.Join(dir, "self.bushel")
	r.loading[path] = true

	_, err := r.loadLibrary(path, nil)
	if err == nil || !strings.Contains(err.Error(), "circular import detected") {
		t.Errorf("expected a circular import error, got %v", err)
	}
}

const finderVocabulary = `format: "0.1"
resource: app
name: Finder
id: com.apple.Finder
terms:
  - {role: type, name: folder}
  - role: command
    name: reveal
    parameters:
      - {name: at}
`

func openCatalog(t *testing.T, docs ...string) *catalog.Store {
	t.Helper()
	s, err := catalog.Open(catalog.InMemory, nil)
	if err != nil {
		t.Fatalf("catalog.Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	for _, doc := range docs {
		if _, err := s.ImportYAML(strings.NewReader(doc)); err != nil {
			t.Fatalf("ImportYAML failed: %v", err)
		}
	}
	return s
}

func TestApplications(t *testing.T) {
	r := New(englishParser, nil, WithCatalog(openCatalog(t, finderVocabulary)))

	tests := []struct {
		src  string
		kind string
	}{
		{"require app Finder\nfolder 1", KindApp},
		{"require app id com.apple.Finder\nfolder 1", KindAppByID},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			prog, err := parse(t, r, tt.src)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			stmts := statements(t, prog)
			res := stmts[0].Kind.(*ast.Require).Resource
			if res.Resource.Kind != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, res.Resource.Kind)
			}
			if got := ast.Sexp(stmts[1]); got != "(simple folder 1)" {
				t.Errorf("expected (simple folder 1), got %s", got)
			}
		})
	}
}

func TestApplicationNotFound(t *testing.T) {
	tests := []struct {
		name string
		r    *Resolver
	}{
		{"no catalog", New(englishParser, nil)},
		{"empty catalog", New(englishParser, nil, WithCatalog(openCatalog(t)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.r, "require app Safari")
			var nf *errors.ResourceNotFound
			if !stderrors.As(err, &nf) {
				t.Fatalf("expected a ResourceNotFound cause, got %v", err)
			}
			if nf.Kind != KindApp || nf.Name != "Safari" {
				t.Errorf("expected app Safari, got %s %s", nf.Kind, nf.Name)
			}
		})
	}
}

func TestSystem(t *testing.T) {
	system := "format: \"0.1\"\nresource: system\nname: System\nterms:\n  - {role: command, name: beep}\n"

	tests := []struct {
		name     string
		r        *Resolver
		wantBeep bool
	}{
		{"no catalog", New(englishParser, nil), false},
		{"without system vocabulary", New(englishParser, nil, WithCatalog(openCatalog(t))), false},
		{"with system vocabulary", New(englishParser, nil, WithCatalog(openCatalog(t, system))), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parse(t, tt.r, "require system")
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			res := statements(t, prog)[0].Kind.(*ast.Require).Resource
			if res.Resource.Kind != KindSystem {
				t.Errorf("expected kind system, got %s", res.Resource.Kind)
			}
			if got := res.Lookup(term.NewName("beep")) != nil; got != tt.wantBeep {
				t.Errorf("expected beep defined = %v, got %v", tt.wantBeep, got)
			}
		})
	}
}

func TestUnsupportedKind(t *testing.T) {
	r := New(englishParser, nil)
	_, err := r.Resolve(parser.ResourceRequest{
		Type: parser.ResourceType{Name: term.NewName("osax"), Kind: "osax"},
		Name: term.NewName("StandardAdditions"),
	})
	if err == nil || !strings.Contains(err.Error(), "unsupported resource kind") {
		t.Errorf("expected an unsupported kind error, got %v", err)
	}
}
