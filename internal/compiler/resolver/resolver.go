// Package resolver loads the terminology of required resources: the system
// and applications from a catalog, libraries from script files.
package resolver

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/btouchard/bushel/internal/compiler/catalog"
	"github.com/btouchard/bushel/internal/compiler/errors"
	"github.com/btouchard/bushel/internal/compiler/parser"
	"github.com/btouchard/bushel/internal/compiler/term"
)

// Resource kinds understood by the resolver.
const (
	KindSystem  = "system"
	KindApp     = "app"
	KindAppByID = "app id"
	KindLibrary = "library"
)

// LibraryExtension is appended to library names when searching for them.
const LibraryExtension = ".bushel"

// DefaultSystemName is the catalog name of the system vocabulary.
const DefaultSystemName = "System"

// Catalog provides stored vocabularies. *catalog.Store implements it.
type Catalog interface {
	Dictionary(kind, name string) (*term.Term, error)
	DictionaryByBundleID(id string) (*term.Term, error)
}

// ParserFactory creates a fresh parser that resolves its own requirements
// through r.
type ParserFactory func(r parser.Resolver) *parser.Parser

// Option configures a Resolver.
type Option func(*Resolver)

// WithCatalog sets the vocabulary catalog for system and application
// resources.
func WithCatalog(c Catalog) Option {
	return func(r *Resolver) { r.catalog = c }
}

// WithSearchPath sets the directories searched for libraries, in order.
func WithSearchPath(dirs ...string) Option {
	return func(r *Resolver) { r.searchPath = append([]string(nil), dirs...) }
}

// WithSystemName changes the catalog name of the system vocabulary.
func WithSystemName(name string) Option {
	return func(r *Resolver) { r.systemName = name }
}

// Resolver resolves resource requests. Library parses are cached by
// absolute path for the resolver's lifetime. It is not safe for concurrent
// use.
type Resolver struct {
	newParser  ParserFactory
	catalog    Catalog
	searchPath []string
	systemName string
	logger     *slog.Logger

	parsed  map[string]*term.Term // cache: absolute path → library root
	loading map[string]bool       // circular import detection
}

// New creates a Resolver. newParser builds the parser used for libraries.
func New(newParser ParserFactory, logger *slog.Logger, opts ...Option) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Resolver{
		newParser:  newParser,
		systemName: DefaultSystemName,
		logger:     logger.With(slog.String("component", "resolver")),
		parsed:     make(map[string]*term.Term),
		loading:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve implements parser.Resolver.
func (r *Resolver) Resolve(req parser.ResourceRequest) (*term.Term, error) {
	kind, name := req.Type.Kind, req.Name.Normalized()
	r.logger.Debug("resolving resource", slog.String("kind", kind), slog.String("name", name))

	switch kind {
	case KindSystem:
		return r.resolveSystem(req)
	case KindApp:
		return r.fromCatalog(req, func(c Catalog) (*term.Term, error) { return c.Dictionary(KindApp, name) })
	case KindAppByID:
		return r.fromCatalog(req, func(c Catalog) (*term.Term, error) { return c.DictionaryByBundleID(name) })
	case KindLibrary:
		return r.resolveLibrary(req)
	}
	return nil, fmt.Errorf("unsupported resource kind %q", kind)
}

// resolveSystem falls back to an empty vocabulary: the system always
// exists even when nothing describes it.
func (r *Resolver) resolveSystem(req parser.ResourceRequest) (*term.Term, error) {
	if r.catalog == nil {
		return resource(req, "", nil), nil
	}
	dict, err := r.catalog.Dictionary(KindSystem, r.systemName)
	if stderrors.Is(err, catalog.ErrNotFound) {
		r.logger.Debug("no system vocabulary in catalog", slog.String("name", r.systemName))
		return resource(req, "", nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load system vocabulary: %w", err)
	}
	return resource(req, "", dict), nil
}

func (r *Resolver) fromCatalog(req parser.ResourceRequest, lookup func(Catalog) (*term.Term, error)) (*term.Term, error) {
	name := req.Name.Normalized()
	if r.catalog == nil {
		return nil, &errors.ResourceNotFound{Kind: req.Type.Kind, Name: name}
	}
	dict, err := lookup(r.catalog)
	if stderrors.Is(err, catalog.ErrNotFound) {
		return nil, &errors.ResourceNotFound{Kind: req.Type.Kind, Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("load %s %s: %w", req.Type.Kind, name, err)
	}
	return resource(req, "", dict), nil
}

// resolveLibrary tries each search directory in turn. Paths the parse is
// already importing are skipped. A library that exists but fails to parse
// is reported only if no later directory provides a valid one.
func (r *Resolver) resolveLibrary(req parser.ResourceRequest) (*term.Term, error) {
	name := req.Name.Normalized()
	var failure error
	for _, dir := range r.searchPath {
		path, err := filepath.Abs(filepath.Join(dir, name+LibraryExtension))
		if err != nil {
			continue
		}
		if req.Ignoring[path] {
			r.logger.Debug("skipping library already being imported", slog.String("path", path))
			continue
		}
		root, err := r.loadLibrary(path, req.Ignoring)
		if stderrors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			r.logger.Debug("no valid library", slog.String("path", path), slog.Any("error", err))
			if failure == nil {
				failure = err
			}
			continue
		}
		r.logger.Debug("found library", slog.String("path", path))
		return resource(req, path, root), nil
	}
	if failure != nil {
		return nil, failure
	}
	return nil, &errors.ResourceNotFound{Kind: KindLibrary, Name: name}
}

// loadLibrary reads and parses a library file (with caching).
func (r *Resolver) loadLibrary(path string, ignoring map[string]bool) (*term.Term, error) {
	if cached, ok := r.parsed[path]; ok {
		r.logger.Debug("library cache hit", slog.String("path", path))
		return cached, nil
	}

	// Check for circular imports BEFORE loading
	if r.loading[path] {
		return nil, fmt.Errorf("circular import detected: %s", path)
	}
	r.loading[path] = true
	defer delete(r.loading, path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	prog, err := r.newParser(r).Parse(string(data), importing(ignoring, path)...)
	if err != nil {
		return nil, fmt.Errorf("parse errors in %s: %w", path, err)
	}

	r.parsed[path] = prog.RootTerm
	return prog.RootTerm, nil
}

// importing lists the paths of ignoring plus path, sorted.
func importing(ignoring map[string]bool, path string) []string {
	paths := []string{path}
	for p := range ignoring {
		if p != path {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// resource wraps a vocabulary into the term a require statement binds.
func resource(req parser.ResourceRequest, path string, dict *term.Term) *term.Term {
	name := req.Name.Normalized()
	t := term.New(term.RoleResource, term.ResURI(req.Type.Kind+":"+name), req.Name)
	t.Resource = &term.Resource{Kind: req.Type.Kind, Name: name, Path: path}
	if dict != nil {
		t.SetDictionary(dict.Dictionary())
	}
	return t
}
