// Package catalog stores application and system vocabularies in a SQLite
// database so the resolver can load them by resource name.
package catalog

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/btouchard/bushel/internal/compiler/term"
	"github.com/btouchard/bushel/internal/compiler/translation"
)

// InMemory is a DSN for a private, throwaway database.
const InMemory = ":memory:"

// ErrNotFound is returned when no vocabulary matches a lookup.
var ErrNotFound = stderrors.New("vocabulary not found")

// Vocabulary is one imported vocabulary file.
type Vocabulary struct {
	ID        string       `gorm:"primaryKey"`
	Kind      string       `gorm:"uniqueIndex:idx_kind_name;not null"`
	Name      string       `gorm:"uniqueIndex:idx_kind_name;not null"`
	BundleID  string       `gorm:"index"`
	Language  string       `gorm:"default:en"`
	Terms     []TermRecord `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// BeforeCreate assigns a UUID to new vocabularies.
func (v *Vocabulary) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// TermRecord is one term of a vocabulary. ParentURI names the containing
// term; top-level terms point at the vocabulary's own dictionary URI.
type TermRecord struct {
	ID           uint   `gorm:"primaryKey"`
	VocabularyID string `gorm:"index;not null"`
	Position     int
	Role         string `gorm:"not null"`
	URI          string `gorm:"not null"`
	Name         string
	ParentURI    string
}

// Store is a handle on a catalog database.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the catalog at dsn and migrates its
// schema.
func Open(dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", dsn, err)
	}
	// Every connection to ":memory:" sees its own database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", dsn, err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&Vocabulary{}, &TermRecord{}); err != nil {
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}
	return &Store{db: db, logger: logger.With(slog.String("component", "catalog"))}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ImportYAML decodes one vocabulary document and imports it.
func (s *Store) ImportYAML(r io.Reader) (*Vocabulary, error) {
	f, err := translation.Decode(r)
	if err != nil {
		return nil, err
	}
	return s.Import(f)
}

// Import stores f, replacing any vocabulary of the same kind and name.
// Files without a resource kind are stored as applications.
func (s *Store) Import(f *translation.File) (*Vocabulary, error) {
	v := &Vocabulary{
		Kind:     f.Resource,
		Name:     f.Name,
		BundleID: f.ID,
		Language: f.Language,
	}
	if v.Kind == "" {
		v.Kind = "app"
	}
	f.Flatten(func(parent term.URI, t *term.Term) {
		v.Terms = append(v.Terms, TermRecord{
			Position:  len(v.Terms),
			Role:      t.Role().String(),
			URI:       t.URI().String(),
			Name:      t.Name.Normalized(),
			ParentURI: parent.String(),
		})
	})

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var old Vocabulary
		err := tx.Where("kind = ? AND name = ?", v.Kind, v.Name).First(&old).Error
		switch {
		case err == nil:
			if err := tx.Where("vocabulary_id = ?", old.ID).Delete(&TermRecord{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&old).Error; err != nil {
				return err
			}
		case !stderrors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		return tx.Create(v).Error
	})
	if err != nil {
		return nil, fmt.Errorf("import vocabulary %s: %w", f.Name, err)
	}
	s.logger.Info("imported vocabulary",
		slog.String("kind", v.Kind),
		slog.String("name", v.Name),
		slog.Int("terms", len(v.Terms)))
	return v, nil
}

// Vocabularies lists every stored vocabulary without its terms.
func (s *Store) Vocabularies() ([]Vocabulary, error) {
	var vs []Vocabulary
	if err := s.db.Order("kind, name").Find(&vs).Error; err != nil {
		return nil, fmt.Errorf("list vocabularies: %w", err)
	}
	return vs, nil
}

// Remove deletes the vocabulary of the given kind and name.
func (s *Store) Remove(kind, name string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var v Vocabulary
		if err := tx.Where("kind = ? AND name = ?", kind, name).First(&v).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
			}
			return err
		}
		if err := tx.Where("vocabulary_id = ?", v.ID).Delete(&TermRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&v).Error
	})
}

// Dictionary loads the vocabulary of the given kind and name as a
// dictionary term.
func (s *Store) Dictionary(kind, name string) (*term.Term, error) {
	return s.load(s.db.Where("kind = ? AND name = ?", kind, name), kind+" "+name)
}

// DictionaryByBundleID loads an application vocabulary by its bundle
// identifier.
func (s *Store) DictionaryByBundleID(id string) (*term.Term, error) {
	return s.load(s.db.Where("bundle_id = ?", id), "bundle id "+id)
}

func (s *Store) load(query *gorm.DB, what string) (*term.Term, error) {
	var v Vocabulary
	err := query.Preload("Terms", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).First(&v).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("load vocabulary %s: %w", what, err)
	}
	root, err := v.Term()
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded vocabulary", slog.String("name", v.Name), slog.Int("terms", len(v.Terms)))
	return root, nil
}

// Term rebuilds the dictionary term from the vocabulary's records, which
// must be in position order.
func (v *Vocabulary) Term() (*term.Term, error) {
	root := term.New(term.RoleDictionary, term.IDURI(v.Name), term.NewName(v.Name))
	root.Dictionary()
	byURI := map[string]*term.Term{root.URI().String(): root}

	for _, rec := range v.Terms {
		role, ok := term.ParseRole(rec.Role)
		if !ok {
			return nil, fmt.Errorf("vocabulary %s: term %q: unknown role %q", v.Name, rec.Name, rec.Role)
		}
		uri, ok := term.ParseURI(rec.URI)
		if !ok {
			return nil, fmt.Errorf("vocabulary %s: term %q: invalid uri %q", v.Name, rec.Name, rec.URI)
		}
		parent, ok := byURI[rec.ParentURI]
		if !ok {
			return nil, fmt.Errorf("vocabulary %s: term %q: unknown parent %q", v.Name, rec.Name, rec.ParentURI)
		}
		t := term.New(role, uri, term.NewName(rec.Name))
		parent.Dictionary().Add(t)
		byURI[rec.URI] = t
	}
	return root, nil
}
