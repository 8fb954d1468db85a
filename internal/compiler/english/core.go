package english

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/btouchard/bushel/internal/compiler/term"
	"github.com/btouchard/bushel/internal/compiler/translation"
)

//go:embed core.yaml
var coreYAML []byte

var (
	coreOnce sync.Once
	coreFile *translation.File
	coreErr  error
)

// Core returns a fresh copy of the built-in vocabulary. Parsers merge
// function definitions into existing commands, so every parser gets its own.
func Core() (*term.Term, error) {
	coreOnce.Do(func() {
		coreFile, coreErr = translation.Parse(coreYAML)
	})
	if coreErr != nil {
		return nil, fmt.Errorf("english core vocabulary: %w", coreErr)
	}
	return coreFile.Term(), nil
}

func mustCore() *term.Term {
	t, err := Core()
	if err != nil {
		panic(err)
	}
	return t
}
