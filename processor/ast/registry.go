package ast

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// ErrNoParser is returned for files no registered front end handles.
var ErrNoParser = errors.New("no parser for file")

// ParserFactory creates a FileParser for one language.
type ParserFactory func() FileParser

// ParserRegistry maps languages and file extensions to front ends.
// Safe for concurrent use.
type ParserRegistry struct {
	mu        sync.RWMutex
	factories map[string]ParserFactory // language → factory
	byExt     map[string]string        // lower-case extension → language
}

// NewParserRegistry returns an empty registry.
func NewParserRegistry() *ParserRegistry {
	return &ParserRegistry{
		factories: make(map[string]ParserFactory),
		byExt:     make(map[string]string),
	}
}

// Register adds a front end for language. Extensions include the leading
// dot. An extension already claimed by another language keeps its owner.
func (r *ParserRegistry) Register(language string, extensions []string, factory ParserFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[language] = factory
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if _, taken := r.byExt[ext]; !taken {
			r.byExt[ext] = language
		}
	}
}

// Lookup returns the language handling path. path may also be a bare
// extension such as ".tsx".
func (r *ParserRegistry) Lookup(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))

	r.mu.RLock()
	defer r.mu.RUnlock()
	language, ok := r.byExt[ext]
	return language, ok
}

// Supports reports whether some front end handles path.
func (r *ParserRegistry) Supports(path string) bool {
	_, ok := r.Lookup(path)
	return ok
}

// NewParser instantiates the front end registered for language.
func (r *ParserRegistry) NewParser(language string) (FileParser, error) {
	r.mu.RLock()
	factory, ok := r.factories[language]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown language %q: %w", language, ErrNoParser)
	}
	return factory(), nil
}

// ParserFor instantiates the front end for path's extension.
func (r *ParserRegistry) ParserFor(path string) (FileParser, error) {
	language, ok := r.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNoParser)
	}
	return r.NewParser(language)
}

// Languages lists the registered languages, sorted.
func (r *ParserRegistry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.factories))
}

// Extensions lists the claimed extensions, sorted.
func (r *ParserRegistry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.byExt))
}

// DefaultRegistry holds the front ends that register themselves in init().
var DefaultRegistry = NewParserRegistry()
