// Package discover expands command line arguments into the list of source
// files to lint, honouring the configured include and exclude globs.
package discover

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoFiles is returned when the arguments match no lintable file.
var ErrNoFiles = errors.New("no files to lint")

// Matcher decides which slash-separated relative paths are linted.
type Matcher struct {
	include []string
	exclude []string
}

// NewMatcher validates every pattern up front so a typo in the config
// fails at startup rather than silently matching nothing.
func NewMatcher(include, exclude []string) (*Matcher, error) {
	for _, p := range slices.Concat(include, exclude) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	return &Matcher{include: include, exclude: exclude}, nil
}

// Match reports whether rel is included and not excluded.
func (m *Matcher) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	return matchAny(m.include, rel) && !m.Excluded(rel)
}

// Excluded reports whether rel matches an exclude pattern.
func (m *Matcher) Excluded(rel string) bool {
	return matchAny(m.exclude, filepath.ToSlash(rel))
}

// SkipDir reports whether a whole directory is excluded, which is the case
// when an arbitrary child of it would be. Hidden directories are always
// skipped.
func (m *Matcher) SkipDir(rel string) bool {
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == "" {
		return false
	}
	if strings.HasPrefix(path.Base(rel), ".") {
		return true
	}
	return m.Excluded(path.Join(rel, "x"))
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// Resolve expands args into a sorted, de-duplicated file list.
//
// Arguments may be:
//   - a file: linted unless excluded, whatever the include patterns say
//   - a directory: walked, keeping files that Match relative to it
//   - a glob such as "src/**/*.tsx": expanded, then filtered by exclude
//
// With no arguments the current directory is walked.
func Resolve(ctx context.Context, args []string, m *Matcher) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, arg := range args {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if containsGlob(arg) {
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("resolve pattern %q: %w", arg, err)
			}
			for _, match := range matches {
				if !m.Excluded(match) {
					add(match)
				}
			}
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("resolve path %q: %w", arg, err)
		}
		if !info.IsDir() {
			if !m.Excluded(arg) {
				add(arg)
			}
			continue
		}
		found, err := walk(ctx, arg, m)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, strings.Join(args, " "))
	}
	slices.Sort(files)
	return files, nil
}

func walk(ctx context.Context, root string, m *Matcher) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if m.SkipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if m.Match(rel) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
