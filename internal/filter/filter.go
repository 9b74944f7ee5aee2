// Package filter selects files based on include/exclude glob patterns.
package filter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter holds compiled include/exclude patterns. Empty includes means
// "match all"; excludes always win.
type Filter struct {
	includes []string
	excludes []string
}

// New validates the patterns and builds a reusable filter. Patterns use
// doublestar syntax; a pattern without a separator also matches against the
// file's base name, so "*.enc" finds encrypted files at any depth.
func New(includes, excludes []string) (*Filter, error) {
	for _, pattern := range append(append([]string{}, includes...), excludes...) {
		if !doublestar.ValidatePattern(normalize(pattern)) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
	}

	return &Filter{
		includes: normalizeAll(includes),
		excludes: normalizeAll(excludes),
	}, nil
}

// Match reports whether the slash-separated path should be included.
// hasIncludes distinguishes "no include filtering requested" from "include
// list happens to be empty".
func (f *Filter) Match(path string, hasIncludes bool) bool {
	included := !hasIncludes || matchAny(f.includes, path)
	excluded := matchAny(f.excludes, path)

	return included && !excluded
}

func matchAny(patterns []string, path string) bool {
	base := filepath.Base(path)

	for _, pattern := range patterns {
		if doublestar.MatchUnvalidated(pattern, path) {
			return true
		}

		if !strings.Contains(pattern, "/") && doublestar.MatchUnvalidated(pattern, base) {
			return true
		}
	}

	return false
}

// normalize strips a leading "./" so patterns match cleaned paths.
func normalize(pattern string) string {
	return strings.TrimPrefix(pattern, "./")
}

func normalizeAll(patterns []string) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = normalize(p)
	}

	return out
}

// Resolve takes positional args (files or directories) and patterns.
// Explicit files bypass filtering; directories are walked and filtered.
// Returns the matched files and the total number of candidates scanned.
func Resolve(args, includes, excludes []string, hasIncludes bool) (files []string, scanned int, err error) {
	flt, err := New(includes, excludes)
	if err != nil {
		return nil, 0, err
	}

	seen := make(map[string]struct{})

	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return nil, 0, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			scanned++

			add(arg)

			continue
		}

		walkErr := filepath.WalkDir(arg, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if entry.IsDir() {
				return nil
			}

			scanned++

			if flt.Match(filepath.ToSlash(filepath.Clean(path)), hasIncludes) {
				add(path)
			}

			return nil
		})
		if walkErr != nil {
			return nil, 0, fmt.Errorf("walking %q: %w", arg, walkErr)
		}
	}

	if len(files) == 0 {
		return nil, scanned, fmt.Errorf("no files matched the provided patterns: %v", args)
	}

	return files, scanned, nil
}
