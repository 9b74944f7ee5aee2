package logic

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/frodlund/cascade/internal/config"
	"github.com/frodlund/cascade/internal/filter"
)

// RunCheck validates that every include/exclude pattern matches at least one
// file under the given paths.
func RunCheck(cfg *config.Config, log zerolog.Logger) error {
	includes, excludes, err := loadPatterns(cfg)
	if err != nil {
		return err
	}

	if len(includes) == 0 && len(excludes) == 0 {
		return errors.New("no include or exclude patterns to check")
	}

	candidates, err := collectFiles(cfg.Files)
	if err != nil {
		return err
	}

	failures := checkPatterns("include", includes, candidates, log)
	failures += checkPatterns("exclude", excludes, candidates, log)

	if failures > 0 {
		return fmt.Errorf("%d pattern(s) matched no files", failures)
	}

	return nil
}

// collectFiles walks all positional args and returns every file path found.
func collectFiles(args []string) ([]string, error) {
	var paths []string

	seen := make(map[string]struct{})

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			clean := filepath.ToSlash(arg)
			if _, ok := seen[clean]; !ok {
				seen[clean] = struct{}{}
				paths = append(paths, clean)
			}

			continue
		}

		err = filepath.WalkDir(arg, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if entry.IsDir() {
				return nil
			}

			clean := filepath.ToSlash(filepath.Clean(path))
			if _, ok := seen[clean]; !ok {
				seen[clean] = struct{}{}
				paths = append(paths, clean)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %q: %w", arg, err)
		}
	}

	return paths, nil
}

// checkPatterns tests each pattern individually against the candidates.
// Returns the number of patterns that matched zero files.
func checkPatterns(kind string, patterns, candidates []string, log zerolog.Logger) int {
	var failures int

	for _, pattern := range patterns {
		flt, err := filter.New([]string{pattern}, nil)
		if err != nil {
			log.Error().Err(err).Str("kind", kind).Str("pattern", pattern).Msg("invalid pattern")

			failures++

			continue
		}

		var count int

		for _, path := range candidates {
			if flt.Match(path, true) {
				count++
			}
		}

		if count == 0 {
			log.Error().Str("kind", kind).Str("pattern", pattern).Msg("matched no files")

			failures++
		} else {
			log.Info().Str("kind", kind).Str("pattern", pattern).Int("files", count).Msg("matched")
		}
	}

	return failures
}
