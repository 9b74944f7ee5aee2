// Package logic implements the run pipeline: resolve files, filter,
// process, report.
package logic

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/frodlund/cascade/internal/config"
	"github.com/frodlund/cascade/internal/encryption"
	"github.com/frodlund/cascade/internal/filter"
)

// Run is the main logic of the encrypt and decrypt commands.
func Run(cfg *config.Config, log zerolog.Logger) error {
	start := time.Now()

	scanned, err := resolveFiles(cfg)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	excluded := scanned - len(cfg.Files)

	if cfg.Dry {
		return dryRun(cfg, log, scanned, excluded, start)
	}

	proc, err := encryption.NewProcessor(cfg, log)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	processed, errored, totalSize, err := proc.ProcessFiles()

	if cfg.Stats {
		printStats(scanned, excluded, processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

// resolveFiles expands positional args and applies include/exclude
// filtering. Returns the total number of files scanned before filtering.
func resolveFiles(cfg *config.Config) (int, error) {
	includes, excludes, err := loadPatterns(cfg)
	if err != nil {
		return 0, err
	}

	hasIncludes := len(cfg.Include) > 0 || cfg.IncludeFrom != ""

	// Decrypting without explicit includes targets encrypted files only.
	if cfg.Decrypt && !hasIncludes && cfg.EncryptSuffix != "" {
		includes = append(includes, "*"+cfg.EncryptSuffix)
		hasIncludes = true
	}

	files, scanned, err := filter.Resolve(cfg.Files, includes, excludes, hasIncludes)
	if err != nil {
		return scanned, fmt.Errorf("filtering files: %w", err)
	}

	cfg.Files = files

	return scanned, nil
}

// loadPatterns merges CLI and file-based include/exclude patterns.
func loadPatterns(cfg *config.Config) (includes, excludes []string, err error) {
	includes = append(includes, cfg.Include...)
	excludes = append(excludes, cfg.Exclude...)

	if cfg.IncludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.IncludeFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("loading include patterns: %w", err)
		}

		includes = append(includes, patterns...)
	}

	if cfg.ExcludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.ExcludeFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("loading exclude patterns: %w", err)
		}

		excludes = append(excludes, patterns...)
	}

	return includes, excludes, nil
}

// dryRun previews what would be processed without touching any file.
func dryRun(cfg *config.Config, log zerolog.Logger, scanned, excluded int, start time.Time) error {
	var totalSize int64

	for _, file := range cfg.Files {
		log.Info().Str("from", file).Str("to", outputPath(file, cfg)).Msg("would process")

		if cfg.Stats {
			if info, err := os.Stat(file); err == nil {
				totalSize += info.Size()
			}
		}
	}

	if cfg.Stats {
		printStats(scanned, excluded, len(cfg.Files), 0, totalSize, time.Since(start))
	}

	return nil
}

func outputPath(filename string, cfg *config.Config) string {
	ext := cfg.EncryptSuffix

	if cfg.Decrypt {
		filename = strings.TrimSuffix(filename, cfg.EncryptSuffix)
		ext = cfg.DecryptSuffix
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)
}

func printStats(scanned, excluded, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Scanned:   %d\n", scanned)
	fmt.Fprintf(os.Stderr, "  Excluded:  %d\n", excluded)
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
