// Package fileutil provides helpers for atomic whole-file replacement:
// output is staged in a temporary file and renamed into place only after the
// caller has finished writing, so a failed operation never clobbers the
// destination.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

const executableBits = 0o111

// AtomicFile stages a replacement for outPath in a hidden temp file in the
// same directory. Callers must finish with either Commit or Discard.
type AtomicFile struct {
	srcInfo os.FileInfo
	file    *os.File
	tmpName string
	outPath string
}

// Begin stats src and creates the temp file next to outPath.
func Begin(src, outPath string) (*AtomicFile, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("getting file info for %q: %w", src, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &AtomicFile{
		srcInfo: info,
		file:    tmp,
		tmpName: tmp.Name(),
		outPath: outPath,
	}, nil
}

// SourceInfo returns the stat result for the source file.
func (a *AtomicFile) SourceInfo() os.FileInfo {
	return a.srcInfo
}

// Executable reports whether the source file had any execute bit set.
func (a *AtomicFile) Executable() bool {
	return a.srcInfo.Mode()&executableBits != 0
}

// Write writes staged output to the temp file.
func (a *AtomicFile) Write(p []byte) (int, error) {
	return a.file.Write(p)
}

// Commit sets perm on the staged file, renames it over outPath and returns
// the final size. With preserveTimes, the source's modification time is
// carried over.
func (a *AtomicFile) Commit(perm os.FileMode, preserveTimes bool) (int64, error) {
	if err := os.Chmod(a.tmpName, perm); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err := a.file.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(a.tmpName, a.outPath); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	if preserveTimes {
		modTime := a.srcInfo.ModTime()
		if err := os.Chtimes(a.outPath, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	info, err := os.Stat(a.outPath)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", a.outPath, err)
	}

	return info.Size(), nil
}

// Discard closes and removes the staged file. Safe to defer alongside
// Commit: once committed, there is nothing left to remove.
func (a *AtomicFile) Discard() {
	_ = a.file.Close()
	_ = os.Remove(a.tmpName)
}
