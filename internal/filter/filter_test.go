package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files ...string) string {
	t.Helper()

	root := t.TempDir()

	for _, file := range files {
		path := filepath.Join(root, filepath.FromSlash(file))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	}

	return root
}

func TestFilter_Match(t *testing.T) {
	flt, err := New([]string{"*.enc"}, []string{"secrets/**"})
	require.NoError(t, err)

	// Base-name matching lets suffix patterns find files at any depth.
	assert.True(t, flt.Match("a.enc", true))
	assert.True(t, flt.Match("deep/nested/b.enc", true))
	assert.False(t, flt.Match("a.txt", true))
	assert.False(t, flt.Match("secrets/c.enc", true))

	// Without include filtering everything but excludes passes.
	assert.True(t, flt.Match("a.txt", false))
	assert.False(t, flt.Match("secrets/c.txt", false))
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New([]string{"[unclosed"}, nil)
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	root := writeTree(t,
		"a.txt",
		"b.enc",
		"sub/c.txt",
		"sub/d.enc",
	)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	t.Run("directory walk with includes", func(t *testing.T) {
		files, scanned, err := Resolve([]string{"."}, []string{"*.enc"}, nil, true)
		require.NoError(t, err)

		assert.Equal(t, 4, scanned)
		assert.ElementsMatch(t, []string{"b.enc", filepath.Join("sub", "d.enc")}, files)
	})

	t.Run("excludes win", func(t *testing.T) {
		files, _, err := Resolve([]string{"."}, []string{"*.enc"}, []string{"sub/**"}, true)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"b.enc"}, files)
	})

	t.Run("explicit file bypasses filtering", func(t *testing.T) {
		files, _, err := Resolve([]string{"a.txt"}, []string{"*.enc"}, nil, true)
		require.NoError(t, err)

		assert.Equal(t, []string{"a.txt"}, files)
	})

	t.Run("no match is an error", func(t *testing.T) {
		_, _, err := Resolve([]string{"."}, []string{"*.missing"}, nil, true)
		assert.Error(t, err)
	})
}

func TestLoadPatterns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.jsonc")
	content := `[
	// encrypted payloads
	"*.enc",
	"backup/**",
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	patterns, err := LoadPatterns(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"*.enc", "backup/**"}, patterns)
}
