package encryption

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frodlund/cascade/internal/config"
)

func testConfig(files ...string) *config.Config {
	return &config.Config{
		Keys:          []string{"GCM:processor secret"},
		Times:         1,
		Parallel:      2,
		EncryptSuffix: ".enc",
		Files:         files,
	}
}

func process(t *testing.T, cfg *config.Config) {
	t.Helper()

	proc, err := NewProcessor(cfg, zerolog.Nop())
	require.NoError(t, err)

	processed, errored, _, err := proc.ProcessFiles()
	require.NoError(t, err)
	require.Zero(t, errored)
	require.Equal(t, len(cfg.Files), processed)
}

func TestProcessor_FileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	plaintext := []byte("files survive the round trip")
	require.NoError(t, os.WriteFile(path, plaintext, 0o600))

	process(t, testConfig(path))

	encrypted, err := os.ReadFile(path + ".enc")
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, encrypted)

	cfg := testConfig(path + ".enc")
	cfg.Decrypt = true
	cfg.DecryptSuffix = ".out"
	process(t, cfg)

	decrypted, err := os.ReadFile(path + ".out")
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestProcessor_ArmorRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	plaintext := []byte("printable ciphertext")
	require.NoError(t, os.WriteFile(path, plaintext, 0o600))

	cfg := testConfig(path)
	cfg.Armor = true
	cfg.Coder = "base64url"
	process(t, cfg)

	armored, err := os.ReadFile(path + ".enc")
	require.NoError(t, err)

	text := strings.TrimRight(string(armored), "\n")
	_, err = base64.URLEncoding.DecodeString(text)
	require.NoError(t, err, "armored output is not base64url")

	back := testConfig(path + ".enc")
	back.Armor = true
	back.Coder = "base64url"
	back.Decrypt = true
	back.DecryptSuffix = ".out"
	process(t, back)

	decrypted, err := os.ReadFile(path + ".out")
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestProcessor_MultiKeyChain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	plaintext := []byte("three stages deep")
	require.NoError(t, os.WriteFile(path, plaintext, 0o600))

	keys := []string{"CBC:keyA", "CTR:keyB", "GCM:keyA"}

	cfg := testConfig(path)
	cfg.Keys = keys
	process(t, cfg)

	back := testConfig(path + ".enc")
	back.Keys = keys
	back.Decrypt = true
	back.DecryptSuffix = ".out"
	process(t, back)

	decrypted, err := os.ReadFile(path + ".out")
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestProcessor_FailedDecryptLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.enc")
	require.NoError(t, os.WriteFile(path, []byte("not a ciphertext"), 0o600))

	cfg := testConfig(path)
	cfg.Decrypt = true
	cfg.DecryptSuffix = ".out"

	proc, err := NewProcessor(cfg, zerolog.Nop())
	require.NoError(t, err)

	_, errored, _, err := proc.ProcessFiles()
	assert.Error(t, err)
	assert.Equal(t, 1, errored)

	// The destination must not exist and the input must be untouched.
	_, statErr := os.Stat(strings.TrimSuffix(path, ".enc") + ".out")
	assert.True(t, os.IsNotExist(statErr))

	original, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("not a ciphertext"), original)

	// No stray temp files remain.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestProcessor_BadCoderName(t *testing.T) {
	cfg := testConfig("whatever.txt")
	cfg.Coder = "base32"

	_, err := NewProcessor(cfg, zerolog.Nop())
	assert.Error(t, err)
}
