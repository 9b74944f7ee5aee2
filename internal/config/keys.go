package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/idelchi/gogen/pkg/key"

	"github.com/frodlund/cascade/pkg/cascade"
)

// KeySpecs assembles the ordered chain specs: --key entries first, then
// --key-hex, then the lines of --key-file. The order matters — it is the
// stage order of the resulting chain.
func (c Config) KeySpecs() ([]cascade.KeySpec, error) {
	specs := make([]cascade.KeySpec, 0, c.keyCount())

	for _, value := range c.Keys {
		spec, err := parseKeySpec(value, false)
		if err != nil {
			return nil, err
		}

		specs = append(specs, spec)
	}

	for _, value := range c.HexKeys {
		spec, err := parseKeySpec(value, true)
		if err != nil {
			return nil, err
		}

		specs = append(specs, spec)
	}

	if c.KeyFile != "" {
		fromFile, err := readKeyFile(c.KeyFile)
		if err != nil {
			return nil, err
		}

		specs = append(specs, fromFile...)
	}

	if len(specs) == 0 {
		return nil, fmt.Errorf("no key material in %q", c.KeyFile)
	}

	if c.Times > 1 && len(specs) > 1 {
		return nil, fmt.Errorf("--times applies to a single key, got %d", len(specs))
	}

	return specs, nil
}

// parseKeySpec interprets a key value of the form "[ALG:]material". The
// algorithm prefix is recognized by spelling only; cascade validates it
// case-sensitively, so "cbc:..." is rejected rather than silently treated
// as a passphrase. hexKey selects hex decoding of the material.
func parseKeySpec(value string, hexKey bool) (cascade.KeySpec, error) {
	algorithm := cascade.DefaultAlgorithm
	material := value

	if prefix, rest, found := strings.Cut(value, ":"); found && looksLikeAlgorithm(prefix) {
		parsed, err := cascade.ParseAlgorithm(prefix)
		if err != nil {
			return cascade.KeySpec{}, err
		}

		algorithm = parsed
		material = rest
	}

	if hexKey {
		raw, err := key.FromHex(material)
		if err != nil {
			return cascade.KeySpec{}, fmt.Errorf("decoding hex key: %w", err)
		}

		return cascade.RawKey(algorithm, raw), nil
	}

	return cascade.Passphrase(algorithm, material), nil
}

// looksLikeAlgorithm reports whether prefix is an algorithm tag attempt,
// regardless of case.
func looksLikeAlgorithm(prefix string) bool {
	for _, alg := range []string{"CBC", "CTR", "GCM"} {
		if strings.EqualFold(prefix, alg) {
			return true
		}
	}

	return false
}

// readKeyFile reads one key spec per line, with the same "[ALG:]passphrase"
// syntax as --key. Blank lines and #-comments are skipped.
func readKeyFile(path string) ([]cascade.KeySpec, error) {
	file, err := os.Open(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return nil, fmt.Errorf("opening key file: %w", err)
	}
	defer file.Close()

	var specs []cascade.KeySpec

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		spec, err := parseKeySpec(line, false)
		if err != nil {
			return nil, fmt.Errorf("key file %q: %w", path, err)
		}

		specs = append(specs, spec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading key file %q: %w", path, err)
	}

	return specs, nil
}
