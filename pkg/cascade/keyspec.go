package cascade

import "fmt"

// KeySpec pairs key material with the algorithm it should drive. The key may
// be a passphrase (UTF-8 bytes) or raw bytes; either way it is digested with
// SHA-256 into the actual 32-byte cipher key.
type KeySpec struct {
	// Algorithm selects the cipher mode. Empty means DefaultAlgorithm.
	Algorithm Algorithm

	// Key is the raw key material. Must be non-empty.
	Key []byte
}

// Passphrase builds a KeySpec from a UTF-8 passphrase.
func Passphrase(alg Algorithm, passphrase string) KeySpec {
	return KeySpec{Algorithm: alg, Key: []byte(passphrase)}
}

// RawKey builds a KeySpec from raw key bytes.
func RawKey(alg Algorithm, key []byte) KeySpec {
	return KeySpec{Algorithm: alg, Key: key}
}

// validate checks the spec's invariants and resolves the default algorithm.
func (s KeySpec) validate() (KeySpec, error) {
	alg, err := ParseAlgorithm(string(s.Algorithm))
	if err != nil {
		return KeySpec{}, err
	}

	if len(s.Key) == 0 {
		return KeySpec{}, fmt.Errorf("%w: key material is empty", ErrMissingKeys)
	}

	s.Algorithm = alg

	return s, nil
}
