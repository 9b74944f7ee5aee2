package cascade

import (
	"crypto/aes"
	"fmt"
)

// Algorithm identifies the AES mode driven by a stage's derived key.
type Algorithm string

const (
	// CBC is AES in cipher block chaining mode with PKCS#7 padding.
	CBC Algorithm = "CBC"
	// CTR is AES in counter mode.
	CTR Algorithm = "CTR"
	// GCM is AES in Galois/counter mode (authenticated).
	GCM Algorithm = "GCM"
)

// DefaultAlgorithm is selected when a KeySpec does not name an algorithm.
const DefaultAlgorithm = CBC

// gcmNonceSize is the standard GCM nonce length.
const gcmNonceSize = 12

// algorithms is the fixed set of accepted tags, in documentation order.
var algorithms = []Algorithm{CBC, CTR, GCM}

// Valid reports whether a is one of the accepted algorithm tags.
// Matching is case-sensitive.
func (a Algorithm) Valid() bool {
	switch a {
	case CBC, CTR, GCM:
		return true
	default:
		return false
	}
}

// tokenSize returns the length in bytes of the random value prefixed to each
// ciphertext: the IV for CBC, the initial counter block for CTR and the
// nonce for GCM.
func (a Algorithm) tokenSize() int {
	if a == GCM {
		return gcmNonceSize
	}

	return aes.BlockSize
}

// ParseAlgorithm validates tag against the accepted set. The empty string
// selects DefaultAlgorithm.
func ParseAlgorithm(tag string) (Algorithm, error) {
	if tag == "" {
		return DefaultAlgorithm, nil
	}

	alg := Algorithm(tag)
	if !alg.Valid() {
		return "", fmt.Errorf("%w: %q (accepted: %v)", ErrInvalidAlgorithm, tag, algorithms)
	}

	return alg, nil
}
