package cascade

import "errors"

var (
	// ErrInvalidAlgorithm is returned when an algorithm tag is not one of the
	// accepted set (CBC, CTR, GCM). Matching is case-sensitive.
	ErrInvalidAlgorithm = errors.New("invalid algorithm")

	// ErrInvalidCoder is returned when a built-in coder name is not recognized.
	ErrInvalidCoder = errors.New("invalid cipher text coder")

	// ErrMissingKeys is returned when a chain is constructed without key
	// material: an empty key list or an empty key.
	ErrMissingKeys = errors.New("missing keys")

	// ErrInvalidRepeatCount is returned when the repeat count is not a
	// positive integer, or is combined with a key list.
	ErrInvalidRepeatCount = errors.New("invalid repeat count")

	// ErrKeyDerivationFailed is returned when stage setup from derived key
	// material fails. The first failure is captured once and replayed on
	// every subsequent call to the chain.
	ErrKeyDerivationFailed = errors.New("key derivation failed")

	// ErrDecryptionFailed is returned for any stage-level decrypt fault:
	// truncated input, malformed padding or an authentication failure.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrEncodingFailed is returned when a cipher text coder fails to encode
	// or decode.
	ErrEncodingFailed = errors.New("cipher text encoding failed")
)
