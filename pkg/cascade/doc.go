// Package cascade implements password/key based symmetric encryption of byte
// payloads by composing one or more independently keyed AES stages into a
// single encrypt/decrypt pipeline.
//
// Each stage wraps one derived key and one cipher mode (CBC, CTR or GCM) and
// prefixes every ciphertext with a freshly generated random value that serves
// as IV, initial counter block or nonce. A chain applies its stages in order
// when encrypting and in reverse order when decrypting, so chain order is
// part of the effective key. The outermost ciphertext can be presented as
// printable text through a pluggable coder (Base64 by default).
package cascade
