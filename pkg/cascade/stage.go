package cascade

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
)

// deriveKey digests raw key material into the 32-byte cipher key.
func deriveKey(material []byte) []byte {
	sum := sha256.Sum256(material)

	return sum[:]
}

// stage is one configured cipher within a chain: an algorithm plus the
// cipher objects built from its derived key. Stages are immutable and
// stateless per call, safe for concurrent use.
type stage struct {
	algorithm Algorithm
	tokenSize int

	block cipher.Block
	aead  cipher.AEAD
}

// newStage derives the key for spec and initializes the cipher objects.
// spec must already be validated.
func newStage(spec KeySpec) (*stage, error) {
	block, err := aes.NewCipher(deriveKey(spec.Key))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivationFailed, err)
	}

	st := &stage{
		algorithm: spec.Algorithm,
		tokenSize: spec.Algorithm.tokenSize(),
		block:     block,
	}

	if spec.Algorithm == GCM {
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrKeyDerivationFailed, err)
		}

		st.aead = aead
	}

	return st, nil
}

// encrypt generates a fresh random token and returns token ++ cipherOutput.
// Empty plaintext is encrypted like any other input.
func (s *stage) encrypt(plaintext []byte) ([]byte, error) {
	token := make([]byte, s.tokenSize, s.tokenSize+len(plaintext)+aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, token); err != nil {
		return nil, fmt.Errorf("generating random value: %w", err)
	}

	switch s.algorithm {
	case CBC:
		padded := pkcs7Pad(plaintext, aes.BlockSize)
		out := make([]byte, len(padded))
		cipher.NewCBCEncrypter(s.block, token).CryptBlocks(out, padded)

		return append(token, out...), nil

	case CTR:
		out := make([]byte, len(plaintext))
		cipher.NewCTR(s.block, token).XORKeyStream(out, plaintext)

		return append(token, out...), nil

	case GCM:
		return s.aead.Seal(token, token, plaintext, nil), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, s.algorithm)
	}
}

// decrypt splits the token prefix from blob and inverts encrypt. Any fault,
// including input shorter than the token, surfaces as ErrDecryptionFailed.
func (s *stage) decrypt(blob []byte) ([]byte, error) {
	if len(blob) < s.tokenSize {
		return nil, fmt.Errorf("%w: input shorter than the %d-byte random value", ErrDecryptionFailed, s.tokenSize)
	}

	token, body := blob[:s.tokenSize], blob[s.tokenSize:]

	switch s.algorithm {
	case CBC:
		if len(body) == 0 || len(body)%aes.BlockSize != 0 {
			return nil, fmt.Errorf("%w: ciphertext is not a multiple of the block size", ErrDecryptionFailed)
		}

		out := make([]byte, len(body))
		cipher.NewCBCDecrypter(s.block, token).CryptBlocks(out, body)

		unpadded, err := pkcs7Unpad(out)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
		}

		return unpadded, nil

	case CTR:
		out := make([]byte, len(body))
		cipher.NewCTR(s.block, token).XORKeyStream(out, body)

		return out, nil

	case GCM:
		out, err := s.aead.Open(nil, token, body, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
		}

		return out, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, s.algorithm)
	}
}

// pkcs7Pad appends PKCS#7 padding so the result is a multiple of blockSize.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize

	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

// pkcs7Unpad strips and verifies PKCS#7 padding.
func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty data")
	}

	padding := int(data[len(data)-1])
	if padding == 0 || padding > len(data) || padding > aes.BlockSize {
		return nil, fmt.Errorf("invalid padding size: %d", padding)
	}

	for _, b := range data[len(data)-padding:] {
		if b != byte(padding) {
			return nil, fmt.Errorf("invalid padding")
		}
	}

	return data[:len(data)-padding], nil
}
