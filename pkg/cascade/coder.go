package cascade

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Coder converts raw ciphertext bytes to and from a printable string. It is
// applied to the outermost ciphertext only, never per stage.
type Coder interface {
	Encode(data []byte) (string, error)
	Decode(text string) ([]byte, error)
}

// Built-in coder names, selectable case-insensitively via CoderByName.
const (
	CoderBase64    = "base64"
	CoderBase64URL = "base64url"
)

// coderNames is the accepted set of built-in coder names.
var coderNames = []string{CoderBase64, CoderBase64URL}

// CoderByName selects a built-in coder by name, matching case-insensitively.
func CoderByName(name string) (Coder, error) {
	switch strings.ToLower(name) {
	case CoderBase64:
		return base64Coder{base64.StdEncoding}, nil
	case CoderBase64URL:
		return base64Coder{base64.URLEncoding}, nil
	default:
		return nil, fmt.Errorf("%w: %q (accepted: %v)", ErrInvalidCoder, name, coderNames)
	}
}

// base64Coder wraps one of the two standard 64-symbol alphabets.
type base64Coder struct {
	enc *base64.Encoding
}

func (c base64Coder) Encode(data []byte) (string, error) {
	return c.enc.EncodeToString(data), nil
}

func (c base64Coder) Decode(text string) ([]byte, error) {
	out, err := c.enc.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingFailed, err)
	}

	return out, nil
}

// CoderFuncs adapts a user-supplied encoder/decoder pair to the Coder
// interface. The pair is treated as opaque: round-trip correctness is the
// caller's responsibility and a broken pair surfaces as decrypt failures.
type CoderFuncs struct {
	EncodeFunc func(data []byte) (string, error)
	DecodeFunc func(text string) ([]byte, error)
}

func (c CoderFuncs) Encode(data []byte) (string, error) {
	return c.EncodeFunc(data)
}

func (c CoderFuncs) Decode(text string) ([]byte, error) {
	return c.DecodeFunc(text)
}

// asEncodingError tags a coder failure with ErrEncodingFailed unless it
// already carries it.
func asEncodingError(err error) error {
	if errors.Is(err, ErrEncodingFailed) {
		return err
	}

	return fmt.Errorf("%w: %v", ErrEncodingFailed, err)
}
