package cascade

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func TestCoderByName_RoundTrip(t *testing.T) {
	// Bytes chosen so the two alphabets actually differ (+/ vs -_).
	data := []byte{0xfb, 0xff, 0xbe, 0x00, 0x01, 0xfa}

	for _, name := range []string{"base64", "base64url"} {
		coder, err := CoderByName(name)
		if err != nil {
			t.Fatalf("CoderByName(%q) error: %v", name, err)
		}

		text, err := coder.Encode(data)
		if err != nil {
			t.Fatalf("%s encode error: %v", name, err)
		}

		back, err := coder.Decode(text)
		if err != nil {
			t.Fatalf("%s decode error: %v", name, err)
		}

		if !bytes.Equal(back, data) {
			t.Fatalf("%s round trip: got %x, want %x", name, back, data)
		}
	}
}

func TestCoderByName_CaseInsensitive(t *testing.T) {
	for _, name := range []string{"Base64", "BASE64URL", "base64URL"} {
		if _, err := CoderByName(name); err != nil {
			t.Fatalf("CoderByName(%q) error: %v", name, err)
		}
	}
}

func TestCoderByName_Unknown(t *testing.T) {
	_, err := CoderByName("base32")
	if !errors.Is(err, ErrInvalidCoder) {
		t.Fatalf("CoderByName(\"base32\") = %v, want ErrInvalidCoder", err)
	}
	if !strings.Contains(err.Error(), "base32") || !strings.Contains(err.Error(), "base64url") {
		t.Fatalf("error %q does not name the value and accepted set", err)
	}
}

func TestCoder_DecodeMalformed(t *testing.T) {
	coder, err := CoderByName("base64")
	if err != nil {
		t.Fatalf("CoderByName error: %v", err)
	}

	if _, err := coder.Decode("not!!valid@@base64"); !errors.Is(err, ErrEncodingFailed) {
		t.Fatalf("decode of malformed text = %v, want ErrEncodingFailed", err)
	}
}

func TestCoderFuncs_CustomPair(t *testing.T) {
	hexCoder := CoderFuncs{
		EncodeFunc: func(data []byte) (string, error) { return hex.EncodeToString(data), nil },
		DecodeFunc: func(text string) ([]byte, error) { return hex.DecodeString(text) },
	}

	chain, err := New(Passphrase(GCM, "custom coder"), WithCoder(hexCoder))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	text, err := chain.EncryptText("payload")
	if err != nil {
		t.Fatalf("EncryptText error: %v", err)
	}

	if _, err := hex.DecodeString(text); err != nil {
		t.Fatalf("ciphertext %q is not hex: %v", text, err)
	}

	back, err := chain.DecryptText(text)
	if err != nil {
		t.Fatalf("DecryptText error: %v", err)
	}
	if back != "payload" {
		t.Fatalf("round trip = %q, want %q", back, "payload")
	}
}

func TestCoderFuncs_FailureSurfacesAsEncodingError(t *testing.T) {
	broken := CoderFuncs{
		EncodeFunc: func([]byte) (string, error) { return "", errors.New("boom") },
		DecodeFunc: func(string) ([]byte, error) { return nil, errors.New("boom") },
	}

	chain, err := New(Passphrase(CBC, "broken coder"), WithCoder(broken))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if _, err := chain.EncryptText("x"); !errors.Is(err, ErrEncodingFailed) {
		t.Fatalf("EncryptText = %v, want ErrEncodingFailed", err)
	}
	if _, err := chain.DecryptText("x"); !errors.Is(err, ErrEncodingFailed) {
		t.Fatalf("DecryptText = %v, want ErrEncodingFailed", err)
	}
}
