package cascade

import (
	"errors"
	"strings"
	"testing"
)

func TestParseAlgorithm_Accepted(t *testing.T) {
	for _, tag := range []string{"CBC", "CTR", "GCM"} {
		alg, err := ParseAlgorithm(tag)
		if err != nil {
			t.Fatalf("ParseAlgorithm(%q) error: %v", tag, err)
		}
		if string(alg) != tag {
			t.Fatalf("ParseAlgorithm(%q) = %q", tag, alg)
		}
	}
}

func TestParseAlgorithm_EmptySelectsDefault(t *testing.T) {
	alg, err := ParseAlgorithm("")
	if err != nil {
		t.Fatalf("ParseAlgorithm(\"\") error: %v", err)
	}
	if alg != CBC {
		t.Fatalf("default algorithm = %q, want CBC", alg)
	}
}

func TestParseAlgorithm_Rejected(t *testing.T) {
	for _, tag := range []string{"cbc", "Gcm", "XTS", "AES"} {
		_, err := ParseAlgorithm(tag)
		if !errors.Is(err, ErrInvalidAlgorithm) {
			t.Fatalf("ParseAlgorithm(%q) = %v, want ErrInvalidAlgorithm", tag, err)
		}
		// The error names the offending value and the accepted set.
		if !strings.Contains(err.Error(), tag) || !strings.Contains(err.Error(), "CBC") {
			t.Fatalf("error %q does not name the value and accepted set", err)
		}
	}
}

func TestAlgorithm_TokenSizes(t *testing.T) {
	sizes := map[Algorithm]int{CBC: 16, CTR: 16, GCM: 12}

	for alg, want := range sizes {
		if got := alg.tokenSize(); got != want {
			t.Fatalf("%s token size = %d, want %d", alg, got, want)
		}
	}
}
