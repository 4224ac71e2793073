package token

import (
	"encoding/hex"
	"testing"
)

func TestSource_Generate(t *testing.T) {
	t.Parallel()

	src := NewSource()

	tok, err := src.Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tok) != tokenBytes*2 {
		t.Errorf("expected token length %d, got %d", tokenBytes*2, len(tok))
	}
	if _, err := hex.DecodeString(tok); err != nil {
		t.Errorf("expected hex-encoded token, got %q: %v", tok, err)
	}
}

func TestSource_Generate_Unique(t *testing.T) {
	t.Parallel()

	src := NewSource()
	seen := make(map[string]struct{}, 100)

	for i := 0; i < 100; i++ {
		tok, err := src.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, dup := seen[tok]; dup {
			t.Fatalf("duplicate token generated: %q", tok)
		}
		seen[tok] = struct{}{}
	}
}
