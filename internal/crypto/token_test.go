package crypto

import (
	"encoding/base64"
	"testing"
)

func TestGenerateSessionToken(t *testing.T) {
	token, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("generate token error: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("token is not valid base64: %v", err)
	}
	if len(raw) != tokenBytes {
		t.Errorf("expected %d bytes of entropy, got %d", tokenBytes, len(raw))
	}

	other, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("generate token error: %v", err)
	}
	if token == other {
		t.Errorf("two generated tokens are identical")
	}
}

func TestHashSessionTokenDiffersFromRaw(t *testing.T) {
	token, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("generate token error: %v", err)
	}

	hash := HashSessionToken(token)
	if hash == token {
		t.Errorf("hash must not equal the raw token")
	}
	if len(hash) != 64 {
		t.Errorf("expected 64 hex chars for a 256-bit digest, got %d", len(hash))
	}
}

func TestHashSessionTokenDeterministic(t *testing.T) {
	if HashSessionToken("abc") != HashSessionToken("abc") {
		t.Errorf("same input must produce the same digest")
	}
}

func TestHashSessionTokenTamperSensitive(t *testing.T) {
	token, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("generate token error: %v", err)
	}

	original := HashSessionToken(token)

	for i := 0; i < len(token); i += 17 {
		mutated := []byte(token)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if HashSessionToken(string(mutated)) == original {
			t.Errorf("single-character mutation at %d did not change the digest", i)
		}
	}
}
