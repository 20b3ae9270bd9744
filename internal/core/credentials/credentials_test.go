package credentials

import (
	"strings"
	"testing"
)

func TestHasherRoundTrip(t *testing.T) {
	h := NewHasher(4)

	hash, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "s3cret" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", hash)
	}

	if !h.Verify("s3cret", hash) {
		t.Fatalf("correct password rejected")
	}
	if h.Verify("wrong", hash) {
		t.Fatalf("wrong password accepted")
	}
}

// Verify must refuse garbage hashes rather than erroring out.
func TestHasherVerifyMalformedHash(t *testing.T) {
	h := NewHasher(4)
	if h.Verify("s3cret", "not-a-hash") {
		t.Fatalf("malformed hash accepted")
	}
	if h.Verify("s3cret", "") {
		t.Fatalf("empty hash accepted")
	}
}

// Two hashes of the same password differ; the salt lives inside the hash.
func TestHasherSalts(t *testing.T) {
	h := NewHasher(4)
	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Fatalf("expected salted hashes to differ")
	}
}
