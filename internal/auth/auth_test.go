package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestStaticVerifierPlain(t *testing.T) {
	v := NewStaticVerifier("admin", "secret", "")

	if !v.Verify("admin", "secret") {
		t.Error("correct credentials rejected")
	}
	if v.Verify("admin", "wrong") {
		t.Error("wrong password accepted")
	}
	if v.Verify("other", "secret") {
		t.Error("wrong username accepted")
	}
	if v.Verify("", "") {
		t.Error("empty credentials accepted")
	}
}

func TestStaticVerifierBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	// With a hash configured, the plain password field is ignored.
	v := NewStaticVerifier("admin", "decoy", string(hash))

	if !v.Verify("admin", "secret") {
		t.Error("correct hashed credentials rejected")
	}
	if v.Verify("admin", "decoy") {
		t.Error("plain password field should be ignored when a hash is set")
	}
	if v.Verify("admin", "wrong") {
		t.Error("wrong password accepted against hash")
	}
}
