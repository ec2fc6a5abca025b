// Package auth checks admin credentials. The credential source is
// pluggable; the static implementation compares against values injected
// from configuration. There is no rate limiting or lockout.
package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Verifier decides whether a submitted username/password pair is valid.
type Verifier interface {
	Verify(username, password string) bool
}

// StaticVerifier holds one configured admin credential. When Hash is
// set it takes precedence and the password is checked with bcrypt;
// otherwise the plain password is compared in constant time.
type StaticVerifier struct {
	Username string
	Password string
	Hash     string
}

// NewStaticVerifier builds a verifier from configured values.
func NewStaticVerifier(username, password, hash string) *StaticVerifier {
	return &StaticVerifier{Username: username, Password: password, Hash: hash}
}

// Verify implements Verifier.
func (v *StaticVerifier) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) == 1

	if v.Hash != "" {
		passOK := bcrypt.CompareHashAndPassword([]byte(v.Hash), []byte(password)) == nil
		return userOK && passOK
	}

	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(v.Password)) == 1
	return userOK && passOK
}
