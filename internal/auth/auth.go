// Package auth defines the credential-checking contract AUTHINFO uses,
// and a flat-file implementation backed by bcrypt hashes.
package auth

// Backend checks a username/password pair, mirroring papercut's
// Papercut_Auth.is_valid_user.
type Backend interface {
	IsValidUser(username, password string) bool
}

// None is a Backend that accepts nothing; used when no credential store
// is configured but AUTHINFO support is still advertised.
type None struct{}

func (None) IsValidUser(username, password string) bool { return false }
