package auth

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// FlatFile is a Backend backed by a "username:bcrypt-hash" text file, one
// entry per line, loaded entirely into memory. It is grounded on the
// teacher's bcrypt-based user verification in
// internal/database/db_nntp_users.go, re-homed onto a flat file since
// SPEC_FULL.md carries no SQL storage.
type FlatFile struct {
	mu    sync.RWMutex
	users map[string]string
}

// LoadFlatFile reads path and returns a FlatFile backend. A missing file
// is treated as an empty user store rather than an error, so a server can
// run with AUTHINFO enabled before any user has been provisioned.
func LoadFlatFile(path string) (*FlatFile, error) {
	ff := &FlatFile{users: make(map[string]string)}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ff, nil
		}
		return nil, fmt.Errorf("auth: opening %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		ff.users[parts[0]] = parts[1]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("auth: reading %s: %w", path, err)
	}
	return ff, nil
}

// IsValidUser reports whether password verifies against the stored bcrypt
// hash for username.
func (ff *FlatFile) IsValidUser(username, password string) bool {
	ff.mu.RLock()
	hash, ok := ff.users[username]
	ff.mu.RUnlock()
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SetPassword hashes password with bcrypt's default cost and stores it in
// memory for username, used by cmd/papercut-useradd before it rewrites
// the backing file.
func (ff *FlatFile) SetPassword(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth: hashing password: %w", err)
	}
	ff.mu.Lock()
	ff.users[username] = string(hash)
	ff.mu.Unlock()
	return nil
}

// Save writes every user entry back to path as "username:hash" lines.
func (ff *FlatFile) Save(path string) error {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	var b strings.Builder
	for user, hash := range ff.users {
		fmt.Fprintf(&b, "%s:%s\n", user, hash)
	}
	return os.WriteFile(path, []byte(b.String()), 0o600)
}
