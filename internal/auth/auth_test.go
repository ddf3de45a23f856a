package auth

import (
	"path/filepath"
	"testing"
)

func TestFlatFileSetAndVerifyPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.txt")

	ff, err := LoadFlatFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := ff.SetPassword("alice", "correct horse"); err != nil {
		t.Fatal(err)
	}

	if !ff.IsValidUser("alice", "correct horse") {
		t.Fatal("expected correct password to verify")
	}
	if ff.IsValidUser("alice", "wrong") {
		t.Fatal("expected wrong password to fail")
	}
	if ff.IsValidUser("bob", "correct horse") {
		t.Fatal("expected unknown user to fail")
	}
}

func TestFlatFileSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.txt")

	ff, err := LoadFlatFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := ff.SetPassword("alice", "secret"); err != nil {
		t.Fatal(err)
	}
	if err := ff.Save(path); err != nil {
		t.Fatal(err)
	}

	reloaded, err := LoadFlatFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reloaded.IsValidUser("alice", "secret") {
		t.Fatal("expected reloaded store to verify the saved password")
	}
}

func TestLoadFlatFileMissingIsEmptyStore(t *testing.T) {
	ff, err := LoadFlatFile(filepath.Join(t.TempDir(), "missing.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if ff.IsValidUser("anyone", "anything") {
		t.Fatal("expected empty store to reject everyone")
	}
}

func TestNoneBackendRejectsEverything(t *testing.T) {
	var b Backend = None{}
	if b.IsValidUser("x", "y") {
		t.Fatal("expected None backend to reject everyone")
	}
}
