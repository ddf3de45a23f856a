// Command papercut-useradd provisions or updates an AUTHINFO credential
// in the flat-file user store, hashing the entered password with bcrypt
// before it ever touches disk.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/go-while/go-papercut/internal/auth"
)

func main() {
	path := flag.String("file", "", "path to the flat-file user store")
	username := flag.String("user", "", "username to add or update")
	flag.Parse()

	if *path == "" || *username == "" {
		fmt.Fprintln(os.Stderr, "usage: papercut-useradd -file <path> -user <name>")
		os.Exit(2)
	}

	store, err := auth.LoadFlatFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading %s: %v\n", *path, err)
		os.Exit(1)
	}

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading password: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprint(os.Stderr, "Confirm: ")
	confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading password: %v\n", err)
		os.Exit(1)
	}
	if string(password) != string(confirm) {
		fmt.Fprintln(os.Stderr, "passwords do not match")
		os.Exit(1)
	}

	if err := store.SetPassword(*username, string(password)); err != nil {
		fmt.Fprintf(os.Stderr, "setting password: %v\n", err)
		os.Exit(1)
	}
	if err := store.Save(*path); err != nil {
		fmt.Fprintf(os.Stderr, "saving %s: %v\n", *path, err)
		os.Exit(1)
	}

	fmt.Printf("user %s saved to %s\n", *username, *path)
}
