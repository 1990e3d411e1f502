package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Small operator utility to mint bcrypt hashes, e.g. for seeding a user row
// by hand.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/hash/main.go <password>")
		os.Exit(1)
	}

	password := os.Args[1]
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Password: %s\n", password)
	fmt.Printf("Hash: %s\n", string(hash))
}
