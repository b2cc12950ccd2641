// Package id generates opaque proxy codes for redirect links.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// codeLength is the proxy code length in characters. 14 characters of
// the URL-safe NanoID alphabet give ~89 bits of entropy, which keeps
// the collision probability negligible at this system's write volume.
const codeLength = 14

// NewCode creates a new opaque proxy code.
//
// Codes are URL-safe and drawn from a space large enough that a
// collision with an existing row is vanishingly unlikely; the store
// still treats a collision as a retryable conflict.
//
// Returns an error if the system has insufficient entropy for secure
// random generation.
func NewCode() (string, error) {
	code, err := gonanoid.New(codeLength)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return code, nil
}

// MustNewCode is like NewCode but panics if generation fails.
// Use only where failure should crash the program (e.g. tooling).
func MustNewCode() string {
	code, err := NewCode()
	if err != nil {
		panic(fmt.Sprintf("failed to generate code: %v", err))
	}
	return code
}
