package db

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"

	"recircle/internal/constants"
)

var idPattern = regexp.MustCompile(`^[a-z]+_[0-9a-f]{24}$`)

// GenerateID returns a prefixed random identifier, e.g. "usr_3f9a…".
func GenerateID(prefix string) (string, error) {
	b := make([]byte, constants.IDRandomBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return prefix + "_" + hex.EncodeToString(b), nil
}

// IsValidID reports whether s is a well-formed entity identifier.
func IsValidID(s string) bool {
	return idPattern.MatchString(s)
}
