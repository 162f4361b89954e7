package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// IDLen is the length of generated identifiers in hex characters.
const IDLen = 12

// GenerateID returns a random identifier of IDLen hex characters.
func GenerateID() (string, error) {
	bytes := make([]byte, IDLen/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// ShortID truncates id for display.
func ShortID(id string) string {
	if len(id) > IDLen {
		return id[:IDLen]
	}
	return id
}
