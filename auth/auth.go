package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// DraftKey derives the draft storage key from a client-supplied key.
// HMAC keeps arbitrary client input from addressing foreign rows and makes
// the stored key deterministic per (client key, salt) pair.
func DraftKey(clientKey, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(clientKey))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// GenerateClientKey creates a random secure key for a browser/device that has
// not presented one yet. The client stores it and replays it on later visits
// so its draft can be found again.
func GenerateClientKey() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate client key: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}
