package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint returns a short, stable SHA-256 digest of an email address so
// repeated submissions from the same sender can be correlated in the logs.
func Fingerprint(email string) string {
	h := sha256.New()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(email))))

	return hex.EncodeToString(h.Sum(nil))[:16]
}
