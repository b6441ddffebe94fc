package log

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a short, non-reversible tag for b that can be logged in
// place of key material: the first 8 hex characters of sha256(b).
func Fingerprint(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:4])
}
