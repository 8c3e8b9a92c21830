package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"ristkey/internal/domain"
)

// Fingerprint returns a short hex fingerprint of a public key.
//
// It hashes the canonical encoding with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(pub domain.PublicKey) domain.Fingerprint {
	sum := sha256.Sum256(pub.Slice())
	return domain.Fingerprint(hex.EncodeToString(sum[:10]))
}
