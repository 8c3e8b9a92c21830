package keycodec

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil/base58"

	"ristkey/internal/crypto/curves"
)

// PublicKey is a validated ristretto255 public key in canonical form. Its text
// form is base58, so it round-trips through JSON as a base58 string.
type PublicKey [Size]byte

// PublicKeyFromPoint returns the canonical form of p.
func PublicKeyFromPoint(p curves.Point) PublicKey { return PublicKey(Encode(p)) }

// ParsePublicKey decodes and validates base58 text.
func ParsePublicKey(s string) (PublicKey, error) {
	p, err := DecodeBase58(s)
	if err != nil {
		return PublicKey{}, err
	}
	return PublicKeyFromPoint(p), nil
}

// Point decodes k. It fails only for a PublicKey not built by this package.
func (k PublicKey) Point() (curves.Point, error) { return Decode(k[:]) }

// Slice returns the key as a []byte.
func (k PublicKey) Slice() []byte { return k[:] }

// IsZero reports whether k is the zero value (the identity encoding).
func (k PublicKey) IsZero() bool { return k == PublicKey{} }

func (k PublicKey) String() string { return base58.Encode(k[:]) }

// Hex returns the lowercase hex form of k.
func (k PublicKey) Hex() string { return hex.EncodeToString(k[:]) }

// MarshalText implements encoding.TextMarshaler.
func (k PublicKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler with full validation.
func (k *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
