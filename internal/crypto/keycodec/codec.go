package keycodec

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"

	"ristkey/internal/crypto/curves"
)

// Size is the length of a canonical public key encoding.
const Size = curves.PointSize

// Codec converts public keys of one group.
type Codec struct {
	group curves.Group
}

// New returns a codec over g. g must produce Size-byte point encodings.
func New(g curves.Group) *Codec { return &Codec{group: g} }

var defaultCodec = New(curves.NewRistretto255())

// Default returns the ristretto255 codec used by the package-level functions.
func Default() *Codec { return defaultCodec }

// Group returns the provider behind c.
func (c *Codec) Group() curves.Group { return c.group }

// DerivePublicKey returns s·B. A zero scalar gives the identity element.
func (c *Codec) DerivePublicKey(s curves.Scalar) curves.Point {
	return c.group.ScalarBaseMult(s)
}

// Encode returns the canonical compressed encoding of p.
func (c *Codec) Encode(p curves.Point) [Size]byte {
	var out [Size]byte
	copy(out[:], p.Bytes())
	return out
}

// Decode parses a canonical compressed encoding.
func (c *Codec) Decode(b []byte) (curves.Point, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidLength, Size, len(b))
	}
	p, err := c.group.NewPointFromBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s rejected %x: %v", ErrInvalidPoint, c.group.Name(), b, err)
	}
	return p, nil
}

// EncodeBase58 returns the base58 (Bitcoin alphabet, no checksum) text of Encode(p).
func (c *Codec) EncodeBase58(p curves.Point) string {
	b := c.Encode(p)
	return base58.Encode(b[:])
}

// DecodeBase58 decodes base58 text and then the resulting bytes.
func (c *Codec) DecodeBase58(s string) (curves.Point, error) {
	b, err := decodeBase58(s)
	if err != nil {
		return nil, err
	}
	return c.Decode(b)
}

// decodeBase58 reports characters outside the alphabet as ErrInvalidEncoding.
// base58.Decode signals them only by returning an empty slice.
func decodeBase58(s string) ([]byte, error) {
	b := base58.Decode(s)
	if len(b) == 0 && s != "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEncoding, s)
	}
	return b, nil
}

// DerivePublicKey is Default().DerivePublicKey.
func DerivePublicKey(s curves.Scalar) curves.Point { return defaultCodec.DerivePublicKey(s) }

// Encode is Default().Encode.
func Encode(p curves.Point) [Size]byte { return defaultCodec.Encode(p) }

// Decode is Default().Decode.
func Decode(b []byte) (curves.Point, error) { return defaultCodec.Decode(b) }

// EncodeBase58 is Default().EncodeBase58.
func EncodeBase58(p curves.Point) string { return defaultCodec.EncodeBase58(p) }

// DecodeBase58 is Default().DecodeBase58.
func DecodeBase58(s string) (curves.Point, error) { return defaultCodec.DecodeBase58(s) }
