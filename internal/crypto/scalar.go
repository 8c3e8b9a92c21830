package crypto

import (
	"errors"
	"fmt"
	"io"

	"ristkey/internal/crypto/keycodec"
	"ristkey/internal/domain"
)

// ErrIdentityMismatch is returned when a stored public key does not match the
// one derived from the stored private scalar.
var ErrIdentityMismatch = errors.New("identity public key does not match private scalar")

// GenerateIdentity draws a uniformly random private scalar from r and derives
// its public key.
func GenerateIdentity(r io.Reader) (domain.Identity, error) {
	s, err := keycodec.Default().Group().RandomScalar(r)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("generate scalar: %w", err)
	}
	var priv domain.PrivateScalar
	copy(priv[:], s.Bytes())
	return domain.Identity{
		Private: priv,
		Public:  keycodec.PublicKeyFromPoint(keycodec.DerivePublicKey(s)),
	}, nil
}

// DeriveIdentity parses priv and derives its public key.
func DeriveIdentity(priv domain.PrivateScalar) (domain.Identity, error) {
	s, err := keycodec.Default().Group().NewScalarFromBytes(priv.Slice())
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{
		Private: priv,
		Public:  keycodec.PublicKeyFromPoint(keycodec.DerivePublicKey(s)),
	}, nil
}

// VerifyIdentity checks that id.Public is the key derived from id.Private.
func VerifyIdentity(id domain.Identity) error {
	derived, err := DeriveIdentity(id.Private)
	if err != nil {
		return err
	}
	if derived.Public != id.Public {
		return ErrIdentityMismatch
	}
	return nil
}
