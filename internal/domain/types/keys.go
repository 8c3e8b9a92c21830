package types

import "ristkey/internal/crypto/keycodec"

// PublicKey is a validated ristretto255 public key; JSON carries it as base58.
type PublicKey = keycodec.PublicKey

// PrivateScalar is the canonical encoding of a ristretto255 scalar.
type PrivateScalar [32]byte

// Slice returns the scalar as a []byte.
func (k PrivateScalar) Slice() []byte { return k[:] }
