// Package curves defines the group capability set the key codec is built on
// and the concrete providers behind it.
//
// Providers
//
//   - Ristretto255   prime-order group over curve25519 (github.com/gtank/ristretto255)
//   - Edwards25519   prime-order subgroup of edwards25519 (filippo.io/edwards25519)
//
// Each provider owns its notion of a canonical encoding. NewPointFromBytes must
// reject every byte string that would not come back out of Point.Bytes unchanged.
package curves
