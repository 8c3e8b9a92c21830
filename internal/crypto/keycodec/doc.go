// Package keycodec derives public keys from private scalars and converts them
// between group elements, canonical 32-byte encodings and base58 text.
//
// Decoding is strict: a byte string is accepted only if it is exactly 32 bytes
// and the group provider accepts it as a canonical compressed point. Every
// failure wraps one of ErrInvalidLength, ErrInvalidPoint or ErrInvalidEncoding.
//
// The package holds no mutable state and is safe for concurrent use. The
// package-level functions use ristretto255; New builds a codec over any
// curves.Group.
package keycodec
