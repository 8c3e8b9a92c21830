// Package crypto exposes the identity-key primitives used by ristkey.
//
// Contents
//
//   - Private scalar generation and public key derivation (GenerateIdentity,
//     DeriveIdentity)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// Group arithmetic lives in the curves subpackage and the strict public key
// encodings in keycodec; this package glues them to the domain types.
package crypto
