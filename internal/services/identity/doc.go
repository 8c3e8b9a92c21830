// Package identity manages creation, encryption and loading of the local identity.
//
// It enforces passphrase policy, generates a ristretto255 private scalar with
// its public key, and persists them via the domain.IdentityStore. Loaded
// identities are checked against a fresh derivation before use.
package identity
