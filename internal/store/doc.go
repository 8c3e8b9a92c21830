// Package store provides file-based persistence for ristkey's local data.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk. All methods are concurrency-safe via
// internal locking. Stored files live under the user's configured home
// directory and are replaced atomically.
//
// The package includes stores for:
//   - The identity key, sealed with a passphrase (IdentityFileStore)
//   - Key records looked up from a directory (KeyRecordFileStore)
package store
