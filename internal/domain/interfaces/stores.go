package interfaces

import domaintypes "ristkey/internal/domain/types"

// IdentityStore persists your long-term identity key.
type IdentityStore interface {
	SaveIdentity(passphrase string, id domaintypes.Identity) error
	LoadIdentity(passphrase string) (domaintypes.Identity, error)
}

// KeyRecordStore caches key records looked up from a directory.
type KeyRecordStore interface {
	SaveKeyRecord(record domaintypes.KeyRecord) error
	LoadKeyRecord(username domaintypes.Username) (domaintypes.KeyRecord, bool, error)
}
