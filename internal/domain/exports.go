package domain

import (
	interfaces "ristkey/internal/domain/interfaces"
	types "ristkey/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username      = types.Username
	Fingerprint   = types.Fingerprint
	PublicKey     = types.PublicKey
	PrivateScalar = types.PrivateScalar
	Identity      = types.Identity
	KeyRecord     = types.KeyRecord
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	IdentityService = interfaces.IdentityService
	DirectoryClient = interfaces.DirectoryClient
	IdentityStore   = interfaces.IdentityStore
	KeyRecordStore  = interfaces.KeyRecordStore
)
