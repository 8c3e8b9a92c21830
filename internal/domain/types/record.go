package types

// KeyRecord binds a username to a public key in the directory.
type KeyRecord struct {
	Username     Username  `json:"username"`
	PublicKey    PublicKey `json:"public_key"`
	RegisteredAt int64     `json:"registered_at,omitempty"`
}
