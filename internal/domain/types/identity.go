package types

// Identity holds your long-term private scalar and the public key derived from it.
type Identity struct {
	Private PrivateScalar `json:"private"`
	Public  PublicKey     `json:"public"`
}
