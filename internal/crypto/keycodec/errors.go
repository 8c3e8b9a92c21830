package keycodec

import "errors"

var (
	// ErrInvalidLength is returned when encoded key bytes are not exactly Size bytes long.
	ErrInvalidLength = errors.New("invalid public key length")
	// ErrInvalidPoint is returned when Size bytes do not decompress to a valid group element.
	ErrInvalidPoint = errors.New("invalid public key point")
	// ErrInvalidEncoding is returned when base58 text cannot be decoded to bytes.
	ErrInvalidEncoding = errors.New("invalid base58 encoding")
)
