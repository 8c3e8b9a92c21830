package curves

import (
	"encoding/binary"
	"errors"
	"io"
)

const (
	// ScalarSize is the canonical scalar encoding length for the 25519 groups.
	ScalarSize = 32
	// PointSize is the compressed point encoding length for the 25519 groups.
	PointSize = 32
)

var (
	ErrInvalidPoint        = errors.New("invalid point encoding")
	ErrInvalidScalar       = errors.New("invalid scalar encoding")
	ErrInvalidPointLength  = errors.New("invalid point length")
	ErrInvalidScalarLength = errors.New("invalid scalar length")
)

// Scalar is an element of a group's scalar field. Values are immutable.
type Scalar interface {
	// Bytes returns the canonical little-endian encoding.
	Bytes() []byte
	Equal(Scalar) bool
	Negate() Scalar
	IsZero() bool
}

// Point is a group element. Values are immutable.
type Point interface {
	// Bytes returns the compressed encoding (PointSize bytes).
	Bytes() []byte
	Equal(Point) bool
	IsIdentity() bool
	Add(Point) Point
	ScalarMult(Scalar) Point
}

// Group supplies scalar multiplication, compression and decompression for one
// prime-order group.
type Group interface {
	Name() string

	BasePoint() Point
	Identity() Point
	ScalarBaseMult(Scalar) Point

	NewScalarFromUint64(uint64) Scalar
	NewScalarFromBytes([]byte) (Scalar, error)
	RandomScalar(io.Reader) (Scalar, error)

	// NewPointFromBytes decompresses b, rejecting anything non-canonical.
	NewPointFromBytes(b []byte) (Point, error)
}

// uint64Bytes returns n as a 32-byte little-endian scalar encoding.
func uint64Bytes(n uint64) []byte {
	b := make([]byte, ScalarSize)
	binary.LittleEndian.PutUint64(b, n)
	return b
}

// uniformBytes reads 64 bytes from r for wide reduction into a scalar.
func uniformBytes(r io.Reader) ([]byte, error) {
	b := make([]byte, 64)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}
