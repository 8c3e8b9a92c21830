package curves

import (
	"bytes"
	"fmt"
	"io"

	"filippo.io/edwards25519"
)

// lMinusOne is l-1 little-endian, where l is the order of the prime-order
// subgroup. P lies in that subgroup iff (l-1)·P == -P.
var lMinusOne = []byte{
	0xec, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
}

// Edwards25519 is the prime-order subgroup of edwards25519. Unlike
// ristretto255 the curve has cofactor 8, so decoding checks both the encoding
// and subgroup membership.
type Edwards25519 struct {
	lMinusOne *edwards25519.Scalar
}

// NewEdwards25519 returns the edwards25519 provider.
func NewEdwards25519() *Edwards25519 {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(lMinusOne)
	if err != nil {
		panic(fmt.Sprintf("edwards25519: l-1: %v", err))
	}
	return &Edwards25519{lMinusOne: s}
}

func (g *Edwards25519) Name() string { return "edwards25519" }

func (g *Edwards25519) BasePoint() Point {
	return &EdwardsPoint{p: edwards25519.NewGeneratorPoint()}
}

func (g *Edwards25519) Identity() Point {
	return &EdwardsPoint{p: edwards25519.NewIdentityPoint()}
}

func (g *Edwards25519) ScalarBaseMult(s Scalar) Point {
	es := mustEdwardsScalar(s)
	return &EdwardsPoint{p: edwards25519.NewIdentityPoint().ScalarBaseMult(es.s)}
}

func (g *Edwards25519) NewScalarFromUint64(n uint64) Scalar {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(uint64Bytes(n))
	if err != nil {
		panic(fmt.Sprintf("edwards25519: scalar from uint64: %v", err))
	}
	return &EdwardsScalar{s: s}
}

func (g *Edwards25519) NewScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != ScalarSize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidScalarLength, ScalarSize, len(b))
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}
	return &EdwardsScalar{s: s}, nil
}

func (g *Edwards25519) RandomScalar(r io.Reader) (Scalar, error) {
	b, err := uniformBytes(r)
	if err != nil {
		return nil, err
	}
	s, err := edwards25519.NewScalar().SetUniformBytes(b)
	if err != nil {
		return nil, err
	}
	return &EdwardsScalar{s: s}, nil
}

func (g *Edwards25519) NewPointFromBytes(b []byte) (Point, error) {
	if len(b) != PointSize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidPointLength, PointSize, len(b))
	}
	p, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	// SetBytes accepts non-canonical y coordinates.
	if !bytes.Equal(p.Bytes(), b) {
		return nil, fmt.Errorf("%w: non-canonical encoding", ErrInvalidPoint)
	}
	q := edwards25519.NewIdentityPoint().ScalarMult(g.lMinusOne, p)
	if q.Equal(edwards25519.NewIdentityPoint().Negate(p)) != 1 {
		return nil, fmt.Errorf("%w: point has a small-order component", ErrInvalidPoint)
	}
	return &EdwardsPoint{p: p}, nil
}

// EdwardsScalar implements Scalar.
type EdwardsScalar struct {
	s *edwards25519.Scalar
}

func (s *EdwardsScalar) Bytes() []byte { return s.s.Bytes() }

func (s *EdwardsScalar) Equal(other Scalar) bool {
	o, ok := other.(*EdwardsScalar)
	return ok && s.s.Equal(o.s) == 1
}

func (s *EdwardsScalar) Negate() Scalar {
	return &EdwardsScalar{s: edwards25519.NewScalar().Negate(s.s)}
}

func (s *EdwardsScalar) IsZero() bool {
	return s.s.Equal(edwards25519.NewScalar()) == 1
}

// EdwardsPoint implements Point.
type EdwardsPoint struct {
	p *edwards25519.Point
}

func (p *EdwardsPoint) Bytes() []byte { return p.p.Bytes() }

func (p *EdwardsPoint) Equal(other Point) bool {
	o, ok := other.(*EdwardsPoint)
	return ok && p.p.Equal(o.p) == 1
}

func (p *EdwardsPoint) IsIdentity() bool {
	return p.p.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (p *EdwardsPoint) Add(other Point) Point {
	o := mustEdwardsPoint(other)
	return &EdwardsPoint{p: edwards25519.NewIdentityPoint().Add(p.p, o.p)}
}

func (p *EdwardsPoint) ScalarMult(s Scalar) Point {
	es := mustEdwardsScalar(s)
	return &EdwardsPoint{p: edwards25519.NewIdentityPoint().ScalarMult(es.s, p.p)}
}

func mustEdwardsScalar(s Scalar) *EdwardsScalar {
	es, ok := s.(*EdwardsScalar)
	if !ok {
		panic(fmt.Sprintf("edwards25519: foreign scalar type %T", s))
	}
	return es
}

func mustEdwardsPoint(p Point) *EdwardsPoint {
	ep, ok := p.(*EdwardsPoint)
	if !ok {
		panic(fmt.Sprintf("edwards25519: foreign point type %T", p))
	}
	return ep
}

var _ Group = (*Edwards25519)(nil)
