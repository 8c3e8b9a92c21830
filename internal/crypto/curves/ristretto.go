package curves

import (
	"fmt"
	"io"

	"github.com/gtank/ristretto255"
)

// Ristretto255 is the ristretto255 group. It is cofactor-free, so every
// canonical encoding names a distinct element of the prime-order group.
type Ristretto255 struct{}

// NewRistretto255 returns the ristretto255 provider.
func NewRistretto255() *Ristretto255 { return &Ristretto255{} }

func (g *Ristretto255) Name() string { return "ristretto255" }

func (g *Ristretto255) BasePoint() Point {
	return &RistrettoPoint{e: ristretto255.NewElement().Base()}
}

func (g *Ristretto255) Identity() Point {
	return &RistrettoPoint{e: ristretto255.NewElement().Zero()}
}

func (g *Ristretto255) ScalarBaseMult(s Scalar) Point {
	rs := mustRistrettoScalar(s)
	return &RistrettoPoint{e: ristretto255.NewElement().ScalarBaseMult(rs.s)}
}

func (g *Ristretto255) NewScalarFromUint64(n uint64) Scalar {
	// Any value below 2^64 is canonical.
	s, err := ristretto255.NewScalar().SetCanonicalBytes(uint64Bytes(n))
	if err != nil {
		panic(fmt.Sprintf("ristretto255: scalar from uint64: %v", err))
	}
	return &RistrettoScalar{s: s}
}

func (g *Ristretto255) NewScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != ScalarSize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidScalarLength, ScalarSize, len(b))
	}
	s, err := ristretto255.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}
	return &RistrettoScalar{s: s}, nil
}

func (g *Ristretto255) RandomScalar(r io.Reader) (Scalar, error) {
	b, err := uniformBytes(r)
	if err != nil {
		return nil, err
	}
	s, err := ristretto255.NewScalar().SetUniformBytes(b)
	if err != nil {
		return nil, err
	}
	return &RistrettoScalar{s: s}, nil
}

func (g *Ristretto255) NewPointFromBytes(b []byte) (Point, error) {
	if len(b) != PointSize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidPointLength, PointSize, len(b))
	}
	e, err := ristretto255.NewElement().SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return &RistrettoPoint{e: e}, nil
}

// RistrettoScalar implements Scalar.
type RistrettoScalar struct {
	s *ristretto255.Scalar
}

func (s *RistrettoScalar) Bytes() []byte { return s.s.Bytes() }

func (s *RistrettoScalar) Equal(other Scalar) bool {
	o, ok := other.(*RistrettoScalar)
	return ok && s.s.Equal(o.s) == 1
}

func (s *RistrettoScalar) Negate() Scalar {
	return &RistrettoScalar{s: ristretto255.NewScalar().Negate(s.s)}
}

func (s *RistrettoScalar) IsZero() bool {
	return s.s.Equal(ristretto255.NewScalar().Zero()) == 1
}

// RistrettoPoint implements Point.
type RistrettoPoint struct {
	e *ristretto255.Element
}

func (p *RistrettoPoint) Bytes() []byte { return p.e.Bytes() }

func (p *RistrettoPoint) Equal(other Point) bool {
	o, ok := other.(*RistrettoPoint)
	return ok && p.e.Equal(o.e) == 1
}

func (p *RistrettoPoint) IsIdentity() bool {
	return p.e.Equal(ristretto255.NewElement().Zero()) == 1
}

func (p *RistrettoPoint) Add(other Point) Point {
	o := mustRistrettoPoint(other)
	return &RistrettoPoint{e: ristretto255.NewElement().Add(p.e, o.e)}
}

func (p *RistrettoPoint) ScalarMult(s Scalar) Point {
	rs := mustRistrettoScalar(s)
	return &RistrettoPoint{e: ristretto255.NewElement().ScalarMult(rs.s, p.e)}
}

func mustRistrettoScalar(s Scalar) *RistrettoScalar {
	rs, ok := s.(*RistrettoScalar)
	if !ok {
		panic(fmt.Sprintf("ristretto255: foreign scalar type %T", s))
	}
	return rs
}

func mustRistrettoPoint(p Point) *RistrettoPoint {
	rp, ok := p.(*RistrettoPoint)
	if !ok {
		panic(fmt.Sprintf("ristretto255: foreign point type %T", p))
	}
	return rp
}

var _ Group = (*Ristretto255)(nil)
