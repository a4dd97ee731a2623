// Package ring implements a single-process, synchronous simulation of the
// Chord distributed hash table: identifier arithmetic, finger tables, the
// recursive lookup protocol, and the join/leave migration protocol.
package ring

import (
	"crypto/sha1"
	"fmt"
	"math/big"
)

// Space fixes the identifier ring's modulus, N = 2^Bits.
type Space struct {
	Bits int
	mod  *big.Int
}

// NewSpace builds a Space for the given bit width. Bits must be in [1, 160]:
// SHA-1 produces 160 bits, so anything wider can never be reached by HashID.
func NewSpace(bits int) (Space, error) {
	if bits < 1 || bits > 160 {
		return Space{}, fmt.Errorf("ring: id space width %d out of range [1,160]", bits)
	}
	return Space{Bits: bits, mod: new(big.Int).Lsh(big.NewInt(1), uint(bits))}, nil
}

// ID is an identifier on the ring, always held reduced mod 2^Bits.
type ID struct {
	v *big.Int
}

func (sp Space) reduce(v *big.Int) ID {
	return ID{v: new(big.Int).Mod(v, sp.mod)}
}

// Zero returns the identifier 0.
func (sp Space) Zero() ID { return ID{v: big.NewInt(0)} }

// FromInt builds the identifier for a small non-negative integer, e.g. a
// node's chosen position on the ring in a test scenario. It is an error if
// x does not fit in [0, 2^Bits).
func (sp Space) FromInt(x int) (ID, error) {
	if x < 0 {
		return ID{}, fmt.Errorf("ring: negative id %d", x)
	}
	v := big.NewInt(int64(x))
	if v.Cmp(sp.mod) >= 0 {
		return ID{}, fmt.Errorf("ring: id %d out of bounds for %d-bit space", x, sp.Bits)
	}
	return ID{v: v}, nil
}

// HashID maps an arbitrary key to the ring by SHA-1, reduced mod 2^Bits.
func (sp Space) HashID(key string) ID {
	sum := sha1.Sum([]byte(key))
	return sp.reduce(new(big.Int).SetBytes(sum[:]))
}

// Offset returns (id + 2^i) mod 2^Bits — the start of finger table slot i.
func (sp Space) Offset(id ID, i int) ID {
	step := new(big.Int).Lsh(big.NewInt(1), uint(i))
	return sp.reduce(new(big.Int).Add(id.v, step))
}

// Cmp orders two identifiers as plain integers (not circularly).
func (x ID) Cmp(y ID) int { return x.v.Cmp(y.v) }

// Equal reports whether x and y are the same identifier.
func (x ID) Equal(y ID) bool { return x.v.Cmp(y.v) == 0 }

// String renders the identifier in decimal, e.g. for logging and as a map key.
func (x ID) String() string { return x.v.String() }

// InOpenRange reports whether x lies strictly inside the clockwise arc
// (start, end) on the circle. When start == end the arc is the whole ring
// except the single point start itself.
func InOpenRange(start, end, x ID) bool {
	if start.Cmp(end) < 0 {
		return start.Cmp(x) < 0 && x.Cmp(end) < 0
	}
	return x.Cmp(start) > 0 || x.Cmp(end) < 0
}

// InRightClosedRange reports whether x lies inside the clockwise arc
// (start, end]. When start == end the arc covers the whole ring, start
// included.
func InRightClosedRange(start, end, x ID) bool {
	if start.Cmp(end) < 0 {
		return start.Cmp(x) < 0 && x.Cmp(end) <= 0
	}
	return x.Cmp(start) > 0 || x.Cmp(end) <= 0
}
