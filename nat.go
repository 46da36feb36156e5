package num

import (
	"math/big"

	"github.com/pkg/errors"
)

// Nat is an arbitrary-precision unsigned integer stored as little-endian
// 32-bit limbs.
//
// Every Nat produced by this package is canonical: the most significant
// limb is nonzero, except for zero itself which is a single 0 limb. The zero
// value of Nat (no limbs at all) also reads as zero.
//
// Nat is a value type; all operations return new values and never write to
// their operands.
type Nat struct {
	limbs []uint32
}

// newNat allocates a zero-filled buffer of n limbs. The result is not
// canonical until trimmed.
func newNat(n int) Nat {
	if n < 1 {
		n = 1
	}
	return Nat{limbs: make([]uint32, n)}
}

func NatFrom32(v uint32) Nat { return Nat{limbs: []uint32{v}} }

func NatFrom64(v uint64) Nat {
	if v>>limbBits == 0 {
		return Nat{limbs: []uint32{uint32(v)}}
	}
	return Nat{limbs: []uint32{uint32(v & limbMask), uint32(v >> limbBits)}}
}

// NatFromLimbs copies little-endian limbs into a canonical Nat.
func NatFromLimbs(limbs []uint32) (Nat, error) {
	if len(limbs) > MaxLimbs {
		return Nat{}, errors.Wrapf(ErrAllocation, "num: %d limbs", len(limbs))
	}
	n := newNat(len(limbs))
	copy(n.limbs, limbs)
	n.trim()
	return n, nil
}

// NatFromBigInt creates a Nat from a big.Int. Negative values can't be
// represented; they return zero and sets accurate to 'false'.
func NatFromBigInt(v *big.Int) (out Nat, accurate bool) {
	if v.Sign() < 0 {
		return natZero(), false
	}
	out, err := NatFromBytes(v.Bytes())
	if err != nil {
		return natZero(), false
	}
	return out, true
}

// words returns the limbs for reading. Callers must not write to the result.
func (n Nat) words() []uint32 {
	if len(n.limbs) == 0 {
		return zeroLimbs
	}
	return n.limbs
}

// trim drops high zero limbs so n is canonical.
func (n *Nat) trim() {
	l := len(n.limbs)
	for l > 1 && n.limbs[l-1] == 0 {
		l--
	}
	n.limbs = n.limbs[:l]
}

// Clone returns a copy of n that shares no memory with it.
func (n Nat) Clone() Nat {
	w := n.words()
	out := make([]uint32, len(w))
	copy(out, w)
	return Nat{limbs: out}
}

// Len returns the number of limbs in use, which is always at least 1.
func (n Nat) Len() int { return len(n.words()) }

// Limbs returns a copy of the little-endian limbs.
func (n Nat) Limbs() []uint32 { return n.Clone().limbs }

func (n Nat) IsZero() bool {
	w := n.words()
	return len(w) == 1 && w[0] == 0
}

func (n Nat) IsOne() bool {
	w := n.words()
	return len(w) == 1 && w[0] == 1
}

// BitLen returns the number of significant bits in n. Zero is reported as
// 1 bit long so that bit-scanning loops visit at least bit 0.
func (n Nat) BitLen() int {
	w := n.words()
	top := len(w) - 1
	for top > 0 && w[top] == 0 {
		top--
	}
	if w[top] == 0 {
		return 1
	}
	return limbBits*top + limbBitLen(w[top])
}

// Bit returns the value of the i'th bit of n, with bit 0 the least
// significant.
func (n Nat) Bit(i int) uint {
	w := n.words()
	if i < 0 {
		panic("num: negative bit index")
	}
	l := i / limbBits
	if l >= len(w) {
		return 0
	}
	return uint(w[l]>>uint(i%limbBits)) & 1
}

// Cmp compares n and v and returns:
//
//	-1 if n <  v
//	 0 if n == v
//	+1 if n >  v
//
// Both sides being canonical, the longer one is the larger.
func (n Nat) Cmp(v Nat) int {
	x, y := n.words(), v.words()
	if len(x) > len(y) {
		return 1
	} else if len(x) < len(y) {
		return -1
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] > y[i] {
			return 1
		} else if x[i] < y[i] {
			return -1
		}
	}
	return 0
}

func (n Nat) Equal(v Nat) bool            { return n.Cmp(v) == 0 }
func (n Nat) LessThan(v Nat) bool         { return n.Cmp(v) < 0 }
func (n Nat) GreaterOrEqualTo(v Nat) bool { return n.Cmp(v) >= 0 }

// IsUint64 reports whether n can be represented as a uint64.
func (n Nat) IsUint64() bool { return n.Len() <= 2 }

// Uint64 truncates n to its low 64 bits. See IsUint64() if you want to check
// before you convert.
func (n Nat) Uint64() uint64 {
	w := n.words()
	v := uint64(w[0])
	if len(w) > 1 {
		v |= uint64(w[1]) << limbBits
	}
	return v
}

func (n Nat) AsBigInt() *big.Int {
	return new(big.Int).SetBytes(n.Bytes())
}
