package num

import (
	"github.com/pkg/errors"
)

// NatFromBytes interprets b as a big-endian unsigned integer. An empty
// slice is zero.
func NatFromBytes(b []byte) (Nat, error) {
	if len(b) == 0 {
		return natZero(), nil
	}
	limbs := (len(b) + 3) / 4
	if limbs > MaxLimbs {
		return Nat{}, errors.Wrapf(ErrAllocation, "num: %d bytes", len(b))
	}

	n := newNat(limbs)
	for i, c := range b {
		pos := len(b) - 1 - i
		n.limbs[pos/4] |= uint32(c) << (8 * uint(pos%4))
	}
	n.trim()
	return n, nil
}

// Bytes returns n as a minimal big-endian byte slice. Zero is a single 0x00
// byte.
func (n Nat) Bytes() []byte {
	return n.FillBytes(make([]byte, (n.BitLen()+7)/8))
}

// FillBytes writes n into buf as a big-endian integer, zero-padding on the
// left, and returns buf. If n doesn't fit in buf, FillBytes panics.
func (n Nat) FillBytes(buf []byte) []byte {
	if (n.BitLen()+7)/8 > len(buf) && !n.IsZero() {
		panic("num: value does not fit in buffer")
	}
	for i := range buf {
		buf[i] = 0
	}
	w := n.words()
	for i := 0; i < len(buf) && i/4 < len(w); i++ {
		buf[len(buf)-1-i] = byte(w[i/4] >> (8 * uint(i%4)))
	}
	return buf
}
