package num

import "math/bits"

// Limb primitives. These are the only functions in the package that rely on
// wrapping arithmetic: each one widens its operands into a uint64
// accumulator and splits the result back into a (hi, lo) pair of limbs.

const (
	limbBits = 32
	limbMask = 1<<limbBits - 1
)

// addWW returns x + y + c, with c in {0, 1}, as a carry and a sum limb.
func addWW(x, y, c uint32) (carry, sum uint32) {
	t := uint64(x) + uint64(y) + uint64(c)
	return uint32(t >> limbBits), uint32(t & limbMask)
}

// subWW returns x - y - b, with b in {0, 1}, as a borrow and a difference
// limb. The accumulator wraps below zero, so its sign bit is the borrow.
func subWW(x, y, b uint32) (borrow, diff uint32) {
	t := uint64(x) - uint64(y) - uint64(b)
	return uint32(t >> 63), uint32(t & limbMask)
}

// mulAddWWW returns x*y + z + c as a (hi, lo) pair of limbs.
//
// (2^32-1)^2 + 2*(2^32-1) == 2^64-1, so the accumulator can't overflow.
func mulAddWWW(x, y, z, c uint32) (hi, lo uint32) {
	t := uint64(x)*uint64(y) + uint64(z) + uint64(c)
	return uint32(t >> limbBits), uint32(t & limbMask)
}

func limbBitLen(x uint32) int { return bits.Len32(x) }
