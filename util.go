package num

type RandSource interface {
	Uint32() uint32
}

// RandNat generates a random Nat of up to limbs limbs from an external
// source.
func RandNat(source RandSource, limbs int) Nat {
	n := newNat(limbs)
	for i := range n.limbs {
		n.limbs[i] = source.Uint32()
	}
	n.trim()
	return n
}

// DifferenceNat subtracts the smaller of a and b from the larger.
func DifferenceNat(a, b Nat) Nat {
	x, y := a, b
	if x.Cmp(y) < 0 {
		x, y = y, x
	}
	r := x.Clone()
	if err := r.subInPlace(y); err != nil {
		// x >= y, so the borrow always resolves.
		panic(err)
	}
	return r
}

func LargerNat(a, b Nat) Nat {
	if a.Cmp(b) < 0 {
		return b
	}
	return a
}

func SmallerNat(a, b Nat) Nat {
	if a.Cmp(b) > 0 {
		return b
	}
	return a
}
