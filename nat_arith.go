package num

import (
	"github.com/pkg/errors"
)

// Add returns n + v.
func (n Nat) Add(v Nat) Nat {
	x, y := n.words(), v.words()
	if len(x) < len(y) {
		x, y = y, x
	}

	r := newNat(len(x) + 1)
	var c uint32
	for i := range x {
		var yi uint32
		if i < len(y) {
			yi = y[i]
		}
		c, r.limbs[i] = addWW(x[i], yi, c)
	}
	r.limbs[len(x)] = c
	r.trim()
	return r
}

// Sub returns n - v. Nat can't hold a negative result, so v > n returns an
// error wrapping ErrInvalidArgument.
func (n Nat) Sub(v Nat) (Nat, error) {
	if n.Cmp(v) < 0 {
		return Nat{}, errors.Wrapf(ErrInvalidArgument, "num: subtrahend %s exceeds minuend %s", v, n)
	}
	r := n.Clone()
	if err := r.subInPlace(v); err != nil {
		return Nat{}, err
	}
	return r, nil
}

// subInPlace subtracts v from acc, overwriting acc's limbs. It must only be
// called on a buffer the caller owns outright; if v > acc the borrow never
// resolves, an error is returned and acc's contents are unspecified.
func (acc *Nat) subInPlace(v Nat) error {
	if len(acc.limbs) == 0 {
		acc.limbs = []uint32{0}
	}
	x, y := acc.limbs, v.words()

	var borrow uint32
	for i := range x {
		var yi uint32
		if i < len(y) {
			yi = y[i]
		}
		borrow, x[i] = subWW(x[i], yi, borrow)
	}
	for i := len(x); i < len(y); i++ {
		if y[i] != 0 {
			borrow = 1
			break
		}
	}
	if borrow != 0 {
		return errors.Wrapf(ErrInvalidArgument, "num: unresolved borrow subtracting %s", v)
	}
	acc.trim()
	return nil
}

// Mul returns n * v using schoolbook multiplication.
func (n Nat) Mul(v Nat) Nat {
	x, y := n.words(), v.words()

	r := newNat(len(x) + len(y))
	z := r.limbs
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		var c uint32
		for j, yj := range y {
			c, z[i+j] = mulAddWWW(xi, yj, z[i+j], c)
		}
		for k := i + len(y); c != 0 && k < len(z); k++ {
			c, z[k] = addWW(z[k], c, 0)
		}
	}
	r.trim()
	return r
}

// Lsh returns n << k. Shifts that would need more than MaxLimbs limbs
// return an error wrapping ErrAllocation.
func (n Nat) Lsh(k uint) (Nat, error) {
	if n.IsZero() {
		return natZero(), nil
	}
	if k/limbBits >= MaxLimbs || n.Len()+int(k/limbBits)+1 > MaxLimbs {
		return Nat{}, errors.Wrapf(ErrAllocation, "num: shift of %d bits", k)
	}
	return n.lsh(k), nil
}

func (n Nat) lsh(k uint) Nat {
	w := n.words()
	limbShift, bitShift := int(k/limbBits), k%limbBits

	r := newNat(len(w) + limbShift + 1)
	if bitShift == 0 {
		copy(r.limbs[limbShift:], w)
	} else {
		var carry uint32
		for i, l := range w {
			r.limbs[i+limbShift] = l<<bitShift | carry
			carry = l >> (limbBits - bitShift)
		}
		r.limbs[len(w)+limbShift] = carry
	}
	r.trim()
	return r
}
