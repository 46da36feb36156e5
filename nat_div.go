package num

import (
	"github.com/pkg/errors"
)

// DivMod returns the quotient q = floor(n/m) and remainder r = n mod m.
// A zero divisor returns an error wrapping ErrInvalidArgument.
//
// This is binary long division: each round aligns m's top bit under the
// remainder's top bit, backs off by one bit if that overshoots, subtracts,
// and sets the corresponding quotient bit. It costs O(BitLen(n)) rounds.
func (n Nat) DivMod(m Nat) (q, r Nat, err error) {
	if m.IsZero() {
		return Nat{}, Nat{}, errors.Wrap(ErrInvalidArgument, "num: division by zero")
	}
	if n.Cmp(m) < 0 {
		return natZero(), n.Clone(), nil
	}

	q, r = natZero(), n.Clone()
	mBits := m.BitLen()
	one := natOne()

	for r.Cmp(m) >= 0 {
		// r >= m guarantees r.BitLen() >= mBits.
		shift := uint(r.BitLen() - mBits)
		d := m.lsh(shift)
		if d.Cmp(r) > 0 {
			// shift can't be 0 here: m << 0 == m <= r.
			shift--
			d = m.lsh(shift)
		}
		if err := r.subInPlace(d); err != nil {
			return Nat{}, Nat{}, err
		}
		q = q.Add(one.lsh(shift))
	}

	return q, r, nil
}

// Div returns floor(n/m).
func (n Nat) Div(m Nat) (Nat, error) {
	q, _, err := n.DivMod(m)
	return q, err
}

// Mod returns n mod m.
func (n Nat) Mod(m Nat) (Nat, error) {
	_, r, err := n.DivMod(m)
	return r, err
}
