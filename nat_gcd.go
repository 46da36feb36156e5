package num

import (
	"github.com/pkg/errors"
)

// GCD returns the greatest common divisor of n and v. GCD(0, 0) is 0.
func (n Nat) GCD(v Nat) (Nat, error) {
	x, y := LargerNat(n, v).Clone(), SmallerNat(n, v).Clone()
	for !y.IsZero() {
		r, err := x.Mod(y)
		if err != nil {
			return Nat{}, err
		}
		x, y = y, r
	}
	return x, nil
}

// ModInverse returns the inverse of n modulo m, i.e. the value inv in [1, m)
// with n*inv mod m == 1. m must be > 1.
//
// If gcd(n, m) != 1 there is no inverse and the error wraps ErrNoInverse.
//
// Extended Euclid, keeping only the coefficient of n. The coefficients are
// kept reduced mod m so they never go negative: when s_prev < q*s_curr the
// difference is taken as m - (q*s_curr - s_prev) instead.
func (n Nat) ModInverse(m Nat) (Nat, error) {
	if m.Cmp(natOne()) <= 0 {
		return Nat{}, errors.Wrapf(ErrInvalidArgument, "num: modulus %s must be > 1", m)
	}

	reduced, err := n.Mod(m)
	if err != nil {
		return Nat{}, err
	}
	if reduced.IsZero() {
		return Nat{}, errors.Wrapf(ErrNoInverse, "num: %s is 0 mod %s", n, m)
	}

	tPrev, tCurr := m.Clone(), reduced
	sPrev, sCurr := natZero(), natOne()

	for !tCurr.IsZero() {
		q, r, err := tPrev.DivMod(tCurr)
		if err != nil {
			return Nat{}, err
		}
		tPrev, tCurr = tCurr, r

		term, err := q.Mul(sCurr).Mod(m)
		if err != nil {
			return Nat{}, err
		}

		var next Nat
		if sPrev.Cmp(term) >= 0 {
			next, err = sPrev.Sub(term)
		} else {
			next, err = m.Sub(DifferenceNat(term, sPrev))
		}
		if err != nil {
			return Nat{}, err
		}
		sPrev, sCurr = sCurr, next
	}

	if !tPrev.IsOne() {
		return Nat{}, errors.Wrapf(ErrNoInverse, "num: gcd(%s, %s) is %s", n, m, tPrev)
	}
	return sPrev.Mod(m)
}
