package num

import (
	"github.com/pkg/errors"
)

// ModExp returns base**exp mod mod, for mod >= 2.
//
// Square-and-multiply, scanning exp from bit 0 upwards. The running square
// is only updated between iterations, never after the last one.
func (base Nat) ModExp(exp, mod Nat) (Nat, error) {
	if mod.Cmp(natTwo()) < 0 {
		return Nat{}, errors.Wrapf(ErrInvalidArgument, "num: modulus %s must be >= 2", mod)
	}
	if exp.IsZero() {
		return natOne(), nil
	}

	x, err := base.Mod(mod)
	if err != nil {
		return Nat{}, err
	}
	y := natOne()

	nbits := exp.BitLen()
	for i := 0; i < nbits; i++ {
		if exp.Bit(i) == 1 {
			if y, err = y.Mul(x).Mod(mod); err != nil {
				return Nat{}, err
			}
		}
		if i < nbits-1 {
			if x, err = x.Mul(x).Mod(mod); err != nil {
				return Nat{}, err
			}
		}
	}

	return y, nil
}
