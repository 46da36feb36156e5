package num

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned when an operand violates an operation's
	// precondition: a subtrahend larger than the minuend, a zero divisor, or
	// a modulus that is too small.
	ErrInvalidArgument = errors.New("num: invalid argument")

	// ErrFormat is returned when text or bytes can't be decoded into a Nat.
	ErrFormat = errors.New("num: format error")

	// ErrNoInverse is returned by ModInverse when gcd(a, m) != 1.
	ErrNoInverse = errors.New("num: no modular inverse")

	// ErrAllocation is returned when an operation would need more than
	// MaxLimbs limbs to hold its result.
	ErrAllocation = errors.New("num: allocation limit exceeded")
)

// FormatError reports the position of the first invalid character in hex
// input.
type FormatError struct {
	Offset int
	Char   byte
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("num: invalid hex character %q at offset %d", e.Char, e.Offset)
}

func (e *FormatError) Unwrap() error { return ErrFormat }
