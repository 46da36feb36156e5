/*
Package num provides Nat, an arbitrary-precision unsigned integer built on
32-bit limbs, along with the modular arithmetic needed for textbook RSA:
ModExp, GCD and ModInverse.

Nat is a value type; all operations return new values.

Simple example:

	base, exp, mod := NatFrom64(4), NatFrom64(13), NatFrom64(497)
	r, err := base.ModExp(exp, mod)
	if err != nil {
		panic(err)
	}
	fmt.Println(r)
	// Output: 1bd

Nat can be created from a variety of sources:

	NatFrom32(v uint32) Nat
	NatFrom64(v uint64) Nat
	NatFromLimbs(limbs []uint32) (Nat, error)
	NatFromBytes(b []byte) (Nat, error)
	NatFromBigInt(v *big.Int) (out Nat, accurate bool)
	ParseHex(s string) (Nat, error)
	ReadHex(r *bufio.Reader) (Nat, error)

Operations that can't produce a valid Nat return an error instead of
panicking: Sub with a larger subtrahend, division by zero and moduli that
are too small wrap ErrInvalidArgument, malformed hex wraps ErrFormat, and a
missing inverse wraps ErrNoInverse. Use errors.Is to test for them.

Nat supports the following formatting and marshalling interfaces:

	- fmt.Formatter
	- fmt.Stringer
	- json.Marshaler
	- json.Unmarshaler
	- encoding.TextMarshaler
	- encoding.TextUnmarshaler

*/
package num
