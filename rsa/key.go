package rsa

import (
	"github.com/pkg/errors"

	num "github.com/shabbyrobe/go-bignat"
)

// Demonstration key material. These primes are public and tiny: anything
// encrypted under the resulting keypair can be factored and read in
// milliseconds. Never use it to protect real data.
const (
	DemoP = 4294967311
	DemoQ = 4294967357
	DemoE = 65537
)

var (
	ErrKeyTooSmall     = errors.New("rsa: key modulus too small")
	ErrKeyFormat       = errors.New("rsa: invalid key")
	ErrMessageTooLarge = errors.New("rsa: message not smaller than modulus")
	ErrChunkLength     = errors.New("rsa: invalid chunk length")
)

// Key is an RSA modulus and the exponent that goes with it. The same shape
// serves public keys (Exp == e) and private keys (Exp == d).
type Key struct {
	N   num.Nat `json:"n"`
	Exp num.Nat `json:"exp"`
}

type PublicKey struct{ Key }

func (k PublicKey) Label() string { return LabelPublic }

type PrivateKey struct{ Key }

func (k PrivateKey) Label() string { return LabelPrivate }

// GenerateKeyPair returns the fixed demonstration keypair built from DemoP,
// DemoQ and DemoE. It is deterministic and INSECURE.
func GenerateKeyPair() (PublicKey, PrivateKey, error) {
	return NewKeyPair(num.NatFrom64(DemoP), num.NatFrom64(DemoQ), num.NatFrom64(DemoE))
}

// NewKeyPair derives a textbook RSA keypair from the primes p and q and the
// public exponent e. Primality is not checked.
func NewKeyPair(p, q, e num.Nat) (pub PublicKey, priv PrivateKey, err error) {
	one := num.NatFrom32(1)
	pm1, err := p.Sub(one)
	if err != nil {
		return pub, priv, errors.Wrap(err, "rsa: p")
	}
	qm1, err := q.Sub(one)
	if err != nil {
		return pub, priv, errors.Wrap(err, "rsa: q")
	}

	n := p.Mul(q)
	if _, err := BlockSize(n); err != nil {
		return pub, priv, err
	}

	phi := pm1.Mul(qm1)
	d, err := e.ModInverse(phi)
	if err != nil {
		return pub, priv, errors.Wrapf(err, "rsa: exponent %s has no inverse mod phi", e)
	}

	pub = PublicKey{Key{N: n, Exp: e.Clone()}}
	priv = PrivateKey{Key{N: n.Clone(), Exp: d}}
	return pub, priv, nil
}

// BlockSize returns the largest number of plaintext bytes that always encode
// to an integer below n.
func BlockSize(n num.Nat) (int, error) {
	bits := n.BitLen()
	if bits <= 8 {
		return 0, errors.Wrapf(ErrKeyTooSmall, "rsa: modulus is %d bits", bits)
	}
	return (bits - 1) / 8, nil
}

func (k Key) crypt(v num.Nat) (num.Nat, error) {
	if v.GreaterOrEqualTo(k.N) {
		return num.Nat{}, errors.Wrapf(ErrMessageTooLarge, "rsa: %d bit value, %d bit modulus", v.BitLen(), k.N.BitLen())
	}
	return v.ModExp(k.Exp, k.N)
}

// Encrypt returns m^e mod n. m must be smaller than n.
func Encrypt(m num.Nat, pub PublicKey) (num.Nat, error) {
	return pub.crypt(m)
}

// Decrypt returns c^d mod n. c must be smaller than n.
func Decrypt(c num.Nat, priv PrivateKey) (num.Nat, error) {
	return priv.crypt(c)
}
