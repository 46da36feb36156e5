/*
Package rsa is a textbook RSA layer over num.Nat: key derivation, armored key
files, and a line-oriented block format for encrypting whole files.

There is no padding, no randomisation and no constant-time arithmetic.
GenerateKeyPair always returns the same keypair built from two public
33-bit primes. This package is a demonstration of the arithmetic engine; it
provides NO confidentiality.

Round trip:

	pub, priv, _ := rsa.GenerateKeyPair()
	var ct, pt bytes.Buffer
	_, err := (&rsa.Encrypter{Key: pub}).EncryptStream(ctx, strings.NewReader("hi"), &ct)
	...
	_, err = (&rsa.Decrypter{Key: priv}).DecryptStream(ctx, &ct, &pt)
*/
package rsa
