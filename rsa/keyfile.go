package rsa

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	num "github.com/shabbyrobe/go-bignat"
)

const (
	LabelPublic  = "PUBLIC"
	LabelPrivate = "PRIVATE"

	PublicKeyFile  = "public.key"
	PrivateKeyFile = "private.key"

	headerPrefix = "-----BEGIN RSA "
	footerPrefix = "-----END RSA "
	armorSuffix  = " KEY-----"
)

func validLabel(label string) bool {
	if label == "" {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		if c <= ' ' || c == '-' || c > '~' {
			return false
		}
	}
	return true
}

// WriteKey writes key as an armored block:
//
//	-----BEGIN RSA <label> KEY-----
//	<modulus hex>
//	<exponent hex>
//	-----END RSA <label> KEY-----
func WriteKey(w io.Writer, key Key, label string) error {
	if !validLabel(label) {
		return errors.Wrapf(ErrKeyFormat, "rsa: label %q", label)
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(headerPrefix + label + armorSuffix + "\n")
	if err := num.WriteHex(bw, key.N); err != nil {
		return err
	}
	if err := num.WriteHex(bw, key.Exp); err != nil {
		return err
	}
	bw.WriteString(footerPrefix + label + armorSuffix + "\n")
	return bw.Flush()
}

func readArmorLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", io.EOF
		}
	} else if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadKey parses a block written by WriteKey and returns the key along with
// the label found in its header. The footer must be present and carry the
// same label. Anything after the footer is ignored.
func ReadKey(r io.Reader) (key Key, label string, err error) {
	br := bufio.NewReader(r)

	header, err := readArmorLine(br)
	if err == io.EOF {
		return key, "", errors.Wrap(ErrKeyFormat, "rsa: empty key")
	} else if err != nil {
		return key, "", err
	}
	if !strings.HasPrefix(header, headerPrefix) || !strings.HasSuffix(header, armorSuffix) ||
		len(header) <= len(headerPrefix)+len(armorSuffix) {
		return key, "", errors.Wrapf(ErrKeyFormat, "rsa: bad header %q", header)
	}
	label = header[len(headerPrefix) : len(header)-len(armorSuffix)]
	if !validLabel(label) {
		return key, "", errors.Wrapf(ErrKeyFormat, "rsa: bad label %q", label)
	}

	for _, part := range []struct {
		name string
		into *num.Nat
	}{
		{"modulus", &key.N},
		{"exponent", &key.Exp},
	} {
		v, err := num.ReadHex(br)
		if err == io.EOF {
			return Key{}, "", errors.Wrapf(ErrKeyFormat, "rsa: missing %s", part.name)
		} else if errors.Is(err, num.ErrFormat) {
			return Key{}, "", errors.Wrapf(ErrKeyFormat, "rsa: %s: %v", part.name, err)
		} else if err != nil {
			return Key{}, "", err
		}
		if v.IsZero() {
			return Key{}, "", errors.Wrapf(ErrKeyFormat, "rsa: zero %s", part.name)
		}
		*part.into = v
	}

	footer, err := readArmorLine(br)
	if err == io.EOF {
		return Key{}, "", errors.Wrap(ErrKeyFormat, "rsa: missing footer")
	} else if err != nil {
		return Key{}, "", err
	}
	if expected := footerPrefix + label + armorSuffix; footer != expected {
		return Key{}, "", errors.Wrapf(ErrKeyFormat, "rsa: footer %q does not match header %q", footer, header)
	}

	return key, label, nil
}

func keyFileMode(label string) os.FileMode {
	if label == LabelPublic {
		return 0644
	}
	return 0600
}

// SaveKeyFile writes key to path, replacing any existing file. Anything
// other than a public key is written owner-only.
func SaveKeyFile(path string, key Key, label string) (rerr error) {
	mode := keyFileMode(label)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return errors.Wrap(err, "rsa: save key")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && rerr == nil {
			rerr = errors.Wrap(cerr, "rsa: save key")
		}
	}()

	// OpenFile leaves the mode of an existing file alone.
	if err := f.Chmod(mode); err != nil {
		return errors.Wrap(err, "rsa: save key")
	}
	return WriteKey(f, key, label)
}

func LoadKeyFile(path string) (Key, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return Key{}, "", errors.Wrap(err, "rsa: load key")
	}
	defer f.Close()

	key, label, err := ReadKey(f)
	if err != nil {
		return Key{}, "", errors.Wrapf(err, "rsa: load key %q", path)
	}
	return key, label, nil
}

// SaveKeyPair writes PublicKeyFile and PrivateKeyFile into dir.
func SaveKeyPair(dir string, pub PublicKey, priv PrivateKey) error {
	if err := SaveKeyFile(filepath.Join(dir, PublicKeyFile), pub.Key, pub.Label()); err != nil {
		return err
	}
	return SaveKeyFile(filepath.Join(dir, PrivateKeyFile), priv.Key, priv.Label())
}

// LoadPrivateKeyFile loads a key from path and requires its label to be
// LabelPrivate.
func LoadPrivateKeyFile(path string) (PrivateKey, error) {
	key, label, err := LoadKeyFile(path)
	if err != nil {
		return PrivateKey{}, err
	}
	if label != LabelPrivate {
		return PrivateKey{}, errors.Wrapf(ErrKeyFormat, "rsa: %q holds a %s key, expected %s", path, label, LabelPrivate)
	}
	return PrivateKey{key}, nil
}

// LoadPublicKeyFile loads a key from path and requires its label to be
// LabelPublic.
func LoadPublicKeyFile(path string) (PublicKey, error) {
	key, label, err := LoadKeyFile(path)
	if err != nil {
		return PublicKey{}, err
	}
	if label != LabelPublic {
		return PublicKey{}, errors.Wrapf(ErrKeyFormat, "rsa: %q holds a %s key, expected %s", path, label, LabelPublic)
	}
	return PublicKey{key}, nil
}
