package rsa

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/shabbyrobe/golib/assert"
)

const demoPublicKeyText = "-----BEGIN RSA PUBLIC KEY-----\n" +
	"10000004c00000393\n" +
	"10001\n" +
	"-----END RSA PUBLIC KEY-----\n"

func TestWriteKey(t *testing.T) {
	tt := assert.WrapTB(t)
	pub, _ := demoKeys(t)

	var buf bytes.Buffer
	tt.MustOK(WriteKey(&buf, pub.Key, LabelPublic))
	tt.MustEqual(demoPublicKeyText, buf.String())
}

func TestWriteKeyBadLabel(t *testing.T) {
	for _, label := range []string{"", "TWO WORDS", "DASH-ED", "NEW\nLINE"} {
		t.Run(label, func(t *testing.T) {
			tt := assert.WrapTB(t)
			var buf bytes.Buffer
			err := WriteKey(&buf, Key{}, label)
			tt.MustAssert(errors.Is(err, ErrKeyFormat), "found %v", err)
		})
	}
}

func TestReadKey(t *testing.T) {
	tt := assert.WrapTB(t)
	pub, _ := demoKeys(t)

	key, label, err := ReadKey(strings.NewReader(demoPublicKeyText))
	tt.MustOK(err)
	tt.MustEqual(LabelPublic, label)
	tt.MustAssert(pub.N.Equal(key.N))
	tt.MustAssert(pub.Exp.Equal(key.Exp))

	crlf := strings.Replace(demoPublicKeyText, "\n", "\r\n", -1)
	key, label, err = ReadKey(strings.NewReader(crlf))
	tt.MustOK(err)
	tt.MustEqual(LabelPublic, label)
	tt.MustAssert(pub.N.Equal(key.N))
}

func TestReadKeyUnterminatedFooter(t *testing.T) {
	tt := assert.WrapTB(t)
	in := strings.TrimSuffix(demoPublicKeyText, "\n")
	_, label, err := ReadKey(strings.NewReader(in))
	tt.MustOK(err)
	tt.MustEqual(LabelPublic, label)
}

func TestReadKeyInvalid(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"no-header", "10000004c00000393\n10001\n"},
		{"bad-header", "-----BEGIN RSA PUBLIC-----\n10000004c00000393\n10001\n-----END RSA PUBLIC KEY-----\n"},
		{"empty-label", "-----BEGIN RSA  KEY-----\n10000004c00000393\n10001\n-----END RSA  KEY-----\n"},
		{"missing-modulus", "-----BEGIN RSA PUBLIC KEY-----\n"},
		{"missing-exponent", "-----BEGIN RSA PUBLIC KEY-----\n10000004c00000393\n"},
		{"missing-footer", "-----BEGIN RSA PUBLIC KEY-----\n10000004c00000393\n10001\n"},
		{"mismatched-footer", "-----BEGIN RSA PUBLIC KEY-----\n10000004c00000393\n10001\n-----END RSA PRIVATE KEY-----\n"},
		{"bad-hex", "-----BEGIN RSA PUBLIC KEY-----\n10000004c0000039z\n10001\n-----END RSA PUBLIC KEY-----\n"},
		{"zero-modulus", "-----BEGIN RSA PUBLIC KEY-----\n0\n10001\n-----END RSA PUBLIC KEY-----\n"},
		{"zero-exponent", "-----BEGIN RSA PUBLIC KEY-----\n10000004c00000393\n\n-----END RSA PUBLIC KEY-----\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tt := assert.WrapTB(t)
			_, _, err := ReadKey(strings.NewReader(tc.in))
			tt.MustAssert(errors.Is(err, ErrKeyFormat), "found %v", err)
		})
	}
}

func TestKeyFileRoundTrip(t *testing.T) {
	tt := assert.WrapTB(t)
	pub, priv := demoKeys(t)
	dir := t.TempDir()

	tt.MustOK(SaveKeyPair(dir, pub, priv))

	loadedPub, err := LoadPublicKeyFile(filepath.Join(dir, PublicKeyFile))
	tt.MustOK(err)
	tt.MustAssert(pub.N.Equal(loadedPub.N))
	tt.MustAssert(pub.Exp.Equal(loadedPub.Exp))

	loadedPriv, err := LoadPrivateKeyFile(filepath.Join(dir, PrivateKeyFile))
	tt.MustOK(err)
	tt.MustAssert(priv.N.Equal(loadedPriv.N))
	tt.MustAssert(priv.Exp.Equal(loadedPriv.Exp))

	if runtime.GOOS != "windows" {
		st, err := os.Stat(filepath.Join(dir, PrivateKeyFile))
		tt.MustOK(err)
		tt.MustEqual(os.FileMode(0600), st.Mode().Perm())
	}
}

func TestSaveKeyFileOverwrite(t *testing.T) {
	tt := assert.WrapTB(t)
	pub, priv := demoKeys(t)
	path := filepath.Join(t.TempDir(), "key")

	tt.MustOK(os.WriteFile(path, bytes.Repeat([]byte("x"), 1000), 0644))
	tt.MustOK(SaveKeyFile(path, priv.Key, LabelPrivate))
	tt.MustOK(SaveKeyFile(path, pub.Key, LabelPublic))

	bts, err := os.ReadFile(path)
	tt.MustOK(err)
	tt.MustEqual(demoPublicKeyText, string(bts))
}

func TestLoadKeyFileLabelMismatch(t *testing.T) {
	tt := assert.WrapTB(t)
	pub, priv := demoKeys(t)
	dir := t.TempDir()
	tt.MustOK(SaveKeyPair(dir, pub, priv))

	_, err := LoadPrivateKeyFile(filepath.Join(dir, PublicKeyFile))
	tt.MustAssert(errors.Is(err, ErrKeyFormat), "found %v", err)

	_, err = LoadPublicKeyFile(filepath.Join(dir, PrivateKeyFile))
	tt.MustAssert(errors.Is(err, ErrKeyFormat), "found %v", err)
}

func TestLoadKeyFileMissing(t *testing.T) {
	tt := assert.WrapTB(t)
	_, _, err := LoadKeyFile(filepath.Join(t.TempDir(), "nope.key"))
	tt.MustAssert(errors.Is(err, os.ErrNotExist), "found %v", err)
}
