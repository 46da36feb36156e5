package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/shabbyrobe/go-bignat/rsa"
)

const insecureNotice = "The keypair is a fixed demonstration key built from public 33-bit primes. It is NOT secure."

func main() {
	log := logrus.New()
	if err := newApp(log).Run(os.Args); err != nil {
		log.WithError(err).Error("natrsa failed")
		os.Exit(1)
	}
}

func newApp(log *logrus.Logger) *cli.App {
	return &cli.App{
		Name:        "natrsa",
		Usage:       "Textbook RSA file encryption",
		Description: insecureNotice,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "key-dir",
				Aliases: []string{"k"},
				Usage:   "Directory holding public.key and private.key",
				Value:   ".",
				EnvVars: []string{"NATRSA_KEY_DIR"},
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Number of blocks to process concurrently",
				Value:   1,
				EnvVars: []string{"NATRSA_WORKERS"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (trace, debug, info, warning, error)",
				Value:   "warning",
				EnvVars: []string{"NATRSA_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:    "log-json",
				Usage:   "Log as JSON",
				EnvVars: []string{"NATRSA_LOG_JSON"},
			},
			&cli.BoolFlag{
				Name:    "strict",
				Usage:   "Fail on ciphertext lines with an invalid chunk length instead of skipping them",
				EnvVars: []string{"NATRSA_STRICT"},
			},
		},
		Before: func(cCtx *cli.Context) error {
			level, err := logrus.ParseLevel(cCtx.String("log-level"))
			if err != nil {
				return err
			}
			log.SetLevel(level)
			if cCtx.Bool("log-json") {
				log.SetFormatter(&logrus.JSONFormatter{})
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "enc",
				Usage:     "Write the demonstration keypair to --key-dir, then encrypt <input> into <output>",
				ArgsUsage: "<input> <output>",
				Action: func(cCtx *cli.Context) error {
					in, out, err := inOut(cCtx)
					if err != nil {
						return err
					}
					return encryptFile(cCtx.Context, log, cCtx, in, out)
				},
			},
			{
				Name:      "dec",
				Usage:     "Decrypt <input> into <output> using private.key from --key-dir",
				ArgsUsage: "<input> <output>",
				Action: func(cCtx *cli.Context) error {
					in, out, err := inOut(cCtx)
					if err != nil {
						return err
					}
					return decryptFile(cCtx.Context, log, cCtx, in, out)
				},
			},
			{
				Name:  "keygen",
				Usage: "Write the demonstration keypair to --key-dir",
				Action: func(cCtx *cli.Context) error {
					_, _, err := writeKeys(log, cCtx.String("key-dir"))
					return err
				},
			},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.Args().Present() {
				return errors.Errorf("invalid mode %q, use 'enc' or 'dec'", cCtx.Args().First())
			}
			return cli.ShowAppHelp(cCtx)
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func inOut(cCtx *cli.Context) (in, out string, err error) {
	if cCtx.NArg() != 2 {
		return "", "", errors.Errorf("%s: expected <input> <output>, found %d arguments", cCtx.Command.Name, cCtx.NArg())
	}
	return cCtx.Args().Get(0), cCtx.Args().Get(1), nil
}

func writeKeys(log *logrus.Logger, dir string) (rsa.PublicKey, rsa.PrivateKey, error) {
	pub, priv, err := rsa.GenerateKeyPair()
	if err != nil {
		return pub, priv, errors.Wrap(err, "failed to generate keypair")
	}
	if err := rsa.SaveKeyPair(dir, pub, priv); err != nil {
		return pub, priv, errors.Wrap(err, "failed to save keypair")
	}

	log.WithFields(logrus.Fields{
		"public":  filepath.Join(dir, rsa.PublicKeyFile),
		"private": filepath.Join(dir, rsa.PrivateKeyFile),
		"modulus": pub.N,
	}).Info("wrote demonstration keypair; it is NOT secure")
	if log.IsLevelEnabled(logrus.DebugLevel) {
		log.Debug("public key:\n" + spew.Sdump(pub))
	}
	return pub, priv, nil
}

func encryptFile(ctx context.Context, log *logrus.Logger, cCtx *cli.Context, inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return errors.Wrap(err, "failed to open input")
	}
	defer in.Close()

	pub, _, err := writeKeys(log, cCtx.String("key-dir"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := &rsa.Encrypter{
		Key:     pub,
		Workers: cCtx.Int("workers"),
		Log:     log.WithField("input", inPath),
	}
	stats, err := enc.EncryptStream(ctx, in, &buf)
	if err != nil {
		return errors.Wrapf(err, "failed to encrypt %q", inPath)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return errors.Wrap(err, "failed to write output")
	}

	log.WithFields(logrus.Fields{
		"output": outPath,
		"blocks": stats.Blocks,
		"bytes":  stats.Bytes,
	}).Info("encrypted")
	return nil
}

func decryptFile(ctx context.Context, log *logrus.Logger, cCtx *cli.Context, inPath, outPath string) error {
	keyPath := filepath.Join(cCtx.String("key-dir"), rsa.PrivateKeyFile)
	priv, err := rsa.LoadPrivateKeyFile(keyPath)
	if err != nil {
		return errors.Wrap(err, "failed to load private key (run 'enc' or 'keygen' first)")
	}
	if log.IsLevelEnabled(logrus.DebugLevel) {
		log.Debug("private key:\n" + spew.Sdump(priv))
	}

	in, err := os.Open(inPath)
	if err != nil {
		return errors.Wrap(err, "failed to open input")
	}
	defer in.Close()

	var buf bytes.Buffer
	dec := &rsa.Decrypter{
		Key:     priv,
		Workers: cCtx.Int("workers"),
		Strict:  cCtx.Bool("strict"),
		Log:     log.WithField("input", inPath),
	}
	stats, err := dec.DecryptStream(ctx, in, &buf)
	if err != nil {
		return errors.Wrapf(err, "failed to decrypt %q", inPath)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return errors.Wrap(err, "failed to write output")
	}

	log.WithFields(logrus.Fields{
		"output":    outPath,
		"blocks":    stats.Blocks,
		"bytes":     stats.Bytes,
		"skipped":   stats.Skipped,
		"truncated": stats.Truncated,
	}).Info("decrypted")
	return nil
}
