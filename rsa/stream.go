package rsa

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	num "github.com/shabbyrobe/go-bignat"
)

// Ciphertext streams are line oriented. Each plaintext block becomes one
// line holding the block's length in decimal, a single space, and the
// encrypted block as hex:
//
//	8 18f080ba2fa5fd7c
//	5 4c683e8e0a5494c9
//
// Recording the length lets a block with leading zero bytes survive the trip
// through an integer.

// Stats summarises a single stream operation.
type Stats struct {
	Blocks    int   // Blocks encrypted or decrypted
	Bytes     int64 // Plaintext bytes read or written
	Skipped   int   // Ciphertext lines skipped because of a bad chunk length
	Truncated int   // Decrypted blocks longer than their recorded length
}

func (s Stats) fields() logrus.Fields {
	return logrus.Fields{
		"blocks":    s.Blocks,
		"bytes":     s.Bytes,
		"skipped":   s.Skipped,
		"truncated": s.Truncated,
	}
}

// LineError reports a malformed ciphertext line. Line is 1-based.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("rsa: ciphertext line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

func workerCount(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func loggerOrDefault(log logrus.FieldLogger) logrus.FieldLogger {
	if log == nil {
		return logrus.StandardLogger()
	}
	return log
}

// Encrypter turns plaintext into a ciphertext stream.
type Encrypter struct {
	Key PublicKey

	// Workers is the number of blocks encrypted concurrently. Values below
	// 1 mean 1.
	Workers int

	Log logrus.FieldLogger
}

// EncryptStream reads all of r, encrypts it in BlockSize chunks and writes
// one line per chunk to w. Lines are written in plaintext order regardless
// of Workers. Nothing is written to w if any block fails.
func (e *Encrypter) EncryptStream(ctx context.Context, r io.Reader, w io.Writer) (stats Stats, err error) {
	log := loggerOrDefault(e.Log)

	bs, err := BlockSize(e.Key.N)
	if err != nil {
		return stats, err
	}

	plain, err := io.ReadAll(r)
	if err != nil {
		return stats, errors.Wrap(err, "rsa: read plaintext")
	}

	blocks := (len(plain) + bs - 1) / bs
	out := make([]num.Nat, blocks)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(e.Workers))
	for i := 0; i < blocks; i++ {
		// Fail fast, in case an errgroup managed function returns an error
		if gCtx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			chunk := plain[i*bs : min((i+1)*bs, len(plain))]
			m, err := num.NatFromBytes(chunk)
			if err != nil {
				return errors.Wrapf(err, "rsa: block %d", i)
			}
			c, err := Encrypt(m, e.Key)
			if err != nil {
				return errors.Wrapf(err, "rsa: block %d", i)
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	bw := bufio.NewWriter(w)
	for i, c := range out {
		chunkLen := min(bs, len(plain)-i*bs)
		if _, err := bw.WriteString(strconv.Itoa(chunkLen) + " "); err != nil {
			return stats, err
		}
		if err := num.WriteHex(bw, c); err != nil {
			return stats, err
		}
	}
	if err := bw.Flush(); err != nil {
		return stats, errors.Wrap(err, "rsa: write ciphertext")
	}

	stats.Blocks = blocks
	stats.Bytes = int64(len(plain))
	log.WithFields(stats.fields()).WithField("block_size", bs).Debug("encrypted stream")
	return stats, nil
}

// Decrypter turns a ciphertext stream back into plaintext.
type Decrypter struct {
	Key PrivateKey

	// Workers is the number of blocks decrypted concurrently. Values below
	// 1 mean 1.
	Workers int

	// Strict turns a chunk length of zero or larger than the block size into
	// a *LineError. By default such lines are logged and skipped.
	Strict bool

	Log logrus.FieldLogger
}

type cipherLine struct {
	line     int
	chunkLen int
	c        num.Nat
}

// parseLines reads every ciphertext line from r. Blank lines are ignored. An
// unterminated final line that stops before its hex is treated as a
// truncated stream: it is logged and reading stops.
func (d *Decrypter) parseLines(r io.Reader, bs int, log logrus.FieldLogger, stats *Stats) ([]cipherLine, error) {
	var lines []cipherLine
	br := bufio.NewReader(r)

	for lineNo := 1; ; lineNo++ {
		raw, rerr := br.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return nil, errors.Wrap(rerr, "rsa: read ciphertext")
		}
		atEOF := rerr == io.EOF
		if atEOF && raw == "" {
			break
		}

		text := strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(text) == "" {
			if atEOF {
				break
			}
			continue
		}

		lenField, hexField, found := strings.Cut(strings.TrimLeft(text, " \t"), " ")
		hexField = strings.TrimLeft(hexField, " \t")

		chunkLen, err := strconv.Atoi(lenField)
		if err != nil {
			return nil, &LineError{Line: lineNo, Err: errors.Wrapf(num.ErrFormat, "chunk length %q", lenField)}
		}

		if chunkLen <= 0 || chunkLen > bs {
			if d.Strict {
				return nil, &LineError{Line: lineNo, Err: errors.Wrapf(ErrChunkLength, "%d, block size %d", chunkLen, bs)}
			}
			log.WithFields(logrus.Fields{
				"line":       lineNo,
				"length":     chunkLen,
				"block_size": bs,
			}).Warn("suspicious chunk length, skipping line")
			stats.Skipped++
			if atEOF {
				break
			}
			continue
		}

		if !found || hexField == "" {
			if atEOF {
				log.WithField("line", lineNo).Warn("incomplete last line in ciphertext")
				break
			}
			return nil, &LineError{Line: lineNo, Err: errors.Wrap(num.ErrFormat, "missing ciphertext")}
		}

		c, err := num.ParseHex(hexField)
		if err != nil {
			return nil, &LineError{Line: lineNo, Err: err}
		}
		if c.GreaterOrEqualTo(d.Key.N) {
			return nil, &LineError{Line: lineNo, Err: ErrMessageTooLarge}
		}
		lines = append(lines, cipherLine{line: lineNo, chunkLen: chunkLen, c: c})

		if atEOF {
			break
		}
	}
	return lines, nil
}

// blockBytes renders m as exactly size bytes. A value that needs more bytes
// keeps its leading size bytes and reports truncation.
func blockBytes(m num.Nat, size int) (out []byte, truncated bool) {
	raw := m.Bytes()
	if len(raw) > size {
		return raw[:size], true
	}
	return m.FillBytes(make([]byte, size)), false
}

// DecryptStream reads a ciphertext stream from r and writes the recovered
// plaintext to w. Nothing is written to w if any line fails.
func (d *Decrypter) DecryptStream(ctx context.Context, r io.Reader, w io.Writer) (stats Stats, err error) {
	log := loggerOrDefault(d.Log)

	bs, err := BlockSize(d.Key.N)
	if err != nil {
		return stats, err
	}

	lines, err := d.parseLines(r, bs, log, &stats)
	if err != nil {
		return stats, err
	}

	out := make([][]byte, len(lines))
	truncated := make([]bool, len(lines))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(d.Workers))
	for i := range lines {
		if gCtx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			cl := lines[i]
			m, err := Decrypt(cl.c, d.Key)
			if err != nil {
				return &LineError{Line: cl.line, Err: err}
			}
			out[i], truncated[i] = blockBytes(m, cl.chunkLen)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	for i, cl := range lines {
		if truncated[i] {
			log.WithFields(logrus.Fields{
				"line":   cl.line,
				"length": cl.chunkLen,
			}).Warn("decrypted block longer than recorded length, truncating")
			stats.Truncated++
		}
	}

	bw := bufio.NewWriter(w)
	for _, b := range out {
		if _, err := bw.Write(b); err != nil {
			return stats, err
		}
		stats.Bytes += int64(len(b))
	}
	if err := bw.Flush(); err != nil {
		return stats, errors.Wrap(err, "rsa: write plaintext")
	}

	stats.Blocks = len(lines)
	log.WithFields(stats.fields()).WithField("block_size", bs).Debug("decrypted stream")
	return stats, nil
}
