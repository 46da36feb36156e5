package num

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const hexDigits = "0123456789abcdef"

// Hex returns n as lowercase hex: the top limb without leading zeros, every
// other limb as exactly 8 digits. Zero is "0".
func (n Nat) Hex() string {
	w := n.words()
	top := len(w) - 1
	buf := make([]byte, 0, 8*len(w))
	buf = strconv.AppendUint(buf, uint64(w[top]), 16)
	for i := top - 1; i >= 0; i-- {
		buf = appendLimbHex(buf, w[i])
	}
	return string(buf)
}

func appendLimbHex(buf []byte, l uint32) []byte {
	for s := limbBits - 4; s >= 0; s -= 4 {
		buf = append(buf, hexDigits[(l>>uint(s))&0xf])
	}
	return buf
}

func (n Nat) String() string { return n.Hex() }

// Format implements fmt.Formatter. %s and %v print canonical hex; every
// other verb is handed to big.Int.
func (n Nat) Format(s fmt.State, c rune) {
	switch c {
	case 's', 'v':
		_, _ = io.WriteString(s, n.Hex())
	default:
		n.AsBigInt().Format(s, c)
	}
}

func hexVal(c byte) (uint32, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint32(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint32(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint32(c-'A') + 10, true
	}
	return 0, false
}

// ParseHex parses one line of hex as written by Hex. Trailing '\r' and '\n'
// are stripped; an empty line is zero. Any other non-hex character returns
// a *FormatError.
func ParseHex(s string) (Nat, error) {
	s = strings.TrimRight(s, "\r\n")
	if len(s) == 0 {
		return natZero(), nil
	}
	for i := 0; i < len(s); i++ {
		if _, ok := hexVal(s[i]); !ok {
			return Nat{}, &FormatError{Offset: i, Char: s[i]}
		}
	}

	limbs := (len(s) + 7) / 8
	if limbs > MaxLimbs {
		return Nat{}, errors.Wrapf(ErrAllocation, "num: hex string of %d digits", len(s))
	}

	// Consume 8-digit chunks from the right, least significant limb first.
	n := newNat(limbs)
	end := len(s)
	for i := range n.limbs {
		start := end - 8
		if start < 0 {
			start = 0
		}
		var limb uint32
		for j := start; j < end; j++ {
			d, _ := hexVal(s[j])
			limb = limb<<4 | d
		}
		n.limbs[i] = limb
		end = start
	}
	n.trim()
	return n, nil
}

// ReadHex reads one line from r and parses it with ParseHex. If r is
// exhausted before any byte is read, io.EOF is returned.
func ReadHex(r *bufio.Reader) (Nat, error) {
	line, err := r.ReadString('\n')
	if err == io.EOF {
		if len(line) == 0 {
			return Nat{}, io.EOF
		}
	} else if err != nil {
		return Nat{}, err
	}
	return ParseHex(line)
}

// WriteHex writes n followed by a newline.
func WriteHex(w io.Writer, n Nat) error {
	_, err := io.WriteString(w, n.Hex()+"\n")
	return err
}

func (n Nat) MarshalText() ([]byte, error) {
	return []byte(n.Hex()), nil
}

func (n *Nat) UnmarshalText(bts []byte) (err error) {
	v, err := ParseHex(string(bts))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

func (n Nat) MarshalJSON() ([]byte, error) {
	return []byte(`"` + n.Hex() + `"`), nil
}

func (n *Nat) UnmarshalJSON(bts []byte) (err error) {
	if len(bts) > 0 && bts[0] == '"' {
		ln := len(bts)
		if ln < 2 || bts[ln-1] != '"' {
			return errors.Wrapf(ErrFormat, "num: nat invalid JSON %q", string(bts))
		}
		bts = bts[1 : ln-1]
	}
	v, err := ParseHex(string(bts))
	if err != nil {
		return err
	}
	*n = v
	return nil
}
