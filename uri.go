package xspf

import (
	"strings"
	"unicode/utf8"

	"github.com/lestrrat-go/strcursor"
)

// Character classes from RFC 3986. The uric set is the union of the
// reserved and unreserved productions plus '%'.
const (
	alphaChars      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars      = "0123456789"
	unreservedMarks = "-._~"
	genDelims       = ":/?#[]@"
	subDelims       = "!$&'()*+,;="
)

var uricTable [128]bool

func init() {
	for _, r := range alphaChars + digitChars + unreservedMarks + genDelims + subDelims + "%" {
		uricTable[r] = true
	}
}

func isURIChar(r rune) bool {
	return r >= 0 && r < 128 && uricTable[r]
}

const upperhex = "0123456789ABCDEF"

// Quote percent-encodes every character outside the uric set, leaving legal
// URI characters (including sub-delimiters and brackets) untouched. It is
// applied to location-typed fields on write so that path-like URIs round-trip
// without over-escaping. Multi-byte runes escape to one triplet per UTF-8
// byte, uppercase hex.
func Quote(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if isURIChar(r) {
			b.WriteRune(r)
			continue
		}
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], r)
		for _, c := range buf[:n] {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0f])
		}
	}
	return b.String()
}

// Urify validates value against the uric character set, percent-encoding
// stray characters first. A string that still contains disallowed characters
// after escaping is rejected with ErrInvalidURI. The input is never mutated.
func Urify(value string) (URI, error) {
	quoted := Quote(value)

	cur := strcursor.NewRuneCursor(strings.NewReader(quoted))
	for !cur.Done() {
		if !isURIChar(cur.Peek()) {
			return "", ErrInvalidURI{Value: value}
		}
		cur.Advance(1)
	}
	return quoted, nil
}

// Unquote reverses percent-encoding. Unlike net/url it is total: well-formed
// %XX triplets are decoded, anything else passes through verbatim, so
// relative paths and stray percent signs survive a read unharmed.
func Unquote(value string) string {
	if !strings.Contains(value, "%") {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '%' && i+2 < len(value) {
			hi, ok1 := unhex(value[i+1])
			lo, ok2 := unhex(value[i+2])
			if ok1 && ok2 {
				b.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
