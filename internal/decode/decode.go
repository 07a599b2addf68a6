// Package decode turns received bytes into text for the pipeline.
package decode

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/suryansh-23/rxterm/internal/types"
)

// ErrUnknownEncoding is returned by New for an encoding name it does not support.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Decoder converts a byte stream to text. For UTF-8, a rune split across
// two reads is held back until it completes. Invalid bytes decode to U+FFFD.
type Decoder struct {
	enc  types.Encoding
	cm   *charmap.Charmap
	tail []byte
}

// New returns a Decoder for enc. An empty enc selects UTF-8.
func New(enc types.Encoding) (*Decoder, error) {
	d := &Decoder{enc: enc}
	switch enc {
	case "", types.EncodingUTF8:
		d.enc = types.EncodingUTF8
	case types.EncodingLatin1:
		d.cm = charmap.ISO8859_1
	case types.EncodingCP437:
		d.cm = charmap.CodePage437
	case types.EncodingASCII:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}
	return d, nil
}

// Encoding returns the encoding in use.
func (d *Decoder) Encoding() types.Encoding {
	return d.enc
}

// Decode returns the text for p.
func (d *Decoder) Decode(p []byte) string {
	switch {
	case d.cm != nil:
		var sb strings.Builder
		for _, b := range p {
			sb.WriteRune(d.cm.DecodeByte(b))
		}
		return sb.String()
	case d.enc == types.EncodingASCII:
		var sb strings.Builder
		for _, b := range p {
			if b >= utf8.RuneSelf {
				sb.WriteRune(utf8.RuneError)
				continue
			}
			sb.WriteByte(b)
		}
		return sb.String()
	}
	buf := append(d.tail, p...)
	head, tail := splitUTF8Tail(buf)
	d.tail = append([]byte(nil), tail...)
	return validUTF8(head)
}

// Flush returns any held back bytes, decoded as invalid.
func (d *Decoder) Flush() string {
	if len(d.tail) == 0 {
		return ""
	}
	s := validUTF8(d.tail)
	d.tail = nil
	return s
}

// splitUTF8Tail splits buf before a trailing incomplete rune.
func splitUTF8Tail(buf []byte) ([]byte, []byte) {
	if len(buf) == 0 {
		return nil, nil
	}
	start := len(buf) - 1
	for start >= 0 && len(buf)-start < utf8.UTFMax && !utf8.RuneStart(buf[start]) {
		start--
	}
	if start < 0 || !utf8.RuneStart(buf[start]) || utf8.FullRune(buf[start:]) {
		return buf, nil
	}
	return buf[:start], buf[start:]
}

// validUTF8 replaces every invalid byte with U+FFFD.
func validUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}
