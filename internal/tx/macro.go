package tx

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidMacro is returned for a sequence with a malformed escape.
var ErrInvalidMacro = errors.New("invalid macro sequence")

// Macro is a named byte sequence written with Go escapes, e.g. "AT\r\n".
type Macro struct {
	Name     string `yaml:"name"`
	Sequence string `yaml:"sequence"`
}

// Bytes decodes the escapes in the sequence. \xNN yields the raw byte NN.
func (m Macro) Bytes() ([]byte, error) {
	var out []byte
	s := m.Sequence
	for len(s) > 0 {
		if s[0] == '"' {
			out = append(out, '"')
			s = s[1:]
			continue
		}
		value, multibyte, tail, err := strconv.UnquoteChar(s, '"')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidMacro, m.Name, err)
		}
		if multibyte {
			out = append(out, string(value)...)
		} else {
			out = append(out, byte(value))
		}
		s = tail
	}
	return out, nil
}
