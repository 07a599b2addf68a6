// Package ctrlchar removes control characters from rich text, optionally
// replacing them with visible symbols.
package ctrlchar

import (
	"unicode"

	"github.com/suryansh-23/rxterm/internal/debug"
	"github.com/suryansh-23/rxterm/internal/richtext"
)

// ControlChar is a control character with a visible replacement.
type ControlChar rune

const (
	CarriageReturn ControlChar = '\r'
	LineFeed       ControlChar = '\n'
	Escape         ControlChar = '\x1b'
)

// Mapped lists every control character that has a glyph.
var Mapped = []ControlChar{CarriageReturn, LineFeed, Escape}

// Glyph returns the visible symbol for c. ok is false when c has no mapping,
// which is distinct from a mapping to an empty string.
func (c ControlChar) Glyph() (glyph string, ok bool) {
	switch c {
	case CarriageReturn:
		return "↵", true
	case LineFeed:
		return "␤", true
	case Escape:
		return "␛", true
	}
	return "", false
}

// Parser moves text from an input to an output, dropping control characters.
type Parser struct {
	ReplaceWithSymbols bool
	Logger             *debug.Logger
}

// Parse consumes in entirely. Characters before each control character are
// moved unchanged; the control character itself is dropped and, when
// ReplaceWithSymbols is set, its glyph is appended with the same attributes.
// Every dropped line feed leaves a new-line marker in out.
func (p *Parser) Parse(in, out *richtext.Text) error {
	for {
		idx := in.IndexFunc(unicode.IsControl)
		if idx < 0 {
			break
		}
		if err := out.ShiftCharsIn(in, idx); err != nil {
			return err
		}
		r, attrs := in.At(0)
		if err := in.RemoveChar(0); err != nil {
			return err
		}
		if p.ReplaceWithSymbols {
			glyph, ok := ControlChar(r).Glyph()
			if ok {
				out.Append(glyph, attrs)
			} else {
				p.Logger.Debugf("ctrlchar: no symbol for %U, dropped", r)
			}
		}
		if ControlChar(r) == LineFeed {
			out.AddNewLine()
		}
	}
	return out.ShiftCharsIn(in, in.Len())
}
