// Package ansi interprets SGR escape sequences (ESC [ params m) in a stream
// of text chunks and emits richtext runs tagged with the active colour.
package ansi

import (
	"strconv"
	"strings"

	"github.com/suryansh-23/rxterm/internal/debug"
	"github.com/suryansh-23/rxterm/internal/richtext"
)

const esc = '\x1b'

type escState int

const (
	stateText escState = iota
	stateEscStart
	stateParams
)

// SGR parameter codes that change attributes.
const (
	sgrReset     = 0
	sgrBold      = 1
	sgrNormal    = 22
	sgrFG1st     = 30
	sgrFGEnd     = 37
	sgrDefaultFG = 39
	sgrBright1st = 90
	sgrBrightEnd = 97
)

// State is the parser state carried between chunks: a partially read escape
// sequence and the attributes applied to plain characters. The zero value is
// the initial state. State is a plain value and safe to copy.
type State struct {
	phase   escState
	pending string
	attrs   richtext.Attributes
}

// Pending returns escape bytes buffered while waiting for the sequence to complete.
func (s State) Pending() string {
	return s.pending
}

// Attributes returns the attributes applied to the next plain character.
func (s State) Attributes() richtext.Attributes {
	return s.attrs
}

// Parse appends the interpretation of chunk to out and returns the state
// for the next call. Output does not depend on how the stream is split.
func Parse(st State, chunk string, out *richtext.Text) State {
	return parse(st, chunk, out, nil)
}

// Flush emits any buffered partial sequence as plain text.
func Flush(st State, out *richtext.Text) State {
	if st.pending != "" {
		out.Append(st.pending, st.attrs)
	}
	st.pending = ""
	st.phase = stateText
	return st
}

// Parser holds State between calls for callers that prefer a stateful value.
type Parser struct {
	State  State
	Logger *debug.Logger
}

// Parse appends the interpretation of chunk to out.
func (p *Parser) Parse(chunk string, out *richtext.Text) {
	p.State = parse(p.State, chunk, out, p.Logger)
}

// Flush emits any buffered partial sequence as plain text.
func (p *Parser) Flush(out *richtext.Text) {
	p.State = Flush(p.State, out)
}

func parse(st State, chunk string, out *richtext.Text, logger *debug.Logger) State {
	var plain strings.Builder
	flushPlain := func() {
		if plain.Len() == 0 {
			return
		}
		out.Append(plain.String(), st.attrs)
		plain.Reset()
	}
	reject := func() {
		logger.Debugf("ansi: invalid escape sequence %q emitted as text", st.pending)
		plain.WriteString(st.pending)
		st.pending = ""
		st.phase = stateText
	}

	for _, r := range chunk {
		for {
			switch st.phase {
			case stateText:
				if r == esc {
					flushPlain()
					st.pending = string(esc)
					st.phase = stateEscStart
				} else {
					plain.WriteRune(r)
				}
			case stateEscStart:
				if r != '[' {
					reject()
					continue
				}
				st.pending += "["
				st.phase = stateParams
			case stateParams:
				switch {
				case (r >= '0' && r <= '9') || r == ';':
					st.pending += string(r)
				case r == 'm':
					st.attrs = applySGR(st.attrs, st.pending[2:], logger)
					st.pending = ""
					st.phase = stateText
				default:
					reject()
					continue
				}
			}
			break
		}
	}
	flushPlain()
	return st
}

// applySGR applies semicolon separated parameters left to right.
func applySGR(attrs richtext.Attributes, params string, logger *debug.Logger) richtext.Attributes {
	for _, field := range strings.Split(params, ";") {
		code := sgrReset
		if field != "" {
			n, err := strconv.Atoi(field)
			if err != nil {
				logger.Debugf("ansi: unsupported SGR parameter %q", field)
				continue
			}
			code = n
		}
		switch {
		case code == sgrReset:
			attrs = richtext.Attributes{}
		case code == sgrBold:
			attrs.Bold = true
		case code == sgrNormal:
			attrs.Bold = false
		case code == sgrDefaultFG:
			attrs.Foreground = richtext.ColorDefault
		case code >= sgrFG1st && code <= sgrFGEnd:
			attrs.Foreground = richtext.ColorBlack + richtext.Color(code-sgrFG1st)
		case code >= sgrBright1st && code <= sgrBrightEnd:
			attrs.Foreground = richtext.ColorBrightBlack + richtext.Color(code-sgrBright1st)
		default:
			logger.Debugf("ansi: unsupported SGR code %d ignored", code)
		}
	}
	return attrs
}
