// Package filter releases complete lines of rich text that match a user
// supplied regular expression.
package filter

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/suryansh-23/rxterm/internal/debug"
	"github.com/suryansh-23/rxterm/internal/richtext"
)

// ErrInvalidPattern is returned when a pattern does not compile.
var ErrInvalidPattern = errors.New("invalid filter pattern")

// MatchTimeout bounds a single line match. A line whose match times out is
// treated as not matching.
const MatchTimeout = 100 * time.Millisecond

// Filter holds the compiled pattern. The zero value passes everything through.
type Filter struct {
	pattern string
	re      *regexp2.Regexp
	Logger  *debug.Logger
}

// New returns a Filter for pattern. An empty pattern passes everything through.
func New(pattern string) (*Filter, error) {
	f := &Filter{}
	if err := f.SetPattern(pattern); err != nil {
		return nil, err
	}
	return f, nil
}

// Pattern returns the active pattern.
func (f *Filter) Pattern() string {
	return f.pattern
}

// SetPattern compiles and activates pattern. On failure the previous pattern
// stays active and the error wraps ErrInvalidPattern.
func (f *Filter) SetPattern(pattern string) error {
	if pattern == "" {
		f.pattern = ""
		f.re = nil
		return nil
	}
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
	}
	re.MatchTimeout = MatchTimeout
	f.pattern = pattern
	f.re = re
	f.Logger.Debugf("filter: pattern set to %q", pattern)
	return nil
}

// Parse moves every complete line of in that matches into out and discards
// the complete lines that do not. A line is complete once its '\n' has
// arrived; the terminator travels with the line. The unterminated tail is
// left in in for the next call. With no pattern all of in is moved.
func (f *Filter) Parse(in, out *richtext.Text) error {
	if f.re == nil {
		return out.ShiftCharsIn(in, in.Len())
	}
	rest := in.String()
	for {
		idx := strings.IndexByte(rest, '\n')
		if idx < 0 {
			return nil
		}
		line := rest[:idx+1]
		rest = rest[idx+1:]
		if err := f.release(in, out, line); err != nil {
			return err
		}
	}
}

// Flush treats the unterminated tail of in as a complete line.
func (f *Filter) Flush(in, out *richtext.Text) error {
	if err := f.Parse(in, out); err != nil {
		return err
	}
	if in.Len() == 0 {
		return nil
	}
	return f.release(in, out, in.String())
}

// release consumes line, which must be the head of in.
func (f *Filter) release(in, out *richtext.Text, line string) error {
	n := utf8.RuneCountInString(line)
	if f.matches(line) {
		return out.ShiftCharsIn(in, n)
	}
	return in.RemoveChars(n)
}

func (f *Filter) matches(line string) bool {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	ok, err := f.re.MatchString(line)
	if err != nil {
		f.Logger.Debugf("filter: match on %q abandoned: %v", line, err)
		return false
	}
	return ok
}
