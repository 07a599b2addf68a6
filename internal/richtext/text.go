// Package richtext holds text together with the formatting runs over it.
//
// A Text is the unit passed between pipeline stages. Characters are runes
// and every index in this package is a rune index. Formatting ranges are
// half-open, ascending and never overlap; characters outside every range use
// default attributes. New-line markers record where a visual line break sits
// so that stages may strip control characters without losing layout.
package richtext

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfRange is returned when more characters are moved or removed than exist.
var ErrOutOfRange = errors.New("character count out of range")

// Range applies Attributes to runes [Start, End).
type Range struct {
	Start      int
	End        int
	Attributes Attributes
}

// Text is a character buffer with formatting ranges and new-line markers.
// The zero value is an empty Text ready to use.
type Text struct {
	runes    []rune
	ranges   []Range
	newLines []int
}

// New returns a Text holding s with attrs.
func New(s string, attrs Attributes) Text {
	var t Text
	t.Append(s, attrs)
	return t
}

// Len returns the number of characters.
func (t *Text) Len() int {
	return len(t.runes)
}

func (t *Text) String() string {
	return string(t.runes)
}

// Ranges returns a copy of the formatting ranges.
func (t *Text) Ranges() []Range {
	return append([]Range(nil), t.ranges...)
}

// NewLines returns a copy of the new-line marker positions. A marker at p
// means a line break sits before character p.
func (t *Text) NewLines() []int {
	return append([]int(nil), t.newLines...)
}

// IndexFunc returns the index of the first character satisfying f, or -1.
func (t *Text) IndexFunc(f func(rune) bool) int {
	for i, r := range t.runes {
		if f(r) {
			return i
		}
	}
	return -1
}

// At returns the character at i and the attributes applied to it.
func (t *Text) At(i int) (rune, Attributes) {
	if i < 0 || i >= len(t.runes) {
		return 0, Attributes{}
	}
	for _, r := range t.ranges {
		if r.Start > i {
			break
		}
		if i < r.End {
			return t.runes[i], r.Attributes
		}
	}
	return t.runes[i], Attributes{}
}

// Clone returns a deep copy.
func (t *Text) Clone() Text {
	return Text{
		runes:    append([]rune(nil), t.runes...),
		ranges:   append([]Range(nil), t.ranges...),
		newLines: append([]int(nil), t.newLines...),
	}
}

// Clear resets t to empty.
func (t *Text) Clear() {
	t.runes = nil
	t.ranges = nil
	t.newLines = nil
}

// Append adds s to the tail with attrs. Default attributes add no range.
func (t *Text) Append(s string, attrs Attributes) {
	if s == "" {
		return
	}
	start := len(t.runes)
	t.runes = append(t.runes, []rune(s)...)
	t.addRange(start, len(t.runes), attrs)
}

// AddNewLine records a line break at the current end of t.
func (t *Text) AddNewLine() {
	t.newLines = append(t.newLines, len(t.runes))
}

func (t *Text) addRange(start, end int, attrs Attributes) {
	if attrs.IsDefault() || end <= start {
		return
	}
	if n := len(t.ranges); n > 0 {
		last := &t.ranges[n-1]
		if last.End == start && last.Attributes == attrs {
			last.End = end
			return
		}
	}
	t.ranges = append(t.ranges, Range{Start: start, End: end, Attributes: attrs})
}

// ShiftCharsIn moves the first n characters of src, with their formatting
// and markers, to the end of t.
func (t *Text) ShiftCharsIn(src *Text, n int) error {
	if err := t.transfer(src, n); err != nil {
		return err
	}
	src.dropHead(n)
	return nil
}

// CopyCharsFrom appends the first n characters of src to t without modifying src.
func (t *Text) CopyCharsFrom(src *Text, n int) error {
	return t.transfer(src, n)
}

func (t *Text) transfer(src *Text, n int) error {
	if src == nil {
		return fmt.Errorf("%w: nil source", ErrOutOfRange)
	}
	if n < 0 || n > len(src.runes) {
		return fmt.Errorf("%w: requested %d of %d", ErrOutOfRange, n, len(src.runes))
	}
	offset := len(t.runes)
	t.runes = append(t.runes, src.runes[:n]...)
	for _, r := range src.ranges {
		if r.Start >= n {
			break
		}
		t.addRange(offset+r.Start, offset+min(r.End, n), r.Attributes)
	}
	for _, p := range src.newLines {
		if p > n {
			break
		}
		t.newLines = append(t.newLines, offset+p)
	}
	return nil
}

// dropHead removes n leading characters. Markers at or before the cut are
// removed with them.
func (t *Text) dropHead(n int) {
	t.runes = t.runes[n:]
	kept := t.ranges[:0]
	for _, r := range t.ranges {
		r.Start -= n
		r.End -= n
		if r.End <= 0 {
			continue
		}
		if r.Start < 0 {
			r.Start = 0
		}
		kept = append(kept, r)
	}
	t.ranges = kept
	markers := t.newLines[:0]
	for _, p := range t.newLines {
		if p <= n {
			continue
		}
		markers = append(markers, p-n)
	}
	t.newLines = markers
}

// RemoveChars deletes n characters from the head.
func (t *Text) RemoveChars(n int) error {
	if n < 0 || n > len(t.runes) {
		return fmt.Errorf("%w: remove %d of %d", ErrOutOfRange, n, len(t.runes))
	}
	if n == 0 {
		return nil
	}
	t.dropHead(n)
	return nil
}

// RemoveChar deletes the character at index i.
func (t *Text) RemoveChar(i int) error {
	if i < 0 || i >= len(t.runes) {
		return fmt.Errorf("%w: index %d of %d", ErrOutOfRange, i, len(t.runes))
	}
	if i == 0 {
		t.runes = t.runes[1:]
	} else {
		t.runes = append(t.runes[:i], t.runes[i+1:]...)
	}
	kept := t.ranges[:0]
	for _, r := range t.ranges {
		switch {
		case r.End <= i:
		case r.Start > i:
			r.Start--
			r.End--
		default:
			r.End--
		}
		if r.End <= r.Start {
			continue
		}
		if n := len(kept); n > 0 && kept[n-1].End == r.Start && kept[n-1].Attributes == r.Attributes {
			kept[n-1].End = r.End
			continue
		}
		kept = append(kept, r)
	}
	t.ranges = kept
	for j, p := range t.newLines {
		if p > i {
			t.newLines[j] = p - 1
		}
	}
	return nil
}

// TrimTo removes characters from the head until at most max remain. It
// returns the number removed.
func (t *Text) TrimTo(max int) int {
	if max < 0 {
		max = 0
	}
	excess := len(t.runes) - max
	if excess <= 0 {
		return 0
	}
	t.dropHead(excess)
	return excess
}

// Validate checks the range and marker invariants.
func (t *Text) Validate() error {
	prevEnd := 0
	for i, r := range t.ranges {
		if r.Start < 0 || r.End > len(t.runes) || r.Start >= r.End {
			return fmt.Errorf("range %d [%d,%d) outside text of %d", i, r.Start, r.End, len(t.runes))
		}
		if r.Start < prevEnd {
			return fmt.Errorf("range %d [%d,%d) overlaps previous end %d", i, r.Start, r.End, prevEnd)
		}
		if r.Attributes.IsDefault() {
			return fmt.Errorf("range %d has default attributes", i)
		}
		prevEnd = r.End
	}
	prev := 0
	for i, p := range t.newLines {
		if p < prev || p > len(t.runes) {
			return fmt.Errorf("new line %d at %d out of order or range", i, p)
		}
		prev = p
	}
	return nil
}

// Run is a maximal stretch of characters sharing attributes, preceded by
// Breaks line breaks.
type Run struct {
	Text       string
	Attributes Attributes
	Breaks     int
}

// Runs splits t into runs covering every character, including unformatted
// gaps. A trailing run with empty Text carries breaks at the very end.
func (t *Text) Runs() []Run {
	var out []Run
	var sb strings.Builder
	cur := Run{}
	ri, mi := 0, 0
	flush := func() {
		if sb.Len() == 0 && cur.Breaks == 0 {
			return
		}
		cur.Text = sb.String()
		out = append(out, cur)
		sb.Reset()
		cur = Run{}
	}
	for i := 0; i <= len(t.runes); i++ {
		breaks := 0
		for mi < len(t.newLines) && t.newLines[mi] == i {
			breaks++
			mi++
		}
		if i == len(t.runes) {
			if breaks > 0 {
				flush()
				cur.Breaks = breaks
			}
			break
		}
		for ri < len(t.ranges) && t.ranges[ri].End <= i {
			ri++
		}
		attrs := Attributes{}
		if ri < len(t.ranges) && t.ranges[ri].Start <= i {
			attrs = t.ranges[ri].Attributes
		}
		if breaks > 0 || attrs != cur.Attributes {
			flush()
			cur.Attributes = attrs
			cur.Breaks = breaks
		}
		sb.WriteRune(t.runes[i])
	}
	flush()
	return out
}

// Snapshot is a comparable view of a Text, used for diagnostics and tests.
type Snapshot struct {
	Text     string
	Ranges   []Range
	NewLines []int
}

// Snapshot returns the current contents of t.
func (t *Text) Snapshot() Snapshot {
	return Snapshot{Text: t.String(), Ranges: t.Ranges(), NewLines: t.NewLines()}
}
