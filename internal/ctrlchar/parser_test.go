package ctrlchar

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/suryansh-23/rxterm/internal/richtext"
)

var red = richtext.Attributes{Foreground: richtext.ColorRed}

func TestParseDropsControlCharsWithoutSymbols(t *testing.T) {
	in := richtext.New("ab\r\ncd\x07e", richtext.Attributes{})
	var out richtext.Text
	p := &Parser{}
	if err := p.Parse(&in, &out); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out.String() != "abcde" {
		t.Fatalf("text = %q", out.String())
	}
	if diff := cmp.Diff([]int{2}, out.NewLines()); diff != "" {
		t.Fatalf("new lines (-want +got):\n%s", diff)
	}
	if in.Len() != 0 {
		t.Fatalf("input not consumed: %q", in.String())
	}
}

func TestParseReplacesWithSymbols(t *testing.T) {
	in := richtext.New("ab\r\ncd\x1b\x07e", richtext.Attributes{})
	var out richtext.Text
	p := &Parser{ReplaceWithSymbols: true}
	if err := p.Parse(&in, &out); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out.String() != "ab↵␤cd␛e" {
		t.Fatalf("text = %q", out.String())
	}
	if diff := cmp.Diff([]int{4}, out.NewLines()); diff != "" {
		t.Fatalf("new lines (-want +got):\n%s", diff)
	}
	if out.IndexFunc(func(r rune) bool { return r < 0x20 }) >= 0 {
		t.Fatalf("raw control byte left in %q", out.String())
	}
}

func TestParsePreservesFormatting(t *testing.T) {
	var in richtext.Text
	in.Append("pl", richtext.Attributes{})
	in.Append("re\nd", red)
	in.Append("x", richtext.Attributes{})
	var out richtext.Text
	p := &Parser{ReplaceWithSymbols: true}
	if err := p.Parse(&in, &out); err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := richtext.Snapshot{
		Text:     "pl" + "re␤d" + "x",
		Ranges:   []richtext.Range{{Start: 2, End: 6, Attributes: red}},
		NewLines: []int{5},
	}
	if diff := cmp.Diff(want, out.Snapshot()); diff != "" {
		t.Fatalf("snapshot (-want +got):\n%s", diff)
	}
	if err := out.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestParseAppendsToExistingOutput(t *testing.T) {
	out := richtext.New("old", richtext.Attributes{})
	in := richtext.New("\nnew", richtext.Attributes{})
	p := &Parser{}
	if err := p.Parse(&in, &out); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out.String() != "oldnew" {
		t.Fatalf("text = %q", out.String())
	}
	if diff := cmp.Diff([]int{3}, out.NewLines()); diff != "" {
		t.Fatalf("new lines (-want +got):\n%s", diff)
	}
}

func TestGlyphMapping(t *testing.T) {
	for _, c := range Mapped {
		glyph, ok := c.Glyph()
		if !ok || glyph == "" {
			t.Fatalf("%U: glyph=%q ok=%t", rune(c), glyph, ok)
		}
	}
	if _, ok := ControlChar('\t').Glyph(); ok {
		t.Fatalf("tab should have no mapping")
	}
}
