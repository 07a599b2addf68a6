package richtext

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	red  = Attributes{Foreground: ColorRed}
	blue = Attributes{Foreground: ColorBlue}
)

func mustValid(t *testing.T, txt *Text) {
	t.Helper()
	if err := txt.Validate(); err != nil {
		t.Fatalf("invalid text %#v: %v", txt.Snapshot(), err)
	}
}

func TestAppendDefaultAddsNoRange(t *testing.T) {
	var txt Text
	txt.Append("plain", Attributes{})
	if txt.String() != "plain" {
		t.Fatalf("text = %q", txt.String())
	}
	if len(txt.Ranges()) != 0 {
		t.Fatalf("ranges = %v", txt.Ranges())
	}
}

func TestAppendMergesAdjacentEqualRanges(t *testing.T) {
	var txt Text
	txt.Append("ab", red)
	txt.Append("cd", red)
	txt.Append("e", Attributes{})
	txt.Append("f", red)
	txt.Append("g", blue)
	want := []Range{
		{Start: 0, End: 4, Attributes: red},
		{Start: 5, End: 6, Attributes: red},
		{Start: 6, End: 7, Attributes: blue},
	}
	if diff := cmp.Diff(want, txt.Ranges()); diff != "" {
		t.Fatalf("ranges mismatch (-want +got):\n%s", diff)
	}
	mustValid(t, &txt)
}

func TestAppendCountsRunesNotBytes(t *testing.T) {
	var txt Text
	txt.Append("héllo", red)
	if txt.Len() != 5 {
		t.Fatalf("len = %d", txt.Len())
	}
	if r := txt.Ranges(); r[0].End != 5 {
		t.Fatalf("range end = %d", r[0].End)
	}
}

func TestShiftCharsInSplitsRange(t *testing.T) {
	var src, dst Text
	src.Append("abc", Attributes{})
	src.Append("defg", red)

	if err := dst.ShiftCharsIn(&src, 5); err != nil {
		t.Fatalf("shift: %v", err)
	}
	if dst.String() != "abcde" || src.String() != "fg" {
		t.Fatalf("dst=%q src=%q", dst.String(), src.String())
	}
	if diff := cmp.Diff([]Range{{Start: 3, End: 5, Attributes: red}}, dst.Ranges()); diff != "" {
		t.Fatalf("dst ranges (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Range{{Start: 0, End: 2, Attributes: red}}, src.Ranges()); diff != "" {
		t.Fatalf("src ranges (-want +got):\n%s", diff)
	}
	mustValid(t, &dst)
	mustValid(t, &src)
}

func TestShiftCharsInMergesAcrossCalls(t *testing.T) {
	var src, dst Text
	src.Append("abcd", red)
	for i := 0; i < 4; i++ {
		if err := dst.ShiftCharsIn(&src, 1); err != nil {
			t.Fatalf("shift: %v", err)
		}
	}
	if diff := cmp.Diff([]Range{{Start: 0, End: 4, Attributes: red}}, dst.Ranges()); diff != "" {
		t.Fatalf("ranges (-want +got):\n%s", diff)
	}
	if src.Len() != 0 || len(src.Ranges()) != 0 {
		t.Fatalf("src not drained: %#v", src.Snapshot())
	}
}

func TestShiftCharsInConservesCharacters(t *testing.T) {
	var src Text
	src.Append("aa", red)
	src.Append("bbb", Attributes{})
	src.Append("cccc", blue)
	for n := 0; n <= src.Len(); n++ {
		s := src.Clone()
		var dst Text
		dst.Append("xx", blue)
		before := formatted(&s) + formatted(&dst)
		if err := dst.ShiftCharsIn(&s, n); err != nil {
			t.Fatalf("shift %d: %v", n, err)
		}
		if s.Len() != src.Len()-n || dst.Len() != 2+n {
			t.Fatalf("n=%d: src len %d dst len %d", n, s.Len(), dst.Len())
		}
		if after := formatted(&s) + formatted(&dst); after != before {
			t.Fatalf("n=%d: formatted count %d -> %d", n, before, after)
		}
		mustValid(t, &s)
		mustValid(t, &dst)
	}
}

func formatted(txt *Text) int {
	total := 0
	for _, r := range txt.Ranges() {
		total += r.End - r.Start
	}
	return total
}

func TestShiftCharsInOutOfRange(t *testing.T) {
	var src, dst Text
	src.Append("ab", Attributes{})
	err := dst.ShiftCharsIn(&src, 3)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("err = %v", err)
	}
	if src.String() != "ab" || dst.Len() != 0 {
		t.Fatalf("buffers modified on error")
	}
}

func TestCopyCharsFromLeavesSource(t *testing.T) {
	var src, dst Text
	src.Append("ab", red)
	src.AddNewLine()
	src.Append("cd", Attributes{})
	if err := dst.CopyCharsFrom(&src, src.Len()); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if diff := cmp.Diff(src.Snapshot(), dst.Snapshot()); diff != "" {
		t.Fatalf("copy mismatch (-src +dst):\n%s", diff)
	}
	if src.String() != "abcd" {
		t.Fatalf("src modified: %q", src.String())
	}
}

func TestRemoveCharsShiftsAndPrunes(t *testing.T) {
	var txt Text
	txt.Append("ab", red)
	txt.AddNewLine()
	txt.Append("cde", blue)
	txt.AddNewLine()
	if err := txt.RemoveChars(3); err != nil {
		t.Fatalf("remove: %v", err)
	}
	want := Snapshot{
		Text:     "de",
		Ranges:   []Range{{Start: 0, End: 2, Attributes: blue}},
		NewLines: []int{2},
	}
	if diff := cmp.Diff(want, txt.Snapshot()); diff != "" {
		t.Fatalf("snapshot (-want +got):\n%s", diff)
	}
	if err := txt.RemoveChars(5); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("err = %v", err)
	}
}

func TestRemoveCharMiddle(t *testing.T) {
	var txt Text
	txt.Append("ab", red)
	txt.Append("X", Attributes{})
	txt.Append("cd", red)
	txt.AddNewLine()
	if err := txt.RemoveChar(2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	want := Snapshot{
		Text:     "abcd",
		Ranges:   []Range{{Start: 0, End: 4, Attributes: red}},
		NewLines: []int{4},
	}
	if diff := cmp.Diff(want, txt.Snapshot()); diff != "" {
		t.Fatalf("snapshot (-want +got):\n%s", diff)
	}
	if err := txt.RemoveChar(4); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("err = %v", err)
	}
}

func TestRemoveCharDropsEmptyRange(t *testing.T) {
	var txt Text
	txt.Append("a", Attributes{})
	txt.Append("b", red)
	if err := txt.RemoveChar(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(txt.Ranges()) != 0 {
		t.Fatalf("ranges = %v", txt.Ranges())
	}
}

func TestTrimToKeepsNewest(t *testing.T) {
	var txt Text
	txt.Append(strings.Repeat("a", 10), red)
	txt.Append(strings.Repeat("b", 10), blue)
	removed := txt.TrimTo(5)
	if removed != 15 {
		t.Fatalf("removed = %d", removed)
	}
	if txt.String() != "bbbbb" {
		t.Fatalf("text = %q", txt.String())
	}
	if diff := cmp.Diff([]Range{{Start: 0, End: 5, Attributes: blue}}, txt.Ranges()); diff != "" {
		t.Fatalf("ranges (-want +got):\n%s", diff)
	}
	if txt.TrimTo(5) != 0 {
		t.Fatalf("second trim removed chars")
	}
}

func TestNewLineMarkerTravelsWithCut(t *testing.T) {
	var src, dst Text
	src.Append("ab", Attributes{})
	src.AddNewLine()
	src.Append("c", Attributes{})
	if err := dst.ShiftCharsIn(&src, 2); err != nil {
		t.Fatalf("shift: %v", err)
	}
	if diff := cmp.Diff([]int{2}, dst.NewLines()); diff != "" {
		t.Fatalf("dst markers (-want +got):\n%s", diff)
	}
	if len(src.NewLines()) != 0 {
		t.Fatalf("src markers = %v", src.NewLines())
	}
}

func TestShiftZeroMovesLeadingMarkerOnce(t *testing.T) {
	var src, dst Text
	src.AddNewLine()
	src.Append("a", Attributes{})
	if err := dst.ShiftCharsIn(&src, 0); err != nil {
		t.Fatalf("shift: %v", err)
	}
	if len(dst.NewLines()) != 1 || len(src.NewLines()) != 0 {
		t.Fatalf("dst=%v src=%v", dst.NewLines(), src.NewLines())
	}
}

func TestRuns(t *testing.T) {
	var txt Text
	txt.Append("ab", Attributes{})
	txt.Append("cd", red)
	txt.AddNewLine()
	txt.Append("ef", red)
	txt.AddNewLine()
	want := []Run{
		{Text: "ab"},
		{Text: "cd", Attributes: red},
		{Text: "ef", Attributes: red, Breaks: 1},
		{Breaks: 1},
	}
	if diff := cmp.Diff(want, txt.Runs()); diff != "" {
		t.Fatalf("runs (-want +got):\n%s", diff)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	var txt Text
	txt.Append("abc", red)
	c := txt.Clone()
	if err := c.RemoveChars(2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if txt.String() != "abc" || len(txt.Ranges()) != 1 || txt.Ranges()[0].End != 3 {
		t.Fatalf("original changed: %#v", txt.Snapshot())
	}
}

func TestBoldResolvesBrightEntry(t *testing.T) {
	rgb, ok := Attributes{Foreground: ColorRed, Bold: true}.RGB()
	if !ok || rgb != (RGB{255, 85, 85}) {
		t.Fatalf("rgb = %v ok=%t", rgb, ok)
	}
	if _, ok := (Attributes{Bold: true}).RGB(); ok {
		t.Fatalf("bold default should have no colour")
	}
	if got := (RGB{170, 0, 0}).Hex(); got != "#aa0000" {
		t.Fatalf("hex = %q", got)
	}
}
