package filter

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/suryansh-23/rxterm/internal/richtext"
)

var green = richtext.Attributes{Foreground: richtext.ColorGreen}

func mustNew(t *testing.T, pattern string) *Filter {
	t.Helper()
	f, err := New(pattern)
	if err != nil {
		t.Fatalf("new %q: %v", pattern, err)
	}
	return f
}

func TestEmptyPatternPassesThrough(t *testing.T) {
	f := mustNew(t, "")
	in := richtext.New("partial line", green)
	var out richtext.Text
	if err := f.Parse(&in, &out); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out.String() != "partial line" || in.Len() != 0 {
		t.Fatalf("out = %q, in = %q", out.String(), in.String())
	}
	if diff := cmp.Diff(in.Ranges(), []richtext.Range(nil)); diff != "" {
		t.Fatalf("in ranges: %s", diff)
	}
}

func TestReleasesMatchingCompleteLines(t *testing.T) {
	f := mustNew(t, "err")
	in := richtext.New("ok 1\nerr 2\nok 3\nerror 4\nerr tail", richtext.Attributes{})
	var out richtext.Text
	if err := f.Parse(&in, &out); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got, want := out.String(), "err 2\nerror 4\n"; got != want {
		t.Fatalf("out = %q, want %q", got, want)
	}
	if got := in.String(); got != "err tail" {
		t.Fatalf("tail = %q", got)
	}
}

func TestLineSplitAcrossChunks(t *testing.T) {
	f := mustNew(t, "^temp=\\d+$")
	var in, out richtext.Text
	for _, chunk := range []string{"tem", "p=4", "2\r", "\nte", "mp=x\n"} {
		in.Append(chunk, richtext.Attributes{})
		if err := f.Parse(&in, &out); err != nil {
			t.Fatalf("parse: %v", err)
		}
	}
	if got := out.String(); got != "temp=42\r\n" {
		t.Fatalf("out = %q", got)
	}
	if in.Len() != 0 {
		t.Fatalf("in = %q", in.String())
	}
}

func TestKeepsFormatting(t *testing.T) {
	f := mustNew(t, "hit")
	var in, out richtext.Text
	in.Append("miss\n", green)
	in.Append("a ", richtext.Attributes{})
	in.Append("hit\n", green)
	if err := f.Parse(&in, &out); err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := richtext.Snapshot{
		Text:   "a hit\n",
		Ranges: []richtext.Range{{Start: 2, End: 6, Attributes: green}},
	}
	if diff := cmp.Diff(want, out.Snapshot()); diff != "" {
		t.Fatalf("snapshot (-want +got):\n%s", diff)
	}
}

func TestFlushReleasesTail(t *testing.T) {
	f := mustNew(t, "done")
	in := richtext.New("skip\ndone", richtext.Attributes{})
	var out richtext.Text
	if err := f.Flush(&in, &out); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if out.String() != "done" || in.Len() != 0 {
		t.Fatalf("out = %q, in = %q", out.String(), in.String())
	}

	in = richtext.New("nope", richtext.Attributes{})
	out.Clear()
	if err := f.Flush(&in, &out); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if out.Len() != 0 || in.Len() != 0 {
		t.Fatalf("out = %q, in = %q", out.String(), in.String())
	}
}

func TestInvalidPatternKeepsPrevious(t *testing.T) {
	f := mustNew(t, "ok")
	err := f.SetPattern("(unclosed")
	if !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("err = %v, want ErrInvalidPattern", err)
	}
	if f.Pattern() != "ok" {
		t.Fatalf("pattern = %q", f.Pattern())
	}
	in := richtext.New("ok\nbad\n", richtext.Attributes{})
	var out richtext.Text
	if err := f.Parse(&in, &out); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out.String() != "ok\n" {
		t.Fatalf("out = %q", out.String())
	}

	if _, err := New("[z-a]"); !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("new err = %v", err)
	}
}

func TestPerlSyntax(t *testing.T) {
	f := mustNew(t, `^(?!DEBUG)\w+`)
	in := richtext.New("DEBUG x\nINFO y\n", richtext.Attributes{})
	var out richtext.Text
	if err := f.Parse(&in, &out); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out.String() != "INFO y\n" {
		t.Fatalf("out = %q", out.String())
	}
}

func TestReplayMatchesFreshFilter(t *testing.T) {
	var total richtext.Text
	total.Append("boot ok\n", richtext.Attributes{})
	total.Append("warn: hot\n", richtext.Attributes{Foreground: richtext.ColorYellow})
	total.Append("boot ok\nwarn: co", richtext.Attributes{})

	stale := mustNew(t, "boot")
	working := total.Clone()
	var old richtext.Text
	if err := stale.Parse(&working, &old); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if err := stale.SetPattern("warn"); err != nil {
		t.Fatalf("set pattern: %v", err)
	}
	replayIn := total.Clone()
	var replayed richtext.Text
	if err := stale.Parse(&replayIn, &replayed); err != nil {
		t.Fatalf("replay: %v", err)
	}

	fresh := mustNew(t, "warn")
	freshIn := total.Clone()
	var want richtext.Text
	if err := fresh.Parse(&freshIn, &want); err != nil {
		t.Fatalf("fresh: %v", err)
	}
	if diff := cmp.Diff(want.Snapshot(), replayed.Snapshot()); diff != "" {
		t.Fatalf("replay (-fresh +replayed):\n%s", diff)
	}
	if diff := cmp.Diff(freshIn.Snapshot(), replayIn.Snapshot()); diff != "" {
		t.Fatalf("tail (-fresh +replayed):\n%s", diff)
	}
	if total.Len() != len([]rune("boot ok\nwarn: hot\nboot ok\nwarn: co")) {
		t.Fatalf("total consumed: %q", total.String())
	}
}
