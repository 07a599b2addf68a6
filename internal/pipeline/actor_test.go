package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/suryansh-23/rxterm/internal/types"
)

func TestActorPublishesInOrder(t *testing.T) {
	p := mustNew(t, Options{ApplyType: types.ApplyToBufferedAndNew})
	a := NewActor(p)
	in := make(chan string)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(ctx, in) }()

	in <- "a1\nb2\n"
	err := a.Configure(ctx, func(p *Pipeline) (Delta, bool, error) {
		return p.SetFilterPattern("b")
	})
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	in <- "a3\nb4\n"
	close(in)

	var got []Delta
	for d := range a.Deltas() {
		got = append(got, d)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("deltas = %d, want 3", len(got))
	}
	if got[0].Text.String() != "a1b2" || got[0].Cleared {
		t.Fatalf("first = %q cleared=%t", got[0].Text.String(), got[0].Cleared)
	}
	if got[1].Text.String() != "b2" || !got[1].Cleared {
		t.Fatalf("replay = %q cleared=%t", got[1].Text.String(), got[1].Cleared)
	}
	if got[2].Text.String() != "b4" || got[2].Raw != "a3\nb4\n" {
		t.Fatalf("third = %q raw=%q", got[2].Text.String(), got[2].Raw)
	}
}

func TestActorConfigureError(t *testing.T) {
	a := NewActor(mustNew(t, Options{}))
	in := make(chan string)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(ctx, in) }()

	err := a.Configure(ctx, func(p *Pipeline) (Delta, bool, error) {
		return p.SetFilterPattern("(")
	})
	if err == nil {
		t.Fatalf("expected invalid pattern error")
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("run err = %v", err)
	}
	if _, ok := <-a.Deltas(); ok {
		t.Fatalf("deltas not closed")
	}
	if err := a.Configure(context.Background(), func(*Pipeline) (Delta, bool, error) {
		return Delta{}, false, nil
	}); !errors.Is(err, ErrStopped) {
		t.Fatalf("configure after stop = %v", err)
	}
}

func TestDeltaEmpty(t *testing.T) {
	p := mustNew(t, Options{})
	d, err := p.Push("\n")
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if d.Empty() {
		t.Fatalf("line break delta reported empty")
	}
	if !(Delta{}).Empty() {
		t.Fatalf("zero delta not empty")
	}
}
