package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/suryansh-23/rxterm/internal/config"
	"github.com/suryansh-23/rxterm/internal/debug"
	"github.com/suryansh-23/rxterm/internal/decode"
	"github.com/suryansh-23/rxterm/internal/pipeline"
	"github.com/suryansh-23/rxterm/internal/render"
)

const defaultReadSize = 4096

func newPipeline(cfg config.Config, logger *debug.Logger) (*pipeline.Pipeline, error) {
	return pipeline.New(pipeline.Options{
		BufferSizeChars:     cfg.Display.BufferSizeChars,
		FilterPattern:       cfg.Filter.Pattern,
		ApplyType:           cfg.Filter.ApplyType,
		ReplaceControlChars: cfg.Display.ReplaceControlChars,
		Logger:              logger,
	})
}

func colorProfile(f *os.File) termenv.Profile {
	return termenv.NewOutput(f).EnvColorProfile()
}

// readChunks reads r in pieces of at most size bytes, decodes them and sends
// the text on out. out is closed when r is exhausted.
func readChunks(ctx context.Context, r io.Reader, dec *decode.Decoder, size int, out chan<- string, isEOF func(error) bool) error {
	defer close(out)
	buf := make([]byte, size)
	send := func(s string) error {
		if s == "" {
			return nil
		}
		select {
		case out <- s:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if sendErr := send(dec.Decode(buf[:n])); sendErr != nil {
				return sendErr
			}
		}
		if err != nil {
			if isEOF(err) {
				return send(dec.Flush())
			}
			return err
		}
	}
}

func renderDeltas(a *pipeline.Actor, r *render.Renderer) error {
	for d := range a.Deltas() {
		if err := r.Render(d); err != nil {
			return err
		}
	}
	return nil
}

// stream runs src through the configured pipeline and renders to w until src
// is exhausted.
func stream(ctx context.Context, state *appState, src io.Reader, w *os.File, readSize int) error {
	dec, err := decode.New(state.cfg.Input.Encoding)
	if err != nil {
		return err
	}
	p, err := newPipeline(state.cfg, state.logger)
	if err != nil {
		return err
	}
	actor := pipeline.NewActor(p)
	renderer := render.New(w, colorProfile(w))

	chunks := make(chan string)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readChunks(ctx, src, dec, readSize, chunks, func(err error) bool { return errors.Is(err, io.EOF) })
	})
	g.Go(func() error { return actor.Run(ctx, chunks) })
	g.Go(func() error { return renderDeltas(actor, renderer) })
	return g.Wait()
}

func runStdin(ctx context.Context, state *appState) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return stream(ctx, state, os.Stdin, os.Stdout, defaultReadSize)
}
