package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"unicode/utf8"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/suryansh-23/rxterm/internal/clipboard"
	"github.com/suryansh-23/rxterm/internal/decode"
	"github.com/suryansh-23/rxterm/internal/pipeline"
	"github.com/suryansh-23/rxterm/internal/ptywrap"
	"github.com/suryansh-23/rxterm/internal/render"
	"github.com/suryansh-23/rxterm/internal/tx"
	"github.com/suryansh-23/rxterm/internal/ui"
)

func newExecCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "exec -- CMD [ARGS...]",
		Short: "Run a command under a PTY and use it as the receive stream",
		Long: "Run a command under a PTY. Its output is displayed through the filter\n" +
			"and keystrokes are sent to it. Ctrl-A 1..9 sends a macro, Ctrl-A y copies\n" +
			"the display, Ctrl-A l clears it and Ctrl-A q quits.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd.Context(), state, exec.Command(args[0], args[1:]...))
		},
	}
}

type execSession struct {
	state  *appState
	sess   *ptywrap.Session
	actor  *pipeline.Actor
	buf    *tx.Buffer
	keys   tx.Keys
	cancel context.CancelFunc
}

func runExec(ctx context.Context, state *appState, command *exec.Cmd) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := state.logger
	dec, err := decode.New(state.cfg.Input.Encoding)
	if err != nil {
		return err
	}
	p, err := newPipeline(state.cfg, logger)
	if err != nil {
		return err
	}
	for i, m := range state.cfg.Macros {
		if _, err := m.Bytes(); err != nil {
			return fmt.Errorf("macro %d: %w", i+1, err)
		}
	}

	sess, err := ptywrap.Start(command, ptywrap.Options{SizeFrom: os.Stdin, Logger: logger.With("component", "pty")})
	if err != nil {
		return err
	}
	defer sess.Close()

	restore, err := ptywrap.MakeRaw(os.Stdin)
	if err != nil {
		return err
	}
	defer restore()

	renderer := render.New(os.Stdout, colorProfile(os.Stdout))
	if term.IsTerminal(int(os.Stdin.Fd())) {
		renderer.LineBreak = "\r\n"
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s := &execSession{
		state:  state,
		sess:   sess,
		actor:  pipeline.NewActor(p),
		cancel: cancel,
		buf: tx.NewBuffer(tx.Options{
			EnterKey:             state.cfg.Tx.EnterKey,
			SendMode:             state.cfg.Tx.SendMode,
			BackspaceRemovesLast: state.cfg.Tx.BackspaceRemovesLast,
			BufferSizeChars:      state.cfg.Display.BufferSizeChars,
			LocalEcho:            state.cfg.Display.LocalTxEcho,
		}),
	}

	chunks := make(chan string)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readChunks(gctx, sess, dec, defaultReadSize, chunks, ptywrap.IsEOF)
	})
	g.Go(func() error { return s.actor.Run(gctx, chunks) })
	g.Go(func() error { return renderDeltas(s.actor, renderer) })
	go func() {
		<-gctx.Done()
		_ = sess.Close()
	}()

	// Reads from the keyboard cannot be interrupted, so this goroutine is
	// left out of the group and simply ends with the process.
	go s.readKeys(gctx, os.Stdin)

	runErr := g.Wait()
	quit := ctx.Err() != nil
	code, waitErr := sess.Wait()
	restore()
	fmt.Fprint(os.Stderr, renderer.LineBreak)

	stats := p.Stats()
	fmt.Fprintln(os.Stderr, ui.StatsLine(stats.RxChars, stats.TxChars, p.FilterPattern()))

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if waitErr != nil {
		return waitErr
	}
	if code != 0 && !quit {
		return &exitCodeError{code: code}
	}
	return nil
}

func (s *execSession) readKeys(ctx context.Context, r io.Reader) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			for _, ev := range s.keys.Feed(buf[:n]) {
				if err := s.handle(ctx, ev); err != nil {
					if !errors.Is(err, pipeline.ErrStopped) && ctx.Err() == nil {
						s.state.logger.Warnf("key handling: %v", err)
					}
					return
				}
			}
		}
		if err != nil {
			return
		}
	}
}

func (s *execSession) handle(ctx context.Context, ev tx.Event) error {
	switch ev.Kind {
	case tx.EventKey:
		return s.send(ctx, s.buf.Key(ev.Byte))
	case tx.EventMacro:
		if ev.Macro >= len(s.state.cfg.Macros) {
			s.state.logger.Debugf("no macro %d", ev.Macro+1)
			return nil
		}
		out, err := s.buf.Macro(s.state.cfg.Macros[ev.Macro])
		if err != nil {
			return err
		}
		return s.send(ctx, out)
	case tx.EventCopy:
		var text string
		err := s.actor.Configure(ctx, func(p *pipeline.Pipeline) (pipeline.Delta, bool, error) {
			text = render.New(io.Discard, termenv.Ascii).String(p.Display())
			return pipeline.Delta{}, false, nil
		})
		if err != nil {
			return err
		}
		if err := clipboard.Copy(ctx, s.state.cfg.Clipboard.Backend, text); err != nil {
			s.state.logger.Warnf("copy: %v", err)
		}
		return nil
	case tx.EventClear:
		return s.actor.Configure(ctx, func(p *pipeline.Pipeline) (pipeline.Delta, bool, error) {
			return p.Clear(), true, nil
		})
	case tx.EventQuit:
		s.cancel()
		return context.Canceled
	}
	return nil
}

// send writes out to the child and records it. With local echo the sent
// text is also fed through the receive pipeline.
func (s *execSession) send(ctx context.Context, out []byte) error {
	if len(out) == 0 {
		return nil
	}
	if _, err := s.sess.Write(out); err != nil {
		return fmt.Errorf("write to pty: %w", err)
	}
	echo := s.buf.LocalEcho()
	return s.actor.Configure(ctx, func(p *pipeline.Pipeline) (pipeline.Delta, bool, error) {
		p.RecordTx(utf8.RuneCount(out))
		if !echo {
			return pipeline.Delta{}, false, nil
		}
		d, err := p.Push(string(out))
		return d, true, err
	})
}
