// Package ptywrap runs a child command under a pseudo terminal so its output
// can be consumed as a received byte stream and keystrokes written back.
package ptywrap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/suryansh-23/rxterm/internal/debug"
)

// Options controls PTY execution behavior.
type Options struct {
	// SizeFrom, when a terminal, sets the initial PTY size and is tracked on SIGWINCH.
	SizeFrom *os.File
	Logger   *debug.Logger
}

// Session is a running child. Read returns its output; Write sends it input.
type Session struct {
	cmd         *exec.Cmd
	ptmx        *os.File
	logger      *debug.Logger
	stopSignals func()
}

// Start launches cmd under a new PTY.
func Start(cmd *exec.Cmd, opts Options) (*Session, error) {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, fmt.Errorf("start pty: %w", err)
	}
	s := &Session{cmd: cmd, ptmx: ptmx, logger: opts.Logger}
	if opts.SizeFrom != nil && term.IsTerminal(int(opts.SizeFrom.Fd())) {
		if err := pty.InheritSize(opts.SizeFrom, ptmx); err != nil {
			s.logger.Debugf("ptywrap: inherit size: %v", err)
		}
	}
	s.stopSignals = forwardSignals(cmd.Process, ptmx, opts.SizeFrom)
	s.logger.Debugf("ptywrap: started %s pid=%d", cmd.Path, cmd.Process.Pid)
	return s, nil
}

func (s *Session) Read(p []byte) (int, error) {
	return s.ptmx.Read(p)
}

func (s *Session) Write(p []byte) (int, error) {
	return s.ptmx.Write(p)
}

// Wait blocks until the child exits and returns its exit code.
func (s *Session) Wait() (int, error) {
	err := s.cmd.Wait()
	s.stopSignals()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 1, fmt.Errorf("wait: %w", err)
	}
	return exitCode(exitErr), nil
}

// Close releases the PTY. Pending reads return an error.
func (s *Session) Close() error {
	return s.ptmx.Close()
}

// MakeRaw puts f into raw mode when it is a terminal and returns a restore
// function. For non-terminals restore is a no-op.
func MakeRaw(f *os.File) (func(), error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("set raw mode: %w", err)
	}
	return func() { _ = term.Restore(fd, state) }, nil
}

// IsEOF reports whether err is how a PTY master signals that the child side
// has closed.
func IsEOF(err error) bool {
	return err != nil && (errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) || errors.Is(err, syscall.EIO))
}

func forwardSignals(proc *os.Process, ptmx *os.File, sizeFrom *os.File) func() {
	if proc == nil {
		return func() {}
	}
	ch := make(chan os.Signal, 8)
	signal.Notify(ch, syscall.SIGWINCH, syscall.SIGTERM, syscall.SIGHUP)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for sig := range ch {
			switch sig {
			case syscall.SIGWINCH:
				if sizeFrom != nil {
					_ = pty.InheritSize(sizeFrom, ptmx)
				}
			default:
				_ = proc.Signal(sig)
			}
		}
	}()

	stopped := false
	return func() {
		if stopped {
			return
		}
		stopped = true
		signal.Stop(ch)
		close(ch)
		<-done
	}
}

func exitCode(exitErr *exec.ExitError) int {
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
		if status.Signaled() {
			return 128 + int(status.Signal())
		}
		return status.ExitStatus()
	}
	return 1
}
