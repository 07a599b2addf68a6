// Package tx turns typed keys and macros into the bytes sent to the device.
package tx

import (
	"github.com/suryansh-23/rxterm/internal/types"
)

const (
	keyEnter     = '\r'
	keyBackspace = '\b'
	keyDelete    = 0x7f
)

// Options configures a Buffer.
type Options struct {
	EnterKey             types.EnterKeyBehaviour
	SendMode             types.TxSendMode
	BackspaceRemovesLast bool
	BufferSizeChars      int
	LocalEcho            bool
}

// Buffer collects typed keys until they are due to be sent and keeps a
// bounded history of everything sent.
type Buffer struct {
	opts    Options
	pending []byte
	sent    []byte
}

// NewBuffer returns a Buffer. Zero options mean LF on enter, immediate sending
// and a 10000 character history.
func NewBuffer(opts Options) *Buffer {
	if opts.EnterKey == "" {
		opts.EnterKey = types.EnterLF
	}
	if opts.SendMode == "" {
		opts.SendMode = types.SendImmediately
	}
	if opts.BufferSizeChars <= 0 {
		opts.BufferSizeChars = 10000
	}
	return &Buffer{opts: opts}
}

// Key handles one typed byte and returns the bytes to send now, if any.
func (b *Buffer) Key(k byte) []byte {
	onEnter := b.opts.SendMode == types.SendOnEnter
	if onEnter && b.opts.BackspaceRemovesLast && (k == keyBackspace || k == keyDelete) {
		if n := len(b.pending); n > 0 {
			b.pending = b.pending[:n-1]
		}
		return nil
	}
	if k == keyEnter {
		b.pending = append(b.pending, enterBytes(b.opts.EnterKey)...)
	} else {
		b.pending = append(b.pending, k)
	}
	if onEnter && k != keyEnter {
		return nil
	}
	return b.take()
}

// Macro returns the bytes of m, sent immediately. Anything typed but not yet
// sent stays pending.
func (b *Buffer) Macro(m Macro) ([]byte, error) {
	seq, err := m.Bytes()
	if err != nil {
		return nil, err
	}
	b.record(seq)
	return seq, nil
}

// Pending returns the typed bytes waiting for enter.
func (b *Buffer) Pending() []byte {
	return append([]byte(nil), b.pending...)
}

// Sent returns the most recent sent bytes, at most BufferSizeChars of them.
func (b *Buffer) Sent() []byte {
	return append([]byte(nil), b.sent...)
}

// LocalEcho reports whether sent bytes should also be shown as received data.
func (b *Buffer) LocalEcho() bool {
	return b.opts.LocalEcho
}

func (b *Buffer) take() []byte {
	out := b.pending
	b.pending = nil
	b.record(out)
	return out
}

func (b *Buffer) record(p []byte) {
	b.sent = append(b.sent, p...)
	if excess := len(b.sent) - b.opts.BufferSizeChars; excess > 0 {
		b.sent = append([]byte(nil), b.sent[excess:]...)
	}
}

func enterBytes(e types.EnterKeyBehaviour) []byte {
	switch e {
	case types.EnterCR:
		return []byte{'\r'}
	case types.EnterCRLF:
		return []byte{'\r', '\n'}
	default:
		return []byte{'\n'}
	}
}
