// Package pipeline chains the ANSI, filter and control character stages over
// received text and keeps the retained buffers within a character budget.
package pipeline

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/suryansh-23/rxterm/internal/ansi"
	"github.com/suryansh-23/rxterm/internal/ctrlchar"
	"github.com/suryansh-23/rxterm/internal/debug"
	"github.com/suryansh-23/rxterm/internal/filter"
	"github.com/suryansh-23/rxterm/internal/richtext"
	"github.com/suryansh-23/rxterm/internal/types"
)

// DefaultBufferSizeChars is used when Options.BufferSizeChars is zero.
const DefaultBufferSizeChars = 10000

// ErrInvalidOption is returned for a buffer size or apply type that cannot be used.
var ErrInvalidOption = errors.New("invalid pipeline option")

// Options configures a Pipeline.
type Options struct {
	BufferSizeChars     int
	FilterPattern       string
	ApplyType           types.FilterApplyType
	ReplaceControlChars bool
	Logger              *debug.Logger
}

// Delta is the text finished by one operation.
type Delta struct {
	// Raw is the received chunk, unprocessed. Empty for replays and flushes.
	Raw string
	// Text is ready to display. It is owned by the receiver.
	Text richtext.Text
	// Cleared means everything rendered before must be discarded first.
	Cleared bool
}

// Stats counts characters received and sent.
type Stats struct {
	RxChars int
	TxChars int
}

// Pipeline owns every buffer of one RX stream. It is not safe for concurrent
// use; see Actor.
type Pipeline struct {
	bufferSize int
	applyType  types.FilterApplyType
	logger     *debug.Logger

	raw      rawRing
	ansi     ansi.Parser
	total    richtext.Text
	working  richtext.Text
	filter   *filter.Filter
	filtered richtext.Text
	ctrl     ctrlchar.Parser
	display  richtext.Text
	stats    Stats
}

// New returns a Pipeline configured by opts.
func New(opts Options) (*Pipeline, error) {
	size := opts.BufferSizeChars
	if size == 0 {
		size = DefaultBufferSizeChars
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: buffer size %d", ErrInvalidOption, size)
	}
	applyType := opts.ApplyType
	if applyType == "" {
		applyType = types.ApplyToNewOnly
	}
	if !types.IsValidApplyType(applyType) {
		return nil, fmt.Errorf("%w: apply type %q", ErrInvalidOption, applyType)
	}
	f, err := filter.New(opts.FilterPattern)
	if err != nil {
		return nil, err
	}
	f.Logger = opts.Logger.With("stage", "filter")
	return &Pipeline{
		bufferSize: size,
		applyType:  applyType,
		logger:     opts.Logger,
		raw:        rawRing{max: size},
		ansi:       ansi.Parser{Logger: opts.Logger.With("stage", "ansi")},
		filter:     f,
		ctrl: ctrlchar.Parser{
			ReplaceWithSymbols: opts.ReplaceControlChars,
			Logger:             opts.Logger.With("stage", "ctrlchar"),
		},
	}, nil
}

// Push runs chunk through every stage and returns the newly finished text.
// A non-nil error means the buffers are inconsistent and the pipeline must
// not be used further.
func (p *Pipeline) Push(chunk string) (Delta, error) {
	p.stats.RxChars += utf8.RuneCountInString(chunk)
	p.raw.append(chunk)

	var parsed richtext.Text
	p.ansi.Parse(chunk, &parsed)
	if err := p.total.CopyCharsFrom(&parsed, parsed.Len()); err != nil {
		return Delta{}, fmt.Errorf("pipeline: total: %w", err)
	}
	if err := p.working.ShiftCharsIn(&parsed, parsed.Len()); err != nil {
		return Delta{}, fmt.Errorf("pipeline: working: %w", err)
	}
	if err := p.filter.Parse(&p.working, &p.filtered); err != nil {
		return Delta{}, fmt.Errorf("pipeline: filter: %w", err)
	}
	d, err := p.finish(false)
	d.Raw = chunk
	return d, err
}

// Flush releases everything held back waiting for more input: a partial
// escape sequence and an unterminated line. Call it when the stream ends.
func (p *Pipeline) Flush() (Delta, error) {
	var parsed richtext.Text
	p.ansi.Flush(&parsed)
	if err := p.total.CopyCharsFrom(&parsed, parsed.Len()); err != nil {
		return Delta{}, fmt.Errorf("pipeline: total: %w", err)
	}
	if err := p.working.ShiftCharsIn(&parsed, parsed.Len()); err != nil {
		return Delta{}, fmt.Errorf("pipeline: working: %w", err)
	}
	if err := p.filter.Flush(&p.working, &p.filtered); err != nil {
		return Delta{}, fmt.Errorf("pipeline: filter: %w", err)
	}
	return p.finish(false)
}

// finish runs the control character stage over the filter output, mirrors
// the result into the display buffer and trims.
func (p *Pipeline) finish(cleared bool) (Delta, error) {
	var out richtext.Text
	if err := p.ctrl.Parse(&p.filtered, &out); err != nil {
		return Delta{}, fmt.Errorf("pipeline: ctrlchar: %w", err)
	}
	if err := p.display.CopyCharsFrom(&out, out.Len()); err != nil {
		return Delta{}, fmt.Errorf("pipeline: display: %w", err)
	}
	p.trim()
	return Delta{Text: out, Cleared: cleared}, nil
}

func (p *Pipeline) trim() {
	if n := p.total.TrimTo(p.bufferSize); n > 0 {
		p.logger.Debugf("pipeline: trimmed %d chars from total", n)
	}
	p.working.TrimTo(p.bufferSize)
	p.display.TrimTo(p.bufferSize)
}

// replay clears the filter output and display and runs the retained total
// through the filter again.
func (p *Pipeline) replay() (Delta, error) {
	p.logger.Debugf("pipeline: replaying %d buffered chars", p.total.Len())
	p.filtered.Clear()
	p.display.Clear()
	p.working = p.total.Clone()
	if err := p.filter.Parse(&p.working, &p.filtered); err != nil {
		return Delta{}, fmt.Errorf("pipeline: filter: %w", err)
	}
	return p.finish(true)
}

// SetFilterPattern changes the filter. With ApplyToBufferedAndNew the
// buffered text is filtered again and the returned Delta replaces everything
// displayed so far; replayed reports whether that happened. An invalid pattern
// leaves the previous one active.
func (p *Pipeline) SetFilterPattern(pattern string) (Delta, bool, error) {
	if err := p.filter.SetPattern(pattern); err != nil {
		return Delta{}, false, err
	}
	if p.applyType != types.ApplyToBufferedAndNew {
		return Delta{}, false, nil
	}
	d, err := p.replay()
	return d, err == nil, err
}

// FilterPattern returns the active filter pattern.
func (p *Pipeline) FilterPattern() string {
	return p.filter.Pattern()
}

// SetApplyType changes when a new filter pattern applies. Switching to
// ApplyToBufferedAndNew refilters the buffered text at once.
func (p *Pipeline) SetApplyType(t types.FilterApplyType) (Delta, bool, error) {
	if !types.IsValidApplyType(t) {
		return Delta{}, false, fmt.Errorf("%w: apply type %q", ErrInvalidOption, t)
	}
	changed := t != p.applyType
	p.applyType = t
	if !changed || t != types.ApplyToBufferedAndNew {
		return Delta{}, false, nil
	}
	d, err := p.replay()
	return d, err == nil, err
}

// ApplyType returns the active apply type.
func (p *Pipeline) ApplyType() types.FilterApplyType {
	return p.applyType
}

// SetBufferSize changes the character budget and trims every buffer to it.
func (p *Pipeline) SetBufferSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: buffer size %d", ErrInvalidOption, n)
	}
	p.bufferSize = n
	p.raw.resize(n)
	p.trim()
	return nil
}

// BufferSize returns the character budget.
func (p *Pipeline) BufferSize() int {
	return p.bufferSize
}

// SetReplaceControlChars toggles glyph substitution for text received from now on.
func (p *Pipeline) SetReplaceControlChars(enabled bool) {
	p.ctrl.ReplaceWithSymbols = enabled
}

// Clear drops all buffered text. The ANSI attribute state and stats survive.
func (p *Pipeline) Clear() Delta {
	p.raw.reset()
	p.total.Clear()
	p.working.Clear()
	p.filtered.Clear()
	p.display.Clear()
	return Delta{Cleared: true}
}

// Raw returns the retained raw data.
func (p *Pipeline) Raw() string {
	return p.raw.String()
}

// Total returns a copy of the retained ANSI output before filtering.
func (p *Pipeline) Total() richtext.Text {
	return p.total.Clone()
}

// Display returns a copy of everything currently displayable.
func (p *Pipeline) Display() richtext.Text {
	return p.display.Clone()
}

// Stats returns the character counters.
func (p *Pipeline) Stats() Stats {
	return p.stats
}

// RecordTx adds n sent characters to the counters.
func (p *Pipeline) RecordTx(n int) {
	p.stats.TxChars += n
}
