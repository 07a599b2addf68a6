package tx

// Prefix is the command key (Ctrl-A).
const Prefix = 0x01

// EventKind says what a key press asks for.
type EventKind int

const (
	// EventKey is a byte for the TX buffer.
	EventKey EventKind = iota
	// EventMacro fires macro Event.Macro (0 based).
	EventMacro
	// EventCopy copies the displayed text to the clipboard.
	EventCopy
	// EventClear clears the display.
	EventClear
	// EventQuit ends the session.
	EventQuit
)

// Event is one decoded key press.
type Event struct {
	Kind  EventKind
	Byte  byte
	Macro int
}

// Keys splits keyboard input into plain keys and Ctrl-A commands:
// Ctrl-A 1..9 fires a macro, y copies, l clears, q quits and a second
// Ctrl-A sends a literal Ctrl-A. Any other byte after the prefix is sent
// together with the prefix.
type Keys struct {
	armed bool
}

// Feed decodes p. A trailing prefix is remembered for the next call.
func (k *Keys) Feed(p []byte) []Event {
	var out []Event
	for _, c := range p {
		if !k.armed {
			if c == Prefix {
				k.armed = true
				continue
			}
			out = append(out, Event{Kind: EventKey, Byte: c})
			continue
		}
		k.armed = false
		switch {
		case c >= '1' && c <= '9':
			out = append(out, Event{Kind: EventMacro, Macro: int(c - '1')})
		case c == 'y':
			out = append(out, Event{Kind: EventCopy})
		case c == 'l':
			out = append(out, Event{Kind: EventClear})
		case c == 'q':
			out = append(out, Event{Kind: EventQuit})
		case c == Prefix:
			out = append(out, Event{Kind: EventKey, Byte: Prefix})
		default:
			out = append(out, Event{Kind: EventKey, Byte: Prefix}, Event{Kind: EventKey, Byte: c})
		}
	}
	return out
}
