package pipeline

// rawRing keeps the last max characters of received data, escape bytes included.
type rawRing struct {
	max   int
	runes []rune
}

func (r *rawRing) append(s string) {
	if s == "" {
		return
	}
	in := []rune(s)
	if len(in) >= r.max {
		r.runes = append(r.runes[:0], in[len(in)-r.max:]...)
		return
	}
	if len(r.runes)+len(in) <= r.max {
		r.runes = append(r.runes, in...)
		return
	}
	drop := len(r.runes) + len(in) - r.max
	r.runes = append(r.runes[drop:], in...)
}

func (r *rawRing) resize(max int) {
	r.max = max
	if excess := len(r.runes) - max; excess > 0 {
		r.runes = append([]rune(nil), r.runes[excess:]...)
	}
}

func (r *rawRing) String() string {
	return string(r.runes)
}

func (r *rawRing) reset() {
	r.runes = nil
}
