// reader.go implements the character source for the token scanner: a rune
// cursor over the input with an unbounded pushback buffer, so a resolved
// nested token can be re-injected and consumed as if it had been part of
// the original input. Pushed-back runes carry their provenance, telling
// original input apart from injected replacement text.
package filter

// eof is returned by next when the input and pushback are both exhausted.
const eof = rune(-1)

type reader struct {
	input    []rune
	pos      int
	pushback []rune // consumed LIFO, last pushed rune is read first
	injected []bool // provenance per pushback rune, true for replacement text
	lastInj  bool   // provenance of the rune last returned by next
}

func newReader(input string) *reader {
	return &reader{input: []rune(input)}
}

// next returns the next rune, draining the pushback buffer first.
func (r *reader) next() rune {
	if n := len(r.pushback); n > 0 {
		c := r.pushback[n-1]
		r.pushback = r.pushback[:n-1]
		r.lastInj = r.injected[n-1]
		r.injected = r.injected[:n-1]
		return c
	}
	r.lastInj = false
	if r.pos >= len(r.input) {
		return eof
	}
	c := r.input[r.pos]
	r.pos++
	return c
}

// unget pushes a single rune back; the next call to next returns it. The
// rune keeps the provenance it was read with.
func (r *reader) unget(c rune) {
	if c == eof {
		return
	}
	r.pushback = append(r.pushback, c)
	r.injected = append(r.injected, r.lastInj)
}

// ungets pushes a whole string of replacement text back in reading order.
func (r *reader) ungets(s string) {
	runes := []rune(s)
	for i := len(runes) - 1; i >= 0; i-- {
		r.pushback = append(r.pushback, runes[i])
		r.injected = append(r.injected, true)
	}
}

// dropInjected discards pending replacement text, keeping pushed-back
// original input in place.
func (r *reader) dropInjected() {
	kept := r.pushback[:0]
	flags := r.injected[:0]
	for i, c := range r.pushback {
		if !r.injected[i] {
			kept = append(kept, c)
			flags = append(flags, false)
		}
	}
	r.pushback = kept
	r.injected = flags
}
