package transform

// scope tracks identifiers introduced by enclosing v-for aliases and v-slot
// bindings.  Such identifiers resolve to render-function parameters, not to
// component state, and must not be rewritten to _ctx lookups.
type scope struct {
	stack []map[string]bool
}

func (s *scope) push(names []string) {
	var frame = make(map[string]bool, len(names))
	for _, name := range names {
		frame[name] = true
	}
	s.stack = append(s.stack, frame)
}

func (s *scope) pop() {
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *scope) has(name string) bool {
	for _, frame := range s.stack {
		if frame[name] {
			return true
		}
	}
	return false
}
