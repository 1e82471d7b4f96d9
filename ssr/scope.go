package ssr

import "github.com/vuet/vuet/data"

type scope []data.Map // a stack of variable scopes

func newScope(m data.Map) scope {
	if m == nil {
		m = make(data.Map)
	}
	return scope{m}
}

// push creates a new scope
func (s *scope) push() {
	*s = append(*s, make(data.Map))
}

// pop discards the last scope pushed.
func (s *scope) pop() {
	*s = (*s)[:len(*s)-1]
}

// set adds a new binding to the deepest scope
func (s scope) set(k string, v data.Value) {
	s[len(s)-1][k] = v
}

// lookup checks the variable scopes, deepest out, for the given key
func (s scope) lookup(k string) (data.Value, bool) {
	for i := range s {
		var elem = s[len(s)-i-1]
		if val, ok := elem[k]; ok {
			return val, true
		}
	}
	return data.Undefined{}, false
}
