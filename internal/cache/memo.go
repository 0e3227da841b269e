package cache

// Memo remembers the output of string transforms for one extraction call.
// Entries are keyed on the transform name and the exact input string, so a
// hit is always byte-identical to recomputing. Memo is not safe for
// concurrent use; each call owns its own.
type Memo struct {
	entries map[memoKey]string
	hits    int
	misses  int
}

type memoKey struct {
	kind  string
	input string
}

// NewMemo returns an empty memo.
func NewMemo() *Memo {
	return &Memo{entries: make(map[memoKey]string)}
}

// Do returns fn(input), computing it at most once per (kind, input) pair.
// A nil Memo calls fn directly.
func (m *Memo) Do(kind string, input string, fn func(string) string) string {
	if m == nil {
		return fn(input)
	}
	k := memoKey{kind: kind, input: input}
	if v, ok := m.entries[k]; ok {
		m.hits++
		return v
	}
	m.misses++
	v := fn(input)
	m.entries[k] = v
	return v
}

// Stats reports hit and miss counts.
func (m *Memo) Stats() (hits int, misses int) {
	if m == nil {
		return 0, 0
	}
	return m.hits, m.misses
}
