package ast

import "sort"

// Set holds unique values in canonical order.
type Set struct {
	items []Value
}

// NewSet builds a set from vals. Duplicates collapse to the first occurrence.
func NewSet(vals ...Value) *Set {
	s := &Set{items: make([]Value, 0, len(vals))}
	for _, v := range vals {
		s.Insert(v)
	}
	return s
}

// Insert adds v unless an equal value is already present. It reports whether
// the set changed.
func (s *Set) Insert(v Value) bool {
	i, found := s.search(v)
	if found {
		return false
	}
	s.items = append(s.items, nil)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = v
	return true
}

func (s *Set) Contains(v Value) bool {
	_, found := s.search(v)
	return found
}

func (s *Set) Len() int {
	return len(s.items)
}

// Elements returns the members in canonical order.
func (s *Set) Elements() []Value {
	out := make([]Value, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Set) search(v Value) (int, bool) {
	i := sort.Search(len(s.items), func(i int) bool {
		return Compare(s.items[i], v) >= 0
	})
	return i, i < len(s.items) && Compare(s.items[i], v) == 0
}

// Map holds unique keys in canonical order, each with one value.
type Map struct {
	keys []Value
	vals []Value
}

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   Value
	Value Value
}

func NewMap(entries ...Entry) *Map {
	m := &Map{
		keys: make([]Value, 0, len(entries)),
		vals: make([]Value, 0, len(entries)),
	}
	for _, e := range entries {
		m.Insert(e.Key, e.Value)
	}
	return m
}

// Insert associates val with key. An existing key keeps its position and takes
// the new value. It reports whether key was new.
func (m *Map) Insert(key, val Value) bool {
	i, found := m.search(key)
	if found {
		m.vals[i] = val
		return false
	}
	m.keys = append(m.keys, nil)
	copy(m.keys[i+1:], m.keys[i:])
	m.keys[i] = key

	m.vals = append(m.vals, nil)
	copy(m.vals[i+1:], m.vals[i:])
	m.vals[i] = val
	return true
}

func (m *Map) Get(key Value) (Value, bool) {
	i, found := m.search(key)
	if !found {
		return nil, false
	}
	return m.vals[i], true
}

func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the keys in canonical order.
func (m *Map) Keys() []Value {
	out := make([]Value, len(m.keys))
	copy(out, m.keys)
	return out
}

// Entries returns the pairs in canonical key order.
func (m *Map) Entries() []Entry {
	out := make([]Entry, len(m.keys))
	for i := range m.keys {
		out[i] = Entry{Key: m.keys[i], Value: m.vals[i]}
	}
	return out
}

func (m *Map) search(key Value) (int, bool) {
	i := sort.Search(len(m.keys), func(i int) bool {
		return Compare(m.keys[i], key) >= 0
	})
	return i, i < len(m.keys) && Compare(m.keys[i], key) == 0
}
