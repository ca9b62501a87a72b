package widget

import (
	"slices"
	"strings"
)

// selection is an insertion-ordered set of item ids.
type selection struct {
	ids []string
	set map[string]struct{}
}

func newSelection() *selection {
	return &selection{set: make(map[string]struct{})}
}

func (s *selection) has(id string) bool {
	_, ok := s.set[id]
	return ok
}

// toggle adds id if absent and removes it if present. Reports whether id is
// selected afterwards.
func (s *selection) toggle(id string) bool {
	if s.remove(id) {
		return false
	}
	s.add(id)
	return true
}

func (s *selection) add(id string) {
	if s.has(id) {
		return
	}
	s.set[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s *selection) remove(id string) bool {
	if !s.has(id) {
		return false
	}
	delete(s.set, id)
	s.ids = slices.DeleteFunc(s.ids, func(v string) bool { return v == id })
	return true
}

// replace leaves exactly {id} selected.
func (s *selection) replace(id string) {
	s.reset(nil)
	s.add(id)
}

func (s *selection) reset(ids []string) {
	s.ids = nil
	clear(s.set)
	for _, id := range ids {
		s.add(id)
	}
}

func (s *selection) len() int {
	return len(s.ids)
}

func (s *selection) list() []string {
	return slices.Clone(s.ids)
}

// values is the serialized form handed to hosts: comma-joined ids.
func (s *selection) values() string {
	return strings.Join(s.ids, ",")
}
