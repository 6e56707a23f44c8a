package state

// SeenState is the bounded set of announcement identifiers already
// processed in a prior run. The list is recency-ordered, newest first,
// so truncation keeps the most recently observed identifiers.
type SeenState struct {
	ids   []string
	index map[string]struct{}
}

func NewSeenState(ids ...string) *SeenState {
	s := &SeenState{index: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if _, dup := s.index[id]; dup {
			continue
		}
		s.ids = append(s.ids, id)
		s.index[id] = struct{}{}
	}
	return s
}

func (s *SeenState) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *SeenState) Len() int {
	return len(s.ids)
}

// Identifiers returns the identifiers newest first.
func (s *SeenState) Identifiers() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// MergeFront prepends identifiers in the given order, moving any that
// were already present to the front. Every identifier processed this run
// is merged exactly once, whether or not it qualified for notification.
func (s *SeenState) MergeFront(ids []string) {
	if len(ids) == 0 {
		return
	}

	merged := NewSeenState(ids...)
	for _, id := range s.ids {
		if merged.Contains(id) {
			continue
		}
		merged.ids = append(merged.ids, id)
		merged.index[id] = struct{}{}
	}

	s.ids = merged.ids
	s.index = merged.index
}

// Truncate drops everything past the n most recent identifiers.
func (s *SeenState) Truncate(n int) {
	if n < 0 || len(s.ids) <= n {
		return
	}
	for _, id := range s.ids[n:] {
		delete(s.index, id)
	}
	s.ids = s.ids[:n]
}
