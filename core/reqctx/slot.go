package reqctx

// slot is a populate-once cache cell. Populated is tracked separately from the value so
// that an empty mapping still counts as populated.
type slot[T any] struct {
	value     T
	populated bool
}

func (s *slot[T]) get() (T, bool) {
	return s.value, s.populated
}

// set stores v unless the slot is already populated and returns the slot's value.
func (s *slot[T]) set(v T) T {
	if !s.populated {
		s.value = v
		s.populated = true
	}
	return s.value
}
