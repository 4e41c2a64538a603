package fieldmap

// Get returns a copy of the member of r whose type is T.
func Get[T any](r Typed) (T, bool) {
	p, ok := GetMut[T](r)
	if !ok {
		var zero T
		return zero, false
	}

	return *p, true
}

// GetMut returns the address of the member of r whose type is T.
func GetMut[T any](r Typed) (*T, bool) {
	var p *T
	if !r.FieldPtr(&p) || p == nil {
		return nil, false
	}

	return p, true
}

// Replace stores v into the member of r whose type is T and returns the
// previous value.
func Replace[T any](r Typed, v T) (T, bool) {
	p, ok := GetMut[T](r)
	if !ok {
		var zero T
		return zero, false
	}

	old := *p
	*p = v

	return old, true
}
