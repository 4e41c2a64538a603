package fieldmap

import "iter"

// EntriesRef yields (name, value) pairs of a record in declaration order.
type EntriesRef[E any] struct {
	r   Fields[E] // nil once exhausted
	idx int
	n   int
}

// Iter returns an iterator over the members of r.
func Iter[E any](r Fields[E]) *EntriesRef[E] {
	return &EntriesRef[E]{r: r, n: r.FieldsLen()}
}

// Next returns the next member. After the first false it keeps returning
// false.
func (it *EntriesRef[E]) Next() (string, E, bool) {
	if it.r == nil || it.idx >= it.n {
		it.r = nil
		var zero E
		return "", zero, false
	}

	name, v, ok := entry(it.r, it.idx, it.r.Field)
	it.idx++

	if !ok {
		it.r = nil
	}

	return name, v, ok
}

// Len returns the number of members not yet yielded.
func (it *EntriesRef[E]) Len() int {
	if it.r == nil {
		return 0
	}

	return it.n - it.idx
}

// All adapts the iterator for range.
func (it *EntriesRef[E]) All() iter.Seq2[string, E] {
	return func(yield func(string, E) bool) {
		for {
			name, v, ok := it.Next()
			if !ok || !yield(name, v) {
				return
			}
		}
	}
}

// EntriesMut yields (name, pointer) pairs of a record in declaration order.
//
// The cursor only moves forward and each index is handed out once, so no two
// pointers yielded by one traversal refer to the same member. Callers may
// hold and write through all of them at the same time.
type EntriesMut[E any] struct {
	r   Fields[E] // nil once exhausted
	idx int
	n   int
}

// IterMut returns an iterator over pointers to the members of r.
func IterMut[E any](r Fields[E]) *EntriesMut[E] {
	return &EntriesMut[E]{r: r, n: r.FieldsLen()}
}

// Next returns the next member pointer. After the first false it keeps
// returning false.
func (it *EntriesMut[E]) Next() (string, E, bool) {
	if it.r == nil || it.idx >= it.n {
		it.r = nil
		var zero E
		return "", zero, false
	}

	name, v, ok := entry(it.r, it.idx, it.r.FieldMut)
	it.idx++

	if !ok {
		it.r = nil
	}

	return name, v, ok
}

// Len returns the number of members not yet yielded.
func (it *EntriesMut[E]) Len() int {
	if it.r == nil {
		return 0
	}

	return it.n - it.idx
}

// All adapts the iterator for range.
func (it *EntriesMut[E]) All() iter.Seq2[string, E] {
	return func(yield func(string, E) bool) {
		for {
			name, v, ok := it.Next()
			if !ok || !yield(name, v) {
				return
			}
		}
	}
}

// ValuesRef yields the members of a record without their names.
type ValuesRef[E any] struct {
	r   Fields[E] // nil once exhausted
	idx int
	n   int
}

// Values returns an iterator over the member values of r.
func Values[E any](r Fields[E]) *ValuesRef[E] {
	return &ValuesRef[E]{r: r, n: r.FieldsLen()}
}

// Next returns the next value. After the first false it keeps returning
// false.
func (it *ValuesRef[E]) Next() (E, bool) {
	var zero E
	if it.r == nil || it.idx >= it.n {
		it.r = nil
		return zero, false
	}

	v, ok := it.r.Field(it.idx)
	it.idx++

	if !ok {
		it.r = nil
		return zero, false
	}

	return v, true
}

// Len returns the number of members not yet yielded.
func (it *ValuesRef[E]) Len() int {
	if it.r == nil {
		return 0
	}

	return it.n - it.idx
}

// All adapts the iterator for range.
func (it *ValuesRef[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// ValuesMut yields pointers to the members of a record without their names.
// Like EntriesMut, every member is handed out at most once per traversal.
type ValuesMut[E any] struct {
	r   Fields[E] // nil once exhausted
	idx int
	n   int
}

// ValuesMutOf returns an iterator over pointers to the members of r.
func ValuesMutOf[E any](r Fields[E]) *ValuesMut[E] {
	return &ValuesMut[E]{r: r, n: r.FieldsLen()}
}

// Next returns the next pointer. After the first false it keeps returning
// false.
func (it *ValuesMut[E]) Next() (E, bool) {
	var zero E
	if it.r == nil || it.idx >= it.n {
		it.r = nil
		return zero, false
	}

	v, ok := it.r.FieldMut(it.idx)
	it.idx++

	if !ok {
		it.r = nil
		return zero, false
	}

	return v, true
}

// Len returns the number of members not yet yielded.
func (it *ValuesMut[E]) Len() int {
	if it.r == nil {
		return 0
	}

	return it.n - it.idx
}

// All adapts the iterator for range.
func (it *ValuesMut[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// NameIter yields the member names of record type R. It needs no record.
type NameIter[R Meta] struct {
	idx  int
	n    int
	done bool
}

// Names returns an iterator over the member names of R.
func Names[R Meta]() *NameIter[R] {
	return &NameIter[R]{n: Len[R]()}
}

// Next returns the next name. After the first false it keeps returning
// false.
func (it *NameIter[R]) Next() (string, bool) {
	if it.done || it.idx >= it.n {
		it.done = true
		return "", false
	}

	name, ok := Name[R](it.idx)
	it.idx++

	if !ok {
		it.done = true
		return "", false
	}

	return name, true
}

// Len returns the number of names not yet yielded.
func (it *NameIter[R]) Len() int {
	if it.done {
		return 0
	}

	return it.n - it.idx
}

// All adapts the iterator for range.
func (it *NameIter[R]) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			name, ok := it.Next()
			if !ok || !yield(name) {
				return
			}
		}
	}
}

func entry[E any](r Fields[E], i int, get func(int) (E, bool)) (string, E, bool) {
	var zero E

	name, ok := r.FieldName(i)
	if !ok {
		return "", zero, false
	}

	v, ok := get(i)
	if !ok {
		return "", zero, false
	}

	return name, v, true
}
