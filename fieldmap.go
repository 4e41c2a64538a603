package fieldmap

// Typed is implemented by records with by-type access.
//
// FieldPtr sets *target to the address of the member whose type is T when
// target is a **T, and reports whether such a member exists. Records are
// expected to hold at most one member of each type.
type Typed interface {
	FieldPtr(target any) bool
}

// Meta is the part of by-index access that needs no record value. Generated
// code implements it with value receivers, so the zero value of the record
// type answers it.
type Meta interface {
	// FieldsLen returns the number of members.
	FieldsLen() int
	// FieldName returns the exposed name of member i. Positional members are
	// named by their decimal index.
	FieldName(i int) (string, bool)
	// FieldIndex is the inverse of FieldName.
	FieldIndex(name string) (int, bool)
}

// Fields is implemented by records with by-index access. E is the item type
// every member is viewed through.
type Fields[E any] interface {
	Meta
	// Field returns member i boxed in E.
	Field(i int) (E, bool)
	// FieldMut returns a pointer to member i boxed in E. Writes through it
	// are visible to the next Field(i).
	FieldMut(i int) (E, bool)
}

// Len returns the number of members of R without a record value.
func Len[R Meta]() int {
	var zero R
	return zero.FieldsLen()
}

// Name returns the exposed name of member i of R.
func Name[R Meta](i int) (string, bool) {
	var zero R
	return zero.FieldName(i)
}

// Find returns the index of the member of R named name.
func Find[R Meta](name string) (int, bool) {
	var zero R
	return zero.FieldIndex(name)
}
