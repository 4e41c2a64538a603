package fieldmap_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldmap"
)

// point is written the way cmd/fieldmap renders a record with
// //fieldmap:derive Field, Fields and //fieldmap:fields item = any.
type point struct {
	x uint8
	y uint16
	s string
}

func (r *point) FieldPtr(target any) bool {
	switch p := target.(type) {
	case **uint8:
		*p = &r.x
	case **uint16:
		*p = &r.y
	case **string:
		*p = &r.s
	default:
		return false
	}

	return true
}

func (point) FieldsLen() int { return 3 }

func (point) FieldName(i int) (string, bool) {
	switch i {
	case 0:
		return "x", true
	case 1:
		return "y", true
	case 2:
		return "s", true
	default:
		return "", false
	}
}

func (point) FieldIndex(name string) (int, bool) {
	switch name {
	case "x":
		return 0, true
	case "y":
		return 1, true
	case "s":
		return 2, true
	default:
		return -1, false
	}
}

func (r *point) Field(i int) (any, bool) {
	switch i {
	case 0:
		return r.x, true
	case 1:
		return r.y, true
	case 2:
		return r.s, true
	default:
		return nil, false
	}
}

func (r *point) FieldMut(i int) (any, bool) {
	switch i {
	case 0:
		return &r.x, true
	case 1:
		return &r.y, true
	case 2:
		return &r.s, true
	default:
		return nil, false
	}
}

var (
	_ fieldmap.Typed       = (*point)(nil)
	_ fieldmap.Fields[any] = (*point)(nil)
)

// empty is a unit record.
type empty struct{}

func (empty) FieldsLen() int { return 0 }

func (empty) FieldName(int) (string, bool) { return "", false }

func (empty) FieldIndex(string) (int, bool) { return -1, false }

func (*empty) Field(int) (fmt.Stringer, bool) { return nil, false }

func (*empty) FieldMut(int) (fmt.Stringer, bool) { return nil, false }

func (*empty) FieldPtr(any) bool { return false }

func TestGet(t *testing.T) {
	p := &point{x: 1, y: 2, s: "three"}

	x, ok := fieldmap.Get[uint8](p)
	require.True(t, ok)
	assert.Equal(t, uint8(1), x)

	s, ok := fieldmap.Get[string](p)
	require.True(t, ok)
	assert.Equal(t, "three", s)

	_, ok = fieldmap.Get[int](p)
	assert.False(t, ok)
}

func TestGetMut(t *testing.T) {
	p := &point{y: 2}

	y, ok := fieldmap.GetMut[uint16](p)
	require.True(t, ok)
	assert.Same(t, &p.y, y)

	*y = 20
	got, _ := fieldmap.Get[uint16](p)
	assert.Equal(t, uint16(20), got)

	_, ok = fieldmap.GetMut[float64](p)
	assert.False(t, ok)

	_, ok = fieldmap.GetMut[uint8](&empty{})
	assert.False(t, ok)
}

func TestReplace(t *testing.T) {
	p := &point{s: "old"}

	old, ok := fieldmap.Replace(p, "new")
	require.True(t, ok)
	assert.Equal(t, "old", old)
	assert.Equal(t, "new", p.s)

	_, ok = fieldmap.Replace(p, 1.5)
	assert.False(t, ok)
}

func TestMeta_Static(t *testing.T) {
	assert.Equal(t, 3, fieldmap.Len[point]())
	assert.Equal(t, 0, fieldmap.Len[empty]())

	name, ok := fieldmap.Name[point](1)
	require.True(t, ok)
	assert.Equal(t, "y", name)

	idx, ok := fieldmap.Find[point]("s")
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = fieldmap.Find[point]("z")
	assert.False(t, ok)
}

func TestMeta_NameIndexBijection(t *testing.T) {
	var p point
	for i := range p.FieldsLen() {
		name, ok := p.FieldName(i)
		require.True(t, ok)

		idx, ok := p.FieldIndex(name)
		require.True(t, ok)
		assert.Equal(t, i, idx)
	}

	_, ok := p.FieldName(p.FieldsLen())
	assert.False(t, ok)
}

func TestFields_MutVisibleToRef(t *testing.T) {
	p := &point{}

	ptr, ok := p.FieldMut(0)
	require.True(t, ok)
	*ptr.(*uint8) = 9

	v, ok := p.Field(0)
	require.True(t, ok)
	assert.Equal(t, uint8(9), v)
}

func TestIter(t *testing.T) {
	p := &point{x: 100, y: 200, s: "300"}
	it := fieldmap.Iter[any](p)
	assert.Equal(t, 3, it.Len())

	var got [][2]string
	for {
		name, v, ok := it.Next()
		if !ok {
			break
		}

		got = append(got, [2]string{name, fmt.Sprint(v)})
		assert.Equal(t, 3-len(got), it.Len())
	}

	assert.Equal(t, [][2]string{{"x", "100"}, {"y", "200"}, {"s", "300"}}, got)
}

func TestIter_Fused(t *testing.T) {
	p := &point{}
	it := fieldmap.Iter[any](p)

	for range 3 {
		_, _, ok := it.Next()
		require.True(t, ok)
	}

	for range 3 {
		_, _, ok := it.Next()
		assert.False(t, ok)
		assert.Equal(t, 0, it.Len())
	}
}

func TestIter_All(t *testing.T) {
	p := &point{x: 1, y: 2, s: "3"}

	var names []string
	for name := range fieldmap.Iter[any](p).All() {
		names = append(names, name)
	}

	assert.Equal(t, []string{"x", "y", "s"}, names)

	// Stopping early leaves the remainder.
	it := fieldmap.Iter[any](p)
	for range it.All() {
		break
	}

	assert.Equal(t, 2, it.Len())
}

func TestIterMut(t *testing.T) {
	p := &point{x: 10, y: 15}
	it := fieldmap.IterMut[any](p)
	assert.Equal(t, 3, it.Len())

	seen := map[any]bool{}

	for name, v := range it.All() {
		require.False(t, seen[v], "member %s yielded twice", name)
		seen[v] = true

		switch ptr := v.(type) {
		case *uint8:
			*ptr++
		case *uint16:
			*ptr++
		case *string:
			*ptr += "!"
		}
	}

	assert.Len(t, seen, 3)
	assert.Equal(t, uint8(11), p.x)
	assert.Equal(t, uint16(16), p.y)
	assert.Equal(t, "!", p.s)

	_, _, ok := it.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, it.Len())
}

func TestValues(t *testing.T) {
	p := &point{x: 1, y: 2, s: "3"}
	it := fieldmap.Values[any](p)
	assert.Equal(t, 3, it.Len())

	var got []any
	for v := range it.All() {
		got = append(got, v)
	}

	assert.Equal(t, []any{uint8(1), uint16(2), "3"}, got)

	_, ok := it.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, it.Len())
}

func TestValuesMut(t *testing.T) {
	p := &point{}
	it := fieldmap.ValuesMutOf[any](p)

	var ptrs []any
	for {
		v, ok := it.Next()
		if !ok {
			break
		}

		ptrs = append(ptrs, v)
	}

	require.Len(t, ptrs, 3)
	assert.Same(t, &p.x, ptrs[0])
	assert.Same(t, &p.y, ptrs[1])
	assert.Same(t, &p.s, ptrs[2])

	_, ok := it.Next()
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	it := fieldmap.Names[point]()
	assert.Equal(t, 3, it.Len())

	var names []string
	for name := range it.All() {
		names = append(names, name)
	}

	assert.Equal(t, []string{"x", "y", "s"}, names)
	assert.Equal(t, 0, it.Len())

	_, ok := it.Next()
	assert.False(t, ok)
}

func TestIterators_Empty(t *testing.T) {
	e := &empty{}

	it := fieldmap.Iter[fmt.Stringer](e)
	assert.Equal(t, 0, it.Len())
	_, _, ok := it.Next()
	assert.False(t, ok)

	_, _, ok = fieldmap.IterMut[fmt.Stringer](e).Next()
	assert.False(t, ok)

	_, ok = fieldmap.Values[fmt.Stringer](e).Next()
	assert.False(t, ok)

	_, ok = fieldmap.ValuesMutOf[fmt.Stringer](e).Next()
	assert.False(t, ok)

	_, ok = fieldmap.Names[empty]().Next()
	assert.False(t, ok)
}
