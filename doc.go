// Package fieldmap is the runtime support for code generated by
// cmd/fieldmap.
//
// The generator reads struct declarations carrying directives:
//
//	//fieldmap:derive Field, Fields
//	//fieldmap:fields item = "fmt.Stringer"
//	type Example struct {
//		A uint8
//		B Celsius
//	}
//
// and writes methods that give statically dispatched access to the members
// in two ways.
//
// By type (derive Field): the record implements Typed and the generic
// helpers Get, GetMut and Replace pick the member whose type matches the
// type argument:
//
//	b, ok := fieldmap.Get[Celsius](&ex)
//
// By index (derive Fields): the record implements Fields[E], where E is the
// item type named by the fields directive. Members are reached by position
// or name, and iterated in declaration order:
//
//	for name, v := range ex.All() {
//		fmt.Println(name, v)
//	}
//
// The iterators in this package report their exact remaining length and stay
// exhausted once they have returned false.
package fieldmap
