package fieldmap_test

import (
	"fmt"

	"fieldmap"
)

func ExampleGet() {
	p := &point{x: 7, s: "seven"}

	s, ok := fieldmap.Get[string](p)
	fmt.Println(s, ok)

	_, ok = fieldmap.Get[complex64](p)
	fmt.Println(ok)
	// Output:
	// seven true
	// false
}

func ExampleIter() {
	p := &point{x: 100, y: 200, s: "300"}

	for name, v := range fieldmap.Iter[any](p).All() {
		fmt.Printf("%s=%v\n", name, v)
	}
	// Output:
	// x=100
	// y=200
	// s=300
}

func ExampleIterMut() {
	p := &point{x: 10, y: 15}

	for _, v := range fieldmap.IterMut[any](p).All() {
		switch ptr := v.(type) {
		case *uint8:
			*ptr++
		case *uint16:
			*ptr++
		}
	}

	fmt.Println(p.x, p.y)
	// Output: 11 16
}

func ExampleNames() {
	for name := range fieldmap.Names[point]().All() {
		fmt.Println(name)
	}
	// Output:
	// x
	// y
	// s
}
