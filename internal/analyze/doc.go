// Package analyze loads Go packages and builds the member model of every
// type declaration that asks for derivation.
//
// It uses golang.org/x/tools/go/packages for syntax only; the records it
// returns carry type expressions as written, which the generated code hands
// back to the compiler unchanged.
//
// Key types:
//   - Record: one type declaration with its directives and imports
//   - Member: one addressable field, keyed by name or position
//   - ShapeKind: unit (struct{}), named, or positional (all embedded)
package analyze
