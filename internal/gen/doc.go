// Package gen renders the methods that give a record by-type and by-index
// access to its members.
//
// Generation uses text/template + go/format. Each record is planned, its
// imports are merged into the file's import set, and each derivation is
// rendered into its own buffer; a failing derivation contributes
// diagnostics but no code.
//
// Emitted per record:
//   - Field: FieldPtr, a type switch with one arm per member
//   - Fields: FieldsLen, FieldName, FieldIndex, Field, FieldMut, the
//     iterator constructors and the All/AllMut range functions
package gen
