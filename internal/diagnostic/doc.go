// Package diagnostic provides structured errors and warnings for the
// fieldmap generator.
//
// Every diagnostic carries a code and a source span pointing at the most
// specific offending token:
//   - FM001 unsupported declaration (not a struct)
//   - FM002 missing //fieldmap:fields directive
//   - FM003 malformed directive
//   - FM004 duplicate directive or option
//   - FM005 unknown option or derive name
//   - FM006 unresolvable package qualifier
//   - FM007 member name collides with a generated method
//
// Diagnostics are values; the generator never panics on bad input.
package diagnostic
