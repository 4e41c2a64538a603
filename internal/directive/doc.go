// Package directive parses the //fieldmap: comment directives attached to a
// type declaration.
//
// Two directives are recognized:
//
//	//fieldmap:derive Field, Fields
//	//fieldmap:fields item = "fmt.Stringer"
//
// derive selects the derivations to run. fields carries the options of the
// by-index derivation; its single option item names the element capability,
// either as a path token (Stringer, fmt.Stringer) or as a string literal
// whose content is a path ("fmt.Stringer", "encoding/json.Marshaler").
//
// Bodies are parsed with participle grammars. Positions reported by the
// parser are mapped back onto the directive comment, so diagnostics point at
// the exact option or value.
package directive
