// Package match finds the closest known name to a misspelled one, for "did
// you mean" hints on directives, options and --type names.
package match
