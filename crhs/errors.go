package crhs

import "errors"

// ErrMalformedInput is returned by producer.Lift when a relation's truth
// table has a row whose width differs from its input plus output variable
// count, a shape that violates the data model of SPEC_FULL.md §3. The .bdd
// reader reports its own bddfile.ErrMalformedFile instead.
var ErrMalformedInput = errors.New("crhs: malformed input")

// ErrEmptyEquation is returned by NewEquation when asked to build an
// equation with zero levels; a CRHS equation must have at least one level
// (the trivial equation is the minimal case, not the empty one).
var ErrEmptyEquation = errors.New("crhs: equation must have at least one level")
