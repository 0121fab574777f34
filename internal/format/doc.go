// Package format assembles the caller-facing views of a classified step
// sequence.
//
// The structured Recipe record bundles the steps with summary statistics and
// a display timeline; the frontend variant adds chapter grouping and a
// quick-jump index over the primary cooking actions. Export helpers render
// the same record as an SRT subtitle track, a markdown document, or JSON that
// survives a round trip unchanged. Everything in this package is a pure
// function of its inputs.
package format
