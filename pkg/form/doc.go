// Package form wires the model → widgets → UI schema → theme → renderer
// pipeline into a single entry point, with dependency-injection friendly
// options for callers that need to swap stages.
package form
