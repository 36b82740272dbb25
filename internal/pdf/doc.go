// Package pdf translates a run's resolved values into a flat mapping of
// external PDF form field identifiers to renderable values. It is a pure
// consumer of the engine: mapping never influences resolution, and the
// actual writing of a fillable document is an external collaborator's
// job.
package pdf
