// Package key implements the value key grammar used to address any
// resolvable field in a filing run:
//
//	field              a field on the requesting form instance
//	form.field         a field on a singleton form
//	form:index.field   a field on one instance of a repeatable form
//
// Keys written by form authors are parsed once into a structured Key; the
// engine never re-parses the raw string after that.
package key
