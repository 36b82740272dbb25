// Package ty2023 defines the tax year 2023 form catalog: US form 1040
// and the source documents feeding it. Field rules follow the 2023 form
// instructions; scenarios the rule set does not cover resolve to the
// engine's unsupported marker rather than producing a wrong figure.
package ty2023
