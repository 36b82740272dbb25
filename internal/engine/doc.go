// Package engine implements the evaluation core for tax form computation:
// the static data model (inputs, thresholds, fields, form definitions) and
// the per-run resolver that lazily computes field values on demand.
//
// Form definitions are immutable once indexed and may be shared read-only
// across any number of runs. All mutable evaluation state (loaded
// instances, the memoization cache, the in-progress stack, the list of
// unsupported scenarios) belongs to a single Run and is discarded with it.
// Resolution within one run is synchronous and single-threaded; concurrent
// filings each own an independent Run and share nothing.
package engine
