package engine

import (
	"fmt"
	"strings"
)

// KeyError reports a value key that names a form, instance, or field that
// does not exist in the current run. It always indicates a configuration
// defect and is fatal to the run.
type KeyError struct {
	Key    string
	Reason string
}

// Error implements the error interface for KeyError.
func (e *KeyError) Error() string {
	return fmt.Sprintf("cannot resolve %q: %s", e.Key, e.Reason)
}

// CycleError reports a circular field dependency. Chain holds the full
// resolution path, ending with the key that was re-entered.
type CycleError struct {
	Chain []string
}

// Error implements the error interface for CycleError.
func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency: %s", strings.Join(e.Chain, " -> "))
}

// ThresholdError reports a failed threshold lookup: an unknown threshold
// name, a bracketed spec queried without a selector, or a selector that
// matches no bucket (or more than one). Fatal to the run.
type ThresholdError struct {
	Threshold string
	Selector  string
	Reason    string
}

// Error implements the error interface for ThresholdError.
func (e *ThresholdError) Error() string {
	if e.Selector == "" {
		return fmt.Sprintf("threshold %q: %s", e.Threshold, e.Reason)
	}
	return fmt.Sprintf("threshold %q (selector %q): %s", e.Threshold, e.Selector, e.Reason)
}

// InputError reports a raw answer that does not satisfy its input
// declaration, or a compute strategy reading an input that was never
// answered. Fatal to loading that form instance (or to the run, when
// raised at compute time).
type InputError struct {
	Form   string
	Input  string
	Reason string
}

// Error implements the error interface for InputError.
func (e *InputError) Error() string {
	return fmt.Sprintf("form %q input %q: %s", e.Form, e.Input, e.Reason)
}
