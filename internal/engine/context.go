package engine

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// unsupportedMark is the tagged "this scenario is not covered" state a
// strategy leaves on its context. propagated distinguishes a mark picked
// up from an unsupported dependency from one raised fresh; only fresh
// marks become occurrences in the run's report.
type unsupportedMark struct {
	detail     string
	propagated bool
}

// Context is the channel through which a compute strategy reaches its
// form's inputs, its thresholds, and any other resolvable value. Its
// accessors latch the first failure: after an error or an unsupported
// mark, every subsequent accessor returns a zero value and the strategy
// simply runs to completion. The resolver inspects the context once the
// strategy returns, so strategies stay free of error plumbing without
// any condition being silently dropped.
type Context struct {
	run   *Run
	inst  *Instance
	goctx context.Context
	err   error
	uns   *unsupportedMark
}

// Num wraps a float64 for returning from a compute strategy.
func Num(v float64) cty.Value {
	return cty.NumberFloatVal(v)
}

// Count wraps an int64 for returning from a compute strategy.
func Count(v int64) cty.Value {
	return cty.NumberIntVal(v)
}

// Text wraps a string for returning from a compute strategy.
func Text(s string) cty.Value {
	return cty.StringVal(s)
}

// Truth wraps a bool for returning from a compute strategy.
func Truth(b bool) cty.Value {
	return cty.BoolVal(b)
}

// None is the explicit absent marker: the line is legitimately blank on
// the form for this taxpayer.
var None = cty.NilVal

func (c *Context) failed() bool {
	return c.err != nil || c.uns != nil
}

func (c *Context) fail(err error) {
	if !c.failed() {
		c.err = err
	}
}

// Form returns the definition of the form being computed.
func (c *Context) Form() *Definition {
	return c.inst.def
}

// Index returns the instance index of the form being computed, or -1 on
// a singleton form. Per-line fields of repeated forms use it to address
// their own instance's siblings.
func (c *Context) Index() int {
	return c.inst.index
}

// Input returns the validated value of one of this form's inputs.
func (c *Context) Input(name string) cty.Value {
	if c.failed() {
		return cty.NilVal
	}
	if _, ok := c.inst.def.Input(name); !ok {
		c.fail(&InputError{Form: c.inst.def.Name, Input: name, Reason: "input is not declared on this form"})
		return cty.NilVal
	}
	v, ok := c.inst.inputs[name]
	if !ok {
		c.fail(&InputError{Form: c.inst.def.Name, Input: name, Reason: "no answer was loaded"})
		return cty.NilVal
	}
	return v
}

// InputStr returns a string, enum, or pattern input's value.
func (c *Context) InputStr(name string) string {
	v := c.Input(name)
	if c.failed() {
		return ""
	}
	return v.AsString()
}

// InputInt returns an integer input's value.
func (c *Context) InputInt(name string) int64 {
	v := c.Input(name)
	if c.failed() {
		return 0
	}
	n, _ := v.AsBigFloat().Int64()
	return n
}

// InputFloat returns a numeric input's value.
func (c *Context) InputFloat(name string) float64 {
	v := c.Input(name)
	if c.failed() {
		return 0
	}
	f, _ := v.AsBigFloat().Float64()
	return f
}

// InputBool returns a boolean input's value.
func (c *Context) InputBool(name string) bool {
	v := c.Input(name)
	if c.failed() {
		return false
	}
	return v.True()
}

// Resolve returns the value behind any value key, relative to this form
// instance. An unsupported dependency marks this field unsupported as
// well (propagated, so it is not re-reported); a fatal resolution error
// fails the strategy.
func (c *Context) Resolve(rawKey string) cty.Value {
	if c.failed() {
		return cty.NilVal
	}
	res, err := c.run.ResolveAt(c.goctx, c.inst, rawKey)
	if err != nil {
		c.fail(err)
		return cty.NilVal
	}
	if res.Unsupported {
		c.uns = &unsupportedMark{propagated: true}
		return cty.NilVal
	}
	return res.Value
}

// Present reports whether a key resolves to a concrete (non-absent,
// supported) value.
func (c *Context) Present(rawKey string) bool {
	v := c.Resolve(rawKey)
	if c.failed() {
		return false
	}
	return !v.IsNull()
}

// Float resolves a key as a number, treating the absent marker as zero.
func (c *Context) Float(rawKey string) float64 {
	v := c.Resolve(rawKey)
	if c.failed() || v.IsNull() {
		return 0
	}
	f, _ := v.AsBigFloat().Float64()
	return f
}

// Int resolves a key as a whole number, treating absent as zero.
func (c *Context) Int(rawKey string) int64 {
	v := c.Resolve(rawKey)
	if c.failed() || v.IsNull() {
		return 0
	}
	n, _ := v.AsBigFloat().Int64()
	return n
}

// Bool resolves a key as a boolean, treating absent as false.
func (c *Context) Bool(rawKey string) bool {
	v := c.Resolve(rawKey)
	if c.failed() || v.IsNull() {
		return false
	}
	return v.True()
}

// Str resolves a key as a string, treating absent as empty.
func (c *Context) Str(rawKey string) string {
	v := c.Resolve(rawKey)
	if c.failed() || v.IsNull() {
		return ""
	}
	return v.AsString()
}

// Instances returns how many instances of a repeatable form were loaded
// for this run.
func (c *Context) Instances(form string) int {
	if c.failed() {
		return 0
	}
	if _, ok := c.run.defs[form]; !ok {
		c.fail(&KeyError{Key: form, Reason: "unknown form"})
		return 0
	}
	return len(c.run.instances[form])
}

// SumFloat totals a numeric field across every loaded instance of a
// repeatable form. Absent values contribute nothing; zero loaded
// instances yield zero.
func (c *Context) SumFloat(form, field string) float64 {
	total := 0.0
	for n := 0; n < c.Instances(form); n++ {
		total += c.Float(fmt.Sprintf("%s:%d.%s", form, n, field))
	}
	if c.failed() {
		return 0
	}
	return total
}

// Threshold looks up one of this form's named constants, with an
// optional selector for bracketed specs.
func (c *Context) Threshold(name string, selector ...string) float64 {
	if c.failed() {
		return 0
	}
	t, ok := c.inst.def.Threshold(name)
	if !ok {
		c.fail(&ThresholdError{Threshold: name, Reason: fmt.Sprintf("form %q declares no such threshold", c.inst.def.Name)})
		return 0
	}
	sel := ""
	if len(selector) > 0 {
		sel = selector[0]
	}
	amount, err := t.Lookup(sel)
	if err != nil {
		c.fail(err)
		return 0
	}
	return amount
}

// Unsupported marks the field being computed as a real-world scenario
// the rule set does not yet cover. The run keeps evaluating everything
// else; the occurrence is collected for the completeness report. The
// returned value is a convenience so strategies can write
// `return ctx.Unsupported(...)`.
func (c *Context) Unsupported(detail string) cty.Value {
	if !c.failed() {
		c.uns = &unsupportedMark{detail: detail}
	}
	return cty.NilVal
}
