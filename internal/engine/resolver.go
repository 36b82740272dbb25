package engine

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/panzer/habutax/internal/ctxlog"
	"github.com/panzer/habutax/internal/key"
)

// Resolve computes the value addressed by a fully qualified value key
// ("form.field" or "form:index.field"), pulling whatever other fields it
// transitively needs. Results are memoized for the life of the run, so a
// value referenced from several places is computed exactly once.
func (r *Run) Resolve(ctx context.Context, rawKey string) (Result, error) {
	k, err := key.Parse(rawKey)
	if err != nil {
		return Result{}, err
	}
	if !k.Qualified() {
		return Result{}, &KeyError{Key: rawKey, Reason: "top-level keys must name a form"}
	}
	return r.resolveKey(ctx, nil, k)
}

// ResolveAt computes the value addressed by a key relative to the given
// form instance, the way a compute strategy or PDF mapping sees it.
func (r *Run) ResolveAt(ctx context.Context, inst *Instance, rawKey string) (Result, error) {
	k, err := key.Parse(rawKey)
	if err != nil {
		return Result{}, err
	}
	return r.resolveKey(ctx, inst, k)
}

// FieldFor returns the field definition a key resolves to, relative to
// the given instance, without computing its value.
func (r *Run) FieldFor(inst *Instance, rawKey string) (*Field, error) {
	k, err := key.Parse(rawKey)
	if err != nil {
		return nil, err
	}
	k = qualify(k, inst)
	def, ok := r.defs[k.Form]
	if !ok {
		return nil, &KeyError{Key: k.String(), Reason: "unknown form"}
	}
	f, ok := def.Field(k.Field)
	if !ok {
		return nil, &KeyError{Key: k.String(), Reason: fmt.Sprintf("form %q has no field %q", k.Form, k.Field)}
	}
	return f, nil
}

// qualify fills in a relative key with the identity of the requesting
// instance.
func qualify(k key.Key, from *Instance) key.Key {
	if k.Qualified() || from == nil {
		return k
	}
	k.Form = from.def.Name
	k.Index = from.index
	return k
}

// resolveKey is the resolver core: address resolution, memoization, cycle
// detection, and unsupported-scenario collection for one key.
func (r *Run) resolveKey(ctx context.Context, from *Instance, k key.Key) (Result, error) {
	if !k.Qualified() && from == nil {
		return Result{}, &KeyError{Key: k.String(), Reason: "relative key used outside a form"}
	}
	k = qualify(k, from)

	def, ok := r.defs[k.Form]
	if !ok {
		return Result{}, &KeyError{Key: k.String(), Reason: "unknown form"}
	}
	if def.Repeatable && !k.Indexed() {
		return Result{}, &KeyError{Key: k.String(), Reason: fmt.Sprintf("repeatable form %q must be addressed with an instance index", k.Form)}
	}
	if !def.Repeatable && k.Indexed() {
		return Result{}, &KeyError{Key: k.String(), Reason: fmt.Sprintf("singleton form %q does not take an instance index", k.Form)}
	}

	f, ok := def.Field(k.Field)
	if !ok {
		return Result{}, &KeyError{Key: k.String(), Reason: fmt.Sprintf("form %q has no field %q", k.Form, k.Field)}
	}

	// An out-of-range instance of a known repeatable form is not an
	// error: it resolves to the explicit "not present" marker so that
	// sums over a variable-count form behave correctly.
	if def.Repeatable && k.Index >= len(r.instances[k.Form]) {
		return Result{Value: cty.NullVal(f.Type())}, nil
	}

	inst, ok := r.Instance(k.Form, k.Index)
	if !ok {
		return Result{}, &KeyError{Key: k.String(), Reason: fmt.Sprintf("no instance of form %q was loaded", k.Form)}
	}

	ck := cacheKey{form: k.Form, index: k.Index, field: k.Field}
	if res, ok := r.cache[ck]; ok {
		return res, nil
	}
	if r.inProgress[ck] {
		chain := make([]string, 0, len(r.stack)+1)
		for _, s := range r.stack {
			chain = append(chain, s.String())
		}
		chain = append(chain, ck.String())
		return Result{}, &CycleError{Chain: chain}
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving field.", "key", ck.String())

	r.inProgress[ck] = true
	r.stack = append(r.stack, ck)
	c := &Context{run: r, inst: inst, goctx: ctx}
	v := f.comp.Compute(c)
	r.stack = r.stack[:len(r.stack)-1]
	delete(r.inProgress, ck)

	if c.err != nil {
		return Result{}, fmt.Errorf("computing %s: %w", ck.String(), c.err)
	}
	if c.uns != nil {
		if !c.uns.propagated {
			r.failures = append(r.failures, Occurrence{Key: ck.String(), Detail: c.uns.detail})
			logger.Debug("Unsupported scenario recorded.", "key", ck.String(), "detail", c.uns.detail)
		}
		res := Result{Value: cty.NullVal(f.Type()), Unsupported: true}
		r.cache[ck] = res
		return res, nil
	}

	typed, err := convertFieldValue(v, f)
	if err != nil {
		return Result{}, fmt.Errorf("computing %s: %w", ck.String(), err)
	}
	res := Result{Value: typed}
	r.cache[ck] = res
	logger.Debug("Field resolved.", "key", ck.String(), "absent", res.Absent())
	return res, nil
}

// convertFieldValue normalizes a strategy's return value to the field's
// declared type. cty.NilVal and typed nulls both become the field-typed
// absent marker.
func convertFieldValue(v cty.Value, f *Field) (cty.Value, error) {
	if v == cty.NilVal || v.IsNull() {
		return cty.NullVal(f.Type()), nil
	}
	typed, err := convert.Convert(v, f.Type())
	if err != nil {
		return cty.NilVal, fmt.Errorf("field %q produced a value of the wrong type: %w", f.Name(), err)
	}
	if f.enum != nil && !f.enum.Has(typed.AsString()) {
		return cty.NilVal, fmt.Errorf("field %q produced %q, not a member of enum %s", f.Name(), typed.AsString(), f.enum.Name())
	}
	return typed, nil
}
