package pdf

import (
	"context"
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/panzer/habutax/internal/engine"
)

// Entry binds one external PDF field identifier to an internal value key.
type Entry interface {
	apply(ctx context.Context, run *engine.Run, inst *engine.Instance, out map[string]string) error
}

// Text renders a value key into a text-style PDF field. A MaxLength of
// zero means unlimited; a rendered value exceeding a positive MaxLength
// is a reportable error, never a silent truncation, since truncating a
// tax figure or an SSN is unsafe.
type Text struct {
	Name      string
	Key       string
	MaxLength int
}

// Predicate decides whether a particular button should be marked, given
// the resolved value and the field's associated enum (nil for non-enum
// fields).
type Predicate func(v cty.Value, enum *engine.Enum) bool

// Button marks a checkbox or radio-style PDF field with its On token
// when the bound value warrants it. Several buttons may bind the same
// key with different predicates, forming a mutually exclusive radio
// group over one enum-valued field. When is optional; without it a
// boolean value marks the button when true and a string value when it
// equals the On token.
type Button struct {
	Name string
	Key  string
	On   string
	When Predicate
}

// OverflowError reports a text value that does not fit its PDF field.
type OverflowError struct {
	Name      string
	Key       string
	Rendered  string
	MaxLength int
}

// Error implements the error interface for OverflowError.
func (e *OverflowError) Error() string {
	return fmt.Sprintf("pdf field %q: value %q for key %q exceeds max length %d", e.Name, e.Rendered, e.Key, e.MaxLength)
}

// Map resolves every entry relative to the given form instance and
// returns the flat external-identifier-to-value mapping. Absent and
// unsupported values are simply left out of the mapping. All overflow
// errors are collected and reported together; any fatal resolution error
// aborts immediately.
func Map(ctx context.Context, run *engine.Run, inst *engine.Instance, entries []Entry) (map[string]string, error) {
	out := make(map[string]string, len(entries))
	var overflows []error
	for _, e := range entries {
		if err := e.apply(ctx, run, inst, out); err != nil {
			var overflow *OverflowError
			if errors.As(err, &overflow) {
				overflows = append(overflows, err)
				continue
			}
			return nil, err
		}
	}
	return out, errors.Join(overflows...)
}

func (t Text) apply(ctx context.Context, run *engine.Run, inst *engine.Instance, out map[string]string) error {
	res, err := run.ResolveAt(ctx, inst, t.Key)
	if err != nil {
		return err
	}
	if res.Unsupported || res.Value.IsNull() {
		return nil
	}
	rendered := Render(res.Value)
	if t.MaxLength > 0 && len(rendered) > t.MaxLength {
		return &OverflowError{Name: t.Name, Key: t.Key, Rendered: rendered, MaxLength: t.MaxLength}
	}
	out[t.Name] = rendered
	return nil
}

func (b Button) apply(ctx context.Context, run *engine.Run, inst *engine.Instance, out map[string]string) error {
	res, err := run.ResolveAt(ctx, inst, b.Key)
	if err != nil {
		return err
	}
	if res.Unsupported || res.Value.IsNull() {
		return nil
	}

	var on bool
	if b.When != nil {
		field, err := run.FieldFor(inst, b.Key)
		if err != nil {
			return err
		}
		on = b.When(res.Value, field.Enum())
	} else {
		on = defaultOn(res.Value, b.On)
	}

	if on {
		out[b.Name] = b.On
	}
	return nil
}

// defaultOn is the predicate used when a button declares none.
func defaultOn(v cty.Value, onToken string) bool {
	switch v.Type() {
	case cty.Bool:
		return v.True()
	case cty.String:
		return v.AsString() == onToken
	default:
		return true
	}
}

// Render converts a resolved value to the text written into a PDF field.
// Whole numbers render without a fraction; other numbers render as
// dollars and cents.
func Render(v cty.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Type() {
	case cty.String:
		return v.AsString()
	case cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			return bf.Text('f', 0)
		}
		f, _ := bf.Float64()
		return fmt.Sprintf("%.2f", f)
	default:
		return v.GoString()
	}
}
