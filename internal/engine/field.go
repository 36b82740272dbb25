package engine

import "github.com/zclconf/go-cty/cty"

// Computer is the strategy behind one field: a pure function of the
// resolution context. The context is the only channel through which a
// strategy reaches inputs, thresholds, and other resolved values.
//
// A strategy signals failure or an unsupported scenario through the
// context rather than by unwinding; the resolver inspects the context
// after Compute returns.
type Computer interface {
	Compute(ctx *Context) cty.Value
}

// ComputeFunc adapts an ordinary function to the Computer interface.
type ComputeFunc func(*Context) cty.Value

// Compute implements Computer.
func (f ComputeFunc) Compute(ctx *Context) cty.Value {
	return f(ctx)
}

// Field is a named, lazily computed, memoized value on a form.
type Field struct {
	name string
	typ  cty.Type
	enum *Enum
	comp Computer
}

// NewField creates a field with an explicit cty type and compute strategy.
func NewField(name string, typ cty.Type, comp Computer) *Field {
	return &Field{name: name, typ: typ, comp: comp}
}

// StringField creates a string-typed field.
func StringField(name string, fn ComputeFunc) *Field {
	return &Field{name: name, typ: cty.String, comp: fn}
}

// IntegerField creates a whole-number field.
func IntegerField(name string, fn ComputeFunc) *Field {
	return &Field{name: name, typ: cty.Number, comp: fn}
}

// FloatField creates a numeric field.
func FloatField(name string, fn ComputeFunc) *Field {
	return &Field{name: name, typ: cty.Number, comp: fn}
}

// BooleanField creates a yes/no field.
func BooleanField(name string, fn ComputeFunc) *Field {
	return &Field{name: name, typ: cty.Bool, comp: fn}
}

// EnumField creates a field whose value is constrained to an enum. The
// enum is retrievable by consumers such as button-group predicates.
func EnumField(name string, enum *Enum, fn ComputeFunc) *Field {
	return &Field{name: name, typ: cty.String, enum: enum, comp: fn}
}

// Name returns the field's declared name.
func (f *Field) Name() string {
	return f.name
}

// Type returns the cty type resolved values of this field carry.
func (f *Field) Type() cty.Type {
	return f.typ
}

// Enum returns the field's associated enum, or nil for non-enum fields.
func (f *Field) Enum() *Enum {
	return f.enum
}
