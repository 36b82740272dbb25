package engine

import (
	"fmt"
	"regexp"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// InputKind is the semantic kind of a declared input.
type InputKind int

const (
	KindString InputKind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindEnum
	KindPattern
)

// ssnPattern matches a US social security number, with or without dashes.
var ssnPattern = regexp.MustCompile(`^\d{3}-?\d{2}-?\d{4}$`)

// Input declares one user-supplied answer a form consumes: a name unique
// within its form, a semantic kind, and a human-readable description.
// Declarations are immutable; validated values live on the run's instances.
type Input struct {
	name        string
	description string
	kind        InputKind
	enum        *Enum
	pattern     *regexp.Regexp
}

// StringInput declares a free-text input.
func StringInput(name, description string) *Input {
	return &Input{name: name, description: description, kind: KindString}
}

// IntegerInput declares a whole-number input.
func IntegerInput(name, description string) *Input {
	return &Input{name: name, description: description, kind: KindInteger}
}

// FloatInput declares a numeric input.
func FloatInput(name, description string) *Input {
	return &Input{name: name, description: description, kind: KindFloat}
}

// BooleanInput declares a yes/no input.
func BooleanInput(name, description string) *Input {
	return &Input{name: name, description: description, kind: KindBoolean}
}

// EnumInput declares an input constrained to the members of an enum.
func EnumInput(name string, enum *Enum, description string) *Input {
	return &Input{name: name, description: description, kind: KindEnum, enum: enum}
}

// PatternInput declares a string input constrained by a regular expression.
// The pattern is author-supplied and must compile; a bad pattern is a
// programmer error.
func PatternInput(name, pattern, description string) *Input {
	return &Input{name: name, description: description, kind: KindPattern, pattern: regexp.MustCompile(pattern)}
}

// SSNInput declares a social-security-number input.
func SSNInput(name, description string) *Input {
	return &Input{name: name, description: description, kind: KindPattern, pattern: ssnPattern}
}

// Name returns the input's declared name.
func (in *Input) Name() string {
	return in.name
}

// Description returns the human-readable prompt for the input.
func (in *Input) Description() string {
	return in.description
}

// Kind returns the input's semantic kind.
func (in *Input) Kind() InputKind {
	return in.kind
}

// Enum returns the constraining enum for KindEnum inputs, or nil.
func (in *Input) Enum() *Enum {
	return in.enum
}

// Type returns the cty type validated values of this input carry.
func (in *Input) Type() cty.Type {
	switch in.kind {
	case KindInteger, KindFloat:
		return cty.Number
	case KindBoolean:
		return cty.Bool
	default:
		return cty.String
	}
}

// Validate converts a raw answer to the input's declared type and checks
// its kind-specific constraints. It returns the typed value or an error
// describing exactly which constraint failed.
func (in *Input) Validate(raw cty.Value) (cty.Value, error) {
	if raw.IsNull() {
		return cty.NilVal, fmt.Errorf("answer must not be null")
	}

	v, err := convert.Convert(raw, in.Type())
	if err != nil {
		return cty.NilVal, fmt.Errorf("cannot read answer as %s: %w", kindName(in.kind), err)
	}

	switch in.kind {
	case KindInteger:
		if bf := v.AsBigFloat(); !bf.IsInt() {
			return cty.NilVal, fmt.Errorf("answer %s is not a whole number", bf.Text('g', -1))
		}
	case KindEnum:
		if !in.enum.Has(v.AsString()) {
			return cty.NilVal, fmt.Errorf("answer %q is not a member of enum %s %v", v.AsString(), in.enum.Name(), in.enum.Values())
		}
	case KindPattern:
		if !in.pattern.MatchString(v.AsString()) {
			return cty.NilVal, fmt.Errorf("answer %q does not match pattern %s", v.AsString(), in.pattern.String())
		}
	}

	return v, nil
}

// kindName returns the human-readable name of an input kind for error text.
func kindName(k InputKind) string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindEnum:
		return "enum value"
	case KindPattern:
		return "pattern-constrained string"
	default:
		return "unknown"
	}
}
