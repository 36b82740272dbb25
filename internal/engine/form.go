package engine

import "fmt"

// Jurisdiction identifies the taxing authority a form belongs to.
type Jurisdiction string

const (
	JurisdictionUS Jurisdiction = "US"
)

// Definition is the static description of one official tax form: its
// identity, the inputs it consumes, its threshold table, and its required
// and optional fields. Definitions are immutable after Index and shared
// read-only across runs; all per-filing state lives on Instance and Run.
type Definition struct {
	// Name is the form's declared name, as used in value keys.
	Name string
	// Description is the official title of the form.
	Description string
	// TaxYear is the year this definition applies to.
	TaxYear int
	// Jurisdiction is the taxing authority.
	Jurisdiction Jurisdiction
	// Sequence orders forms for presentation only; it plays no part in
	// dependency resolution.
	Sequence int
	// Repeatable marks forms with one instance per source document
	// (e.g. one per 1099-INT received). Repeatable forms are addressed
	// with an explicit instance index.
	Repeatable bool

	// Inputs declares the user-supplied answers the form consumes.
	Inputs []*Input
	// Thresholds declares the form's named constants.
	Thresholds []*Threshold
	// Required fields must all resolve (possibly to the absent marker)
	// when the form is in scope; Optional fields are resolved only when
	// referenced.
	Required []*Field
	Optional []*Field

	inputs     map[string]*Input
	thresholds map[string]*Threshold
	fields     map[string]*Field
}

// Index builds the definition's lookup tables and rejects duplicate
// names. A value key must resolve to at most one field definition, so a
// duplicate is a configuration error, not a runtime choice. Index must be
// called once before the definition is used in a run.
func (d *Definition) Index() error {
	if d.fields != nil {
		return nil
	}

	inputs := make(map[string]*Input, len(d.Inputs))
	for _, in := range d.Inputs {
		if _, ok := inputs[in.Name()]; ok {
			return fmt.Errorf("form %q: duplicate input %q", d.Name, in.Name())
		}
		inputs[in.Name()] = in
	}

	thresholds := make(map[string]*Threshold, len(d.Thresholds))
	for _, t := range d.Thresholds {
		if _, ok := thresholds[t.Name()]; ok {
			return fmt.Errorf("form %q: duplicate threshold %q", d.Name, t.Name())
		}
		thresholds[t.Name()] = t
	}

	fields := make(map[string]*Field, len(d.Required)+len(d.Optional))
	for _, f := range append(append([]*Field{}, d.Required...), d.Optional...) {
		if _, ok := fields[f.Name()]; ok {
			return fmt.Errorf("form %q: duplicate field %q", d.Name, f.Name())
		}
		fields[f.Name()] = f
	}

	d.inputs = inputs
	d.thresholds = thresholds
	d.fields = fields
	return nil
}

// Input looks up an input declaration by name.
func (d *Definition) Input(name string) (*Input, bool) {
	in, ok := d.inputs[name]
	return in, ok
}

// Threshold looks up a threshold spec by name.
func (d *Definition) Threshold(name string) (*Threshold, bool) {
	t, ok := d.thresholds[name]
	return t, ok
}

// Field looks up a field (required or optional) by name.
func (d *Definition) Field(name string) (*Field, bool) {
	f, ok := d.fields[name]
	return f, ok
}
