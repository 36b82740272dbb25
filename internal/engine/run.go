package engine

import (
	"fmt"
	"strconv"

	"github.com/zclconf/go-cty/cty"
)

// Instance is one loaded occurrence of a form definition within a run,
// carrying its validated input values. Singleton forms have index -1;
// repeatable forms are indexed densely from zero.
type Instance struct {
	def    *Definition
	index  int
	inputs map[string]cty.Value
}

// NewInstance creates an instance of def with already-validated input
// values. Use index -1 for singleton forms.
func NewInstance(def *Definition, index int, inputs map[string]cty.Value) *Instance {
	if inputs == nil {
		inputs = map[string]cty.Value{}
	}
	return &Instance{def: def, index: index, inputs: inputs}
}

// Definition returns the form definition backing this instance.
func (inst *Instance) Definition() *Definition {
	return inst.def
}

// Index returns the instance index, or -1 for singleton forms.
func (inst *Instance) Index() int {
	return inst.index
}

// Name returns the instance's address prefix: the form name, plus the
// instance index for repeatable forms (e.g. "1099-int:1").
func (inst *Instance) Name() string {
	if inst.index < 0 {
		return inst.def.Name
	}
	return inst.def.Name + ":" + strconv.Itoa(inst.index)
}

// Occurrence records one field that resolved to the unsupported marker,
// with the optional detail text supplied by the compute strategy.
type Occurrence struct {
	Key    string
	Detail string
}

// Result is the outcome of resolving one value key. Exactly one of three
// shapes: a concrete value, a typed null (the field is legitimately blank
// for this taxpayer, or the addressed instance is not present), or the
// unsupported marker.
type Result struct {
	Value       cty.Value
	Unsupported bool
}

// Absent reports whether the result is the explicit blank / not-present
// marker (distinct from both zero and unsupported).
func (r Result) Absent() bool {
	return !r.Unsupported && r.Value.IsNull()
}

// cacheKey identifies one (form instance, field) pair in the run's cache
// and in-progress stack.
type cacheKey struct {
	form  string
	index int
	field string
}

// String renders the cache key in value key grammar for error messages
// and occurrence reports.
func (ck cacheKey) String() string {
	if ck.index < 0 {
		return ck.form + "." + ck.field
	}
	return ck.form + ":" + strconv.Itoa(ck.index) + "." + ck.field
}

// Run is one complete, isolated evaluation of a filing: the loaded form
// instances, the memoization cache, the in-progress stack used for cycle
// detection, and the collected unsupported scenarios. A Run must not be
// shared across goroutines; concurrent filings each own their own Run.
type Run struct {
	defs       map[string]*Definition
	instances  map[string][]*Instance
	cache      map[cacheKey]Result
	inProgress map[cacheKey]bool
	stack      []cacheKey
	failures   []Occurrence
}

// NewRun creates an empty run.
func NewRun() *Run {
	return &Run{
		defs:       make(map[string]*Definition),
		instances:  make(map[string][]*Instance),
		cache:      make(map[cacheKey]Result),
		inProgress: make(map[cacheKey]bool),
	}
}

// RegisterDefinition makes a form definition addressable in this run.
// Registering a repeatable definition with zero loaded instances is
// meaningful: its instances then resolve to "not present" instead of
// failing as unknown forms.
func (r *Run) RegisterDefinition(def *Definition) error {
	if err := def.Index(); err != nil {
		return err
	}
	if existing, ok := r.defs[def.Name]; ok && existing != def {
		return fmt.Errorf("form %q registered twice with different definitions", def.Name)
	}
	r.defs[def.Name] = def
	return nil
}

// AddInstance loads a form instance into the run. The instance's
// definition is registered implicitly. Singleton forms allow exactly one
// instance; repeatable forms must be added densely in index order.
func (r *Run) AddInstance(inst *Instance) error {
	def := inst.def
	if err := r.RegisterDefinition(def); err != nil {
		return err
	}

	loaded := r.instances[def.Name]
	switch {
	case !def.Repeatable && inst.index != -1:
		return fmt.Errorf("form %q is a singleton but instance has index %d", def.Name, inst.index)
	case !def.Repeatable && len(loaded) > 0:
		return fmt.Errorf("form %q is a singleton but a second instance was loaded", def.Name)
	case def.Repeatable && inst.index != len(loaded):
		return fmt.Errorf("form %q instances must be loaded densely: got index %d, want %d", def.Name, inst.index, len(loaded))
	}

	r.instances[def.Name] = append(loaded, inst)
	return nil
}

// Instance returns the loaded instance of a form, if present. Use index
// -1 for singleton forms.
func (r *Run) Instance(form string, index int) (*Instance, bool) {
	insts := r.instances[form]
	if index < 0 {
		if len(insts) == 0 {
			return nil, false
		}
		return insts[0], true
	}
	if index >= len(insts) {
		return nil, false
	}
	return insts[index], true
}

// Instances returns all loaded instances of a form in index order.
func (r *Run) Instances(form string) []*Instance {
	return r.instances[form]
}

// UnsupportedScenarios returns every field that resolved to the
// unsupported marker, in resolution order.
func (r *Run) UnsupportedScenarios() []Occurrence {
	return r.failures
}

// Complete reports whether the run resolved without hitting any
// unsupported scenario. Only a complete run's values are safe to render.
func (r *Run) Complete() bool {
	return len(r.failures) == 0
}
