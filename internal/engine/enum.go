package engine

// Enum is an immutable, named set of allowed string values, used both to
// constrain inputs (e.g. filing status) and to type enum-valued fields.
type Enum struct {
	name   string
	values []string
}

// NewEnum creates an Enum with the given name and allowed values.
func NewEnum(name string, values ...string) *Enum {
	return &Enum{name: name, values: values}
}

// Name returns the enum's declared name.
func (e *Enum) Name() string {
	return e.name
}

// Values returns the allowed values in declaration order.
func (e *Enum) Values() []string {
	return e.values
}

// Has reports whether value is a member of the enum.
func (e *Enum) Has(value string) bool {
	for _, v := range e.values {
		if v == value {
			return true
		}
	}
	return false
}
