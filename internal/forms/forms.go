// Package forms holds the static catalog of form definitions for a tax
// year. A catalog is loaded once and shared read-only across runs;
// nothing in it is mutated by evaluation.
package forms

import (
	"fmt"
	"sort"

	"github.com/panzer/habutax/internal/engine"
	"github.com/panzer/habutax/internal/pdf"
)

// Form pairs a form definition with its external PDF field mapping.
type Form struct {
	Def *engine.Definition
	PDF []pdf.Entry
}

// Catalog is the set of forms available for one tax year.
type Catalog struct {
	year  int
	forms map[string]*Form
}

// NewCatalog creates an empty catalog for a tax year.
func NewCatalog(year int) *Catalog {
	return &Catalog{year: year, forms: make(map[string]*Form)}
}

// Year returns the catalog's tax year.
func (c *Catalog) Year() int {
	return c.year
}

// Add indexes a form definition and registers it in the catalog.
func (c *Catalog) Add(f *Form) error {
	if f.Def.TaxYear != c.year {
		return fmt.Errorf("form %q is for tax year %d, catalog is for %d", f.Def.Name, f.Def.TaxYear, c.year)
	}
	if err := f.Def.Index(); err != nil {
		return err
	}
	if _, ok := c.forms[f.Def.Name]; ok {
		return fmt.Errorf("form %q registered twice for tax year %d", f.Def.Name, c.year)
	}
	c.forms[f.Def.Name] = f
	return nil
}

// Form looks up a form by name.
func (c *Catalog) Form(name string) (*Form, bool) {
	f, ok := c.forms[name]
	return f, ok
}

// Definitions returns every definition in the catalog, ordered by the
// forms' presentation sequence numbers.
func (c *Catalog) Definitions() []*engine.Definition {
	defs := make([]*engine.Definition, 0, len(c.forms))
	for _, f := range c.forms {
		defs = append(defs, f.Def)
	}
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Sequence != defs[j].Sequence {
			return defs[i].Sequence < defs[j].Sequence
		}
		return defs[i].Name < defs[j].Name
	})
	return defs
}
