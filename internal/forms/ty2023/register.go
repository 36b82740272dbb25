package ty2023

import "github.com/panzer/habutax/internal/forms"

// Register adds every tax year 2023 form to the catalog.
func Register(c *forms.Catalog) error {
	for _, f := range []*forms.Form{
		form1040(),
		w2(),
		f1099INT(),
		f1099DIV(),
	} {
		if err := c.Add(f); err != nil {
			return err
		}
	}
	return nil
}

// NewCatalog returns a fully registered 2023 catalog.
func NewCatalog() (*forms.Catalog, error) {
	c := forms.NewCatalog(2023)
	if err := Register(c); err != nil {
		return nil, err
	}
	return c, nil
}
