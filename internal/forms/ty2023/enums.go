package ty2023

import "github.com/panzer/habutax/internal/engine"

// FilingStatus is the filing status checked at the top of form 1040 and
// used as the selector for every status-bracketed threshold.
var FilingStatus = engine.NewEnum("filing_status",
	"single",
	"married_filing_jointly",
	"married_filing_separately",
	"head_of_household",
	"qualifying_surviving_spouse",
)

// TaxpayerOrSpouse identifies which filer a source document belongs to.
var TaxpayerOrSpouse = engine.NewEnum("taxpayer_or_spouse",
	"taxpayer",
	"spouse",
)
