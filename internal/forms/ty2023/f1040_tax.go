package ty2023

import "math"

// bracket is one marginal rate band; upTo is the band's upper bound of
// taxable income.
type bracket struct {
	upTo float64
	rate float64
}

// brackets2023 holds the 2023 marginal rate schedules per filing status,
// from the Form 1040 instructions' Tax Rate Schedules.
var brackets2023 = map[string][]bracket{
	"single": {
		{11000, 0.10}, {44725, 0.12}, {95375, 0.22}, {182100, 0.24},
		{231250, 0.32}, {578125, 0.35}, {math.Inf(1), 0.37},
	},
	"married_filing_jointly": {
		{22000, 0.10}, {89450, 0.12}, {190750, 0.22}, {364200, 0.24},
		{462500, 0.32}, {693750, 0.35}, {math.Inf(1), 0.37},
	},
	"qualifying_surviving_spouse": {
		{22000, 0.10}, {89450, 0.12}, {190750, 0.22}, {364200, 0.24},
		{462500, 0.32}, {693750, 0.35}, {math.Inf(1), 0.37},
	},
	"married_filing_separately": {
		{11000, 0.10}, {44725, 0.12}, {95375, 0.22}, {182100, 0.24},
		{231250, 0.32}, {346875, 0.35}, {math.Inf(1), 0.37},
	},
	"head_of_household": {
		{15700, 0.10}, {59850, 0.12}, {95350, 0.22}, {182100, 0.24},
		{231250, 0.32}, {578100, 0.35}, {math.Inf(1), 0.37},
	},
}

// figureTax computes tax on ordinary income by running taxable income
// through the marginal rate schedule for the filing status.
func figureTax(taxable float64, status string) float64 {
	tax := 0.0
	lower := 0.0
	for _, b := range brackets2023[status] {
		upper := math.Min(taxable, b.upTo)
		if upper > lower {
			tax += (upper - lower) * b.rate
		}
		if taxable <= b.upTo {
			break
		}
		lower = b.upTo
	}
	return tax
}
