package ty2023

import (
	"math"

	"github.com/zclconf/go-cty/cty"

	"github.com/panzer/habutax/internal/engine"
	"github.com/panzer/habutax/internal/forms"
	"github.com/panzer/habutax/internal/pdf"
)

func form1040() *forms.Form {
	def := &engine.Definition{
		Name:         "1040",
		Description:  "U.S. Individual Income Tax Return",
		TaxYear:      2023,
		Jurisdiction: engine.JurisdictionUS,
		Sequence:     0,
		Repeatable:   false,

		Thresholds: []*engine.Threshold{
			// Form 1040, line 2b instructions
			engine.ScalarThreshold("sched_b_required_interest", 1500.00),
			// Form 1040, line 3b instructions
			engine.ScalarThreshold("sched_b_required_dividends", 1500.00),
			// Form 1040, Standard Deduction sidebar
			engine.BracketedThreshold("standard_deduction",
				engine.NewBucket(13850.00, "single", "married_filing_separately"),
				engine.NewBucket(27700.00, "married_filing_jointly", "qualifying_surviving_spouse"),
				engine.NewBucket(20800.00, "head_of_household"),
			),
			// Additional Medicare Tax thresholds from the Form 8959
			// instructions (not inflation-indexed)
			engine.BracketedThreshold("additional_medicare_tax_applies",
				engine.NewBucket(250000.00, "married_filing_jointly"),
				engine.NewBucket(125000.00, "married_filing_separately"),
				engine.NewBucket(200000.00, "single", "head_of_household", "qualifying_surviving_spouse"),
			),
		},

		Inputs: []*engine.Input{
			engine.StringInput("first_name", "Your first name"),
			engine.StringInput("last_name", "Your last name"),
			engine.SSNInput("you_ssn", "Enter your Social Security number"),
			engine.StringInput("occupation", "Your occupation"),
			engine.EnumInput("filing_status", FilingStatus, "Filing status"),
			engine.BooleanInput("digital_assets", "At any time during 2023, did you receive, sell, exchange, or otherwise dispose of a digital asset (or a financial interest in a digital asset)?"),
			engine.BooleanInput("claimed_as_dependent", "Can anyone claim you (or your spouse if filing joint) as a dependent?"),
			engine.BooleanInput("itemize", "Would you like to itemize deductions on Schedule A instead of taking the standard deduction?"),
			engine.BooleanInput("schedule_1_required", "Do you have additional income (business, rental, unemployment, ...) or adjustments to income that would be reported on Schedule 1?"),
			engine.BooleanInput("schedule_d_required", "Did you sell or otherwise dispose of any capital assets in 2023, requiring Schedule D?"),
			engine.FloatInput("estimated_tax_payments", "Enter the total of your 2023 estimated tax payments and any amount applied from your 2022 return"),
		},

		Required: []*engine.Field{
			engine.StringField("full_names", func(ctx *engine.Context) cty.Value {
				return engine.Text(ctx.InputStr("first_name") + " " + ctx.InputStr("last_name"))
			}),
			engine.StringField("first_name", func(ctx *engine.Context) cty.Value {
				return ctx.Input("first_name")
			}),
			engine.StringField("last_name", func(ctx *engine.Context) cty.Value {
				return ctx.Input("last_name")
			}),
			engine.StringField("you_ssn", func(ctx *engine.Context) cty.Value {
				return ctx.Input("you_ssn")
			}),
			engine.StringField("occupation", func(ctx *engine.Context) cty.Value {
				return ctx.Input("occupation")
			}),
			engine.EnumField("filing_status", FilingStatus, func(ctx *engine.Context) cty.Value {
				return ctx.Input("filing_status")
			}),
			engine.BooleanField("digital_assets", func(ctx *engine.Context) cty.Value {
				if ctx.InputBool("digital_assets") {
					return ctx.Unsupported("Digital asset transactions are not implemented.")
				}
				return engine.Truth(false)
			}),
			engine.FloatField("1a", func(ctx *engine.Context) cty.Value {
				if ctx.Instances("w-2") == 0 {
					return engine.None
				}
				return engine.Num(ctx.SumFloat("w-2", "box_1"))
			}),
			engine.FloatField("1z", func(ctx *engine.Context) cty.Value {
				return engine.Num(ctx.Float("1a"))
			}),
			engine.FloatField("2a", func(ctx *engine.Context) cty.Value {
				exempt := ctx.SumFloat("1099-int", "box_8")
				if exempt < 0.001 {
					return engine.None
				}
				return engine.Num(exempt)
			}),
			engine.FloatField("2b", line2b),
			engine.FloatField("3a", func(ctx *engine.Context) cty.Value {
				qualified := ctx.SumFloat("1099-div", "box_1b")
				if qualified < 0.001 {
					return engine.None
				}
				return engine.Num(qualified)
			}),
			engine.FloatField("3b", line3b),
			engine.FloatField("7", func(ctx *engine.Context) cty.Value {
				if ctx.InputBool("schedule_d_required") {
					return ctx.Unsupported("Capital gains and losses (Schedule D) are not implemented.")
				}
				return engine.None
			}),
			engine.FloatField("8", func(ctx *engine.Context) cty.Value {
				if ctx.InputBool("schedule_1_required") {
					return ctx.Unsupported("Additional income and adjustments to income (Schedule 1) are not implemented.")
				}
				return engine.None
			}),
			engine.FloatField("9", func(ctx *engine.Context) cty.Value {
				return engine.Num(ctx.Float("1z") + ctx.Float("2b") + ctx.Float("3b") + ctx.Float("7") + ctx.Float("8"))
			}),
			engine.FloatField("10", func(ctx *engine.Context) cty.Value {
				if ctx.InputBool("schedule_1_required") {
					return ctx.Unsupported("Additional income and adjustments to income (Schedule 1) are not implemented.")
				}
				return engine.None
			}),
			// Adjusted gross income
			engine.FloatField("11", func(ctx *engine.Context) cty.Value {
				return engine.Num(ctx.Float("9") - ctx.Float("10"))
			}),
			engine.FloatField("12", line12),
			engine.FloatField("14", func(ctx *engine.Context) cty.Value {
				return engine.Num(ctx.Float("12"))
			}),
			// Taxable income
			engine.FloatField("15", func(ctx *engine.Context) cty.Value {
				return engine.Num(math.Max(0.0, ctx.Float("11")-ctx.Float("14")))
			}),
			engine.FloatField("16", line16),
			engine.FloatField("22", func(ctx *engine.Context) cty.Value {
				return engine.Num(ctx.Float("16"))
			}),
			engine.FloatField("23", line23),
			engine.FloatField("24", func(ctx *engine.Context) cty.Value {
				return engine.Num(ctx.Float("22") + ctx.Float("23"))
			}),
			engine.FloatField("25a", func(ctx *engine.Context) cty.Value {
				if ctx.Instances("w-2") == 0 {
					return engine.None
				}
				return engine.Num(ctx.SumFloat("w-2", "box_2"))
			}),
			engine.FloatField("25b", func(ctx *engine.Context) cty.Value {
				withholding := ctx.SumFloat("1099-int", "box_4") + ctx.SumFloat("1099-div", "box_4")
				if withholding < 0.001 {
					return engine.None
				}
				return engine.Num(withholding)
			}),
			engine.FloatField("25d", func(ctx *engine.Context) cty.Value {
				return engine.Num(ctx.Float("25a") + ctx.Float("25b"))
			}),
			engine.FloatField("26", func(ctx *engine.Context) cty.Value {
				return ctx.Input("estimated_tax_payments")
			}),
			// Total payments
			engine.FloatField("33", func(ctx *engine.Context) cty.Value {
				return engine.Num(ctx.Float("25d") + ctx.Float("26"))
			}),
			// Overpayment (refund)
			engine.FloatField("34", func(ctx *engine.Context) cty.Value {
				if ctx.Float("33") > ctx.Float("24") {
					return engine.Num(ctx.Float("33") - ctx.Float("24"))
				}
				return engine.None
			}),
			// Amount you owe
			engine.FloatField("37", func(ctx *engine.Context) cty.Value {
				if ctx.Float("33") > ctx.Float("24") {
					return engine.None
				}
				return engine.Num(ctx.Float("24") - ctx.Float("33"))
			}),
		},
	}

	return &forms.Form{Def: def, PDF: pdf1040()}
}

// Taxable interest. Schedule B is required over the reporting threshold.
func line2b(ctx *engine.Context) cty.Value {
	total := ctx.SumFloat("1099-int", "box_1") + ctx.SumFloat("1099-int", "box_3")
	if total > ctx.Threshold("sched_b_required_interest") {
		return ctx.Unsupported("Interest over the reporting threshold requires Schedule B, which is not implemented.")
	}
	if ctx.Instances("1099-int") == 0 {
		return engine.None
	}
	return engine.Num(total)
}

// Ordinary dividends, with the same Schedule B threshold rule.
func line3b(ctx *engine.Context) cty.Value {
	total := ctx.SumFloat("1099-div", "box_1a")
	if total > ctx.Threshold("sched_b_required_dividends") {
		return ctx.Unsupported("Dividends over the reporting threshold require Schedule B, which is not implemented.")
	}
	if ctx.Instances("1099-div") == 0 {
		return engine.None
	}
	return engine.Num(total)
}

// Standard deduction or itemized deductions.
func line12(ctx *engine.Context) cty.Value {
	if ctx.InputBool("itemize") {
		return ctx.Unsupported("Itemized deductions (Schedule A) are not implemented.")
	}
	if ctx.InputBool("claimed_as_dependent") {
		return ctx.Unsupported("The standard deduction worksheet for dependents is not implemented.")
	}
	return engine.Num(ctx.Threshold("standard_deduction", ctx.InputStr("filing_status")))
}

// Tax on taxable income.
func line16(ctx *engine.Context) cty.Value {
	if ctx.Float("3a") > 0.001 {
		return ctx.Unsupported("The Qualified Dividends and Capital Gain Tax Worksheet is not implemented.")
	}
	return engine.Num(figureTax(ctx.Float("15"), ctx.InputStr("filing_status")))
}

// Other taxes. Wages over the Additional Medicare Tax threshold require
// Form 8959.
func line23(ctx *engine.Context) cty.Value {
	limit := ctx.Threshold("additional_medicare_tax_applies", ctx.InputStr("filing_status"))
	if ctx.Float("1a") > limit {
		return ctx.Unsupported("Additional Medicare Tax (Form 8959) is not implemented.")
	}
	return engine.None
}

func pdf1040() []pdf.Entry {
	return []pdf.Entry{
		pdf.Text{Name: "topmostSubform[0].Page1[0].f1_04[0]", Key: "first_name"},
		pdf.Text{Name: "topmostSubform[0].Page1[0].f1_05[0]", Key: "last_name"},
		pdf.Text{Name: "topmostSubform[0].Page1[0].f1_06[0]", Key: "you_ssn", MaxLength: 11},
		pdf.Button{Name: "topmostSubform[0].Page1[0].c1_3[0]", Key: "filing_status", On: "1",
			When: func(v cty.Value, _ *engine.Enum) bool { return v.AsString() == "single" }},
		pdf.Button{Name: "topmostSubform[0].Page1[0].c1_3[1]", Key: "filing_status", On: "2",
			When: func(v cty.Value, _ *engine.Enum) bool { return v.AsString() == "head_of_household" }},
		pdf.Button{Name: "topmostSubform[0].Page1[0].c1_3[2]", Key: "filing_status", On: "3",
			When: func(v cty.Value, _ *engine.Enum) bool { return v.AsString() == "married_filing_jointly" }},
		pdf.Button{Name: "topmostSubform[0].Page1[0].c1_3[3]", Key: "filing_status", On: "4",
			When: func(v cty.Value, _ *engine.Enum) bool { return v.AsString() == "married_filing_separately" }},
		pdf.Button{Name: "topmostSubform[0].Page1[0].c1_3[4]", Key: "filing_status", On: "5",
			When: func(v cty.Value, _ *engine.Enum) bool { return v.AsString() == "qualifying_surviving_spouse" }},
		pdf.Button{Name: "topmostSubform[0].Page1[0].c1_4[0]", Key: "digital_assets", On: "1"},
		pdf.Button{Name: "topmostSubform[0].Page1[0].c1_4[1]", Key: "digital_assets", On: "2",
			When: func(v cty.Value, _ *engine.Enum) bool { return !v.True() }},
		pdf.Text{Name: "topmostSubform[0].Page1[0].f1_31[0]", Key: "1a"},
		pdf.Text{Name: "topmostSubform[0].Page1[0].f1_40[0]", Key: "1z"},
		pdf.Text{Name: "topmostSubform[0].Page1[0].f1_41[0]", Key: "2a"},
		pdf.Text{Name: "topmostSubform[0].Page1[0].f1_42[0]", Key: "2b"},
		pdf.Text{Name: "topmostSubform[0].Page1[0].f1_43[0]", Key: "3a"},
		pdf.Text{Name: "topmostSubform[0].Page1[0].f1_44[0]", Key: "3b"},
		pdf.Text{Name: "topmostSubform[0].Page1[0].Line4a-11_ReadOrder[0].f1_51[0]", Key: "7"},
		pdf.Text{Name: "topmostSubform[0].Page1[0].Line4a-11_ReadOrder[0].f1_52[0]", Key: "8"},
		pdf.Text{Name: "topmostSubform[0].Page1[0].Line4a-11_ReadOrder[0].f1_53[0]", Key: "9"},
		pdf.Text{Name: "topmostSubform[0].Page1[0].Line4a-11_ReadOrder[0].f1_54[0]", Key: "10"},
		pdf.Text{Name: "topmostSubform[0].Page1[0].Line4a-11_ReadOrder[0].f1_55[0]", Key: "11"},
		pdf.Text{Name: "topmostSubform[0].Page1[0].f1_56[0]", Key: "12"},
		pdf.Text{Name: "topmostSubform[0].Page1[0].f1_58[0]", Key: "14"},
		pdf.Text{Name: "topmostSubform[0].Page1[0].f1_59[0]", Key: "15"},
		pdf.Text{Name: "topmostSubform[0].Page2[0].f2_02[0]", Key: "16"},
		pdf.Text{Name: "topmostSubform[0].Page2[0].f2_08[0]", Key: "22"},
		pdf.Text{Name: "topmostSubform[0].Page2[0].f2_09[0]", Key: "23"},
		pdf.Text{Name: "topmostSubform[0].Page2[0].f2_10[0]", Key: "24"},
		pdf.Text{Name: "topmostSubform[0].Page2[0].f2_11[0]", Key: "25a"},
		pdf.Text{Name: "topmostSubform[0].Page2[0].f2_12[0]", Key: "25b"},
		pdf.Text{Name: "topmostSubform[0].Page2[0].f2_14[0]", Key: "25d"},
		pdf.Text{Name: "topmostSubform[0].Page2[0].f2_15[0]", Key: "26"},
		pdf.Text{Name: "topmostSubform[0].Page2[0].f2_22[0]", Key: "33"},
		pdf.Text{Name: "topmostSubform[0].Page2[0].f2_23[0]", Key: "34"},
		pdf.Text{Name: "topmostSubform[0].Page2[0].f2_28[0]", Key: "37"},
		pdf.Text{Name: "topmostSubform[0].Page2[0].f2_33[0]", Key: "occupation"},
	}
}
