package ty2023

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/panzer/habutax/internal/engine"
	"github.com/panzer/habutax/internal/forms"
)

func w2() *forms.Form {
	def := &engine.Definition{
		Name:         "w-2",
		Description:  "Wage and Tax Statement",
		TaxYear:      2023,
		Jurisdiction: engine.JurisdictionUS,
		Sequence:     50,
		Repeatable:   true,

		Inputs: []*engine.Input{
			engine.StringInput("employer", "Employer's name, as shown in box c of your W-2"),
			engine.EnumInput("belongs_to", TaxpayerOrSpouse, "Was this W-2 issued to you or to your spouse?"),
			engine.FloatInput("box_1", "Box 1: wages, tips, other compensation"),
			engine.FloatInput("box_2", "Box 2: federal income tax withheld"),
		},

		Required: []*engine.Field{
			engine.StringField("employer", func(ctx *engine.Context) cty.Value {
				return ctx.Input("employer")
			}),
			engine.EnumField("belongs_to", TaxpayerOrSpouse, func(ctx *engine.Context) cty.Value {
				return ctx.Input("belongs_to")
			}),
			engine.FloatField("box_1", func(ctx *engine.Context) cty.Value {
				return ctx.Input("box_1")
			}),
			engine.FloatField("box_2", func(ctx *engine.Context) cty.Value {
				return ctx.Input("box_2")
			}),
		},
	}

	return &forms.Form{Def: def}
}
