package ty2023

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/panzer/habutax/internal/engine"
	"github.com/panzer/habutax/internal/forms"
)

func f1099DIV() *forms.Form {
	def := &engine.Definition{
		Name:         "1099-div",
		Description:  "Dividends and Distributions",
		TaxYear:      2023,
		Jurisdiction: engine.JurisdictionUS,
		Sequence:     52,
		Repeatable:   true,

		Inputs: []*engine.Input{
			engine.StringInput("payer", "Payer's name, as shown on your 1099-DIV"),
			engine.FloatInput("box_1a", "Box 1a: total ordinary dividends"),
			engine.FloatInput("box_1b", "Box 1b: qualified dividends"),
			engine.FloatInput("box_4", "Box 4: federal income tax withheld"),
		},

		Required: []*engine.Field{
			engine.StringField("payer", func(ctx *engine.Context) cty.Value {
				return ctx.Input("payer")
			}),
			engine.FloatField("box_1a", func(ctx *engine.Context) cty.Value {
				return ctx.Input("box_1a")
			}),
			engine.FloatField("box_1b", func(ctx *engine.Context) cty.Value {
				return ctx.Input("box_1b")
			}),
			engine.FloatField("box_4", func(ctx *engine.Context) cty.Value {
				return ctx.Input("box_4")
			}),
		},
	}

	return &forms.Form{Def: def}
}
