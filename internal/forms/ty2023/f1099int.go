package ty2023

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/panzer/habutax/internal/engine"
	"github.com/panzer/habutax/internal/forms"
)

func f1099INT() *forms.Form {
	def := &engine.Definition{
		Name:         "1099-int",
		Description:  "Interest Income",
		TaxYear:      2023,
		Jurisdiction: engine.JurisdictionUS,
		Sequence:     51,
		Repeatable:   true,

		Inputs: []*engine.Input{
			engine.StringInput("payer", "Payer's name, as shown on your 1099-INT"),
			engine.FloatInput("box_1", "Box 1: interest income"),
			engine.FloatInput("box_3", "Box 3: interest on U.S. Savings Bonds and Treasury obligations"),
			engine.FloatInput("box_4", "Box 4: federal income tax withheld"),
			engine.FloatInput("box_8", "Box 8: tax-exempt interest"),
		},

		Required: []*engine.Field{
			engine.StringField("payer", func(ctx *engine.Context) cty.Value {
				return ctx.Input("payer")
			}),
			engine.FloatField("box_1", func(ctx *engine.Context) cty.Value {
				return ctx.Input("box_1")
			}),
			engine.FloatField("box_3", func(ctx *engine.Context) cty.Value {
				return ctx.Input("box_3")
			}),
			engine.FloatField("box_4", func(ctx *engine.Context) cty.Value {
				return ctx.Input("box_4")
			}),
			engine.FloatField("box_8", func(ctx *engine.Context) cty.Value {
				return ctx.Input("box_8")
			}),
		},
	}

	return &forms.Form{Def: def}
}
