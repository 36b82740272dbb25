package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// calcForm is a minimal single form with fields a=10, b=a*2, c=a+b. The
// counter observes how often a's compute strategy actually runs.
func calcForm(counter *int) *Definition {
	return &Definition{
		Name:         "calc",
		TaxYear:      2023,
		Jurisdiction: JurisdictionUS,
		Required: []*Field{
			FloatField("a", func(ctx *Context) cty.Value {
				*counter++
				return Num(10)
			}),
			FloatField("b", func(ctx *Context) cty.Value {
				return Num(ctx.Float("a") * 2)
			}),
			FloatField("c", func(ctx *Context) cty.Value {
				return Num(ctx.Float("a") + ctx.Float("b"))
			}),
		},
	}
}

func resolveFloat(t *testing.T, run *Run, key string) float64 {
	t.Helper()
	res, err := run.Resolve(context.Background(), key)
	require.NoError(t, err)
	require.False(t, res.Unsupported)
	require.False(t, res.Absent())
	f, _ := res.Value.AsBigFloat().Float64()
	return f
}

func TestResolve_Memoization(t *testing.T) {
	counter := 0
	run := NewRun()
	require.NoError(t, run.AddInstance(NewInstance(calcForm(&counter), -1, nil)))

	assert.Equal(t, 30.0, resolveFloat(t, run, "calc.c"))
	assert.Equal(t, 1, counter, "a is referenced by both b and c but must be computed once")

	// A second request returns the cached result without recomputing.
	assert.Equal(t, 30.0, resolveFloat(t, run, "calc.c"))
	assert.Equal(t, 20.0, resolveFloat(t, run, "calc.b"))
	assert.Equal(t, 1, counter)
}

func TestResolve_RunIsolation(t *testing.T) {
	counter := 0
	def := calcForm(&counter)

	first := NewRun()
	require.NoError(t, first.AddInstance(NewInstance(def, -1, nil)))
	second := NewRun()
	require.NoError(t, second.AddInstance(NewInstance(def, -1, nil)))

	assert.Equal(t, 30.0, resolveFloat(t, first, "calc.c"))
	assert.Equal(t, 30.0, resolveFloat(t, second, "calc.c"))
	assert.Equal(t, 2, counter, "each run owns an independent cache")
}

func TestResolve_Determinism(t *testing.T) {
	snapshot := func() map[string]string {
		counter := 0
		run := NewRun()
		require.NoError(t, run.AddInstance(NewInstance(calcForm(&counter), -1, nil)))
		out := make(map[string]string)
		for _, field := range []string{"a", "b", "c"} {
			res, err := run.Resolve(context.Background(), "calc."+field)
			require.NoError(t, err)
			out[field] = res.Value.AsBigFloat().Text('f', 2)
		}
		return out
	}

	assert.Empty(t, cmp.Diff(snapshot(), snapshot()))
}

func TestResolve_CycleDetection(t *testing.T) {
	def := &Definition{
		Name:         "loop",
		TaxYear:      2023,
		Jurisdiction: JurisdictionUS,
		Required: []*Field{
			FloatField("x", func(ctx *Context) cty.Value {
				return Num(ctx.Float("y"))
			}),
			FloatField("y", func(ctx *Context) cty.Value {
				return Num(ctx.Float("x"))
			}),
		},
	}
	run := NewRun()
	require.NoError(t, run.AddInstance(NewInstance(def, -1, nil)))

	_, err := run.Resolve(context.Background(), "loop.x")
	require.Error(t, err)

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"loop.x", "loop.y", "loop.x"}, cycleErr.Chain)
}

func TestResolve_UnknownKeys(t *testing.T) {
	run := NewRun()
	counter := 0
	require.NoError(t, run.AddInstance(NewInstance(calcForm(&counter), -1, nil)))

	t.Run("unknown form", func(t *testing.T) {
		_, err := run.Resolve(context.Background(), "nope.a")
		var keyErr *KeyError
		require.ErrorAs(t, err, &keyErr)
		assert.ErrorContains(t, err, "unknown form")
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := run.Resolve(context.Background(), "calc.zz")
		var keyErr *KeyError
		require.ErrorAs(t, err, &keyErr)
		assert.ErrorContains(t, err, `no field "zz"`)
	})

	t.Run("unqualified top-level key", func(t *testing.T) {
		_, err := run.Resolve(context.Background(), "a")
		assert.ErrorContains(t, err, "must name a form")
	})

	t.Run("index on singleton", func(t *testing.T) {
		_, err := run.Resolve(context.Background(), "calc:0.a")
		assert.ErrorContains(t, err, "does not take an instance index")
	})
}

func TestResolve_CrossFormRequiresLoadedInstance(t *testing.T) {
	def := &Definition{
		Name:         "x",
		TaxYear:      2023,
		Jurisdiction: JurisdictionUS,
		Required: []*Field{
			FloatField("mirror", func(ctx *Context) cty.Value {
				return Num(ctx.Float("y.total"))
			}),
		},
	}
	run := NewRun()
	require.NoError(t, run.AddInstance(NewInstance(def, -1, nil)))

	// Form y was never loaded: the reference fails rather than
	// defaulting to zero.
	_, err := run.Resolve(context.Background(), "x.mirror")
	var keyErr *KeyError
	require.ErrorAs(t, err, &keyErr)

	// A registered singleton definition with no loaded instance is
	// still an error, just a more precise one.
	yDef := &Definition{
		Name:         "y",
		TaxYear:      2023,
		Jurisdiction: JurisdictionUS,
		Required: []*Field{
			FloatField("total", func(ctx *Context) cty.Value { return Num(1) }),
		},
	}
	require.NoError(t, run.RegisterDefinition(yDef))
	_, err = run.Resolve(context.Background(), "y.total")
	assert.ErrorContains(t, err, "no instance")
}

// docForm is a repeatable source document whose amount field echoes its
// input.
func docForm() *Definition {
	return &Definition{
		Name:         "doc",
		TaxYear:      2023,
		Jurisdiction: JurisdictionUS,
		Repeatable:   true,
		Inputs: []*Input{
			FloatInput("amount", "Amount reported on this document"),
		},
		Required: []*Field{
			FloatField("amount", func(ctx *Context) cty.Value {
				return ctx.Input("amount")
			}),
		},
	}
}

// totalsForm sums the amount field across every loaded doc instance.
func totalsForm() *Definition {
	return &Definition{
		Name:         "totals",
		TaxYear:      2023,
		Jurisdiction: JurisdictionUS,
		Required: []*Field{
			FloatField("sum", func(ctx *Context) cty.Value {
				return Num(ctx.SumFloat("doc", "amount"))
			}),
		},
	}
}

func TestResolve_RepeatedInstances(t *testing.T) {
	run := NewRun()
	doc := docForm()
	for n, amount := range []float64{100, 250, 0} {
		inputs := map[string]cty.Value{"amount": cty.NumberFloatVal(amount)}
		require.NoError(t, run.AddInstance(NewInstance(doc, n, inputs)))
	}
	require.NoError(t, run.AddInstance(NewInstance(totalsForm(), -1, nil)))

	assert.Equal(t, 350.0, resolveFloat(t, run, "totals.sum"))

	t.Run("out-of-range instance is not present, not zero", func(t *testing.T) {
		res, err := run.Resolve(context.Background(), "doc:3.amount")
		require.NoError(t, err)
		assert.True(t, res.Absent())
		assert.False(t, res.Unsupported)
	})

	t.Run("present instance resolves", func(t *testing.T) {
		assert.Equal(t, 250.0, resolveFloat(t, run, "doc:1.amount"))
	})

	t.Run("missing index on repeatable form", func(t *testing.T) {
		_, err := run.Resolve(context.Background(), "doc.amount")
		assert.ErrorContains(t, err, "instance index")
	})
}

func TestResolve_SumOverZeroInstances(t *testing.T) {
	run := NewRun()
	require.NoError(t, run.RegisterDefinition(docForm()))
	require.NoError(t, run.AddInstance(NewInstance(totalsForm(), -1, nil)))

	res, err := run.Resolve(context.Background(), "totals.sum")
	require.NoError(t, err)
	f, _ := res.Value.AsBigFloat().Float64()
	assert.Equal(t, 0.0, f, "a sum over zero loaded instances is the additive identity")
}

func TestResolve_UnsupportedScenarios(t *testing.T) {
	def := &Definition{
		Name:         "f",
		TaxYear:      2023,
		Jurisdiction: JurisdictionUS,
		Required: []*Field{
			FloatField("rare", func(ctx *Context) cty.Value {
				return ctx.Unsupported("rare election")
			}),
			FloatField("dependent", func(ctx *Context) cty.Value {
				return Num(ctx.Float("rare") + 1)
			}),
			FloatField("independent", func(ctx *Context) cty.Value {
				return Num(5)
			}),
		},
	}
	run := NewRun()
	require.NoError(t, run.AddInstance(NewInstance(def, -1, nil)))
	ctx := context.Background()

	depRes, err := run.Resolve(ctx, "f.dependent")
	require.NoError(t, err, "unsupported must not abort the run")
	assert.True(t, depRes.Unsupported)

	// Everything independent still resolves to its correct value.
	assert.Equal(t, 5.0, resolveFloat(t, run, "f.independent"))

	rareRes, err := run.Resolve(ctx, "f.rare")
	require.NoError(t, err)
	assert.True(t, rareRes.Unsupported)

	// Only the originating field is reported, not its fallout.
	require.Len(t, run.UnsupportedScenarios(), 1)
	assert.Equal(t, Occurrence{Key: "f.rare", Detail: "rare election"}, run.UnsupportedScenarios()[0])
	assert.False(t, run.Complete())
}

func TestResolve_RequiredFieldMayBeBlank(t *testing.T) {
	def := &Definition{
		Name:         "f",
		TaxYear:      2023,
		Jurisdiction: JurisdictionUS,
		Required: []*Field{
			FloatField("blank", func(ctx *Context) cty.Value {
				return None
			}),
		},
	}
	run := NewRun()
	require.NoError(t, run.AddInstance(NewInstance(def, -1, nil)))

	res, err := run.Resolve(context.Background(), "f.blank")
	require.NoError(t, err)
	assert.True(t, res.Absent())
	assert.False(t, res.Unsupported)
	assert.True(t, run.Complete())
}

func TestResolve_StrategyErrorsAreFatal(t *testing.T) {
	def := &Definition{
		Name:         "f",
		TaxYear:      2023,
		Jurisdiction: JurisdictionUS,
		Inputs: []*Input{
			FloatInput("declared", "A declared but unanswered input"),
		},
		Required: []*Field{
			FloatField("needs_input", func(ctx *Context) cty.Value {
				return ctx.Input("declared")
			}),
			FloatField("undeclared", func(ctx *Context) cty.Value {
				return ctx.Input("mystery")
			}),
		},
	}
	run := NewRun()
	require.NoError(t, run.AddInstance(NewInstance(def, -1, nil)))
	ctx := context.Background()

	_, err := run.Resolve(ctx, "f.needs_input")
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "declared", inputErr.Input)

	_, err = run.Resolve(ctx, "f.undeclared")
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "mystery", inputErr.Input)
}

func TestResolve_RepeatedInstanceSelfReference(t *testing.T) {
	// Per-line fields of a repeated form address their own instance's
	// siblings through relative keys.
	doc := &Definition{
		Name:         "doc",
		TaxYear:      2023,
		Jurisdiction: JurisdictionUS,
		Repeatable:   true,
		Inputs: []*Input{
			FloatInput("amount", "Amount"),
		},
		Required: []*Field{
			FloatField("amount", func(ctx *Context) cty.Value {
				return ctx.Input("amount")
			}),
			FloatField("doubled", func(ctx *Context) cty.Value {
				return Num(ctx.Float(fmt.Sprintf("doc:%d.amount", ctx.Index())) * 2)
			}),
		},
	}
	run := NewRun()
	for n, amount := range []float64{5, 7} {
		inputs := map[string]cty.Value{"amount": cty.NumberFloatVal(amount)}
		require.NoError(t, run.AddInstance(NewInstance(doc, n, inputs)))
	}

	assert.Equal(t, 10.0, resolveFloat(t, run, "doc:0.doubled"))
	assert.Equal(t, 14.0, resolveFloat(t, run, "doc:1.doubled"))
}
