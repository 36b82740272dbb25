package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func zero(ctx *Context) cty.Value { return Num(0) }

func TestDefinitionIndex(t *testing.T) {
	t.Run("lookups after indexing", func(t *testing.T) {
		def := &Definition{
			Name:    "f",
			TaxYear: 2023,
			Inputs: []*Input{
				FloatInput("wages", "Wages"),
			},
			Thresholds: []*Threshold{
				ScalarThreshold("floor", 1500),
			},
			Required: []*Field{FloatField("total", zero)},
			Optional: []*Field{FloatField("detail", zero)},
		}
		require.NoError(t, def.Index())

		_, ok := def.Input("wages")
		assert.True(t, ok)
		_, ok = def.Threshold("floor")
		assert.True(t, ok)
		_, ok = def.Field("total")
		assert.True(t, ok)
		_, ok = def.Field("detail")
		assert.True(t, ok, "optional fields are addressable too")
		_, ok = def.Field("wages")
		assert.False(t, ok, "inputs are not fields")
	})

	t.Run("duplicate field across required and optional", func(t *testing.T) {
		def := &Definition{
			Name:     "f",
			Required: []*Field{FloatField("total", zero)},
			Optional: []*Field{FloatField("total", zero)},
		}
		assert.ErrorContains(t, def.Index(), `duplicate field "total"`)
	})

	t.Run("duplicate input", func(t *testing.T) {
		def := &Definition{
			Name: "f",
			Inputs: []*Input{
				FloatInput("wages", ""),
				StringInput("wages", ""),
			},
		}
		assert.ErrorContains(t, def.Index(), `duplicate input "wages"`)
	})

	t.Run("duplicate threshold", func(t *testing.T) {
		def := &Definition{
			Name: "f",
			Thresholds: []*Threshold{
				ScalarThreshold("floor", 1),
				ScalarThreshold("floor", 2),
			},
		}
		assert.ErrorContains(t, def.Index(), `duplicate threshold "floor"`)
	})

	t.Run("indexing is idempotent", func(t *testing.T) {
		def := &Definition{
			Name:     "f",
			Required: []*Field{FloatField("total", zero)},
		}
		require.NoError(t, def.Index())
		require.NoError(t, def.Index())
	})
}

func TestRunRegistration(t *testing.T) {
	t.Run("singleton rejects second instance", func(t *testing.T) {
		def := &Definition{Name: "f", Required: []*Field{FloatField("a", zero)}}
		run := NewRun()
		require.NoError(t, run.AddInstance(NewInstance(def, -1, nil)))
		assert.ErrorContains(t, run.AddInstance(NewInstance(def, -1, nil)), "second instance")
	})

	t.Run("singleton rejects indexed instance", func(t *testing.T) {
		def := &Definition{Name: "f", Required: []*Field{FloatField("a", zero)}}
		run := NewRun()
		assert.ErrorContains(t, run.AddInstance(NewInstance(def, 0, nil)), "singleton")
	})

	t.Run("repeatable instances must be dense", func(t *testing.T) {
		def := &Definition{Name: "f", Repeatable: true, Required: []*Field{FloatField("a", zero)}}
		run := NewRun()
		require.NoError(t, run.AddInstance(NewInstance(def, 0, nil)))
		assert.ErrorContains(t, run.AddInstance(NewInstance(def, 2, nil)), "densely")
	})

	t.Run("conflicting re-registration", func(t *testing.T) {
		run := NewRun()
		require.NoError(t, run.RegisterDefinition(&Definition{Name: "f"}))
		assert.ErrorContains(t, run.RegisterDefinition(&Definition{Name: "f"}), "registered twice")
	})
}
