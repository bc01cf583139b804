package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/pipehq/workboard/pkg/domain/model"
	"github.com/pipehq/workboard/pkg/domain/types"
)

func TestSortRows(t *testing.T) {
	t.Run("string sort is case-insensitive", func(t *testing.T) {
		rows := []model.DataRow{
			{"name": "zeta"},
			{"name": "Alpha"},
			{"name": "beta"},
		}

		model.SortRows(rows, "name", types.ValueFormatText, types.SortAscending)

		gt.Value(t, rows[0]["name"]).Equal("Alpha")
		gt.Value(t, rows[1]["name"]).Equal("beta")
		gt.Value(t, rows[2]["name"]).Equal("zeta")
	})

	t.Run("missing string sorts first ascending", func(t *testing.T) {
		rows := []model.DataRow{
			{"name": "beta"},
			{},
		}

		model.SortRows(rows, "name", types.ValueFormatText, types.SortAscending)
		gt.Value(t, rows[0]["name"]).Nil()
	})

	t.Run("numeric sort descending", func(t *testing.T) {
		rows := []model.DataRow{
			{"value": float64(10000)},
			{"value": float64(70000)},
			{"value": float64(30000)},
		}

		model.SortRows(rows, "value", types.ValueFormatCurrency, types.SortDescending)

		gt.Value(t, rows[0]["value"]).Equal(float64(70000))
		gt.Value(t, rows[1]["value"]).Equal(float64(30000))
		gt.Value(t, rows[2]["value"]).Equal(float64(10000))
	})

	t.Run("missing numeric sorts as zero", func(t *testing.T) {
		rows := []model.DataRow{
			{"value": float64(-5)},
			{},
			{"value": float64(5)},
		}

		model.SortRows(rows, "value", types.ValueFormatNumber, types.SortAscending)

		gt.Value(t, rows[0]["value"]).Equal(float64(-5))
		gt.Value(t, rows[1]["value"]).Nil()
		gt.Value(t, rows[2]["value"]).Equal(float64(5))
	})

	t.Run("boolean formula produces many ties and stays stable", func(t *testing.T) {
		rows := []model.DataRow{
			{"id": "a", "sla_breach": false},
			{"id": "b", "sla_breach": true},
			{"id": "c", "sla_breach": false},
			{"id": "d", "sla_breach": false},
		}

		model.SortRows(rows, "sla_breach", types.ValueFormatBoolean, types.SortAscending)

		// false rows keep prior relative order a, c, d
		gt.Value(t, rows[0]["id"]).Equal("a")
		gt.Value(t, rows[1]["id"]).Equal("c")
		gt.Value(t, rows[2]["id"]).Equal("d")
		gt.Value(t, rows[3]["id"]).Equal("b")
	})

	t.Run("sorting a sorted set again is idempotent", func(t *testing.T) {
		rows := []model.DataRow{
			{"id": "a", "value": float64(1)},
			{"id": "b", "value": float64(1)},
			{"id": "c", "value": float64(2)},
		}

		model.SortRows(rows, "value", types.ValueFormatNumber, types.SortAscending)
		first := []string{rows[0].ID(), rows[1].ID(), rows[2].ID()}

		model.SortRows(rows, "value", types.ValueFormatNumber, types.SortAscending)
		second := []string{rows[0].ID(), rows[1].ID(), rows[2].ID()}

		gt.Value(t, first).Equal(second)
	})
}
