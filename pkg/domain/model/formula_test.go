package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/pipehq/workboard/pkg/domain/model"
	"github.com/pipehq/workboard/pkg/domain/model/config"
	"github.com/pipehq/workboard/pkg/domain/types"
)

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func testSLA() *config.SLAConfig {
	return &config.SLAConfig{DefaultDays: 14}
}

func TestComputeFormula(t *testing.T) {
	t.Run("spin_score passes through the raw attribute", func(t *testing.T) {
		row := model.DataRow{"spin_score": float64(72)}
		got := model.ComputeFormula(types.FormulaSpinScore, row, testSLA(), testNow)
		gt.Value(t, got).Equal(float64(72))
	})

	t.Run("spin_score degrades to nil when absent", func(t *testing.T) {
		got := model.ComputeFormula(types.FormulaSpinScore, model.DataRow{}, testSLA(), testNow)
		gt.Value(t, got).Nil()
	})

	t.Run("days_in_stage floors whole days", func(t *testing.T) {
		row := model.DataRow{"stage_entered_at": testNow.Add(-20*24*time.Hour - 6*time.Hour)}
		got := model.ComputeFormula(types.FormulaDaysInStage, row, testSLA(), testNow)
		gt.Value(t, got).Equal(float64(20))
	})

	t.Run("missing stage entry timestamp yields zero", func(t *testing.T) {
		got := model.ComputeFormula(types.FormulaDaysInStage, model.DataRow{}, testSLA(), testNow)
		gt.Value(t, got).Equal(float64(0))
	})

	t.Run("future stage entry clamps to zero", func(t *testing.T) {
		row := model.DataRow{"stage_entered_at": testNow.Add(48 * time.Hour)}
		got := model.ComputeFormula(types.FormulaDaysInStage, row, testSLA(), testNow)
		gt.Value(t, got).Equal(float64(0))
	})

	t.Run("twenty days in stage with a 14 day SLA breaches", func(t *testing.T) {
		row := model.DataRow{
			"stage":            "proposal",
			"stage_entered_at": testNow.Add(-20 * 24 * time.Hour),
		}

		days := model.ComputeFormula(types.FormulaDaysInStage, row, testSLA(), testNow)
		gt.Value(t, days).Equal(float64(20))

		breach := model.ComputeFormula(types.FormulaSLABreach, row, testSLA(), testNow)
		gt.Value(t, breach).Equal(true)
	})

	t.Run("stage-specific threshold overrides the default", func(t *testing.T) {
		sla := &config.SLAConfig{
			DefaultDays: 14,
			Stages: []config.StageSLA{
				{EntityType: types.EntityTypeDeals, Stage: "negotiation", Days: 30},
			},
		}
		row := model.DataRow{
			"stage":            "negotiation",
			"stage_entered_at": testNow.Add(-20 * 24 * time.Hour),
		}

		breach := model.ComputeFormula(types.FormulaSLABreach, row, sla, testNow)
		gt.Value(t, breach).Equal(false)
	})

	t.Run("no stage entry never breaches", func(t *testing.T) {
		row := model.DataRow{"stage": "lead"}
		breach := model.ComputeFormula(types.FormulaSLABreach, row, testSLA(), testNow)
		gt.Value(t, breach).Equal(false)
	})

	t.Run("last_activity_days floors whole days", func(t *testing.T) {
		row := model.DataRow{"latest_activity_at": testNow.Add(-3*24*time.Hour - time.Hour)}
		got := model.ComputeFormula(types.FormulaLastActivityDays, row, testSLA(), testNow)
		gt.Value(t, got).Equal(float64(3))
	})

	t.Run("no activity yields the 999 sentinel", func(t *testing.T) {
		got := model.ComputeFormula(types.FormulaLastActivityDays, model.DataRow{}, testSLA(), testNow)
		gt.Value(t, got).Equal(float64(model.NoActivitySentinel))
	})

	t.Run("deterministic for a fixed now", func(t *testing.T) {
		row := model.DataRow{"stage_entered_at": testNow.Add(-5 * 24 * time.Hour)}
		first := model.ComputeFormula(types.FormulaDaysInStage, row, testSLA(), testNow)
		second := model.ComputeFormula(types.FormulaDaysInStage, row, testSLA(), testNow)
		gt.Value(t, first).Equal(second)
	})
}

func TestAttachFormulas(t *testing.T) {
	t.Run("only displayed formula columns are attached", func(t *testing.T) {
		rows := []model.DataRow{
			{"id": "d1", "stage_entered_at": testNow.Add(-10 * 24 * time.Hour)},
		}
		columns := []model.WorkboardColumn{
			{Field: "name", Kind: types.ColumnKindRaw, Format: types.ValueFormatText},
			{Field: "days_in_stage", Kind: types.ColumnKindFormula, Formula: types.FormulaDaysInStage},
		}

		model.AttachFormulas(rows, columns, testSLA(), testNow)

		gt.Value(t, rows[0]["days_in_stage"]).Equal(float64(10))
		_, hasBreach := rows[0]["sla_breach"]
		gt.Bool(t, hasBreach).False()
	})
}
