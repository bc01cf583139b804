package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/pipehq/workboard/pkg/domain/model"
	"github.com/pipehq/workboard/pkg/domain/types"
)

func TestApplyEdit(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUseCases(t)

	entered := testNow.Add(-20 * 24 * time.Hour)
	seedDeals(t, repo,
		model.DataRow{
			"id": "d1", "name": "Acme renewal", "value": float64(1000),
			"stage": "proposal", "stage_entered_at": entered,
		},
	)

	boards, err := uc.View.ListWorkboards(ctx, testTenant, types.EntityTypeDeals)
	gt.NoError(t, err).Required()
	board := boards[0]

	t.Run("name edit persists and returns the refreshed record", func(t *testing.T) {
		row, err := uc.Edit.ApplyEdit(ctx, testTenant, board.ID, "d1", "name", "Acme renewal Q3")
		gt.NoError(t, err).Required()
		gt.Value(t, row["name"]).Equal("Acme renewal Q3")

		// Formula columns of the view are re-derived on the returned record
		gt.Value(t, row[types.FormulaDaysInStage.String()]).Equal(float64(20))
		gt.Value(t, row[types.FormulaSLABreach.String()]).Equal(true)

		stored, err := repo.Entity().Fetch(ctx, types.EntityTypeDeals, testTenant, "d1")
		gt.NoError(t, err).Required()
		gt.Value(t, stored["name"]).Equal("Acme renewal Q3")
	})

	t.Run("currency edit coerces a string to float64", func(t *testing.T) {
		row, err := uc.Edit.ApplyEdit(ctx, testTenant, board.ID, "d1", "value", "2500")
		gt.NoError(t, err).Required()
		gt.Value(t, row["value"]).Equal(float64(2500))
	})

	t.Run("non-numeric currency value is rejected", func(t *testing.T) {
		_, err := uc.Edit.ApplyEdit(ctx, testTenant, board.ID, "d1", "value", "lots")
		gt.Error(t, err)
	})

	t.Run("formula column rejects edits", func(t *testing.T) {
		_, err := uc.Edit.ApplyEdit(ctx, testTenant, board.ID, "d1", types.FormulaDaysInStage.String(), float64(3))
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, model.ErrFormulaFieldReadOnly)).Equal(true)
	})

	t.Run("raw field outside the allow-list rejects edits", func(t *testing.T) {
		_, err := uc.Edit.ApplyEdit(ctx, testTenant, board.ID, "d1", "probability", float64(80))
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, model.ErrFieldNotEditable)).Equal(true)
	})

	t.Run("unknown field rejects edits", func(t *testing.T) {
		_, err := uc.Edit.ApplyEdit(ctx, testTenant, board.ID, "d1", "no_such_field", "x")
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, model.ErrFieldNotEditable)).Equal(true)
	})

	t.Run("store write failure surfaces for rollback", func(t *testing.T) {
		_, err := uc.Edit.ApplyEdit(ctx, testTenant, board.ID, "missing", "name", "x")
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, model.ErrStoreUnavailable)).Equal(true)
	})
}
