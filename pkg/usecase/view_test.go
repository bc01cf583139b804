package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/pipehq/workboard/pkg/domain/model"
	"github.com/pipehq/workboard/pkg/domain/types"
	"github.com/pipehq/workboard/pkg/usecase"
)

func TestListWorkboardsMaterializesDefault(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUseCases(t)

	boards, err := uc.View.ListWorkboards(ctx, testTenant, types.EntityTypeDeals)
	gt.NoError(t, err).Required()
	gt.Array(t, boards).Length(1)
	gt.Value(t, boards[0].IsDefault).Equal(true)
	gt.Value(t, boards[0].Name).Equal("All deals")

	// Second list reuses the materialized default instead of creating another
	again, err := uc.View.ListWorkboards(ctx, testTenant, types.EntityTypeDeals)
	gt.NoError(t, err).Required()
	gt.Array(t, again).Length(1)
	gt.Value(t, again[0].ID).Equal(boards[0].ID)

	persisted, err := repo.Workboard().GetDefault(ctx, testTenant, types.EntityTypeDeals)
	gt.NoError(t, err).Required()
	gt.Value(t, persisted.ID).Equal(boards[0].ID)
}

func TestListWorkboardsDefaultFirst(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases(t)

	_, err := uc.View.CreateWorkboard(ctx, testTenant, types.EntityTypeDeals, "My pipeline", nil, nil)
	gt.NoError(t, err).Required()

	boards, err := uc.View.ListWorkboards(ctx, testTenant, types.EntityTypeDeals)
	gt.NoError(t, err).Required()
	gt.Array(t, boards).Length(2)
	gt.Value(t, boards[0].IsDefault).Equal(true)
	gt.Value(t, boards[1].Name).Equal("My pipeline")
}

func TestCreateWorkboard(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases(t)

	t.Run("empty columns fall back to defaults", func(t *testing.T) {
		wb, err := uc.View.CreateWorkboard(ctx, testTenant, types.EntityTypeContacts, "Key contacts", nil, nil)
		gt.NoError(t, err).Required()
		gt.Value(t, wb.ID != "").Equal(true)
		gt.Value(t, wb.IsDefault).Equal(false)
		gt.Array(t, wb.Columns).Length(4)
	})

	t.Run("name is required", func(t *testing.T) {
		_, err := uc.View.CreateWorkboard(ctx, testTenant, types.EntityTypeDeals, "", nil, nil)
		gt.Error(t, err)
	})

	t.Run("invalid filter is rejected", func(t *testing.T) {
		_, err := uc.View.CreateWorkboard(ctx, testTenant, types.EntityTypeDeals, "Bad filter", nil,
			[]model.WorkboardFilter{
				{Field: "value", Operator: types.OperatorContains, Value: "10"},
			})
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, model.ErrInvalidFilterOperator)).Equal(true)
	})
}

func TestSaveView(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases(t)

	wb, err := uc.View.CreateWorkboard(ctx, testTenant, types.EntityTypeDeals, "Editable", nil, nil)
	gt.NoError(t, err).Required()

	t.Run("column order in the request is the display order", func(t *testing.T) {
		reordered := []model.WorkboardColumn{wb.Columns[1], wb.Columns[0]}
		saved, err := uc.View.SaveView(ctx, testTenant, wb.ID, "", reordered, nil)
		gt.NoError(t, err).Required()
		gt.Array(t, saved.Columns).Length(2)
		gt.Value(t, saved.Columns[0].Field).Equal(wb.Columns[1].Field)
		gt.Value(t, saved.Columns[1].Field).Equal(wb.Columns[0].Field)
	})

	t.Run("default view rejects structural saves", func(t *testing.T) {
		boards, err := uc.View.ListWorkboards(ctx, testTenant, types.EntityTypeDeals)
		gt.NoError(t, err).Required()
		def := boards[0]

		_, err = uc.View.SaveView(ctx, testTenant, def.ID, "Renamed", def.Columns, nil)
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, model.ErrDefaultViewImmutable)).Equal(true)
	})
}

func TestDeleteWorkboard(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases(t)

	wb, err := uc.View.CreateWorkboard(ctx, testTenant, types.EntityTypeDeals, "Disposable", nil, nil)
	gt.NoError(t, err).Required()

	gt.NoError(t, uc.View.DeleteWorkboard(ctx, testTenant, wb.ID)).Required()
	_, err = uc.View.GetWorkboard(ctx, testTenant, wb.ID)
	gt.Error(t, err)

	t.Run("default view cannot be deleted", func(t *testing.T) {
		boards, err := uc.View.ListWorkboards(ctx, testTenant, types.EntityTypeDeals)
		gt.NoError(t, err).Required()

		err = uc.View.DeleteWorkboard(ctx, testTenant, boards[0].ID)
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, model.ErrDefaultViewImmutable)).Equal(true)
	})
}

func TestAvailableColumns(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases(t)

	wb, err := uc.View.CreateWorkboard(ctx, testTenant, types.EntityTypeDeals, "Narrow", nil, nil)
	gt.NoError(t, err).Required()

	available, err := uc.View.AvailableColumns(ctx, testTenant, wb.ID)
	gt.NoError(t, err).Required()

	catalog := uc.View.ColumnCatalog(types.EntityTypeDeals)
	gt.Value(t, len(available)).Equal(len(catalog) - len(wb.Columns))
	for _, entry := range available {
		for _, col := range wb.Columns {
			gt.Value(t, entry.Field == col.Field).Equal(false)
		}
	}
}

func TestValidateFilterAuthoring(t *testing.T) {
	uc, _ := newTestUseCases(t)

	t.Run("legal operator passes", func(t *testing.T) {
		err := uc.View.ValidateFilter(types.EntityTypeDeals, model.WorkboardFilter{
			Field: "value", Operator: types.OperatorGte, Value: float64(1000),
		})
		gt.NoError(t, err)
	})

	t.Run("contains on currency is rejected", func(t *testing.T) {
		err := uc.View.ValidateFilter(types.EntityTypeDeals, model.WorkboardFilter{
			Field: "value", Operator: types.OperatorContains, Value: "10",
		})
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, model.ErrInvalidFilterOperator)).Equal(true)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		err := uc.View.ValidateFilter(types.EntityTypeDeals, model.WorkboardFilter{
			Field: "no_such_field", Operator: types.OperatorEq, Value: "x",
		})
		gt.Error(t, err)
	})
}

func TestDefaultWorkboardID(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUseCases(t)

	boards, err := uc.View.ListWorkboards(ctx, testTenant, types.EntityTypeDeals)
	gt.NoError(t, err).Required()
	gt.Value(t, boards[0].ID).Equal("default-deals")

	// A second engine instance over the same store materializes the same
	// document instead of a duplicate default.
	other := usecase.New(repo)
	again, err := other.View.ListWorkboards(ctx, testTenant, types.EntityTypeDeals)
	gt.NoError(t, err).Required()
	gt.Array(t, again).Length(1)
	gt.Value(t, again[0].ID).Equal("default-deals")

	all, err := repo.Workboard().List(ctx, testTenant)
	gt.NoError(t, err).Required()
	gt.Array(t, all).Length(1)
}

func TestColumnConfigurator(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases(t)

	wb, err := uc.View.CreateWorkboard(ctx, testTenant, types.EntityTypeDeals, "Configurable", nil, nil)
	gt.NoError(t, err).Required()
	base := len(wb.Columns)

	t.Run("add column from the registry", func(t *testing.T) {
		updated, err := uc.View.AddColumn(ctx, testTenant, wb.ID, "probability")
		gt.NoError(t, err).Required()
		gt.Array(t, updated.Columns).Length(base + 1)
		gt.Value(t, updated.Columns[base].Field).Equal("probability")
	})

	t.Run("adding a displayed column is a no-op", func(t *testing.T) {
		updated, err := uc.View.AddColumn(ctx, testTenant, wb.ID, "probability")
		gt.NoError(t, err).Required()
		gt.Array(t, updated.Columns).Length(base + 1)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		_, err := uc.View.AddColumn(ctx, testTenant, wb.ID, "no_such_field")
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, model.ErrUnknownField)).Equal(true)
	})

	t.Run("move column up", func(t *testing.T) {
		updated, err := uc.View.MoveColumn(ctx, testTenant, wb.ID, base, true)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Columns[base-1].Field).Equal("probability")
	})

	t.Run("move at the edge is a no-op", func(t *testing.T) {
		updated, err := uc.View.MoveColumn(ctx, testTenant, wb.ID, 0, true)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Columns[0].Field).Equal("name")
	})

	t.Run("remove column", func(t *testing.T) {
		updated, err := uc.View.RemoveColumn(ctx, testTenant, wb.ID, "probability")
		gt.NoError(t, err).Required()
		gt.Array(t, updated.Columns).Length(base)
	})

	t.Run("default view rejects column changes", func(t *testing.T) {
		boards, err := uc.View.ListWorkboards(ctx, testTenant, types.EntityTypeDeals)
		gt.NoError(t, err).Required()

		_, err = uc.View.AddColumn(ctx, testTenant, boards[0].ID, "probability")
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, model.ErrDefaultViewImmutable)).Equal(true)
	})
}

func TestFilterConfigurator(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases(t)

	wb, err := uc.View.CreateWorkboard(ctx, testTenant, types.EntityTypeDeals, "Filtered", nil, nil)
	gt.NoError(t, err).Required()

	t.Run("add a legal filter", func(t *testing.T) {
		updated, err := uc.View.AddFilter(ctx, testTenant, wb.ID, model.WorkboardFilter{
			Field: "stage", Operator: types.OperatorIn, Value: []string{"proposal"},
		})
		gt.NoError(t, err).Required()
		gt.Array(t, updated.Filters).Length(1)
	})

	t.Run("illegal operator is rejected at authoring time", func(t *testing.T) {
		_, err := uc.View.AddFilter(ctx, testTenant, wb.ID, model.WorkboardFilter{
			Field: "value", Operator: types.OperatorContains, Value: "10",
		})
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, model.ErrInvalidFilterOperator)).Equal(true)
	})

	t.Run("remove filter", func(t *testing.T) {
		updated, err := uc.View.RemoveFilter(ctx, testTenant, wb.ID, 0)
		gt.NoError(t, err).Required()
		gt.Array(t, updated.Filters).Length(0)
	})
}
