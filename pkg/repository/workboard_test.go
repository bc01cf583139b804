package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/pipehq/workboard/pkg/domain/interfaces"
	"github.com/pipehq/workboard/pkg/domain/model"
	"github.com/pipehq/workboard/pkg/domain/types"
)

const testTenant = types.TenantID("tenant-test")

func newCustomBoard(name string) *model.Workboard {
	wb := model.DefaultWorkboard(testTenant, types.EntityTypeDeals)
	wb.ID = uuid.NewString()
	wb.Name = name
	wb.IsDefault = false
	return wb
}

func runWorkboardRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put then Get round-trips the view definition", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		wb := newCustomBoard("Hot deals")
		wb.Filters = []model.WorkboardFilter{
			{Field: "stage", Operator: types.OperatorIn, Value: []string{"proposal", "negotiation"}},
			{Field: "value", Operator: types.OperatorGte, Value: float64(10000)},
		}

		saved, err := repo.Workboard().Put(ctx, wb)
		gt.NoError(t, err).Required()
		gt.Value(t, saved.ID).Equal(wb.ID)

		got, err := repo.Workboard().Get(ctx, testTenant, wb.ID)
		gt.NoError(t, err).Required()

		gt.Value(t, got.Name).Equal("Hot deals")
		gt.Value(t, got.EntityType).Equal(types.EntityTypeDeals)
		gt.Array(t, got.Columns).Length(len(wb.Columns))
		gt.Array(t, got.Filters).Length(2)
		gt.Value(t, got.Filters[0].Operator).Equal(types.OperatorIn)

		// no silent reordering or dropping of columns
		for i, col := range wb.Columns {
			gt.Value(t, got.Columns[i].Field).Equal(col.Field)
			gt.Value(t, got.Columns[i].Kind).Equal(col.Kind)
		}
	})

	t.Run("Get unknown workboard returns not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Workboard().Get(ctx, testTenant, uuid.NewString())
		gt.Error(t, err).Is(model.ErrWorkboardNotFound)
	})

	t.Run("GetDefault finds only the default board", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Workboard().GetDefault(ctx, testTenant, types.EntityTypeDeals)
		gt.Error(t, err).Is(model.ErrWorkboardNotFound)

		def := model.DefaultWorkboard(testTenant, types.EntityTypeDeals)
		def.ID = uuid.NewString()
		_, err = repo.Workboard().Put(ctx, def)
		gt.NoError(t, err).Required()

		custom := newCustomBoard("Custom")
		_, err = repo.Workboard().Put(ctx, custom)
		gt.NoError(t, err).Required()

		got, err := repo.Workboard().GetDefault(ctx, testTenant, types.EntityTypeDeals)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(def.ID)
		gt.Bool(t, got.IsDefault).True()
	})

	t.Run("List narrows by entity type", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		deals := newCustomBoard("Deals view")
		_, err := repo.Workboard().Put(ctx, deals)
		gt.NoError(t, err).Required()

		contacts := model.DefaultWorkboard(testTenant, types.EntityTypeContacts)
		contacts.ID = uuid.NewString()
		_, err = repo.Workboard().Put(ctx, contacts)
		gt.NoError(t, err).Required()

		all, err := repo.Workboard().List(ctx, testTenant)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(2)

		dealsOnly, err := repo.Workboard().List(ctx, testTenant,
			interfaces.WithEntityType(types.EntityTypeDeals))
		gt.NoError(t, err).Required()
		gt.Array(t, dealsOnly).Length(1)
		gt.Value(t, dealsOnly[0].ID).Equal(deals.ID)
	})

	t.Run("List is tenant scoped", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		wb := newCustomBoard("Mine")
		_, err := repo.Workboard().Put(ctx, wb)
		gt.NoError(t, err).Required()

		other, err := repo.Workboard().List(ctx, types.TenantID("tenant-other"))
		gt.NoError(t, err).Required()
		gt.Array(t, other).Length(0)
	})

	t.Run("Put replaces an existing definition, last write wins", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		wb := newCustomBoard("Before")
		_, err := repo.Workboard().Put(ctx, wb)
		gt.NoError(t, err).Required()

		wb.Name = "After"
		wb.Filters = []model.WorkboardFilter{
			{Field: "stage", Operator: types.OperatorEq, Value: "proposal"},
		}
		_, err = repo.Workboard().Put(ctx, wb)
		gt.NoError(t, err).Required()

		got, err := repo.Workboard().Get(ctx, testTenant, wb.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("After")
		gt.Array(t, got.Filters).Length(1)
	})

	t.Run("Delete removes the workboard", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		wb := newCustomBoard("Doomed")
		_, err := repo.Workboard().Put(ctx, wb)
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Workboard().Delete(ctx, testTenant, wb.ID))

		_, err = repo.Workboard().Get(ctx, testTenant, wb.ID)
		gt.Error(t, err).Is(model.ErrWorkboardNotFound)

		err = repo.Workboard().Delete(ctx, testTenant, wb.ID)
		gt.Error(t, err).Is(model.ErrWorkboardNotFound)
	})
}
