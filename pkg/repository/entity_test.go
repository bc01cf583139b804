package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/pipehq/workboard/pkg/domain/interfaces"
	"github.com/pipehq/workboard/pkg/domain/model"
	"github.com/pipehq/workboard/pkg/domain/types"
)

func runEntityStoreTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	seed := func(t *testing.T, repo interfaces.Repository, rows ...model.DataRow) {
		t.Helper()
		ctx := context.Background()
		for _, row := range rows {
			gt.NoError(t, repo.Entity().Put(ctx, types.EntityTypeDeals, testTenant, row)).Required()
		}
	}

	t.Run("FetchAll returns only the tenant's records", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		seed(t, repo,
			model.DataRow{"id": "d1", "name": "Acme renewal", "value": float64(10000)},
			model.DataRow{"id": "d2", "name": "Globex pilot", "value": float64(50000)},
		)
		gt.NoError(t, repo.Entity().Put(ctx, types.EntityTypeDeals, types.TenantID("tenant-other"),
			model.DataRow{"id": "d9", "name": "Not yours"})).Required()

		rows, err := repo.Entity().FetchAll(ctx, types.EntityTypeDeals, testTenant)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(2)
	})

	t.Run("FetchAll of empty collection returns no rows", func(t *testing.T) {
		repo := newRepo(t)

		rows, err := repo.Entity().FetchAll(context.Background(), types.EntityTypeCompanies, testTenant)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(0)
	})

	t.Run("UpdateField writes one field and returns the record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		seed(t, repo, model.DataRow{"id": "d1", "name": "Old name", "value": float64(100)})

		updated, err := repo.Entity().UpdateField(ctx, types.EntityTypeDeals, testTenant, "d1", "name", "New name")
		gt.NoError(t, err).Required()
		gt.Value(t, updated["name"]).Equal("New name")
		gt.Value(t, updated["value"]).Equal(float64(100))

		got, err := repo.Entity().Fetch(ctx, types.EntityTypeDeals, testTenant, "d1")
		gt.NoError(t, err).Required()
		gt.Value(t, got["name"]).Equal("New name")
	})

	t.Run("UpdateField on missing record fails", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Entity().UpdateField(context.Background(), types.EntityTypeDeals, testTenant, "nope", "name", "x")
		gt.Error(t, err)
	})

	t.Run("Fetch does not cross tenants", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		seed(t, repo, model.DataRow{"id": "d1", "name": "Private"})

		_, err := repo.Entity().Fetch(ctx, types.EntityTypeDeals, types.TenantID("tenant-other"), "d1")
		gt.Error(t, err)
	})

	t.Run("Put requires a record id", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Entity().Put(context.Background(), types.EntityTypeDeals, testTenant,
			model.DataRow{"name": "no id"})
		gt.Error(t, err)
	})
}
