package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pipehq/workboard/pkg/domain/interfaces"
	"github.com/pipehq/workboard/pkg/domain/model"
	"github.com/pipehq/workboard/pkg/domain/types"
)

type workboardKey struct {
	TenantID types.TenantID
	ID       string
}

type workboardRepository struct {
	mu     sync.RWMutex
	boards map[workboardKey]*model.Workboard
}

func newWorkboardRepository() *workboardRepository {
	return &workboardRepository{
		boards: make(map[workboardKey]*model.Workboard),
	}
}

func (r *workboardRepository) Get(ctx context.Context, tenantID types.TenantID, id string) (*model.Workboard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wb, ok := r.boards[workboardKey{TenantID: tenantID, ID: id}]
	if !ok {
		return nil, goerr.Wrap(model.ErrWorkboardNotFound, "no such workboard",
			goerr.V("tenant_id", tenantID), goerr.V("workboard_id", id))
	}

	return wb.Clone(), nil
}

func (r *workboardRepository) GetDefault(ctx context.Context, tenantID types.TenantID, entityType types.EntityType) (*model.Workboard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for key, wb := range r.boards {
		if key.TenantID == tenantID && wb.EntityType == entityType && wb.IsDefault {
			return wb.Clone(), nil
		}
	}

	return nil, goerr.Wrap(model.ErrWorkboardNotFound, "no default workboard",
		goerr.V("tenant_id", tenantID), goerr.V("entity_type", entityType))
}

func (r *workboardRepository) List(ctx context.Context, tenantID types.TenantID, opts ...interfaces.ListWorkboardOption) ([]*model.Workboard, error) {
	cfg := interfaces.BuildListWorkboardConfig(opts...)

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Workboard, 0)
	for key, wb := range r.boards {
		if key.TenantID != tenantID {
			continue
		}
		if et := cfg.EntityType(); et != nil && wb.EntityType != *et {
			continue
		}
		result = append(result, wb.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *workboardRepository) Put(ctx context.Context, wb *model.Workboard) (*model.Workboard, error) {
	if wb.ID == "" {
		return nil, goerr.New("workboard ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	saved := wb.Clone()
	saved.UpdatedAt = time.Now().UTC()
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = saved.UpdatedAt
	}

	r.boards[workboardKey{TenantID: wb.TenantID, ID: wb.ID}] = saved
	return saved.Clone(), nil
}

func (r *workboardRepository) Delete(ctx context.Context, tenantID types.TenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := workboardKey{TenantID: tenantID, ID: id}
	if _, ok := r.boards[key]; !ok {
		return goerr.Wrap(model.ErrWorkboardNotFound, "no such workboard",
			goerr.V("tenant_id", tenantID), goerr.V("workboard_id", id))
	}

	delete(r.boards, key)
	return nil
}
