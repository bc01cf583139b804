package interfaces

import (
	"context"

	"github.com/pipehq/workboard/pkg/domain/model"
	"github.com/pipehq/workboard/pkg/domain/types"
)

// WorkboardRepository defines the interface for persisted view definitions.
// The view definition is the only durable artifact of the engine; row data
// and computed formula values are never persisted.
type WorkboardRepository interface {
	// Get retrieves a workboard by ID within a tenant. Returns
	// model.ErrWorkboardNotFound when absent.
	Get(ctx context.Context, tenantID types.TenantID, id string) (*model.Workboard, error)

	// GetDefault retrieves the distinguished default workboard for an entity
	// type, or model.ErrWorkboardNotFound before first materialization
	GetDefault(ctx context.Context, tenantID types.TenantID, entityType types.EntityType) (*model.Workboard, error)

	// List retrieves the tenant's workboards, optionally narrowed by entity
	// type. Ordering is stable by creation time.
	List(ctx context.Context, tenantID types.TenantID, opts ...ListWorkboardOption) ([]*model.Workboard, error)

	// Put creates or replaces a workboard. Last write wins; concurrent
	// structural saves are not reconciled.
	Put(ctx context.Context, wb *model.Workboard) (*model.Workboard, error)

	// Delete removes a workboard by ID within a tenant
	Delete(ctx context.Context, tenantID types.TenantID, id string) error
}
