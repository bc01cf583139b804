package interfaces

import (
	"context"

	"github.com/pipehq/workboard/pkg/domain/model"
	"github.com/pipehq/workboard/pkg/domain/types"
)

// EntityStore defines the outbound interface to the CRM entity collections.
// The store enforces tenant isolation; the engine performs no cross-tenant
// filtering itself.
type EntityStore interface {
	// FetchAll retrieves the full raw record set for an entity type scoped
	// to the tenant
	FetchAll(ctx context.Context, entityType types.EntityType, tenantID types.TenantID) ([]model.DataRow, error)

	// Fetch retrieves one record by ID
	Fetch(ctx context.Context, entityType types.EntityType, tenantID types.TenantID, recordID string) (model.DataRow, error)

	// UpdateField writes a single raw field of a record and returns the
	// updated record
	UpdateField(ctx context.Context, entityType types.EntityType, tenantID types.TenantID, recordID, field string, value any) (model.DataRow, error)

	// Put creates or replaces a whole record. Used by data loading, not by
	// the grid edit path.
	Put(ctx context.Context, entityType types.EntityType, tenantID types.TenantID, row model.DataRow) error
}
