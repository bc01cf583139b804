package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pipehq/workboard/pkg/domain/model"
	"github.com/pipehq/workboard/pkg/domain/types"
)

type recordKey struct {
	TenantID   types.TenantID
	EntityType types.EntityType
	ID         string
}

type entityStore struct {
	mu      sync.RWMutex
	records map[recordKey]model.DataRow
}

func newEntityStore() *entityStore {
	return &entityStore{
		records: make(map[recordKey]model.DataRow),
	}
}

func (s *entityStore) FetchAll(ctx context.Context, entityType types.EntityType, tenantID types.TenantID) ([]model.DataRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]model.DataRow, 0)
	for key, row := range s.records {
		if key.TenantID == tenantID && key.EntityType == entityType {
			rows = append(rows, row.Clone())
		}
	}

	// Map iteration order is random; stores return records in a stable order
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ID() < rows[j].ID()
	})

	return rows, nil
}

func (s *entityStore) Fetch(ctx context.Context, entityType types.EntityType, tenantID types.TenantID, recordID string) (model.DataRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.records[recordKey{TenantID: tenantID, EntityType: entityType, ID: recordID}]
	if !ok {
		return nil, goerr.New("record not found",
			goerr.V("entity_type", entityType), goerr.V("record_id", recordID))
	}

	return row.Clone(), nil
}

func (s *entityStore) UpdateField(ctx context.Context, entityType types.EntityType, tenantID types.TenantID, recordID, field string, value any) (model.DataRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey{TenantID: tenantID, EntityType: entityType, ID: recordID}
	row, ok := s.records[key]
	if !ok {
		return nil, goerr.New("record not found",
			goerr.V("entity_type", entityType), goerr.V("record_id", recordID))
	}

	updated := row.Clone()
	updated[field] = value
	s.records[key] = updated

	return updated.Clone(), nil
}

func (s *entityStore) Put(ctx context.Context, entityType types.EntityType, tenantID types.TenantID, row model.DataRow) error {
	if row.ID() == "" {
		return goerr.New("record id is required", goerr.V("entity_type", entityType))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey{TenantID: tenantID, EntityType: entityType, ID: row.ID()}
	s.records[key] = row.Clone()
	return nil
}
