package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pipehq/workboard/pkg/domain/model"
	"github.com/pipehq/workboard/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// tenantField is stored inside each record document and queried for tenant
// scoping
const tenantField = "tenant_id"

type entityStore struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEntityStore(client *firestore.Client) *entityStore {
	return &entityStore{
		client:           client,
		collectionPrefix: "",
	}
}

func (s *entityStore) collection(entityType types.EntityType) string {
	if s.collectionPrefix != "" {
		return s.collectionPrefix + "_" + entityType.String()
	}
	return entityType.String()
}

func rowFromDoc(docSnap *firestore.DocumentSnapshot) model.DataRow {
	row := model.DataRow(docSnap.Data())
	if row == nil {
		row = model.DataRow{}
	}
	if _, ok := row[model.RowIDField]; !ok {
		row[model.RowIDField] = docSnap.Ref.ID
	}
	return row
}

func (s *entityStore) FetchAll(ctx context.Context, entityType types.EntityType, tenantID types.TenantID) ([]model.DataRow, error) {
	iter := s.client.Collection(s.collection(entityType)).
		Where(tenantField, "==", string(tenantID)).
		Documents(ctx)
	defer iter.Stop()

	rows := make([]model.DataRow, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate records",
				goerr.V("entity_type", entityType), goerr.V("tenant_id", tenantID))
		}
		rows = append(rows, rowFromDoc(docSnap))
	}

	return rows, nil
}

func (s *entityStore) Fetch(ctx context.Context, entityType types.EntityType, tenantID types.TenantID, recordID string) (model.DataRow, error) {
	docSnap, err := s.client.Collection(s.collection(entityType)).Doc(recordID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.New("record not found",
				goerr.V("entity_type", entityType), goerr.V("record_id", recordID))
		}
		return nil, goerr.Wrap(err, "failed to get record",
			goerr.V("entity_type", entityType), goerr.V("record_id", recordID))
	}

	row := rowFromDoc(docSnap)
	if tid, _ := row[tenantField].(string); tid != string(tenantID) {
		// The store enforces tenant isolation; a cross-tenant ID behaves as absent
		return nil, goerr.New("record not found",
			goerr.V("entity_type", entityType), goerr.V("record_id", recordID))
	}

	return row, nil
}

func (s *entityStore) UpdateField(ctx context.Context, entityType types.EntityType, tenantID types.TenantID, recordID, field string, value any) (model.DataRow, error) {
	// Tenant check before the blind field write
	if _, err := s.Fetch(ctx, entityType, tenantID, recordID); err != nil {
		return nil, err
	}

	_, err := s.client.Collection(s.collection(entityType)).Doc(recordID).
		Update(ctx, []firestore.Update{{Path: field, Value: value}})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update record field",
			goerr.V("entity_type", entityType),
			goerr.V("record_id", recordID),
			goerr.V("field", field))
	}

	return s.Fetch(ctx, entityType, tenantID, recordID)
}

func (s *entityStore) Put(ctx context.Context, entityType types.EntityType, tenantID types.TenantID, row model.DataRow) error {
	if row.ID() == "" {
		return goerr.New("record id is required", goerr.V("entity_type", entityType))
	}

	saved := row.Clone()
	saved[tenantField] = string(tenantID)

	_, err := s.client.Collection(s.collection(entityType)).Doc(row.ID()).Set(ctx, map[string]any(saved))
	if err != nil {
		return goerr.Wrap(err, "failed to put record",
			goerr.V("entity_type", entityType), goerr.V("record_id", row.ID()))
	}

	return nil
}
