package firestore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pipehq/workboard/pkg/domain/interfaces"
	"github.com/pipehq/workboard/pkg/domain/model"
	"github.com/pipehq/workboard/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type workboardRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newWorkboardRepository(client *firestore.Client) *workboardRepository {
	return &workboardRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *workboardRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_workboards"
	}
	return "workboards"
}

func (r *workboardRepository) docID(tenantID types.TenantID, id string) string {
	return fmt.Sprintf("%s_%s", tenantID, id)
}

// workboardDoc is the Firestore document shape of a view definition
type workboardDoc struct {
	ID         string
	TenantID   string
	Name       string
	EntityType string
	Columns    []columnDoc
	Filters    []filterDoc
	IsDefault  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type columnDoc struct {
	ID      string
	Field   string
	Label   string
	Kind    string
	Formula string
	Format  string
	Width   int
}

type filterDoc struct {
	Field    string
	Operator string
	Value    any
}

func toWorkboardDoc(wb *model.Workboard) *workboardDoc {
	doc := &workboardDoc{
		ID:         wb.ID,
		TenantID:   string(wb.TenantID),
		Name:       wb.Name,
		EntityType: wb.EntityType.String(),
		IsDefault:  wb.IsDefault,
		CreatedAt:  wb.CreatedAt,
		UpdatedAt:  wb.UpdatedAt,
	}
	for _, c := range wb.Columns {
		doc.Columns = append(doc.Columns, columnDoc{
			ID:      c.ID,
			Field:   c.Field,
			Label:   c.Label,
			Kind:    c.Kind.String(),
			Formula: c.Formula.String(),
			Format:  c.Format.String(),
			Width:   c.Width,
		})
	}
	for _, f := range wb.Filters {
		doc.Filters = append(doc.Filters, filterDoc{
			Field:    f.Field,
			Operator: f.Operator.String(),
			Value:    f.Value,
		})
	}
	return doc
}

func (d *workboardDoc) toModel() *model.Workboard {
	wb := &model.Workboard{
		ID:         d.ID,
		TenantID:   types.TenantID(d.TenantID),
		Name:       d.Name,
		EntityType: types.EntityType(d.EntityType),
		IsDefault:  d.IsDefault,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
	for _, c := range d.Columns {
		wb.Columns = append(wb.Columns, model.WorkboardColumn{
			ID:      c.ID,
			Field:   c.Field,
			Label:   c.Label,
			Kind:    types.ColumnKind(c.Kind),
			Formula: types.FormulaType(c.Formula),
			Format:  types.ValueFormat(c.Format),
			Width:   c.Width,
		})
	}
	for _, f := range d.Filters {
		wb.Filters = append(wb.Filters, model.WorkboardFilter{
			Field:    f.Field,
			Operator: types.FilterOperator(f.Operator),
			Value:    f.Value,
		})
	}
	return wb
}

func (r *workboardRepository) Get(ctx context.Context, tenantID types.TenantID, id string) (*model.Workboard, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(r.docID(tenantID, id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrWorkboardNotFound, "no such workboard",
				goerr.V("tenant_id", tenantID), goerr.V("workboard_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get workboard",
			goerr.V("tenant_id", tenantID), goerr.V("workboard_id", id))
	}

	var doc workboardDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode workboard", goerr.V("doc_id", docSnap.Ref.ID))
	}

	return doc.toModel(), nil
}

func (r *workboardRepository) GetDefault(ctx context.Context, tenantID types.TenantID, entityType types.EntityType) (*model.Workboard, error) {
	iter := r.client.Collection(r.collection()).
		Where("TenantID", "==", string(tenantID)).
		Where("EntityType", "==", entityType.String()).
		Where("IsDefault", "==", true).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(model.ErrWorkboardNotFound, "no default workboard",
			goerr.V("tenant_id", tenantID), goerr.V("entity_type", entityType))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query default workboard",
			goerr.V("tenant_id", tenantID), goerr.V("entity_type", entityType))
	}

	var doc workboardDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode workboard", goerr.V("doc_id", docSnap.Ref.ID))
	}

	return doc.toModel(), nil
}

func (r *workboardRepository) List(ctx context.Context, tenantID types.TenantID, opts ...interfaces.ListWorkboardOption) ([]*model.Workboard, error) {
	cfg := interfaces.BuildListWorkboardConfig(opts...)

	query := r.client.Collection(r.collection()).
		Where("TenantID", "==", string(tenantID))
	if et := cfg.EntityType(); et != nil {
		query = query.Where("EntityType", "==", et.String())
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	result := make([]*model.Workboard, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate workboards",
				goerr.V("tenant_id", tenantID))
		}

		var doc workboardDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode workboard", goerr.V("doc_id", docSnap.Ref.ID))
		}
		result = append(result, doc.toModel())
	}

	// Sorting client-side avoids a composite index on (TenantID, CreatedAt)
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

	saved := wb.Clone()
	saved.UpdatedAt = time.Now().UTC()
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = saved.UpdatedAt
	}

	_, err := r.client.Collection(r.collection()).
		Doc(r.docID(wb.TenantID, wb.ID)).
		Set(ctx, toWorkboardDoc(saved))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save workboard",
			goerr.V("tenant_id", wb.TenantID), goerr.V("workboard_id", wb.ID))
	}

	return saved, nil
}

func (r *workboardRepository) Delete(ctx context.Context, tenantID types.TenantID, id string) error {
	docRef := r.client.Collection(r.collection()).Doc(r.docID(tenantID, id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(model.ErrWorkboardNotFound, "no such workboard",
				goerr.V("tenant_id", tenantID), goerr.V("workboard_id", id))
		}
		return goerr.Wrap(err, "failed to get workboard before delete",
			goerr.V("tenant_id", tenantID), goerr.V("workboard_id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete workboard",
			goerr.V("tenant_id", tenantID), goerr.V("workboard_id", id))
	}

	return nil
}
