package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pipehq/workboard/pkg/domain/interfaces"
	"github.com/pipehq/workboard/pkg/domain/model"
	"github.com/pipehq/workboard/pkg/domain/types"
)

type ViewUseCase struct {
	repo interfaces.Repository
}

func NewViewUseCase(repo interfaces.Repository) *ViewUseCase {
	return &ViewUseCase{repo: repo}
}

// ListWorkboards returns the tenant's views for an entity type with the
// default view first. The default is materialized on first access so every
// tenant always has at least one view per entity type.
func (uc *ViewUseCase) ListWorkboards(ctx context.Context, tenantID types.TenantID, entityType types.EntityType) ([]*model.Workboard, error) {
	def, err := uc.ensureDefault(ctx, tenantID, entityType)
	if err != nil {
		return nil, err
	}

	boards, err := uc.repo.Workboard().List(ctx, tenantID, interfaces.WithEntityType(entityType))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list workboards", goerr.V("entity_type", entityType))
	}

	ordered := make([]*model.Workboard, 0, len(boards))
	ordered = append(ordered, def)
	for _, wb := range boards {
		if wb.ID != def.ID {
			ordered = append(ordered, wb)
		}
	}
	return ordered, nil
}

// GetWorkboard retrieves one view by ID
func (uc *ViewUseCase) GetWorkboard(ctx context.Context, tenantID types.TenantID, id string) (*model.Workboard, error) {
	return uc.repo.Workboard().Get(ctx, tenantID, id)
}

// CreateWorkboard persists a new custom view. An empty column set falls back
// to the entity type's default columns so a fresh view is never blank.
func (uc *ViewUseCase) CreateWorkboard(ctx context.Context, tenantID types.TenantID, entityType types.EntityType, name string, columns []model.WorkboardColumn, filters []model.WorkboardFilter) (*model.Workboard, error) {
	if name == "" {
		return nil, goerr.New("workboard name is required")
	}

	if len(columns) == 0 {
		columns = model.DefaultWorkboard(tenantID, entityType).Columns
	}

	wb := &model.Workboard{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		Name:       name,
		EntityType: entityType,
		Columns:    columns,
		Filters:    filters,
	}
	if err := wb.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.repo.Workboard().Put(ctx, wb)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create workboard", goerr.V("name", name))
	}
	return created, nil
}

// SaveView replaces the column and filter configuration of a custom view.
// Column order in the request is the display order. The default view rejects
// structural saves.
func (uc *ViewUseCase) SaveView(ctx context.Context, tenantID types.TenantID, id, name string, columns []model.WorkboardColumn, filters []model.WorkboardFilter) (*model.Workboard, error) {
	existing, err := uc.repo.Workboard().Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if existing.IsDefault {
		return nil, goerr.Wrap(model.ErrDefaultViewImmutable, "cannot save the default view", goerr.V("workboard_id", id))
	}

	wb := existing.Clone()
	if name != "" {
		wb.Name = name
	}
	wb.Columns = columns
	wb.Filters = filters
	if err := wb.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Workboard().Put(ctx, wb)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save workboard", goerr.V("workboard_id", id))
	}
	return updated, nil
}

// DeleteWorkboard removes a custom view. The default view cannot be deleted.
func (uc *ViewUseCase) DeleteWorkboard(ctx context.Context, tenantID types.TenantID, id string) error {
	existing, err := uc.repo.Workboard().Get(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if existing.IsDefault {
		return goerr.Wrap(model.ErrDefaultViewImmutable, "cannot delete the default view", goerr.V("workboard_id", id))
	}
	return uc.repo.Workboard().Delete(ctx, tenantID, id)
}

// AddColumn appends a registry field to a custom view's column set. Fields
// already displayed are ignored.
func (uc *ViewUseCase) AddColumn(ctx context.Context, tenantID types.TenantID, id, field string) (*model.Workboard, error) {
	return uc.modifyView(ctx, tenantID, id, func(wb *model.Workboard, d *model.Draft) error {
		entry, ok := model.LookupField(wb.EntityType, field)
		if !ok {
			return goerr.Wrap(model.ErrUnknownField, "cannot add column", goerr.V("field", field), goerr.V("entity_type", wb.EntityType))
		}
		d.AddColumn(entry)
		return nil
	})
}

// RemoveColumn drops a field from a custom view's column set
func (uc *ViewUseCase) RemoveColumn(ctx context.Context, tenantID types.TenantID, id, field string) (*model.Workboard, error) {
	return uc.modifyView(ctx, tenantID, id, func(_ *model.Workboard, d *model.Draft) error {
		d.RemoveColumn(field)
		return nil
	})
}

// MoveColumn swaps the column at index with its neighbor. Only adjacent moves
// are supported; a move at the edge is a no-op.
func (uc *ViewUseCase) MoveColumn(ctx context.Context, tenantID types.TenantID, id string, index int, up bool) (*model.Workboard, error) {
	return uc.modifyView(ctx, tenantID, id, func(_ *model.Workboard, d *model.Draft) error {
		if up {
			d.MoveColumnUp(index)
		} else {
			d.MoveColumnDown(index)
		}
		return nil
	})
}

// AddFilter validates and appends a filter condition to a custom view
func (uc *ViewUseCase) AddFilter(ctx context.Context, tenantID types.TenantID, id string, f model.WorkboardFilter) (*model.Workboard, error) {
	return uc.modifyView(ctx, tenantID, id, func(_ *model.Workboard, d *model.Draft) error {
		return d.AddFilter(f)
	})
}

// RemoveFilter drops the filter condition at index from a custom view
func (uc *ViewUseCase) RemoveFilter(ctx context.Context, tenantID types.TenantID, id string, index int) (*model.Workboard, error) {
	return uc.modifyView(ctx, tenantID, id, func(_ *model.Workboard, d *model.Draft) error {
		d.RemoveFilter(index)
		return nil
	})
}

// modifyView loads a view into a draft, applies fn, and persists the result.
// The default view rejects structural changes.
func (uc *ViewUseCase) modifyView(ctx context.Context, tenantID types.TenantID, id string, fn func(*model.Workboard, *model.Draft) error) (*model.Workboard, error) {
	existing, err := uc.repo.Workboard().Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if existing.IsDefault {
		return nil, goerr.Wrap(model.ErrDefaultViewImmutable, "cannot modify the default view", goerr.V("workboard_id", id))
	}

	draft := model.NewDraft(existing)
	if err := fn(existing, draft); err != nil {
		return nil, err
	}

	wb := existing.Clone()
	wb.Columns = draft.Columns()
	wb.Filters = draft.Filters()
	if err := wb.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Workboard().Put(ctx, wb)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update workboard", goerr.V("workboard_id", id))
	}
	return updated, nil
}

// AvailableColumns returns the registry entries not yet displayed by a view
func (uc *ViewUseCase) AvailableColumns(ctx context.Context, tenantID types.TenantID, id string) ([]model.AvailableColumn, error) {
	wb, err := uc.repo.Workboard().Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return model.AvailableColumnsFor(wb.EntityType, wb.Columns), nil
}

// ColumnCatalog returns every registry entry for an entity type
func (uc *ViewUseCase) ColumnCatalog(entityType types.EntityType) []model.AvailableColumn {
	return model.FieldsFor(entityType)
}

// ValidateFilter checks a filter condition at authoring time: the field must
// exist in the registry, the operator must be legal for the field's value
// format, and the value must be coercible for numeric comparisons.
func (uc *ViewUseCase) ValidateFilter(entityType types.EntityType, f model.WorkboardFilter) error {
	return model.ValidateFilter(entityType, &f)
}

func (uc *ViewUseCase) ensureDefault(ctx context.Context, tenantID types.TenantID, entityType types.EntityType) (*model.Workboard, error) {
	def, err := uc.repo.Workboard().GetDefault(ctx, tenantID, entityType)
	if err == nil {
		return def, nil
	}
	if !errors.Is(err, model.ErrWorkboardNotFound) {
		return nil, goerr.Wrap(err, "failed to load default workboard", goerr.V("entity_type", entityType))
	}

	// Deterministic ID so concurrent first accesses overwrite the same
	// document instead of materializing duplicate defaults.
	wb := model.DefaultWorkboard(tenantID, entityType)
	wb.ID = "default-" + entityType.String()
	created, putErr := uc.repo.Workboard().Put(ctx, wb)
	if putErr != nil {
		return nil, goerr.Wrap(putErr, "failed to materialize default workboard", goerr.V("entity_type", entityType))
	}
	return created, nil
}
