package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pipehq/workboard/pkg/domain/interfaces"
	"github.com/pipehq/workboard/pkg/domain/model"
	"github.com/pipehq/workboard/pkg/domain/model/config"
	"github.com/pipehq/workboard/pkg/domain/types"
	"github.com/pipehq/workboard/pkg/utils/async"
	"github.com/pipehq/workboard/pkg/utils/logging"
)

type EditUseCase struct {
	repo  interfaces.Repository
	cfg   *config.WorkboardConfig
	nowFn func() time.Time
}

func NewEditUseCase(repo interfaces.Repository, cfg *config.WorkboardConfig, nowFn func() time.Time) *EditUseCase {
	return &EditUseCase{
		repo:  repo,
		cfg:   cfg,
		nowFn: nowFn,
	}
}

// ApplyEdit writes a single cell through the edit gate and returns the
// refreshed record with the view's formula columns re-derived, so the grid
// can reconcile its optimistic value. A failed write propagates and the
// caller rolls the cell back.
func (uc *EditUseCase) ApplyEdit(ctx context.Context, tenantID types.TenantID, workboardID, recordID, field string, value any) (model.DataRow, error) {
	wb, err := uc.repo.Workboard().Get(ctx, tenantID, workboardID)
	if err != nil {
		return nil, err
	}

	entry, ok := model.LookupField(wb.EntityType, field)
	if !ok {
		return nil, goerr.Wrap(model.ErrFieldNotEditable, "unknown field",
			goerr.V("field", field),
			goerr.V("entity_type", wb.EntityType))
	}
	if entry.Kind == types.ColumnKindFormula {
		return nil, goerr.Wrap(model.ErrFormulaFieldReadOnly, "cannot edit a derived column",
			goerr.V("field", field))
	}
	if !uc.cfg.IsEditable(field) {
		return nil, goerr.Wrap(model.ErrFieldNotEditable, "field is outside the inline-edit allow-list",
			goerr.V("field", field))
	}

	coerced, err := coerceEditValue(entry.Format, value)
	if err != nil {
		return nil, err
	}

	updated, err := uc.repo.Entity().UpdateField(ctx, wb.EntityType, tenantID, recordID, field, coerced)
	if err != nil {
		return nil, goerr.Wrap(model.ErrStoreUnavailable, "failed to write cell",
			goerr.V("record_id", recordID),
			goerr.V("field", field),
			goerr.V("cause", err))
	}

	model.AttachFormulas([]model.DataRow{updated}, wb.FormulaColumns(), &uc.cfg.SLA, uc.nowFn())

	async.Dispatch(ctx, func(ctx context.Context) error {
		logging.From(ctx).Info("cell edited",
			"tenant_id", tenantID,
			"entity_type", wb.EntityType,
			"record_id", recordID,
			"field", field)
		return nil
	})

	return updated, nil
}

// coerceEditValue normalizes the inbound value per the column's format.
// Currency and number columns store float64; other editable columns store the
// value as a string.
func coerceEditValue(format types.ValueFormat, value any) (any, error) {
	if format.IsNumeric() {
		n, ok := model.NumberValue(value)
		if !ok {
			return nil, goerr.New("value is not numeric", goerr.V("value", value))
		}
		return n, nil
	}

	switch v := value.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}
