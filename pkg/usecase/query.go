package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pipehq/workboard/pkg/domain/interfaces"
	"github.com/pipehq/workboard/pkg/domain/model"
	"github.com/pipehq/workboard/pkg/domain/model/config"
	"github.com/pipehq/workboard/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

// formulaChunkSize bounds the per-goroutine slice during parallel formula
// derivation.
const formulaChunkSize = 256

type QueryUseCase struct {
	repo  interfaces.Repository
	cfg   *config.WorkboardConfig
	nowFn func() time.Time

	mu  sync.Mutex
	seq map[string]uint64
}

// QueryInput carries the page number and an optional transient sort override.
// The override is not persisted into the view definition.
type QueryInput struct {
	Page          int
	SortField     string
	SortDirection types.SortDirection
}

func NewQueryUseCase(repo interfaces.Repository, cfg *config.WorkboardConfig, nowFn func() time.Time) *QueryUseCase {
	return &QueryUseCase{
		repo:  repo,
		cfg:   cfg,
		nowFn: nowFn,
		seq:   make(map[string]uint64),
	}
}

// Query executes a workboard: fetch the raw record set, derive the formula
// columns of the view, apply the filters with AND semantics, sort, then slice
// the requested page. Total and HasMore reflect the filtered set before
// slicing.
func (uc *QueryUseCase) Query(ctx context.Context, tenantID types.TenantID, workboardID string, in QueryInput) (*model.Page, error) {
	wb, err := uc.repo.Workboard().Get(ctx, tenantID, workboardID)
	if err != nil {
		return nil, err
	}

	seq := uc.nextSeq(tenantID, workboardID)

	rows, err := uc.repo.Entity().FetchAll(ctx, wb.EntityType, tenantID)
	if err != nil {
		return nil, goerr.Wrap(model.ErrStoreUnavailable, "failed to fetch records",
			goerr.V("entity_type", wb.EntityType),
			goerr.V("cause", err))
	}

	if err := uc.attachFormulas(ctx, rows, wb.Columns); err != nil {
		return nil, err
	}

	filtered := make([]model.DataRow, 0, len(rows))
	for _, row := range rows {
		if model.MatchesAll(row, wb.Filters) {
			filtered = append(filtered, row)
		}
	}

	sortField := in.SortField
	direction := in.SortDirection
	if direction == "" {
		direction = types.SortAscending
	}
	if sortField != "" {
		entry, ok := model.LookupField(wb.EntityType, sortField)
		if !ok {
			return nil, goerr.Wrap(model.ErrUnknownField, "unknown sort field",
				goerr.V("field", sortField),
				goerr.V("entity_type", wb.EntityType))
		}
		sorted := make([]model.DataRow, len(filtered))
		copy(sorted, filtered)
		model.SortRows(sorted, sortField, entry.Format, direction)
		filtered = sorted
	}

	page := model.Paginate(filtered, in.Page)
	page.Seq = seq
	return &page, nil
}

// IsStale reports whether a newer query has since been issued for the same
// workboard. The caller discards superseded pages instead of rendering them.
func (uc *QueryUseCase) IsStale(tenantID types.TenantID, workboardID string, seq uint64) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return seq < uc.seq[seqKey(tenantID, workboardID)]
}

func (uc *QueryUseCase) nextSeq(tenantID types.TenantID, workboardID string) uint64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	key := seqKey(tenantID, workboardID)
	uc.seq[key]++
	return uc.seq[key]
}

func seqKey(tenantID types.TenantID, workboardID string) string {
	return string(tenantID) + "/" + workboardID
}

// attachFormulas derives the view's formula columns in place, chunked across
// goroutines. Chunks are disjoint so no row is written concurrently.
func (uc *QueryUseCase) attachFormulas(ctx context.Context, rows []model.DataRow, columns []model.WorkboardColumn) error {
	formulaCols := make([]model.WorkboardColumn, 0, len(columns))
	for _, col := range columns {
		if col.Kind == types.ColumnKindFormula {
			formulaCols = append(formulaCols, col)
		}
	}
	if len(formulaCols) == 0 || len(rows) == 0 {
		return nil
	}

	now := uc.nowFn()
	eg, _ := errgroup.WithContext(ctx)
	for start := 0; start < len(rows); start += formulaChunkSize {
		end := start + formulaChunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]
		eg.Go(func() error {
			model.AttachFormulas(chunk, formulaCols, &uc.cfg.SLA, now)
			return nil
		})
	}
	return eg.Wait()
}
