package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pipehq/workboard/pkg/domain/types"
)

// RowIDField is the DataRow key holding the entity record identifier
const RowIDField = "id"

// DataRow is a projection of one entity record: field name to scalar value,
// widened with formula results at query time. Rows are never persisted.
type DataRow map[string]any

// ID returns the entity record identifier of the row
func (r DataRow) ID() string {
	if id, ok := r[RowIDField].(string); ok {
		return id
	}
	return ""
}

// Clone returns a shallow copy of the row. Values are scalars, so a map copy
// is sufficient.
func (r DataRow) Clone() DataRow {
	copied := make(DataRow, len(r))
	for k, v := range r {
		copied[k] = v
	}
	return copied
}

// Workboard represents a named, persisted, user-configurable tabular view
// over one CRM entity type
type Workboard struct {
	ID         string
	TenantID   types.TenantID
	Name       string
	EntityType types.EntityType
	Columns    []WorkboardColumn
	Filters    []WorkboardFilter
	IsDefault  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// WorkboardColumn represents one displayed column. Column order is owned by
// the workboard and controls rendering order.
type WorkboardColumn struct {
	ID      string
	Field   string
	Label   string
	Kind    types.ColumnKind
	Formula types.FormulaType // set iff Kind == formula
	Format  types.ValueFormat
	Width   int
}

// ValueFormat resolves the effective format of the column. Formula columns
// render per the formula's own rule regardless of the declared format.
func (c *WorkboardColumn) ValueFormat() types.ValueFormat {
	if c.Kind == types.ColumnKindFormula {
		return c.Formula.Format()
	}
	return c.Format
}

// Validate checks the column against its declared kind
func (c *WorkboardColumn) Validate() error {
	if c.Field == "" {
		return goerr.New("column field is required")
	}
	switch c.Kind {
	case types.ColumnKindFormula:
		if !c.Formula.IsValid() {
			return goerr.New("formula column requires a formula type",
				goerr.V("field", c.Field))
		}
	case types.ColumnKindRaw:
		if !c.Format.IsValid() {
			return goerr.New("raw column requires a value format",
				goerr.V("field", c.Field))
		}
	default:
		return goerr.New("invalid column kind",
			goerr.V("field", c.Field), goerr.V("kind", c.Kind))
	}
	return nil
}

// WorkboardFilter represents one (field, operator, value) predicate. All
// filters on a workboard are AND-combined.
type WorkboardFilter struct {
	Field    string
	Operator types.FilterOperator
	Value    any // string | float64 | []string depending on operator
}

// Validate checks the workboard for structural consistency against the field
// registry of its entity type
func (w *Workboard) Validate() error {
	if w.Name == "" {
		return goerr.New("workboard name is required")
	}
	if !w.EntityType.IsValid() {
		return goerr.New("invalid entity type", goerr.V("entity_type", w.EntityType))
	}
	for i := range w.Columns {
		col := &w.Columns[i]
		if err := col.Validate(); err != nil {
			return goerr.Wrap(err, "invalid column", goerr.V("index", i))
		}
		if col.Kind == types.ColumnKindRaw {
			if _, ok := LookupField(w.EntityType, col.Field); !ok {
				return goerr.New("unknown raw field for entity type",
					goerr.V("entity_type", w.EntityType), goerr.V("field", col.Field))
			}
		}
	}
	for i := range w.Filters {
		if err := ValidateFilter(w.EntityType, &w.Filters[i]); err != nil {
			return goerr.Wrap(err, "invalid filter", goerr.V("index", i))
		}
	}
	return nil
}

// Clone returns a deep copy of the workboard
func (w *Workboard) Clone() *Workboard {
	copied := *w
	copied.Columns = make([]WorkboardColumn, len(w.Columns))
	copy(copied.Columns, w.Columns)
	copied.Filters = make([]WorkboardFilter, len(w.Filters))
	for i, f := range w.Filters {
		copied.Filters[i] = f
		if vs, ok := f.Value.([]string); ok {
			dup := make([]string, len(vs))
			copy(dup, vs)
			copied.Filters[i].Value = dup
		}
	}
	return &copied
}

// FormulaColumns returns the formula columns present in the view. Only these
// are computed at query time.
func (w *Workboard) FormulaColumns() []WorkboardColumn {
	var cols []WorkboardColumn
	for _, c := range w.Columns {
		if c.Kind == types.ColumnKindFormula {
			cols = append(cols, c)
		}
	}
	return cols
}
