package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/pipehq/workboard/pkg/domain/types"
)

// Draft accumulates column and filter changes in the configurator before an
// explicit save. Commit happens only through the view use case; discarding a
// draft is dropping the value.
type Draft struct {
	entityType types.EntityType
	columns    []WorkboardColumn
	filters    []WorkboardFilter
}

// NewDraft starts a draft from the current state of a workboard
func NewDraft(w *Workboard) *Draft {
	copied := w.Clone()
	return &Draft{
		entityType: w.EntityType,
		columns:    copied.Columns,
		filters:    copied.Filters,
	}
}

// AddColumn appends a registry entry to the draft column set. Columns already
// present are ignored.
func (d *Draft) AddColumn(entry AvailableColumn) {
	for _, col := range d.columns {
		if col.Field == entry.Field {
			return
		}
	}
	d.columns = append(d.columns, entry.Column(defaultColumnWidth))
}

// RemoveColumn drops the column for a field, preserving order of the rest
func (d *Draft) RemoveColumn(field string) {
	for i, col := range d.columns {
		if col.Field == field {
			d.columns = append(d.columns[:i], d.columns[i+1:]...)
			return
		}
	}
}

// MoveColumnUp swaps the column at index with its predecessor. Only adjacent
// moves are supported by the configurator.
func (d *Draft) MoveColumnUp(index int) bool {
	if index <= 0 || index >= len(d.columns) {
		return false
	}
	d.columns[index-1], d.columns[index] = d.columns[index], d.columns[index-1]
	return true
}

// MoveColumnDown swaps the column at index with its successor
func (d *Draft) MoveColumnDown(index int) bool {
	if index < 0 || index >= len(d.columns)-1 {
		return false
	}
	d.columns[index], d.columns[index+1] = d.columns[index+1], d.columns[index]
	return true
}

// AddFilter validates and appends a filter. Operator legality is surfaced
// here, at authoring time, not at evaluation time.
func (d *Draft) AddFilter(f WorkboardFilter) error {
	if err := ValidateFilter(d.entityType, &f); err != nil {
		return goerr.Wrap(err, "filter rejected")
	}
	d.filters = append(d.filters, f)
	return nil
}

// RemoveFilter drops the filter at index
func (d *Draft) RemoveFilter(index int) {
	if index < 0 || index >= len(d.filters) {
		return
	}
	d.filters = append(d.filters[:index], d.filters[index+1:]...)
}

// AvailableColumns returns the registry entries not yet in the draft
func (d *Draft) AvailableColumns() []AvailableColumn {
	return AvailableColumnsFor(d.entityType, d.columns)
}

// Columns returns a copy of the draft column set
func (d *Draft) Columns() []WorkboardColumn {
	result := make([]WorkboardColumn, len(d.columns))
	copy(result, d.columns)
	return result
}

// Filters returns a copy of the draft filter set
func (d *Draft) Filters() []WorkboardFilter {
	result := make([]WorkboardFilter, len(d.filters))
	copy(result, d.filters)
	return result
}
