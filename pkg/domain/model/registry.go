package model

import "github.com/pipehq/workboard/pkg/domain/types"

// AvailableColumn describes one field that can appear on a workboard for an
// entity type, as declared by the static field registry
type AvailableColumn struct {
	Field   string
	Label   string
	Kind    types.ColumnKind
	Format  types.ValueFormat
	Formula types.FormulaType // set iff Kind == formula
}

// Column converts a registry entry into a workboard column with the given
// rendering width
func (a AvailableColumn) Column(width int) WorkboardColumn {
	return WorkboardColumn{
		ID:      a.Field,
		Field:   a.Field,
		Label:   a.Label,
		Kind:    a.Kind,
		Formula: a.Formula,
		Format:  a.Format,
		Width:   width,
	}
}

func rawColumn(field, label string, format types.ValueFormat) AvailableColumn {
	return AvailableColumn{Field: field, Label: label, Kind: types.ColumnKindRaw, Format: format}
}

func formulaColumn(formula types.FormulaType, label string) AvailableColumn {
	return AvailableColumn{
		Field:   formula.String(),
		Label:   label,
		Kind:    types.ColumnKindFormula,
		Formula: formula,
		Format:  formula.Format(),
	}
}

// fieldCatalog is the static, entity-type-keyed registry of available fields.
// Cross-entity data such as company_name is denormalized into the row by the
// data source, which is why it appears here as a plain raw field.
var fieldCatalog = map[types.EntityType][]AvailableColumn{
	types.EntityTypeDeals: {
		rawColumn("name", "Deal Name", types.ValueFormatText),
		rawColumn("value", "Value", types.ValueFormatCurrency),
		rawColumn("stage", "Stage", types.ValueFormatEnum),
		rawColumn("description", "Description", types.ValueFormatText),
		rawColumn("company_name", "Company", types.ValueFormatText),
		rawColumn("owner", "Owner", types.ValueFormatText),
		rawColumn("probability", "Probability", types.ValueFormatNumber),
		rawColumn("expected_close_date", "Expected Close", types.ValueFormatDate),
		rawColumn("created_at", "Created", types.ValueFormatDate),
		formulaColumn(types.FormulaSpinScore, "SPIN Score"),
		formulaColumn(types.FormulaDaysInStage, "Days in Stage"),
		formulaColumn(types.FormulaSLABreach, "SLA Breach"),
		formulaColumn(types.FormulaLastActivityDays, "Last Activity"),
	},
	types.EntityTypeContacts: {
		rawColumn("name", "Name", types.ValueFormatText),
		rawColumn("email", "Email", types.ValueFormatText),
		rawColumn("phone", "Phone", types.ValueFormatText),
		rawColumn("title", "Title", types.ValueFormatText),
		rawColumn("company_name", "Company", types.ValueFormatText),
		rawColumn("lifecycle_stage", "Lifecycle Stage", types.ValueFormatEnum),
		rawColumn("description", "Notes", types.ValueFormatText),
		rawColumn("created_at", "Created", types.ValueFormatDate),
		formulaColumn(types.FormulaLastActivityDays, "Last Activity"),
	},
	types.EntityTypeCompanies: {
		rawColumn("name", "Company Name", types.ValueFormatText),
		rawColumn("domain", "Domain", types.ValueFormatText),
		rawColumn("industry", "Industry", types.ValueFormatEnum),
		rawColumn("employee_count", "Employees", types.ValueFormatNumber),
		rawColumn("annual_revenue", "Annual Revenue", types.ValueFormatCurrency),
		rawColumn("description", "Description", types.ValueFormatText),
		rawColumn("created_at", "Created", types.ValueFormatDate),
		formulaColumn(types.FormulaLastActivityDays, "Last Activity"),
	},
}

// defaultColumnFields lists the columns of the baseline system view per
// entity type, in rendering order
var defaultColumnFields = map[types.EntityType][]string{
	types.EntityTypeDeals: {
		"name", "value", "stage",
		types.FormulaDaysInStage.String(),
		types.FormulaSLABreach.String(),
		types.FormulaLastActivityDays.String(),
	},
	types.EntityTypeContacts: {
		"name", "email", "company_name",
		types.FormulaLastActivityDays.String(),
	},
	types.EntityTypeCompanies: {
		"name", "domain", "industry", "employee_count",
	},
}

// FieldsFor returns the static field catalog for an entity type. Pure lookup,
// no side effects.
func FieldsFor(entityType types.EntityType) []AvailableColumn {
	catalog := fieldCatalog[entityType]
	result := make([]AvailableColumn, len(catalog))
	copy(result, catalog)
	return result
}

// LookupField resolves one field in the registry of an entity type
func LookupField(entityType types.EntityType, field string) (AvailableColumn, bool) {
	for _, col := range fieldCatalog[entityType] {
		if col.Field == field {
			return col, true
		}
	}
	return AvailableColumn{}, false
}

// AvailableColumnsFor returns the registry entries not yet present in the
// view, for the column configurator's "add column" list
func AvailableColumnsFor(entityType types.EntityType, existing []WorkboardColumn) []AvailableColumn {
	present := make(map[string]bool, len(existing))
	for _, col := range existing {
		present[col.Field] = true
	}

	var result []AvailableColumn
	for _, col := range fieldCatalog[entityType] {
		if !present[col.Field] {
			result = append(result, col)
		}
	}
	return result
}

const defaultColumnWidth = 160

// DefaultWorkboard builds the baseline system view for an entity type. It is
// materialized on first access and is immutable with respect to structural
// saves.
func DefaultWorkboard(tenantID types.TenantID, entityType types.EntityType) *Workboard {
	var columns []WorkboardColumn
	for _, field := range defaultColumnFields[entityType] {
		if entry, ok := LookupField(entityType, field); ok {
			columns = append(columns, entry.Column(defaultColumnWidth))
		}
	}

	return &Workboard{
		TenantID:   tenantID,
		Name:       "All " + entityType.String(),
		EntityType: entityType,
		Columns:    columns,
		IsDefault:  true,
	}
}
