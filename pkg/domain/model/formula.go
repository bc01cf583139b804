package model

import (
	"time"

	"github.com/pipehq/workboard/pkg/domain/model/config"
	"github.com/pipehq/workboard/pkg/domain/types"
)

// NoActivitySentinel is surfaced by last_activity_days when no activity
// exists, instead of null, so sort and filter comparisons stay total-ordered.
// The UI renders it as "No activity".
const NoActivitySentinel = 999

// Raw attributes consumed by the formula contracts
const (
	attrSpinScore        = "spin_score"
	attrStage            = "stage"
	attrStageEnteredAt   = "stage_entered_at"
	attrLatestActivityAt = "latest_activity_at"
)

// ComputeFormula computes a derived value from the row's raw attributes and
// the injected instant. Deterministic for a fixed now, no I/O. A value that
// cannot be derived degrades to nil (or the activity sentinel), never an
// error, so one bad record cannot abort a page.
func ComputeFormula(formula types.FormulaType, row DataRow, sla *config.SLAConfig, now time.Time) any {
	switch formula {
	case types.FormulaSpinScore:
		// Pre-computed discovery-note completeness score; surfaced as-is
		if v, ok := toNumber(row[attrSpinScore]); ok {
			return v
		}
		return nil

	case types.FormulaDaysInStage:
		return float64(daysInStage(row, now))

	case types.FormulaSLABreach:
		stage, _ := row[attrStage].(string)
		threshold := sla.ThresholdFor(rowEntityType(row), stage)
		return daysInStage(row, now) > threshold

	case types.FormulaLastActivityDays:
		ts, ok := rowTime(row, attrLatestActivityAt)
		if !ok {
			return float64(NoActivitySentinel)
		}
		return float64(floorDays(now.Sub(ts)))

	default:
		return nil
	}
}

// AttachFormulas widens each row with the derived values of the given formula
// columns. Only columns actually displayed are computed.
func AttachFormulas(rows []DataRow, columns []WorkboardColumn, sla *config.SLAConfig, now time.Time) {
	for _, col := range columns {
		if col.Kind != types.ColumnKindFormula {
			continue
		}
		for _, row := range rows {
			row[col.Field] = ComputeFormula(col.Formula, row, sla, now)
		}
	}
}

// daysInStage returns floor((now - stage_entered_at) / 1 day), non-negative.
// An undefined stage-entry timestamp yields 0.
func daysInStage(row DataRow, now time.Time) int {
	ts, ok := rowTime(row, attrStageEnteredAt)
	if !ok {
		return 0
	}
	days := floorDays(now.Sub(ts))
	if days < 0 {
		return 0
	}
	return days
}

func floorDays(d time.Duration) int {
	return int(d / (24 * time.Hour))
}

// rowEntityType reads the entity type the data source stamped on the row.
// Absent stamps fall back to deals, the only entity type with stage SLAs in
// the reference configuration.
func rowEntityType(row DataRow) types.EntityType {
	if s, ok := row["entity_type"].(string); ok {
		if et := types.EntityType(s); et.IsValid() {
			return et
		}
	}
	return types.EntityTypeDeals
}

// rowTime reads a timestamp attribute, accepting the encodings the entity
// store backends produce
func rowTime(row DataRow, field string) (time.Time, bool) {
	switch v := row[field].(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case float64:
		if v == 0 {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(v)), true
	case int64:
		if v == 0 {
			return time.Time{}, false
		}
		return time.UnixMilli(v), true
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil || t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}
