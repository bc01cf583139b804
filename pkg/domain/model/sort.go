package model

import (
	"sort"
	"strings"

	"github.com/pipehq/workboard/pkg/domain/types"
)

// CompareRows returns -1, 0 or 1 ordering a against b on one field. String
// fields compare case-insensitively with missing values as empty string;
// numeric, date, boolean and formula fields compare numerically with missing
// values as 0.
func CompareRows(a, b DataRow, field string, format types.ValueFormat, direction types.SortDirection) int {
	var result int
	if format.IsNumeric() || format == types.ValueFormatBoolean {
		result = compareOrdered(sortNumber(a[field]), sortNumber(b[field]))
	} else {
		result = strings.Compare(foldString(orEmpty(a[field])), foldString(orEmpty(b[field])))
	}

	if direction == types.SortDescending {
		result = -result
	}
	return result
}

// SortRows orders rows in place by one field. The sort is stable: ties keep
// their prior relative order, which matters for low-cardinality formula
// values like sla_breach.
func SortRows(rows []DataRow, field string, format types.ValueFormat, direction types.SortDirection) {
	sort.SliceStable(rows, func(i, j int) bool {
		return CompareRows(rows[i], rows[j], field, format, direction) < 0
	})
}

func compareOrdered(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func sortNumber(v any) float64 {
	if n, ok := toNumber(v); ok {
		return n
	}
	return 0
}

func orEmpty(v any) any {
	if v == nil {
		return ""
	}
	return v
}
