package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pipehq/workboard/pkg/domain/types"
)

// ValidateFilter checks a filter against the field registry at authoring
// time: field existence, operator legality and value coercibility. Evaluation
// assumes pre-validated filters.
func ValidateFilter(entityType types.EntityType, f *WorkboardFilter) error {
	entry, ok := LookupField(entityType, f.Field)
	if !ok {
		return goerr.New("unknown filter field",
			goerr.V("entity_type", entityType), goerr.V("field", f.Field))
	}

	format := entry.Format
	if entry.Kind == types.ColumnKindFormula {
		format = entry.Formula.Format()
	}

	if !f.Operator.ValidFor(format) {
		return goerr.Wrap(ErrInvalidFilterOperator, "operator not in legal set",
			goerr.V("field", f.Field),
			goerr.V("operator", f.Operator),
			goerr.V("format", format))
	}

	if f.Operator.IgnoresValue() {
		return nil
	}

	if f.Operator.NeedsArray() {
		if _, ok := valueList(f.Value); !ok {
			return goerr.New("operator requires an array value",
				goerr.V("field", f.Field), goerr.V("operator", f.Operator))
		}
		return nil
	}

	if format.IsNumeric() {
		if _, ok := toNumber(f.Value); !ok {
			return goerr.New("filter value is not comparable as a number",
				goerr.V("field", f.Field), goerr.V("value", f.Value))
		}
	}

	return nil
}

// Matches reports whether the row satisfies the filter. Missing fields are
// treated as null.
func (f *WorkboardFilter) Matches(row DataRow) bool {
	value, exists := row[f.Field]
	isNull := !exists || value == nil

	switch f.Operator {
	case types.OperatorIsNull:
		return isNull
	case types.OperatorIsNotNull:
		return !isNull
	}

	if isNull {
		return false
	}

	switch f.Operator {
	case types.OperatorEq:
		return equalValues(value, f.Value)
	case types.OperatorNeq:
		return !equalValues(value, f.Value)

	case types.OperatorContains:
		return containsFold(value, f.Value)
	case types.OperatorNotContains:
		return !containsFold(value, f.Value)
	case types.OperatorStartsWith:
		return strings.HasPrefix(foldString(value), foldString(f.Value))
	case types.OperatorEndsWith:
		return strings.HasSuffix(foldString(value), foldString(f.Value))

	case types.OperatorGt:
		return compareNumbers(value, f.Value, func(a, b float64) bool { return a > b })
	case types.OperatorGte:
		return compareNumbers(value, f.Value, func(a, b float64) bool { return a >= b })
	case types.OperatorLt:
		return compareNumbers(value, f.Value, func(a, b float64) bool { return a < b })
	case types.OperatorLte:
		return compareNumbers(value, f.Value, func(a, b float64) bool { return a <= b })

	case types.OperatorIn:
		return memberOf(value, f.Value)
	case types.OperatorNotIn:
		return !memberOf(value, f.Value)

	default:
		return false
	}
}

// MatchesAll reports whether the row satisfies every filter (logical AND)
func MatchesAll(row DataRow, filters []WorkboardFilter) bool {
	for i := range filters {
		if !filters[i].Matches(row) {
			return false
		}
	}
	return true
}

// equalValues compares two scalars: numerically when both sides coerce to a
// number, otherwise as exact case-sensitive strings. Text eq/neq stays
// case-sensitive even though the substring operators fold case.
func equalValues(a, b any) bool {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as == bs
		}
	}
	na, aok := toNumber(a)
	nb, bok := toNumber(b)
	if aok && bok {
		return na == nb
	}
	return stringify(a) == stringify(b)
}

func containsFold(value, needle any) bool {
	return strings.Contains(foldString(value), foldString(needle))
}

func compareNumbers(a, b any, cmp func(a, b float64) bool) bool {
	na, aok := toNumber(a)
	nb, bok := toNumber(b)
	if !aok || !bok {
		return false
	}
	return cmp(na, nb)
}

func memberOf(value, list any) bool {
	members, ok := valueList(list)
	if !ok {
		return false
	}
	needle := stringify(value)
	for _, m := range members {
		if m == needle {
			return true
		}
	}
	return false
}

// valueList normalizes an in/not_in filter value to a string slice. JSON
// decoding yields []any, persisted filters may carry []string.
func valueList(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		result := make([]string, len(list))
		for i, item := range list {
			result[i] = stringify(item)
		}
		return result, true
	default:
		return nil, false
	}
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func foldString(v any) string {
	return strings.ToLower(stringify(v))
}

// NumberValue coerces a scalar to float64 the same way filter comparisons do.
// The edit path uses it to normalize currency and number writes.
func NumberValue(v any) (float64, bool) {
	return toNumber(v)
}

// StringValues coerces a list value to []string the same way membership
// operators do, stringifying numeric and boolean members.
func StringValues(v any) ([]string, bool) {
	return valueList(v)
}

// toNumber coerces a scalar to float64 for comparison. Dates compare as epoch
// milliseconds.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case time.Time:
		if n.IsZero() {
			return 0, false
		}
		return float64(n.UnixMilli()), true
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, true
		}
		if t, err := time.Parse(time.RFC3339, n); err == nil {
			return float64(t.UnixMilli()), true
		}
		return 0, false
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
