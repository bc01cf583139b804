package types

// FilterOperator represents a filter predicate operator
type FilterOperator string

const (
	// Text operators. Note: eq/neq on text are exact, case-sensitive matches,
	// while the substring family is case-insensitive. Saved views depend on
	// both behaviors, so the asymmetry is intentional.
	OperatorEq          FilterOperator = "eq"
	OperatorNeq         FilterOperator = "neq"
	OperatorContains    FilterOperator = "contains"
	OperatorNotContains FilterOperator = "not_contains"
	OperatorStartsWith  FilterOperator = "starts_with"
	OperatorEndsWith    FilterOperator = "ends_with"
	OperatorIsNull      FilterOperator = "is_null"
	OperatorIsNotNull   FilterOperator = "is_not_null"

	// Numeric operators, shared by number, currency and date formats
	OperatorGt  FilterOperator = "gt"
	OperatorGte FilterOperator = "gte"
	OperatorLt  FilterOperator = "lt"
	OperatorLte FilterOperator = "lte"

	// Enum membership operators
	OperatorIn    FilterOperator = "in"
	OperatorNotIn FilterOperator = "not_in"
)

// OperatorsFor returns the legal operator set for a value format
func OperatorsFor(format ValueFormat) []FilterOperator {
	switch format {
	case ValueFormatText:
		return []FilterOperator{
			OperatorEq,
			OperatorNeq,
			OperatorContains,
			OperatorNotContains,
			OperatorStartsWith,
			OperatorEndsWith,
			OperatorIsNull,
			OperatorIsNotNull,
		}
	case ValueFormatNumber, ValueFormatCurrency, ValueFormatDate:
		return []FilterOperator{
			OperatorEq,
			OperatorNeq,
			OperatorGt,
			OperatorGte,
			OperatorLt,
			OperatorLte,
		}
	case ValueFormatEnum:
		return []FilterOperator{
			OperatorEq,
			OperatorNeq,
			OperatorIn,
			OperatorNotIn,
		}
	case ValueFormatBoolean:
		return []FilterOperator{
			OperatorEq,
			OperatorNeq,
		}
	default:
		return nil
	}
}

// ValidFor checks if the operator is legal for the given value format
func (o FilterOperator) ValidFor(format ValueFormat) bool {
	for _, op := range OperatorsFor(format) {
		if op == o {
			return true
		}
	}
	return false
}

// NeedsArray reports whether the operator requires an array value
func (o FilterOperator) NeedsArray() bool {
	return o == OperatorIn || o == OperatorNotIn
}

// IgnoresValue reports whether the operator evaluates without a filter value
func (o FilterOperator) IgnoresValue() bool {
	return o == OperatorIsNull || o == OperatorIsNotNull
}

// String returns the string representation of the filter operator
func (o FilterOperator) String() string {
	return string(o)
}
