package types

import "fmt"

// FormulaType represents a derived field computed at query time
type FormulaType string

const (
	FormulaSpinScore        FormulaType = "spin_score"
	FormulaDaysInStage      FormulaType = "days_in_stage"
	FormulaSLABreach        FormulaType = "sla_breach"
	FormulaLastActivityDays FormulaType = "last_activity_days"
)

// AllFormulaTypes returns all valid formula types
func AllFormulaTypes() []FormulaType {
	return []FormulaType{
		FormulaSpinScore,
		FormulaDaysInStage,
		FormulaSLABreach,
		FormulaLastActivityDays,
	}
}

// IsValid checks if the formula type is valid
func (f FormulaType) IsValid() bool {
	switch f {
	case FormulaSpinScore,
		FormulaDaysInStage,
		FormulaSLABreach,
		FormulaLastActivityDays:
		return true
	default:
		return false
	}
}

// Format returns the value format a formula renders as
func (f FormulaType) Format() ValueFormat {
	switch f {
	case FormulaSLABreach:
		return ValueFormatBoolean
	default:
		return ValueFormatNumber
	}
}

// String returns the string representation of the formula type
func (f FormulaType) String() string {
	return string(f)
}

// ParseFormulaType parses a string into a FormulaType
func ParseFormulaType(s string) (FormulaType, error) {
	ft := FormulaType(s)
	if !ft.IsValid() {
		return "", fmt.Errorf("invalid formula type: %s", s)
	}
	return ft, nil
}
