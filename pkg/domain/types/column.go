package types

// ColumnKind distinguishes raw fields from computed formula fields
type ColumnKind string

const (
	ColumnKindRaw     ColumnKind = "raw"
	ColumnKindFormula ColumnKind = "formula"
)

// IsValid checks if the column kind is valid
func (k ColumnKind) IsValid() bool {
	switch k {
	case ColumnKindRaw, ColumnKindFormula:
		return true
	default:
		return false
	}
}

// String returns the string representation of the column kind
func (k ColumnKind) String() string {
	return string(k)
}

// ValueFormat represents the value format of a workboard field
type ValueFormat string

const (
	ValueFormatText     ValueFormat = "text"
	ValueFormatNumber   ValueFormat = "number"
	ValueFormatCurrency ValueFormat = "currency"
	ValueFormatDate     ValueFormat = "date"
	ValueFormatBoolean  ValueFormat = "boolean"
	ValueFormatEnum     ValueFormat = "enum"
)

// AllValueFormats returns all valid value formats
func AllValueFormats() []ValueFormat {
	return []ValueFormat{
		ValueFormatText,
		ValueFormatNumber,
		ValueFormatCurrency,
		ValueFormatDate,
		ValueFormatBoolean,
		ValueFormatEnum,
	}
}

// IsValid checks if the value format is valid
func (f ValueFormat) IsValid() bool {
	switch f {
	case ValueFormatText,
		ValueFormatNumber,
		ValueFormatCurrency,
		ValueFormatDate,
		ValueFormatBoolean,
		ValueFormatEnum:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether values of this format are compared numerically.
// Dates are compared as epoch milliseconds.
func (f ValueFormat) IsNumeric() bool {
	switch f {
	case ValueFormatNumber, ValueFormatCurrency, ValueFormatDate:
		return true
	default:
		return false
	}
}

// String returns the string representation of the value format
func (f ValueFormat) String() string {
	return string(f)
}
