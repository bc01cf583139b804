package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the workboard engine. All are local and recoverable:
// the UI surfaces them and the user retries or adjusts input.
var (
	// ErrInvalidFilterOperator is returned at filter-authoring time when the
	// operator is not legal for the field's value format
	ErrInvalidFilterOperator = goerr.New("operator is not legal for field")

	// ErrDefaultViewImmutable is returned when a structural save or delete
	// targets the default workboard of an entity type
	ErrDefaultViewImmutable = goerr.New("default workboard cannot be modified")

	// ErrFormulaFieldReadOnly is returned when a cell edit targets a
	// formula-typed column
	ErrFormulaFieldReadOnly = goerr.New("formula fields are read-only")

	// ErrFieldNotEditable is returned when a cell edit targets a raw field
	// outside the inline-edit allow-list
	ErrFieldNotEditable = goerr.New("field is not editable inline")

	// ErrUnknownField is returned when an operation names a field that is
	// not in the entity type's registry
	ErrUnknownField = goerr.New("field not in registry")

	// ErrWorkboardNotFound is returned when a workboard does not exist for
	// the tenant
	ErrWorkboardNotFound = goerr.New("workboard not found")

	// ErrStoreUnavailable is returned when a fetch or update against the
	// entity store fails
	ErrStoreUnavailable = goerr.New("entity store unavailable")
)
