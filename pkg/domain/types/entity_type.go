package types

import "fmt"

// TenantID identifies the tenant that owns a workboard or entity record
type TenantID string

// String returns the string representation of the tenant ID
func (t TenantID) String() string {
	return string(t)
}

// EntityType represents the CRM entity collection a workboard is built over
type EntityType string

const (
	EntityTypeDeals     EntityType = "deals"
	EntityTypeContacts  EntityType = "contacts"
	EntityTypeCompanies EntityType = "companies"
)

// AllEntityTypes returns all valid entity types
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityTypeDeals,
		EntityTypeContacts,
		EntityTypeCompanies,
	}
}

// IsValid checks if the entity type is valid
func (t EntityType) IsValid() bool {
	switch t {
	case EntityTypeDeals,
		EntityTypeContacts,
		EntityTypeCompanies:
		return true
	default:
		return false
	}
}

// String returns the string representation of the entity type
func (t EntityType) String() string {
	return string(t)
}

// ParseEntityType parses a string into an EntityType
func ParseEntityType(s string) (EntityType, error) {
	et := EntityType(s)
	if !et.IsValid() {
		return "", fmt.Errorf("invalid entity type: %s", s)
	}
	return et, nil
}
