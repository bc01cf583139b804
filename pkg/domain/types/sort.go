package types

// SortDirection represents the direction of a workboard sort
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// IsValid checks if the sort direction is valid
func (d SortDirection) IsValid() bool {
	return d == SortAscending || d == SortDescending
}

// Toggle returns the opposite direction. Selecting the same column twice
// reverses the sort.
func (d SortDirection) Toggle() SortDirection {
	if d == SortAscending {
		return SortDescending
	}
	return SortAscending
}

// String returns the string representation of the sort direction
func (d SortDirection) String() string {
	return string(d)
}
