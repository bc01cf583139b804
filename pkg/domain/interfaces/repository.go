package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Workboard() WorkboardRepository
	Entity() EntityStore

	Close() error
}
