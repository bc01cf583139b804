package interfaces

import "github.com/pipehq/workboard/pkg/domain/types"

// ListWorkboardOption is a functional option for narrowing List
type ListWorkboardOption func(*listWorkboardConfig)

type listWorkboardConfig struct {
	entityType *types.EntityType
}

// WithEntityType narrows the list to one entity type
func WithEntityType(entityType types.EntityType) ListWorkboardOption {
	return func(c *listWorkboardConfig) {
		c.entityType = &entityType
	}
}

// BuildListWorkboardConfig builds a listWorkboardConfig from options
func BuildListWorkboardConfig(opts ...ListWorkboardOption) *listWorkboardConfig {
	cfg := &listWorkboardConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// EntityType returns the entity type filter value, or nil if not set
func (c *listWorkboardConfig) EntityType() *types.EntityType {
	return c.entityType
}
