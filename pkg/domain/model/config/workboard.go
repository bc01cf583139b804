package config

import "github.com/pipehq/workboard/pkg/domain/types"

// StageSLA configures the allotted days for one pipeline stage of an entity
// type
type StageSLA struct {
	EntityType types.EntityType
	Stage      string
	Days       int
}

// SLAConfig holds the stage SLA thresholds driving the sla_breach formula
type SLAConfig struct {
	DefaultDays int
	Stages      []StageSLA
}

// ThresholdFor returns the allotted days for a stage, falling back to the
// default threshold when the stage has no explicit entry
func (c *SLAConfig) ThresholdFor(entityType types.EntityType, stage string) int {
	for _, s := range c.Stages {
		if s.EntityType == entityType && s.Stage == stage {
			return s.Days
		}
	}
	return c.DefaultDays
}

// WorkboardConfig holds all workboard-related domain configuration
type WorkboardConfig struct {
	SLA            SLAConfig
	EditableFields []string
}

// IsEditable reports whether a raw field is in the inline-edit allow-list.
// Most raw fields require richer validation (stage transitions, email format)
// handled by dedicated entity-update flows, not grid edits.
func (c *WorkboardConfig) IsEditable(field string) bool {
	for _, f := range c.EditableFields {
		if f == field {
			return true
		}
	}
	return false
}

// Default returns the reference configuration: a 14 day SLA across all stages
// and the name/value/description allow-list
func Default() *WorkboardConfig {
	return &WorkboardConfig{
		SLA: SLAConfig{
			DefaultDays: 14,
		},
		EditableFields: []string{"name", "value", "description"},
	}
}
