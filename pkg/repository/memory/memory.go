package memory

import (
	"github.com/pipehq/workboard/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	workboard *workboardRepository
	entity    *entityStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		workboard: newWorkboardRepository(),
		entity:    newEntityStore(),
	}
}

func (m *Memory) Workboard() interfaces.WorkboardRepository {
	return m.workboard
}

func (m *Memory) Entity() interfaces.EntityStore {
	return m.entity
}

func (m *Memory) Close() error {
	return nil
}
