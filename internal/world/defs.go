package world

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-realm/internal/storage"
)

// Definitions holds the world layout stores loaded at process start. Asset
// ids become entity ids, so they are stable across restarts and never
// reused within a run.
type Definitions struct {
	Buildings storage.Storer[*BuildingSpec]
	Monsters  storage.Storer[*MonsterSpec]
	Items     storage.Storer[*ItemSpec]
}

type BuildingSpec struct {
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func (s *BuildingSpec) Validate() error {
	el := errors.NewErrorList()

	if s.Kind == "" {
		el.Add(fmt.Errorf("kind is required"))
	}

	return el.Err()
}

type MonsterSpec struct {
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func (s *MonsterSpec) Validate() error {
	el := errors.NewErrorList()

	if s.Kind == "" {
		el.Add(fmt.Errorf("kind is required"))
	}

	return el.Err()
}

type ItemSpec struct {
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func (s *ItemSpec) Validate() error {
	el := errors.NewErrorList()

	if s.Kind == "" {
		el.Add(fmt.Errorf("kind is required"))
	}

	return el.Err()
}
