package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-realm/internal/world"
)

type WorldConfig struct {
	// Spawn is where new and respawning players are placed.
	Spawn SpawnConfig `json:"spawn"`
}

type SpawnConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (c *WorldConfig) validate() error {
	el := errors.NewErrorList()

	if y := c.Spawn.Y; y < 0 {
		el.Add(fmt.Errorf("spawn y must not be below ground level"))
	}

	return el.Err()
}

func (c *WorldConfig) spawn() world.Vec3 {
	return world.Vec3{X: c.Spawn.X, Y: c.Spawn.Y, Z: c.Spawn.Z}
}
