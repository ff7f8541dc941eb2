package world

import (
	"github.com/pixil98/go-realm/internal/protocol"
)

// Hub commands. Sessions construct these from decoded envelopes and post
// them to the hub inbox; only the hub goroutine executes them.

// Join creates the player record for a new connection and delivers the
// snapshot to it. Reply always receives exactly one result.
type Join struct {
	PlayerID string
	Reply    chan<- JoinResult
}

type JoinResult struct {
	Err error
}

// Leave removes the player unconditionally. Posted on every session exit
// path, clean or not.
type Leave struct {
	PlayerID string
}

type Move struct {
	PlayerID string
	Payload  protocol.PlayerMovement
}

type Attack struct {
	PlayerID string
	Payload  protocol.PlayerAttack
}

type DamageBuilding struct {
	PlayerID string
	Payload  protocol.BuildingDamage
}

type PickupItem struct {
	PlayerID string
	Payload  protocol.ItemPickup
}

type Equip struct {
	PlayerID string
	Payload  protocol.EquipItem
}

type RespawnAck struct {
	PlayerID string
	Payload  protocol.PlayerRespawn
}

// Stats is a read-only probe used by the diagnostics endpoint.
type Stats struct {
	Reply chan<- Info
}

type Info struct {
	Players   []string
	Buildings int
	Monsters  int
	Items     int
}
