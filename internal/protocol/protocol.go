package protocol

import (
	"encoding/json"
)

// Inbound event names (client -> server).
const (
	MsgPlayerMovement = "playerMovement"
	MsgPlayerAttack   = "playerAttack"
	MsgBuildingDamage = "buildingDamage"
	MsgDamageBuilding = "damageBuilding" // legacy alias, payload may be a bare id
	MsgItemPickup     = "itemPickup"
	MsgEquipItem      = "equipItem"
	MsgPlayerRespawn  = "playerRespawn"
)

// Outbound event names (server -> client).
const (
	MsgCurrentPlayers         = "currentPlayers"
	MsgWorldData              = "worldData"
	MsgNewPlayer              = "newPlayer"
	MsgPlayerMoved            = "playerMoved"
	MsgPlayerDisconnected     = "playerDisconnected"
	MsgBuildingDamaged        = "buildingDamaged"
	MsgPlayerDamaged          = "playerDamaged"
	MsgHealthUpdate           = "healthUpdate"
	MsgPlayerDied             = "playerDied"
	MsgPlayerRespawned        = "playerRespawned"
	MsgPlayerEquipmentChanged = "playerEquipmentChanged"
	MsgItemPickedUp           = "itemPickedUp"
	MsgInventoryUpdate        = "inventoryUpdate"
)

// Envelope is the framing for every message in both directions: an event
// name plus the raw payload bytes for that event.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p,omitempty"`
}

// Vec3 is a position or rotation triple. 2D clients leave Z at zero.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}
