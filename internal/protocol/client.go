package protocol

import (
	"encoding/json"
	"fmt"
)

// Inbound payloads. The server trusts positions, damage amounts, and
// equipment contents as sent; only shape and required fields are checked.

type PlayerMovement struct {
	// Position is a pointer so a payload that omits it is distinguishable
	// from one moving to the origin.
	Position *Vec3 `json:"position" jsonschema:"description=New absolute position,required"`
	Rotation Vec3  `json:"rotation" jsonschema:"description=New rotation in radians"`
}

func (p PlayerMovement) Validate() error {
	if p.Position == nil {
		return fmt.Errorf("position is required")
	}
	return nil
}

type PlayerAttack struct {
	Target string `json:"target" jsonschema:"description=Id of the player being hit,required"`
	Damage int    `json:"damage" jsonschema:"description=Damage amount,minimum=1,required"`
}

func (p PlayerAttack) Validate() error {
	if p.Target == "" {
		return fmt.Errorf("target is required")
	}
	if p.Damage <= 0 {
		return fmt.Errorf("damage must be positive")
	}
	return nil
}

type BuildingDamage struct {
	BuildingID string `json:"buildingId" jsonschema:"description=Id of the building being hit,required"`
	Damage     int    `json:"damage,omitempty" jsonschema:"description=Advisory amount; buildings always advance one damage step per hit"`
}

func (b BuildingDamage) Validate() error {
	if b.BuildingID == "" {
		return fmt.Errorf("buildingId is required")
	}
	return nil
}

// DecodeBuildingTarget handles both damage event shapes: the structured
// buildingDamage payload and the legacy damageBuilding payload carrying a
// bare id string.
func DecodeBuildingTarget(env Envelope) (BuildingDamage, error) {
	var id string
	if json.Unmarshal(env.P, &id) == nil {
		bd := BuildingDamage{BuildingID: id}
		return bd, bd.Validate()
	}
	return DecodePayload[BuildingDamage](env)
}

type ItemPickup struct {
	ItemID string `json:"itemId" jsonschema:"description=Id of the ground item,required"`
}

func (i ItemPickup) Validate() error {
	if i.ItemID == "" {
		return fmt.Errorf("itemId is required")
	}
	return nil
}

type EquipItem struct {
	Equipment map[string]string `json:"equipment" jsonschema:"description=Full slot-to-item mapping; replaces the previous one,required"`
}

func (e EquipItem) Validate() error {
	if e.Equipment == nil {
		return fmt.Errorf("equipment is required")
	}
	return nil
}

// PlayerRespawn is a client acknowledgement after a death. The server has
// already reset the player, so the payload is informational only.
type PlayerRespawn struct {
	Position Vec3 `json:"position"`
	Health   int  `json:"health"`
}
