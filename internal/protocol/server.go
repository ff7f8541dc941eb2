package protocol

// Outbound payloads. Snapshot types are wire copies of world entities;
// sessions never see world state directly.

type PlayerSnapshot struct {
	ID        string            `json:"id"`
	Position  Vec3              `json:"position"`
	Rotation  Vec3              `json:"rotation"`
	Health    int               `json:"health"`
	Equipment map[string]string `json:"equipment"`
	Inventory []string          `json:"inventory"`
}

type BuildingSnapshot struct {
	ID    string  `json:"id"`
	Kind  string  `json:"kind"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	State int     `json:"state" jsonschema:"description=Damage ordinal: 0 full 1 damaged 2 destroyed"`
}

type MonsterSnapshot struct {
	ID   string  `json:"id"`
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type ItemSnapshot struct {
	ID   string  `json:"id"`
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// CurrentPlayers is sent to a joining connection only and includes the
// joiner's own record.
type CurrentPlayers struct {
	Players map[string]PlayerSnapshot `json:"players"`
}

// WorldData is sent to a joining connection only. Destroyed buildings stay
// listed so late joiners render them correctly.
type WorldData struct {
	Buildings []BuildingSnapshot `json:"buildings"`
	Monsters  []MonsterSnapshot  `json:"monsters"`
	Items     []ItemSnapshot     `json:"items"`
}

type NewPlayer struct {
	Player PlayerSnapshot `json:"player"`
}

type PlayerMoved struct {
	ID       string `json:"id"`
	Position Vec3   `json:"position"`
	Rotation Vec3   `json:"rotation"`
}

type PlayerDisconnected struct {
	ID string `json:"id"`
}

type BuildingDamaged struct {
	ID    string `json:"id"`
	State int    `json:"state"`
}

type PlayerDamaged struct {
	PlayerID string `json:"playerId"`
	Health   int    `json:"health"`
}

// HealthUpdate is echoed to the damaged player only.
type HealthUpdate struct {
	Health int `json:"health"`
}

type PlayerDied struct {
	PlayerID string `json:"playerId"`
}

// PlayerRespawned carries the fully reset record. It always follows a
// PlayerDied in the same handler invocation; there is no observable dead
// interval.
type PlayerRespawned struct {
	Player PlayerSnapshot `json:"player"`
}

type PlayerEquipmentChanged struct {
	PlayerID  string            `json:"playerId"`
	Equipment map[string]string `json:"equipment"`
}

type ItemPickedUp struct {
	PlayerID string `json:"playerId"`
	ItemID   string `json:"itemId"`
}

// InventoryUpdate is sent to the picking player only.
type InventoryUpdate struct {
	Inventory []string `json:"inventory"`
}
