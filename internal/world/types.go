package world

// MaxHealth is the spawn health and the upper clamp for damage handling.
const MaxHealth = 100

type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Player is the authoritative record for one connected client. The id is
// the connection id; the record lives exactly as long as the connection.
type Player struct {
	ID        string
	Position  Vec3
	Rotation  Vec3
	Health    int
	Equipment map[string]string
	Inventory []string
}

func NewPlayer(id string, spawn Vec3) *Player {
	return &Player{
		ID:        id,
		Position:  spawn,
		Health:    MaxHealth,
		Equipment: map[string]string{},
		Inventory: []string{},
	}
}

// DamageState is a building's damage ordinal. It only ever advances.
type DamageState int

const (
	BuildingFull DamageState = iota
	BuildingDamaged
	BuildingDestroyed
)

func (s DamageState) String() string {
	switch s {
	case BuildingFull:
		return "full"
	case BuildingDamaged:
		return "damaged"
	case BuildingDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

func (s DamageState) Terminal() bool {
	return s >= BuildingDestroyed
}

// Advance moves the state one step toward destroyed. It reports false when
// the building was already destroyed, in which case nothing changed.
func (s *DamageState) Advance() bool {
	if s.Terminal() {
		return false
	}
	*s++
	return true
}

// Building records persist after destruction so late joiners see the ruin.
type Building struct {
	ID    string
	Kind  string
	X     float64
	Y     float64
	State DamageState
}

// Monster is decorative world dressing: placed at generation, never mutated.
type Monster struct {
	ID   string
	Kind string
	X    float64
	Y    float64
}

// GroundItem sits in the world until a player picks it up, at which point
// the record moves into that player's inventory.
type GroundItem struct {
	ID   string
	Kind string
	X    float64
	Y    float64
}
