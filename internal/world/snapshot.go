package world

import (
	"github.com/pixil98/go-realm/internal/protocol"
)

// Snapshot construction. Snapshots are deep copies: once built they cannot
// alias live state, so later mutations never leak into an encoded message.

func toVec3(v Vec3) protocol.Vec3 {
	return protocol.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

func snapshotPlayer(p *Player) protocol.PlayerSnapshot {
	equipment := make(map[string]string, len(p.Equipment))
	for slot, item := range p.Equipment {
		equipment[slot] = item
	}
	inventory := make([]string, len(p.Inventory))
	copy(inventory, p.Inventory)

	return protocol.PlayerSnapshot{
		ID:        p.ID,
		Position:  toVec3(p.Position),
		Rotation:  toVec3(p.Rotation),
		Health:    p.Health,
		Equipment: equipment,
		Inventory: inventory,
	}
}

// PlayersSnapshot returns every live player keyed by id, including the
// requester when called during a join.
func (s *State) PlayersSnapshot() protocol.CurrentPlayers {
	players := make(map[string]protocol.PlayerSnapshot, len(s.players))
	for id, p := range s.players {
		players[id] = snapshotPlayer(p)
	}
	return protocol.CurrentPlayers{Players: players}
}

// WorldSnapshot returns the static entity families: all buildings
// (destroyed ones included), monsters, and the items still on the ground.
func (s *State) WorldSnapshot() protocol.WorldData {
	buildings := make([]protocol.BuildingSnapshot, 0, len(s.buildings))
	for _, b := range s.buildings {
		buildings = append(buildings, protocol.BuildingSnapshot{
			ID:    b.ID,
			Kind:  b.Kind,
			X:     b.X,
			Y:     b.Y,
			State: int(b.State),
		})
	}

	monsters := make([]protocol.MonsterSnapshot, 0, len(s.monsters))
	for _, m := range s.monsters {
		monsters = append(monsters, protocol.MonsterSnapshot{ID: m.ID, Kind: m.Kind, X: m.X, Y: m.Y})
	}

	items := make([]protocol.ItemSnapshot, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, protocol.ItemSnapshot{ID: it.ID, Kind: it.Kind, X: it.X, Y: it.Y})
	}

	return protocol.WorldData{Buildings: buildings, Monsters: monsters, Items: items}
}
