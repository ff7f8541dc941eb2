package world

import (
	"fmt"
)

// State is the single source of truth for all mutable world state. It is
// deliberately lock-free: the hub goroutine is the only writer and the only
// reader after startup, which makes every mutation atomic by construction.
type State struct {
	spawn     Vec3
	players   map[string]*Player
	buildings map[string]*Building
	monsters  map[string]*Monster
	items     map[string]*GroundItem
}

func NewState(spawn Vec3) *State {
	return &State{
		spawn:     spawn,
		players:   make(map[string]*Player),
		buildings: make(map[string]*Building),
		monsters:  make(map[string]*Monster),
		items:     make(map[string]*GroundItem),
	}
}

// Populate instantiates world entities from the layout definitions.
func (s *State) Populate(defs *Definitions) error {
	for id, spec := range defs.Buildings.GetAll() {
		err := s.AddBuilding(&Building{ID: id, Kind: spec.Kind, X: spec.X, Y: spec.Y})
		if err != nil {
			return fmt.Errorf("building %q: %w", id, err)
		}
	}
	for id, spec := range defs.Monsters.GetAll() {
		err := s.AddMonster(&Monster{ID: id, Kind: spec.Kind, X: spec.X, Y: spec.Y})
		if err != nil {
			return fmt.Errorf("monster %q: %w", id, err)
		}
	}
	for id, spec := range defs.Items.GetAll() {
		err := s.AddItem(&GroundItem{ID: id, Kind: spec.Kind, X: spec.X, Y: spec.Y})
		if err != nil {
			return fmt.Errorf("item %q: %w", id, err)
		}
	}
	return nil
}

// Spawn is where new and respawning players are placed.
func (s *State) Spawn() Vec3 {
	return s.spawn
}

// AddPlayer creates a player record at the spawn point. The id is assigned
// by the caller and must be fresh; a duplicate is a session bug, not a
// recoverable condition.
func (s *State) AddPlayer(id string) (*Player, error) {
	if _, exists := s.players[id]; exists {
		return nil, ErrPlayerExists
	}

	p := NewPlayer(id, s.spawn)
	s.players[id] = p
	return p, nil
}

// Player returns the record for id, or nil. Callers treat nil as a stale
// reference and drop the triggering event.
func (s *State) Player(id string) *Player {
	return s.players[id]
}

// RemovePlayer deletes the record and reports whether it existed. Removing
// an absent player is not an error.
func (s *State) RemovePlayer(id string) bool {
	if _, exists := s.players[id]; !exists {
		return false
	}
	delete(s.players, id)
	return true
}

func (s *State) PlayerCount() int {
	return len(s.players)
}

// ForEachPlayer calls fn for every live player id. It satisfies the
// broadcaster's directory interface.
func (s *State) ForEachPlayer(fn func(id string)) {
	for id := range s.players {
		fn(id)
	}
}

func (s *State) AddBuilding(b *Building) error {
	if _, exists := s.buildings[b.ID]; exists {
		return ErrEntityExists
	}
	s.buildings[b.ID] = b
	return nil
}

func (s *State) Building(id string) *Building {
	return s.buildings[id]
}

func (s *State) AddMonster(m *Monster) error {
	if _, exists := s.monsters[m.ID]; exists {
		return ErrEntityExists
	}
	s.monsters[m.ID] = m
	return nil
}

func (s *State) AddItem(it *GroundItem) error {
	if _, exists := s.items[it.ID]; exists {
		return ErrEntityExists
	}
	s.items[it.ID] = it
	return nil
}

func (s *State) Item(id string) *GroundItem {
	return s.items[id]
}

// TakeItem removes the item from the world and returns it, or nil if it was
// already gone. Pairing removal with the return value keeps the item in
// exactly one place: the world or an inventory, never both.
func (s *State) TakeItem(id string) *GroundItem {
	it, exists := s.items[id]
	if !exists {
		return nil
	}
	delete(s.items, id)
	return it
}
