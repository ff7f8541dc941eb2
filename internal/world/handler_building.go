package world

import (
	"context"

	"github.com/pixil98/go-realm/internal/protocol"
)

// handleDamageBuilding advances the target building exactly one damage
// step. An unknown building or one already destroyed is a silent no-op:
// nothing changes and nothing is broadcast, so repeated hits past the
// terminal state are invisible to every client.
func (h *Hub) handleDamageBuilding(ctx context.Context, c DamageBuilding) {
	b := h.state.Building(c.Payload.BuildingID)
	if b == nil {
		return
	}

	if !b.State.Advance() {
		return
	}

	h.broadcastAll(ctx, protocol.MsgBuildingDamaged, protocol.BuildingDamaged{
		ID:    b.ID,
		State: int(b.State),
	})
}
