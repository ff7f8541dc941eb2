package world

import (
	"context"

	"github.com/pixil98/go-realm/internal/protocol"
)

// handleEquip replaces the player's equipment with the client-supplied
// mapping. The server does not check that the player owns the items or
// that the slots exist; equipment is client-trusted.
func (h *Hub) handleEquip(ctx context.Context, c Equip) {
	p := h.state.Player(c.PlayerID)
	if p == nil {
		return
	}

	equipment := make(map[string]string, len(c.Payload.Equipment))
	for slot, item := range c.Payload.Equipment {
		equipment[slot] = item
	}
	p.Equipment = equipment

	h.broadcastExcept(ctx, c.PlayerID, protocol.MsgPlayerEquipmentChanged, protocol.PlayerEquipmentChanged{
		PlayerID:  c.PlayerID,
		Equipment: equipment,
	})
}
