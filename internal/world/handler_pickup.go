package world

import (
	"context"

	"github.com/pixil98/go-realm/internal/protocol"
)

// handlePickupItem moves an item from the world into the acting player's
// inventory. Removal and append happen in one handler invocation, so the
// item is never in both places and never in neither. Losing the race to
// another picker is a silent no-op.
func (h *Hub) handlePickupItem(ctx context.Context, c PickupItem) {
	p := h.state.Player(c.PlayerID)
	if p == nil {
		return
	}

	it := h.state.TakeItem(c.Payload.ItemID)
	if it == nil {
		return
	}

	p.Inventory = append(p.Inventory, it.ID)

	h.broadcastExcept(ctx, c.PlayerID, protocol.MsgItemPickedUp, protocol.ItemPickedUp{
		PlayerID: c.PlayerID,
		ItemID:   it.ID,
	})

	inventory := make([]string, len(p.Inventory))
	copy(inventory, p.Inventory)
	h.sendTo(ctx, c.PlayerID, protocol.MsgInventoryUpdate, protocol.InventoryUpdate{
		Inventory: inventory,
	})
}
