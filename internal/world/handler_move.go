package world

import (
	"context"

	"github.com/pixil98/go-realm/internal/protocol"
)

// handleMove stores the client-supplied position and rotation verbatim.
// There is no plausibility checking; last writer wins.
func (h *Hub) handleMove(ctx context.Context, c Move) {
	p := h.state.Player(c.PlayerID)
	if p == nil || c.Payload.Position == nil {
		return
	}

	p.Position = Vec3{X: c.Payload.Position.X, Y: c.Payload.Position.Y, Z: c.Payload.Position.Z}
	p.Rotation = Vec3{X: c.Payload.Rotation.X, Y: c.Payload.Rotation.Y, Z: c.Payload.Rotation.Z}

	h.broadcastExcept(ctx, c.PlayerID, protocol.MsgPlayerMoved, protocol.PlayerMoved{
		ID:       c.PlayerID,
		Position: *c.Payload.Position,
		Rotation: c.Payload.Rotation,
	})
}
