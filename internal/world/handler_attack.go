package world

import (
	"context"
	"log/slog"

	"github.com/pixil98/go-realm/internal/protocol"
)

// handleAttack applies client-reported damage to the target player. Health
// is clamped to [0, MaxHealth]. Hitting zero triggers the collapsed
// death/respawn transition: the record is reset before anything is
// broadcast, so no other client ever observes a dead player.
func (h *Hub) handleAttack(ctx context.Context, c Attack) {
	target := h.state.Player(c.Payload.Target)
	if target == nil {
		// Stale target, likely disconnected mid-swing. Expected; drop.
		return
	}

	target.Health -= c.Payload.Damage
	if target.Health > MaxHealth {
		target.Health = MaxHealth
	}
	if target.Health > 0 {
		h.sendTo(ctx, target.ID, protocol.MsgHealthUpdate, protocol.HealthUpdate{
			Health: target.Health,
		})
		h.broadcastExcept(ctx, target.ID, protocol.MsgPlayerDamaged, protocol.PlayerDamaged{
			PlayerID: target.ID,
			Health:   target.Health,
		})
		return
	}

	h.respawn(ctx, target)
}

// respawn resets a dead player to spawn defaults and announces death and
// respawn back to back. Inventory survives death; equipment does not.
func (h *Hub) respawn(ctx context.Context, p *Player) {
	slog.InfoContext(ctx, "player died", "player", p.ID)

	p.Health = MaxHealth
	p.Position = h.state.Spawn()
	p.Equipment = map[string]string{}

	h.broadcastAll(ctx, protocol.MsgPlayerDied, protocol.PlayerDied{PlayerID: p.ID})
	h.broadcastAll(ctx, protocol.MsgPlayerRespawned, protocol.PlayerRespawned{
		Player: snapshotPlayer(p),
	})
}

// handleRespawnAck is the client echo after a death. The server already
// reset the record, so the client payload is ignored and the authoritative
// record is re-broadcast instead.
func (h *Hub) handleRespawnAck(ctx context.Context, c RespawnAck) {
	p := h.state.Player(c.PlayerID)
	if p == nil {
		return
	}

	h.broadcastAll(ctx, protocol.MsgPlayerRespawned, protocol.PlayerRespawned{
		Player: snapshotPlayer(p),
	})
}
