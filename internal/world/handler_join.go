package world

import (
	"context"
	"log/slog"

	"github.com/pixil98/go-realm/internal/protocol"
)

// handleJoin creates the player record and reconciles the new connection:
// the joiner gets the full snapshot, everyone else gets the delta.
func (h *Hub) handleJoin(ctx context.Context, c Join) {
	p, err := h.state.AddPlayer(c.PlayerID)
	if err != nil {
		c.Reply <- JoinResult{Err: err}
		return
	}

	slog.InfoContext(ctx, "player joined", "player", c.PlayerID)

	// Snapshot first so the joiner has a complete view before any delta
	// event can reference an entity it has never seen.
	h.sendTo(ctx, c.PlayerID, protocol.MsgCurrentPlayers, h.state.PlayersSnapshot())
	h.sendTo(ctx, c.PlayerID, protocol.MsgWorldData, h.state.WorldSnapshot())

	h.broadcastExcept(ctx, c.PlayerID, protocol.MsgNewPlayer, protocol.NewPlayer{
		Player: snapshotPlayer(p),
	})

	c.Reply <- JoinResult{}
}

// handleLeave removes the player and announces the departure to everyone
// still connected. It runs on every disconnect, abnormal drops included.
func (h *Hub) handleLeave(ctx context.Context, c Leave) {
	if !h.state.RemovePlayer(c.PlayerID) {
		return
	}

	slog.InfoContext(ctx, "player left", "player", c.PlayerID)

	h.broadcastAll(ctx, protocol.MsgPlayerDisconnected, protocol.PlayerDisconnected{
		ID: c.PlayerID,
	})
}
