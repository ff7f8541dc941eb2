package world

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/pixil98/go-realm/internal/messaging"
	"github.com/pixil98/go-realm/internal/protocol"
)

const inboxSize = 256

// Hub owns the world state. It is an actor: all commands run one at a time
// on the Start goroutine, so no handler can be preempted mid-mutation and
// the state needs no locks.
type Hub struct {
	inbox chan any
	state *State
	bcast *messaging.Broadcaster
}

func NewHub(state *State, bcast *messaging.Broadcaster) *Hub {
	return &Hub{
		inbox: make(chan any, inboxSize),
		state: state,
		bcast: bcast,
	}
}

// Post submits a command for execution. It blocks only when the inbox is
// full, and gives up when ctx is canceled.
func (h *Hub) Post(ctx context.Context, cmd any) error {
	select {
	case h.inbox <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start runs the command loop until ctx is done.
func (h *Hub) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-h.inbox:
			h.dispatch(ctx, cmd)
		}
	}
}

// dispatch executes one command. A panic in a handler is contained here so
// one connection's bad event cannot take the server down for everyone.
func (h *Hub) dispatch(ctx context.Context, cmd any) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "recovered panicking handler", "command", fmt.Sprintf("%T", cmd), "panic", r)
		}
	}()

	switch c := cmd.(type) {
	case Join:
		h.handleJoin(ctx, c)
	case Leave:
		h.handleLeave(ctx, c)
	case Move:
		h.handleMove(ctx, c)
	case Attack:
		h.handleAttack(ctx, c)
	case DamageBuilding:
		h.handleDamageBuilding(ctx, c)
	case PickupItem:
		h.handlePickupItem(ctx, c)
	case Equip:
		h.handleEquip(ctx, c)
	case RespawnAck:
		h.handleRespawnAck(ctx, c)
	case Stats:
		c.Reply <- h.info()
	default:
		slog.WarnContext(ctx, "unknown hub command", "command", fmt.Sprintf("%T", cmd))
	}
}

func (h *Hub) info() Info {
	players := make([]string, 0, h.state.PlayerCount())
	h.state.ForEachPlayer(func(id string) {
		players = append(players, id)
	})
	sort.Strings(players)

	return Info{
		Players:   players,
		Buildings: len(h.state.buildings),
		Monsters:  len(h.state.monsters),
		Items:     len(h.state.items),
	}
}

// Delivery helpers. Encode failures are programming errors and logged;
// publish failures are logged and dropped, per-connection delivery being
// fire-and-forget.

func (h *Hub) sendTo(ctx context.Context, playerID, event string, payload any) {
	if data, ok := h.encode(ctx, event, payload); ok {
		h.deliver(ctx, event, h.bcast.To(playerID, data))
	}
}

func (h *Hub) broadcastAll(ctx context.Context, event string, payload any) {
	if data, ok := h.encode(ctx, event, payload); ok {
		h.deliver(ctx, event, h.bcast.All(data))
	}
}

func (h *Hub) broadcastExcept(ctx context.Context, exclude, event string, payload any) {
	if data, ok := h.encode(ctx, event, payload); ok {
		h.deliver(ctx, event, h.bcast.AllExcept(exclude, data))
	}
}

func (h *Hub) encode(ctx context.Context, event string, payload any) ([]byte, bool) {
	data, err := protocol.Encode(event, payload)
	if err != nil {
		slog.ErrorContext(ctx, "encoding event", "event", event, "error", err)
		return nil, false
	}
	return data, true
}

func (h *Hub) deliver(ctx context.Context, event string, err error) {
	if err != nil {
		slog.WarnContext(ctx, "delivering event", "event", event, "error", err)
	}
}
