package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-realm/internal/protocol"
	"github.com/pixil98/go-realm/internal/world"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	msgBuffer    = 64
	leaveTimeout = time.Second
)

type session struct {
	id   string
	conn Conn
	hub  *world.Hub
	msgs chan []byte
}

// receive is the subscription callback. Delivery is fire-and-forget: when
// the session's buffer is full the message is dropped rather than stalling
// the publisher, and the client recovers from its next full snapshot.
func (s *session) receive(data []byte) {
	select {
	case s.msgs <- data:
	default:
		slog.Debug("dropping message for slow session", "player", s.id)
	}
}

func (s *session) join(ctx context.Context) error {
	reply := make(chan world.JoinResult, 1)
	if err := s.hub.Post(ctx, world.Join{PlayerID: s.id, Reply: reply}); err != nil {
		return err
	}
	select {
	case res := <-reply:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// leave always runs, however the session ended. It gets a grace period
// detached from the session context so an abnormal drop still removes the
// player record.
func (s *session) leave(ctx context.Context) {
	lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), leaveTimeout)
	defer cancel()
	if err := s.hub.Post(lctx, world.Leave{PlayerID: s.id}); err != nil {
		slog.WarnContext(ctx, "posting leave", "player", s.id, "error", err)
	}
}

func (s *session) run(ctx context.Context) {
	done := make(chan struct{})
	defer close(done)

	go s.writePump(ctx, done)
	s.readLoop(ctx)
}

// writePump is the only writer on the connection. It also owns keepalive
// pings and closes the connection when the session context ends, which
// unblocks the read loop.
func (s *session) writePump(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			_ = s.conn.Close()
			return
		case data := <-s.msgs:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				slog.Debug("write failed", "player", s.id, "error", err)
				_ = s.conn.Close()
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = s.conn.Close()
				return
			}
		}
	}
}

// readLoop decodes inbound envelopes and posts the matching hub command.
// A malformed frame is skipped without touching any state; only a dead
// connection ends the loop.
func (s *session) readLoop(ctx context.Context) {
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		env, err := protocol.DecodeEnvelope(data)
		if err != nil {
			slog.Debug("discarding malformed envelope", "player", s.id, "error", err)
			continue
		}

		cmd, err := s.route(env)
		if err != nil {
			slog.Debug("discarding event", "player", s.id, "event", env.T, "error", err)
			continue
		}

		if err := s.hub.Post(ctx, cmd); err != nil {
			return
		}
	}
}

// route maps an inbound envelope to a hub command, validating the payload
// shape before anything reaches world state.
func (s *session) route(env protocol.Envelope) (any, error) {
	switch env.T {
	case protocol.MsgPlayerMovement:
		p, err := protocol.DecodePayload[protocol.PlayerMovement](env)
		if err != nil {
			return nil, err
		}
		return world.Move{PlayerID: s.id, Payload: p}, nil

	case protocol.MsgPlayerAttack:
		p, err := protocol.DecodePayload[protocol.PlayerAttack](env)
		if err != nil {
			return nil, err
		}
		return world.Attack{PlayerID: s.id, Payload: p}, nil

	case protocol.MsgBuildingDamage, protocol.MsgDamageBuilding:
		p, err := protocol.DecodeBuildingTarget(env)
		if err != nil {
			return nil, err
		}
		return world.DamageBuilding{PlayerID: s.id, Payload: p}, nil

	case protocol.MsgItemPickup:
		p, err := protocol.DecodePayload[protocol.ItemPickup](env)
		if err != nil {
			return nil, err
		}
		return world.PickupItem{PlayerID: s.id, Payload: p}, nil

	case protocol.MsgEquipItem:
		p, err := protocol.DecodePayload[protocol.EquipItem](env)
		if err != nil {
			return nil, err
		}
		return world.Equip{PlayerID: s.id, Payload: p}, nil

	case protocol.MsgPlayerRespawn:
		p, err := protocol.DecodePayload[protocol.PlayerRespawn](env)
		if err != nil {
			return nil, err
		}
		return world.RespawnAck{PlayerID: s.id, Payload: p}, nil

	default:
		return nil, fmt.Errorf("unknown event type %q", env.T)
	}
}
