package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-realm/internal/messaging"
	"github.com/pixil98/go-realm/internal/world"
)

// Conn is the subset of a websocket connection the session layer uses.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Subscriber provides the ability to subscribe to message subjects.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (unsubscribe func(), err error)
}

// Manager binds each accepted connection to exactly one player for the
// connection's lifetime. The player id is the connection id: one fresh
// uuid per accept, by policy. A reconnect is a brand-new player.
type Manager struct {
	hub *world.Hub
	sub Subscriber
}

func NewManager(hub *world.Hub, sub Subscriber) *Manager {
	return &Manager{
		hub: hub,
		sub: sub,
	}
}

// Accept runs a connection's session to completion. The player record is
// created before any inbound event is read and removed on every exit path,
// so live player records always match open connections one to one.
func (m *Manager) Accept(ctx context.Context, conn Conn) {
	s := &session{
		id:   uuid.NewString(),
		conn: conn,
		hub:  m.hub,
		msgs: make(chan []byte, msgBuffer),
	}

	unsub, err := m.sub.Subscribe(messaging.PlayerSubject(s.id), s.receive)
	if err != nil {
		slog.WarnContext(ctx, "subscribing session", "player", s.id, "error", err)
		return
	}
	defer unsub()

	if err := s.join(ctx); err != nil {
		slog.WarnContext(ctx, "joining world", "player", s.id, "error", err)
		return
	}
	defer s.leave(ctx)

	s.run(ctx)
}
