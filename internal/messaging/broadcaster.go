package messaging

import (
	"fmt"
)

// Publisher sends a message to a single subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// PlayerDirectory enumerates the ids of currently connected players.
type PlayerDirectory interface {
	ForEachPlayer(fn func(id string))
}

// PlayerSubject is the per-session delivery subject for one player.
func PlayerSubject(id string) string {
	return fmt.Sprintf("player-%s", id)
}

// Broadcaster delivers encoded events to audiences of sessions. Delivery is
// fire-and-forget: a failed publish to one subject never blocks delivery to
// the rest, and there is no retry. A client that misses a message catches
// up from the snapshot on its next connect.
type Broadcaster struct {
	pub Publisher
	dir PlayerDirectory
}

func NewBroadcaster(pub Publisher, dir PlayerDirectory) *Broadcaster {
	return &Broadcaster{pub: pub, dir: dir}
}

// To delivers to a single player.
func (b *Broadcaster) To(playerID string, data []byte) error {
	return b.pub.Publish(PlayerSubject(playerID), data)
}

// All delivers to every connected player.
func (b *Broadcaster) All(data []byte) error {
	return b.publish("", data)
}

// AllExcept delivers to every connected player but the originator.
func (b *Broadcaster) AllExcept(exclude string, data []byte) error {
	return b.publish(exclude, data)
}

func (b *Broadcaster) publish(exclude string, data []byte) error {
	var firstErr error
	b.dir.ForEachPlayer(func(id string) {
		if id == exclude {
			return
		}
		if err := b.pub.Publish(PlayerSubject(id), data); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	return firstErr
}
