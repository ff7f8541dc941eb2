package command

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-realm/internal/messaging"
	"github.com/pixil98/go-realm/internal/session"
	"github.com/pixil98/go-realm/internal/world"
	service "github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Message bus for fanning events out to sessions
	nats, err := cfg.Nats.buildServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Load the world layout and build the authoritative state
	defs, err := cfg.Storage.BuildDefinitions()
	if err != nil {
		return nil, fmt.Errorf("loading world definitions: %w", err)
	}

	state := world.NewState(cfg.World.spawn())
	if err := state.Populate(defs); err != nil {
		return nil, fmt.Errorf("populating world: %w", err)
	}
	slog.Info("world generated",
		"buildings", defs.Buildings.Len(),
		"monsters", defs.Monsters.Len(),
		"items", defs.Items.Len(),
	)

	// The hub is the only writer of world state
	hub := world.NewHub(state, messaging.NewBroadcaster(nats, state))

	// Sessions bind websocket connections to players
	sessions := session.NewManager(hub, nats)

	return service.WorkerList{
		"nats":     nats,
		"hub":      hub,
		"listener": cfg.Listen.BuildListener(sessions, hub),
	}, nil
}
