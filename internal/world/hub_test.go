package world

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pixil98/go-realm/internal/messaging"
	"github.com/pixil98/go-realm/internal/protocol"
	"github.com/pixil98/go-testutil"
)

// capturingPub records every published frame so tests can assert on exact
// audiences and event ordering.
type capturingPub struct {
	frames []pubFrame
}

type pubFrame struct {
	subject string
	env     protocol.Envelope
}

func (p *capturingPub) Publish(subject string, data []byte) error {
	env, err := protocol.DecodeEnvelope(data)
	if err != nil {
		return err
	}
	p.frames = append(p.frames, pubFrame{subject: subject, env: env})
	return nil
}

func (p *capturingPub) reset() {
	p.frames = nil
}

// events returns the envelopes of the named event delivered to one player.
func (p *capturingPub) events(playerID, event string) []protocol.Envelope {
	var out []protocol.Envelope
	for _, f := range p.frames {
		if f.subject == messaging.PlayerSubject(playerID) && f.env.T == event {
			out = append(out, f.env)
		}
	}
	return out
}

func decodeOne[T any](t *testing.T, envs []protocol.Envelope) T {
	t.Helper()

	if len(envs) != 1 {
		t.Fatalf("expected exactly one envelope, got %d", len(envs))
	}

	var out T
	err := json.Unmarshal(envs[0].P, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func newTestHub(t *testing.T) (*Hub, *State, *capturingPub) {
	t.Helper()

	pub := &capturingPub{}
	state := NewState(Vec3{X: 0, Y: 0, Z: 0})
	return NewHub(state, messaging.NewBroadcaster(pub, state)), state, pub
}

// join runs a Join command synchronously and fails the test on error.
func join(t *testing.T, h *Hub, id string) {
	t.Helper()

	reply := make(chan JoinResult, 1)
	h.dispatch(context.Background(), Join{PlayerID: id, Reply: reply})
	res := <-reply
	if res.Err != nil {
		t.Fatalf("join %s: %v", id, res.Err)
	}
}

func TestHubJoinDeliversSnapshot(t *testing.T) {
	ctx := context.Background()
	h, _, pub := newTestHub(t)

	join(t, h, "alice")
	h.dispatch(ctx, Move{PlayerID: "alice", Payload: protocol.PlayerMovement{
		Position: &protocol.Vec3{X: 12, Y: 0, Z: 9},
	}})
	pub.reset()

	join(t, h, "bob")

	// The joiner gets the snapshot pair, in order, before anything else.
	bobFrames := []pubFrame{}
	for _, f := range pub.frames {
		if f.subject == messaging.PlayerSubject("bob") {
			bobFrames = append(bobFrames, f)
		}
	}
	if len(bobFrames) != 2 {
		t.Fatalf("expected 2 frames to joiner, got %d", len(bobFrames))
	}
	testutil.AssertEqual(t, "first event", bobFrames[0].env.T, protocol.MsgCurrentPlayers)
	testutil.AssertEqual(t, "second event", bobFrames[1].env.T, protocol.MsgWorldData)

	// The snapshot reflects alice's latest position, not her spawn.
	cp := decodeOne[protocol.CurrentPlayers](t, pub.events("bob", protocol.MsgCurrentPlayers))
	testutil.AssertEqual(t, "snapshot size", len(cp.Players), 2)
	testutil.AssertEqual(t, "alice position", cp.Players["alice"].Position.X, 12.0)

	// Alice is told about bob; bob gets no newPlayer for himself.
	np := decodeOne[protocol.NewPlayer](t, pub.events("alice", protocol.MsgNewPlayer))
	testutil.AssertEqual(t, "announced player", np.Player.ID, "bob")
	testutil.AssertEqual(t, "self announcement", len(pub.events("bob", protocol.MsgNewPlayer)), 0)
}

func TestHubJoinDuplicateID(t *testing.T) {
	h, _, _ := newTestHub(t)

	join(t, h, "alice")

	reply := make(chan JoinResult, 1)
	h.dispatch(context.Background(), Join{PlayerID: "alice", Reply: reply})
	res := <-reply
	testutil.AssertEqual(t, "error", res.Err, ErrPlayerExists, cmpopts.EquateErrors())
}

func TestHubMove(t *testing.T) {
	ctx := context.Background()
	h, state, pub := newTestHub(t)

	join(t, h, "alice")
	join(t, h, "bob")
	pub.reset()

	h.dispatch(ctx, Move{PlayerID: "alice", Payload: protocol.PlayerMovement{
		Position: &protocol.Vec3{X: 3, Y: 1, Z: 4},
		Rotation: protocol.Vec3{Y: 1.5},
	}})

	testutil.AssertEqual(t, "stored position", state.Player("alice").Position, Vec3{X: 3, Y: 1, Z: 4})

	pm := decodeOne[protocol.PlayerMoved](t, pub.events("bob", protocol.MsgPlayerMoved))
	testutil.AssertEqual(t, "moved id", pm.ID, "alice")
	testutil.AssertEqual(t, "moved x", pm.Position.X, 3.0)

	// The mover does not get its own movement echoed.
	testutil.AssertEqual(t, "echo to mover", len(pub.events("alice", protocol.MsgPlayerMoved)), 0)
}

func TestHubMoveUnknownPlayer(t *testing.T) {
	ctx := context.Background()
	h, _, pub := newTestHub(t)

	join(t, h, "alice")
	pub.reset()

	h.dispatch(ctx, Move{PlayerID: "ghost", Payload: protocol.PlayerMovement{
		Position: &protocol.Vec3{X: 1},
	}})

	testutil.AssertEqual(t, "frames", len(pub.frames), 0)
}

// A movement without a position must not teleport the player to the origin.
func TestHubMoveMissingPosition(t *testing.T) {
	ctx := context.Background()
	h, state, pub := newTestHub(t)

	join(t, h, "alice")
	join(t, h, "bob")
	h.dispatch(ctx, Move{PlayerID: "alice", Payload: protocol.PlayerMovement{
		Position: &protocol.Vec3{X: 42, Y: 0, Z: 42},
	}})
	pub.reset()

	h.dispatch(ctx, Move{PlayerID: "alice", Payload: protocol.PlayerMovement{}})

	testutil.AssertEqual(t, "position", state.Player("alice").Position, Vec3{X: 42, Y: 0, Z: 42})
	testutil.AssertEqual(t, "frames", len(pub.frames), 0)
}

func TestHubAttack(t *testing.T) {
	ctx := context.Background()
	h, state, pub := newTestHub(t)

	join(t, h, "alice")
	join(t, h, "bob")
	join(t, h, "carol")
	pub.reset()

	h.dispatch(ctx, Attack{PlayerID: "bob", Payload: protocol.PlayerAttack{
		Target: "alice",
		Damage: 30,
	}})

	testutil.AssertEqual(t, "health", state.Player("alice").Health, 70)

	hu := decodeOne[protocol.HealthUpdate](t, pub.events("alice", protocol.MsgHealthUpdate))
	testutil.AssertEqual(t, "victim health echo", hu.Health, 70)

	// Everyone but the victim gets the third-person event.
	for _, id := range []string{"bob", "carol"} {
		pd := decodeOne[protocol.PlayerDamaged](t, pub.events(id, protocol.MsgPlayerDamaged))
		testutil.AssertEqual(t, "damaged id", pd.PlayerID, "alice")
		testutil.AssertEqual(t, "damaged health", pd.Health, 70)
	}
	testutil.AssertEqual(t, "victim third-person event", len(pub.events("alice", protocol.MsgPlayerDamaged)), 0)
}

func TestHubAttackKillRespawns(t *testing.T) {
	ctx := context.Background()
	h, state, pub := newTestHub(t)

	join(t, h, "alice")
	join(t, h, "bob")

	alice := state.Player("alice")
	alice.Position = Vec3{X: 50, Y: 0, Z: 50}
	alice.Equipment["hand"] = "sword"
	alice.Inventory = append(alice.Inventory, "helm-1")
	pub.reset()

	// Overkill damage: health never goes negative on the wire.
	h.dispatch(ctx, Attack{PlayerID: "bob", Payload: protocol.PlayerAttack{
		Target: "alice",
		Damage: 150,
	}})

	testutil.AssertEqual(t, "health reset", alice.Health, MaxHealth)
	testutil.AssertEqual(t, "position reset", alice.Position, state.Spawn())
	testutil.AssertEqual(t, "equipment cleared", len(alice.Equipment), 0)
	testutil.AssertEqual(t, "inventory kept", alice.Inventory[0], "helm-1")

	// Death and respawn are announced back to back, to everyone.
	for _, id := range []string{"alice", "bob"} {
		died := decodeOne[protocol.PlayerDied](t, pub.events(id, protocol.MsgPlayerDied))
		testutil.AssertEqual(t, "died id", died.PlayerID, "alice")

		resp := decodeOne[protocol.PlayerRespawned](t, pub.events(id, protocol.MsgPlayerRespawned))
		testutil.AssertEqual(t, "respawned id", resp.Player.ID, "alice")
		testutil.AssertEqual(t, "respawned health", resp.Player.Health, MaxHealth)
		testutil.AssertEqual(t, "respawned equipment", len(resp.Player.Equipment), 0)
	}

	// No separate damage events accompany a kill.
	testutil.AssertEqual(t, "health update on kill", len(pub.events("alice", protocol.MsgHealthUpdate)), 0)
	testutil.AssertEqual(t, "damaged on kill", len(pub.events("bob", protocol.MsgPlayerDamaged)), 0)
}

func TestHubAttackHealthClamp(t *testing.T) {
	ctx := context.Background()
	h, state, _ := newTestHub(t)

	join(t, h, "alice")
	join(t, h, "bob")

	// A negative amount heals, but never past the cap.
	h.dispatch(ctx, Attack{PlayerID: "bob", Payload: protocol.PlayerAttack{
		Target: "alice",
		Damage: -500,
	}})

	testutil.AssertEqual(t, "clamped health", state.Player("alice").Health, MaxHealth)
}

func TestHubAttackUnknownTarget(t *testing.T) {
	ctx := context.Background()
	h, _, pub := newTestHub(t)

	join(t, h, "bob")
	pub.reset()

	h.dispatch(ctx, Attack{PlayerID: "bob", Payload: protocol.PlayerAttack{
		Target: "ghost",
		Damage: 10,
	}})

	testutil.AssertEqual(t, "frames", len(pub.frames), 0)
}

func TestHubDamageBuilding(t *testing.T) {
	ctx := context.Background()
	h, state, pub := newTestHub(t)

	err := state.AddBuilding(&Building{ID: "church-5", Kind: "church"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	join(t, h, "alice")
	join(t, h, "bob")
	pub.reset()

	hit := func() {
		h.dispatch(ctx, DamageBuilding{PlayerID: "alice", Payload: protocol.BuildingDamage{
			BuildingID: "church-5",
		}})
	}

	hit()
	testutil.AssertEqual(t, "state after one hit", state.Building("church-5").State, BuildingDamaged)

	hit()
	testutil.AssertEqual(t, "state after two hits", state.Building("church-5").State, BuildingDestroyed)

	// Third hit is a no-op with no broadcast.
	hit()
	testutil.AssertEqual(t, "state after three hits", state.Building("church-5").State, BuildingDestroyed)

	// Both players saw exactly two transitions, attacker included.
	for _, id := range []string{"alice", "bob"} {
		envs := pub.events(id, protocol.MsgBuildingDamaged)
		if len(envs) != 2 {
			t.Fatalf("expected 2 buildingDamaged events for %s, got %d", id, len(envs))
		}

		var bd protocol.BuildingDamaged
		err := json.Unmarshal(envs[1].P, &bd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertEqual(t, "final state on wire", bd.State, int(BuildingDestroyed))
	}
}

func TestHubDamageBuildingUnknown(t *testing.T) {
	ctx := context.Background()
	h, _, pub := newTestHub(t)

	join(t, h, "alice")
	pub.reset()

	h.dispatch(ctx, DamageBuilding{PlayerID: "alice", Payload: protocol.BuildingDamage{
		BuildingID: "nope",
	}})

	testutil.AssertEqual(t, "frames", len(pub.frames), 0)
}

func TestHubPickupItem(t *testing.T) {
	ctx := context.Background()
	h, state, pub := newTestHub(t)

	err := state.AddItem(&GroundItem{ID: "sword-1", Kind: "sword"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	join(t, h, "alice")
	join(t, h, "bob")
	pub.reset()

	h.dispatch(ctx, PickupItem{PlayerID: "alice", Payload: protocol.ItemPickup{ItemID: "sword-1"}})

	testutil.AssertEqual(t, "inventory", state.Player("alice").Inventory[0], "sword-1")
	if state.Item("sword-1") != nil {
		t.Error("expected item to leave the world")
	}

	ip := decodeOne[protocol.ItemPickedUp](t, pub.events("bob", protocol.MsgItemPickedUp))
	testutil.AssertEqual(t, "picker", ip.PlayerID, "alice")
	testutil.AssertEqual(t, "item", ip.ItemID, "sword-1")
	testutil.AssertEqual(t, "pickup echo to picker", len(pub.events("alice", protocol.MsgItemPickedUp)), 0)

	iu := decodeOne[protocol.InventoryUpdate](t, pub.events("alice", protocol.MsgInventoryUpdate))
	testutil.AssertEqual(t, "inventory update", iu.Inventory[0], "sword-1")
	testutil.AssertEqual(t, "inventory update to others", len(pub.events("bob", protocol.MsgInventoryUpdate)), 0)

	// The race loser gets nothing at all.
	pub.reset()
	h.dispatch(ctx, PickupItem{PlayerID: "bob", Payload: protocol.ItemPickup{ItemID: "sword-1"}})
	testutil.AssertEqual(t, "frames after lost race", len(pub.frames), 0)
	testutil.AssertEqual(t, "bob inventory", len(state.Player("bob").Inventory), 0)

	// A later joiner no longer sees the item on the ground.
	join(t, h, "carol")
	wd := decodeOne[protocol.WorldData](t, pub.events("carol", protocol.MsgWorldData))
	testutil.AssertEqual(t, "ground items", len(wd.Items), 0)
}

func TestHubEquip(t *testing.T) {
	ctx := context.Background()
	h, state, pub := newTestHub(t)

	join(t, h, "alice")
	join(t, h, "bob")
	state.Player("alice").Equipment["head"] = "helm"
	pub.reset()

	h.dispatch(ctx, Equip{PlayerID: "alice", Payload: protocol.EquipItem{
		Equipment: map[string]string{"hand": "sword"},
	}})

	// The mapping is replaced wholesale, not merged.
	alice := state.Player("alice")
	testutil.AssertEqual(t, "equipment size", len(alice.Equipment), 1)
	testutil.AssertEqual(t, "equipment", alice.Equipment["hand"], "sword")

	ec := decodeOne[protocol.PlayerEquipmentChanged](t, pub.events("bob", protocol.MsgPlayerEquipmentChanged))
	testutil.AssertEqual(t, "changed id", ec.PlayerID, "alice")
	testutil.AssertEqual(t, "changed equipment", ec.Equipment["hand"], "sword")
	testutil.AssertEqual(t, "echo to equipper", len(pub.events("alice", protocol.MsgPlayerEquipmentChanged)), 0)
}

func TestHubLeave(t *testing.T) {
	ctx := context.Background()
	h, state, pub := newTestHub(t)

	join(t, h, "alice")
	join(t, h, "bob")
	join(t, h, "carol")
	pub.reset()

	h.dispatch(ctx, Leave{PlayerID: "alice"})

	testutil.AssertEqual(t, "count", state.PlayerCount(), 2)
	for _, id := range []string{"bob", "carol"} {
		pd := decodeOne[protocol.PlayerDisconnected](t, pub.events(id, protocol.MsgPlayerDisconnected))
		testutil.AssertEqual(t, "disconnected id", pd.ID, "alice")
	}

	// A second leave for the same id announces nothing.
	pub.reset()
	h.dispatch(ctx, Leave{PlayerID: "alice"})
	testutil.AssertEqual(t, "frames after repeat leave", len(pub.frames), 0)

	// A later joiner's snapshot no longer includes the departed player.
	join(t, h, "dave")
	cp := decodeOne[protocol.CurrentPlayers](t, pub.events("dave", protocol.MsgCurrentPlayers))
	if _, ok := cp.Players["alice"]; ok {
		t.Error("expected departed player to be absent from snapshot")
	}
}

func TestHubRespawnAck(t *testing.T) {
	ctx := context.Background()
	h, state, pub := newTestHub(t)

	join(t, h, "alice")
	join(t, h, "bob")
	state.Player("alice").Position = Vec3{X: 9}
	pub.reset()

	// The client-claimed state is ignored; the broadcast carries the record.
	h.dispatch(ctx, RespawnAck{PlayerID: "alice", Payload: protocol.PlayerRespawn{
		Position: protocol.Vec3{X: 999},
		Health:   1,
	}})

	for _, id := range []string{"alice", "bob"} {
		resp := decodeOne[protocol.PlayerRespawned](t, pub.events(id, protocol.MsgPlayerRespawned))
		testutil.AssertEqual(t, "position", resp.Player.Position.X, 9.0)
		testutil.AssertEqual(t, "health", resp.Player.Health, MaxHealth)
	}
}

func TestHubStats(t *testing.T) {
	h, state, _ := newTestHub(t)

	err := state.AddBuilding(&Building{ID: "hut-1", Kind: "hut"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	join(t, h, "bob")
	join(t, h, "alice")

	reply := make(chan Info, 1)
	h.dispatch(context.Background(), Stats{Reply: reply})
	info := <-reply

	testutil.AssertEqual(t, "players", len(info.Players), 2)
	testutil.AssertEqual(t, "sorted first", info.Players[0], "alice")
	testutil.AssertEqual(t, "buildings", info.Buildings, 1)
}

// A handler panic must not kill the command loop.
func TestHubRecoversFromPanic(t *testing.T) {
	h, _, _ := newTestHub(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = h.Start(ctx)
	}()

	// Sending the result to a closed reply channel panics inside the
	// handler; the loop must survive it.
	closedReply := make(chan JoinResult)
	close(closedReply)
	err := h.Post(ctx, Join{PlayerID: "alice", Reply: closedReply})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reply := make(chan Info, 1)
	err = h.Post(ctx, Stats{Reply: reply})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case info := <-reply:
		testutil.AssertEqual(t, "players", len(info.Players), 1)
	case <-time.After(2 * time.Second):
		t.Fatal("hub loop did not survive the panic")
	}

	cancel()
	<-done
}
