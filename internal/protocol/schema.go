package protocol

import (
	"reflect"

	"github.com/iancoleman/orderedmap"
	"github.com/invopop/jsonschema"
)

// payloadTypes maps every event name to its payload type, in the order the
// generated document lists them.
var payloadTypes = []struct {
	Event   string
	Payload any
}{
	{MsgPlayerMovement, PlayerMovement{}},
	{MsgPlayerAttack, PlayerAttack{}},
	{MsgBuildingDamage, BuildingDamage{}},
	{MsgDamageBuilding, BuildingDamage{}},
	{MsgItemPickup, ItemPickup{}},
	{MsgEquipItem, EquipItem{}},
	{MsgPlayerRespawn, PlayerRespawn{}},
	{MsgCurrentPlayers, CurrentPlayers{}},
	{MsgWorldData, WorldData{}},
	{MsgNewPlayer, NewPlayer{}},
	{MsgPlayerMoved, PlayerMoved{}},
	{MsgPlayerDisconnected, PlayerDisconnected{}},
	{MsgBuildingDamaged, BuildingDamaged{}},
	{MsgPlayerDamaged, PlayerDamaged{}},
	{MsgHealthUpdate, HealthUpdate{}},
	{MsgPlayerDied, PlayerDied{}},
	{MsgPlayerRespawned, PlayerRespawned{}},
	{MsgPlayerEquipmentChanged, PlayerEquipmentChanged{}},
	{MsgItemPickedUp, ItemPickedUp{}},
	{MsgInventoryUpdate, InventoryUpdate{}},
}

// SchemaDocument reflects the wire protocol into a JSON Schema document,
// keyed by event name. Clients and editor tooling consume it from /schema.
func SchemaDocument() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	props := orderedmap.New()
	for _, pt := range payloadTypes {
		s := reflector.ReflectFromType(reflect.TypeOf(pt.Payload))
		s.Version = ""
		props.Set(pt.Event, s)
	}

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "go-realm wire protocol",
		Description: "Event payloads exchanged over the websocket, keyed by envelope type.",
		Type:        "object",
		Properties:  props,
	}
}
