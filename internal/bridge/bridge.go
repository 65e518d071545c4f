// internal/bridge/bridge.go
package bridge

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/tamzrod/rdz-bridge/internal/engine"
	"github.com/tamzrod/rdz-bridge/internal/regmap"
	"github.com/tamzrod/rdz-bridge/internal/state"
	"github.com/tamzrod/rdz-bridge/internal/zone"
)

const haPrefix = "homeassistant"

// Temperature limits exposed to the UI.
const (
	minTemp  = 5.0
	maxTemp  = 35.0
	tempStep = 0.5
)

var presetModes = []string{"Off", "Man", "Pgm", "Pgm/Man"}

// Bridge publishes snapshots to Home Assistant over MQTT discovery and
// feeds commands back into the engine. It never mutates shared state
// itself; every published value is a projection over the latest
// snapshot plus static zone configuration.
type Bridge struct {
	engine *engine.Engine
	host   string
	prefix string
	zones  zone.Table
}

func New(e *engine.Engine, host, topicPrefix string) *Bridge {
	return &Bridge{
		engine: e,
		host:   host,
		prefix: topicPrefix,
		zones:  e.Zones(),
	}
}

func (b *Bridge) device(z zone.Zone) deviceInfo {
	return deviceInfo{
		Identifiers:  []string{zone.DeviceID(b.host, z.ID)},
		Name:         zone.FeaturesFor(z).Name,
		Manufacturer: "RDZ",
		Model:        "HMI Thermostat",
	}
}

func (b *Bridge) zoneTopic(id int, leaf string) string {
	return fmt.Sprintf("%s/zone/%d/%s", b.prefix, id, leaf)
}

// RegisterEntities publishes discovery configs for every configured
// zone plus the controller-level entities. Retained, so Home Assistant
// picks them up after restarts.
func (b *Bridge) RegisterEntities(client mqtt.Client) error {
	for _, id := range b.zones.IDs() {
		z := b.zones[id]
		f := zone.FeaturesFor(z)
		devID := zone.DeviceID(b.host, id)

		cc := climateConfig{
			UniqueID:                devID + "_climate",
			Name:                    f.Name,
			Device:                  b.device(z),
			CurrentTemperatureTopic: b.zoneTopic(id, "current"),
			TemperatureStateTopic:   b.zoneTopic(id, "target"),
			ModeStateTopic:          b.zoneTopic(id, "mode"),
			ActionTopic:             b.zoneTopic(id, "action"),
			PresetModeStateTopic:    b.zoneTopic(id, "preset"),
			PresetModes:             presetModes,
			Modes:                   f.Modes,
			MinTemp:                 minTemp,
			MaxTemp:                 maxTemp,
			TempStep:                tempStep,
		}
		if f.Controllable {
			cc.TemperatureCommandTopic = b.zoneTopic(id, "target/set")
			cc.PresetModeCommandTopic = b.zoneTopic(id, "preset/set")
		}

		if err := b.publishJSON(client, fmt.Sprintf("%s/climate/%s/config", haPrefix, devID), cc); err != nil {
			return err
		}

		hc := sensorConfig{
			UniqueID:          devID + "_humidity",
			Name:              f.Name + " Humidity",
			Device:            b.device(z),
			DeviceClass:       "humidity",
			StateTopic:        b.zoneTopic(id, "humidity"),
			UnitOfMeasurement: "%",
		}
		if err := b.publishJSON(client, fmt.Sprintf("%s/sensor/%s_humidity/config", haPrefix, devID), hc); err != nil {
			return err
		}
	}

	controller := deviceInfo{
		Identifiers:  []string{"rdz_" + b.host},
		Name:         "RDZ Controller",
		Manufacturer: "RDZ",
		Model:        "HMI",
	}

	oc := sensorConfig{
		UniqueID:          "rdz_" + b.host + "_outside",
		Name:              "Outside Temperature",
		Device:            controller,
		DeviceClass:       "temperature",
		StateTopic:        b.prefix + "/outside_temperature",
		UnitOfMeasurement: "°C",
	}
	if err := b.publishJSON(client, fmt.Sprintf("%s/sensor/rdz_%s_outside/config", haPrefix, b.host), oc); err != nil {
		return err
	}

	sc := switchConfig{
		UniqueID:     "rdz_" + b.host + "_season",
		Name:         "Summer Mode",
		Device:       controller,
		StateTopic:   b.prefix + "/season/state",
		CommandTopic: b.prefix + "/season/set",
	}
	if err := b.publishJSON(client, fmt.Sprintf("%s/switch/rdz_%s_season/config", haPrefix, b.host), sc); err != nil {
		return err
	}

	for sys := 1; sys <= regmap.SystemCount; sys++ {
		cfg := switchConfig{
			UniqueID:     fmt.Sprintf("rdz_%s_system_%d", b.host, sys),
			Name:         fmt.Sprintf("System %d", sys),
			Device:       controller,
			StateTopic:   fmt.Sprintf("%s/system/%d/state", b.prefix, sys),
			CommandTopic: fmt.Sprintf("%s/system/%d/set", b.prefix, sys),
		}
		topic := fmt.Sprintf("%s/switch/rdz_%s_system_%d/config", haPrefix, b.host, sys)
		if err := b.publishJSON(client, topic, cfg); err != nil {
			return err
		}
	}

	return nil
}

// ReloadZones recomputes zone-scoped derived attributes after a
// configuration change and republishes the affected discovery configs.
func (b *Bridge) ReloadZones(client mqtt.Client, zones zone.Table) error {
	b.zones = zones
	return b.RegisterEntities(client)
}

// PublishState projects one snapshot onto the state topics. Nothing is
// published before the first successful cycle, which Home Assistant
// shows as unavailable.
func (b *Bridge) PublishState(client mqtt.Client, snap *state.Snapshot) {
	if snap == nil {
		return
	}

	for _, id := range b.zones.IDs() {
		z := b.zones[id]

		if t, ok := snap.Temperatures[id]; ok {
			b.publish(client, b.zoneTopic(id, "current"), formatTemp(t))
		}
		if t, ok := zone.TargetTemperature(z, snap); ok {
			b.publish(client, b.zoneTopic(id, "target"), formatTemp(t))
		}
		if h, ok := snap.Humidity[id]; ok {
			b.publish(client, b.zoneTopic(id, "humidity"), formatTemp(h))
		}

		b.publish(client, b.zoneTopic(id, "action"), string(zone.ActionFor(z, snap)))

		if m, ok := zone.ModeFor(z, snap); ok {
			b.publish(client, b.zoneTopic(id, "preset"), m.String())
		}

		b.publish(client, b.zoneTopic(id, "mode"), hvacMode(z, snap))
	}

	b.publish(client, b.prefix+"/outside_temperature", formatTemp(snap.OutsideTemp))
	b.publish(client, b.prefix+"/season/state", onOff(snap.Summer))

	for sys, on := range snap.SystemActivation {
		b.publish(client, fmt.Sprintf("%s/system/%d/state", b.prefix, sys), onOff(on))
	}
}

// hvacMode is the season-derived mode: real zones heat in winter and
// cool in summer; everything else reads off.
func hvacMode(z zone.Zone, snap *state.Snapshot) string {
	if z.Type != zone.TypeReal {
		return "off"
	}
	if snap.Summer {
		return "cool"
	}
	return "heat"
}

// Subscribe wires the command topics to the engine setters. Call it
// from the MQTT OnConnect handler so subscriptions survive reconnects.
func (b *Bridge) Subscribe(client mqtt.Client) {
	b.subscribe(client, b.prefix+"/zone/+/target/set", b.handleTargetCommand)
	b.subscribe(client, b.prefix+"/zone/+/preset/set", b.handlePresetCommand)
	b.subscribe(client, b.prefix+"/zone/+/dehumidification/set", b.handleDehumidificationCommand)
	b.subscribe(client, b.prefix+"/season/set", b.handleSeasonCommand)
	b.subscribe(client, b.prefix+"/system/+/set", b.handleSystemCommand)
	b.subscribe(client, b.prefix+"/time/+/set", b.handleTimeCommand)
}

func (b *Bridge) subscribe(client mqtt.Client, topic string, h mqtt.MessageHandler) {
	if t := client.Subscribe(topic, 0, h); t.Wait() && t.Error() != nil {
		log.Printf("bridge: subscribe %s: %v", topic, t.Error())
	}
}

// zoneFromTopic extracts the zone id from <prefix>/zone/<id>/...
func zoneFromTopic(topic string) (int, bool) {
	parts := strings.Split(topic, "/")
	for i, p := range parts {
		if p == "zone" && i+1 < len(parts) {
			id, err := strconv.Atoi(parts[i+1])
			if err != nil {
				return 0, false
			}
			return id, true
		}
	}
	return 0, false
}

func (b *Bridge) handleTargetCommand(_ mqtt.Client, msg mqtt.Message) {
	id, ok := zoneFromTopic(msg.Topic())
	if !ok {
		return
	}

	value, err := strconv.ParseFloat(string(msg.Payload()), 64)
	if err != nil {
		log.Printf("bridge: zone %d: bad temperature %q", id, msg.Payload())
		return
	}

	z := b.zones.Get(id)
	if !zone.FeaturesFor(z).Controllable {
		log.Printf("bridge: zone %d is not controllable (type %s)", id, z.Type)
		return
	}

	// Setpoint edits only apply in manual mode, mirroring the panel.
	snap := b.engine.Latest()
	if m, ok := zone.ModeFor(z, snap); !ok || m != regmap.ModeMan {
		log.Printf("bridge: zone %d not in Man mode, ignoring setpoint", id)
		return
	}

	if err := b.engine.SetTemperature(id, value, snap.Summer); err != nil {
		log.Printf("bridge: set temperature zone %d: %v", id, err)
	}
}

func (b *Bridge) handlePresetCommand(_ mqtt.Client, msg mqtt.Message) {
	id, ok := zoneFromTopic(msg.Topic())
	if !ok {
		return
	}

	mode, ok := regmap.ModeFromLabel(string(msg.Payload()))
	if !ok {
		log.Printf("bridge: zone %d: unknown preset %q", id, msg.Payload())
		return
	}

	if err := b.engine.SetZoneMode(id, mode); err != nil {
		log.Printf("bridge: set mode zone %d: %v", id, err)
	}
}

func (b *Bridge) handleDehumidificationCommand(_ mqtt.Client, msg mqtt.Message) {
	id, ok := zoneFromTopic(msg.Topic())
	if !ok {
		return
	}

	pct, err := strconv.Atoi(string(msg.Payload()))
	if err != nil {
		log.Printf("bridge: zone %d: bad humidity %q", id, msg.Payload())
		return
	}

	if err := b.engine.SetDehumidificationSetpoint(id, pct); err != nil {
		log.Printf("bridge: set dehumidification zone %d: %v", id, err)
	}
}

func (b *Bridge) handleSeasonCommand(_ mqtt.Client, msg mqtt.Message) {
	if err := b.engine.SetSeason(string(msg.Payload()) == "ON"); err != nil {
		log.Printf("bridge: set season: %v", err)
	}
}

func (b *Bridge) handleSystemCommand(_ mqtt.Client, msg mqtt.Message) {
	parts := strings.Split(msg.Topic(), "/")
	if len(parts) < 3 {
		return
	}
	sys, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return
	}

	if err := b.engine.SetSystemActivation(sys, string(msg.Payload()) == "ON"); err != nil {
		log.Printf("bridge: set system %d: %v", sys, err)
	}
}

func (b *Bridge) handleTimeCommand(_ mqtt.Client, msg mqtt.Message) {
	parts := strings.Split(msg.Topic(), "/")
	if len(parts) < 3 {
		return
	}
	field := parts[len(parts)-2]

	v, err := strconv.Atoi(string(msg.Payload()))
	if err != nil {
		log.Printf("bridge: bad time value %q", msg.Payload())
		return
	}

	var set func(int) error
	switch field {
	case "day":
		set = b.engine.SetTimeDay
	case "month":
		set = b.engine.SetTimeMonth
	case "year":
		set = b.engine.SetTimeYear
	case "hour":
		set = b.engine.SetTimeHour
	case "minute":
		set = b.engine.SetTimeMinute
	default:
		return
	}

	if err := set(v); err != nil {
		log.Printf("bridge: set time %s: %v", field, err)
	}
}

// ---- publishing helpers ----

func (b *Bridge) publish(client mqtt.Client, topic, payload string) {
	if t := client.Publish(topic, 0, true, payload); t.Wait() && t.Error() != nil {
		log.Printf("bridge: publish %s: %v", topic, t.Error())
	}
}

func (b *Bridge) publishJSON(client mqtt.Client, topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if t := client.Publish(topic, 0, true, payload); t.Wait() && t.Error() != nil {
		return t.Error()
	}
	return nil
}

func formatTemp(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
