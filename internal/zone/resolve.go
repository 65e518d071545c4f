// internal/zone/resolve.go
package zone

import (
	"fmt"

	"github.com/tamzrod/rdz-bridge/internal/regmap"
	"github.com/tamzrod/rdz-bridge/internal/state"
)

// Effective computes which physical zone id backs a setpoint/mode read
// or write. A real zone with a linked virtual zone switches to the
// virtual id during summer: one physical thermostat feeds two seasonal
// control programs, and writes must land on the currently-active one.
// Everything else always resolves to its own id.
func Effective(z Zone, summer bool) int {
	if linked, ok := z.Linked(); ok && summer {
		return linked
	}
	return z.ID
}

// Active reports whether a zone is actively heating or cooling.
// Unlike Effective, activity is OR'd across the link regardless of
// season: the real thermostat reports combined activity from both of
// its control programs.
func Active(z Zone, activity map[int]bool) bool {
	if activity[z.ID] {
		return true
	}
	if linked, ok := z.Linked(); ok {
		return activity[linked]
	}
	return false
}

// Action is the derived hvac_action for a zone.
type Action string

const (
	ActionOff     Action = "off"
	ActionIdle    Action = "idle"
	ActionHeating Action = "heating"
	ActionCooling Action = "cooling"
)

// ActionFor derives the current action from the activity bitmask.
// The zone's own bit means heating, the linked virtual zone's bit means
// cooling. Virtual and unconfigured zones are always off.
func ActionFor(z Zone, snap *state.Snapshot) Action {
	if z.Type != TypeReal {
		return ActionOff
	}
	if snap == nil {
		return ActionIdle
	}
	if snap.ZoneActivity[z.ID] {
		return ActionHeating
	}
	if linked, ok := z.Linked(); ok && snap.ZoneActivity[linked] {
		return ActionCooling
	}
	return ActionIdle
}

// ModeFor returns the operating mode of the zone's effective register.
func ModeFor(z Zone, snap *state.Snapshot) (regmap.Mode, bool) {
	if snap == nil {
		return regmap.ModeOff, false
	}
	m, ok := snap.ZoneModes[Effective(z, snap.Summer)]
	return m, ok
}

// TargetTemperature is the target-temperature projection for a zone.
// In Man mode it is the manual setpoint of the effective zone, chosen
// by season; in every other mode it is the device's internally
// calculated setpoint for the effective zone.
func TargetTemperature(z Zone, snap *state.Snapshot) (float64, bool) {
	if snap == nil {
		return 0, false
	}

	eff := Effective(z, snap.Summer)

	if m, ok := snap.ZoneModes[eff]; ok && m == regmap.ModeMan {
		return snap.Setpoint(eff, snap.Summer)
	}

	v, ok := snap.CalculatedSetpoints[eff]
	return v, ok
}

// Features is the type-dependent capability set of a zone, recomputed
// whenever the zone table changes.
type Features struct {
	Name         string
	Controllable bool // accepts setpoint writes
	Modes        []string
}

// FeaturesFor derives display attributes from the static configuration.
func FeaturesFor(z Zone) Features {
	name := z.Name
	if name == "" {
		name = fmt.Sprintf("Zone %d", z.ID)
	}

	f := Features{Name: name}

	switch z.Type {
	case TypeReal:
		f.Controllable = true
		f.Modes = []string{"heat", "cool"}
	default:
		// Virtual zones are read-only, synced from their real peer.
		f.Modes = []string{"off"}
	}
	return f
}
