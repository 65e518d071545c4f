// internal/state/snapshot.go
package state

import (
	"time"

	"github.com/tamzrod/rdz-bridge/internal/regmap"
)

// Snapshot is one complete, internally consistent set of decoded device
// state produced by a single poll cycle. It is never mutated after
// publication; consumers only ever see a whole snapshot or none at all.
type Snapshot struct {
	At time.Time `json:"at"`

	// Per-zone categories, keyed by zone id 0..63.
	Temperatures              map[int]float64     `json:"temperatures"`
	WinterSetpoints           map[int]float64     `json:"winter_setpoints"`
	SummerSetpoints           map[int]float64     `json:"summer_setpoints"`
	CalculatedSetpoints       map[int]float64     `json:"calculated_setpoints"`
	Humidity                  map[int]float64     `json:"humidity"`
	DehumidificationSetpoints map[int]int         `json:"dehumidification_setpoints"`
	DewPoints                 map[int]float64     `json:"dew_points"`
	ZoneModes                 map[int]regmap.Mode `json:"zone_modes"`

	// Per-zone request bitmasks, keyed by zone id 0..63.
	ZoneActivity         map[int]bool `json:"zone_activity"`
	HumidityRequest      map[int]bool `json:"humidity_request"`
	VentilationRequest   map[int]bool `json:"ventilation_request"`
	RenewalRequest       map[int]bool `json:"renewal_request"`
	IntegrationRequest   map[int]bool `json:"integration_request"`
	DehumidificationPump map[int]bool `json:"dehumidification_pump"`

	// System-level categories, keyed by system id 1..8.
	SystemActivation     map[int]bool    `json:"system_activation"`
	DeliveryWaterTemps   map[int]float64 `json:"delivery_water_temps"`
	CalculatedWaterTemps map[int]float64 `json:"calculated_water_temps"`
	PumpActive           map[int]bool    `json:"pump_active"`

	// Singletons.
	Summer      bool                `json:"summer"`
	OutsideTemp float64             `json:"outside_temperature"`
	Time        regmap.TimeSettings `json:"time_settings"`
}

// Setpoint returns the manual setpoint table entry for the current season.
func (s *Snapshot) Setpoint(zoneID int, summer bool) (float64, bool) {
	if summer {
		v, ok := s.SummerSetpoints[zoneID]
		return v, ok
	}
	v, ok := s.WinterSetpoints[zoneID]
	return v, ok
}
