// internal/engine/setters.go
package engine

import (
	"fmt"

	"github.com/tamzrod/rdz-bridge/internal/regmap"
	"github.com/tamzrod/rdz-bridge/internal/zone"
)

// Setters write through the topology resolver and, on success, schedule
// an asynchronous refresh. The caller never waits for the refresh; it
// only pays for the write's own round trip.

// RequestRefresh schedules a poll cycle outside the regular interval.
// Non-blocking; a refresh already pending is enough.
func (e *Engine) RequestRefresh() {
	select {
	case e.refresh <- struct{}{}:
	default:
	}
}

// season reports the current season, defaulting to winter when no
// snapshot exists yet.
func (e *Engine) season() bool {
	if snap := e.Latest(); snap != nil {
		return snap.Summer
	}
	return false
}

// SetSeason writes the global season coil. true = summer.
func (e *Engine) SetSeason(summer bool) error {
	if err := e.dev.WriteCoil(regmap.SeasonCoil, summer); err != nil {
		return err
	}
	e.RequestRefresh()
	return nil
}

// SetTemperature writes a manual setpoint for a zone. summer selects
// the setpoint table; the register address is resolved through the
// effective zone for that season.
func (e *Engine) SetTemperature(zoneID int, value float64, summer bool) error {
	eff := zone.Effective(e.zones.Get(zoneID), summer)

	start := regmap.WinterSetpointStart
	if summer {
		start = regmap.SummerSetpointStart
	}

	if err := e.dev.WriteRegister(uint16(start+eff), regmap.EncodeScaled(value)); err != nil {
		return err
	}
	e.RequestRefresh()
	return nil
}

// SetZoneMode writes the operating mode of a zone's effective register
// for the current season.
func (e *Engine) SetZoneMode(zoneID int, mode regmap.Mode) error {
	eff := zone.Effective(e.zones.Get(zoneID), e.season())

	if err := e.dev.WriteRegister(uint16(regmap.ZoneModeStart+eff), uint16(mode)); err != nil {
		return err
	}
	e.RequestRefresh()
	return nil
}

// SetSystemActivation switches one of the eight hydraulic systems.
func (e *Engine) SetSystemActivation(systemID int, on bool) error {
	if systemID < 1 || systemID > regmap.SystemCount {
		return fmt.Errorf("engine: system id %d out of range 1..%d", systemID, regmap.SystemCount)
	}

	addr := uint16(regmap.SystemActivationCoilStart + systemID - 1)
	if err := e.dev.WriteCoil(addr, on); err != nil {
		return err
	}
	e.RequestRefresh()
	return nil
}

// SetDehumidificationSetpoint writes a raw-percentage setpoint.
func (e *Engine) SetDehumidificationSetpoint(zoneID int, percent int) error {
	if err := e.dev.WriteRegister(uint16(regmap.DehumidificationSetpointStart+zoneID), uint16(percent)); err != nil {
		return err
	}
	e.RequestRefresh()
	return nil
}

// ---- controller clock ----

func (e *Engine) setTimeField(addr uint16, v int) error {
	if err := e.dev.WriteRegister(addr, uint16(v)); err != nil {
		return err
	}
	e.RequestRefresh()
	return nil
}

func (e *Engine) SetTimeDay(v int) error    { return e.setTimeField(regmap.TimeDay, v) }
func (e *Engine) SetTimeMonth(v int) error  { return e.setTimeField(regmap.TimeMonth, v) }
func (e *Engine) SetTimeYear(v int) error   { return e.setTimeField(regmap.TimeYear, v) }
func (e *Engine) SetTimeHour(v int) error   { return e.setTimeField(regmap.TimeHour, v) }
func (e *Engine) SetTimeMinute(v int) error { return e.setTimeField(regmap.TimeMinute, v) }
