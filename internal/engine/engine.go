// internal/engine/engine.go
package engine

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/tamzrod/rdz-bridge/internal/regmap"
	"github.com/tamzrod/rdz-bridge/internal/state"
	"github.com/tamzrod/rdz-bridge/internal/zone"
)

// ErrUpdateFailed is the cycle-level failure signal. A cycle that cannot
// complete leaves the last good snapshot in place (fail-static).
var ErrUpdateFailed = errors.New("engine: update failed")

// Device abstracts the serialized controller transport.
// The engine depends on this contract only; tests use fakes.
type Device interface {
	ReadRegisters(addr, qty uint16) ([]uint16, error)
	WriteRegister(addr, value uint16) error
	ReadCoils(addr, qty uint16) ([]bool, error)
	ReadCoil(addr uint16) (bool, error)
	WriteCoil(addr uint16, on bool) error
}

// Engine runs poll cycles against one controller and keeps real and
// linked virtual zones consistent.
type Engine struct {
	dev   Device
	zones zone.Table

	// Previous-setpoint caches, used only for change detection in the
	// sync step. Updated at the end of every successful cycle, never
	// persisted. Empty on startup, so the first cycle never syncs.
	prevWinter map[int]float64
	prevSummer map[int]float64

	latest  atomic.Pointer[state.Snapshot]
	refresh chan struct{}

	// OnSyncError, when set, observes failed propagation writes.
	// Sync failures never abort a cycle.
	OnSyncError func(realID, virtualID int, err error)
}

// New creates an engine. No IO happens until the first cycle.
func New(dev Device, zones zone.Table) *Engine {
	return &Engine{
		dev:        dev,
		zones:      zones,
		prevWinter: make(map[int]float64),
		prevSummer: make(map[int]float64),
		refresh:    make(chan struct{}, 1),
	}
}

// Latest returns the most recent complete snapshot, or nil if no cycle
// has ever succeeded. Consumers only ever see whole snapshots.
func (e *Engine) Latest() *state.Snapshot {
	return e.latest.Load()
}

// Zones returns the static zone table.
func (e *Engine) Zones() zone.Table {
	return e.zones
}

// Probe verifies the controller answers by reading one register from
// the temperature block. Failure is not sticky: the transport redials
// on the next call.
func (e *Engine) Probe() error {
	_, err := e.dev.ReadRegisters(regmap.TemperatureStart, 1)
	return err
}

// PollOnce performs exactly one complete poll cycle: the full category
// read sequence, the linked-setpoint sync step, and atomic snapshot
// publication. Any read failure aborts the whole cycle; nothing partial
// is ever published and the caches stay untouched.
func (e *Engine) PollOnce() (*state.Snapshot, error) {
	snap := &state.Snapshot{At: time.Now()}

	// Reads are strictly sequential: the transport forbids concurrent
	// requests and the device answers one transaction at a time.
	type step struct {
		name string
		read func() error
	}

	steps := []step{
		{"temperatures", func() error {
			regs, err := e.dev.ReadRegisters(regmap.TemperatureStart, regmap.TemperatureCount)
			if err != nil {
				return err
			}
			snap.Temperatures = regmap.DecodeTemperatures(regs)
			return nil
		}},
		{"winter setpoints", func() error {
			regs, err := e.dev.ReadRegisters(regmap.WinterSetpointStart, regmap.WinterSetpointCount)
			if err != nil {
				return err
			}
			snap.WinterSetpoints = regmap.DecodeScaled(regs)
			return nil
		}},
		{"summer setpoints", func() error {
			regs, err := e.dev.ReadRegisters(regmap.SummerSetpointStart, regmap.SummerSetpointCount)
			if err != nil {
				return err
			}
			snap.SummerSetpoints = regmap.DecodeScaled(regs)
			return nil
		}},
		{"season", func() error {
			summer, err := e.dev.ReadCoil(regmap.SeasonCoil)
			if err != nil {
				return err
			}
			snap.Summer = summer
			return nil
		}},
		{"zone activity", func() error {
			regs, err := e.dev.ReadRegisters(regmap.ActivityStart, regmap.ActivityCount)
			if err != nil {
				return err
			}
			snap.ZoneActivity = regmap.DecodeZoneBitmask(regs)
			return nil
		}},
		{"humidity", func() error {
			regs, err := e.dev.ReadRegisters(regmap.HumidityStart, regmap.HumidityCount)
			if err != nil {
				return err
			}
			snap.Humidity = regmap.DecodeScaled(regs)
			return nil
		}},
		{"dehumidification setpoints", func() error {
			regs, err := e.dev.ReadRegisters(regmap.DehumidificationSetpointStart, regmap.DehumidificationSetpointCount)
			if err != nil {
				return err
			}
			snap.DehumidificationSetpoints = regmap.DecodeRaw(regs)
			return nil
		}},
		{"dew points", func() error {
			regs, err := e.dev.ReadRegisters(regmap.DewPointStart, regmap.DewPointCount)
			if err != nil {
				return err
			}
			snap.DewPoints = regmap.DecodeScaled(regs)
			return nil
		}},
		{"zone modes", func() error {
			regs, err := e.dev.ReadRegisters(regmap.ZoneModeStart, regmap.ZoneModeCount)
			if err != nil {
				return err
			}
			snap.ZoneModes = regmap.DecodeModes(regs)
			return nil
		}},
		{"calculated setpoints", func() error {
			regs, err := e.dev.ReadRegisters(regmap.CalculatedSetpointStart, regmap.CalculatedSetpointCount)
			if err != nil {
				return err
			}
			snap.CalculatedSetpoints = regmap.DecodeScaled(regs)
			return nil
		}},
		{"outside temperature", func() error {
			regs, err := e.dev.ReadRegisters(regmap.OutsideTemp, 1)
			if err != nil {
				return err
			}
			snap.OutsideTemp = float64(regs[0]) / regmap.Scale
			return nil
		}},
		{"time settings", func() error {
			regs, err := e.dev.ReadRegisters(regmap.TimeDay, regmap.TimeCount)
			if err != nil {
				return err
			}
			snap.Time = regmap.DecodeTime(regs)
			return nil
		}},
		{"system activation", func() error {
			bits, err := e.dev.ReadCoils(regmap.SystemActivationCoilStart, regmap.SystemActivationCoilCount)
			if err != nil {
				return err
			}
			snap.SystemActivation = regmap.DecodeSystemCoils(bits)
			return nil
		}},
		{"delivery water temperatures", func() error {
			regs, err := e.dev.ReadRegisters(regmap.DeliveryWaterTempStart, regmap.DeliveryWaterTempCount)
			if err != nil {
				return err
			}
			snap.DeliveryWaterTemps = regmap.DecodeScaledSystem(regs)
			return nil
		}},
		{"calculated water temperatures", func() error {
			regs, err := e.dev.ReadRegisters(regmap.CalculatedWaterTempStart, regmap.CalculatedWaterTempCount)
			if err != nil {
				return err
			}
			snap.CalculatedWaterTemps = regmap.DecodeScaledSystem(regs)
			return nil
		}},
		{"pump active", func() error {
			regs, err := e.dev.ReadRegisters(regmap.PumpActive, 1)
			if err != nil {
				return err
			}
			snap.PumpActive = regmap.DecodePumpBitmask(regs[0])
			return nil
		}},
		{"humidity request", func() error {
			regs, err := e.dev.ReadRegisters(regmap.HumidityRequestStart, regmap.HumidityRequestCount)
			if err != nil {
				return err
			}
			snap.HumidityRequest = regmap.DecodeZoneBitmask(regs)
			return nil
		}},
		{"ventilation request", func() error {
			regs, err := e.dev.ReadRegisters(regmap.VentilationRequestStart, regmap.VentilationRequestCount)
			if err != nil {
				return err
			}
			snap.VentilationRequest = regmap.DecodeZoneBitmask(regs)
			return nil
		}},
		{"renewal request", func() error {
			regs, err := e.dev.ReadRegisters(regmap.RenewalRequestStart, regmap.RenewalRequestCount)
			if err != nil {
				return err
			}
			snap.RenewalRequest = regmap.DecodeZoneBitmask(regs)
			return nil
		}},
		{"integration request", func() error {
			regs, err := e.dev.ReadRegisters(regmap.IntegrationRequestStart, regmap.IntegrationRequestCount)
			if err != nil {
				return err
			}
			snap.IntegrationRequest = regmap.DecodeZoneBitmask(regs)
			return nil
		}},
		{"dehumidification pump", func() error {
			regs, err := e.dev.ReadRegisters(regmap.DehumidificationPumpStart, regmap.DehumidificationPumpCount)
			if err != nil {
				return err
			}
			snap.DehumidificationPump = regmap.DecodeZoneBitmask(regs)
			return nil
		}},
	}

	for _, s := range steps {
		if err := s.read(); err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrUpdateFailed, s.name, err)
		}
	}

	// Propagate manual edits on real zones to their virtual peers before
	// the caches move forward.
	e.syncLinkedSetpoints(snap.WinterSetpoints, snap.SummerSetpoints)

	// Caches advance even when a sync write failed: the delta is
	// consumed and will not be retried on the next cycle.
	e.prevWinter = copyMap(snap.WinterSetpoints)
	e.prevSummer = copyMap(snap.SummerSetpoints)

	e.latest.Store(snap)
	return snap, nil
}

// syncLinkedSetpoints writes just-observed setpoint changes on real
// zones through to their linked virtual zones. First cycle after
// startup has no previous values and never writes.
func (e *Engine) syncLinkedSetpoints(winter, summer map[int]float64) {
	for _, id := range e.zones.IDs() {
		z := e.zones[id]
		virtualID, ok := z.Linked()
		if !ok {
			continue
		}

		if prev, known := e.prevWinter[id]; known {
			if curr, present := winter[id]; present && curr != prev {
				log.Printf("engine: zone %d winter setpoint %.1f -> %.1f, syncing to virtual zone %d",
					id, prev, curr, virtualID)
				addr := uint16(regmap.WinterSetpointStart + virtualID)
				if err := e.dev.WriteRegister(addr, regmap.EncodeScaled(curr)); err != nil {
					log.Printf("engine: winter sync to virtual zone %d failed: %v", virtualID, err)
					if e.OnSyncError != nil {
						e.OnSyncError(id, virtualID, err)
					}
				}
			}
		}

		if prev, known := e.prevSummer[id]; known {
			if curr, present := summer[id]; present && curr != prev {
				log.Printf("engine: zone %d summer setpoint %.1f -> %.1f, syncing to virtual zone %d",
					id, prev, curr, virtualID)
				addr := uint16(regmap.SummerSetpointStart + virtualID)
				if err := e.dev.WriteRegister(addr, regmap.EncodeScaled(curr)); err != nil {
					log.Printf("engine: summer sync to virtual zone %d failed: %v", virtualID, err)
					if e.OnSyncError != nil {
						e.OnSyncError(id, virtualID, err)
					}
				}
			}
		}
	}
}

func copyMap(m map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
