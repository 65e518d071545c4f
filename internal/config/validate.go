// internal/config/validate.go
package config

import (
	"fmt"
	"strconv"

	"github.com/tamzrod/rdz-bridge/internal/regmap"
	"github.com/tamzrod/rdz-bridge/internal/zone"
)

// zoneID parses a zone table key. Keys are zero-padded decimal ids.
func zoneID(key string) (int, error) {
	id, err := strconv.Atoi(key)
	if err != nil {
		return 0, fmt.Errorf("config: zone key %q is not numeric", key)
	}
	return id, nil
}

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	b := cfg.Bridge

	if b.Host == "" {
		return fmt.Errorf("config: host is required")
	}
	if b.Port < 0 || b.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", b.Port)
	}
	if b.PollIntervalMs < 0 {
		return fmt.Errorf("config: poll_interval_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// ZONE TABLE VALIDATION
	// ------------------------------------------------------------

	types := make(map[int]zone.Type, len(b.Zones))

	for key, zc := range b.Zones {
		id, err := zoneID(key)
		if err != nil {
			return err
		}
		if id < 0 || id >= regmap.ZoneCount {
			return fmt.Errorf("config: zone %q: id out of range 0..%d", key, regmap.ZoneCount-1)
		}
		if _, dup := types[id]; dup {
			return fmt.Errorf("config: zone id %d declared twice", id)
		}

		switch zone.Type(zc.Type) {
		case zone.TypeReal, zone.TypeVirtual, zone.TypeUnconfigured:
		default:
			return fmt.Errorf("config: zone %q: unknown type %q", key, zc.Type)
		}

		types[id] = zone.Type(zc.Type)
	}

	// ------------------------------------------------------------
	// LINK VALIDATION
	// ------------------------------------------------------------

	// key = linked virtual zone id, value = owning real zone id
	linkOwner := make(map[int]int)

	for key, zc := range b.Zones {
		if zc.LinkedVirtualZone == nil {
			continue
		}
		id, _ := zoneID(key)
		linked := *zc.LinkedVirtualZone

		if zone.Type(zc.Type) != zone.TypeReal {
			return fmt.Errorf(
				"config: zone %q: linked_virtual_zone is only valid on real zones",
				key,
			)
		}
		if linked == id {
			return fmt.Errorf("config: zone %q links to itself", key)
		}

		t, ok := types[linked]
		if !ok {
			return fmt.Errorf(
				"config: zone %q links to undeclared zone %d",
				key, linked,
			)
		}
		if t != zone.TypeVirtual {
			return fmt.Errorf(
				"config: zone %q links to zone %d which is %s, not virtual",
				key, linked, t,
			)
		}

		if prev, exists := linkOwner[linked]; exists {
			return fmt.Errorf(
				"config: virtual zone %d is linked by both zone %d and zone %d",
				linked, prev, id,
			)
		}
		linkOwner[linked] = id
	}

	return nil
}
