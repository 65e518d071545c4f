// internal/zone/zone.go
package zone

import (
	"fmt"
	"sort"
)

// Type classifies a zone's thermostat configuration.
type Type string

const (
	TypeReal         Type = "real"
	TypeVirtual      Type = "virtual"
	TypeUnconfigured Type = "unconfigured"
)

// Zone is one logical control point in the dense 0..63 id space.
// LinkedVirtual is only meaningful for real zones; the referenced zone
// must be virtual and at most one real zone may link to it. Both rules
// are enforced at configuration time, not here.
type Zone struct {
	ID            int
	Name          string
	Type          Type
	LinkedVirtual *int
}

// Linked reports the linked virtual zone id, if any.
func (z Zone) Linked() (int, bool) {
	if z.Type != TypeReal || z.LinkedVirtual == nil {
		return 0, false
	}
	return *z.LinkedVirtual, true
}

// Table is the static zone configuration keyed by zone id.
type Table map[int]Zone

// IDs returns the configured zone ids in ascending order.
func (t Table) IDs() []int {
	ids := make([]int, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Get returns the zone entry, defaulting to unconfigured for unknown ids.
func (t Table) Get(id int) Zone {
	if z, ok := t[id]; ok {
		return z
	}
	return Zone{ID: id, Type: TypeUnconfigured}
}

// DeviceID derives a stable identifier for a zone on a given controller.
// Pure function, no registry: the same (host, zone) always yields the
// same id, so several controllers can coexist in one process.
func DeviceID(host string, zoneID int) string {
	return fmt.Sprintf("rdz_%s_%02d", host, zoneID)
}
