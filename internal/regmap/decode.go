// internal/regmap/decode.go
package regmap

import "math"

// Pure register <-> domain value translation.
// No IO. No side effects.

// DecodeScaled maps registers[i] -> i: registers[i]/10.
// Zero is a legitimate value here; nothing is suppressed.
func DecodeScaled(regs []uint16) map[int]float64 {
	out := make(map[int]float64, len(regs))
	for i, v := range regs {
		out[i] = float64(v) / Scale
	}
	return out
}

// DecodeTemperatures is the zero-suppressing variant used for the
// current-temperature block only: a raw 0 means "no sensor present",
// not 0.0 degrees, and the zone is omitted from the result.
func DecodeTemperatures(regs []uint16) map[int]float64 {
	out := make(map[int]float64)
	for i, v := range regs {
		if v == 0 {
			continue
		}
		out[i] = float64(v) / Scale
	}
	return out
}

// DecodeScaledSystem is DecodeScaled with 1-based system ids (1..8).
func DecodeScaledSystem(regs []uint16) map[int]float64 {
	out := make(map[int]float64, len(regs))
	for i, v := range regs {
		out[i+1] = float64(v) / Scale
	}
	return out
}

// DecodeRaw maps registers verbatim (raw percentages, enums).
func DecodeRaw(regs []uint16) map[int]int {
	out := make(map[int]int, len(regs))
	for i, v := range regs {
		out[i] = int(v)
	}
	return out
}

// EncodeScaled converts a domain value to its fixed-point register value.
func EncodeScaled(v float64) uint16 {
	return uint16(math.Round(v * Scale))
}

// DecodeZoneBitmask expands bitmask registers into per-zone booleans.
// Ordering is a hard contract: register N bit b -> zone N*16+b.
// The result always has exactly len(regs)*16 entries.
func DecodeZoneBitmask(regs []uint16) map[int]bool {
	out := make(map[int]bool, len(regs)*16)
	for ri, rv := range regs {
		for bit := 0; bit < 16; bit++ {
			out[ri*16+bit] = rv&(1<<bit) != 0
		}
	}
	return out
}

// DecodePumpBitmask expands the single pump register into 1-based pump ids:
// bit 0 -> pump 1 .. bit 7 -> pump 8.
func DecodePumpBitmask(reg uint16) map[int]bool {
	out := make(map[int]bool, SystemCount)
	for bit := 0; bit < SystemCount; bit++ {
		out[bit+1] = reg&(1<<bit) != 0
	}
	return out
}

// DecodeSystemCoils maps coil i -> system id i+1.
func DecodeSystemCoils(bits []bool) map[int]bool {
	out := make(map[int]bool, len(bits))
	for i, b := range bits {
		out[i+1] = b
	}
	return out
}

// TimeSettings is the controller clock as five positional registers.
// No calendar validation happens at this layer; the consumer decides
// what to do with day=31 in February.
type TimeSettings struct {
	Day    int `json:"day"`
	Month  int `json:"month"`
	Year   int `json:"year"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// DecodeTime maps the five time registers by fixed position.
func DecodeTime(regs []uint16) TimeSettings {
	var t TimeSettings
	if len(regs) < TimeCount {
		return t
	}
	t.Day = int(regs[0])
	t.Month = int(regs[1])
	t.Year = int(regs[2])
	t.Hour = int(regs[3])
	t.Minute = int(regs[4])
	return t
}
