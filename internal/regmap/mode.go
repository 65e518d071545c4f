// internal/regmap/mode.go
package regmap

// Mode is the per-zone operating mode register value.
type Mode int

const (
	ModeOff    Mode = 0
	ModeMan    Mode = 1
	ModePgm    Mode = 2
	ModePgmMan Mode = 3
)

// String returns the display label. Unknown values fall back to "Off".
func (m Mode) String() string {
	switch m {
	case ModeMan:
		return "Man"
	case ModePgm:
		return "Pgm"
	case ModePgmMan:
		return "Pgm/Man"
	case ModeOff:
		return "Off"
	default:
		return "Off"
	}
}

// ModeFromLabel is the inverse of String. ok is false for unknown labels.
func ModeFromLabel(s string) (Mode, bool) {
	switch s {
	case "Off":
		return ModeOff, true
	case "Man":
		return ModeMan, true
	case "Pgm":
		return ModePgm, true
	case "Pgm/Man":
		return ModePgmMan, true
	default:
		return ModeOff, false
	}
}

// DecodeModes maps mode registers to zone ids.
func DecodeModes(regs []uint16) map[int]Mode {
	out := make(map[int]Mode, len(regs))
	for i, v := range regs {
		out[i] = Mode(v)
	}
	return out
}
