// internal/regmap/decode_test.go
package regmap

import (
	"math"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	// encode(decode(x)) == x for every representable register value
	// in the plausible temperature range.
	for raw := uint16(0); raw <= 500; raw++ {
		v := float64(raw) / Scale
		if got := EncodeScaled(v); got != raw {
			t.Fatalf("round trip broke at %d: got %d", raw, got)
		}
	}
}

func TestEncodeScaledRounds(t *testing.T) {
	if got := EncodeScaled(21.55); got != 216 {
		t.Fatalf("expected 216, got %d", got)
	}
	if got := EncodeScaled(21.54); got != 215 {
		t.Fatalf("expected 215, got %d", got)
	}
}

func TestDecodeTemperaturesSuppressesZero(t *testing.T) {
	out := DecodeTemperatures([]uint16{0, 100, 0})

	if len(out) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(out))
	}
	if out[1] != 10.0 {
		t.Fatalf("expected zone 1 = 10.0, got %v", out[1])
	}
	if _, ok := out[0]; ok {
		t.Fatalf("zone 0 must be absent")
	}
	if _, ok := out[2]; ok {
		t.Fatalf("zone 2 must be absent")
	}
}

func TestDecodeScaledKeepsZero(t *testing.T) {
	// Zero suppression applies to current temperatures only.
	out := DecodeScaled([]uint16{0, 215})

	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out))
	}
	if out[0] != 0.0 {
		t.Fatalf("expected zone 0 = 0.0, got %v", out[0])
	}
	if math.Abs(out[1]-21.5) > 1e-9 {
		t.Fatalf("expected zone 1 = 21.5, got %v", out[1])
	}
}

func TestDecodeZoneBitmaskOrdering(t *testing.T) {
	regs := []uint16{0x0001, 0x0001, 0x0001, 0x0001}
	out := DecodeZoneBitmask(regs)

	if len(out) != 64 {
		t.Fatalf("expected 64 entries, got %d", len(out))
	}
	for k := 0; k < 4; k++ {
		if !out[16*k] {
			t.Fatalf("bit 0 of register %d must map to zone %d", k, 16*k)
		}
	}
	for z, on := range out {
		if on && z%16 != 0 {
			t.Fatalf("unexpected set bit at zone %d", z)
		}
	}
}

func TestDecodeZoneBitmaskHighBits(t *testing.T) {
	out := DecodeZoneBitmask([]uint16{0x8000, 0, 0x0004, 0})

	if !out[15] {
		t.Fatalf("bit 15 of register 0 must map to zone 15")
	}
	if !out[34] {
		t.Fatalf("bit 2 of register 2 must map to zone 34")
	}
}

func TestDecodePumpBitmaskOneBased(t *testing.T) {
	out := DecodePumpBitmask(0x0081)

	if len(out) != 8 {
		t.Fatalf("expected 8 entries, got %d", len(out))
	}
	if !out[1] || !out[8] {
		t.Fatalf("expected pumps 1 and 8 active, got %v", out)
	}
	if out[2] {
		t.Fatalf("pump 2 must be inactive")
	}
}

func TestDecodeSystemCoilsOneBased(t *testing.T) {
	out := DecodeSystemCoils([]bool{true, false, true})

	if !out[1] || out[2] || !out[3] {
		t.Fatalf("unexpected mapping: %v", out)
	}
}

func TestDecodeTimePositional(t *testing.T) {
	ts := DecodeTime([]uint16{31, 2, 2026, 23, 59})

	want := TimeSettings{Day: 31, Month: 2, Year: 2026, Hour: 23, Minute: 59}
	if ts != want {
		t.Fatalf("expected %+v, got %+v", want, ts)
	}
}

func TestModeFallback(t *testing.T) {
	if Mode(9).String() != "Off" {
		t.Fatalf("unknown mode must display as Off")
	}
	if ModePgmMan.String() != "Pgm/Man" {
		t.Fatalf("unexpected label: %s", ModePgmMan)
	}
	if _, ok := ModeFromLabel("Auto"); ok {
		t.Fatalf("unknown label must not resolve")
	}
}
