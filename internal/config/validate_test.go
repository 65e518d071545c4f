// internal/config/validate_test.go
package config

import "testing"

func intp(v int) *int { return &v }

// helper to build a config quickly
func bridgeWith(zones map[string]ZoneConfig) *Config {
	return &Config{
		Bridge: BridgeConfig{
			Host:  "10.0.0.7",
			Zones: zones,
		},
	}
}

// ---- tests ----

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := bridgeWith(nil)

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_HostRequired(t *testing.T) {
	cfg := &Config{}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for missing host, got nil")
	}
}

func TestValidate_ValidLink(t *testing.T) {
	cfg := bridgeWith(map[string]ZoneConfig{
		"05": {Name: "Living", Type: "real", LinkedVirtualZone: intp(40)},
		"40": {Name: "Living cool", Type: "virtual"},
	})

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ZoneIDOutOfRange(t *testing.T) {
	cfg := bridgeWith(map[string]ZoneConfig{
		"64": {Type: "real"},
	})

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected out-of-range error, got nil")
	}
}

func TestValidate_UnknownType(t *testing.T) {
	cfg := bridgeWith(map[string]ZoneConfig{
		"05": {Type: "phantom"},
	})

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected unknown type error, got nil")
	}
}

func TestValidate_LinkOnVirtualRejected(t *testing.T) {
	cfg := bridgeWith(map[string]ZoneConfig{
		"05": {Type: "virtual", LinkedVirtualZone: intp(40)},
		"40": {Type: "virtual"},
	})

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error: link on non-real zone")
	}
}

func TestValidate_LinkTargetMustBeVirtual(t *testing.T) {
	cfg := bridgeWith(map[string]ZoneConfig{
		"05": {Type: "real", LinkedVirtualZone: intp(6)},
		"06": {Type: "real"},
	})

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error: link target is real")
	}
}

func TestValidate_LinkTargetMustExist(t *testing.T) {
	cfg := bridgeWith(map[string]ZoneConfig{
		"05": {Type: "real", LinkedVirtualZone: intp(40)},
	})

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error: link target undeclared")
	}
}

func TestValidate_VirtualZoneLinkedTwice(t *testing.T) {
	cfg := bridgeWith(map[string]ZoneConfig{
		"05": {Type: "real", LinkedVirtualZone: intp(40)},
		"06": {Type: "real", LinkedVirtualZone: intp(40)},
		"40": {Type: "virtual"},
	})

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error: virtual zone linked twice")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := bridgeWith(nil)
	Normalize(cfg)

	if cfg.Bridge.Port != DefaultPort {
		t.Fatalf("expected default port %d, got %d", DefaultPort, cfg.Bridge.Port)
	}
	if cfg.Bridge.PollIntervalMs != DefaultPollIntervalMs {
		t.Fatalf("expected default interval, got %d", cfg.Bridge.PollIntervalMs)
	}
	if cfg.Bridge.Mqtt.TopicPrefix != DefaultTopicPrefix {
		t.Fatalf("expected default topic prefix, got %q", cfg.Bridge.Mqtt.TopicPrefix)
	}
}

func TestZoneTable(t *testing.T) {
	cfg := bridgeWith(map[string]ZoneConfig{
		"05": {Name: "Living", Type: "real", LinkedVirtualZone: intp(40)},
		"40": {Type: "virtual"},
	})

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tbl := cfg.Bridge.ZoneTable()
	if len(tbl) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(tbl))
	}

	z := tbl.Get(5)
	if z.Name != "Living" || z.LinkedVirtual == nil || *z.LinkedVirtual != 40 {
		t.Fatalf("unexpected zone 5: %+v", z)
	}
}
