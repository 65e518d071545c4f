// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/rdz-bridge/internal/zone"
)

type Config struct {
	Bridge BridgeConfig `yaml:"bridge"`
}

type BridgeConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	PollIntervalMs int    `yaml:"poll_interval_ms"`

	Mqtt MqttConfig `yaml:"mqtt"`
	HTTP HTTPConfig `yaml:"http"`

	// Zones is keyed by zero-padded zone id string ("00".."63").
	Zones map[string]ZoneConfig `yaml:"zones"`
}

// ---- MQTT ----

type MqttConfig struct {
	Broker      string `yaml:"broker"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	TopicPrefix string `yaml:"topic_prefix"`
}

// ---- HTTP ----

type HTTPConfig struct {
	Listen string `yaml:"listen"`
}

// ---- ZONE TABLE ----

type ZoneConfig struct {
	Name              string `yaml:"name"`
	Type              string `yaml:"type"`
	LinkedVirtualZone *int   `yaml:"linked_virtual_zone"`
}

// Load reads and parses the YAML config file. It performs no validation.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return &cfg, nil
}

// ZoneTable converts the zone map into the resolver's table form.
// It MUST be called only after Validate().
func (b BridgeConfig) ZoneTable() zone.Table {
	t := make(zone.Table, len(b.Zones))
	for key, zc := range b.Zones {
		id, _ := zoneID(key)
		t[id] = zone.Zone{
			ID:            id,
			Name:          zc.Name,
			Type:          zone.Type(zc.Type),
			LinkedVirtual: zc.LinkedVirtualZone,
		}
	}
	return t
}
