// internal/bridge/models.go
package bridge

// Home Assistant MQTT discovery payloads.

type deviceInfo struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model"`
}

type climateConfig struct {
	UniqueID                string     `json:"unique_id"`
	Name                    string     `json:"name"`
	Device                  deviceInfo `json:"device"`
	CurrentTemperatureTopic string     `json:"current_temperature_topic"`
	TemperatureStateTopic   string     `json:"temperature_state_topic"`
	TemperatureCommandTopic string     `json:"temperature_command_topic,omitempty"`
	ModeStateTopic          string     `json:"mode_state_topic"`
	ActionTopic             string     `json:"action_topic"`
	PresetModeStateTopic    string     `json:"preset_mode_state_topic"`
	PresetModeCommandTopic  string     `json:"preset_mode_command_topic,omitempty"`
	PresetModes             []string   `json:"preset_modes"`
	Modes                   []string   `json:"modes"`
	MinTemp                 float64    `json:"min_temp"`
	MaxTemp                 float64    `json:"max_temp"`
	TempStep                float64    `json:"temp_step"`
}

type sensorConfig struct {
	UniqueID          string     `json:"unique_id"`
	Name              string     `json:"name"`
	Device            deviceInfo `json:"device"`
	DeviceClass       string     `json:"device_class,omitempty"`
	StateTopic        string     `json:"state_topic"`
	UnitOfMeasurement string     `json:"unit_of_measurement,omitempty"`
}

type switchConfig struct {
	UniqueID     string     `json:"unique_id"`
	Name         string     `json:"name"`
	Device       deviceInfo `json:"device"`
	StateTopic   string     `json:"state_topic"`
	CommandTopic string     `json:"command_topic"`
}
