// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultPort           = 8000
	DefaultPollIntervalMs = 30000
	DefaultTopicPrefix    = "rdz"
	DefaultHTTPListen     = ":8080"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	b := &cfg.Bridge

	if b.Port == 0 {
		b.Port = DefaultPort
	}
	if b.PollIntervalMs == 0 {
		b.PollIntervalMs = DefaultPollIntervalMs
	}
	if b.Mqtt.TopicPrefix == "" {
		b.Mqtt.TopicPrefix = DefaultTopicPrefix
	}
	if b.HTTP.Listen == "" {
		b.HTTP.Listen = DefaultHTTPListen
	}
}
