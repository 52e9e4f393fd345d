// internal/config/normalize.go
package config

import "strings"

// Defaults applied by Normalize.
const (
	DefaultLevel      = "INFO"
	DefaultIntervalMs = 1000
	DefaultTimeoutMs  = 1000
	DefaultBaudRate   = 19200
	DefaultDataBits   = 8
	DefaultParity     = "E"
	DefaultStopBits   = 1
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Registry.Locking == "" {
		cfg.Registry.Locking = LockingMutex
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLevel
	}
	cfg.Log.Level = strings.ToUpper(cfg.Log.Level)

	// Condition names are matched upper-case everywhere downstream.
	for i := range cfg.Conditions {
		c := &cfg.Conditions[i]
		c.Name = upper(c.Name)
		c.Class = strings.ToLower(strings.TrimSpace(c.Class))
	}

	if p := cfg.Poll; p != nil {
		normalizeBus(&p.BusConfig)
		if p.IntervalMs == 0 {
			p.IntervalMs = DefaultIntervalMs
		}
		p.CommLoss = upper(p.CommLoss)
		for i := range p.Watches {
			p.Watches[i].Condition = upper(p.Watches[i].Condition)
		}
	}

	if p := cfg.Publish; p != nil {
		normalizeBus(&p.BusConfig)
		if p.IntervalMs == 0 {
			p.IntervalMs = DefaultIntervalMs
		}
	}
}

func normalizeBus(b *BusConfig) {
	b.Endpoint = strings.TrimSpace(b.Endpoint)
	if b.Transport == "" {
		b.Transport = TransportTCP
	}
	if b.TimeoutMs == 0 {
		b.TimeoutMs = DefaultTimeoutMs
	}

	// Serial settings only matter for RTU; leave TCP configs untouched.
	if b.Transport != TransportRTU {
		return
	}
	if b.Serial.BaudRate == 0 {
		b.Serial.BaudRate = DefaultBaudRate
	}
	if b.Serial.DataBits == 0 {
		b.Serial.DataBits = DefaultDataBits
	}
	if b.Serial.Parity == "" {
		b.Serial.Parity = DefaultParity
	}
	b.Serial.Parity = strings.ToUpper(b.Serial.Parity)
	if b.Serial.StopBits == 0 {
		b.Serial.StopBits = DefaultStopBits
	}
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
