// internal/fieldbus/config.go
package fieldbus

import (
	"time"

	cfg "github.com/tamzrod/statusbank/internal/config"
)

// FromConfig converts a normalized bus section into a dial config.
func FromConfig(b cfg.BusConfig) Config {
	return Config{
		Transport: b.Transport,
		Endpoint:  b.Endpoint,
		UnitID:    b.UnitID,
		Timeout:   time.Duration(b.TimeoutMs) * time.Millisecond,
		Serial: Serial{
			BaudRate: b.Serial.BaudRate,
			DataBits: b.Serial.DataBits,
			Parity:   b.Serial.Parity,
			StopBits: b.Serial.StopBits,
		},
	}
}
