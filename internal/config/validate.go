// internal/config/validate.go
package config

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/tamzrod/statusbank/internal/catalog"
	"github.com/tamzrod/statusbank/internal/status"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Condition names are compared case-insensitively; Normalize upper-cases them.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.NotValidf("nil config")
	}

	switch cfg.Registry.Locking {
	case "", LockingNone, LockingMutex:
	default:
		return errors.NotValidf("registry.locking %q", cfg.Registry.Locking)
	}

	if cfg.Log.Level != "" {
		if _, ok := loggo.ParseLevel(cfg.Log.Level); !ok {
			return errors.NotValidf("log.level %q", cfg.Log.Level)
		}
	}

	known, err := validateConditions(cfg.Conditions)
	if err != nil {
		return err
	}

	if cfg.Poll != nil {
		if err := validatePoll(cfg.Poll, known); err != nil {
			return err
		}
	}

	if cfg.Publish != nil {
		if err := validateBus("publish", cfg.Publish.BusConfig); err != nil {
			return err
		}
		if cfg.Publish.IntervalMs < 0 {
			return errors.NotValidf("publish.interval_ms %d", cfg.Publish.IntervalMs)
		}
		if int(cfg.Publish.Address)+status.BlockSize > 0x10000 {
			return errors.NotValidf(
				"publish.address %d: block of %d registers exceeds address space",
				cfg.Publish.Address, status.BlockSize,
			)
		}
	}

	return nil
}

// validateConditions returns the set of usable condition names (upper-case).
// An empty list means the built-in catalog.
func validateConditions(conds []ConditionConfig) (map[string]struct{}, error) {
	known := make(map[string]struct{})

	if len(conds) == 0 {
		for _, e := range catalog.DefaultEntries() {
			known[e.Name] = struct{}{}
		}
		return known, nil
	}

	// key = class | bank | bit
	owner := make(map[string]string)

	for i, c := range conds {
		name := strings.ToUpper(strings.TrimSpace(c.Name))
		if name == "" {
			return nil, errors.NotValidf("conditions[%d]: empty name", i)
		}
		if _, dup := known[name]; dup {
			return nil, errors.NotValidf("conditions: duplicate name %q", name)
		}

		class, err := status.ParseClass(c.Class)
		if err != nil {
			return nil, errors.NotValidf("condition %q: class %q", name, c.Class)
		}
		if _, err := status.MakeID(c.Bank, c.Bit); err != nil {
			return nil, errors.NotValidf("condition %q: %v", name, err)
		}

		key := fmt.Sprintf("%s|%d|%d", class, c.Bank, c.Bit)
		if prev, exists := owner[key]; exists {
			return nil, errors.NotValidf(
				"condition collision: class=%s bank=%d bit=%d used by %q and %q",
				class, c.Bank, c.Bit, prev, name,
			)
		}

		owner[key] = name
		known[name] = struct{}{}
	}

	return known, nil
}

func validatePoll(p *PollConfig, known map[string]struct{}) error {
	if err := validateBus("poll", p.BusConfig); err != nil {
		return err
	}
	if p.IntervalMs < 0 {
		return errors.NotValidf("poll.interval_ms %d", p.IntervalMs)
	}
	if len(p.Watches) == 0 {
		return errors.NotValidf("poll: no watches")
	}

	lookup := func(what, name string) (string, error) {
		n := strings.ToUpper(strings.TrimSpace(name))
		if _, ok := known[n]; !ok {
			return "", errors.NotValidf("%s: unknown condition %q", what, name)
		}
		return n, nil
	}

	commLoss := ""
	if p.CommLoss != "" {
		n, err := lookup("poll.comm_loss", p.CommLoss)
		if err != nil {
			return err
		}
		commLoss = n
	}

	// key = fc | address | bit
	points := make(map[string]string)
	driven := make(map[string]struct{})

	for i, w := range p.Watches {
		what := fmt.Sprintf("poll.watches[%d]", i)

		name, err := lookup(what, w.Condition)
		if err != nil {
			return err
		}
		if name == commLoss {
			return errors.NotValidf("%s: condition %q is also poll.comm_loss", what, name)
		}
		if _, dup := driven[name]; dup {
			return errors.NotValidf("%s: condition %q driven by more than one watch", what, name)
		}

		switch w.FC {
		case 1, 2:
			if w.Bit != 0 {
				return errors.NotValidf("%s: bit %d on bit-addressed fc %d", what, w.Bit, w.FC)
			}
		case 3, 4:
			if w.Bit >= status.BitsPerBank {
				return errors.NotValidf("%s: bit %d (max %d)", what, w.Bit, status.BitsPerBank-1)
			}
		default:
			return errors.NotValidf("%s: fc %d", what, w.FC)
		}

		key := fmt.Sprintf("%d|%d|%d", w.FC, w.Address, w.Bit)
		if prev, exists := points[key]; exists {
			return errors.NotValidf(
				"%s: point fc=%d address=%d bit=%d already watched for %q",
				what, w.FC, w.Address, w.Bit, prev,
			)
		}

		points[key] = name
		driven[name] = struct{}{}
	}

	return nil
}

func validateBus(section string, b BusConfig) error {
	if strings.TrimSpace(b.Endpoint) == "" {
		return errors.NotValidf("%s.endpoint empty", section)
	}
	switch b.Transport {
	case "", TransportTCP:
	case TransportRTU:
		switch strings.ToUpper(b.Serial.Parity) {
		case "", "N", "E", "O":
		default:
			return errors.NotValidf("%s.serial.parity %q", section, b.Serial.Parity)
		}
		if b.Serial.BaudRate < 0 || b.Serial.DataBits < 0 || b.Serial.StopBits < 0 {
			return errors.NotValidf("%s.serial: negative setting", section)
		}
	default:
		return errors.NotValidf("%s.transport %q", section, b.Transport)
	}
	if b.TimeoutMs < 0 {
		return errors.NotValidf("%s.timeout_ms %d", section, b.TimeoutMs)
	}
	return nil
}
