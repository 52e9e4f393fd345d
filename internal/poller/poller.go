// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"time"

	"github.com/juju/clock"

	"github.com/tamzrod/statusbank/internal/status"
)

// Client abstracts Modbus operations needed by the poller.
// The poller depends on geometry only.
type Client interface {
	ReadCoils(addr, qty uint16) ([]bool, error)              // FC 1
	ReadDiscreteInputs(addr, qty uint16) ([]bool, error)     // FC 2
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) // FC 3
	ReadInputRegisters(addr, qty uint16) ([]uint16, error)   // FC 4
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Name     string // for logs
	Interval time.Duration
	Watches  []Watch
	CommLoss *Target // raised while a cycle fails (optional)
	Clock    clock.Clock
}

// Poller mirrors remote points into registry conditions.
// It is the only writer of the conditions it watches.
type Poller struct {
	cfg    Config
	client Client
	reg    *status.Registry
}

// New creates a poller with immutable config.
func New(cfg Config, client Client, reg *status.Registry) (*Poller, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if len(cfg.Watches) == 0 {
		return nil, errors.New("poller: at least one watch required")
	}
	if client == nil || reg == nil {
		return nil, errors.New("poller: client and registry required")
	}
	for _, w := range cfg.Watches {
		if !w.Class.Valid() || !w.ID.Valid() {
			return nil, fmt.Errorf("poller: watch %q has invalid target %s/%s", w.Name, w.Class, w.ID)
		}
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	return &Poller{cfg: cfg, client: client, reg: reg}, nil
}

// PollOnce performs exactly one poll cycle.
// All-or-nothing: any read failure aborts the cycle before any watched
// condition changes, and raises the comm-loss condition.
func (p *Poller) PollOnce() Result {
	res := Result{At: p.cfg.Clock.Now()}

	active := make([]bool, len(p.cfg.Watches))
	for i, w := range p.cfg.Watches {
		v, err := p.read(w)
		if err != nil {
			res.Err = fmt.Errorf("poller: %s fc=%d addr=%d: %w", w.Name, w.FC, w.Address, err)
			if p.cfg.CommLoss != nil && p.apply(*p.cfg.CommLoss, true) {
				res.Changed++
			}
			return res
		}
		active[i] = v != w.Invert
	}

	// Commit only if all reads succeeded
	for i, w := range p.cfg.Watches {
		if p.apply(w.Target, active[i]) {
			res.Changed++
		}
	}
	if p.cfg.CommLoss != nil && p.apply(*p.cfg.CommLoss, false) {
		res.Changed++
	}

	return res
}

// apply drives t to the wanted state and reports whether it changed.
// Only transitions call Set, so the class last-set tracker records
// activations, not every poll.
func (p *Poller) apply(t Target, on bool) bool {
	if p.reg.IsSet(t.Class, t.ID) == on {
		return false
	}
	if on {
		p.reg.Set(t.Class, t.ID)
	} else {
		p.reg.Clear(t.Class, t.ID)
	}
	return true
}

func (p *Poller) read(w Watch) (bool, error) {
	switch w.FC {
	case 1:
		bits, err := p.client.ReadCoils(w.Address, 1)
		return firstBit(bits, err)
	case 2:
		bits, err := p.client.ReadDiscreteInputs(w.Address, 1)
		return firstBit(bits, err)
	case 3:
		regs, err := p.client.ReadHoldingRegisters(w.Address, 1)
		return registerBit(regs, w.Bit, err)
	case 4:
		regs, err := p.client.ReadInputRegisters(w.Address, 1)
		return registerBit(regs, w.Bit, err)
	default:
		return false, errors.New("unsupported function code")
	}
}

func firstBit(bits []bool, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	if len(bits) < 1 {
		return false, errors.New("empty bit response")
	}
	return bits[0], nil
}

func registerBit(regs []uint16, bit uint8, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	if len(regs) < 1 {
		return false, errors.New("empty register response")
	}
	return regs[0]&(1<<bit) != 0, nil
}
