// internal/poller/builder.go
package poller

import (
	"fmt"
	"time"

	"github.com/juju/clock"

	"github.com/tamzrod/statusbank/internal/catalog"
	cfg "github.com/tamzrod/statusbank/internal/config"
	"github.com/tamzrod/statusbank/internal/fieldbus"
	"github.com/tamzrod/statusbank/internal/status"
)

// Build constructs a Poller from a normalized poll section and wires the
// fieldbus connection. The returned closer releases the connection.
func Build(pc cfg.PollConfig, cat *catalog.Catalog, reg *status.Registry, clk clock.Clock) (*Poller, func() error, error) {
	watches := make([]Watch, 0, len(pc.Watches))
	for _, w := range pc.Watches {
		t, err := resolve(cat, w.Condition)
		if err != nil {
			return nil, nil, err
		}
		watches = append(watches, Watch{
			Target:  t,
			FC:      w.FC,
			Address: w.Address,
			Bit:     w.Bit,
			Invert:  w.Invert,
		})
	}

	var commLoss *Target
	if pc.CommLoss != "" {
		t, err := resolve(cat, pc.CommLoss)
		if err != nil {
			return nil, nil, err
		}
		commLoss = &t
	}

	// initial connection (fail fast at startup)
	client, err := fieldbus.Dial(fieldbus.FromConfig(pc.BusConfig))
	if err != nil {
		return nil, nil, err
	}

	p, err := New(
		Config{
			Name:     pc.Endpoint,
			Interval: time.Duration(pc.IntervalMs) * time.Millisecond,
			Watches:  watches,
			CommLoss: commLoss,
			Clock:    clk,
		},
		client,
		reg,
	)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	return p, client.Close, nil
}

func resolve(cat *catalog.Catalog, name string) (Target, error) {
	e, ok := cat.Lookup(name)
	if !ok {
		return Target{}, fmt.Errorf("poller: unknown condition %q", name)
	}
	return Target{Name: e.Name, Class: e.Class, ID: e.ID}, nil
}
