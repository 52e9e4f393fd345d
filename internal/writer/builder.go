// internal/writer/builder.go
package writer

import (
	"time"

	cfg "github.com/tamzrod/statusbank/internal/config"
	"github.com/tamzrod/statusbank/internal/fieldbus"
)

// Build converts a normalized publish section into a BlockWriter and wires
// its fieldbus connection. The returned closer releases the connection.
func Build(pc cfg.PublishConfig) (*BlockWriter, Plan, func() error, error) {
	plan := Plan{
		Endpoint: pc.Endpoint,
		UnitID:   pc.UnitID,
		Address:  pc.Address,
		Interval: time.Duration(pc.IntervalMs) * time.Millisecond,
	}

	client, err := fieldbus.Dial(fieldbus.FromConfig(pc.BusConfig))
	if err != nil {
		return nil, Plan{}, nil, err
	}

	w, err := New(plan, client)
	if err != nil {
		_ = client.Close()
		return nil, Plan{}, nil, err
	}

	return w, plan, client.Close, nil
}
