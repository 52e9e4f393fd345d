// internal/writer/types.go
package writer

import (
	"time"

	"github.com/tamzrod/statusbank/internal/status"
)

// Plan is where and how often one register block is published.
type Plan struct {
	Endpoint string // for logs
	UnitID   uint8
	Address  uint16 // first register of the block
	Interval time.Duration
}

// Source yields registry snapshots. *status.Registry satisfies it.
type Source interface {
	Capture() status.Snapshot
}

// SnapshotWriter is the delivery-only contract for registry snapshots.
type SnapshotWriter interface {
	WriteSnapshot(s status.Snapshot) error
}
