// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/statusbank/internal/status"
)

// Target is one registry condition.
type Target struct {
	Name  string
	Class status.Class
	ID    status.ID
}

// Watch binds one remote point to a condition.
// FC 1/2 read a single coil/discrete input; FC 3/4 read one register and
// test Bit. Invert flips the sense.
type Watch struct {
	Target
	FC      uint8
	Address uint16
	Bit     uint8
	Invert  bool
}

// Result is the outcome of one poll cycle.
type Result struct {
	At      time.Time
	Changed int   // conditions raised or lowered by this cycle
	Err     error // non-nil means the cycle failed; watched conditions untouched
}
