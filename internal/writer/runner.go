// internal/writer/runner.go
package writer

import (
	"context"
	"time"

	"github.com/juju/clock"
	"github.com/juju/loggo/v2"
)

var logger = loggo.GetLogger("statusd.writer")

// Run publishes src on start and then every interval until ctx is done.
func Run(ctx context.Context, clk clock.Clock, interval time.Duration, name string, w SnapshotWriter, src Source) {
	if clk == nil {
		clk = clock.WallClock
	}
	failing := false

	for {
		err := w.WriteSnapshot(src.Capture())

		switch {
		case err != nil && !failing:
			logger.Errorf("publish %s failed: %v", name, err)
			failing = true
		case err != nil:
			logger.Debugf("publish %s still failing: %v", name, err)
		case failing:
			logger.Infof("publish %s recovered", name)
			failing = false
		}

		select {
		case <-ctx.Done():
			return
		case <-clk.After(interval):
		}
	}
}
