// internal/poller/runner.go
package poller

import (
	"context"

	"github.com/juju/loggo/v2"
)

var logger = loggo.GetLogger("statusd.poller")

// Run polls every interval until ctx is done.
// One goroutine per poller. No overlap. No retries beyond the next tick.
func (p *Poller) Run(ctx context.Context) {
	failing := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.cfg.Clock.After(p.cfg.Interval):
		}

		res := p.PollOnce()

		switch {
		case res.Err != nil && !failing:
			logger.Errorf("poll %s failed: %v", p.cfg.Name, res.Err)
			failing = true
		case res.Err != nil:
			logger.Debugf("poll %s still failing: %v", p.cfg.Name, res.Err)
		case failing:
			logger.Infof("poll %s recovered", p.cfg.Name)
			failing = false
		}

		if res.Changed > 0 {
			logger.Debugf("poll %s: %d condition(s) changed", p.cfg.Name, res.Changed)
		}
	}
}
