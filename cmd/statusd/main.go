// cmd/statusd/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/tamzrod/statusbank/internal/catalog"
	"github.com/tamzrod/statusbank/internal/config"
	"github.com/tamzrod/statusbank/internal/poller"
	"github.com/tamzrod/statusbank/internal/status"
	"github.com/tamzrod/statusbank/internal/writer"
)

var logger = loggo.GetLogger("statusd")

func main() {
	if len(os.Args) < 2 {
		logger.Criticalf("usage: statusd <config.yaml>")
		os.Exit(2)
	}

	if err := run(os.Args[1]); err != nil {
		logger.Criticalf("%v", errors.ErrorStack(err))
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return errors.Annotate(err, "config load failed")
	}
	if err := config.Validate(cfg); err != nil {
		return errors.Annotate(err, "config validation failed")
	}
	config.Normalize(cfg)

	if err := loggo.ConfigureLoggers("<root>=" + cfg.Log.Level); err != nil {
		return errors.Trace(err)
	}

	// --------------------
	// Catalog + registry
	// --------------------

	cat, err := buildCatalog(cfg.Conditions)
	if err != nil {
		return errors.Trace(err)
	}
	logger.Infof("catalog loaded: %d conditions", cat.Len())

	reg := buildRegistry(cfg.Registry)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	// ---- condition feed ----
	if cfg.Poll != nil {
		p, closePoller, err := poller.Build(*cfg.Poll, cat, reg, clock.WallClock)
		if err != nil {
			return errors.Annotatef(err, "poller build failed (endpoint=%s)", cfg.Poll.Endpoint)
		}
		defer closePoller()

		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Run(ctx)
		}()
		logger.Infof("polling %s: %d watches", cfg.Poll.Endpoint, len(cfg.Poll.Watches))
	}

	// ---- register block publisher ----
	if cfg.Publish != nil {
		w, plan, closeWriter, err := writer.Build(*cfg.Publish)
		if err != nil {
			return errors.Annotatef(err, "writer build failed (endpoint=%s)", cfg.Publish.Endpoint)
		}
		defer closeWriter()

		wg.Add(1)
		go func() {
			defer wg.Done()
			writer.Run(ctx, clock.WallClock, plan.Interval, plan.Endpoint, w, reg)
		}()
		logger.Infof("publishing to %s at %d (%d registers)", plan.Endpoint, plan.Address, status.BlockSize)
	}

	<-ctx.Done()
	logger.Infof("shutting down")
	wg.Wait()

	if active := cat.Active(reg.Capture()); len(active) > 0 {
		logger.Infof("active at exit: %v", active)
	}
	return nil
}

// buildCatalog returns the configured condition table, or the built-in
// one when none is configured. Input is validated and normalized.
func buildCatalog(conds []config.ConditionConfig) (*catalog.Catalog, error) {
	if len(conds) == 0 {
		return catalog.Default(), nil
	}

	entries := make([]catalog.Entry, 0, len(conds))
	for _, c := range conds {
		class, err := status.ParseClass(c.Class)
		if err != nil {
			return nil, errors.Annotatef(err, "condition %s", c.Name)
		}
		entries = append(entries, catalog.Entry{
			Name:  c.Name,
			Class: class,
			ID:    status.Encode(c.Bank, c.Bit),
		})
	}
	return catalog.New(entries)
}

func buildRegistry(rc config.RegistryConfig) *status.Registry {
	var opts []status.Option

	if rc.Locking == config.LockingMutex {
		opts = append(opts, status.WithLocker(&sync.Mutex{}))
	}

	if rc.Strict {
		opts = append(opts, status.WithErrorSink(status.PanicSink))
	} else {
		opts = append(opts, status.WithErrorSink(status.ErrorSinkFunc(func(kind status.ErrorKind, id status.ID) {
			logger.Warningf("registry: %s (id=%s)", kind, id)
		})))
	}

	return status.New(opts...)
}
