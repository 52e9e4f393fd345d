// internal/poller/poller_test.go
package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"go.uber.org/goleak"

	"github.com/tamzrod/statusbank/internal/status"
)

type fakeClient struct {
	mu     sync.Mutex
	failFC uint8
	coils  map[uint16]bool
	inputs map[uint16]bool
	regs   map[uint16]uint16
	reads  int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		coils:  map[uint16]bool{},
		inputs: map[uint16]bool{},
		regs:   map[uint16]uint16{},
	}
}

func (f *fakeClient) ReadCoils(addr, qty uint16) ([]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.failFC == 1 {
		return nil, errors.New("fail fc1")
	}
	return []bool{f.coils[addr]}, nil
}

func (f *fakeClient) ReadDiscreteInputs(addr, qty uint16) ([]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.failFC == 2 {
		return nil, errors.New("fail fc2")
	}
	return []bool{f.inputs[addr]}, nil
}

func (f *fakeClient) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.failFC == 3 {
		return nil, errors.New("fail fc3")
	}
	return []uint16{f.regs[addr]}, nil
}

func (f *fakeClient) ReadInputRegisters(addr, qty uint16) ([]uint16, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.failFC == 4 {
		return nil, errors.New("fail fc4")
	}
	return []uint16{f.regs[addr]}, nil
}

func (f *fakeClient) set(fn func(f *fakeClient)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

var (
	overcurrent = Target{Name: "OVERCURRENT", Class: status.Fault, ID: status.Encode(0, 0)}
	tempNear    = Target{Name: "TEMP_NEAR_LIMIT", Class: status.Warning, ID: status.Encode(4, 0)}
	acLive      = Target{Name: "AC_LIVE", Class: status.Info, ID: status.Encode(0, 0)}
	canTimeout  = Target{Name: "CAN_TIMEOUT", Class: status.Fault, ID: status.Encode(2, 0)}
)

func testConfig(clk *testclock.Clock) Config {
	return Config{
		Name:     "dev",
		Interval: time.Second,
		Watches: []Watch{
			{Target: overcurrent, FC: 2, Address: 0},
			{Target: tempNear, FC: 3, Address: 10, Bit: 4},
			{Target: acLive, FC: 1, Address: 7, Invert: true},
		},
		CommLoss: &canTimeout,
		Clock:    clk,
	}
}

// ---- tests ----

func TestNew_Validation(t *testing.T) {
	reg := status.New()
	cli := newFakeClient()

	if _, err := New(Config{Interval: 0, Watches: []Watch{{Target: overcurrent, FC: 1}}}, cli, reg); err == nil {
		t.Fatalf("expected interval error")
	}
	if _, err := New(Config{Interval: time.Second}, cli, reg); err == nil {
		t.Fatalf("expected watches error")
	}
	if _, err := New(Config{Interval: time.Second, Watches: []Watch{{Target: overcurrent, FC: 1}}}, cli, nil); err == nil {
		t.Fatalf("expected registry error")
	}
	bad := Target{Name: "BAD", Class: status.Fault, ID: status.IDUnset}
	if _, err := New(Config{Interval: time.Second, Watches: []Watch{{Target: bad, FC: 1}}}, cli, reg); err == nil {
		t.Fatalf("expected invalid target error")
	}
}

func TestPollOnce_MirrorsPoints(t *testing.T) {
	reg := status.New()
	cli := newFakeClient()
	cli.inputs[0] = true
	cli.regs[10] = 1 << 4
	cli.coils[7] = true // inverted: AC_LIVE off

	p, err := New(testConfig(testclock.NewClock(time.Now())), cli, reg)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	res := p.PollOnce()
	if res.Err != nil {
		t.Fatalf("PollOnce err=%v", res.Err)
	}
	if res.Changed != 2 {
		t.Fatalf("expected 2 changes, got %d", res.Changed)
	}
	if !reg.IsSet(overcurrent.Class, overcurrent.ID) {
		t.Fatalf("OVERCURRENT not raised")
	}
	if !reg.IsSet(tempNear.Class, tempNear.ID) {
		t.Fatalf("TEMP_NEAR_LIMIT not raised")
	}
	if reg.IsSet(acLive.Class, acLive.ID) {
		t.Fatalf("AC_LIVE should be low (inverted coil is on)")
	}

	// steady state: nothing changes
	if res := p.PollOnce(); res.Changed != 0 {
		t.Fatalf("expected no changes on steady poll, got %d", res.Changed)
	}

	cli.set(func(f *fakeClient) {
		f.inputs[0] = false
		f.regs[10] = 1 << 3
		f.coils[7] = false
	})
	res = p.PollOnce()
	if res.Changed != 3 {
		t.Fatalf("expected 3 changes, got %d", res.Changed)
	}
	if reg.IsSet(overcurrent.Class, overcurrent.ID) || reg.IsSet(tempNear.Class, tempNear.ID) {
		t.Fatalf("conditions not lowered")
	}
	if !reg.IsSet(acLive.Class, acLive.ID) {
		t.Fatalf("AC_LIVE not raised")
	}
	if reg.Last(status.Fault) != overcurrent.ID {
		t.Fatalf("last fault=%s want OVERCURRENT", reg.Last(status.Fault))
	}
}

func TestPollOnce_FailureRaisesCommLossOnly(t *testing.T) {
	reg := status.New()
	cli := newFakeClient()
	cli.inputs[0] = true

	p, err := New(testConfig(testclock.NewClock(time.Now())), cli, reg)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	if res := p.PollOnce(); res.Err != nil {
		t.Fatalf("PollOnce err=%v", res.Err)
	}

	// Device drops out after the first read; OVERCURRENT must hold its
	// last known state.
	cli.set(func(f *fakeClient) {
		f.failFC = 3
		f.inputs[0] = false
	})
	res := p.PollOnce()
	if res.Err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !reg.IsSet(canTimeout.Class, canTimeout.ID) {
		t.Fatalf("comm-loss not raised")
	}
	if !reg.IsSet(overcurrent.Class, overcurrent.ID) {
		t.Fatalf("watched condition changed on failed cycle")
	}

	cli.set(func(f *fakeClient) { f.failFC = 0 })
	res = p.PollOnce()
	if res.Err != nil {
		t.Fatalf("recovery err=%v", res.Err)
	}
	if reg.IsSet(canTimeout.Class, canTimeout.ID) {
		t.Fatalf("comm-loss not cleared on recovery")
	}
	if reg.IsSet(overcurrent.Class, overcurrent.ID) {
		t.Fatalf("OVERCURRENT not lowered after recovery")
	}
	if reg.Last(status.Fault) != canTimeout.ID {
		t.Fatalf("last fault=%s want CAN_TIMEOUT", reg.Last(status.Fault))
	}
}

func TestRun_TicksAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	clk := testclock.NewClock(time.Now())
	reg := status.New()
	cli := newFakeClient()
	cli.inputs[0] = true

	p, err := New(testConfig(clk), cli, reg)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx)
	}()

	if err := clk.WaitAdvance(time.Second, 5*time.Second, 1); err != nil {
		t.Fatalf("first tick: %v", err)
	}
	// Barrier: the loop is back waiting, so the first cycle has finished.
	if err := clk.WaitAdvance(0, 5*time.Second, 1); err != nil {
		t.Fatalf("barrier: %v", err)
	}

	if !reg.IsSet(overcurrent.Class, overcurrent.ID) {
		t.Fatalf("Run did not poll")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop on cancel")
	}
}
