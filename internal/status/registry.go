// internal/status/registry.go
package status

import (
	"sync"
	"sync/atomic"
)

// Registry records which conditions are active, per class, in fixed banks.
//
// Mutators, ClearAll, Snapshot, Capture and Init run their read-modify-write
// inside the critical section provided by the configured locker. IsSet, Any
// and Last are lock-free loads: they observe a value that was valid at some
// recent instant but are not linearizable with a concurrent mutator.
//
// Without WithLocker the critical section is a no-op and concurrent mutators
// may lose updates. Pass a *sync.Mutex (or an interrupt-mask locker) for
// multi-context use.
//
// Always construct with New. A zero Registry has zeroed banks but its
// last-set trackers read 0 instead of IDUnset until Init is called.
type Registry struct {
	mu   sync.Locker
	sink atomic.Pointer[sinkBox]

	// Bank words are 16 bits wide; atomic.Uint32 cells keep lock-free
	// readers race-free.
	banks [NumClasses][NumBanks]atomic.Uint32
	last  [NumClasses]atomic.Uint32
}

type sinkBox struct {
	s ErrorSink
}

// Option configures a Registry at construction.
type Option func(*Registry)

// WithLocker installs the critical-section guard.
func WithLocker(l sync.Locker) Option {
	return func(r *Registry) {
		r.mu = l
	}
}

// WithErrorSink installs the initial error sink.
func WithErrorSink(s ErrorSink) Option {
	return func(r *Registry) {
		r.SetErrorSink(s)
	}
}

// New builds an initialized registry.
func New(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	r.Init()
	return r
}

// Init zeroes every bank of every class and resets all last-set trackers.
// It is idempotent and may be called again at any time to reset state.
func (r *Registry) Init() {
	r.enter()
	defer r.exit()

	for c := range r.banks {
		for b := range r.banks[c] {
			r.banks[c][b].Store(0)
		}
		r.last[c].Store(uint32(IDUnset))
	}
}

// SetErrorSink installs or replaces the error sink. nil disables reporting.
func (r *Registry) SetErrorSink(s ErrorSink) {
	if s == nil {
		r.sink.Store(nil)
		return
	}
	r.sink.Store(&sinkBox{s: s})
}

// ---- mutators ----

// Set raises id in class c and records it as the class's last-set ID.
func (r *Registry) Set(c Class, id ID) {
	if !r.check(c, id) {
		return
	}
	w := &r.banks[c][id.Bank()]

	r.enter()
	defer r.exit()

	w.Store(w.Load() | id.mask())
	r.last[c].Store(uint32(id))
}

// Clear lowers id in class c. The last-set tracker is left alone.
func (r *Registry) Clear(c Class, id ID) {
	if !r.check(c, id) {
		return
	}
	w := &r.banks[c][id.Bank()]

	r.enter()
	defer r.exit()

	w.Store(w.Load() &^ id.mask())
}

// Toggle flips id in class c. The last-set tracker is left alone.
func (r *Registry) Toggle(c Class, id ID) {
	if !r.check(c, id) {
		return
	}
	w := &r.banks[c][id.Bank()]

	r.enter()
	defer r.exit()

	w.Store(w.Load() ^ id.mask())
}

// ClearAll zeroes every bank of class c. The last-set tracker is historical
// and is not reset.
func (r *Registry) ClearAll(c Class) {
	if !c.Valid() {
		r.report(InvalidID, IDUnset)
		return
	}

	r.enter()
	defer r.exit()

	for b := range r.banks[c] {
		r.banks[c][b].Store(0)
	}
}

// ---- queries ----

// IsSet reports whether id is currently raised in class c.
// Invalid input is reported and yields false.
func (r *Registry) IsSet(c Class, id ID) bool {
	if !r.check(c, id) {
		return false
	}
	return r.banks[c][id.Bank()].Load()&id.mask() != 0
}

// Any reports whether any bit of class c is raised.
func (r *Registry) Any(c Class) bool {
	if !c.Valid() {
		r.report(InvalidID, IDUnset)
		return false
	}
	for b := range r.banks[c] {
		if r.banks[c][b].Load() != 0 {
			return true
		}
	}
	return false
}

// Last returns the most recently set ID of class c, or IDUnset if nothing
// was set since Init. It reflects history, not current membership: a later
// Clear of that ID does not change it.
func (r *Registry) Last(c Class) ID {
	if !c.Valid() {
		r.report(InvalidID, IDUnset)
		return IDUnset
	}
	return ID(r.last[c].Load())
}

// ---- snapshots ----

// Snapshot copies the first min(len(dst), NumBanks) bank words of class c
// into dst and returns how many were copied. A dst shorter than NumBanks
// receives a truncated prefix; this is intended. A nil or empty dst is
// reported as NullPointer and nothing is copied.
func (r *Registry) Snapshot(c Class, dst []uint16) int {
	if !c.Valid() {
		r.report(InvalidID, IDUnset)
		return 0
	}
	if len(dst) == 0 {
		r.report(NullPointer, IDUnset)
		return 0
	}
	n := min(len(dst), NumBanks)

	r.enter()
	defer r.exit()

	for b := 0; b < n; b++ {
		dst[b] = uint16(r.banks[c][b].Load())
	}
	return n
}

// Capture copies every class's banks and last-set IDs under a single
// critical section.
func (r *Registry) Capture() Snapshot {
	var s Snapshot

	r.enter()
	defer r.exit()

	for c := range r.banks {
		for b := range r.banks[c] {
			s.Banks[c][b] = uint16(r.banks[c][b].Load())
		}
		s.Last[c] = ID(r.last[c].Load())
	}
	return s
}

// ---- internals ----

// check validates (c, id) in bank, bit, class order and reports the first
// violation. No state is touched before it returns true.
func (r *Registry) check(c Class, id ID) bool {
	switch {
	case id.Bank() >= NumBanks:
		r.report(InvalidBank, id)
	case id.Bit() >= BitsPerBank:
		r.report(InvalidBit, id)
	case !c.Valid():
		r.report(InvalidID, id)
	default:
		return true
	}
	return false
}

func (r *Registry) report(kind ErrorKind, id ID) {
	if b := r.sink.Load(); b != nil {
		b.s.ReportError(kind, id)
	}
}

func (r *Registry) enter() {
	if r.mu != nil {
		r.mu.Lock()
	}
}

func (r *Registry) exit() {
	if r.mu != nil {
		r.mu.Unlock()
	}
}
