// internal/writer/writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/statusbank/internal/status"
)

// endpointClient is the exact contract the writer uses.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

// BlockWriter publishes the encoded registry block into holding registers.
// The first write, and the first write after any failure, re-asserts the
// full block. Otherwise only changed register runs are written.
type BlockWriter struct {
	plan Plan
	cli  endpointClient

	needFull bool
	last     []uint16
}

var _ SnapshotWriter = (*BlockWriter)(nil)

// New builds a block writer for plan over cli.
func New(plan Plan, cli endpointClient) (*BlockWriter, error) {
	if cli == nil {
		return nil, errors.New("writer: client required")
	}
	if int(plan.Address)+status.BlockSize > 0x10000 {
		return nil, fmt.Errorf("writer: block at %d overflows register space", plan.Address)
	}
	return &BlockWriter{
		plan:     plan,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
	}, nil
}

// WriteSnapshot delivers s. On any write failure, the next call will
// re-assert the full block.
func (w *BlockWriter) WriteSnapshot(s status.Snapshot) error {
	regs := status.EncodeBlock(s)

	// ------------------------------------------------------------
	// Full block write (re-assert)
	// ------------------------------------------------------------
	if w.needFull {
		if err := w.cli.WriteRegisters(w.plan.UnitID, w.plan.Address, regs); err != nil {
			return fmt.Errorf("writer: full block write failed: %w", err)
		}
		w.needFull = false
		w.last = regs
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: changed runs only
	// ------------------------------------------------------------
	var errs []string

	for _, r := range changedRuns(w.last, regs) {
		addr := w.plan.Address + uint16(r.start)
		if err := w.cli.WriteRegisters(w.plan.UnitID, addr, regs[r.start:r.end]); err != nil {
			errs = append(errs, fmt.Sprintf("slots %d-%d write failed: %v", r.start, r.end-1, err))
			continue
		}
		copy(w.last[r.start:r.end], regs[r.start:r.end])
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt: re-assert on next call.
		w.needFull = true
		return errors.New("writer: " + strings.Join(errs, " | "))
	}

	return nil
}

type run struct {
	start, end int // [start, end)
}

// changedRuns returns the maximal contiguous ranges where prev and next differ.
func changedRuns(prev, next []uint16) []run {
	var out []run
	start := -1

	for i := range next {
		differs := i >= len(prev) || prev[i] != next[i]
		switch {
		case differs && start < 0:
			start = i
		case !differs && start >= 0:
			out = append(out, run{start, i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, run{start, len(next)})
	}

	return out
}
