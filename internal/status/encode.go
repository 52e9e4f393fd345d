// internal/status/encode.go
package status

// EncodeBlock converts a Snapshot into the full register block.
// Layout is locked by the slot constants.
// No IO. No side effects.
func EncodeBlock(s Snapshot) []uint16 {
	regs := make([]uint16, BlockSize)

	for c := Class(0); c < NumClasses; c++ {
		if s.Any(c) {
			regs[SlotSummary] |= 1 << c
		}
		copy(regs[BankSlot(c, 0):], s.Banks[c][:])
		regs[LastSlot(c)] = uint16(s.Last[c])
	}

	return regs
}

// BankSlot returns the block offset of bank b of class c.
func BankSlot(c Class, b uint16) int {
	return SlotBanksStart + int(c)*NumBanks + int(b)
}

// LastSlot returns the block offset of the last-set ID of class c.
func LastSlot(c Class) int {
	return SlotLastStart + int(c)
}
