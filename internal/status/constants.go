// internal/status/constants.go
package status

// Registry geometry.
// These values fix the ID encoding and MUST NOT be configurable.

// ---- BANK GEOMETRY ----

// NumBanks is the number of 16-bit banks held per class.
const NumBanks = 12

// BitsPerBank is the number of condition bits in one bank word.
const BitsPerBank = 16

// Capacity is the number of distinct conditions per class.
const Capacity = NumBanks * BitsPerBank

// ---- ID ENCODING ----

// BankShift places the bank index above the 4 bit index bits.
const BankShift = 4

// BitMask extracts the bit index from an ID.
const BitMask uint16 = 0x000F

// IDUnset is the last-set sentinel. It never decodes to a valid bank.
const IDUnset ID = 0xFFFF

// ---- REGISTER BLOCK LAYOUT ----

// SlotSummary holds one bit per class, set while that class has any bit set.
const SlotSummary = 0

// SlotBanksStart is the first bank word. Banks are laid out class-major.
const SlotBanksStart = 1

// SlotLastStart is the first last-set ID word, one per class.
const SlotLastStart = SlotBanksStart + NumClasses*NumBanks

// BlockSize is the full register block length.
const BlockSize = SlotLastStart + NumClasses
