// internal/status/id.go
package status

import "fmt"

// ID identifies one condition as a (bank, bit) pair packed into 16 bits.
// The bank occupies the high 12 bits, the bit index the low 4.
type ID uint16

// Encode packs bank and bit into an ID.
// Bits above the index mask are dropped, so constant tables should be
// checked with MakeID or ID.Valid.
func Encode(bank, bit uint16) ID {
	return ID(bank<<BankShift | bit&BitMask)
}

// MakeID is the checked form of Encode.
func MakeID(bank, bit uint16) (ID, error) {
	if bank >= NumBanks {
		return IDUnset, fmt.Errorf("status: bank %d out of range (max %d)", bank, NumBanks-1)
	}
	if bit >= BitsPerBank {
		return IDUnset, fmt.Errorf("status: bit %d out of range (max %d)", bit, BitsPerBank-1)
	}
	return Encode(bank, bit), nil
}

// Bank returns the bank index.
func (id ID) Bank() uint16 {
	return uint16(id) >> BankShift
}

// Bit returns the bit index within the bank.
func (id ID) Bit() uint16 {
	return uint16(id) & BitMask
}

// Valid reports whether id addresses a bit inside the registry.
func (id ID) Valid() bool {
	return id.Bank() < NumBanks && id.Bit() < BitsPerBank
}

func (id ID) String() string {
	if id == IDUnset {
		return "unset"
	}
	return fmt.Sprintf("0x%02X(%d.%d)", uint16(id), id.Bank(), id.Bit())
}

// mask returns the single-bit mask for id within its bank word.
func (id ID) mask() uint32 {
	return 1 << id.Bit()
}
