// internal/status/id_test.go
package status

import "testing"

func TestEncode_RoundTrip(t *testing.T) {
	for bank := uint16(0); bank < NumBanks; bank++ {
		for bit := uint16(0); bit < BitsPerBank; bit++ {
			id := Encode(bank, bit)
			if id.Bank() != bank || id.Bit() != bit {
				t.Fatalf("Encode(%d,%d)=%s decodes to (%d,%d)", bank, bit, id, id.Bank(), id.Bit())
			}
			if !id.Valid() {
				t.Fatalf("Encode(%d,%d)=%s should be valid", bank, bit, id)
			}
		}
	}
}

func TestEncode_Example(t *testing.T) {
	if got := Encode(2, 5); got != 0x25 {
		t.Fatalf("Encode(2,5)=0x%X want 0x25", uint16(got))
	}
}

func TestEncode_MasksBit(t *testing.T) {
	// Bit index is 4 bits wide; higher bits never leak into the bank.
	if got := Encode(1, 0x13); got.Bank() != 1 || got.Bit() != 3 {
		t.Fatalf("Encode(1,0x13)=%s want bank=1 bit=3", got)
	}
}

func TestMakeID_RejectsOutOfRange(t *testing.T) {
	if _, err := MakeID(NumBanks, 0); err == nil {
		t.Fatalf("expected bank range error")
	}
	if _, err := MakeID(0, BitsPerBank); err == nil {
		t.Fatalf("expected bit range error")
	}

	id, err := MakeID(NumBanks-1, BitsPerBank-1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Bank() != NumBanks-1 || id.Bit() != BitsPerBank-1 {
		t.Fatalf("unexpected id %s", id)
	}
}

func TestIDUnset_NeverValid(t *testing.T) {
	if IDUnset.Valid() {
		t.Fatalf("IDUnset must not decode to a valid bank")
	}
	if IDUnset.String() != "unset" {
		t.Fatalf("IDUnset.String()=%q", IDUnset.String())
	}
}

func TestParseClass(t *testing.T) {
	cases := map[string]Class{
		"fault":   Fault,
		"FAULT":   Fault,
		"warning": Warning,
		"warn":    Warning,
		" Info ":  Info,
	}
	for in, want := range cases {
		got, err := ParseClass(in)
		if err != nil {
			t.Fatalf("ParseClass(%q) err=%v", in, err)
		}
		if got != want {
			t.Fatalf("ParseClass(%q)=%s want %s", in, got, want)
		}
	}

	if _, err := ParseClass("debug"); err == nil {
		t.Fatalf("expected error for unknown class")
	}
}
