// internal/fieldbus/client_test.go
package fieldbus

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUnpackBits_LSBFirst(t *testing.T) {
	got := unpackBits([]byte{0b0000_0101, 0b0000_0001}, 10)
	want := []bool{true, false, true, false, false, false, false, false, true, false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unpackBits (-want +got):\n%s", diff)
	}
}

func TestUnpackBits_ShortPayloadReadsFalse(t *testing.T) {
	got := unpackBits([]byte{0xFF}, 12)
	for i := 8; i < 12; i++ {
		if got[i] {
			t.Fatalf("bit %d beyond payload should be false", i)
		}
	}
}

func TestRegisters_RoundTrip(t *testing.T) {
	regs := []uint16{0x0001, 0xBEEF, 0x8000}

	raw := packRegisters(regs)
	if diff := cmp.Diff([]byte{0x00, 0x01, 0xBE, 0xEF, 0x80, 0x00}, raw); diff != "" {
		t.Fatalf("packRegisters (-want +got):\n%s", diff)
	}

	back, err := unpackRegisters(raw, len(regs))
	if err != nil {
		t.Fatalf("unpackRegisters err=%v", err)
	}
	if diff := cmp.Diff(regs, back); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestUnpackRegisters_Short(t *testing.T) {
	if _, err := unpackRegisters([]byte{0x00, 0x01, 0x02}, 2); err == nil {
		t.Fatalf("expected short payload error")
	}
}

func TestDial_Validation(t *testing.T) {
	if _, err := Dial(Config{}); err == nil {
		t.Fatalf("expected endpoint error")
	}
	if _, err := Dial(Config{Endpoint: "x", Transport: "udp"}); err == nil {
		t.Fatalf("expected transport error")
	}
}
