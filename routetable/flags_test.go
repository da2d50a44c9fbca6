package routetable

import (
	"strings"
	"testing"
)

func TestIPv4FlagsFromBitsIsTotal(t *testing.T) {
	// Unknown bits are retained, never rejected.
	for _, bits := range []uint16{0x0000, 0x0001, 0x0003, 0x0200, 0xf000, 0xffff} {
		f := IPv4FlagsFromBits(bits)
		if uint16(f) != bits {
			t.Errorf("IPv4FlagsFromBits(%#04x) = %#04x", bits, uint16(f))
		}
	}
}

func TestIPv4FlagsContains(t *testing.T) {
	f := IPv4FlagsFromBits(0x0003)
	if !f.Contains(IPv4FlagUp) {
		t.Error("0x0003 should contain up")
	}
	if !f.Contains(IPv4FlagGateway) {
		t.Error("0x0003 should contain gateway")
	}
	if !f.Contains(IPv4FlagUp | IPv4FlagGateway) {
		t.Error("0x0003 should contain up|gateway")
	}
	if f.Contains(IPv4FlagHost) {
		t.Error("0x0003 should not contain host")
	}

	// Contains must agree with bitwise AND across the named bits.
	for _, fn := range ipv4FlagNames {
		want := f&fn.f == fn.f
		if f.Contains(fn.f) != want {
			t.Errorf("Contains(%s) disagrees with bitwise AND", fn.s)
		}
	}
}

func TestIPv4FlagsSetOperations(t *testing.T) {
	a := IPv4FlagUp | IPv4FlagGateway
	b := IPv4FlagGateway | IPv4FlagHost

	if a.Union(b) != IPv4FlagUp|IPv4FlagGateway|IPv4FlagHost {
		t.Errorf("Union = %#04x", uint16(a.Union(b)))
	}
	if a.Intersect(b) != IPv4FlagGateway {
		t.Errorf("Intersect = %#04x", uint16(a.Intersect(b)))
	}
}

func TestIPv4FlagsString(t *testing.T) {
	s := (IPv4FlagUp | IPv4FlagGateway).String()
	if s != "up|gateway" {
		t.Errorf("String() = %q, want \"up|gateway\"", s)
	}
	if IPv4Flags(0).String() != "none" {
		t.Errorf("zero flags String() = %q", IPv4Flags(0).String())
	}
	// Unknown bits show up as a hex remainder.
	if !strings.Contains(IPv4FlagsFromBits(0x8001).String(), "0x8000") {
		t.Errorf("unknown bits missing from %q", IPv4FlagsFromBits(0x8001).String())
	}
}

func TestIPv6FlagsDefaultBit(t *testing.T) {
	f := IPv6FlagsFromBits(0x00010000)
	if !f.Contains(IPv6FlagDefault) {
		t.Fatal("0x00010000 should contain the default flag")
	}
	for _, fn := range ipv6FlagNames {
		if fn.f == IPv6FlagDefault {
			continue
		}
		if f.Contains(fn.f) {
			t.Errorf("0x00010000 should not contain %s", fn.s)
		}
	}
}

func TestIPv6FlagsSharedLowBits(t *testing.T) {
	// The low 16 bits carry the same meaning as the IPv4 mask.
	if uint32(IPv6FlagUp) != uint32(IPv4FlagUp) {
		t.Error("up bits differ between families")
	}
	if uint32(IPv6FlagReject) != uint32(IPv4FlagReject) {
		t.Error("reject bits differ between families")
	}
}

func TestIPv6Preference(t *testing.T) {
	tests := []struct {
		bits uint32
		want RouterPreference
		name string
	}{
		{0x00000000, PrefReserved, "reserved"},
		{0x08000000, PrefHigh, "high"},
		{0x10000000, PrefMedium, "medium"},
		{0x18000000, PrefLow, "low"},
	}
	for _, tt := range tests {
		f := IPv6FlagsFromBits(tt.bits)
		if got := f.Preference(); got != tt.want {
			t.Errorf("Preference(%#08x) = %v, want %v", tt.bits, got, tt.want)
		}
		if tt.want.String() != tt.name {
			t.Errorf("String() = %q, want %q", tt.want.String(), tt.name)
		}
	}

	// The preference field must survive surrounding flag bits.
	f := IPv6FlagsFromBits(0x80000001 | 0x08000000)
	if f.Preference() != PrefHigh {
		t.Errorf("Preference with neighbors = %v, want high", f.Preference())
	}
}

func TestIPv6FlagsString(t *testing.T) {
	f := IPv6FlagUp | IPv6FlagLocal
	s := f.String()
	if !strings.Contains(s, "up") || !strings.Contains(s, "local") {
		t.Errorf("String() = %q", s)
	}

	withPref := (IPv6FlagUp | 0x18000000).String()
	if !strings.Contains(withPref, "pref=low") {
		t.Errorf("String() = %q, want pref=low listed", withPref)
	}
}
