package routetable

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// Loopback and default rows as a real kernel prints them.
const (
	ipv6LoopbackLine = "00000000000000000000000000000001 80 00000000000000000000000000000000 00 00000000000000000000000000000000 00000000 00000002 00000000 80200001 lo"
	ipv6DefaultLine  = "00000000000000000000000000000000 00 00000000000000000000000000000000 00 fe800000000000000000000000000001 00000400 00000001 00000000 00450003 eth0"
)

func TestParseIPv6EntryLoopback(t *testing.T) {
	e, err := ParseIPv6Entry(ipv6LoopbackLine)
	if err != nil {
		t.Fatalf("failed to parse loopback line: %v", err)
	}

	if e.Destination.String() != "::1" {
		t.Errorf("destination = %s, want ::1", e.Destination)
	}
	if e.DestPrefix != 128 {
		t.Errorf("destination prefix = %d, want 128", e.DestPrefix)
	}
	if !e.Source.IsUnspecified() {
		t.Errorf("source = %s, want ::", e.Source)
	}
	if e.SrcPrefix != 0 {
		t.Errorf("source prefix = %d, want 0", e.SrcPrefix)
	}
	if e.RefCnt != 2 {
		t.Errorf("refcnt = %d, want 2", e.RefCnt)
	}
	if !e.Flags.Contains(IPv6FlagUp | IPv6FlagNoNextHop | IPv6FlagLocal) {
		t.Errorf("flags = %s, want up|no-next-hop|local set", e.Flags)
	}
	if e.Name != "lo" {
		t.Errorf("name = %q, want \"lo\"", e.Name)
	}
	if !e.IsLoopback() {
		t.Error("entry should classify as loopback")
	}
	if !e.IsInbound() {
		t.Error("/128 entry should be inbound")
	}
	if e.DestNetwork().String() != "::1/128" {
		t.Errorf("network = %s, want ::1/128", e.DestNetwork())
	}
}

func TestParseIPv6EntryDefaultRoute(t *testing.T) {
	e, err := ParseIPv6Entry(ipv6DefaultLine)
	if err != nil {
		t.Fatalf("failed to parse default route: %v", err)
	}

	if !e.IsDefault() {
		t.Error("entry should be the default route")
	}
	if !e.IsOutbound() {
		t.Error("prefix-zero entry should be outbound")
	}
	if e.NextHop.String() != "fe80::1" {
		t.Errorf("next hop = %s, want fe80::1", e.NextHop)
	}
	if e.Metric != 0x400 {
		t.Errorf("metric = %d, want 1024", e.Metric)
	}
	if !e.Flags.Contains(IPv6FlagUp | IPv6FlagGateway | IPv6FlagAddrConf | IPv6FlagExpires) {
		t.Errorf("flags = %s", e.Flags)
	}
	if e.DestNetwork().String() != "::/0" {
		t.Errorf("network = %s, want ::/0", e.DestNetwork())
	}
}

func TestParseIPv6EntryFieldCount(t *testing.T) {
	// Nine fields, one short.
	line := strings.Join(strings.Fields(ipv6LoopbackLine)[:9], " ")

	_, err := ParseIPv6Entry(line)
	var countErr *InvalidFieldCountError
	if !errors.As(err, &countErr) {
		t.Fatalf("expected InvalidFieldCountError, got %v", err)
	}
	if countErr.Expected != 10 || countErr.Found != 9 {
		t.Errorf("count error = %+v, want {Expected:10 Found:9}", countErr)
	}
}

func TestParseIPv6EntryDefaultFlagOnly(t *testing.T) {
	fields := strings.Fields(ipv6DefaultLine)
	fields[ipv6FieldFlags] = "00010000"

	e, err := ParseIPv6Entry(strings.Join(fields, " "))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if e.Flags != IPv6FlagDefault {
		t.Errorf("flags = %#08x, want exactly the default bit", uint32(e.Flags))
	}
}

func TestParseIPv6EntryBadFields(t *testing.T) {
	fields := strings.Fields(ipv6LoopbackLine)

	bad := append([]string(nil), fields...)
	bad[ipv6FieldDest] = "zz000000000000000000000000000001"
	var rangeErr *OutOfHexRangeError
	if _, err := ParseIPv6Entry(strings.Join(bad, " ")); !errors.As(err, &rangeErr) {
		t.Errorf("bad destination hex: got %v", err)
	}

	bad = append([]string(nil), fields...)
	bad[ipv6FieldDestPrefix] = "0080"
	var widthErr *FieldWidthError
	if _, err := ParseIPv6Entry(strings.Join(bad, " ")); !errors.As(err, &widthErr) {
		t.Errorf("wide prefix: got %v", err)
	}

	bad = append([]string(nil), fields...)
	bad[ipv6FieldMetric] = "0400"
	if _, err := ParseIPv6Entry(strings.Join(bad, " ")); !errors.As(err, &widthErr) {
		t.Errorf("short metric: got %v", err)
	}
}

func TestIPv6TableIteration(t *testing.T) {
	fixture := ipv6LoopbackLine + "\n" + ipv6DefaultLine + "\n"

	// No header line for the IPv6 pseudo-file.
	tab := NewIPv6Table(NewScannerSource(strings.NewReader(fixture)))

	first, err := tab.Next()
	if err != nil {
		t.Fatalf("first entry failed: %v", err)
	}
	if !first.IsLoopback() {
		t.Error("first entry should be loopback")
	}

	second, err := tab.Next()
	if err != nil {
		t.Fatalf("second entry failed: %v", err)
	}
	if !second.IsDefault() {
		t.Error("second entry should be the default route")
	}

	if _, err := tab.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestIPv6TableContinuesPastBadLine(t *testing.T) {
	fixture := "not a route line\n" + ipv6LoopbackLine + "\n"

	tab := NewIPv6Table(NewScannerSource(strings.NewReader(fixture)))

	_, err := tab.Next()
	var lineErr *LineError
	if !errors.As(err, &lineErr) {
		t.Fatalf("expected LineError, got %v", err)
	}

	e, err := tab.Next()
	if err != nil {
		t.Fatalf("iteration did not continue: %v", err)
	}
	if e.Name != "lo" {
		t.Errorf("name = %q", e.Name)
	}
}

func TestIPv6TableEmptySource(t *testing.T) {
	tab := NewIPv6Table(NewScannerSource(strings.NewReader("")))
	if _, err := tab.Next(); err != io.EOF {
		t.Errorf("expected io.EOF from empty source, got %v", err)
	}
}

func TestIPv6TableEntries(t *testing.T) {
	fixture := ipv6LoopbackLine + "\ngarbage\n" + ipv6DefaultLine + "\n"

	entries, errs := NewIPv6Table(NewScannerSource(strings.NewReader(fixture))).Entries()
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
	if len(errs) != 1 {
		t.Errorf("expected 1 parse error, got %d", len(errs))
	}
}
