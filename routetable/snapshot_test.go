package routetable

import (
	"strings"
	"testing"
)

func snapshotIPv4Fixture(t *testing.T, fixture string) *Snapshot {
	t.Helper()
	tab := NewIPv4Table(NewScannerSource(strings.NewReader(fixture)), WithHeaderLines(0))
	return SnapshotIPv4(tab)
}

func TestSnapshotSignatureStable(t *testing.T) {
	fixture := "eth0\t00000000\t0158A8C0\t0003\t0\t0\t0\t00000000\t0\t0\t0\n" +
		"eth0\t0058A8C0\t00000000\t0001\t0\t0\t0\t00FFFFFF\t0\t0\t0\n"

	a := snapshotIPv4Fixture(t, fixture)
	b := snapshotIPv4Fixture(t, fixture)

	if a.Len() != 2 {
		t.Fatalf("snapshot has %d entries, want 2", a.Len())
	}
	if a.Signature != b.Signature {
		t.Error("identical tables must produce identical signatures")
	}
	if a.ChangedFrom(b) {
		t.Error("identical snapshots should not register as changed")
	}
}

func TestSnapshotSignatureChanges(t *testing.T) {
	before := snapshotIPv4Fixture(t,
		"eth0\t00000000\t0158A8C0\t0003\t0\t0\t0\t00000000\t0\t0\t0\n")
	// Same route through a different gateway.
	after := snapshotIPv4Fixture(t,
		"eth0\t00000000\t0258A8C0\t0003\t0\t0\t0\t00000000\t0\t0\t0\n")

	if !after.ChangedFrom(before) {
		t.Error("a gateway change must change the signature")
	}
}

func TestSnapshotChangedFromNil(t *testing.T) {
	snap := snapshotIPv4Fixture(t, "")
	if !snap.ChangedFrom(nil) {
		t.Error("the first snapshot always counts as a change")
	}
}

func TestSnapshotCountsParseErrors(t *testing.T) {
	snap := snapshotIPv4Fixture(t,
		"garbage\n"+
			"eth0\t00000000\t0158A8C0\t0003\t0\t0\t0\t00000000\t0\t0\t0\n")

	if snap.Len() != 1 {
		t.Errorf("snapshot has %d entries, want 1", snap.Len())
	}
	if len(snap.ParseErrors) != 1 {
		t.Errorf("snapshot has %d parse errors, want 1", len(snap.ParseErrors))
	}
}

func TestSnapshotIPv6(t *testing.T) {
	fixture := ipv6LoopbackLine + "\n" + ipv6DefaultLine + "\n"

	tab := NewIPv6Table(NewScannerSource(strings.NewReader(fixture)))
	snap := SnapshotIPv6(tab)

	if snap.Family != FamilyIPv6 {
		t.Errorf("family = %v, want ipv6", snap.Family)
	}
	if snap.Len() != 2 {
		t.Errorf("snapshot has %d entries, want 2", snap.Len())
	}

	reduced := SnapshotIPv6(NewIPv6Table(NewScannerSource(strings.NewReader(ipv6LoopbackLine + "\n"))))
	if !reduced.ChangedFrom(snap) {
		t.Error("dropping a route must change the signature")
	}
}

func TestFamilyString(t *testing.T) {
	if FamilyIPv4.String() != "ipv4" || FamilyIPv6.String() != "ipv6" {
		t.Errorf("family strings: %s, %s", FamilyIPv4, FamilyIPv6)
	}
}
