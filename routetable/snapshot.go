package routetable

import (
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Family selects one of the two kernel route tables.
type Family int

// Family constants
const (
	FamilyIPv4 Family = iota
	FamilyIPv6
)

// String returns a string representation of the address family
func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	default:
		return "unknown"
	}
}

// Snapshot is the result of draining one route table at a point in time.
// Exactly one of IPv4 and IPv6 is populated, according to Family.
type Snapshot struct {
	Family      Family
	IPv4        []IPv4Entry
	IPv6        []IPv6Entry
	ParseErrors []error
	Signature   uint64
	Taken       time.Time
}

// SnapshotIPv4 drains t into a Snapshot.
func SnapshotIPv4(t *IPv4Table) *Snapshot {
	entries, errs := t.Entries()
	return &Snapshot{
		Family:      FamilyIPv4,
		IPv4:        entries,
		ParseErrors: errs,
		Signature:   signatureIPv4(entries),
		Taken:       time.Now(),
	}
}

// SnapshotIPv6 drains t into a Snapshot.
func SnapshotIPv6(t *IPv6Table) *Snapshot {
	entries, errs := t.Entries()
	return &Snapshot{
		Family:      FamilyIPv6,
		IPv6:        entries,
		ParseErrors: errs,
		Signature:   signatureIPv6(entries),
		Taken:       time.Now(),
	}
}

// Len returns the number of decoded entries in the snapshot.
func (s *Snapshot) Len() int {
	if s.Family == FamilyIPv4 {
		return len(s.IPv4)
	}
	return len(s.IPv6)
}

// ChangedFrom reports whether the table differs from a previous snapshot of
// the same family. A nil previous snapshot always counts as a change.
func (s *Snapshot) ChangedFrom(prev *Snapshot) bool {
	return prev == nil || prev.Signature != s.Signature
}

// signatureIPv4 hashes the identifying columns of every entry so two
// snapshots can be compared without a field-by-field diff. Entry order
// matters, which is fine: the kernel prints the table in a stable order.
func signatureIPv4(entries []IPv4Entry) uint64 {
	h := xxhash.New()
	var word [4]byte
	for _, e := range entries {
		_, _ = h.WriteString(e.Iface)
		_, _ = h.Write(e.Destination)
		_, _ = h.Write(e.Mask)
		_, _ = h.Write(e.Gateway)
		binary.BigEndian.PutUint16(word[:2], uint16(e.Flags))
		word[2] = e.Metric
		word[3] = 0
		_, _ = h.Write(word[:])
	}
	return h.Sum64()
}

func signatureIPv6(entries []IPv6Entry) uint64 {
	h := xxhash.New()
	var word [4]byte
	for _, e := range entries {
		_, _ = h.WriteString(e.Name)
		_, _ = h.Write(e.Destination)
		_, _ = h.Write(e.Source)
		_, _ = h.Write(e.NextHop)
		_, _ = h.Write([]byte{e.DestPrefix, e.SrcPrefix})
		binary.BigEndian.PutUint32(word[:], uint32(e.Flags))
		_, _ = h.Write(word[:])
		binary.BigEndian.PutUint32(word[:], e.Metric)
		_, _ = h.Write(word[:])
	}
	return h.Sum64()
}
