package routetable

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
)

// ProcNetIPv6Route is the pseudo-file the kernel prints the IPv6 routing
// table to. Unlike its IPv4 sibling it has no header line.
const ProcNetIPv6Route = "/proc/net/ipv6_route"

const ipv6FieldCount = 10

// Field indexes of a /proc/net/ipv6_route line.
const (
	ipv6FieldDest = iota
	ipv6FieldDestPrefix
	ipv6FieldSrc
	ipv6FieldSrcPrefix
	ipv6FieldNextHop
	ipv6FieldMetric
	ipv6FieldRefCnt
	ipv6FieldUse
	ipv6FieldFlags
	ipv6FieldName
)

// IPv6Entry is one decoded row of the kernel IPv6 routing table.
type IPv6Entry struct {
	Destination net.IP
	DestPrefix  uint8
	Source      net.IP
	SrcPrefix   uint8
	NextHop     net.IP
	Metric      uint32
	RefCnt      uint32
	Use         uint32
	Flags       IPv6Flags
	Name        string
}

// ParseIPv6Entry decodes one line of /proc/net/ipv6_route. It returns either
// a fully populated entry or an error; a partially decoded entry is never
// returned and malformed input never panics.
func ParseIPv6Entry(line string) (IPv6Entry, error) {
	fields := strings.Fields(line)
	if len(fields) < ipv6FieldCount {
		return IPv6Entry{}, &InvalidFieldCountError{Expected: ipv6FieldCount, Found: len(fields)}
	}

	field := func(i int) (string, error) {
		if i >= len(fields) {
			return "", &MissingFieldError{Index: i}
		}
		return fields[i], nil
	}
	addrField := func(i int, name string) (net.IP, error) {
		s, err := field(i)
		if err != nil {
			return nil, err
		}
		ip, err := hexIPv6(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return ip, nil
	}
	prefixField := func(i int, name string) (uint8, error) {
		s, err := field(i)
		if err != nil {
			return 0, err
		}
		b, err := hexBytes(s)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		if len(b) != 1 {
			return 0, fmt.Errorf("%s: %w", name, &FieldWidthError{Want: 1, Got: len(b)})
		}
		return b[0], nil
	}
	wordField := func(i int, name string) (uint32, error) {
		s, err := field(i)
		if err != nil {
			return 0, err
		}
		v, err := hexUint32(s)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return v, nil
	}

	var e IPv6Entry
	var err error
	if e.Destination, err = addrField(ipv6FieldDest, "destination"); err != nil {
		return IPv6Entry{}, err
	}
	if e.DestPrefix, err = prefixField(ipv6FieldDestPrefix, "destination prefix"); err != nil {
		return IPv6Entry{}, err
	}
	if e.Source, err = addrField(ipv6FieldSrc, "source"); err != nil {
		return IPv6Entry{}, err
	}
	if e.SrcPrefix, err = prefixField(ipv6FieldSrcPrefix, "source prefix"); err != nil {
		return IPv6Entry{}, err
	}
	if e.NextHop, err = addrField(ipv6FieldNextHop, "next hop"); err != nil {
		return IPv6Entry{}, err
	}
	if e.Metric, err = wordField(ipv6FieldMetric, "metric"); err != nil {
		return IPv6Entry{}, err
	}
	if e.RefCnt, err = wordField(ipv6FieldRefCnt, "refcnt"); err != nil {
		return IPv6Entry{}, err
	}
	if e.Use, err = wordField(ipv6FieldUse, "use"); err != nil {
		return IPv6Entry{}, err
	}
	bits, err := wordField(ipv6FieldFlags, "flags")
	if err != nil {
		return IPv6Entry{}, err
	}
	e.Flags = IPv6FlagsFromBits(bits)
	if e.Name, err = field(ipv6FieldName); err != nil {
		return IPv6Entry{}, err
	}
	return e, nil
}

// IsDefault reports whether the entry matches any destination.
func (e IPv6Entry) IsDefault() bool {
	return e.DestPrefix == 0 && e.Destination.IsUnspecified()
}

// IsOutbound reports whether the entry forwards traffic off-host, i.e. its
// destination prefix matches everything.
func (e IPv6Entry) IsOutbound() bool {
	return e.DestPrefix == 0
}

// IsInbound reports whether the entry covers traffic addressed to this host.
func (e IPv6Entry) IsInbound() bool {
	return !e.IsOutbound()
}

// IsLoopback reports whether the entry belongs to the loopback interface
// space: a loopback destination or source, or the all-zero pair.
func (e IPv6Entry) IsLoopback() bool {
	return e.Destination.IsLoopback() || e.Source.IsLoopback() ||
		(e.Destination.IsUnspecified() && e.Source.IsUnspecified())
}

// DestNetwork composes the destination address and prefix into a *net.IPNet.
func (e IPv6Entry) DestNetwork() *net.IPNet {
	return &net.IPNet{IP: e.Destination, Mask: net.CIDRMask(int(e.DestPrefix), 8*net.IPv6len)}
}

// IPv6Table lazily decodes /proc/net/ipv6_route style lines from a
// LineSource. It is forward-only, single-caller, and not restartable.
type IPv6Table struct {
	src     LineSource
	skip    int
	skipped bool
	lineNum int
}

// NewIPv6Table wraps src. No header lines are skipped by default.
func NewIPv6Table(src LineSource, opts ...TableOption) *IPv6Table {
	var o tableOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &IPv6Table{src: src, skip: o.headerLines}
}

// OpenIPv6Table opens /proc/net/ipv6_route. Close the table to release the
// file.
func OpenIPv6Table(opts ...TableOption) (*IPv6Table, error) {
	src, err := OpenFileSource(ProcNetIPv6Route)
	if err != nil {
		return nil, err
	}
	return NewIPv6Table(src, opts...), nil
}

// Next returns the next decoded entry. A malformed line is reported as a
// *LineError for that line only and the table stays usable. io.EOF marks the
// end of the table; a source I/O failure is returned as the item in whose
// place it occurred.
func (t *IPv6Table) Next() (*IPv6Entry, error) {
	if err := t.skipHeader(); err != nil {
		return nil, err
	}
	line, err := t.src.ReadLine()
	if err != nil {
		return nil, err
	}
	t.lineNum++
	e, err := ParseIPv6Entry(line)
	if err != nil {
		return nil, &LineError{Line: t.lineNum, Err: err}
	}
	return &e, nil
}

func (t *IPv6Table) skipHeader() error {
	if t.skipped {
		return nil
	}
	t.skipped = true
	for i := 0; i < t.skip; i++ {
		if _, err := t.src.ReadLine(); err != nil {
			return err
		}
		t.lineNum++
	}
	return nil
}

// Entries drains the table, returning the decoded entries and the per-line
// parse errors encountered along the way. Draining stops at the end of the
// source or on the first source I/O failure, which is appended to the errors.
func (t *IPv6Table) Entries() ([]IPv6Entry, []error) {
	var (
		entries []IPv6Entry
		errs    []error
	)
	for {
		e, err := t.Next()
		if errors.Is(err, io.EOF) {
			return entries, errs
		}
		if err != nil {
			errs = append(errs, err)
			var lineErr *LineError
			if !errors.As(err, &lineErr) {
				return entries, errs
			}
			continue
		}
		entries = append(entries, *e)
	}
}

// Close releases the underlying source when the table owns one.
func (t *IPv6Table) Close() error {
	if c, ok := t.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
