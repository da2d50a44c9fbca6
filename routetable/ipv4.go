package routetable

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
)

// ProcNetRoute is the pseudo-file the kernel prints the IPv4 forwarding
// table to.
const ProcNetRoute = "/proc/net/route"

const ipv4FieldCount = 11

// Field indexes of a /proc/net/route data line.
const (
	ipv4FieldIface = iota
	ipv4FieldDestination
	ipv4FieldGateway
	ipv4FieldFlags
	ipv4FieldRefCnt
	ipv4FieldUse
	ipv4FieldMetric
	ipv4FieldMask
	ipv4FieldMTU
	ipv4FieldWindow
	ipv4FieldIRTT
)

// IPv4Entry is one decoded row of the kernel IPv4 routing table.
type IPv4Entry struct {
	Iface       string
	Destination net.IP
	Gateway     net.IP
	Flags       IPv4Flags
	RefCnt      uint8
	Use         uint8
	Metric      uint8
	Mask        net.IP
	MTU         uint8
	Window      uint8
	IRTT        uint8
}

// ParseIPv4Entry decodes one data line of /proc/net/route. It returns either
// a fully populated entry or an error; a partially decoded entry is never
// returned and malformed input never panics.
func ParseIPv4Entry(line string) (IPv4Entry, error) {
	fields := strings.Fields(line)
	if len(fields) < ipv4FieldCount {
		return IPv4Entry{}, &InvalidFieldCountError{Expected: ipv4FieldCount, Found: len(fields)}
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
		ip, err := hexIPv4(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return ip, nil
	}
	digitField := func(i int, name string) (uint8, error) {
		s, err := field(i)
		if err != nil {
			return 0, err
		}
		v, err := hexDigit(s)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return v, nil
	}

	var e IPv4Entry
	var err error
	if e.Iface, err = field(ipv4FieldIface); err != nil {
		return IPv4Entry{}, err
	}
	if e.Destination, err = addrField(ipv4FieldDestination, "destination"); err != nil {
		return IPv4Entry{}, err
	}
	if e.Gateway, err = addrField(ipv4FieldGateway, "gateway"); err != nil {
		return IPv4Entry{}, err
	}
	flagText, err := field(ipv4FieldFlags)
	if err != nil {
		return IPv4Entry{}, err
	}
	bits, err := hexUint16(flagText)
	if err != nil {
		return IPv4Entry{}, fmt.Errorf("flags: %w", err)
	}
	e.Flags = IPv4FlagsFromBits(bits)
	if e.RefCnt, err = digitField(ipv4FieldRefCnt, "refcnt"); err != nil {
		return IPv4Entry{}, err
	}
	if e.Use, err = digitField(ipv4FieldUse, "use"); err != nil {
		return IPv4Entry{}, err
	}
	if e.Metric, err = digitField(ipv4FieldMetric, "metric"); err != nil {
		return IPv4Entry{}, err
	}
	if e.Mask, err = addrField(ipv4FieldMask, "mask"); err != nil {
		return IPv4Entry{}, err
	}
	if e.MTU, err = digitField(ipv4FieldMTU, "mtu"); err != nil {
		return IPv4Entry{}, err
	}
	if e.Window, err = digitField(ipv4FieldWindow, "window"); err != nil {
		return IPv4Entry{}, err
	}
	if e.IRTT, err = digitField(ipv4FieldIRTT, "irtt"); err != nil {
		return IPv4Entry{}, err
	}
	return e, nil
}

// IsDefault reports whether the entry matches any destination.
func (e IPv4Entry) IsDefault() bool {
	return e.Destination.Equal(net.IPv4zero) && e.Mask.Equal(net.IPv4zero)
}

// UsesGateway reports whether packets are forwarded via the Gateway address.
func (e IPv4Entry) UsesGateway() bool {
	return e.Flags.Contains(IPv4FlagGateway)
}

// IsHost reports whether the destination is a single host.
func (e IPv4Entry) IsHost() bool {
	return e.Flags.Contains(IPv4FlagHost)
}

// IsRejected reports whether the destination is unreachable by policy.
func (e IPv4Entry) IsRejected() bool {
	return e.Flags.Contains(IPv4FlagReject)
}

// Network composes the destination address and mask into a *net.IPNet.
func (e IPv4Entry) Network() *net.IPNet {
	return &net.IPNet{IP: e.Destination, Mask: net.IPMask(e.Mask.To4())}
}

// IPv4Table lazily decodes /proc/net/route style lines from a LineSource.
// It is forward-only, single-caller, and not restartable; reopen the source
// to start a fresh iteration.
type IPv4Table struct {
	src     LineSource
	skip    int
	skipped bool
	lineNum int
}

// NewIPv4Table wraps src. One header line is skipped by default; override
// with WithHeaderLines for headerless fixtures.
func NewIPv4Table(src LineSource, opts ...TableOption) *IPv4Table {
	o := tableOptions{headerLines: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return &IPv4Table{src: src, skip: o.headerLines}
}

// OpenIPv4Table opens /proc/net/route. Close the table to release the file.
func OpenIPv4Table(opts ...TableOption) (*IPv4Table, error) {
	src, err := OpenFileSource(ProcNetRoute)
	if err != nil {
		return nil, err
	}
	return NewIPv4Table(src, opts...), nil
}

// Next returns the next decoded entry. A malformed line is reported as a
// *LineError for that line only and the table stays usable, so the caller
// may keep pulling. io.EOF marks the end of the table; a source I/O failure
// is returned as the item in whose place it occurred.
func (t *IPv4Table) Next() (*IPv4Entry, error) {
	if err := t.skipHeader(); err != nil {
		return nil, err
	}
	line, err := t.src.ReadLine()
	if err != nil {
		return nil, err
	}
	t.lineNum++
	e, err := ParseIPv4Entry(line)
	if err != nil {
		return nil, &LineError{Line: t.lineNum, Err: err}
	}
	return &e, nil
}

func (t *IPv4Table) skipHeader() error {
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
func (t *IPv4Table) Entries() ([]IPv4Entry, []error) {
	var (
		entries []IPv4Entry
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
func (t *IPv4Table) Close() error {
	if c, ok := t.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
