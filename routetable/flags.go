package routetable

import (
	"fmt"
	"strings"
)

// IPv4Flags is the decoded Flags column of /proc/net/route, a 16-bit RTF_*
// bitmask. Bits without a named constant are preserved as-is.
type IPv4Flags uint16

// IPv4 route flag bits, matching the kernel RTF_* values from
// include/uapi/linux/route.h.
const (
	IPv4FlagUp        IPv4Flags = 0x0001 // RTF_UP: route is usable
	IPv4FlagGateway   IPv4Flags = 0x0002 // RTF_GATEWAY: destination is reached via a gateway
	IPv4FlagHost      IPv4Flags = 0x0004 // RTF_HOST: destination is a single host
	IPv4FlagReinstate IPv4Flags = 0x0008 // RTF_REINSTATE: reinstate route after timeout
	IPv4FlagDynamic   IPv4Flags = 0x0010 // RTF_DYNAMIC: installed by a redirect or routing daemon
	IPv4FlagModified  IPv4Flags = 0x0020 // RTF_MODIFIED: modified by a redirect
	IPv4FlagMTU       IPv4Flags = 0x0040 // RTF_MTU: route carries a specific MTU
	IPv4FlagWindow    IPv4Flags = 0x0080 // RTF_WINDOW: route carries a TCP window clamp
	IPv4FlagIRTT      IPv4Flags = 0x0100 // RTF_IRTT: route carries an initial round trip time
	IPv4FlagReject    IPv4Flags = 0x0200 // RTF_REJECT: destination is unreachable by policy
)

// IPv4FlagsFromBits constructs a flag value from raw bits. Unknown bits are
// retained, never rejected.
func IPv4FlagsFromBits(bits uint16) IPv4Flags {
	return IPv4Flags(bits)
}

// Contains reports whether every bit of other is set in f.
func (f IPv4Flags) Contains(other IPv4Flags) bool {
	return f&other == other
}

// Union returns the flags set in either operand.
func (f IPv4Flags) Union(other IPv4Flags) IPv4Flags {
	return f | other
}

// Intersect returns the flags set in both operands.
func (f IPv4Flags) Intersect(other IPv4Flags) IPv4Flags {
	return f & other
}

type ipv4FlagName struct {
	f IPv4Flags
	s string
}

var ipv4FlagNames = []ipv4FlagName{
	{IPv4FlagUp, "up"},
	{IPv4FlagGateway, "gateway"},
	{IPv4FlagHost, "host"},
	{IPv4FlagReinstate, "reinstate"},
	{IPv4FlagDynamic, "dynamic"},
	{IPv4FlagModified, "modified"},
	{IPv4FlagMTU, "mtu"},
	{IPv4FlagWindow, "window"},
	{IPv4FlagIRTT, "irtt"},
	{IPv4FlagReject, "reject"},
}

// String lists the set flag names; bits without a name are appended as hex.
func (f IPv4Flags) String() string {
	var names []string
	rest := f
	for _, fn := range ipv4FlagNames {
		if f.Contains(fn.f) {
			names = append(names, fn.s)
			rest &^= fn.f
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("%#04x", uint16(rest)))
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// IPv6Flags is the decoded Flags column of /proc/net/ipv6_route, a 32-bit
// RTF_* bitmask. The low 16 bits share their meaning with IPv4Flags. Bits
// without a named constant are preserved as-is.
type IPv6Flags uint32

// IPv6 route flag bits. The low-order group matches the IPv4 RTF_* values;
// the high-order group comes from include/uapi/linux/ipv6_route.h.
const (
	IPv6FlagUp        IPv6Flags = IPv6Flags(IPv4FlagUp)
	IPv6FlagGateway   IPv6Flags = IPv6Flags(IPv4FlagGateway)
	IPv6FlagHost      IPv6Flags = IPv6Flags(IPv4FlagHost)
	IPv6FlagReinstate IPv6Flags = IPv6Flags(IPv4FlagReinstate)
	IPv6FlagDynamic   IPv6Flags = IPv6Flags(IPv4FlagDynamic)
	IPv6FlagModified  IPv6Flags = IPv6Flags(IPv4FlagModified)
	IPv6FlagMTU       IPv6Flags = IPv6Flags(IPv4FlagMTU)
	IPv6FlagWindow    IPv6Flags = IPv6Flags(IPv4FlagWindow)
	IPv6FlagIRTT      IPv6Flags = IPv6Flags(IPv4FlagIRTT)
	IPv6FlagReject    IPv6Flags = IPv6Flags(IPv4FlagReject)

	IPv6FlagDefault   IPv6Flags = 0x00010000 // RTF_DEFAULT: default route learned via router advertisement
	IPv6FlagAllOnLink IPv6Flags = 0x00020000 // RTF_ALLONLINK: deprecated, all gateways on the same link
	IPv6FlagAddrConf  IPv6Flags = 0x00040000 // RTF_ADDRCONF: installed by stateless address autoconfiguration
	IPv6FlagPrefix    IPv6Flags = 0x00080000 // RTF_PREFIX_RT: prefix-only route from a router advertisement
	IPv6FlagAnycast   IPv6Flags = 0x00100000 // RTF_ANYCAST: destination is an anycast address
	IPv6FlagNoNextHop IPv6Flags = 0x00200000 // RTF_NONEXTHOP: no explicit next hop, needs a lookup
	IPv6FlagExpires   IPv6Flags = 0x00400000 // RTF_EXPIRES: temporary route with an expiry time
	IPv6FlagRouteInfo IPv6Flags = 0x00800000 // RTF_ROUTEINFO: from an RA route information option
	IPv6FlagCache     IPv6Flags = 0x01000000 // RTF_CACHE: kernel-managed cache entry
	IPv6FlagFlow      IPv6Flags = 0x02000000 // RTF_FLOW: flow-label specific route
	IPv6FlagPolicy    IPv6Flags = 0x04000000 // RTF_POLICY: policy routing entry
	IPv6FlagPerCPU    IPv6Flags = 0x40000000 // RTF_PCPU: per-CPU cache entry, read only
	IPv6FlagLocal     IPv6Flags = 0x80000000 // RTF_LOCAL: local interface route
)

// The RTF_PREF router-preference sub-field occupies bits 27-28.
const (
	ipv6PrefMask  IPv6Flags = 0x18000000
	ipv6PrefShift           = 27
)

// IPv6FlagsFromBits constructs a flag value from raw bits. Unknown bits are
// retained, never rejected.
func IPv6FlagsFromBits(bits uint32) IPv6Flags {
	return IPv6Flags(bits)
}

// Contains reports whether every bit of other is set in f.
func (f IPv6Flags) Contains(other IPv6Flags) bool {
	return f&other == other
}

// Union returns the flags set in either operand.
func (f IPv6Flags) Union(other IPv6Flags) IPv6Flags {
	return f | other
}

// Intersect returns the flags set in both operands.
func (f IPv6Flags) Intersect(other IPv6Flags) IPv6Flags {
	return f & other
}

// Preference extracts the RTF_PREF router-preference sub-field.
func (f IPv6Flags) Preference() RouterPreference {
	return RouterPreference((f & ipv6PrefMask) >> ipv6PrefShift)
}

type ipv6FlagName struct {
	f IPv6Flags
	s string
}

var ipv6FlagNames = []ipv6FlagName{
	{IPv6FlagUp, "up"},
	{IPv6FlagGateway, "gateway"},
	{IPv6FlagHost, "host"},
	{IPv6FlagReinstate, "reinstate"},
	{IPv6FlagDynamic, "dynamic"},
	{IPv6FlagModified, "modified"},
	{IPv6FlagMTU, "mtu"},
	{IPv6FlagWindow, "window"},
	{IPv6FlagIRTT, "irtt"},
	{IPv6FlagReject, "reject"},
	{IPv6FlagDefault, "default"},
	{IPv6FlagAllOnLink, "all-on-link"},
	{IPv6FlagAddrConf, "addrconf"},
	{IPv6FlagPrefix, "prefix"},
	{IPv6FlagAnycast, "anycast"},
	{IPv6FlagNoNextHop, "no-next-hop"},
	{IPv6FlagExpires, "expires"},
	{IPv6FlagRouteInfo, "route-info"},
	{IPv6FlagCache, "cache"},
	{IPv6FlagFlow, "flow"},
	{IPv6FlagPolicy, "policy"},
	{IPv6FlagPerCPU, "per-cpu"},
	{IPv6FlagLocal, "local"},
}

// String lists the set flag names plus the router preference when one is
// encoded; bits without a name are appended as hex.
func (f IPv6Flags) String() string {
	var names []string
	rest := f &^ ipv6PrefMask
	for _, fn := range ipv6FlagNames {
		if f.Contains(fn.f) {
			names = append(names, fn.s)
			rest &^= fn.f
		}
	}
	if pref := f.Preference(); pref != PrefReserved {
		names = append(names, "pref="+pref.String())
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("%#08x", uint32(rest)))
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// RouterPreference is the 2-bit RTF_PREF value carried inside IPv6Flags.
type RouterPreference uint8

// RouterPreference constants
const (
	PrefReserved RouterPreference = iota
	PrefHigh
	PrefMedium
	PrefLow
)

// String returns a string representation of the router preference
func (p RouterPreference) String() string {
	switch p {
	case PrefReserved:
		return "reserved"
	case PrefHigh:
		return "high"
	case PrefMedium:
		return "medium"
	case PrefLow:
		return "low"
	default:
		return "unknown"
	}
}
