// Package routetable decodes the Linux kernel route-table pseudo-files
// /proc/net/route (IPv4) and /proc/net/ipv6_route (IPv6) into typed entries.
//
// Each table is consumed lazily, one line at a time, and every line decodes
// independently: a malformed line yields an error for that line only and the
// iteration continues with the next one. The package performs no route
// computation and never writes anything back to the kernel.
package routetable
