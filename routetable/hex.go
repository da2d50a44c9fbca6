package routetable

import (
	"encoding/binary"
	"net"
)

// hexNibble maps an ASCII hex digit to its 4-bit value.
func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, &OutOfHexRangeError{Byte: c}
	}
}

// hexPair composes one byte from a high and a low hex digit. The first digit
// error encountered wins.
func hexPair(hi, lo byte) (byte, error) {
	h, err := hexNibble(hi)
	if err != nil {
		return 0, err
	}
	l, err := hexNibble(lo)
	if err != nil {
		return 0, err
	}
	return h<<4 | l, nil
}

// hexBytes decodes an even-length hex string into raw bytes in source order.
// The result is always exactly len(s)/2 bytes.
func hexBytes(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, &OddLengthError{Field: s}
	}
	buf := make([]byte, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		b, err := hexPair(s[i], s[i+1])
		if err != nil {
			return nil, err
		}
		buf[i/2] = b
	}
	return buf, nil
}

// hexDigit reads the leading character of a counter field as one hex digit.
// The kernel prints the RefCnt/Use/Metric style columns of /proc/net/route as
// small numbers; only the first digit is significant for the uint8 fields.
func hexDigit(s string) (uint8, error) {
	if len(s) == 0 {
		return 0, &FieldWidthError{Want: 1, Got: 0}
	}
	return hexNibble(s[0])
}

// hexUint16 decodes exactly four hex characters into a big-endian uint16.
func hexUint16(s string) (uint16, error) {
	b, err := hexBytes(s)
	if err != nil {
		return 0, err
	}
	if len(b) != 2 {
		return 0, &FieldWidthError{Want: 2, Got: len(b)}
	}
	return binary.BigEndian.Uint16(b), nil
}

// hexUint32 decodes exactly eight hex characters into a big-endian uint32.
func hexUint32(s string) (uint32, error) {
	b, err := hexBytes(s)
	if err != nil {
		return 0, err
	}
	if len(b) != 4 {
		return 0, &FieldWidthError{Want: 4, Got: len(b)}
	}
	return binary.BigEndian.Uint32(b), nil
}

// hexIPv4 decodes an 8-character hex field into an IPv4 address. The kernel
// prints these columns as little-endian 32-bit words, so the decoded bytes
// are reversed before the address is constructed.
func hexIPv4(s string) (net.IP, error) {
	b, err := hexBytes(s)
	if err != nil {
		return nil, err
	}
	if len(b) != net.IPv4len {
		return nil, &FieldWidthError{Want: net.IPv4len, Got: len(b)}
	}
	return net.IPv4(b[3], b[2], b[1], b[0]).To4(), nil
}

// hexIPv6 decodes a 32-character hex field into an IPv6 address. The bytes
// are already in network order.
func hexIPv6(s string) (net.IP, error) {
	b, err := hexBytes(s)
	if err != nil {
		return nil, err
	}
	if len(b) != net.IPv6len {
		return nil, &FieldWidthError{Want: net.IPv6len, Got: len(b)}
	}
	return net.IP(b), nil
}
