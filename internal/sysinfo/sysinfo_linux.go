//go:build linux

package sysinfo

import (
	"bytes"

	"golang.org/x/sys/unix"
)

// Kernel returns the uname identification of the running kernel.
func Kernel() (KernelInfo, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return KernelInfo{}, err
	}

	return KernelInfo{
		Sysname: charsToString(uts.Sysname[:]),
		Release: charsToString(uts.Release[:]),
		Version: charsToString(uts.Version[:]),
		Machine: charsToString(uts.Machine[:]),
	}, nil
}

func charsToString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
