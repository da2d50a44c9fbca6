//go:build !linux

package sysinfo

import "fmt"

// Kernel is only meaningful on Linux, where the route pseudo-files live.
func Kernel() (KernelInfo, error) {
	return KernelInfo{}, fmt.Errorf("kernel identification requires linux")
}
