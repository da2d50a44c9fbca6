package sysinfo

// KernelInfo identifies the running kernel.
type KernelInfo struct {
	Sysname string
	Release string
	Version string
	Machine string
}

// String returns the identification in `uname -srm` order.
func (k KernelInfo) String() string {
	return k.Sysname + " " + k.Release + " " + k.Machine
}
