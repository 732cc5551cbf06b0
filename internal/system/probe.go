package system

import (
	"context"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// Probe reads identity attributes from the running host.
type Probe struct{}

// NewProbe creates a host-backed attribute source.
func NewProbe() *Probe {
	return &Probe{}
}

// Architecture is the uname machine field (x86_64, aarch64, ...).
func (p *Probe) Architecture(_ context.Context) (string, error) {
	return host.KernelArch()
}

// OSRelease is the kernel release string.
func (p *Probe) OSRelease(ctx context.Context) (string, error) {
	return host.KernelVersionWithContext(ctx)
}

func (p *Probe) OSFamily(_ context.Context) (string, error) {
	return osFamily(runtime.GOOS), nil
}

func (p *Probe) Hostname(_ context.Context) (string, error) {
	return os.Hostname()
}

func (p *Probe) HomeDir(_ context.Context) (string, error) {
	return os.UserHomeDir()
}

// osFamily maps GOOS to the names uname-style tooling reports, so tokens
// match those issued by earlier clients. Android (Termux) reports Linux.
func osFamily(goos string) string {
	switch goos {
	case "linux", "android":
		return "Linux"
	case "darwin", "ios":
		return "Darwin"
	case "windows":
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	case "openbsd":
		return "OpenBSD"
	case "netbsd":
		return "NetBSD"
	default:
		return goos
	}
}
