// Package hostinfo provides read-only access to device and OS facts.
// All facts are read fresh on every call.
package hostinfo

import (
	"context"
	"errors"
	"time"
)

// ErrNotAndroid is returned when the Android property service is unavailable.
var ErrNotAndroid = errors.New("android properties unavailable")

// BuildInfo holds platform build identifiers.
type BuildInfo struct {
	Manufacturer  string
	Model         string
	Release       string
	APILevel      int // 0 when not running on Android
	SupportedABIs []string
	Bootloader    string
	Hardware      string
	Type          string
	Tags          string
	Fingerprint   string
	SecurityPatch string
}

// DiskUsage holds filesystem block statistics in bytes.
type DiskUsage struct {
	Total uint64
	Free  uint64 // available to unprivileged callers
}

// MemoryStats holds system memory statistics in bytes.
type MemoryStats struct {
	Total     uint64
	Available uint64
}

// Provider exposes host facts. Implementations must not mutate the host.
type Provider interface {
	// Build returns the platform build identifiers.
	Build(ctx context.Context) (BuildInfo, error)

	// Getenv returns the value of an environment variable.
	Getenv(key string) string

	// Stat returns nil if the path exists.
	Stat(path string) error

	// CPUInfo returns the raw CPU-info text.
	CPUInfo(ctx context.Context) ([]byte, error)

	// KernelVersionInfo returns the raw kernel version-info text.
	KernelVersionInfo(ctx context.Context) ([]byte, error)

	// DataPath returns the primary data mount path.
	DataPath() string

	// DiskUsage returns block statistics for the filesystem holding path.
	DiskUsage(ctx context.Context, path string) (DiskUsage, error)

	// ExternalStorage returns the secondary storage path and whether it is mounted.
	ExternalStorage(ctx context.Context) (path string, mounted bool, err error)

	// Memory returns live memory statistics.
	Memory(ctx context.Context) (MemoryStats, error)

	// Uptime returns the time elapsed since boot.
	Uptime(ctx context.Context) (time.Duration, error)

	// OSArch returns the platform-reported architecture.
	OSArch(ctx context.Context) string

	// OSVersion returns the platform-reported OS (kernel) version.
	OSVersion(ctx context.Context) string
}
