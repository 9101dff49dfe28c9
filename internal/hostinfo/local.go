package hostinfo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

const (
	defaultReadTimeout = 2 * time.Second
	androidDataPath    = "/data"
	androidSDCardPath  = "/storage/emulated/0"
)

// Options configures where Local reads its facts from.
type Options struct {
	DataPath     string        // primary data mount
	ExternalPath string        // secondary mount, empty to disable
	CPUInfoPath  string        // CPU-info text source
	VersionPath  string        // kernel version-info text source
	DMIDir       string        // Linux DMI identifiers
	GetpropPath  string        // Android property tool
	ReadTimeout  time.Duration // bound for every file read and getprop call
}

// Local reads facts from the machine it runs on using gopsutil,
// the Android property service and procfs.
type Local struct {
	opts Options
}

// NewLocal creates a provider, filling unset options with platform defaults.
func NewLocal(opts Options) *Local {
	if opts.DataPath == "" {
		opts.DataPath = "/"
		if _, err := os.Stat(androidDataPath); err == nil {
			opts.DataPath = androidDataPath
		}
	}
	if opts.ExternalPath == "" {
		if _, err := os.Stat(androidSDCardPath); err == nil {
			opts.ExternalPath = androidSDCardPath
		}
	}
	if opts.CPUInfoPath == "" {
		opts.CPUInfoPath = "/proc/cpuinfo"
	}
	if opts.VersionPath == "" {
		opts.VersionPath = "/proc/version"
	}
	if opts.DMIDir == "" {
		opts.DMIDir = "/sys/devices/virtual/dmi/id"
	}
	if opts.GetpropPath == "" {
		opts.GetpropPath = "getprop"
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = defaultReadTimeout
	}
	return &Local{opts: opts}
}

// Build returns Android build properties, or a Linux equivalent when
// the property service is unavailable.
func (l *Local) Build(ctx context.Context) (BuildInfo, error) {
	props, err := l.androidProps(ctx)
	if err == nil {
		return buildFromProps(props), nil
	}
	if !errors.Is(err, ErrNotAndroid) {
		return BuildInfo{}, err
	}
	return l.linuxBuild(ctx)
}

// Getenv returns the value of an environment variable.
func (l *Local) Getenv(key string) string {
	return os.Getenv(key)
}

// Stat returns nil if the path exists.
func (l *Local) Stat(path string) error {
	_, err := os.Stat(path)
	return err
}

// CPUInfo returns the contents of the CPU-info source.
func (l *Local) CPUInfo(ctx context.Context) ([]byte, error) {
	return l.readFile(ctx, l.opts.CPUInfoPath)
}

// KernelVersionInfo returns the contents of the version-info source.
func (l *Local) KernelVersionInfo(ctx context.Context) ([]byte, error) {
	return l.readFile(ctx, l.opts.VersionPath)
}

// DataPath returns the primary data mount path.
func (l *Local) DataPath() string {
	return l.opts.DataPath
}

// DiskUsage returns block statistics for the filesystem holding path.
func (l *Local) DiskUsage(ctx context.Context, path string) (DiskUsage, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return DiskUsage{}, fmt.Errorf("get disk usage %s: %w", path, err)
	}
	return DiskUsage{Total: usage.Total, Free: usage.Free}, nil
}

// ExternalStorage reports the secondary mount. It counts as mounted when a
// non-root partition covers the configured path.
func (l *Local) ExternalStorage(ctx context.Context) (string, bool, error) {
	path := l.opts.ExternalPath
	if path == "" {
		return "", false, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return path, false, nil
		}
		return path, false, fmt.Errorf("stat external storage: %w", err)
	}

	partitions, err := disk.PartitionsWithContext(ctx, true)
	if err != nil {
		return path, false, fmt.Errorf("list partitions: %w", err)
	}
	mountpoints := make([]string, 0, len(partitions))
	for _, p := range partitions {
		mountpoints = append(mountpoints, p.Mountpoint)
	}
	return path, coveredByMount(path, mountpoints), nil
}

// Memory returns live memory statistics.
func (l *Local) Memory(ctx context.Context) (MemoryStats, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryStats{}, fmt.Errorf("get memory: %w", err)
	}
	return MemoryStats{Total: vm.Total, Available: vm.Available}, nil
}

// Uptime returns the time elapsed since boot.
func (l *Local) Uptime(ctx context.Context) (time.Duration, error) {
	secs, err := host.UptimeWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("get uptime: %w", err)
	}
	return time.Duration(secs) * time.Second, nil
}

// OSArch returns the kernel architecture, falling back to the build target.
func (l *Local) OSArch(ctx context.Context) string {
	if arch, err := host.KernelArch(); err == nil && arch != "" {
		return arch
	}
	return runtime.GOARCH
}

// OSVersion returns the kernel version or an empty string.
func (l *Local) OSVersion(ctx context.Context) string {
	version, err := host.KernelVersionWithContext(ctx)
	if err != nil {
		return ""
	}
	return version
}

// androidProps runs getprop once and parses its full property dump.
func (l *Local) androidProps(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.opts.ReadTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, l.opts.GetpropPath).Output()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrNotAndroid, err)
		}
		return nil, fmt.Errorf("run getprop: %w", err)
	}

	props := parseGetprop(string(out))
	if _, ok := props["ro.build.version.sdk"]; !ok {
		return nil, ErrNotAndroid
	}
	return props, nil
}

// linuxBuild derives build identifiers from DMI and the OS release.
func (l *Local) linuxBuild(ctx context.Context) (BuildInfo, error) {
	b := BuildInfo{
		Manufacturer: l.dmi(ctx, "sys_vendor"),
		Model:        l.dmi(ctx, "product_name"),
		Bootloader:   l.dmi(ctx, "bios_version"),
		Hardware:     l.dmi(ctx, "board_name"),
	}

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return b, fmt.Errorf("get host info: %w", err)
	}

	b.Release = strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
	b.Type = info.OS
	b.Tags = info.PlatformFamily
	b.Fingerprint = strings.Join([]string{
		info.Platform, info.PlatformVersion, info.KernelVersion, info.KernelArch,
	}, "/")
	if b.Hardware == "" {
		b.Hardware = info.KernelArch
	}
	if b.Model == "" {
		b.Model = info.Hostname
	}
	return b, nil
}

// dmi reads one DMI identifier, returning "" on any failure.
func (l *Local) dmi(ctx context.Context, name string) string {
	data, err := l.readFile(ctx, filepath.Join(l.opts.DMIDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// readFile reads a whole file, giving up after the configured timeout.
// Procfs and sysfs reads can block on misbehaving drivers.
func (l *Local) readFile(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, l.opts.ReadTimeout)
	defer cancel()

	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := os.ReadFile(path)
		ch <- result{data: data, err: err}
	}()

	select {
	case r := <-ch:
		return r.data, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("read %s: %w", path, ctx.Err())
	}
}

// coveredByMount reports whether a non-root mount point contains path.
func coveredByMount(path string, mountpoints []string) bool {
	path = filepath.Clean(path)
	for _, mp := range mountpoints {
		mp = filepath.Clean(mp)
		if mp == "/" {
			continue
		}
		if path == mp || strings.HasPrefix(path, mp+"/") {
			return true
		}
	}
	return false
}
