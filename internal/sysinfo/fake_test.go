package sysinfo

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/rashpile/pako-sysinfo/internal/hostinfo"
)

var errProbe = errors.New("probe failed")

// fakeProvider is an in-memory hostinfo.Provider.
type fakeProvider struct {
	build    hostinfo.BuildInfo
	buildErr error

	env      map[string]string
	files    map[string]bool
	statErrs map[string]error

	cpuinfo    string
	cpuinfoErr error
	version    string
	versionErr error

	dataPath string
	disks    map[string]hostinfo.DiskUsage
	diskErr  error

	externalPath    string
	externalMounted bool
	externalErr     error

	memory    hostinfo.MemoryStats
	memoryErr error

	uptime    time.Duration
	uptimeErr error

	osArch    string
	osVersion string
}

func (f *fakeProvider) Build(ctx context.Context) (hostinfo.BuildInfo, error) {
	return f.build, f.buildErr
}

func (f *fakeProvider) Getenv(key string) string { return f.env[key] }

func (f *fakeProvider) Stat(path string) error {
	if err, ok := f.statErrs[path]; ok {
		return err
	}
	if f.files[path] {
		return nil
	}
	return os.ErrNotExist
}

func (f *fakeProvider) CPUInfo(ctx context.Context) ([]byte, error) {
	return []byte(f.cpuinfo), f.cpuinfoErr
}

func (f *fakeProvider) KernelVersionInfo(ctx context.Context) ([]byte, error) {
	return []byte(f.version), f.versionErr
}

func (f *fakeProvider) DataPath() string { return f.dataPath }

func (f *fakeProvider) DiskUsage(ctx context.Context, path string) (hostinfo.DiskUsage, error) {
	if f.diskErr != nil {
		return hostinfo.DiskUsage{}, f.diskErr
	}
	u, ok := f.disks[path]
	if !ok {
		return hostinfo.DiskUsage{}, os.ErrNotExist
	}
	return u, nil
}

func (f *fakeProvider) ExternalStorage(ctx context.Context) (string, bool, error) {
	return f.externalPath, f.externalMounted, f.externalErr
}

func (f *fakeProvider) Memory(ctx context.Context) (hostinfo.MemoryStats, error) {
	return f.memory, f.memoryErr
}

func (f *fakeProvider) Uptime(ctx context.Context) (time.Duration, error) {
	return f.uptime, f.uptimeErr
}

func (f *fakeProvider) OSArch(ctx context.Context) string { return f.osArch }

func (f *fakeProvider) OSVersion(ctx context.Context) string { return f.osVersion }

const gb = 1 << 30

// pixel returns a fully populated Android-like provider.
func pixel() *fakeProvider {
	return &fakeProvider{
		build: hostinfo.BuildInfo{
			Manufacturer:  "Google",
			Model:         "Pixel 7",
			Release:       "14",
			APILevel:      34,
			SupportedABIs: []string{"arm64-v8a", "armeabi-v7a", "armeabi"},
			Bootloader:    "cloudripper-14.2",
			Hardware:      "panther",
			Type:          "user",
			Tags:          "release-keys",
			Fingerprint:   "google/panther/panther:14/UQ1A/11206848:user/release-keys",
			SecurityPatch: "2024-01-05",
		},
		env:      map[string]string{"PATH": "/sbin:/system/bin"},
		cpuinfo:  "Processor\t: AArch64 Processor rev 0\nHardware\t: Google Tensor G2\n",
		version:  "Linux version 5.10.157-android13 (build@host) #1 SMP PREEMPT\n",
		dataPath: "/data",
		disks: map[string]hostinfo.DiskUsage{
			"/data":                {Total: 128 * gb, Free: 96 * gb},
			"/storage/emulated/0": {Total: 128 * gb, Free: 96 * gb},
		},
		externalPath:    "/storage/emulated/0",
		externalMounted: true,
		memory:          hostinfo.MemoryStats{Total: 8 * gb, Available: 2 * gb},
		uptime:          90_000 * time.Second,
		osArch:          "aarch64",
		osVersion:       "5.10.157-android13",
	}
}
