package sysinfo

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rashpile/pako-sysinfo/internal/hostinfo"
)

// minSecurityPatchAPI is the first API level exposing the security patch property.
const minSecurityPatchAPI = 23

// archNames maps ABI identifiers to display names.
var archNames = map[string]string{
	"arm64-v8a":   "ARM64 (64-bit)",
	"armeabi-v7a": "ARM (32-bit)",
	"x86_64":      "x86_64 (64-bit)",
	"x86":         "x86 (32-bit)",
}

// suPaths are checked in addition to every PATH entry.
var suPaths = []string{"/system/bin/su", "/system/xbin/su"}

var errMalformed = errors.New("malformed line")

// StorageResult pairs the internal and external storage values.
type StorageResult struct {
	Internal Result[string]
	External Result[string]
}

// Architecture returns the display name of the first known ABI, in ABI
// priority order, falling back to the platform architecture.
func Architecture(ctx context.Context, p hostinfo.Provider, abis []string) Result[string] {
	for _, abi := range abis {
		if name, ok := archNames[abi]; ok {
			return primary(name)
		}
	}
	if arch := p.OSArch(ctx); arch != "" {
		return fallback(arch, SourcePlatform, nil)
	}
	return fallback(unknown, SourceSentinel, nil)
}

// CPUInfo returns the first "model name" of the CPU-info source. Without one
// it falls back to the first "Processor", then "Hardware" line, then hardware.
func CPUInfo(ctx context.Context, p hostinfo.Provider, hardware string) Result[string] {
	platform := func(err error) Result[string] {
		if hardware == "" {
			return fallback(unknown, SourceSentinel, err)
		}
		return fallback(hardware, SourcePlatform, err)
	}

	data, err := p.CPUInfo(ctx)
	if err != nil {
		return platform(err)
	}

	var processor, hw string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		var dst *string
		switch {
		case strings.HasPrefix(line, "model name"):
			value, err := fieldValue(line)
			if err != nil {
				return platform(err)
			}
			return primary(value)
		case strings.HasPrefix(line, "Processor"):
			dst = &processor
		case strings.HasPrefix(line, "Hardware"):
			dst = &hw
		default:
			continue
		}
		if *dst != "" {
			continue
		}
		value, err := fieldValue(line)
		if err != nil {
			return platform(err)
		}
		*dst = value
	}
	if err := scanner.Err(); err != nil {
		return platform(err)
	}

	switch {
	case processor != "":
		return fallback(processor, SourcePlatform, nil)
	case hw != "":
		return fallback(hw, SourcePlatform, nil)
	default:
		return platform(nil)
	}
}

// fieldValue returns the trimmed text after the first colon.
func fieldValue(line string) (string, error) {
	_, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", fmt.Errorf("%w: %q", errMalformed, line)
	}
	return strings.TrimSpace(value), nil
}

// Storage reports usage of the data mount and the secondary mount.
// Any internal failure degrades both values to "Unknown".
func Storage(ctx context.Context, p hostinfo.Provider) StorageResult {
	internal, err := p.DiskUsage(ctx, p.DataPath())
	if err == nil && internal.Total == 0 {
		err = ErrZeroTotal
	}
	if err != nil {
		return StorageResult{
			Internal: fallback(unknown, SourceSentinel, err),
			External: fallback(unknown, SourceSentinel, err),
		}
	}

	value, err := usage(usedOf(internal.Total, internal.Free), internal.Total)
	if err != nil {
		return StorageResult{
			Internal: fallback(unknown, SourceSentinel, err),
			External: fallback(unknown, SourceSentinel, err),
		}
	}

	return StorageResult{
		Internal: primary(value),
		External: externalStorage(ctx, p, internal.Total),
	}
}

func externalStorage(ctx context.Context, p hostinfo.Provider, internalTotal uint64) Result[string] {
	path, mounted, err := p.ExternalStorage(ctx)
	if err != nil {
		return fallback(notAvailable, SourceSentinel, err)
	}
	if !mounted {
		return fallback(notAvailable, SourceSentinel, nil)
	}

	ext, err := p.DiskUsage(ctx, path)
	if err != nil {
		return fallback(notAvailable, SourceSentinel, err)
	}
	if ext.Total == internalTotal {
		return primary(sameInternal)
	}

	value, err := usage(usedOf(ext.Total, ext.Free), ext.Total)
	if err != nil {
		return fallback(notAvailable, SourceSentinel, err)
	}
	return primary(value)
}

// KernelVersion extracts "Linux <release>" from the version-info source,
// falling back to the platform OS version.
func KernelVersion(ctx context.Context, p hostinfo.Provider) Result[string] {
	platform := func(err error) Result[string] {
		if v := p.OSVersion(ctx); v != "" {
			return fallback(v, SourcePlatform, err)
		}
		return fallback(unknown, SourceSentinel, err)
	}

	data, err := p.KernelVersionInfo(ctx)
	if err != nil {
		return platform(err)
	}

	first, _, _ := strings.Cut(string(data), "\n")
	if !strings.Contains(first, "Linux version") {
		return platform(nil)
	}
	parts := strings.Fields(first)
	if len(parts) < 3 {
		return platform(fmt.Errorf("%w: %q", errMalformed, first))
	}
	return primary("Linux " + parts[2])
}

// SecurityPatch returns the security patch level on platforms that report it.
func SecurityPatch(b hostinfo.BuildInfo) Result[string] {
	if b.APILevel < minSecurityPatchAPI {
		return fallback(notAvailable, SourceSentinel, nil)
	}
	if b.SecurityPatch == "" {
		return fallback(unknown, SourceSentinel, errors.New("security patch property empty"))
	}
	return primary(b.SecurityPatch)
}

// RootStatus reports whether an su binary exists in PATH or a well-known location.
func RootStatus(p hostinfo.Provider) Result[bool] {
	var candidates []string
	for _, dir := range filepath.SplitList(p.Getenv("PATH")) {
		if dir != "" {
			candidates = append(candidates, filepath.Join(dir, "su"))
		}
	}
	candidates = append(candidates, suPaths...)

	var probeErr error
	for _, path := range candidates {
		err := p.Stat(path)
		if err == nil {
			return primary(true)
		}
		if !errors.Is(err, os.ErrNotExist) && probeErr == nil {
			probeErr = err
		}
	}
	if probeErr != nil {
		return fallback(false, SourceDefault, probeErr)
	}
	return primary(false)
}

// Uptime formats the time elapsed since boot.
func Uptime(ctx context.Context, p hostinfo.Provider) Result[string] {
	d, err := p.Uptime(ctx)
	if err != nil {
		return fallback(unknown, SourceSentinel, err)
	}
	return primary(FormatUptime(d.Milliseconds()))
}

// Memory reports live memory usage.
func Memory(ctx context.Context, p hostinfo.Provider) Result[string] {
	m, err := p.Memory(ctx)
	if err != nil {
		return fallback(unknown, SourceSentinel, err)
	}
	value, err := usage(usedOf(m.Total, m.Available), m.Total)
	if err != nil {
		return fallback(unknown, SourceSentinel, err)
	}
	return primary(value)
}

// Device joins manufacturer and model.
func Device(b hostinfo.BuildInfo) Result[string] {
	return orUnknown(strings.TrimSpace(b.Manufacturer + " " + b.Model))
}

// OSVersion renders the release with its API level when one is known.
func OSVersion(b hostinfo.BuildInfo) Result[string] {
	if b.Release == "" {
		return fallback(unknown, SourceSentinel, nil)
	}
	if b.APILevel > 0 {
		return primary(fmt.Sprintf("%s (API %d)", b.Release, b.APILevel))
	}
	return primary(b.Release)
}

// BuildType renders "TYPE (TAGS)".
func BuildType(b hostinfo.BuildInfo) Result[string] {
	if b.Type == "" && b.Tags == "" {
		return fallback(unknown, SourceSentinel, nil)
	}
	return primary(fmt.Sprintf("%s (%s)", orUnknown(b.Type).Value, orUnknown(b.Tags).Value))
}

// SupportedABIs joins the first three ABIs, marking any remainder with "...".
func SupportedABIs(abis []string) Result[string] {
	if len(abis) == 0 {
		return fallback(unknown, SourceSentinel, nil)
	}
	if len(abis) <= 3 {
		return primary(strings.Join(abis, ", "))
	}
	return primary(strings.Join(abis[:3], ", ") + ", ...")
}

// Fingerprint keeps the first three "/" segments, or the first 40 characters
// when there are fewer than three.
func Fingerprint(fp string) Result[string] {
	if fp == "" {
		return fallback(unknown, SourceSentinel, nil)
	}
	parts := strings.Split(fp, "/")
	if len(parts) >= 3 {
		return primary(strings.Join(parts[:3], "/") + "/...")
	}
	return primary(truncate(fp, 40) + "...")
}

// truncate returns the first n characters of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func orUnknown(s string) Result[string] {
	if s == "" {
		return fallback(unknown, SourceSentinel, nil)
	}
	return primary(s)
}
