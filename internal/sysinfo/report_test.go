package sysinfo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	basicLabels = []string{
		LabelDevice, LabelOSVersion, LabelArchitecture, LabelRootStatus,
		LabelMemory, LabelInternalStorage, LabelSecurityPatch, LabelUptime,
	}
	detailedLabels = []string{
		LabelKernel, LabelCPU, LabelBootloader, LabelBuildType,
		LabelExternalStorage, LabelHardware, LabelABIs, LabelFingerprint,
	}
)

func labels(facts []Fact) []string {
	out := make([]string, 0, len(facts))
	for _, f := range facts {
		out = append(out, f.Label)
	}
	return out
}

func TestAssembleBasic(t *testing.T) {
	r := NewAssembler(pixel(), nil).Assemble(context.Background(), false)

	assert.Equal(t, basicLabels, labels(r.Basic))
	assert.Empty(t, r.Detailed)
	assert.Empty(t, r.Degraded)

	want := []Fact{
		{LabelDevice, "Google Pixel 7"},
		{LabelOSVersion, "14 (API 34)"},
		{LabelArchitecture, "ARM64 (64-bit)"},
		{LabelRootStatus, "Not Rooted"},
		{LabelMemory, "6.00GB / 8.00GB (75.0% used)"},
		{LabelInternalStorage, "32.00GB / 128.00GB (25.0% used)"},
		{LabelSecurityPatch, "2024-01-05"},
		{LabelUptime, "1d 1h 0m"},
	}
	assert.Equal(t, want, r.Basic)
}

func TestAssembleDetailed(t *testing.T) {
	r := NewAssembler(pixel(), nil).Assemble(context.Background(), true)

	assert.Equal(t, basicLabels, labels(r.Basic))
	assert.Equal(t, detailedLabels, labels(r.Detailed))

	want := []Fact{
		{LabelKernel, "Linux 5.10.157-android13"},
		{LabelCPU, "AArch64 Processor rev 0"},
		{LabelBootloader, "cloudripper-14.2"},
		{LabelBuildType, "user (release-keys)"},
		{LabelExternalStorage, "Same as internal"},
		{LabelHardware, "panther"},
		{LabelABIs, "arm64-v8a, armeabi-v7a, armeabi"},
		{LabelFingerprint, "google/panther/panther:14/..."},
	}
	assert.Equal(t, want, r.Detailed)

	// CPU came from the "Processor" line, not "model name".
	require.Len(t, r.Degraded, 1)
	assert.Equal(t, LabelCPU, r.Degraded[0].Label)
	assert.Equal(t, SourcePlatform, r.Degraded[0].Source)
}

func TestAssembleMerged(t *testing.T) {
	r := NewAssembler(pixel(), nil).Assemble(context.Background(), true)

	merged := r.Merged()
	require.Len(t, merged, 16)
	assert.Equal(t, append(append([]string{}, basicLabels...), detailedLabels...), labels(merged))

	basicOnly := NewAssembler(pixel(), nil).Assemble(context.Background(), false)
	assert.Equal(t, basicOnly.Basic, basicOnly.Merged())
}

func TestAssembleEverythingFails(t *testing.T) {
	p := &fakeProvider{
		buildErr:   errProbe,
		cpuinfoErr: errProbe,
		versionErr: errProbe,
		diskErr:    errProbe,
		memoryErr:  errProbe,
		uptimeErr:  errProbe,
	}

	core, logs := observer.New(zapcore.DebugLevel)
	r := NewAssembler(p, zap.New(core)).Assemble(context.Background(), true)

	require.Len(t, r.Basic, 8)
	require.Len(t, r.Detailed, 8)
	for _, f := range r.Merged() {
		assert.NotEmpty(t, f.Value, f.Label)
	}

	assert.Equal(t, "Unknown", r.Basic[0].Value)
	assert.Equal(t, "Not Rooted", r.Basic[3].Value)
	assert.Equal(t, "Not available", r.Basic[6].Value)
	assert.Equal(t, "Unknown", r.Detailed[4].Value)

	// Every fact except root status degrades.
	assert.Len(t, r.Degraded, 15)
	assert.Equal(t, 15, logs.FilterMessage("fact degraded").Len())
	assert.Equal(t, 1, logs.FilterMessage("build info incomplete").Len())
}

func TestAssembleRooted(t *testing.T) {
	p := pixel()
	p.files = map[string]bool{"/system/bin/su": true}

	r := NewAssembler(p, nil).Assemble(context.Background(), false)
	assert.Equal(t, "Rooted", r.Basic[3].Value)
}

func TestAssembleFreshPerCall(t *testing.T) {
	p := pixel()
	a := NewAssembler(p, nil)

	first := a.Assemble(context.Background(), false)
	p.memory.Available = 4 * gb
	second := a.Assemble(context.Background(), false)

	assert.Equal(t, "6.00GB / 8.00GB (75.0% used)", first.Basic[4].Value)
	assert.Equal(t, "4.00GB / 8.00GB (50.0% used)", second.Basic[4].Value)
}
