package sysinfo

import (
	"context"

	"go.uber.org/zap"

	"github.com/rashpile/pako-sysinfo/internal/hostinfo"
	"github.com/rashpile/pako-sysinfo/internal/logging"
)

// Fact labels in display order.
const (
	LabelDevice          = "Device"
	LabelOSVersion       = "OS Version"
	LabelArchitecture    = "Architecture"
	LabelRootStatus      = "Root Status"
	LabelMemory          = "Memory Usage"
	LabelInternalStorage = "Internal Storage"
	LabelSecurityPatch   = "Security Patch"
	LabelUptime          = "Uptime"

	LabelKernel          = "Kernel Version"
	LabelCPU             = "CPU/Hardware"
	LabelBootloader      = "Bootloader"
	LabelBuildType       = "Build Type"
	LabelExternalStorage = "External Storage"
	LabelHardware        = "Hardware Platform"
	LabelABIs            = "Supported ABIs"
	LabelFingerprint     = "Build Fingerprint"
)

// Fact is one labelled, preformatted value.
type Fact struct {
	Label string
	Value string
}

// Degradation records a fact that fell back from its primary source.
type Degradation struct {
	Label  string
	Source Source
	Err    error
}

// Report holds the basic facts and, when requested, the detailed facts.
// Slice order is display order.
type Report struct {
	Basic    []Fact
	Detailed []Fact
	Degraded []Degradation
}

// Merged returns the basic facts followed by the detailed facts.
func (r Report) Merged() []Fact {
	all := make([]Fact, 0, len(r.Basic)+len(r.Detailed))
	all = append(all, r.Basic...)
	return append(all, r.Detailed...)
}

// Assembler runs the probes against a provider and builds reports.
type Assembler struct {
	provider hostinfo.Provider
	logger   *zap.Logger
}

// NewAssembler creates an assembler. A nil logger disables logging.
func NewAssembler(provider hostinfo.Provider, logger *zap.Logger) *Assembler {
	return &Assembler{
		provider: provider,
		logger:   logging.Component(logger, "sysinfo"),
	}
}

// Assemble probes the host and returns a fresh report. It never fails;
// probe failures degrade the affected fact only.
func (a *Assembler) Assemble(ctx context.Context, detailed bool) Report {
	b, err := a.provider.Build(ctx)
	if err != nil {
		a.logger.Debug("build info incomplete", zap.Error(err))
	}

	var r Report
	add := func(dst *[]Fact, label string, res Result[string]) {
		*dst = append(*dst, Fact{Label: label, Value: res.Value})
		if res.Degraded() {
			r.Degraded = append(r.Degraded, Degradation{Label: label, Source: res.Source, Err: res.Err})
			a.logger.Debug("fact degraded",
				zap.String("fact", label),
				zap.Stringer("source", res.Source),
				zap.Error(res.Err),
			)
		}
	}

	root := RootStatus(a.provider)
	rootText := Result[string]{Value: "Not Rooted", Source: root.Source, Err: root.Err}
	if root.Value {
		rootText.Value = "Rooted"
	}
	storage := Storage(ctx, a.provider)

	add(&r.Basic, LabelDevice, Device(b))
	add(&r.Basic, LabelOSVersion, OSVersion(b))
	add(&r.Basic, LabelArchitecture, Architecture(ctx, a.provider, b.SupportedABIs))
	add(&r.Basic, LabelRootStatus, rootText)
	add(&r.Basic, LabelMemory, Memory(ctx, a.provider))
	add(&r.Basic, LabelInternalStorage, storage.Internal)
	add(&r.Basic, LabelSecurityPatch, SecurityPatch(b))
	add(&r.Basic, LabelUptime, Uptime(ctx, a.provider))

	if !detailed {
		return r
	}

	add(&r.Detailed, LabelKernel, KernelVersion(ctx, a.provider))
	add(&r.Detailed, LabelCPU, CPUInfo(ctx, a.provider, b.Hardware))
	add(&r.Detailed, LabelBootloader, orUnknown(b.Bootloader))
	add(&r.Detailed, LabelBuildType, BuildType(b))
	add(&r.Detailed, LabelExternalStorage, storage.External)
	add(&r.Detailed, LabelHardware, orUnknown(b.Hardware))
	add(&r.Detailed, LabelABIs, SupportedABIs(b.SupportedABIs))
	add(&r.Detailed, LabelFingerprint, Fingerprint(b.Fingerprint))

	return r
}
