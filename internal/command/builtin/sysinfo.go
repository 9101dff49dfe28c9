package builtin

import (
	"context"
	"time"

	"github.com/rashpile/pako-sysinfo/internal/sysinfo"
	pkgcmd "github.com/rashpile/pako-sysinfo/pkg/command"
)

const (
	optSend     = "send"
	optDetailed = "detailed"
)

// ReportAssembler builds a fresh system report.
type ReportAssembler interface {
	Assemble(ctx context.Context, detailed bool) sysinfo.Report
}

// SystemInfoCommand reports device and OS statistics.
type SystemInfoCommand struct {
	assembler ReportAssembler
	now       func() time.Time
}

// NewSystemInfoCommand creates a system-info command.
func NewSystemInfoCommand(assembler ReportAssembler) *SystemInfoCommand {
	return &SystemInfoCommand{assembler: assembler, now: time.Now}
}

// Name returns "system-info".
func (s *SystemInfoCommand) Name() string {
	return "system-info"
}

// Description returns the system-info description.
func (s *SystemInfoCommand) Description() string {
	return "Get detailed system information"
}

// Options returns the send and detailed flags.
func (s *SystemInfoCommand) Options() []pkgcmd.Option {
	return []pkgcmd.Option{
		{Name: optSend, Description: "Send result visible to everyone"},
		{Name: optDetailed, Description: "Show additional technical details"},
	}
}

// Execute assembles a report and renders it as text when sending publicly,
// as an embed otherwise.
func (s *SystemInfoCommand) Execute(ctx context.Context, args pkgcmd.Args) (*pkgcmd.Response, error) {
	publish := args.Bool(optSend, false)
	detailed := args.Bool(optDetailed, false)

	report := s.assembler.Assemble(ctx, detailed)

	return sysinfo.NewRenderer(publish, s.now).Render(sysinfo.RenderRequest{
		Publish:  publish,
		Detailed: detailed,
		Report:   report,
	}), nil
}
