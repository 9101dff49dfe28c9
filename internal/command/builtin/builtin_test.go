package builtin

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashpile/pako-sysinfo/internal/command"
	"github.com/rashpile/pako-sysinfo/internal/sysinfo"
	pkgcmd "github.com/rashpile/pako-sysinfo/pkg/command"
)

type fakeAssembler struct {
	calls    int
	detailed bool
}

func (f *fakeAssembler) Assemble(ctx context.Context, detailed bool) sysinfo.Report {
	f.calls++
	f.detailed = detailed
	r := sysinfo.Report{}
	for i := 0; i < 8; i++ {
		r.Basic = append(r.Basic, sysinfo.Fact{Label: "Basic", Value: "b"})
	}
	if detailed {
		for i := 0; i < 8; i++ {
			r.Detailed = append(r.Detailed, sysinfo.Fact{Label: "Detailed", Value: "d"})
		}
	}
	return r
}

func TestSystemInfoDefaults(t *testing.T) {
	asm := &fakeAssembler{}
	cmd := NewSystemInfoCommand(asm)
	cmd.now = func() time.Time { return time.Date(2024, time.January, 2, 15, 4, 0, 0, time.Local) }

	resp, err := cmd.Execute(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, asm.calls)
	assert.False(t, asm.detailed)
	assert.False(t, resp.Public)
	require.NotNil(t, resp.Embed)
	assert.Len(t, resp.Embed.Fields, 8)
	assert.Equal(t, "Generated on Jan 02, 2024 at 15:04", resp.Embed.Footer)
}

func TestSystemInfoSendDetailed(t *testing.T) {
	asm := &fakeAssembler{}
	cmd := NewSystemInfoCommand(asm)

	resp, err := cmd.Execute(context.Background(), pkgcmd.Args{"send": true, "detailed": true})
	require.NoError(t, err)

	assert.True(t, asm.detailed)
	assert.True(t, resp.Public)
	assert.Nil(t, resp.Embed)
	assert.Contains(t, resp.Text, sysinfo.Separator)
	assert.Equal(t, 8, strings.Count(resp.Text, "Detailed          : d"))
}

func TestSystemInfoOptions(t *testing.T) {
	var cmd pkgcmd.WithOptions = NewSystemInfoCommand(&fakeAssembler{})

	opts := cmd.Options()
	require.Len(t, opts, 2)
	assert.Equal(t, "send", opts[0].Name)
	assert.Equal(t, "detailed", opts[1].Name)
}

func TestHelpListsCommandsAndOptions(t *testing.T) {
	reg := command.NewRegistry()
	reg.Register(NewVersionCommand())
	reg.Register(NewSystemInfoCommand(&fakeAssembler{}))
	reg.Register(NewHelpCommand(reg))

	resp, err := reg.Get("help").Execute(context.Background(), nil)
	require.NoError(t, err)

	want := "Available commands:\n\n" +
		"/help - List available commands\n" +
		"/system-info - Get detailed system information\n" +
		"    send - Send result visible to everyone\n" +
		"    detailed - Show additional technical details\n" +
		"/version - Show current bot version"
	assert.Equal(t, want, resp.Text)
}

func TestVersion(t *testing.T) {
	resp, err := NewVersionCommand().Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Version:    dev")
}
