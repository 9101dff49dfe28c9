package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgcmd "github.com/rashpile/pako-sysinfo/pkg/command"
)

func TestMarkdownHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "a < b", want: "a &lt; b"},
		{name: "bold", in: "**Title**", want: "<b>Title</b>"},
		{name: "inline code", in: "run `x&y`", want: "run <code>x&amp;y</code>"},
		{name: "fence", in: "**T**\n```\nDevice : Pixel <8>\n```", want: "<b>T</b>\n<pre>Device : Pixel &lt;8&gt;</pre>"},
		{name: "unterminated fence", in: "a```b", want: "a```b"},
		{name: "unterminated bold", in: "**a", want: "**a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, markdownHTML(tt.in))
		})
	}
}

func sampleEmbed() *pkgcmd.Embed {
	return &pkgcmd.Embed{
		Title:       "System Information",
		Description: "Detailed system specifications and status",
		Fields: []pkgcmd.Field{
			{Name: "Device", Value: "`Google Pixel 8`", Inline: true},
			{Name: "", Value: "━━━━", Inline: false},
			{Name: "Kernel Version", Value: "`5.10`", Inline: true},
		},
		Footer: "Generated on Mar 07, 2024 at 09:05",
	}
}

func TestEmbedHTML(t *testing.T) {
	want := "<b>System Information</b>\n" +
		"<i>Detailed system specifications and status</i>\n" +
		"\n" +
		"<b>Device</b>: <code>Google Pixel 8</code>\n" +
		"━━━━\n" +
		"<b>Kernel Version</b>: <code>5.10</code>\n" +
		"\n" +
		"<i>Generated on Mar 07, 2024 at 09:05</i>"
	assert.Equal(t, want, embedHTML(sampleEmbed()))
}

func TestResponseHTMLPrefersEmbed(t *testing.T) {
	resp := &pkgcmd.Response{Text: "ignored", Embed: sampleEmbed()}
	assert.True(t, strings.HasPrefix(responseHTML(resp), "<b>System Information</b>"))

	assert.Equal(t, "<b>x</b>", responseHTML(pkgcmd.TextResponse("**x**", false)))
}

func TestPlainFallback(t *testing.T) {
	got := plainFallback(&pkgcmd.Response{Embed: sampleEmbed()})
	assert.Equal(t, "System Information\n\nDevice: Google Pixel 8\n━━━━\nKernel Version: 5.10\n\nGenerated on Mar 07, 2024 at 09:05", got)

	long := plainFallback(pkgcmd.TextResponse(strings.Repeat("a", 5000), false))
	assert.LessOrEqual(t, len(long), maxMessageLength)
	assert.True(t, strings.HasSuffix(long, "[truncated]"))
}
