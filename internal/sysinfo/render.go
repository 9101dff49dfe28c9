package sysinfo

import (
	"fmt"
	"strings"
	"time"

	pkgcmd "github.com/rashpile/pako-sysinfo/pkg/command"
)

const (
	// AccentColor is the embed accent color.
	AccentColor = 0x2ECC71

	// Title heads both output shapes.
	Title = "System Information"

	// Description is the embed subtitle.
	Description = "Detailed system specifications and status"

	// Separator divides basic and detailed facts in plain output.
	Separator = "--- Additional Details ---"

	// Divider is the value of the embed separator field.
	Divider = "━━━━━━━━━━━━━━━━━━━━"

	labelWidth   = 18
	footerLayout = "Jan 02, 2006 at 15:04"
)

// RenderRequest is the input of a single render.
type RenderRequest struct {
	Publish  bool
	Detailed bool
	Report   Report
}

// Renderer turns a report into a message payload.
type Renderer interface {
	Render(req RenderRequest) *pkgcmd.Response
}

// NewRenderer returns the plain renderer for published output and the rich
// renderer otherwise. now supplies the footer timestamp; nil means time.Now.
func NewRenderer(publish bool, now func() time.Time) Renderer {
	if publish {
		return PlainRenderer{}
	}
	if now == nil {
		now = time.Now
	}
	return RichRenderer{Now: now}
}

// PlainRenderer renders a monospace text block.
type PlainRenderer struct{}

// Render writes the header, one padded line per fact, and the detailed
// section behind a separator.
func (PlainRenderer) Render(req RenderRequest) *pkgcmd.Response {
	var sb strings.Builder
	sb.WriteString("**" + Title + "**\n")
	sb.WriteString("```\n")

	writeFacts(&sb, req.Report.Basic)
	if req.Detailed {
		sb.WriteString("\n" + Separator + "\n")
		writeFacts(&sb, req.Report.Detailed)
	}

	sb.WriteString("```")
	return &pkgcmd.Response{Text: sb.String(), Public: req.Publish}
}

func writeFacts(sb *strings.Builder, facts []Fact) {
	for _, f := range facts {
		fmt.Fprintf(sb, "%-*s: %s\n", labelWidth, f.Label, f.Value)
	}
}

// RichRenderer renders an embed.
type RichRenderer struct {
	Now func() time.Time
}

// Render builds one inline field per fact, a divider before the detailed
// facts, and a generation timestamp footer.
func (r RichRenderer) Render(req RenderRequest) *pkgcmd.Response {
	embed := &pkgcmd.Embed{
		Title:       Title,
		Description: Description,
		Color:       AccentColor,
	}

	embed.Fields = appendFields(embed.Fields, req.Report.Basic)
	if req.Detailed {
		embed.Fields = append(embed.Fields, pkgcmd.Field{Name: "", Value: Divider, Inline: false})
		embed.Fields = appendFields(embed.Fields, req.Report.Detailed)
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	embed.Footer = "Generated on " + now().Format(footerLayout)

	return &pkgcmd.Response{Embed: embed, Public: req.Publish}
}

func appendFields(fields []pkgcmd.Field, facts []Fact) []pkgcmd.Field {
	for _, f := range facts {
		fields = append(fields, pkgcmd.Field{
			Name:   f.Label,
			Value:  "`" + f.Value + "`",
			Inline: true,
		})
	}
	return fields
}
