package bot

import (
	"html"
	"strings"

	pkgcmd "github.com/rashpile/pako-sysinfo/pkg/command"
)

// maxMessageLength is Telegram's limit for message text.
const maxMessageLength = 4096

// responseHTML converts a command response into Telegram HTML.
func responseHTML(resp *pkgcmd.Response) string {
	if resp.Embed != nil {
		return embedHTML(resp.Embed)
	}
	return markdownHTML(resp.Text)
}

// embedHTML lays an embed out as title, description, one line per field and footer.
func embedHTML(e *pkgcmd.Embed) string {
	var sb strings.Builder
	if e.Title != "" {
		sb.WriteString("<b>" + html.EscapeString(e.Title) + "</b>\n")
	}
	if e.Description != "" {
		sb.WriteString("<i>" + html.EscapeString(e.Description) + "</i>\n")
	}
	sb.WriteString("\n")

	for _, f := range e.Fields {
		if f.Name == "" {
			sb.WriteString(inlineHTML(f.Value) + "\n")
			continue
		}
		sb.WriteString("<b>" + html.EscapeString(f.Name) + "</b>: " + inlineHTML(f.Value) + "\n")
	}

	if e.Footer != "" {
		sb.WriteString("\n<i>" + html.EscapeString(e.Footer) + "</i>")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// markdownHTML translates the small markdown subset commands emit:
// fenced blocks, inline code and **bold**. Everything else is escaped.
func markdownHTML(md string) string {
	parts := strings.Split(md, "```")
	var sb strings.Builder
	for i, part := range parts {
		inFence := i%2 == 1
		if inFence && i == len(parts)-1 {
			// Unterminated fence.
			sb.WriteString(html.EscapeString("```" + part))
			continue
		}
		if inFence {
			sb.WriteString("<pre>" + html.EscapeString(strings.Trim(part, "\n")) + "</pre>")
			continue
		}
		sb.WriteString(inlineHTML(part))
	}
	return sb.String()
}

// inlineHTML handles `code` spans and **bold** outside of fences.
func inlineHTML(s string) string {
	parts := strings.Split(s, "`")
	var sb strings.Builder
	for i, part := range parts {
		switch {
		case i%2 == 0:
			sb.WriteString(boldHTML(part))
		case i == len(parts)-1:
			sb.WriteString(html.EscapeString("`" + part))
		default:
			sb.WriteString("<code>" + html.EscapeString(part) + "</code>")
		}
	}
	return sb.String()
}

func boldHTML(s string) string {
	parts := strings.Split(s, "**")
	var sb strings.Builder
	for i, part := range parts {
		switch {
		case i%2 == 0:
			sb.WriteString(html.EscapeString(part))
		case i == len(parts)-1:
			sb.WriteString(html.EscapeString("**" + part))
		default:
			sb.WriteString("<b>" + html.EscapeString(part) + "</b>")
		}
	}
	return sb.String()
}

// plainFallback strips the response to unformatted text within the size limit.
func plainFallback(resp *pkgcmd.Response) string {
	text := resp.Text
	if resp.Embed != nil {
		var sb strings.Builder
		sb.WriteString(resp.Embed.Title + "\n\n")
		for _, f := range resp.Embed.Fields {
			if f.Name != "" {
				sb.WriteString(f.Name + ": ")
			}
			sb.WriteString(strings.Trim(f.Value, "`") + "\n")
		}
		sb.WriteString("\n" + resp.Embed.Footer)
		text = sb.String()
	}
	if len(text) > maxMessageLength-20 {
		text = text[:maxMessageLength-30] + "\n\n[truncated]"
	}
	return text
}
