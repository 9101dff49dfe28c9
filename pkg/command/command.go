// Package command defines the interface for executable commands.
// Implement this interface to create custom commands that can be invoked from a chat transport.
package command

import (
	"context"
)

// Command defines the contract for all executable commands.
type Command interface {
	// Name returns the command name without the leading slash (e.g., "system-info").
	Name() string

	// Description returns a human-readable description for /help output.
	Description() string

	// Execute runs the command with the given options and returns the payload to deliver.
	// The context carries cancellation signals for timeout/shutdown.
	Execute(ctx context.Context, args Args) (*Response, error)
}

// Option describes a boolean command option (e.g., "detailed").
type Option struct {
	Name        string
	Description string
}

// WithOptions extends Command with the boolean options it understands.
type WithOptions interface {
	Command
	Options() []Option
}

// Args holds the boolean options supplied with an invocation.
type Args map[string]bool

// Bool returns the option value, or def when the option was not supplied.
func (a Args) Bool(name string, def bool) bool {
	if v, ok := a[name]; ok {
		return v
	}
	return def
}

// Response is the payload handed to the message sink.
// Exactly one of Text and Embed is set.
type Response struct {
	Text   string
	Embed  *Embed
	Public bool // visible to everyone; otherwise ephemeral where the transport supports it
}

// Embed is a structured rich message.
type Embed struct {
	Title       string
	Description string
	Color       int
	Fields      []Field
	Footer      string
}

// Field is a single label/value entry of an Embed.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// TextResponse builds a plain-text response.
func TextResponse(text string, public bool) *Response {
	return &Response{Text: text, Public: public}
}
