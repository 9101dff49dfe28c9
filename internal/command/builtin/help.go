// Package builtin provides built-in commands like /help, /version and /system-info.
package builtin

import (
	"context"
	"fmt"
	"strings"

	pkgcmd "github.com/rashpile/pako-sysinfo/pkg/command"
)

// CommandLister returns all available commands.
type CommandLister interface {
	All() []pkgcmd.Command
}

// HelpCommand lists all available commands.
type HelpCommand struct {
	lister CommandLister
}

// NewHelpCommand creates a help command.
func NewHelpCommand(lister CommandLister) *HelpCommand {
	return &HelpCommand{lister: lister}
}

// Name returns "help".
func (h *HelpCommand) Name() string {
	return "help"
}

// Description returns the help description.
func (h *HelpCommand) Description() string {
	return "List available commands"
}

// Execute lists every command with its options.
func (h *HelpCommand) Execute(ctx context.Context, args pkgcmd.Args) (*pkgcmd.Response, error) {
	var sb strings.Builder
	sb.WriteString("Available commands:\n\n")

	for _, cmd := range h.lister.All() {
		fmt.Fprintf(&sb, "/%s - %s\n", cmd.Name(), cmd.Description())
		if withOpts, ok := cmd.(pkgcmd.WithOptions); ok {
			for _, opt := range withOpts.Options() {
				fmt.Fprintf(&sb, "    %s - %s\n", opt.Name, opt.Description)
			}
		}
	}

	return pkgcmd.TextResponse(strings.TrimRight(sb.String(), "\n"), false), nil
}
