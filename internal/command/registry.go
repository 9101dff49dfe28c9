// Package command provides command registration and lookup.
package command

import (
	"sort"
	"strings"
	"sync"

	pkgcmd "github.com/rashpile/pako-sysinfo/pkg/command"
)

// Registry manages available commands with thread-safe access.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]pkgcmd.Command
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]pkgcmd.Command),
	}
}

// Register adds a command. Overwrites if name exists.
func (r *Registry) Register(cmd pkgcmd.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.Name()] = cmd
}

// Get retrieves a command by name. Returns nil if not found.
// Underscores match hyphens, since some transports forbid hyphens in command names.
func (r *Registry) Get(name string) pkgcmd.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	return r.commands[strings.ReplaceAll(name, "_", "-")]
}

// All returns all registered commands sorted by name.
func (r *Registry) All() []pkgcmd.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmds := make([]pkgcmd.Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	return cmds
}
