// Package cmd is a transport-agnostic command core: a command has a name, a
// description, and Run(ctx, invocation). Registration and dispatch (Discord
// slash, CLI) live in adapters that wrap this.
package cmd

import (
	"context"
	"sort"
)

// Invocation is the minimal input a runner passes to a command. Adapters set
// Data to their own context type (e.g. session + interaction event).
type Invocation struct {
	Args []string
	Data interface{}
}

// Command is the universal contract. Permissions, option parsing, and
// transport-specific registration stay in adapters.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}

// Middleware wraps a command (logging, permission checks, guild gating).
type Middleware func(Command) Command

// Apply applies middlewares in order; the first in the list is the outermost.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}

// DefaultRegistry is the global registry adapters register into.
var DefaultRegistry = NewRegistry()

// Registry stores commands by name. It does not dispatch; adapters look
// commands up and invoke them with their own context.
type Registry struct {
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command, usually from init() or adapter setup.
func (r *Registry) Register(c Command) {
	r.commands[c.Name()] = c
}

// Get returns the command with the given name, or nil.
func (r *Registry) Get(name string) Command {
	return r.commands[name]
}

// GetAll returns all registered commands sorted by name.
func (r *Registry) GetAll() []Command {
	list := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}
