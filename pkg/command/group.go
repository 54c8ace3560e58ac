// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package command

import "fmt"

// Group is one node of the command tree: a named aggregation of subgroups
// and commands. The tree is assembled by area registrations at startup and
// is read-only afterwards, which permits lock-free concurrent lookups.
type Group struct {
	// Name is the group's token in the command path.
	Name string
	// Description documents the group for discovery clients.
	Description string

	hidden bool

	// Children kept in insertion order so enumeration is stable across
	// runs; clients cache tool catalogs keyed on that ordering.
	groups        []*Group
	groupsByName  map[string]*Group
	entries       []commandEntry
	entriesByName map[string]commandEntry
}

type commandEntry struct {
	command Command
	hidden  bool
}

// GroupOption configures a group at construction time.
type GroupOption func(*Group)

// WithGroupHidden excludes the group and everything beneath it from
// visible enumeration. Path resolution still works.
func WithGroupHidden() GroupOption {
	return func(g *Group) {
		g.hidden = true
	}
}

// NewGroup creates an empty command group.
func NewGroup(name string, description string, opts ...GroupOption) *Group {
	group := &Group{
		Name:          name,
		Description:   description,
		groupsByName:  map[string]*Group{},
		entriesByName: map[string]commandEntry{},
	}

	for _, opt := range opts {
		opt(group)
	}

	return group
}

// Hidden reports whether the group is excluded from visible enumeration.
func (g *Group) Hidden() bool {
	return g.hidden
}

// AddSubGroup attaches a child group. Duplicate names within one group are
// a programming error and panic at startup.
func (g *Group) AddSubGroup(sub *Group) *Group {
	if _, exists := g.groupsByName[sub.Name]; exists {
		panic(fmt.Sprintf("command group %q already contains subgroup %q", g.Name, sub.Name))
	}
	if _, exists := g.entriesByName[sub.Name]; exists {
		panic(fmt.Sprintf("command group %q already contains a command named %q", g.Name, sub.Name))
	}

	g.groups = append(g.groups, sub)
	g.groupsByName[sub.Name] = sub
	return sub
}

// RegisterOption configures a single command registration.
type RegisterOption func(*commandEntry)

// WithHidden excludes the command from visible enumeration.
func WithHidden() RegisterOption {
	return func(e *commandEntry) {
		e.hidden = true
	}
}

// AddCommand attaches a command to the group under its own name. Duplicate
// names panic at startup.
func (g *Group) AddCommand(cmd Command, opts ...RegisterOption) {
	name := cmd.Name()
	if _, exists := g.entriesByName[name]; exists {
		panic(fmt.Sprintf("command group %q already contains a command named %q", g.Name, name))
	}
	if _, exists := g.groupsByName[name]; exists {
		panic(fmt.Sprintf("command group %q already contains subgroup %q", g.Name, name))
	}

	entry := commandEntry{command: cmd}
	for _, opt := range opts {
		opt(&entry)
	}

	g.entries = append(g.entries, entry)
	g.entriesByName[name] = entry
}

// SubGroups returns the child groups in insertion order.
func (g *Group) SubGroups() []*Group {
	return g.groups
}

// Commands returns the group's commands in insertion order.
func (g *Group) Commands() []Command {
	commands := make([]Command, len(g.entries))
	for i, entry := range g.entries {
		commands[i] = entry.command
	}
	return commands
}

// RegisteredCommand pairs a command with its registration-time visibility.
type RegisteredCommand struct {
	Command Command
	Hidden  bool
}

// RegisteredCommands returns the group's commands with their visibility,
// in insertion order.
func (g *Group) RegisteredCommands() []RegisteredCommand {
	registered := make([]RegisteredCommand, len(g.entries))
	for i, entry := range g.entries {
		registered[i] = RegisteredCommand{Command: entry.command, Hidden: entry.hidden}
	}
	return registered
}

// Resolve walks the tokenized path below this group and returns the leaf
// command, or false when any token does not match.
func (g *Group) Resolve(tokens []string) (Command, bool) {
	if len(tokens) == 0 {
		return nil, false
	}

	current := g
	for i, token := range tokens {
		if i == len(tokens)-1 {
			entry, ok := current.entriesByName[token]
			if !ok {
				return nil, false
			}
			return entry.command, true
		}

		next, ok := current.groupsByName[token]
		if !ok {
			return nil, false
		}
		current = next
	}

	return nil, false
}

// NamedCommand pairs a command with its full path tokens from the root.
type NamedCommand struct {
	// Path holds the ancestry tokens including the command name, excluding
	// the root group.
	Path    []string
	Command Command
}

// VisibleCommands enumerates all non-hidden commands depth-first in
// insertion order. Hidden groups prune their whole subtree.
func (g *Group) VisibleCommands() []NamedCommand {
	var out []NamedCommand
	g.walk(nil, true, &out)
	return out
}

// AllCommands enumerates every command, hidden included.
func (g *Group) AllCommands() []NamedCommand {
	var out []NamedCommand
	g.walk(nil, false, &out)
	return out
}

func (g *Group) walk(prefix []string, visibleOnly bool, out *[]NamedCommand) {
	for _, entry := range g.entries {
		if visibleOnly && entry.hidden {
			continue
		}
		path := append(append([]string{}, prefix...), entry.command.Name())
		*out = append(*out, NamedCommand{Path: path, Command: entry.command})
	}

	for _, sub := range g.groups {
		if visibleOnly && sub.hidden {
			continue
		}
		sub.walk(append(append([]string{}, prefix...), sub.Name), visibleOnly, out)
	}
}
