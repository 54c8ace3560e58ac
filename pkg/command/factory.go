// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package command

import (
	"strings"

	"github.com/charmbracelet/log"
)

// Separator joins path tokens into a flat tool name
// (e.g. "azmcp_aks_cluster_list").
const Separator = "_"

// RootName is the root group token shared by every full command name.
const RootName = "azmcp"

// Factory builds the full command tree from all registered areas at
// startup and resolves tokenized names to commands. It is immutable once
// constructed and safe for concurrent use.
type Factory struct {
	root   *Group
	logger *log.Logger
}

// NewFactory assembles the command tree by asking every area to register
// its groups and commands. Registration conflicts panic; a broken tree is
// a startup defect, not a runtime condition.
func NewFactory(logger *log.Logger, areas []Area) *Factory {
	root := NewGroup(RootName, "Azure MCP server commands")

	for _, area := range areas {
		area.Register(root)
		logger.Debug("registered command area", "area", area.Name())
	}

	return &Factory{root: root, logger: logger}
}

// Root returns the root command group.
func (f *Factory) Root() *Group {
	return f.root
}

// Resolve maps a flat tool name to its command. The leading root token is
// optional so both "azmcp_aks_cluster_list" and "aks_cluster_list" work.
func (f *Factory) Resolve(name string) (Command, bool) {
	tokens := strings.Split(strings.TrimSpace(name), Separator)
	if len(tokens) > 0 && tokens[0] == f.root.Name {
		tokens = tokens[1:]
	}
	return f.root.Resolve(tokens)
}

// VisibleCommands enumerates the visible tree in stable insertion order.
func (f *Factory) VisibleCommands() []NamedCommand {
	return f.root.VisibleCommands()
}

// AllCommands enumerates the whole tree, hidden commands included.
func (f *Factory) AllCommands() []NamedCommand {
	return f.root.AllCommands()
}

// ToolName returns the flat registered name for a command path.
func ToolName(path []string) string {
	return RootName + Separator + strings.Join(path, Separator)
}
