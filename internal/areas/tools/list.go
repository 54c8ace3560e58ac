// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package tools holds the built-in hidden introspection area. Its list
// command walks the visible command tree and emits the catalog external
// tool-discovery clients depend on; the field names and nesting of the
// payload are a stable contract.
package tools

import (
	"context"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/azure/azmcp/pkg/command"
	"github.com/charmbracelet/log"
)

// FactoryProvider breaks the construction cycle between the factory and
// this area: the area is registered while the factory is still being
// built, so the factory is fetched lazily at execute time.
type FactoryProvider func() *command.Factory

// Area registers the hidden tools subtree.
type Area struct {
	logger  *log.Logger
	factory FactoryProvider
}

func NewArea(logger *log.Logger, factory FactoryProvider) *Area {
	return &Area{logger: logger, factory: factory}
}

func (a *Area) Name() string { return "tools" }

func (a *Area) Register(root *command.Group) {
	group := command.NewGroup(a.Name(), "Built-in command introspection", command.WithGroupHidden())
	root.AddSubGroup(group)

	group.AddCommand(NewListCommand(a.logger.With("command", "tools_list"), a.factory), command.WithHidden())
}

// CommandInfo describes one command in the introspection payload.
type CommandInfo struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Command     string       `json:"command"`
	Options     []OptionInfo `json:"options,omitempty"`
}

// OptionInfo describes one option of a command.
type OptionInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// ListCommand emits the visible command catalog.
type ListCommand struct {
	logger  *log.Logger
	factory FactoryProvider
}

func NewListCommand(logger *log.Logger, factory FactoryProvider) *ListCommand {
	return &ListCommand{logger: logger, factory: factory}
}

func (c *ListCommand) Name() string { return "list" }

func (c *ListCommand) Title() string { return "List Available Tools" }

func (c *ListCommand) Description() string {
	return heredoc.Doc(`
		List all available commands and their tools in a hierarchical structure. This
		command returns detailed information about each command, including its name,
		description, full command path and all supported arguments. Use this to explore
		the CLI's functionality or to build interactive command interfaces.`)
}

func (c *ListCommand) Metadata() command.Metadata {
	return command.Metadata{Idempotent: true, ReadOnly: true}
}

func (c *ListCommand) Options() []*command.Option {
	return nil
}

func (c *ListCommand) Execute(ctx context.Context, parse *command.ParseResult) *command.Response {
	resp := command.NewResponse()
	if !command.Validate(parse, resp) {
		return resp
	}

	// The tree is read-only, so the walk runs off the request path and
	// large catalogs do not block concurrent invocations.
	done := make(chan []CommandInfo, 1)
	go func() {
		visible := c.factory().VisibleCommands()
		infos := make([]CommandInfo, 0, len(visible))
		for _, named := range visible {
			infos = append(infos, describeCommand(named))
		}
		done <- infos
	}()

	select {
	case infos := <-done:
		resp.SetResults(infos)
	case <-ctx.Done():
		c.logger.Warn("tool listing canceled", "command", "tools_list", "error", ctx.Err())
		command.WriteError(resp, ctx.Err())
	}

	return resp
}

func describeCommand(named command.NamedCommand) CommandInfo {
	cmd := named.Command

	var opts []OptionInfo
	for _, opt := range cmd.Options() {
		opts = append(opts, OptionInfo{
			Name:        opt.Name,
			Description: opt.Description,
			Required:    opt.Required,
		})
	}

	return CommandInfo{
		Name:        cmd.Name(),
		Description: cmd.Description(),
		Command:     command.RootName + " " + strings.Join(named.Path, " "),
		Options:     opts,
	}
}
